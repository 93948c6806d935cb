package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/thenoetrevino/embudo/internal/database"
	"github.com/thenoetrevino/embudo/internal/models"
)

// SetupTestDB creates a migrated database in a temp directory. It carries
// the default seed: board 1 "Projects" (columns 1-3: To Do, Doing, Done) and
// board 2 "Sales" (columns 4-8: Lead, Qualified, Proposal, Won, Lost).
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.InitDB(context.Background(), filepath.Join(t.TempDir(), "embudo.db"))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close database: %v", err)
		}
	})
	return db
}

// SetupTestRepo wraps SetupTestDB in a Repository.
func SetupTestRepo(t *testing.T) *database.Repository {
	t.Helper()
	return database.NewRepository(SetupTestDB(t))
}

// CreateTestBoard creates a board with the named columns and returns it with
// the column IDs in order.
func CreateTestBoard(t *testing.T, repo database.DataStore, name string, kind models.BoardKind, columns ...string) (*models.Board, []int) {
	t.Helper()
	ctx := context.Background()
	board, err := repo.CreateBoard(ctx, name, kind, "")
	if err != nil {
		t.Fatalf("Failed to create board %s: %v", name, err)
	}
	ids := make([]int, 0, len(columns))
	for _, c := range columns {
		col, err := repo.CreateColumn(ctx, board.ID, models.ColumnDraft{Name: c})
		if err != nil {
			t.Fatalf("Failed to create column %s: %v", c, err)
		}
		ids = append(ids, col.ID)
	}
	return board, ids
}

// CreateTestCard creates a card and returns its ID.
func CreateTestCard(t *testing.T, repo database.DataStore, columnID int, title string) int {
	t.Helper()
	card, err := repo.Cards().Create(context.Background(), columnID, models.ItemDraft{Title: title})
	if err != nil {
		t.Fatalf("Failed to create card %s: %v", title, err)
	}
	return card.ID
}

// CreateTestDeal creates a deal and returns its ID.
func CreateTestDeal(t *testing.T, repo database.DataStore, columnID int, title, company string, cents int64) int {
	t.Helper()
	deal, err := repo.Deals().Create(context.Background(), columnID, models.ItemDraft{
		Title: title, Company: company, ValueCents: cents,
	})
	if err != nil {
		t.Fatalf("Failed to create deal %s: %v", title, err)
	}
	return deal.ID
}
