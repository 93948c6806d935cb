package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/thenoetrevino/embudo/internal/models"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database and runs migrations without
// seeding default boards.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := open(context.Background(), ":memory:")
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

// createTestBoard creates a board with the named columns.
func createTestBoard(t *testing.T, repo *Repository, name string, kind models.BoardKind, columns ...string) (*models.Board, []*models.Column) {
	t.Helper()
	ctx := context.Background()
	board, err := repo.CreateBoard(ctx, name, kind, "")
	if err != nil {
		t.Fatalf("Failed to create board %s: %v", name, err)
	}
	var cols []*models.Column
	for _, c := range columns {
		col, err := repo.CreateColumn(ctx, board.ID, models.ColumnDraft{Name: c})
		if err != nil {
			t.Fatalf("Failed to create column %s: %v", c, err)
		}
		cols = append(cols, col)
	}
	return board, cols
}

// createTestCards creates cards with the given titles in a column.
func createTestCards(t *testing.T, repo *Repository, columnID int, titles ...string) []models.Card {
	t.Helper()
	var cards []models.Card
	for _, title := range titles {
		card, err := repo.Cards().Create(context.Background(), columnID, models.ItemDraft{Title: title})
		if err != nil {
			t.Fatalf("Failed to create card %s: %v", title, err)
		}
		cards = append(cards, card)
	}
	return cards
}

func cardTitles(cards []models.Card) []string {
	titles := make([]string, 0, len(cards))
	for _, c := range cards {
		titles = append(titles, c.Title)
	}
	return titles
}
