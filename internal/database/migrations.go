package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/embudo/internal/models"
)

// Positions are ranks, not slots. Gaps are normal after deletes and two rows
// may share a position, so there is no UNIQUE(column_id, position).
var schema = []string{
	`CREATE TABLE IF NOT EXISTS boards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		kind TEXT NOT NULL CHECK (kind IN ('project', 'pipeline')),
		description TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS columns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		board_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		position INTEGER NOT NULL,
		color TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (board_id) REFERENCES boards(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_columns_board ON columns(board_id, position)`,
	`CREATE TABLE IF NOT EXISTS priorities (
		id INTEGER PRIMARY KEY,
		description TEXT NOT NULL,
		color TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS cards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		column_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		priority_id INTEGER NOT NULL DEFAULT 3,
		assignee_id INTEGER,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (column_id) REFERENCES columns(id) ON DELETE CASCADE,
		FOREIGN KEY (priority_id) REFERENCES priorities(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cards_column ON cards(column_id, position)`,
	`CREATE TABLE IF NOT EXISTS deals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		column_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		title TEXT NOT NULL,
		company TEXT NOT NULL DEFAULT '',
		value_cents INTEGER NOT NULL DEFAULT 0,
		priority_id INTEGER NOT NULL DEFAULT 3,
		owner_id INTEGER,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (column_id) REFERENCES columns(id) ON DELETE CASCADE,
		FOREIGN KEY (priority_id) REFERENCES priorities(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_deals_column ON deals(column_id, position)`,
}

// runMigrations creates the database schema and the priority lookup rows.
func runMigrations(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return seedPriorities(ctx, db)
}

func seedPriorities(ctx context.Context, db *sql.DB) error {
	for _, p := range models.Priorities {
		_, err := db.ExecContext(ctx,
			`INSERT OR IGNORE INTO priorities (id, description, color) VALUES (?, ?, ?)`,
			p.ID, p.Description, p.Color,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// seedDefaultBoards creates a project board and a sales pipeline when the
// database has no boards yet.
func seedDefaultBoards(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM boards").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		name    string
		kind    models.BoardKind
		columns []string
	}{
		{"Projects", models.BoardKindProject, []string{"To Do", "Doing", "Done"}},
		{"Sales", models.BoardKindPipeline, []string{"Lead", "Qualified", "Proposal", "Won", "Lost"}},
	}

	return withTx(ctx, db, func(tx *sql.Tx) error {
		for _, b := range defaults {
			res, err := tx.ExecContext(ctx, "INSERT INTO boards (name, kind) VALUES (?, ?)", b.name, b.kind)
			if err != nil {
				return fmt.Errorf("seed board %s: %w", b.name, err)
			}
			boardID, err := res.LastInsertId()
			if err != nil {
				return err
			}
			for i, name := range b.columns {
				_, err := tx.ExecContext(ctx,
					"INSERT INTO columns (board_id, name, position) VALUES (?, ?, ?)",
					boardID, name, i,
				)
				if err != nil {
					return fmt.Errorf("seed column %s: %w", name, err)
				}
			}
		}
		return nil
	})
}
