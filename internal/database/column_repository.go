package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/embudo/internal/models"
)

// ColumnRepo handles all column-related database operations.
type ColumnRepo struct {
	db *sql.DB
}

const columnColumns = `id, board_id, name, position, color, description`

func scanColumn(row rowScanner) (*models.Column, error) {
	c := &models.Column{}
	if err := row.Scan(&c.ID, &c.BoardID, &c.Name, &c.Position, &c.Color, &c.Description); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateColumn appends a column to a board. Its position is the number of
// columns the board holds before the insert.
func (r *ColumnRepo) CreateColumn(ctx context.Context, boardID int, draft models.ColumnDraft) (*models.Column, error) {
	var id int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM boards WHERE id = ?)`, boardID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("board %d: %w", boardID, models.ErrNotFound)
		}

		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM columns WHERE board_id = ?`, boardID).Scan(&count); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx,
			`INSERT INTO columns (board_id, name, position, color, description) VALUES (?, ?, ?, ?, ?)`,
			boardID, draft.Name, count, draft.Color, draft.Description,
		)
		if err != nil {
			return fmt.Errorf("insert column: %w", err)
		}
		id, err = result.LastInsertId()
		return err
	})
	if err != nil {
		return nil, err
	}
	return r.GetColumnByID(ctx, int(id))
}

// GetColumnsByBoard returns a board's columns ordered by position, then ID.
func (r *ColumnRepo) GetColumnsByBoard(ctx context.Context, boardID int) ([]*models.Column, error) {
	return columnsByBoard(ctx, r.db, boardID)
}

func columnsByBoard(ctx context.Context, q querier, boardID int) ([]*models.Column, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+columnColumns+` FROM columns WHERE board_id = ? ORDER BY position, id`,
		boardID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying columns for board: %w", err)
	}
	defer rows.Close()

	columns := []*models.Column{}
	for rows.Next() {
		c, err := scanColumn(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning column row: %w", err)
		}
		columns = append(columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating column rows: %w", err)
	}
	return columns, nil
}

// GetColumnByID retrieves a column by its ID.
func (r *ColumnRepo) GetColumnByID(ctx context.Context, id int) (*models.Column, error) {
	c, err := scanColumn(r.db.QueryRowContext(ctx, `SELECT `+columnColumns+` FROM columns WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err, "column", id)
	}
	return c, nil
}

// RenameColumn updates the name of an existing column.
func (r *ColumnRepo) RenameColumn(ctx context.Context, id int, name string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE columns SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("rename column %d: %w", id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("column %d: %w", id, models.ErrNotFound)
	}
	return nil
}

// CountColumnItems returns how many cards and deals a column holds.
func (r *ColumnRepo) CountColumnItems(ctx context.Context, id int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM cards WHERE column_id = ?) + (SELECT COUNT(*) FROM deals WHERE column_id = ?)`,
		id, id,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count items in column %d: %w", id, err)
	}
	return count, nil
}

// DeleteColumn removes a column and, through the foreign key cascade, every
// item it holds. Sibling positions are not renumbered.
func (r *ColumnRepo) DeleteColumn(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM columns WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete column %d: %w", id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("column %d: %w", id, models.ErrNotFound)
	}
	return nil
}
