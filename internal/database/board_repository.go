package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/embudo/internal/models"
)

// BoardRepo handles all board-related database operations.
type BoardRepo struct {
	db *sql.DB
}

const boardColumns = `id, name, kind, description, created_at, updated_at`

func scanBoard(row rowScanner) (*models.Board, error) {
	b := &models.Board{}
	if err := row.Scan(&b.ID, &b.Name, &b.Kind, &b.Description, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return b, nil
}

// CreateBoard creates an empty board.
func (r *BoardRepo) CreateBoard(ctx context.Context, name string, kind models.BoardKind, description string) (*models.Board, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO boards (name, kind, description) VALUES (?, ?, ?)`,
		name, kind, description,
	)
	if err != nil {
		return nil, fmt.Errorf("insert board: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetBoardByID(ctx, int(id))
}

// GetAllBoards returns every board ordered by ID.
func (r *BoardRepo) GetAllBoards(ctx context.Context) ([]*models.Board, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+boardColumns+` FROM boards ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying boards: %w", err)
	}
	defer rows.Close()

	boards := []*models.Board{}
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning board row: %w", err)
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

// GetBoardByID retrieves a board by its ID.
func (r *BoardRepo) GetBoardByID(ctx context.Context, id int) (*models.Board, error) {
	b, err := scanBoard(r.db.QueryRowContext(ctx, `SELECT `+boardColumns+` FROM boards WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err, "board", id)
	}
	return b, nil
}

// GetBoardByName retrieves a board by its unique name.
func (r *BoardRepo) GetBoardByName(ctx context.Context, name string) (*models.Board, error) {
	b, err := scanBoard(r.db.QueryRowContext(ctx, `SELECT `+boardColumns+` FROM boards WHERE name = ?`, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("board %q: %w", name, models.ErrNotFound)
		}
		return nil, fmt.Errorf("get board %q: %w", name, err)
	}
	return b, nil
}

// DeleteBoard removes a board with all its columns and items.
func (r *BoardRepo) DeleteBoard(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete board %d: %w", id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("board %d: %w", id, models.ErrNotFound)
	}
	return nil
}
