package column

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/thenoetrevino/embudo/internal/events"
	"github.com/thenoetrevino/embudo/internal/models"
)

// Service defines all column-related business operations
type Service interface {
	// Read operations
	GetColumnsByBoard(ctx context.Context, boardID int) ([]*models.Column, error)
	GetColumnByID(ctx context.Context, id int) (*models.Column, error)
	CountItems(ctx context.Context, id int) (int, error)
	ResolveColumn(ctx context.Context, boardID int, name string) (*models.Column, error)

	// Write operations
	CreateColumn(ctx context.Context, boardID int, draft models.ColumnDraft) (*models.Column, error)
	RenameColumn(ctx context.Context, id int, name string) error
	DeleteColumn(ctx context.Context, id int) error
}

// repository defines the data access methods needed by the column service
type repository interface {
	CreateColumn(ctx context.Context, boardID int, draft models.ColumnDraft) (*models.Column, error)
	GetColumnsByBoard(ctx context.Context, boardID int) ([]*models.Column, error)
	GetColumnByID(ctx context.Context, id int) (*models.Column, error)
	RenameColumn(ctx context.Context, id int, name string) error
	CountColumnItems(ctx context.Context, id int) (int, error)
	DeleteColumn(ctx context.Context, id int) error
}

type service struct {
	repo        repository
	eventClient events.EventPublisher
}

// NewService creates a new column service
func NewService(repo repository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// GetColumnsByBoard retrieves all columns of a board in display order
func (s *service) GetColumnsByBoard(ctx context.Context, boardID int) ([]*models.Column, error) {
	if boardID <= 0 {
		return nil, ErrInvalidBoardID
	}
	return s.repo.GetColumnsByBoard(ctx, boardID)
}

// GetColumnByID retrieves a specific column
func (s *service) GetColumnByID(ctx context.Context, id int) (*models.Column, error) {
	if id <= 0 {
		return nil, ErrInvalidColumnID
	}
	return s.repo.GetColumnByID(ctx, id)
}

// CountItems returns how many cards or deals the column holds.
func (s *service) CountItems(ctx context.Context, id int) (int, error) {
	if id <= 0 {
		return 0, ErrInvalidColumnID
	}
	return s.repo.CountColumnItems(ctx, id)
}

// ResolveColumn finds a column of the board by name. An exact
// case-insensitive match wins; otherwise the best fuzzy match is used as long
// as it is unambiguous.
func (s *service) ResolveColumn(ctx context.Context, boardID int, name string) (*models.Column, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	columns, err := s.GetColumnsByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(columns))
	for i, c := range columns {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
		names[i] = c.Name
	}

	matches := fuzzy.Find(name, names)
	switch {
	case len(matches) == 0:
		return nil, fmt.Errorf("%w %q", ErrColumnNotFound, name)
	case len(matches) > 1 && matches[0].Score == matches[1].Score:
		return nil, fmt.Errorf("%w: %q matches %q and %q", ErrAmbiguousColumn, name, matches[0].Str, matches[1].Str)
	}
	return columns[matches[0].Index], nil
}

// CreateColumn appends a column to the board.
func (s *service) CreateColumn(ctx context.Context, boardID int, draft models.ColumnDraft) (*models.Column, error) {
	if boardID <= 0 {
		return nil, ErrInvalidBoardID
	}
	draft.Name = strings.TrimSpace(draft.Name)
	if err := validateName(draft.Name); err != nil {
		return nil, err
	}

	column, err := s.repo.CreateColumn(ctx, boardID, draft)
	if err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}

	s.publishColumnEvent(column.ID, column.BoardID)
	return column, nil
}

// RenameColumn updates a column's name
func (s *service) RenameColumn(ctx context.Context, id int, name string) error {
	if id <= 0 {
		return ErrInvalidColumnID
	}
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}

	column, err := s.repo.GetColumnByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get column: %w", err)
	}
	if err := s.repo.RenameColumn(ctx, id, name); err != nil {
		return fmt.Errorf("failed to update column: %w", err)
	}

	s.publishColumnEvent(id, column.BoardID)
	return nil
}

// DeleteColumn deletes a column together with its items. Callers confirm
// with the user first when the column is not empty.
func (s *service) DeleteColumn(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidColumnID
	}

	column, err := s.repo.GetColumnByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get column: %w", err)
	}
	if err := s.repo.DeleteColumn(ctx, id); err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
	}

	s.publishColumnEvent(id, column.BoardID)
	return nil
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > 50 {
		return ErrNameTooLong
	}
	return nil
}

// publishColumnEvent tells other clients the column's board changed
func (s *service) publishColumnEvent(columnID, boardID int) {
	if s.eventClient == nil {
		return
	}
	if err := events.PublishWithRetry(s.eventClient, events.BoardChanged(boardID), 3); err != nil {
		slog.Warn("failed to send event for column", "column_id", columnID, "error", err)
	}
}
