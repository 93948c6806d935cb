// Package item implements the board commands for cards and deals on top of
// the item repositories.
package item

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/embudo/internal/database"
	"github.com/thenoetrevino/embudo/internal/dnd"
	"github.com/thenoetrevino/embudo/internal/events"
	"github.com/thenoetrevino/embudo/internal/models"
	"github.com/thenoetrevino/embudo/internal/services/column"
)

// Service is the full command surface of one board kind. It satisfies
// dnd.Commands so a board screen can be built directly on it.
type Service[I any] interface {
	dnd.Commands[I]

	Kind() models.BoardKind
	GetItem(ctx context.Context, id int) (I, error)
	GetByColumn(ctx context.Context, columnID int) ([]I, error)
}

type service[I any] struct {
	repo        database.ItemRepository[I]
	columns     column.Service
	eventClient events.EventPublisher
}

// NewService creates an item service. Column commands are delegated to
// columns so both board kinds share one column implementation.
func NewService[I any](repo database.ItemRepository[I], columns column.Service, eventClient events.EventPublisher) Service[I] {
	return &service[I]{
		repo:        repo,
		columns:     columns,
		eventClient: eventClient,
	}
}

func (s *service[I]) Kind() models.BoardKind { return s.repo.Kind() }

// FetchBoard returns the board aggregate. The engine sorts it.
func (s *service[I]) FetchBoard(ctx context.Context, boardID int) (*models.BoardAggregate[I], error) {
	if boardID <= 0 {
		return nil, ErrInvalidBoardID
	}
	return s.repo.FetchBoard(ctx, boardID)
}

func (s *service[I]) GetItem(ctx context.Context, id int) (I, error) {
	if id <= 0 {
		var zero I
		return zero, ErrInvalidItemID
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service[I]) GetByColumn(ctx context.Context, columnID int) ([]I, error) {
	if columnID <= 0 {
		return nil, ErrInvalidColumnID
	}
	return s.repo.GetByColumn(ctx, columnID)
}

// Move persists a cross-column move. column_id and position change together.
func (s *service[I]) Move(ctx context.Context, itemID, targetColumnID, newPosition int) error {
	switch {
	case itemID <= 0:
		return ErrInvalidItemID
	case targetColumnID <= 0:
		return ErrInvalidColumnID
	case newPosition < 0:
		return ErrInvalidPosition
	}

	if err := s.repo.Move(ctx, itemID, targetColumnID, newPosition); err != nil {
		return fmt.Errorf("failed to move item: %w", err)
	}

	s.publishItemEvent(ctx, itemID)
	return nil
}

// Reorder swaps the item with its neighbour in the same column.
func (s *service[I]) Reorder(ctx context.Context, itemID, direction int) error {
	if itemID <= 0 {
		return ErrInvalidItemID
	}
	if direction != -1 && direction != 1 {
		return ErrInvalidDirection
	}

	if err := s.repo.Reorder(ctx, itemID, direction); err != nil {
		return fmt.Errorf("failed to reorder item: %w", err)
	}

	s.publishItemEvent(ctx, itemID)
	return nil
}

// CreateItem appends a new item at the end of the column.
func (s *service[I]) CreateItem(ctx context.Context, columnID int, draft models.ItemDraft) (I, error) {
	var zero I
	if columnID <= 0 {
		return zero, ErrInvalidColumnID
	}
	draft.Title = strings.TrimSpace(draft.Title)
	if err := validateTitle(draft.Title); err != nil {
		return zero, err
	}
	if draft.PriorityID != 0 && !validPriority(draft.PriorityID) {
		return zero, ErrInvalidPriority
	}
	if draft.ValueCents < 0 {
		return zero, ErrNegativeValue
	}

	created, err := s.repo.Create(ctx, columnID, draft)
	if err != nil {
		return zero, fmt.Errorf("failed to create item: %w", err)
	}

	s.publishColumnEvent(ctx, columnID)
	return created, nil
}

// UpdateItem applies a partial update. Placement never changes here.
func (s *service[I]) UpdateItem(ctx context.Context, itemID int, patch models.ItemPatch) (I, error) {
	var zero I
	if itemID <= 0 {
		return zero, ErrInvalidItemID
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if err := validateTitle(title); err != nil {
			return zero, err
		}
		patch.Title = &title
	}
	if patch.PriorityID != nil && !validPriority(*patch.PriorityID) {
		return zero, ErrInvalidPriority
	}
	if patch.ValueCents != nil && *patch.ValueCents < 0 {
		return zero, ErrNegativeValue
	}

	updated, err := s.repo.Update(ctx, itemID, patch)
	if err != nil {
		return zero, fmt.Errorf("failed to update item: %w", err)
	}

	s.publishItemEvent(ctx, itemID)
	return updated, nil
}

// DeleteItem removes the item. Siblings keep their positions.
func (s *service[I]) DeleteItem(ctx context.Context, itemID int) error {
	if itemID <= 0 {
		return ErrInvalidItemID
	}

	// looked up first, the row is gone afterwards
	boardID, err := s.repo.BoardOf(ctx, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	s.publish(boardID)
	return nil
}

func (s *service[I]) CreateColumn(ctx context.Context, boardID int, draft models.ColumnDraft) (*models.Column, error) {
	return s.columns.CreateColumn(ctx, boardID, draft)
}

func (s *service[I]) DeleteColumn(ctx context.Context, columnID int) error {
	return s.columns.DeleteColumn(ctx, columnID)
}

func validateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > 255 {
		return ErrTitleTooLong
	}
	return nil
}

func validPriority(id int) bool {
	return id >= models.PriorityTrivial && id <= models.PriorityCritical
}

// publishItemEvent publishes a change for the item's board
func (s *service[I]) publishItemEvent(ctx context.Context, itemID int) {
	if s.eventClient == nil {
		return
	}
	boardID, err := s.repo.BoardOf(ctx, itemID)
	if err != nil {
		slog.Warn("failed to resolve board for event", "item_id", itemID, "error", err)
		return
	}
	s.publish(boardID)
}

func (s *service[I]) publishColumnEvent(ctx context.Context, columnID int) {
	if s.eventClient == nil {
		return
	}
	col, err := s.columns.GetColumnByID(ctx, columnID)
	if err != nil {
		slog.Warn("failed to resolve board for event", "column_id", columnID, "error", err)
		return
	}
	s.publish(col.BoardID)
}

func (s *service[I]) publish(boardID int) {
	if s.eventClient == nil {
		return
	}
	if err := events.PublishWithRetry(s.eventClient, events.BoardChanged(boardID), 3); err != nil {
		slog.Warn("failed to publish item event", "board_id", boardID, "error", err)
	}
}
