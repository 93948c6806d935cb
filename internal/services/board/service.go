package board

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/embudo/internal/events"
	"github.com/thenoetrevino/embudo/internal/models"
)

// Service defines all board-related business operations
type Service interface {
	// Read operations
	GetAllBoards(ctx context.Context) ([]*models.Board, error)
	GetBoardByID(ctx context.Context, id int) (*models.Board, error)
	GetBoardByName(ctx context.Context, name string) (*models.Board, error)

	// Write operations
	CreateBoard(ctx context.Context, req CreateBoardRequest) (*models.Board, error)
	DeleteBoard(ctx context.Context, id int) error
}

// CreateBoardRequest encapsulates data for creating a board
type CreateBoardRequest struct {
	Name        string
	Kind        models.BoardKind
	Description string
	Columns     []string // created in order after the board
}

// repository defines the data access methods needed by the board service
type repository interface {
	CreateBoard(ctx context.Context, name string, kind models.BoardKind, description string) (*models.Board, error)
	GetAllBoards(ctx context.Context) ([]*models.Board, error)
	GetBoardByID(ctx context.Context, id int) (*models.Board, error)
	GetBoardByName(ctx context.Context, name string) (*models.Board, error)
	DeleteBoard(ctx context.Context, id int) error
	CreateColumn(ctx context.Context, boardID int, draft models.ColumnDraft) (*models.Column, error)
}

type service struct {
	repo        repository
	eventClient events.EventPublisher
}

// NewService creates a new board service
func NewService(repo repository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

func (s *service) GetAllBoards(ctx context.Context) ([]*models.Board, error) {
	return s.repo.GetAllBoards(ctx)
}

func (s *service) GetBoardByID(ctx context.Context, id int) (*models.Board, error) {
	if id <= 0 {
		return nil, ErrInvalidBoardID
	}
	return s.repo.GetBoardByID(ctx, id)
}

func (s *service) GetBoardByName(ctx context.Context, name string) (*models.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return s.repo.GetBoardByName(ctx, name)
}

// CreateBoard validates the request, creates the board and its initial
// columns. A column failure leaves the board with the columns created so far.
func (s *service) CreateBoard(ctx context.Context, req CreateBoardRequest) (*models.Board, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > 100 {
		return nil, ErrNameTooLong
	}
	if req.Kind == "" {
		req.Kind = models.BoardKindProject
	}
	if !req.Kind.Valid() {
		return nil, ErrInvalidKind
	}

	board, err := s.repo.CreateBoard(ctx, name, req.Kind, req.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	for _, col := range req.Columns {
		if _, err := s.repo.CreateColumn(ctx, board.ID, models.ColumnDraft{Name: col}); err != nil {
			return board, fmt.Errorf("failed to create column %q: %w", col, err)
		}
	}

	s.publishBoardEvent(board.ID)
	return board, nil
}

// DeleteBoard deletes a board with all of its columns and items.
func (s *service) DeleteBoard(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidBoardID
	}
	if err := s.repo.DeleteBoard(ctx, id); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	s.publishBoardEvent(id)
	return nil
}

func (s *service) publishBoardEvent(boardID int) {
	if s.eventClient == nil {
		return
	}
	if err := events.PublishWithRetry(s.eventClient, events.BoardChanged(boardID), 3); err != nil {
		slog.Warn("failed to publish board event", "board_id", boardID, "error", err)
	}
}
