package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/thenoetrevino/embudo/internal/app"
	"github.com/thenoetrevino/embudo/internal/database"
	"github.com/thenoetrevino/embudo/internal/dnd"
	"github.com/thenoetrevino/embudo/internal/models"
	boardservice "github.com/thenoetrevino/embudo/internal/services/board"
	columnservice "github.com/thenoetrevino/embudo/internal/services/column"
	itemservice "github.com/thenoetrevino/embudo/internal/services/item"
)

// ErrMoveRolledBack is returned when the data source rejected a move and the
// local copy was restored or reloaded.
var ErrMoveRolledBack = errors.New("move was rejected and rolled back")

var validationErrors = []error{
	boardservice.ErrEmptyName,
	boardservice.ErrNameTooLong,
	boardservice.ErrInvalidBoardID,
	boardservice.ErrInvalidKind,
	columnservice.ErrEmptyName,
	columnservice.ErrNameTooLong,
	columnservice.ErrInvalidColumnID,
	columnservice.ErrInvalidBoardID,
	itemservice.ErrEmptyTitle,
	itemservice.ErrTitleTooLong,
	itemservice.ErrInvalidItemID,
	itemservice.ErrInvalidColumnID,
	itemservice.ErrInvalidBoardID,
	itemservice.ErrInvalidPriority,
	itemservice.ErrInvalidPosition,
	itemservice.ErrInvalidDirection,
	itemservice.ErrNegativeValue,
	models.ErrAlreadyFirstItem,
	models.ErrAlreadyLastItem,
	models.ErrAlreadyFirstColumn,
	models.ErrAlreadyLastColumn,
}

// Classify maps an error to an exit code and a machine-readable error code.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrCancelled):
		return ExitCancelled, "CANCELLED"
	case errors.Is(err, models.ErrNotFound), errors.Is(err, columnservice.ErrColumnNotFound),
		errors.Is(err, dnd.ErrUnknownItem), errors.Is(err, dnd.ErrUnknownColumn), errors.Is(err, dnd.ErrUnknownTarget):
		return ExitNotFound, "NOT_FOUND"
	case errors.Is(err, columnservice.ErrAmbiguousColumn):
		return ExitUsage, "AMBIGUOUS_COLUMN"
	case errors.Is(err, database.ErrWrongBoardKind), errors.Is(err, database.ErrCrossBoardMove):
		return ExitDataErr, "WRONG_BOARD"
	case errors.Is(err, ErrMoveRolledBack):
		return ExitDataErr, "MOVE_REJECTED"
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return ExitValidation, "VALIDATION_ERROR"
		}
	}
	return ExitError, "ERROR"
}

// ParsePriority maps a priority name or ID to its ID. Empty means default.
func ParsePriority(priority string) (int, error) {
	priority = strings.TrimSpace(priority)
	if priority == "" {
		return models.DefaultPriority, nil
	}
	if id, err := strconv.Atoi(priority); err == nil {
		for _, p := range models.Priorities {
			if p.ID == id {
				return id, nil
			}
		}
	}
	for _, p := range models.Priorities {
		if strings.EqualFold(p.Description, priority) {
			return p.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (must be: trivial, low, medium, high, critical)", itemservice.ErrInvalidPriority, priority)
}

// PriorityName returns the description of a priority ID.
func PriorityName(id int) string {
	return models.PriorityByID(id).Description
}

// ParseMoney parses a dollar amount such as "1200", "1,200.50" or "$99.9"
// into cents.
func ParseMoney(s string) (int64, error) {
	clean := strings.NewReplacer("$", "", ",", "", "_", "").Replace(strings.TrimSpace(s))
	if clean == "" {
		return 0, nil
	}
	if strings.HasPrefix(clean, "-") {
		return 0, itemservice.ErrNegativeValue
	}

	whole, frac, hasFrac := strings.Cut(clean, ".")
	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	var cents int64
	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		if len(frac) == 1 {
			frac += "0"
		}
		if cents, err = strconv.ParseInt(frac, 10, 64); err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	}
	return dollars*100 + cents, nil
}

// ResolveBoard finds a board by ID or by name.
func ResolveBoard(ctx context.Context, a *app.App, ref string) (*models.Board, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.Atoi(ref); err == nil {
		return a.BoardService.GetBoardByID(ctx, id)
	}
	return a.BoardService.GetBoardByName(ctx, ref)
}

// ResolveColumn finds a column of boardID by ID or by (fuzzy) name.
func ResolveColumn(ctx context.Context, a *app.App, boardID int, ref string) (*models.Column, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.Atoi(ref); err == nil {
		col, err := a.ColumnService.GetColumnByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if col.BoardID != boardID {
			return nil, fmt.Errorf("column %d: %w", id, database.ErrCrossBoardMove)
		}
		return col, nil
	}
	return a.ColumnService.ResolveColumn(ctx, boardID, ref)
}
