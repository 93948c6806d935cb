package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/thenoetrevino/embudo/internal/models"
)

// columnItem is what the repository needs to know about a row type.
type columnItem interface {
	GetID() int
	GetColumnID() int
}

// itemSchema describes how one item table maps to its model. Every query
// aliases the table as i.
type itemSchema[I columnItem] struct {
	table string
	kind  models.BoardKind

	// selected, in scan order
	columns []string
	scan    func(rowScanner) (I, error)

	// insert columns after column_id and position
	insertColumns []string
	insertArgs    func(models.ItemDraft) []any

	patch func(models.ItemPatch) (sets []string, args []any)
}

func (s itemSchema[I]) selectList() string {
	qualified := make([]string, len(s.columns))
	for i, c := range s.columns {
		qualified[i] = "i." + c
	}
	return strings.Join(qualified, ", ")
}

// ItemRepo stores the items of one board kind. Cards and deals share all
// placement logic and differ only in their schema.
type ItemRepo[I columnItem] struct {
	db     *sql.DB
	schema itemSchema[I]
}

func priorityOrDefault(id int) int {
	if id == 0 {
		return models.DefaultPriority
	}
	return id
}

var cardSchema = itemSchema[models.Card]{
	table: "cards",
	kind:  models.BoardKindProject,
	columns: []string{
		"id", "column_id", "position", "title", "description",
		"priority_id", "assignee_id", "created_at", "updated_at",
	},
	scan: func(row rowScanner) (models.Card, error) {
		var c models.Card
		var assignee sql.NullInt64
		err := row.Scan(&c.ID, &c.ColumnID, &c.Position, &c.Title, &c.Description,
			&c.PriorityID, &assignee, &c.CreatedAt, &c.UpdatedAt)
		c.AssigneeID = nullInt64ToPtr(assignee)
		return c, err
	},
	insertColumns: []string{"title", "description", "priority_id", "assignee_id"},
	insertArgs: func(d models.ItemDraft) []any {
		return []any{d.Title, d.Description, priorityOrDefault(d.PriorityID), intPtrToNull(d.AssigneeID)}
	},
	patch: func(p models.ItemPatch) ([]string, []any) {
		var sets []string
		var args []any
		if p.Title != nil {
			sets, args = append(sets, "title = ?"), append(args, *p.Title)
		}
		if p.Description != nil {
			sets, args = append(sets, "description = ?"), append(args, *p.Description)
		}
		if p.PriorityID != nil {
			sets, args = append(sets, "priority_id = ?"), append(args, *p.PriorityID)
		}
		if p.AssigneeID != nil {
			sets, args = append(sets, "assignee_id = ?"), append(args, *p.AssigneeID)
		}
		return sets, args
	},
}

var dealSchema = itemSchema[models.Deal]{
	table: "deals",
	kind:  models.BoardKindPipeline,
	columns: []string{
		"id", "column_id", "position", "title", "company", "value_cents",
		"priority_id", "owner_id", "created_at", "updated_at",
	},
	scan: func(row rowScanner) (models.Deal, error) {
		var d models.Deal
		var owner sql.NullInt64
		err := row.Scan(&d.ID, &d.ColumnID, &d.Position, &d.Title, &d.Company, &d.ValueCents,
			&d.PriorityID, &owner, &d.CreatedAt, &d.UpdatedAt)
		d.OwnerID = nullInt64ToPtr(owner)
		return d, err
	},
	insertColumns: []string{"title", "company", "value_cents", "priority_id", "owner_id"},
	insertArgs: func(d models.ItemDraft) []any {
		return []any{d.Title, d.Company, d.ValueCents, priorityOrDefault(d.PriorityID), intPtrToNull(d.AssigneeID)}
	},
	patch: func(p models.ItemPatch) ([]string, []any) {
		var sets []string
		var args []any
		if p.Title != nil {
			sets, args = append(sets, "title = ?"), append(args, *p.Title)
		}
		if p.Company != nil {
			sets, args = append(sets, "company = ?"), append(args, *p.Company)
		}
		if p.ValueCents != nil {
			sets, args = append(sets, "value_cents = ?"), append(args, *p.ValueCents)
		}
		if p.PriorityID != nil {
			sets, args = append(sets, "priority_id = ?"), append(args, *p.PriorityID)
		}
		if p.AssigneeID != nil {
			sets, args = append(sets, "owner_id = ?"), append(args, *p.AssigneeID)
		}
		return sets, args
	},
}

// NewCardRepo returns the repository for project board cards.
func NewCardRepo(db *sql.DB) *ItemRepo[models.Card] {
	return &ItemRepo[models.Card]{db: db, schema: cardSchema}
}

// NewDealRepo returns the repository for pipeline deals.
func NewDealRepo(db *sql.DB) *ItemRepo[models.Deal] {
	return &ItemRepo[models.Deal]{db: db, schema: dealSchema}
}

// Kind returns the board kind this repository serves.
func (r *ItemRepo[I]) Kind() models.BoardKind {
	return r.schema.kind
}

// ============================================================================
// Reads
// ============================================================================

// GetByID retrieves one item.
func (r *ItemRepo[I]) GetByID(ctx context.Context, id int) (I, error) {
	return r.getByID(ctx, r.db, id)
}

func (r *ItemRepo[I]) getByID(ctx context.Context, q querier, id int) (I, error) {
	item, err := r.schema.scan(q.QueryRowContext(ctx,
		`SELECT `+r.schema.selectList()+` FROM `+r.schema.table+` i WHERE i.id = ?`, id))
	if err != nil {
		var zero I
		return zero, notFound(err, strings.TrimSuffix(r.schema.table, "s"), id)
	}
	return item, nil
}

// GetByColumn returns a column's items ordered by position, then ID.
func (r *ItemRepo[I]) GetByColumn(ctx context.Context, columnID int) ([]I, error) {
	return r.query(ctx, r.db,
		`SELECT `+r.schema.selectList()+` FROM `+r.schema.table+` i
		 WHERE i.column_id = ? ORDER BY i.position, i.id`,
		columnID)
}

// Count returns how many items a column holds.
func (r *ItemRepo[I]) Count(ctx context.Context, columnID int) (int, error) {
	return r.count(ctx, r.db, columnID)
}

func (r *ItemRepo[I]) count(ctx context.Context, q querier, columnID int) (int, error) {
	var n int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+r.schema.table+` WHERE column_id = ?`, columnID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s in column %d: %w", r.schema.table, columnID, err)
	}
	return n, nil
}

// BoardOf returns the board an item lives on.
func (r *ItemRepo[I]) BoardOf(ctx context.Context, id int) (int, error) {
	var boardID int
	err := r.db.QueryRowContext(ctx,
		`SELECT c.board_id FROM `+r.schema.table+` i JOIN columns c ON c.id = i.column_id WHERE i.id = ?`,
		id,
	).Scan(&boardID)
	if err != nil {
		return 0, notFound(err, strings.TrimSuffix(r.schema.table, "s"), id)
	}
	return boardID, nil
}

// FetchBoard loads a board with its columns and all of its items in one read
// transaction.
func (r *ItemRepo[I]) FetchBoard(ctx context.Context, boardID int) (*models.BoardAggregate[I], error) {
	var agg *models.BoardAggregate[I]
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		board, err := scanBoard(tx.QueryRowContext(ctx, `SELECT `+boardColumns+` FROM boards WHERE id = ?`, boardID))
		if err != nil {
			return notFound(err, "board", boardID)
		}
		if board.Kind != r.schema.kind {
			return fmt.Errorf("board %d is a %s board: %w", boardID, board.Kind, ErrWrongBoardKind)
		}

		columns, err := columnsByBoard(ctx, tx, boardID)
		if err != nil {
			return err
		}

		items, err := r.query(ctx, tx,
			`SELECT `+r.schema.selectList()+` FROM `+r.schema.table+` i
			 JOIN columns c ON c.id = i.column_id
			 WHERE c.board_id = ? ORDER BY i.position, i.id`,
			boardID)
		if err != nil {
			return err
		}

		agg = &models.BoardAggregate[I]{
			Board:   board,
			Columns: columns,
			Items:   make(map[int][]I, len(columns)),
		}
		for _, item := range items {
			agg.Items[item.GetColumnID()] = append(agg.Items[item.GetColumnID()], item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return agg, nil
}

func (r *ItemRepo[I]) query(ctx context.Context, q querier, query string, args ...any) ([]I, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", r.schema.table, err)
	}
	defer rows.Close()

	items := []I{}
	for rows.Next() {
		item, err := r.schema.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", r.schema.table, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", r.schema.table, err)
	}
	return items, nil
}

// ============================================================================
// Writes
// ============================================================================

// Create appends an item to a column. Its position is the number of items
// the column holds before the insert.
func (r *ItemRepo[I]) Create(ctx context.Context, columnID int, draft models.ItemDraft) (I, error) {
	var created I
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, kind, err := columnBoard(ctx, tx, columnID)
		if err != nil {
			return err
		}
		if kind != r.schema.kind {
			return fmt.Errorf("column %d: %w", columnID, ErrWrongBoardKind)
		}

		position, err := r.count(ctx, tx, columnID)
		if err != nil {
			return err
		}

		cols := append([]string{"column_id", "position"}, r.schema.insertColumns...)
		args := append([]any{columnID, position}, r.schema.insertArgs(draft)...)
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")

		result, err := tx.ExecContext(ctx,
			`INSERT INTO `+r.schema.table+` (`+strings.Join(cols, ", ")+`) VALUES (`+placeholders+`)`,
			args...,
		)
		if err != nil {
			return fmt.Errorf("insert into %s: %w", r.schema.table, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}

		created, err = r.getByID(ctx, tx, int(id))
		return err
	})
	return created, err
}

// Update applies a partial update and returns the stored item.
func (r *ItemRepo[I]) Update(ctx context.Context, id int, patch models.ItemPatch) (I, error) {
	sets, args := r.schema.patch(patch)
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	result, err := r.db.ExecContext(ctx,
		`UPDATE `+r.schema.table+` SET `+strings.Join(sets, ", ")+` WHERE id = ?`,
		args...,
	)
	if err != nil {
		var zero I
		return zero, fmt.Errorf("update %s %d: %w", r.schema.table, id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		var zero I
		return zero, fmt.Errorf("%s %d: %w", strings.TrimSuffix(r.schema.table, "s"), id, models.ErrNotFound)
	}
	return r.GetByID(ctx, id)
}

// Move sets an item's column and position together. The target column must
// be on the item's board.
func (r *ItemRepo[I]) Move(ctx context.Context, id, columnID, position int) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var fromBoard int
		err := tx.QueryRowContext(ctx,
			`SELECT c.board_id FROM `+r.schema.table+` i JOIN columns c ON c.id = i.column_id WHERE i.id = ?`,
			id,
		).Scan(&fromBoard)
		if err != nil {
			return notFound(err, strings.TrimSuffix(r.schema.table, "s"), id)
		}

		toBoard, _, err := columnBoard(ctx, tx, columnID)
		if err != nil {
			return err
		}
		if toBoard != fromBoard {
			return fmt.Errorf("move %d to column %d: %w", id, columnID, ErrCrossBoardMove)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE `+r.schema.table+`
			 SET column_id = ?, position = ?, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ?`,
			columnID, position, id,
		)
		return err
	})
}

// Reorder swaps an item with its neighbour in render order (direction -1
// is up, +1 down) and renumbers the column densely from zero.
func (r *ItemRepo[I]) Reorder(ctx context.Context, id, direction int) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var columnID int
		err := tx.QueryRowContext(ctx, `SELECT column_id FROM `+r.schema.table+` WHERE id = ?`, id).Scan(&columnID)
		if err != nil {
			return notFound(err, strings.TrimSuffix(r.schema.table, "s"), id)
		}

		rows, err := tx.QueryContext(ctx,
			`SELECT id, position FROM `+r.schema.table+` WHERE column_id = ? ORDER BY position, id`,
			columnID)
		if err != nil {
			return err
		}
		type slot struct{ id, position int }
		var order []slot
		idx := -1
		for rows.Next() {
			var s slot
			if err := rows.Scan(&s.id, &s.position); err != nil {
				rows.Close()
				return err
			}
			if s.id == id {
				idx = len(order)
			}
			order = append(order, s)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		other := idx + direction
		switch {
		case direction < 0 && other < 0:
			return models.ErrAlreadyFirstItem
		case direction > 0 && other >= len(order):
			return models.ErrAlreadyLastItem
		case direction == 0:
			return nil
		}
		order[idx], order[other] = order[other], order[idx]

		for pos, s := range order {
			if s.position == pos {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				`UPDATE `+r.schema.table+` SET position = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
				pos, s.id,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes an item. Its siblings keep their positions.
func (r *ItemRepo[I]) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM `+r.schema.table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", r.schema.table, id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("%s %d: %w", strings.TrimSuffix(r.schema.table, "s"), id, models.ErrNotFound)
	}
	return nil
}
