package dnd

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/thenoetrevino/embudo/internal/models"
)

// Store is the in-memory container model for one board. Columns and items
// are kept normalized: lookups by ID plus an ordered ID list per column that
// always matches ascending (position, id) order.
//
// A Store is owned by a single goroutine (the UI loop) and is not safe for
// concurrent use.
type Store[I Item[I]] struct {
	board       *models.Board
	columnsByID map[int]*models.Column
	columnOrder []int
	itemsByID   map[int]I
	order       map[int][]int

	// epoch increments every time the whole board is replaced
	epoch uint64
}

// NewStore creates an empty store.
func NewStore[I Item[I]]() *Store[I] {
	return &Store[I]{
		columnsByID: make(map[int]*models.Column),
		itemsByID:   make(map[int]I),
		order:       make(map[int][]int),
	}
}

// Load discards the current contents and replaces them with agg.
// The data source does not guarantee ordering, so everything is sorted here.
func (s *Store[I]) Load(agg *models.BoardAggregate[I]) {
	s.board = agg.Board
	s.columnsByID = make(map[int]*models.Column, len(agg.Columns))
	s.columnOrder = make([]int, 0, len(agg.Columns))
	s.itemsByID = make(map[int]I)
	s.order = make(map[int][]int, len(agg.Columns))

	for _, col := range agg.Columns {
		c := *col
		s.columnsByID[c.ID] = &c
		s.columnOrder = append(s.columnOrder, c.ID)
		s.order[c.ID] = []int{}
	}
	s.sortColumns()

	for _, items := range agg.Items {
		for _, item := range items {
			columnID := item.GetColumnID()
			if _, ok := s.columnsByID[columnID]; !ok {
				continue
			}
			s.itemsByID[item.GetID()] = item
			s.order[columnID] = append(s.order[columnID], item.GetID())
		}
	}
	for _, ids := range s.order {
		slices.SortFunc(ids, s.compareItems)
	}

	s.epoch++
}

// Board returns the loaded board, or nil before the first Load.
func (s *Store[I]) Board() *models.Board {
	return s.board
}

// Epoch identifies the current wholesale snapshot.
func (s *Store[I]) Epoch() uint64 {
	return s.epoch
}

// Columns returns the columns in display order.
func (s *Store[I]) Columns() []*models.Column {
	columns := make([]*models.Column, 0, len(s.columnOrder))
	for _, id := range s.columnOrder {
		columns = append(columns, s.columnsByID[id])
	}
	return columns
}

// Column looks up a column by ID.
func (s *Store[I]) Column(id int) (*models.Column, bool) {
	col, ok := s.columnsByID[id]
	return col, ok
}

// ColumnIndex returns the display index of a column, or -1.
func (s *Store[I]) ColumnIndex(id int) int {
	return slices.Index(s.columnOrder, id)
}

// ColumnAt returns the column at display index i.
func (s *Store[I]) ColumnAt(i int) (*models.Column, bool) {
	if i < 0 || i >= len(s.columnOrder) {
		return nil, false
	}
	return s.columnsByID[s.columnOrder[i]], true
}

// ColumnCount returns the number of columns on the board.
func (s *Store[I]) ColumnCount() int {
	return len(s.columnOrder)
}

// Items returns the items of a column in render order.
func (s *Store[I]) Items(columnID int) []I {
	ids := s.order[columnID]
	items := make([]I, 0, len(ids))
	for _, id := range ids {
		items = append(items, s.itemsByID[id])
	}
	return items
}

// Item looks up an item by ID.
func (s *Store[I]) Item(id int) (I, bool) {
	item, ok := s.itemsByID[id]
	return item, ok
}

// Count returns how many items a column holds.
func (s *Store[I]) Count(columnID int) int {
	return len(s.order[columnID])
}

// IndexOf returns the render index of an item within its column, or -1.
func (s *Store[I]) IndexOf(id int) int {
	item, ok := s.itemsByID[id]
	if !ok {
		return -1
	}
	return slices.Index(s.order[item.GetColumnID()], id)
}

// InsertColumn adds a column confirmed by the data source.
func (s *Store[I]) InsertColumn(col *models.Column) {
	c := *col
	if _, exists := s.columnsByID[c.ID]; !exists {
		s.columnOrder = append(s.columnOrder, c.ID)
		s.order[c.ID] = []int{}
	}
	s.columnsByID[c.ID] = &c
	s.sortColumns()
}

// RemoveColumn deletes a column and every item it holds.
// Sibling positions are left untouched.
func (s *Store[I]) RemoveColumn(id int) bool {
	if _, ok := s.columnsByID[id]; !ok {
		return false
	}
	for _, itemID := range s.order[id] {
		delete(s.itemsByID, itemID)
	}
	delete(s.order, id)
	delete(s.columnsByID, id)
	s.columnOrder = slices.DeleteFunc(s.columnOrder, func(c int) bool { return c == id })
	return true
}

// InsertItem adds or replaces an item at the placement it carries.
func (s *Store[I]) InsertItem(item I) error {
	columnID := item.GetColumnID()
	if _, ok := s.columnsByID[columnID]; !ok {
		return fmt.Errorf("insert item %d: %w", item.GetID(), ErrUnknownColumn)
	}
	if _, exists := s.itemsByID[item.GetID()]; exists {
		s.detach(item.GetID())
	}
	s.itemsByID[item.GetID()] = item
	s.attach(item)
	return nil
}

// RemoveItem deletes an item without renumbering its siblings.
func (s *Store[I]) RemoveItem(id int) bool {
	if _, ok := s.itemsByID[id]; !ok {
		return false
	}
	s.detach(id)
	delete(s.itemsByID, id)
	return true
}

// place moves an existing item to a new placement in one step and returns
// where it was before. There is no intermediate state where the item is in
// neither column.
func (s *Store[I]) place(id int, to Placement) (Placement, error) {
	item, ok := s.itemsByID[id]
	if !ok {
		return Placement{}, ErrUnknownItem
	}
	if _, ok := s.columnsByID[to.ColumnID]; !ok {
		return Placement{}, ErrUnknownColumn
	}
	from := Placement{ColumnID: item.GetColumnID(), Position: item.GetPosition()}

	s.detach(id)
	moved := item.Placed(to.ColumnID, to.Position)
	s.itemsByID[id] = moved
	s.attach(moved)
	return from, nil
}

// Validate checks the store invariants. It is cheap enough for tests and
// debug assertions, not for every frame.
func (s *Store[I]) Validate() error {
	seen := make(map[int]int, len(s.itemsByID))
	for columnID, ids := range s.order {
		if _, ok := s.columnsByID[columnID]; !ok {
			return fmt.Errorf("order list for missing column %d", columnID)
		}
		for i, id := range ids {
			item, ok := s.itemsByID[id]
			if !ok {
				return fmt.Errorf("column %d lists unknown item %d", columnID, id)
			}
			if item.GetColumnID() != columnID {
				return fmt.Errorf("item %d listed in column %d but belongs to %d", id, columnID, item.GetColumnID())
			}
			if prev, dup := seen[id]; dup {
				return fmt.Errorf("item %d listed in columns %d and %d", id, prev, columnID)
			}
			seen[id] = columnID
			if i > 0 && s.compareItems(ids[i-1], id) > 0 {
				return fmt.Errorf("column %d out of position order at index %d", columnID, i)
			}
		}
	}
	if len(seen) != len(s.itemsByID) {
		return fmt.Errorf("%d items are not listed in any column", len(s.itemsByID)-len(seen))
	}
	return nil
}

func (s *Store[I]) attach(item I) {
	columnID := item.GetColumnID()
	ids := s.order[columnID]
	i, _ := slices.BinarySearchFunc(ids, item.GetID(), s.compareItems)
	s.order[columnID] = slices.Insert(ids, i, item.GetID())
}

func (s *Store[I]) detach(id int) {
	item := s.itemsByID[id]
	columnID := item.GetColumnID()
	s.order[columnID] = slices.DeleteFunc(s.order[columnID], func(other int) bool { return other == id })
}

// compareItems orders by position, then by ID so that duplicate positions
// still render deterministically.
func (s *Store[I]) compareItems(a, b int) int {
	itemA, itemB := s.itemsByID[a], s.itemsByID[b]
	if c := cmp.Compare(itemA.GetPosition(), itemB.GetPosition()); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}

func (s *Store[I]) sortColumns() {
	slices.SortFunc(s.columnOrder, func(a, b int) int {
		if c := cmp.Compare(s.columnsByID[a].Position, s.columnsByID[b].Position); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}
