package dnd

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/thenoetrevino/embudo/internal/models"
)

// fakeSource is an in-memory data source for models.Card boards. It keeps
// its own canonical state, separate from any Store.
type fakeSource struct {
	board   *models.Board
	columns []*models.Column
	cards   map[int]models.Card
	nextID  int

	moveErr   error
	createErr error
	deleteErr error
	fetchErr  error

	moves         []move
	reorders      []int
	deletedColumn []int
	fetches       int
}

type move struct {
	itemID, columnID, position int
}

var errRejected = errors.New("server rejected the request")

// newFakeSource builds a project board. Each column is given as a name and
// the card titles it holds, in position order.
func newFakeSource(columns ...fakeColumn) *fakeSource {
	src := &fakeSource{
		board:  &models.Board{ID: 1, Name: "Launch", Kind: models.BoardKindProject},
		cards:  make(map[int]models.Card),
		nextID: 100,
	}
	for i, c := range columns {
		colID := 10 + i
		src.columns = append(src.columns, &models.Column{ID: colID, BoardID: 1, Name: c.name, Position: i})
		for pos, title := range c.cards {
			src.nextID++
			src.cards[src.nextID] = models.Card{ID: src.nextID, ColumnID: colID, Position: pos, Title: title}
		}
	}
	return src
}

type fakeColumn struct {
	name  string
	cards []string
}

func col(name string, cards ...string) fakeColumn {
	return fakeColumn{name: name, cards: cards}
}

func (f *fakeSource) FetchBoard(_ context.Context, boardID int) (*models.BoardAggregate[models.Card], error) {
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if boardID != f.board.ID {
		return nil, models.ErrNotFound
	}
	agg := &models.BoardAggregate[models.Card]{
		Board: f.board,
		Items: make(map[int][]models.Card),
	}
	// reversed on purpose, the store must not rely on source ordering
	for i := len(f.columns) - 1; i >= 0; i-- {
		agg.Columns = append(agg.Columns, f.columns[i])
	}
	for _, card := range f.cards {
		agg.Items[card.ColumnID] = append(agg.Items[card.ColumnID], card)
	}
	return agg, nil
}

func (f *fakeSource) Move(_ context.Context, itemID, columnID, position int) error {
	f.moves = append(f.moves, move{itemID, columnID, position})
	if f.moveErr != nil {
		return f.moveErr
	}
	card, ok := f.cards[itemID]
	if !ok {
		return models.ErrNotFound
	}
	f.cards[itemID] = card.Placed(columnID, position)
	return nil
}

func (f *fakeSource) Reorder(_ context.Context, itemID, direction int) error {
	f.reorders = append(f.reorders, itemID*direction)
	return f.moveErr
}

func (f *fakeSource) CreateItem(_ context.Context, columnID int, draft models.ItemDraft) (models.Card, error) {
	if f.createErr != nil {
		return models.Card{}, f.createErr
	}
	count := 0
	for _, c := range f.cards {
		if c.ColumnID == columnID {
			count++
		}
	}
	f.nextID++
	card := models.Card{ID: f.nextID, ColumnID: columnID, Position: count, Title: draft.Title}
	f.cards[card.ID] = card
	return card, nil
}

func (f *fakeSource) UpdateItem(_ context.Context, itemID int, patch models.ItemPatch) (models.Card, error) {
	card, ok := f.cards[itemID]
	if !ok {
		return models.Card{}, models.ErrNotFound
	}
	if patch.Title != nil {
		card.Title = *patch.Title
	}
	f.cards[itemID] = card
	return card, nil
}

func (f *fakeSource) DeleteItem(_ context.Context, itemID int) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.cards, itemID)
	return nil
}

func (f *fakeSource) CreateColumn(_ context.Context, boardID int, draft models.ColumnDraft) (*models.Column, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	c := &models.Column{ID: f.nextID, BoardID: boardID, Name: draft.Name, Position: len(f.columns)}
	f.columns = append(f.columns, c)
	return c, nil
}

func (f *fakeSource) DeleteColumn(_ context.Context, columnID int) error {
	f.deletedColumn = append(f.deletedColumn, columnID)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, c := range f.columns {
		if c.ID == columnID {
			f.columns = append(f.columns[:i], f.columns[i+1:]...)
			break
		}
	}
	for id, card := range f.cards {
		if card.ColumnID == columnID {
			delete(f.cards, id)
		}
	}
	return nil
}

// idOf returns the ID of the card titled title.
func (f *fakeSource) idOf(t *testing.T, title string) int {
	t.Helper()
	for id, c := range f.cards {
		if c.Title == title {
			return id
		}
	}
	t.Fatalf("no card titled %q", title)
	return 0
}

func (f *fakeSource) columnID(t *testing.T, name string) int {
	t.Helper()
	for _, c := range f.columns {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("no column named %q", name)
	return 0
}

// recorder collects notifications.
type recorder struct {
	got []Notification
}

func (r *recorder) Notify(n Notification) {
	r.got = append(r.got, n)
}

func (r *recorder) kinds() []NotificationKind {
	kinds := make([]NotificationKind, 0, len(r.got))
	for _, n := range r.got {
		kinds = append(kinds, n.Kind)
	}
	return kinds
}

func (r *recorder) last() Notification {
	if len(r.got) == 0 {
		return Notification{}
	}
	return r.got[len(r.got)-1]
}

// sequentialIDs returns an op ID generator producing op-1, op-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("op-%d", n)
	}
}

// newTestBoard loads src into a fresh Board.
func newTestBoard(t *testing.T, src *fakeSource, rollback RollbackStrategy) (*Board[models.Card], *recorder) {
	t.Helper()
	rec := &recorder{}
	b := NewBoard[models.Card](src, rec, BoardConfig{
		Gesture:  DefaultGestureConfig(),
		Rollback: rollback,
		OpIDs:    sequentialIDs(),
	})
	if err := b.Load(context.Background(), src.board.ID); err != nil {
		t.Fatalf("load board: %v", err)
	}
	return b, rec
}

// titles renders a column as its card titles in render order.
func titles(s *Store[models.Card], columnID int) []string {
	out := []string{}
	for _, c := range s.Items(columnID) {
		out = append(out, c.Title)
	}
	return out
}

// snapshot reduces a store to column name -> titles for equality checks.
func snapshot(s *Store[models.Card]) map[string][]string {
	out := make(map[string][]string)
	for _, c := range s.Columns() {
		out[c.Name] = titles(s, c.ID)
	}
	return out
}
