package dnd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/embudo/internal/models"
)

func TestParseRollbackStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    RollbackStrategy
		wantErr bool
	}{
		{"", RollbackCompensate, false},
		{"compensate", RollbackCompensate, false},
		{"reload", RollbackReload, false},
		{"undo", RollbackCompensate, true},
	}

	for _, tt := range tests {
		got, err := ParseRollbackStrategy(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, got, mustParse(t, got.String()))
	}
}

func mustParse(t *testing.T, s string) RollbackStrategy {
	t.Helper()
	r, err := ParseRollbackStrategy(s)
	require.NoError(t, err)
	return r
}

func TestEngine_DropMovesAcrossColumns(t *testing.T) {
	src := newFakeSource(col("To Do", "A", "B"), col("Doing", "C"))
	b, rec := newTestBoard(t, src, RollbackCompensate)
	e := b.Engine()
	s := b.Store()
	todo, doing := src.columnID(t, "To Do"), src.columnID(t, "Doing")
	a := src.idOf(t, "A")

	op, err := e.Drop(DragEnd{ActiveID: a, Target: ColumnTarget(doing)})
	require.NoError(t, err)
	require.NotNil(t, op)

	assert.Equal(t, "op-1", op.OpID)
	assert.Equal(t, Placement{ColumnID: todo, Position: 0}, op.From)
	assert.Equal(t, Placement{ColumnID: doing, Position: 1}, op.To)
	assert.Equal(t, "Doing", op.ToColumn)
	assert.Equal(t, 1, op.BoardID)

	card, _ := s.Item(a)
	assert.Equal(t, doing, card.ColumnID)
	assert.Equal(t, 1, card.Position, "position is the pre-move count of the target")
	assert.Equal(t, []string{"B"}, titles(s, todo))
	assert.Equal(t, []string{"C", "A"}, titles(s, doing))
	assert.NoError(t, s.Validate())

	// applied locally, nothing sent yet
	assert.Empty(t, src.moves)
	assert.Len(t, e.Pending(), 1)
	assert.Equal(t, []NotificationKind{NotifySuccess}, rec.kinds())
	assert.Equal(t, `Moved "A" to Doing`, rec.last().Message)
}

func TestEngine_DropOnItemTargetUsesItsColumn(t *testing.T) {
	src := newFakeSource(col("To Do", "A"), col("Doing", "C", "D"))
	b, _ := newTestBoard(t, src, RollbackCompensate)
	doing := src.columnID(t, "Doing")

	op, err := b.Engine().Drop(DragEnd{ActiveID: src.idOf(t, "A"), Target: ItemTarget(src.idOf(t, "C"))})
	require.NoError(t, err)

	assert.Equal(t, Placement{ColumnID: doing, Position: 2}, op.To)
	assert.Equal(t, []string{"C", "D", "A"}, titles(b.Store(), doing))
}

func TestEngine_SameColumnDropIsNoop(t *testing.T) {
	src := newFakeSource(col("To Do", "A", "B"), col("Doing"))
	b, rec := newTestBoard(t, src, RollbackCompensate)
	todo := src.columnID(t, "To Do")
	before := snapshot(b.Store())

	for _, target := range []Target{ColumnTarget(todo), ItemTarget(src.idOf(t, "B"))} {
		op, err := b.Engine().Drop(DragEnd{ActiveID: src.idOf(t, "A"), Target: target})
		assert.NoError(t, err)
		assert.Nil(t, op)
	}

	assert.Equal(t, before, snapshot(b.Store()))
	assert.Empty(t, b.Pending())
	assert.Empty(t, rec.got)
	assert.Empty(t, src.moves)
}

func TestEngine_DropUnknown(t *testing.T) {
	src := newFakeSource(col("To Do", "A"), col("Doing"))
	b, _ := newTestBoard(t, src, RollbackCompensate)

	_, err := b.Engine().Drop(DragEnd{ActiveID: 999, Target: ColumnTarget(src.columnID(t, "Doing"))})
	assert.ErrorIs(t, err, ErrUnknownItem)

	_, err = b.Engine().Drop(DragEnd{ActiveID: src.idOf(t, "A"), Target: ColumnTarget(999)})
	assert.ErrorIs(t, err, ErrUnknownTarget)

	_, err = b.Engine().Drop(DragEnd{ActiveID: src.idOf(t, "A"), Target: ItemTarget(999)})
	assert.ErrorIs(t, err, ErrUnknownTarget)
}

func TestEngine_CommitAndSettleSuccess(t *testing.T) {
	src := newFakeSource(col("To Do", "A"), col("Doing"))
	b, rec := newTestBoard(t, src, RollbackCompensate)
	doing := src.columnID(t, "Doing")

	op, err := b.Engine().Drop(DragEnd{ActiveID: src.idOf(t, "A"), Target: ColumnTarget(doing)})
	require.NoError(t, err)

	err = b.Engine().Commit(context.Background(), op)
	require.NoError(t, err)
	assert.Equal(t, []move{{op.ItemID, doing, 0}}, src.moves)

	assert.Equal(t, OutcomeCommitted, b.Engine().Settle(op, nil))
	assert.Empty(t, b.Pending())
	assert.Equal(t, []NotificationKind{NotifySuccess}, rec.kinds())
}

func TestEngine_FailedMoveIsCompensated(t *testing.T) {
	src := newFakeSource(col("To Do", "A", "B"), col("Doing"))
	b, rec := newTestBoard(t, src, RollbackCompensate)
	todo, doing := src.columnID(t, "To Do"), src.columnID(t, "Doing")
	src.moveErr = errRejected

	op, err := b.Engine().Drop(DragEnd{ActiveID: src.idOf(t, "B"), Target: ColumnTarget(doing)})
	require.NoError(t, err)

	commitErr := b.Engine().Commit(context.Background(), op)
	require.ErrorIs(t, commitErr, errRejected)

	assert.Equal(t, OutcomeCompensated, b.Engine().Settle(op, commitErr))
	assert.Equal(t, []string{"A", "B"}, titles(b.Store(), todo))
	assert.Empty(t, titles(b.Store(), doing))
	card, _ := b.Store().Item(src.idOf(t, "B"))
	assert.Equal(t, 1, card.Position)

	// optimistic success first, then the failure
	assert.Equal(t, []NotificationKind{NotifySuccess, NotifyError}, rec.kinds())
	assert.Contains(t, rec.last().Message, "restored")
	assert.Equal(t, 1, src.fetches, "compensation does not refetch")
	assert.NoError(t, b.Store().Validate())
}

func TestEngine_CompensationLeavesOtherPendingMoves(t *testing.T) {
	src := newFakeSource(col("To Do", "A", "B"), col("Doing"), col("Done"))
	b, _ := newTestBoard(t, src, RollbackCompensate)
	todo := src.columnID(t, "To Do")
	doing, done := src.columnID(t, "Doing"), src.columnID(t, "Done")

	opA, err := b.Engine().Drop(DragEnd{ActiveID: src.idOf(t, "A"), Target: ColumnTarget(doing)})
	require.NoError(t, err)
	opB, err := b.Engine().Drop(DragEnd{ActiveID: src.idOf(t, "B"), Target: ColumnTarget(done)})
	require.NoError(t, err)
	require.Len(t, b.Pending(), 2)

	assert.Equal(t, OutcomeCompensated, b.Engine().Settle(opA, errRejected))

	assert.Equal(t, []string{"A"}, titles(b.Store(), todo))
	assert.Equal(t, []string{"B"}, titles(b.Store(), done), "unrelated pending move survives")
	require.Len(t, b.Pending(), 1)
	assert.Equal(t, opB.OpID, b.Pending()[0].OpID)
}

func TestEngine_LaterMoveOfSameItemForcesReload(t *testing.T) {
	src := newFakeSource(col("To Do", "A"), col("Doing"), col("Done"))
	b, rec := newTestBoard(t, src, RollbackCompensate)
	a := src.idOf(t, "A")

	first, err := b.Engine().Drop(DragEnd{ActiveID: a, Target: ColumnTarget(src.columnID(t, "Doing"))})
	require.NoError(t, err)
	_, err = b.Engine().Drop(DragEnd{ActiveID: a, Target: ColumnTarget(src.columnID(t, "Done"))})
	require.NoError(t, err)

	assert.Equal(t, OutcomeNeedsReload, b.Engine().Settle(first, errRejected))
	assert.Contains(t, rec.last().Message, "reloading")
	card, _ := b.Store().Item(a)
	assert.Equal(t, src.columnID(t, "Done"), card.ColumnID, "state is left for the reload")
}

func TestEngine_SupersededMoveForcesReload(t *testing.T) {
	src := newFakeSource(col("To Do", "A"), col("Doing"))
	b, _ := newTestBoard(t, src, RollbackCompensate)

	op, err := b.Engine().Drop(DragEnd{ActiveID: src.idOf(t, "A"), Target: ColumnTarget(src.columnID(t, "Doing"))})
	require.NoError(t, err)

	require.NoError(t, b.Load(context.Background(), 1))

	assert.Equal(t, OutcomeNeedsReload, b.Engine().Settle(op, nil), "a reload may have raced the commit")
}

func TestEngine_ReloadStrategy(t *testing.T) {
	src := newFakeSource(col("To Do", "A"), col("Doing"))
	b, rec := newTestBoard(t, src, RollbackReload)

	op, err := b.Engine().Drop(DragEnd{ActiveID: src.idOf(t, "A"), Target: ColumnTarget(src.columnID(t, "Doing"))})
	require.NoError(t, err)

	assert.Equal(t, OutcomeNeedsReload, b.Engine().Settle(op, errRejected))
	assert.Equal(t, NotifyError, rec.last().Kind)
}

func TestEngine_CompensationSkippedWhenSourceColumnGone(t *testing.T) {
	src := newFakeSource(col("To Do", "A"), col("Doing"))
	b, _ := newTestBoard(t, src, RollbackCompensate)
	todo := src.columnID(t, "To Do")

	op, err := b.Engine().Drop(DragEnd{ActiveID: src.idOf(t, "A"), Target: ColumnTarget(src.columnID(t, "Doing"))})
	require.NoError(t, err)
	b.Store().RemoveColumn(todo)

	assert.Equal(t, OutcomeNeedsReload, b.Engine().Settle(op, errRejected))
}

func TestEngine_DealBoard(t *testing.T) {
	store := NewStore[models.Deal]()
	store.Load(&models.BoardAggregate[models.Deal]{
		Board:   &models.Board{ID: 2, Name: "Sales", Kind: models.BoardKindPipeline},
		Columns: []*models.Column{{ID: 1, Name: "Lead"}, {ID: 2, Name: "Won", Position: 1}},
		Items: map[int][]models.Deal{
			1: {{ID: 5, ColumnID: 1, Title: "Renewal", Company: "Acme"}},
		},
	})
	rec := &recorder{}
	e := NewEngine(store, moveFunc(func(context.Context, int, int, int) error { return nil }), rec)

	op, err := e.Drop(DragEnd{ActiveID: 5, Target: ColumnTarget(2)})
	require.NoError(t, err)

	assert.Equal(t, `Moved "Renewal · Acme" to Won`, rec.last().Message)
	assert.NoError(t, e.Commit(context.Background(), op))
	assert.Equal(t, OutcomeCommitted, e.Settle(op, nil))
	deal, _ := store.Item(5)
	assert.Equal(t, 2, deal.ColumnID)
}

type moveFunc func(ctx context.Context, itemID, columnID, position int) error

func (f moveFunc) Move(ctx context.Context, itemID, columnID, position int) error {
	return f(ctx, itemID, columnID, position)
}
