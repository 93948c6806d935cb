package column

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/embudo/internal/models"
	"github.com/thenoetrevino/embudo/internal/testutil"
)

// seeded columns: board 1 has 1 To Do, 2 Doing, 3 Done; board 2 has 4 Lead,
// 5 Qualified, 6 Proposal, 7 Won, 8 Lost.

func newTestService(t *testing.T) (Service, *testutil.RecordingPublisher) {
	t.Helper()
	pub := testutil.NewRecordingPublisher()
	return NewService(testutil.SetupTestRepo(t), pub), pub
}

func TestCreateColumn(t *testing.T) {
	ctx := context.Background()
	svc, pub := newTestService(t)

	col, err := svc.CreateColumn(ctx, 1, models.ColumnDraft{Name: " Review ", Color: "#f00"})
	require.NoError(t, err)
	assert.Equal(t, "Review", col.Name)
	assert.Equal(t, 3, col.Position)
	assert.Equal(t, []int{1}, pub.BoardIDs())

	cols, err := svc.GetColumnsByBoard(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cols, 4)
	assert.Equal(t, "Review", cols[3].Name)
}

func TestCreateColumn_Validation(t *testing.T) {
	ctx := context.Background()
	svc, pub := newTestService(t)

	tests := []struct {
		name    string
		boardID int
		draft   models.ColumnDraft
		want    error
	}{
		{"invalid board", 0, models.ColumnDraft{Name: "x"}, ErrInvalidBoardID},
		{"empty name", 1, models.ColumnDraft{Name: "  "}, ErrEmptyName},
		{"long name", 1, models.ColumnDraft{Name: string(make([]byte, 51))}, ErrNameTooLong},
		{"missing board", 99, models.ColumnDraft{Name: "x"}, models.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateColumn(ctx, tt.boardID, tt.draft)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, pub.Sent())
}

func TestRenameColumn(t *testing.T) {
	ctx := context.Background()
	svc, pub := newTestService(t)

	require.NoError(t, svc.RenameColumn(ctx, 5, "Discovery"))
	col, err := svc.GetColumnByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Discovery", col.Name)
	assert.Equal(t, []int{2}, pub.BoardIDs())

	assert.ErrorIs(t, svc.RenameColumn(ctx, 5, ""), ErrEmptyName)
	assert.ErrorIs(t, svc.RenameColumn(ctx, 99, "x"), models.ErrNotFound)
}

func TestDeleteColumn_WithItems(t *testing.T) {
	ctx := context.Background()
	repo := testutil.SetupTestRepo(t)
	pub := testutil.NewRecordingPublisher()
	svc := NewService(repo, pub)

	testutil.CreateTestCard(t, repo, 2, "A")
	testutil.CreateTestCard(t, repo, 2, "B")

	count, err := svc.CountItems(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, svc.DeleteColumn(ctx, 2))
	assert.Equal(t, []int{1}, pub.BoardIDs())

	cols, err := svc.GetColumnsByBoard(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, cols, 2)

	assert.ErrorIs(t, svc.DeleteColumn(ctx, 2), models.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteColumn(ctx, -1), ErrInvalidColumnID)
}

func TestResolveColumn(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	tests := []struct {
		query  string
		wantID int
		want   error
	}{
		{"won", 7, nil},
		{"LEAD", 4, nil},
		{"qual", 5, nil},
		{"prop", 6, nil},
		{"zzz", 0, ErrColumnNotFound},
		{"", 0, ErrEmptyName},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			col, err := svc.ResolveColumn(ctx, 2, tt.query)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, col.ID)
		})
	}
}

func TestResolveColumn_Ambiguous(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.CreateColumn(ctx, 1, models.ColumnDraft{Name: "Dev A"})
	require.NoError(t, err)
	_, err = svc.CreateColumn(ctx, 1, models.ColumnDraft{Name: "Dev B"})
	require.NoError(t, err)

	_, err = svc.ResolveColumn(ctx, 1, "dev")
	assert.ErrorIs(t, err, ErrAmbiguousColumn)
}
