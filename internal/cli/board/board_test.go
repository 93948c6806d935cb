package board

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/embudo/internal/cli"
	"github.com/thenoetrevino/embudo/internal/models"
	"github.com/thenoetrevino/embudo/internal/testutil"
	clitest "github.com/thenoetrevino/embudo/internal/testutil/cli"
)

func TestListCommand(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	t.Run("human", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ListCmd())
		require.NoError(t, err)
		assert.Contains(t, output, "Projects")
		assert.Contains(t, output, "Sales")
		assert.Contains(t, output, "pipeline")
	})

	t.Run("json", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), "--json")
		require.NoError(t, err)
		result := testutil.ParseJSON(t, output)
		assert.Equal(t, true, result["success"])
		assert.Len(t, result["data"], 2)
	})

	t.Run("quiet", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), "--quiet")
		require.NoError(t, err)
		assert.Equal(t, "1\n2\n", output)
	})
}

func TestCreateCommand(t *testing.T) {
	repo, app := clitest.SetupCLITest(t)
	ctx := context.Background()

	t.Run("project board gets default columns", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), "--name", "Website", "--quiet")
		require.NoError(t, err)

		id, err := strconv.Atoi(strings.TrimSpace(output))
		require.NoError(t, err)

		board, err := repo.GetBoardByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.BoardKindProject, board.Kind)

		columns, err := repo.GetColumnsByBoard(ctx, id)
		require.NoError(t, err)
		require.Len(t, columns, 3)
		assert.Equal(t, "To Do", columns[0].Name)
	})

	t.Run("pipeline with explicit columns", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, CreateCmd(),
			"--name", "Enterprise", "--kind", "pipeline", "--columns", "Intro,Demo,Signed", "--json")
		require.NoError(t, err)

		result := testutil.ParseJSON(t, output)
		data := result["data"].(map[string]any)
		assert.Equal(t, "pipeline", data["Kind"])

		columns, err := repo.GetColumnsByBoard(ctx, int(data["ID"].(float64)))
		require.NoError(t, err)
		require.Len(t, columns, 3)
		assert.Equal(t, "Signed", columns[2].Name)
	})

	t.Run("invalid kind", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), "--name", "Odd", "--kind", "scrum")
		require.Error(t, err)
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, app, CreateCmd())
		assert.Error(t, err)
	})
}

func TestShowCommand(t *testing.T) {
	repo, app := clitest.SetupCLITest(t)
	testutil.CreateTestCard(t, repo, 2, "Write docs")
	testutil.CreateTestDeal(t, repo, 5, "Renewal", "Acme", 120000)

	t.Run("project board by name", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ShowCmd(), "Projects")
		require.NoError(t, err)
		assert.Contains(t, output, "Doing (1)")
		assert.Contains(t, output, "Write docs")
		assert.Contains(t, output, "(empty)")
	})

	t.Run("pipeline board as json", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ShowCmd(), "--board", "2", "--json")
		require.NoError(t, err)

		result := testutil.ParseJSON(t, output)
		data := result["data"].(map[string]any)
		columns := data["Columns"].([]any)
		require.Len(t, columns, 5)

		qualified := columns[1].(map[string]any)
		items := qualified["Items"].([]any)
		require.Len(t, items, 1)
		assert.Equal(t, "Acme", items[0].(map[string]any)["Company"])
	})

	t.Run("board from env", func(t *testing.T) {
		t.Setenv("EMBUDO_BOARD", "Sales")
		output, err := clitest.ExecuteCLICommand(t, app, ShowCmd(), "--quiet")
		require.NoError(t, err)
		assert.Equal(t, "2\n", output)
	})

	t.Run("unknown board", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, app, ShowCmd(), "Nope")
		require.Error(t, err)
		assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
	})
}

func TestDeleteCommand(t *testing.T) {
	repo, app := clitest.SetupCLITest(t)
	board, _ := testutil.CreateTestBoard(t, repo, "Scratch", models.BoardKindProject, "A")

	_, err := clitest.ExecuteCLICommand(t, app, DeleteCmd(), "--board", "Scratch", "--force")
	require.NoError(t, err)

	_, err = repo.GetBoardByID(context.Background(), board.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
