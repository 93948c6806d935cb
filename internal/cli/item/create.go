package item

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/embudo/internal/cli"
	"github.com/thenoetrevino/embudo/internal/cli/handler"
	"github.com/thenoetrevino/embudo/internal/database"
	"github.com/thenoetrevino/embudo/internal/dnd"
	"github.com/thenoetrevino/embudo/internal/models"
)

func createCmd[I dnd.Item[I]](k kind[I]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: fmt.Sprintf("Create a new %s", k.use),
		Long: fmt.Sprintf(`Create a %[1]s at the bottom of a column.

Examples:
  # Into the first column of the board
  embudo %[1]s create --board=%[2]s --title="Kickoff"

  # Into a column by name, capturing the new ID
  ID=$(embudo %[1]s create --board=%[2]s --column=%[3]s --title="Kickoff" --quiet)
`, k.use, exampleBoard(k.boardKind), exampleColumn(k.boardKind)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, k)
		},
	}

	cmd.Flags().String("title", "", "Title (required)")
	_ = cmd.MarkFlagRequired("title")
	cmd.Flags().String("board", "", "Board ID or name")
	cmd.Flags().String("column", "", "Column ID or name (defaults to the first column)")
	cmd.Flags().String("description", "", "Description")
	cmd.Flags().String("priority", "", "Priority: trivial, low, medium, high, critical")
	k.flags(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate[I dnd.Item[I]](cmd *cobra.Command, k kind[I]) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	parser := handler.NewFlagParser(cmd)

	draft := models.ItemDraft{}
	var err error
	if draft.Title, err = parser.ParseString("title"); err != nil {
		return formatter.Fail(cli.ExitUsage, "USAGE_ERROR", err, "")
	}
	draft.Description, _ = parser.ParseStringOptional("description")
	if draft.PriorityID, err = parser.ParsePriority("priority"); err != nil {
		return formatter.FailFor(err)
	}
	if err := k.draft(parser, &draft); err != nil {
		return formatter.FailFor(err)
	}
	columnRef, _ := parser.ParseStringOptional("column")

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err, "")
	}
	defer closeCLI(cliInstance)

	board, err := parser.ParseBoard(ctx, cliInstance.App)
	if err != nil {
		return formatter.FailFor(err)
	}
	if board.Kind != k.boardKind {
		return formatter.Fail(cli.ExitDataErr, "WRONG_BOARD",
			fmt.Errorf("board %q: %w", board.Name, database.ErrWrongBoardKind),
			fmt.Sprintf("%ss live on %s boards", k.use, k.boardKind))
	}

	var column *models.Column
	if columnRef != "" {
		column, err = cli.ResolveColumn(ctx, cliInstance.App, board.ID, columnRef)
	} else {
		column, err = firstColumn(cmd, cliInstance, board.ID)
	}
	if err != nil {
		return formatter.FailFor(err)
	}

	item, err := k.service(cliInstance.App).CreateItem(ctx, column.ID, draft)
	if err != nil {
		return formatter.FailFor(err)
	}

	return formatter.Success(item, func(w io.Writer) {
		fmt.Fprintf(w, "Created %s in %s: %s\n", k.use, column.Name, k.line(item))
	})
}

func firstColumn(cmd *cobra.Command, c *cli.CLI, boardID int) (*models.Column, error) {
	columns, err := c.App.ColumnService.GetColumnsByBoard(cmd.Context(), boardID)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("board %d has no columns: %w", boardID, models.ErrNotFound)
	}
	return columns[0], nil
}

func exampleBoard(kind models.BoardKind) string {
	if kind == models.BoardKindPipeline {
		return "Sales"
	}
	return "Projects"
}

func exampleColumn(kind models.BoardKind) string {
	if kind == models.BoardKindPipeline {
		return "Qualified"
	}
	return "Doing"
}
