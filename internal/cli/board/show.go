package board

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/embudo/internal/cli"
	"github.com/thenoetrevino/embudo/internal/cli/handler"
	"github.com/thenoetrevino/embudo/internal/cli/styles"
	"github.com/thenoetrevino/embudo/internal/dnd"
	"github.com/thenoetrevino/embudo/internal/models"
	itemservice "github.com/thenoetrevino/embudo/internal/services/item"
)

// ShowCmd returns the board show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [board]",
		Short: "Show a board with its columns and items",
		Long: `Print a board column by column, in display order.

The board is given by ID or name, as an argument, with --board or through
the EMBUDO_BOARD environment variable.

Examples:
  embudo board show Projects
  embudo board show --board=2 --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShow,
	}

	cmd.Flags().String("board", "", "Board ID or name")
	cli.AddOutputFlags(cmd)

	return cmd
}

// columnView is the JSON shape of one column of a shown board
type columnView[I any] struct {
	Column *models.Column
	Items  []I
}

type boardView[I any] struct {
	Board   *models.Board
	Columns []columnView[I]
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	if len(args) == 1 {
		_ = cmd.Flags().Set("board", args[0])
	}
	ref, err := handler.NewFlagParser(cmd).BoardRef()
	if err != nil {
		return formatter.Fail(cli.ExitUsage, "NO_BOARD", err, "Use 'embudo board list' to see available boards")
	}

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err, "")
	}
	defer closeCLI(cliInstance)

	board, err := cli.ResolveBoard(ctx, cliInstance.App, ref)
	if err != nil {
		return formatter.FailFor(err)
	}

	if board.Kind == models.BoardKindPipeline {
		return showBoard(ctx, formatter, cliInstance.App.DealService, board, cli.DealLine)
	}
	return showBoard(ctx, formatter, cliInstance.App.CardService, board, cli.CardLine)
}

func showBoard[I dnd.Item[I]](
	ctx context.Context,
	formatter *cli.OutputFormatter,
	svc itemservice.Service[I],
	board *models.Board,
	line func(I) string,
) error {
	agg, err := svc.FetchBoard(ctx, board.ID)
	if err != nil {
		return formatter.FailFor(err)
	}

	// the store gives the same column and item order as the board screen
	store := dnd.NewStore[I]()
	store.Load(agg)

	view := boardView[I]{Board: store.Board()}
	for _, col := range store.Columns() {
		view.Columns = append(view.Columns, columnView[I]{Column: col, Items: store.Items(col.ID)})
	}

	if formatter.Quiet {
		fmt.Fprintf(formatter.Out, "%d\n", board.ID)
		return nil
	}

	return formatter.Success(view, func(w io.Writer) {
		fmt.Fprintln(w, styles.TitleStyle.Render(board.Name)+" "+styles.SubtitleStyle.Render("("+string(board.Kind)+")"))
		if strings.TrimSpace(board.Description) != "" {
			fmt.Fprintln(w, styles.SubtitleStyle.Render(board.Description))
		}

		rendered := make([]string, 0, len(view.Columns))
		for _, col := range view.Columns {
			lines := make([]string, len(col.Items))
			for i, item := range col.Items {
				lines[i] = line(item)
			}
			header := fmt.Sprintf("%s (%d)", col.Column.Name, len(col.Items))
			rendered = append(rendered, styles.RenderColumn(header, lines))
		}
		fmt.Fprintln(w, styles.RenderBoard(rendered))
	})
}
