package item

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/embudo/internal/cli"
	"github.com/thenoetrevino/embudo/internal/cli/handler"
	"github.com/thenoetrevino/embudo/internal/dnd"
	"github.com/thenoetrevino/embudo/internal/models"
)

func listCmd[I dnd.Item[I]](k kind[I]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List the %ss of a board", k.use),
		Long: fmt.Sprintf(`List %[1]ss in display order, optionally for a single column.

Examples:
  embudo %[1]s list --board=%[2]s
  embudo %[1]s list --board=%[2]s --column=%[3]s --json
`, k.use, exampleBoard(k.boardKind), exampleColumn(k.boardKind)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, k)
		},
	}

	cmd.Flags().String("board", "", "Board ID or name")
	cmd.Flags().String("column", "", "Only this column (ID or name)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList[I dnd.Item[I]](cmd *cobra.Command, k kind[I]) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	parser := handler.NewFlagParser(cmd)
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

	agg, err := k.service(cliInstance.App).FetchBoard(ctx, board.ID)
	if err != nil {
		return formatter.FailFor(err)
	}
	store := dnd.NewStore[I]()
	store.Load(agg)

	columns := store.Columns()
	if columnRef != "" {
		column, err := cli.ResolveColumn(ctx, cliInstance.App, board.ID, columnRef)
		if err != nil {
			return formatter.FailFor(err)
		}
		if c, ok := store.Column(column.ID); ok {
			columns = []*models.Column{c}
		}
	}

	items := []I{}
	for _, c := range columns {
		items = append(items, store.Items(c.ID)...)
	}

	if formatter.Quiet {
		for _, item := range items {
			fmt.Fprintf(formatter.Out, "%d\n", item.GetID())
		}
		return nil
	}

	return formatter.Success(items, func(w io.Writer) {
		if len(items) == 0 {
			fmt.Fprintf(w, "No %ss found\n", k.use)
			return
		}
		for _, c := range columns {
			for _, item := range store.Items(c.ID) {
				fmt.Fprintf(w, "%-12s %s\n", c.Name, k.line(item))
			}
		}
	})
}
