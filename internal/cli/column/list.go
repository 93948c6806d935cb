package column

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/embudo/internal/cli"
	"github.com/thenoetrevino/embudo/internal/cli/handler"
	"github.com/thenoetrevino/embudo/internal/cli/styles"
)

// ListCmd returns the column list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the columns of a board",
		Long: `List the columns of a board in display order.

Examples:
  embudo column list --board=Sales
  EMBUDO_BOARD=1 embudo column list --json
`,
		RunE: runList,
	}

	cmd.Flags().String("board", "", "Board ID or name")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err, "")
	}
	defer closeCLI(cliInstance)

	board, err := handler.NewFlagParser(cmd).ParseBoard(ctx, cliInstance.App)
	if err != nil {
		return formatter.FailFor(err)
	}

	columns, err := cliInstance.App.ColumnService.GetColumnsByBoard(ctx, board.ID)
	if err != nil {
		return formatter.FailFor(err)
	}

	if formatter.Quiet {
		for _, c := range columns {
			fmt.Fprintf(formatter.Out, "%d\n", c.ID)
		}
		return nil
	}

	return formatter.Success(columns, func(w io.Writer) {
		if len(columns) == 0 {
			fmt.Fprintf(w, "Board %q has no columns\n", board.Name)
			return
		}
		for _, c := range columns {
			fmt.Fprintf(w, "%s %s\n", styles.LabelStyle.Render(fmt.Sprintf("#%d", c.ID)), c.Name)
		}
	})
}
