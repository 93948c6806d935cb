package board

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/embudo/internal/cli"
	"github.com/thenoetrevino/embudo/internal/cli/handler"
)

// DeleteCmd returns the board delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a board",
		Long: `Delete a board with all of its columns and items (requires confirmation
unless --force, --json or --quiet).

Examples:
  embudo board delete --board=3
  embudo board delete --board=Ops --force
`,
		RunE: runDelete,
	}

	cmd.Flags().String("board", "", "Board ID or name (required)")
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	parser := handler.NewFlagParser(cmd)

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err, "")
	}
	defer closeCLI(cliInstance)

	board, err := parser.ParseBoard(ctx, cliInstance.App)
	if err != nil {
		return formatter.FailFor(err)
	}

	if cli.ShouldConfirm(cmd) {
		ok, err := cli.Confirm(cmd,
			fmt.Sprintf("Delete board %q?", board.Name),
			"All of its columns and items will be deleted too.",
			"Delete")
		if err != nil {
			return formatter.FailFor(err)
		}
		if !ok {
			return formatter.Fail(cli.ExitCancelled, "CANCELLED", cli.ErrCancelled, "")
		}
	}

	if err := cliInstance.App.BoardService.DeleteBoard(ctx, board.ID); err != nil {
		return formatter.FailFor(err)
	}

	if formatter.Quiet {
		return nil
	}
	return formatter.Success(map[string]any{"board_id": board.ID}, func(w io.Writer) {
		fmt.Fprintf(w, "Board %q deleted successfully\n", board.Name)
	})
}
