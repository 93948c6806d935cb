package column

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/embudo/internal/cli"
	"github.com/thenoetrevino/embudo/internal/cli/handler"
	"github.com/thenoetrevino/embudo/internal/dnd"
)

// DeleteCmd returns the column delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a column",
		Long: `Delete a column by ID (requires confirmation unless --force, --json or --quiet).

Warning: the cards or deals still in the column are deleted with it.

Examples:
  # Delete with confirmation
  embudo column delete --id=4

  # Skip confirmation
  embudo column delete --id=4 --force
`,
		RunE: runDelete,
	}

	cmd.Flags().Int("id", 0, "Column ID (required)")
	_ = cmd.MarkFlagRequired("id")
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	columnID, err := handler.NewFlagParser(cmd).ParseID("id")
	if err != nil {
		return formatter.Fail(cli.ExitUsage, "USAGE_ERROR", err, "")
	}

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err, "")
	}
	defer closeCLI(cliInstance)

	a := cliInstance.App
	column, err := a.ColumnService.GetColumnByID(ctx, columnID)
	if err != nil {
		return formatter.Fail(cli.ExitNotFound, "COLUMN_NOT_FOUND", err,
			"Use 'embudo column list' to see the columns of a board")
	}
	board, err := a.BoardService.GetBoardByID(ctx, column.BoardID)
	if err != nil {
		return formatter.FailFor(err)
	}
	count, err := a.ColumnService.CountItems(ctx, columnID)
	if err != nil {
		return formatter.FailFor(err)
	}

	prompt := dnd.NewColumnDeletePrompt(column.ID, column.Name, count, dnd.ItemNoun(board.Kind, count))
	if cli.ShouldConfirm(cmd) {
		ok, err := cli.Confirm(cmd, prompt.Title, prompt.Message, "Delete")
		if err != nil {
			return formatter.FailFor(err)
		}
		if !ok {
			return formatter.Fail(cli.ExitCancelled, "CANCELLED", cli.ErrCancelled, "")
		}
	}

	if err := a.ColumnService.DeleteColumn(ctx, columnID); err != nil {
		return formatter.FailFor(err)
	}

	if formatter.Quiet {
		return nil
	}
	return formatter.Success(map[string]any{
		"column_id":     columnID,
		"deleted_items": count,
	}, func(w io.Writer) {
		if prompt.Blocking {
			fmt.Fprintf(w, "Column %q deleted with %d %s\n", column.Name, count, dnd.ItemNoun(board.Kind, count))
			return
		}
		fmt.Fprintf(w, "Column %q deleted successfully\n", column.Name)
	})
}
