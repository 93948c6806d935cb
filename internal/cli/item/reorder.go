package item

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/embudo/internal/cli"
	"github.com/thenoetrevino/embudo/internal/cli/handler"
	"github.com/thenoetrevino/embudo/internal/dnd"
)

var errReorderDirection = errors.New("pass exactly one of --up or --down")

func reorderCmd[I dnd.Item[I]](k kind[I]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder",
		Short: fmt.Sprintf("Swap a %s with its neighbour in the column", k.use),
		Long: fmt.Sprintf(`Move a %[1]s one slot up or down inside its column.

Examples:
  embudo %[1]s reorder --id=5 --up
`, k.use),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReorder(cmd, k)
		},
	}

	cmd.Flags().Int("id", 0, "ID (required)")
	_ = cmd.MarkFlagRequired("id")
	cmd.Flags().Bool("up", false, "Swap with the item above")
	cmd.Flags().Bool("down", false, "Swap with the item below")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runReorder[I dnd.Item[I]](cmd *cobra.Command, k kind[I]) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	parser := handler.NewFlagParser(cmd)

	id, err := parser.ParseID("id")
	if err != nil {
		return formatter.Fail(cli.ExitUsage, "USAGE_ERROR", err, "")
	}
	up, _ := parser.ParseBool("up")
	down, _ := parser.ParseBool("down")
	if up == down {
		return formatter.Fail(cli.ExitUsage, "USAGE_ERROR", errReorderDirection, "")
	}
	direction := 1
	if up {
		direction = -1
	}

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err, "")
	}
	defer closeCLI(cliInstance)

	board, _, err := loadBoard(cmd, cliInstance, k, id)
	if err != nil {
		return formatter.FailFor(err)
	}
	if err := board.ValidateReorder(id, direction); err != nil {
		return formatter.FailFor(err)
	}

	err = board.Commands().Reorder(ctx, id, direction)
	board.SettleReorder(err)
	if err != nil {
		return formatter.FailFor(err)
	}
	if err := board.Load(ctx, board.BoardID()); err != nil {
		return formatter.FailFor(err)
	}

	item, _ := board.Store().Item(id)
	return formatter.Success(item, func(w io.Writer) {
		fmt.Fprintf(w, "%s is now at position %d\n", k.line(item), item.GetPosition()+1)
	})
}
