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

var errMoveTarget = errors.New("pass exactly one of --to, --left or --right")

func moveCmd[I dnd.Item[I]](k kind[I]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: fmt.Sprintf("Move a %s to another column", k.use),
		Long: fmt.Sprintf(`Move a %[1]s to the bottom of another column of its board.

The column is given by ID or name; names are matched exactly first and then
fuzzily, so --to=qual finds "Qualified" when nothing else matches.

Examples:
  embudo %[1]s move --id=5 --to=%[2]s
  embudo %[1]s move --id=5 --right
`, k.use, exampleColumn(k.boardKind)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMove(cmd, k)
		},
	}

	cmd.Flags().Int("id", 0, "ID (required)")
	_ = cmd.MarkFlagRequired("id")
	cmd.Flags().String("to", "", "Target column ID or name")
	cmd.Flags().Bool("left", false, "Move to the previous column")
	cmd.Flags().Bool("right", false, "Move to the next column")
	cli.AddOutputFlags(cmd)

	return cmd
}

type moveResult struct {
	ItemID   int    `json:"item_id"`
	ColumnID int    `json:"column_id"`
	Column   string `json:"column"`
	Position int    `json:"position"`
	Moved    bool   `json:"moved"`
}

func (r moveResult) GetID() int { return r.ItemID }

func runMove[I dnd.Item[I]](cmd *cobra.Command, k kind[I]) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	parser := handler.NewFlagParser(cmd)

	id, err := parser.ParseID("id")
	if err != nil {
		return formatter.Fail(cli.ExitUsage, "USAGE_ERROR", err, "")
	}
	to, _ := parser.ParseStringOptional("to")
	left, _ := parser.ParseBool("left")
	right, _ := parser.ParseBool("right")

	chosen := 0
	for _, set := range []bool{to != "", left, right} {
		if set {
			chosen++
		}
	}
	if chosen != 1 {
		return formatter.Fail(cli.ExitUsage, "USAGE_ERROR", errMoveTarget, "")
	}

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err, "")
	}
	defer closeCLI(cliInstance)

	board, notices, err := loadBoard(cmd, cliInstance, k, id)
	if err != nil {
		return formatter.FailFor(err)
	}

	var op *dnd.PendingMove
	var outcome dnd.Outcome
	switch {
	case to != "":
		column, err := cli.ResolveColumn(ctx, cliInstance.App, board.BoardID(), to)
		if err != nil {
			return formatter.FailFor(err)
		}
		op, outcome, err = board.MoveSync(ctx, dnd.DragEnd{ActiveID: id, Target: dnd.ColumnTarget(column.ID)})
		if err != nil {
			return formatter.FailFor(err)
		}
	default:
		delta := 1
		if left {
			delta = -1
		}
		op, err = board.MoveToNeighbour(id, delta)
		if err != nil {
			return formatter.FailFor(err)
		}
		outcome = board.Settle(op, board.Commit(ctx, op))
	}

	if outcome != dnd.OutcomeCommitted {
		msg, _ := notices.lastError()
		return formatter.Fail(cli.ExitDataErr, "MOVE_REJECTED", fmt.Errorf("%w: %s", cli.ErrMoveRolledBack, msg), "")
	}

	item, _ := board.Store().Item(id)
	column, _ := board.Store().Column(item.GetColumnID())
	result := moveResult{
		ItemID:   id,
		ColumnID: column.ID,
		Column:   column.Name,
		Position: item.GetPosition(),
		Moved:    op != nil,
	}

	return formatter.Success(result, func(w io.Writer) {
		if op == nil {
			fmt.Fprintf(w, "%s is already in %s\n", k.line(item), column.Name)
			return
		}
		fmt.Fprintf(w, "Moved %s to %s\n", k.line(item), column.Name)
	})
}
