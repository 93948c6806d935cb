package column

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/embudo/internal/cli"
	"github.com/thenoetrevino/embudo/internal/cli/handler"
	"github.com/thenoetrevino/embudo/internal/models"
)

// CreateCmd returns the column create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Append a column to a board",
		Long: `Append a column at the right end of a board.

Examples:
  embudo column create --board=Projects --name="Review"
  embudo column create --board=2 --name="Negotiation" --quiet
`,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "Column name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().String("board", "", "Board ID or name")
	cmd.Flags().String("color", "", "Column color as #RRGGBB")
	cmd.Flags().String("description", "", "Column description")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	parser := handler.NewFlagParser(cmd)

	name, err := parser.ParseString("name")
	if err != nil {
		return formatter.Fail(cli.ExitUsage, "USAGE_ERROR", err, "")
	}
	color, _ := parser.ParseStringOptional("color")
	description, _ := parser.ParseStringOptional("description")

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err, "")
	}
	defer closeCLI(cliInstance)

	board, err := parser.ParseBoard(ctx, cliInstance.App)
	if err != nil {
		return formatter.FailFor(err)
	}

	column, err := cliInstance.App.ColumnService.CreateColumn(ctx, board.ID, models.ColumnDraft{
		Name:        name,
		Color:       color,
		Description: description,
	})
	if err != nil {
		return formatter.FailFor(err)
	}

	return formatter.Success(createdColumn{column}, func(w io.Writer) {
		fmt.Fprintf(w, "Column %q created successfully on %s (id %d)\n", column.Name, board.Name, column.ID)
	})
}

type createdColumn struct {
	*models.Column
}

func (c createdColumn) GetID() int { return c.ID }
