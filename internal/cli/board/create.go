package board

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/embudo/internal/cli"
	"github.com/thenoetrevino/embudo/internal/cli/handler"
	"github.com/thenoetrevino/embudo/internal/models"
	boardservice "github.com/thenoetrevino/embudo/internal/services/board"
)

// defaultColumns per board kind, used when --columns is not given
var defaultColumns = map[models.BoardKind][]string{
	models.BoardKindProject:  {"To Do", "Doing", "Done"},
	models.BoardKindPipeline: {"Lead", "Qualified", "Proposal", "Won", "Lost"},
}

// CreateCmd returns the board create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new board",
		Long: `Create a board. Project boards hold cards, pipeline boards hold deals.

Examples:
  embudo board create --name="Website"
  embudo board create --name="Enterprise" --kind=pipeline
  embudo board create --name="Ops" --columns="Backlog,Today,Shipped" --quiet
`,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "Board name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().String("kind", string(models.BoardKindProject), "Board kind: project or pipeline")
	cmd.Flags().String("description", "", "Board description")
	cmd.Flags().StringSlice("columns", nil, "Initial columns, in order (defaults per kind)")
	cli.AddOutputFlags(cmd)

	return cmd
}

type createdBoard struct {
	*models.Board
}

func (b createdBoard) GetID() int { return b.ID }

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	parser := handler.NewFlagParser(cmd)

	name, err := parser.ParseString("name")
	if err != nil {
		return formatter.Fail(cli.ExitUsage, "USAGE_ERROR", err, "")
	}
	kindFlag, _ := parser.ParseStringOptional("kind")
	description, _ := parser.ParseStringOptional("description")
	columns, _ := cmd.Flags().GetStringSlice("columns")

	kind := models.BoardKind(kindFlag)
	if len(columns) == 0 {
		columns = defaultColumns[kind]
	}

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err, "")
	}
	defer closeCLI(cliInstance)

	board, err := cliInstance.App.BoardService.CreateBoard(ctx, boardservice.CreateBoardRequest{
		Name:        name,
		Kind:        kind,
		Description: description,
		Columns:     columns,
	})
	if err != nil {
		return formatter.FailFor(err)
	}

	return formatter.Success(createdBoard{board}, func(w io.Writer) {
		fmt.Fprintf(w, "Board %q created successfully (id %d, %s)\n", board.Name, board.ID, board.Kind)
	})
}
