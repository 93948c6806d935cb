package column

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/embudo/internal/cli"
	"github.com/thenoetrevino/embudo/internal/cli/handler"
)

// RenameCmd returns the column rename subcommand
func RenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename a column",
		Long: `Rename a column by ID.

Examples:
  embudo column rename --id=2 --name="In Progress"
`,
		RunE: runRename,
	}

	cmd.Flags().Int("id", 0, "Column ID (required)")
	_ = cmd.MarkFlagRequired("id")
	cmd.Flags().String("name", "", "New column name (required)")
	_ = cmd.MarkFlagRequired("name")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runRename(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	parser := handler.NewFlagParser(cmd)

	columnID, err := parser.ParseID("id")
	if err != nil {
		return formatter.Fail(cli.ExitUsage, "USAGE_ERROR", err, "")
	}
	name, err := parser.ParseString("name")
	if err != nil {
		return formatter.Fail(cli.ExitUsage, "USAGE_ERROR", err, "")
	}

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err, "")
	}
	defer closeCLI(cliInstance)

	if err := cliInstance.App.ColumnService.RenameColumn(ctx, columnID, name); err != nil {
		return formatter.FailFor(err)
	}

	if formatter.Quiet {
		return nil
	}
	return formatter.Success(map[string]any{"column_id": columnID, "name": name}, func(w io.Writer) {
		fmt.Fprintf(w, "Column %d renamed to %q\n", columnID, name)
	})
}
