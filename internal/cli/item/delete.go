package item

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/embudo/internal/cli"
	"github.com/thenoetrevino/embudo/internal/cli/handler"
	"github.com/thenoetrevino/embudo/internal/dnd"
)

func deleteCmd[I dnd.Item[I]](k kind[I]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: fmt.Sprintf("Delete a %s", k.use),
		Long: fmt.Sprintf(`Delete a %[1]s by ID (requires confirmation unless --force, --json or --quiet).

Examples:
  embudo %[1]s delete --id=5
  embudo %[1]s delete --id=5 --force
`, k.use),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, k)
		},
	}

	cmd.Flags().Int("id", 0, "ID (required)")
	_ = cmd.MarkFlagRequired("id")
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete[I dnd.Item[I]](cmd *cobra.Command, k kind[I]) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	id, err := handler.NewFlagParser(cmd).ParseID("id")
	if err != nil {
		return formatter.Fail(cli.ExitUsage, "USAGE_ERROR", err, "")
	}

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err, "")
	}
	defer closeCLI(cliInstance)

	svc := k.service(cliInstance.App)
	item, err := svc.GetItem(ctx, id)
	if err != nil {
		return formatter.FailFor(err)
	}

	if cli.ShouldConfirm(cmd) {
		ok, err := cli.Confirm(cmd,
			fmt.Sprintf("Delete %s %q?", k.use, item.GetTitle()),
			"This cannot be undone.",
			"Delete")
		if err != nil {
			return formatter.FailFor(err)
		}
		if !ok {
			return formatter.Fail(cli.ExitCancelled, "CANCELLED", cli.ErrCancelled, "")
		}
	}

	if err := svc.DeleteItem(ctx, id); err != nil {
		return formatter.FailFor(err)
	}

	if formatter.Quiet {
		return nil
	}
	return formatter.Success(map[string]any{k.use + "_id": id}, func(w io.Writer) {
		fmt.Fprintf(w, "Deleted %s %q\n", k.use, item.GetTitle())
	})
}
