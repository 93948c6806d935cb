package item

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/embudo/internal/cli"
	"github.com/thenoetrevino/embudo/internal/cli/handler"
	"github.com/thenoetrevino/embudo/internal/dnd"
	"github.com/thenoetrevino/embudo/internal/models"
)

var errNothingToUpdate = errors.New("nothing to update: pass at least one field flag")

func updateCmd[I dnd.Item[I]](k kind[I]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: fmt.Sprintf("Edit a %s", k.use),
		Long: fmt.Sprintf(`Edit the fields of a %[1]s. Only the flags given are changed.

Examples:
  embudo %[1]s update --id=3 --title="Kickoff call" --priority=high
`, k.use),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, k)
		},
	}

	cmd.Flags().Int("id", 0, "ID (required)")
	_ = cmd.MarkFlagRequired("id")
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("priority", "", "Priority: trivial, low, medium, high, critical")
	k.flags(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate[I dnd.Item[I]](cmd *cobra.Command, k kind[I]) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	parser := handler.NewFlagParser(cmd)

	id, err := parser.ParseID("id")
	if err != nil {
		return formatter.Fail(cli.ExitUsage, "USAGE_ERROR", err, "")
	}

	patch := models.ItemPatch{}
	if cmd.Flags().Changed("title") {
		title, _ := parser.ParseStringOptional("title")
		patch.Title = &title
	}
	if cmd.Flags().Changed("description") {
		description, _ := parser.ParseStringOptional("description")
		patch.Description = &description
	}
	if cmd.Flags().Changed("priority") {
		priority, err := parser.ParsePriority("priority")
		if err != nil {
			return formatter.FailFor(err)
		}
		patch.PriorityID = &priority
	}
	if err := k.patch(cmd, parser, &patch); err != nil {
		return formatter.FailFor(err)
	}
	if patch == (models.ItemPatch{}) {
		return formatter.Fail(cli.ExitUsage, "USAGE_ERROR", errNothingToUpdate, "")
	}

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err, "")
	}
	defer closeCLI(cliInstance)

	item, err := k.service(cliInstance.App).UpdateItem(ctx, id, patch)
	if err != nil {
		return formatter.FailFor(err)
	}

	return formatter.Success(item, func(w io.Writer) {
		fmt.Fprintf(w, "Updated %s: %s\n", k.use, k.line(item))
	})
}
