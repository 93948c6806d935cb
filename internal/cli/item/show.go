package item

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/embudo/internal/cli"
	"github.com/thenoetrevino/embudo/internal/cli/handler"
	"github.com/thenoetrevino/embudo/internal/cli/styles"
	"github.com/thenoetrevino/embudo/internal/dnd"
)

func showCmd[I dnd.Item[I]](k kind[I]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: fmt.Sprintf("Show a %s", k.use),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, k)
		},
	}

	cmd.Flags().Int("id", 0, "ID (required)")
	_ = cmd.MarkFlagRequired("id")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow[I dnd.Item[I]](cmd *cobra.Command, k kind[I]) error {
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

	item, err := k.service(cliInstance.App).GetItem(ctx, id)
	if err != nil {
		return formatter.FailFor(err)
	}
	column, err := cliInstance.App.ColumnService.GetColumnByID(ctx, item.GetColumnID())
	if err != nil {
		return formatter.FailFor(err)
	}

	return formatter.Success(item, func(w io.Writer) {
		fmt.Fprintln(w, styles.TitleStyle.Render(k.line(item)))
		fmt.Fprintln(w, styles.Field("Column", column.Name))
		fmt.Fprintln(w, styles.Field("Position", fmt.Sprintf("%d", item.GetPosition()+1)))
		if k.description != nil {
			fmt.Fprintln(w)
			fmt.Fprintln(w, styles.Markdown(k.description(item), styles.DescriptionWidth))
		}
	})
}
