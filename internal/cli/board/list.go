package board

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/embudo/internal/cli"
	"github.com/thenoetrevino/embudo/internal/cli/styles"
)

// ListCmd returns the board list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all boards",
		Long: `List every board with its kind.

Examples:
  embudo board list
  embudo board list --json
`,
		RunE: runList,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err, "")
	}
	defer closeCLI(cliInstance)

	boards, err := cliInstance.App.BoardService.GetAllBoards(ctx)
	if err != nil {
		return formatter.FailFor(err)
	}

	if formatter.Quiet {
		for _, b := range boards {
			fmt.Fprintf(formatter.Out, "%d\n", b.ID)
		}
		return nil
	}

	return formatter.Success(boards, func(w io.Writer) {
		if len(boards) == 0 {
			fmt.Fprintln(w, "No boards found")
			return
		}
		for _, b := range boards {
			fmt.Fprintf(w, "%s %s %s\n",
				styles.LabelStyle.Render(fmt.Sprintf("#%d", b.ID)),
				styles.TitleStyle.Render(b.Name),
				styles.SubtitleStyle.Render("("+string(b.Kind)+")"))
		}
	})
}
