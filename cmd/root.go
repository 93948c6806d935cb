package cmd

import (
	"context"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/embudo/internal/cli"
	"github.com/thenoetrevino/embudo/internal/cli/board"
	"github.com/thenoetrevino/embudo/internal/cli/column"
	"github.com/thenoetrevino/embudo/internal/cli/handler"
	"github.com/thenoetrevino/embudo/internal/cli/item"
	"github.com/thenoetrevino/embudo/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "embudo",
	Short: "Embudo - project boards and sales pipelines in the terminal",
	Long: `Embudo keeps project boards and sales pipelines in one place.

Run without a subcommand to open the board view. Cards and deals can be
dragged between columns with the mouse, or moved with H and L.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	rootCmd.Flags().String("board", "", "Board ID or name to open first")

	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(column.ColumnCmd())
	rootCmd.AddCommand(item.CardCmd())
	rootCmd.AddCommand(item.DealCmd())
}

// Execute runs the root command. The error carries the exit code, see
// cli.ExitCode.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	c, err := cli.NewCLI(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Printf("Error closing CLI: %v", err)
		}
	}()

	var opts []tui.Option
	if ref, _ := handler.NewFlagParser(cmd).BoardRef(); strings.TrimSpace(ref) != "" {
		b, err := cli.ResolveBoard(ctx, c.App, ref)
		if err != nil {
			return cli.NewFormatter(cmd).FailFor(err)
		}
		opts = append(opts, tui.WithBoard(b.ID))
	}

	return tui.Run(ctx, c.App, c.Config, opts...)
}
