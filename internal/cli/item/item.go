// Package item holds the card and deal subcommands. Both share one generic
// implementation parameterized by the item kind.
package item

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/embudo/internal/app"
	"github.com/thenoetrevino/embudo/internal/cli"
	"github.com/thenoetrevino/embudo/internal/cli/handler"
	"github.com/thenoetrevino/embudo/internal/dnd"
	"github.com/thenoetrevino/embudo/internal/models"
	itemservice "github.com/thenoetrevino/embudo/internal/services/item"
)

// kind describes one family of item commands.
type kind[I dnd.Item[I]] struct {
	use       string // "card"
	short     string
	boardKind models.BoardKind
	service   func(*app.App) itemservice.Service[I]
	line      func(I) string
	// description is the markdown body shown by show, nil when the kind has none
	description func(I) string

	// flags registers the kind-specific draft flags on create and update
	flags func(*cobra.Command)
	// draft adds the kind-specific fields to a draft
	draft func(*handler.FlagParser, *models.ItemDraft) error
	// patch adds the kind-specific fields that were set to a patch
	patch func(*cobra.Command, *handler.FlagParser, *models.ItemPatch) error
}

var cards = kind[models.Card]{
	use:       "card",
	short:     "Manage cards on project boards",
	boardKind: models.BoardKindProject,
	service:   func(a *app.App) itemservice.Service[models.Card] { return a.CardService },
	line:      cli.CardLine,
	description: func(c models.Card) string {
		return c.Description
	},
	flags: func(*cobra.Command) {},
	draft: func(*handler.FlagParser, *models.ItemDraft) error { return nil },
	patch: func(*cobra.Command, *handler.FlagParser, *models.ItemPatch) error { return nil },
}

var deals = kind[models.Deal]{
	use:       "deal",
	short:     "Manage deals on pipeline boards",
	boardKind: models.BoardKindPipeline,
	service:   func(a *app.App) itemservice.Service[models.Deal] { return a.DealService },
	line:      cli.DealLine,
	flags: func(cmd *cobra.Command) {
		cmd.Flags().String("company", "", "Company the deal is with")
		cmd.Flags().String("value", "", "Deal value in dollars, e.g. 1200 or 1,200.50")
	},
	draft: func(p *handler.FlagParser, d *models.ItemDraft) error {
		company, _ := p.ParseStringOptional("company")
		value, err := p.ParseMoney("value")
		if err != nil {
			return err
		}
		d.Company = company
		d.ValueCents = value
		return nil
	},
	patch: func(cmd *cobra.Command, p *handler.FlagParser, patch *models.ItemPatch) error {
		if cmd.Flags().Changed("company") {
			company, _ := p.ParseStringOptional("company")
			patch.Company = &company
		}
		if cmd.Flags().Changed("value") {
			value, err := p.ParseMoney("value")
			if err != nil {
				return err
			}
			patch.ValueCents = &value
		}
		return nil
	},
}

// CardCmd returns the card parent command
func CardCmd() *cobra.Command {
	return newCommand(cards)
}

// DealCmd returns the deal parent command
func DealCmd() *cobra.Command {
	return newCommand(deals)
}

func newCommand[I dnd.Item[I]](k kind[I]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   k.use,
		Short: k.short,
	}

	cmd.AddCommand(createCmd(k))
	cmd.AddCommand(listCmd(k))
	cmd.AddCommand(showCmd(k))
	cmd.AddCommand(updateCmd(k))
	cmd.AddCommand(moveCmd(k))
	cmd.AddCommand(reorderCmd(k))
	cmd.AddCommand(deleteCmd(k))

	return cmd
}

// loadBoard builds the board screen model an item lives on, so CLI moves go
// through the same engine as drags.
func loadBoard[I dnd.Item[I]](cmd *cobra.Command, c *cli.CLI, k kind[I], itemID int) (*dnd.Board[I], *noticeLog, error) {
	ctx := cmd.Context()
	svc := k.service(c.App)

	item, err := svc.GetItem(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	column, err := c.App.ColumnService.GetColumnByID(ctx, item.GetColumnID())
	if err != nil {
		return nil, nil, err
	}

	notices := &noticeLog{}
	board := dnd.NewBoard[I](svc, notices, dnd.BoardConfig{
		Gesture:  c.Config.Gesture(),
		Rollback: c.Config.Rollback(),
		Logger:   c.App.Logger(),
	})
	if err := board.Load(ctx, column.BoardID); err != nil {
		return nil, nil, err
	}
	return board, notices, nil
}

// noticeLog collects board notifications for the command's final output.
type noticeLog struct {
	notes []dnd.Notification
}

func (l *noticeLog) Notify(n dnd.Notification) {
	l.notes = append(l.notes, n)
}

// lastError returns the last error notification, if any.
func (l *noticeLog) lastError() (string, bool) {
	for i := len(l.notes) - 1; i >= 0; i-- {
		if l.notes[i].Kind == dnd.NotifyError {
			return l.notes[i].Message, true
		}
	}
	return "", false
}

func closeCLI(c *cli.CLI) {
	if err := c.Close(); err != nil {
		log.Printf("Error closing CLI: %v", err)
	}
}
