// Package tui is the interactive board view: one tab per board, keyboard
// navigation and mouse drag and drop between columns.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/embudo/internal/app"
	"github.com/thenoetrevino/embudo/internal/config"
	"github.com/thenoetrevino/embudo/internal/dnd"
	"github.com/thenoetrevino/embudo/internal/events"
	"github.com/thenoetrevino/embudo/internal/models"
	"github.com/thenoetrevino/embudo/internal/tui/components"
	"github.com/thenoetrevino/embudo/internal/tui/state"
	"github.com/thenoetrevino/embudo/internal/tui/theme"
)

// ErrNoBoards is returned when there is nothing to show.
var ErrNoBoards = errors.New("no boards, create one with `embudo board create`")

// remoteChangeMsg is a board change made by another client.
type remoteChangeMsg struct {
	event events.Event
}

// Model represents the application state for the TUI
type Model struct {
	ctx    context.Context
	app    *app.App
	config *config.Config
	logger *slog.Logger
	now    func() time.Time

	screens []boardScreen
	current int

	ui     *state.UIState
	toasts *toastSink
	input  textinput.Model

	// confirmation targets
	deleteItemID int
	deletePrompt dnd.ColumnDeletePrompt

	eventChan <-chan events.Event
}

// Option customizes a Model.
type Option func(*options)

type options struct {
	boardID int
	now     func() time.Time
}

// WithBoard opens the tab of boardID instead of the first board.
func WithBoard(boardID int) Option {
	return func(o *options) { o.boardID = boardID }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New builds the model with one tab per board. Nothing is fetched until Init.
func New(ctx context.Context, a *app.App, cfg *config.Config, opts ...Option) (Model, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	boards, err := a.BoardService.GetAllBoards(ctx)
	if err != nil {
		return Model{}, fmt.Errorf("list boards: %w", err)
	}
	if len(boards) == 0 {
		return Model{}, ErrNoBoards
	}

	theme.Init(cfg.ColorScheme)
	components.InitStyles()

	input := textinput.New()
	input.CharLimit = 100
	input.SetWidth(40)

	m := Model{
		ctx:    ctx,
		app:    a,
		config: cfg,
		logger: a.Logger(),
		now:    o.now,
		ui:     state.NewUIState(),
		toasts: newToastSink(cfg.NotificationTTL(), o.now),
		input:  input,
	}

	boardCfg := dnd.BoardConfig{
		Gesture:  cfg.Gesture(),
		Rollback: cfg.Rollback(),
		Logger:   m.logger,
	}
	for i, b := range boards {
		m.screens = append(m.screens, m.newScreen(b, boardCfg))
		if b.ID == o.boardID {
			m.current = i
		}
	}

	if pub := a.Events(); pub != nil {
		ch, err := pub.Listen(ctx)
		if err != nil {
			m.logger.Warn("live updates unavailable", "error", err)
		} else {
			m.eventChan = ch
		}
	}
	return m, nil
}

func (m Model) newScreen(b *models.Board, cfg dnd.BoardConfig) boardScreen {
	timeout := m.config.CommandTimeout()
	if b.Kind == models.BoardKindPipeline {
		board := dnd.NewBoard[models.Deal](m.app.DealService, m.toasts, cfg)
		return newScreen(b, board, describeDeal, timeout, m.logger)
	}
	board := dnd.NewBoard[models.Card](m.app.CardService, m.toasts, cfg)
	return newScreen(b, board, describeCard, timeout, m.logger)
}

func describeCard(c models.Card) (string, string) {
	return c.Title, fmt.Sprintf("#%d · %s", c.ID, models.PriorityByID(c.PriorityID).Description)
}

func describeDeal(d models.Deal) (string, string) {
	meta := fmt.Sprintf("#%d", d.ID)
	if d.Company != "" {
		meta += " · " + d.Company
	}
	if d.ValueCents > 0 {
		meta += " · " + d.FormatValue()
	}
	return d.Title, meta
}

// Init loads the first tab and starts listening for remote changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.screen().Reload(), m.waitForEvent())
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(ctx context.Context, a *app.App, cfg *config.Config, opts ...Option) error {
	m, err := New(ctx, a, cfg, opts...)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) screen() boardScreen {
	return m.screens[m.current]
}

// waitForEvent blocks on the daemon channel and yields one remote change.
func (m Model) waitForEvent() tea.Cmd {
	if m.eventChan == nil {
		return nil
	}
	ch, ctx := m.eventChan, m.ctx
	return func() tea.Msg {
		select {
		case evt, ok := <-ch:
			if !ok {
				return nil
			}
			return remoteChangeMsg{event: evt}
		case <-ctx.Done():
			return nil
		}
	}
}

// handleRemoteChange reloads every loaded tab the event touches.
func (m Model) handleRemoteChange(msg remoteChangeMsg) tea.Cmd {
	cmds := []tea.Cmd{m.waitForEvent()}
	for _, s := range m.screens {
		if !s.Loaded() {
			continue
		}
		if msg.event.BoardID == 0 || msg.event.BoardID == s.Info().ID {
			m.logger.Debug("remote change", "board_id", s.Info().ID, "origin", msg.event.Origin)
			cmds = append(cmds, s.Reload())
		}
	}
	return tea.Batch(cmds...)
}

// visibleColumns is how many columns fit side by side.
func (m Model) visibleColumns() int {
	return max(m.ui.Width()/components.ColumnOuterWidth, 1)
}

// columnHeight is the outer height of every column: the terminal minus the
// tab bar and the status bar.
func (m Model) columnHeight() int {
	height := m.ui.Height()
	if height == 0 {
		height = 24
	}
	return max(height-components.TabsHeight-1, components.ColumnHeaderLines+components.ColumnFooterLines+components.CardHeight)
}

// clampSelection keeps every tab's cursor on the board after the store
// changed underneath it.
func (m Model) clampSelection() {
	visible := components.VisibleCards(m.columnHeight())
	for _, s := range m.screens {
		sel := s.Selection()
		cols := s.Columns()
		sel.Clamp(len(cols), 1<<30)

		count := 0
		col, ok := s.SelectedColumn()
		if ok {
			count = s.ItemCount(col.ID)
		}
		sel.Clamp(len(cols), count)
		sel.EnsureColumnVisible(m.visibleColumns(), len(cols))
		if ok {
			sel.EnsureItemVisible(col.ID, visible)
		}
	}
}
