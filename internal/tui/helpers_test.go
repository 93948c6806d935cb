package tui

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/embudo/internal/app"
	"github.com/thenoetrevino/embudo/internal/config"
	"github.com/thenoetrevino/embudo/internal/database"
	"github.com/thenoetrevino/embudo/internal/models"
	"github.com/thenoetrevino/embudo/internal/testutil"
	"github.com/thenoetrevino/embudo/internal/tui/components"
)

// clock is a manual time source for gesture thresholds.
type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	repo  *database.Repository
	app   *app.App
	clock *clock
}

// setupModel seeds a database, builds the model on a 120x40 terminal and
// loads the first tab. The seed holds board 1 "Projects" (columns 1-3) and
// board 2 "Sales" (columns 4-8); seed items before calling it through the
// seed func.
func setupModel(t *testing.T, seed func(repo *database.Repository), opts ...app.Option) (Model, *fixture) {
	t.Helper()

	repo := testutil.SetupTestRepo(t)
	if seed != nil {
		seed(repo)
	}
	a := app.New(repo, opts...)

	cfg := config.Default()
	// expiry ticks return at once and are dropped by drain
	cfg.Notifications.TTLMs = 1

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	clk := &clock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	m, err := New(ctx, a, cfg, WithClock(clk.now))
	require.NoError(t, err)

	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = drain(t, m, m.Init())
	require.True(t, m.screen().Loaded())
	return m, &fixture{repo: repo, app: a, clock: clk}
}

// send feeds msg to the model and runs whatever it asks for.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	return drain(t, next.(Model), cmd)
}

// drain runs cmd and every command it leads to, feeding the messages back.
// Commands still blocked after a short wait, like the live update listener
// or the cursor blink, are abandoned. Toast expiry is dropped so tests can
// inspect the toasts.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg, ok := runCmd(c)
		if !ok {
			continue
		}
		switch msg := msg.(type) {
		case nil, toastExpiredMsg, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			next, c := m.Update(msg)
			m = next.(Model)
			queue = append(queue, c)
		}
	}
	return m
}

func runCmd(c tea.Cmd) (tea.Msg, bool) {
	done := make(chan tea.Msg, 1)
	go func() { done <- c() }()
	select {
	case msg := <-done:
		return msg, true
	case <-time.After(200 * time.Millisecond):
		return nil, false
	}
}

func keyMsg(k string) tea.KeyPressMsg {
	switch k {
	case "enter":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter})
	case "esc":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape})
	case "tab":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyTab})
	case "shift+tab":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyTab, Mod: tea.ModShift})
	case "ctrl+u":
		return tea.KeyPressMsg(tea.Key{Code: 'u', Mod: tea.ModCtrl})
	default:
		return tea.KeyPressMsg(tea.Key{Text: k, Code: []rune(k)[0]})
	}
}

// viewOf renders the model the way the program draws it.
func viewOf(m Model) string {
	return m.View().Content
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = send(t, m, keyMsg(k))
	}
	return m
}

func cardStore(t *testing.T, m Model) *screen[models.Card] {
	t.Helper()
	s, ok := m.screen().(*screen[models.Card])
	require.True(t, ok, "current tab is not a project board")
	return s
}

func dealStore(t *testing.T, m Model) *screen[models.Deal] {
	t.Helper()
	s, ok := m.screen().(*screen[models.Deal])
	require.True(t, ok, "current tab is not a pipeline")
	return s
}

// cardColumn returns the column a card sits in locally, or 0.
func cardColumn(t *testing.T, m Model, id int) int {
	t.Helper()
	card, ok := cardStore(t, m).board.Store().Item(id)
	if !ok {
		return 0
	}
	return card.ColumnID
}

func toastMessages(m Model) []string {
	var out []string
	for _, n := range m.toasts.state.All() {
		out = append(out, n.Message)
	}
	return out
}

// cardCell returns a cell inside the card at (column slot, row) of the
// visible board.
func cardCell(slot, row int) (int, int) {
	x := slot*components.ColumnOuterWidth + 5
	y := components.TabsHeight + components.ColumnHeaderLines + row*components.CardHeight + 1
	return x, y
}
