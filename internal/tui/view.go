package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/embudo/internal/tui/components"
	"github.com/thenoetrevino/embudo/internal/tui/notifications"
	"github.com/thenoetrevino/embudo/internal/tui/state"
)

// Layer order above the board.
const (
	ghostZ = iota + 1
	toastZ
	dialogZ
)

// View renders the tab bar, the board, the status bar and whatever floats
// above them: the dragged card, toasts and dialogs.
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.Content = m.render()
	return view
}

func (m Model) render() string {
	s := m.screen()
	width := m.ui.Width()

	var syncing string
	if n := s.Pending(); n > 0 {
		syncing = components.SubtleStyle.Render(fmt.Sprintf("syncing %d %s…", n, s.Noun(n)))
	}
	tabs := components.RenderTabs(m.tabNames(), m.current, width, syncing)

	base := lipgloss.JoinVertical(lipgloss.Left,
		tabs,
		m.renderBoard(),
		components.RenderStatusBar(components.StatusBarProps{
			Width: width,
			Left:  m.statusText(),
			Right: fmt.Sprintf("%s for help", m.config.KeyMappings.ShowHelp),
		}),
	)

	var layers []*lipgloss.Layer
	if id, ok := s.Gesture().Active(); ok {
		if card, found := s.Card(id); found {
			p := s.Gesture().Pointer()
			layers = append(layers, components.LayerAt(components.RenderGhost(card), p.X-components.CardWidth/2, p.Y-1, ghostZ))
		}
	}

	if toasts := m.toasts.state.All(); len(toasts) > 0 {
		stack := notifications.RenderStack(toasts, 0)
		layers = append(layers, components.LayerAt(stack, width-lipgloss.Width(stack)-1, components.TabsHeight, toastZ))
	}

	height := max(m.ui.Height(), lipgloss.Height(base))
	layers = append(layers, components.CenteredLayer(m.renderDialog(), width, height, dialogZ))
	return components.Compose(base, layers...)
}

func (m Model) tabNames() []string {
	names := make([]string, len(m.screens))
	for i, s := range m.screens {
		names[i] = s.Info().Name
	}
	return names
}

func (m Model) renderBoard() string {
	s := m.screen()
	height := m.columnHeight()
	if !s.Loaded() {
		return lipgloss.NewStyle().Height(height).Render(components.SubtleStyle.Render(" Loading…"))
	}

	cols := s.Columns()
	if len(cols) == 0 {
		hint := fmt.Sprintf(" No columns yet, press %s to add one", m.config.KeyMappings.AddColumn)
		return lipgloss.NewStyle().Height(height).Render(components.SubtleStyle.Render(hint))
	}

	sel := s.Selection()
	g := s.Gesture()
	dragged, dragging := g.Active()
	dropColumn, hasDrop := s.ColumnOf(g.Candidate())

	start := sel.ViewportOffset()
	end := min(start+m.visibleColumns(), len(cols))
	rendered := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		col := cols[i]
		cards := s.Cards(col.ID)
		selected := i == sel.Column()
		for j := range cards {
			cards[j].Selected = selected && j == sel.Item() && !dragging
			cards[j].Lifted = dragging && cards[j].ID == dragged
		}
		rendered = append(rendered, components.RenderColumn(components.ColumnProps{
			Name:         col.Name,
			Cards:        cards,
			Selected:     selected,
			DropTarget:   dragging && hasDrop && dropColumn == col.ID,
			Height:       height,
			ScrollOffset: sel.ScrollOffset(col.ID),
			EmptyText:    "No " + s.Noun(2),
		}))
	}
	return components.RenderBoard(rendered)
}

func (m Model) statusText() string {
	s := m.screen()
	info := s.Info()
	if id, ok := s.Gesture().Active(); ok {
		card, _ := s.Card(id)
		if colID, ok := s.ColumnOf(s.Gesture().Candidate()); ok {
			for _, col := range s.Columns() {
				if col.ID == colID {
					return fmt.Sprintf("moving %q to %s", card.Title, col.Name)
				}
			}
		}
		return fmt.Sprintf("moving %q", card.Title)
	}
	return fmt.Sprintf("embudo · %s (%s)", info.Name, info.Kind)
}

func (m Model) renderDialog() string {
	s := m.screen()
	km := m.config.KeyMappings
	hint := components.SubtleStyle.Render

	switch m.ui.Mode() {
	case state.AddItemMode, state.AddColumnMode:
		title := "New column"
		if m.ui.Mode() == state.AddItemMode {
			title = m.input.Placeholder
		}
		return components.CreateInputBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			components.TitleStyle.Render(title),
			"",
			m.input.View(),
			"",
			hint("enter to save · "+km.Cancel+" to cancel"),
		))
	case state.EditItemMode:
		return components.EditInputBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			components.TitleStyle.Render("Rename "+s.Noun(1)),
			"",
			m.input.View(),
			"",
			hint("enter to save · "+km.Cancel+" to cancel"),
		))
	case state.DeleteItemConfirmMode:
		card, _ := s.Card(m.deleteItemID)
		return components.DeleteConfirmBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			components.TitleStyle.Render(fmt.Sprintf("Delete %s %q?", s.Noun(1), card.Title)),
			"",
			hint("y to confirm · n to cancel"),
		))
	case state.DeleteColumnConfirmMode:
		return components.DeleteConfirmBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			components.TitleStyle.Render(m.deletePrompt.Title),
			m.deletePrompt.Message,
			"",
			hint("y to confirm · n to cancel"),
		))
	case state.HelpMode:
		return components.HelpBoxStyle.Render(m.helpText())
	}
	return ""
}

func (m Model) helpText() string {
	km := m.config.KeyMappings
	rows := [][2]string{
		{km.PrevColumn + "/" + km.NextColumn, "previous / next column"},
		{km.PrevItem + "/" + km.NextItem, "previous / next item"},
		{km.MoveItemLeft + "/" + km.MoveItemRight, "move item to previous / next column"},
		{km.MoveItemUp + "/" + km.MoveItemDown, "move item up / down"},
		{"drag", "drop an item on another column"},
		{km.AddItem, "new item"},
		{km.EditItem, "rename item"},
		{km.DeleteItem, "delete item"},
		{km.AddColumn, "new column"},
		{km.DeleteColumn, "delete column"},
		{km.SwitchBoard, "next board"},
		{km.Reload, "reload"},
		{km.Cancel, "cancel drag"},
		{km.Quit, "quit"},
	}

	var b strings.Builder
	b.WriteString(components.TitleStyle.Render("Keys") + "\n\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%-8s %s\n", r[0], components.SubtleStyle.Render(r[1]))
	}
	b.WriteString("\n" + components.SubtleStyle.Render("press any key to close"))
	return b.String()
}
