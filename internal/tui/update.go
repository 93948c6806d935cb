package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/embudo/internal/dnd"
	"github.com/thenoetrevino/embudo/internal/tui/state"
)

// Update handles every message of the program.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui.SetSize(msg.Width, msg.Height)
	case tea.KeyPressMsg:
		m, cmd = m.handleKey(msg)
	case tea.MouseMsg:
		m, cmd = m.handleMouse(msg)
	case resultMsg:
		cmd = msg.settle()
	case toastExpiredMsg:
		m.toasts.state.Expire(msg.id)
	case remoteChangeMsg:
		cmd = m.handleRemoteChange(msg)
	}

	m.clampSelection()
	return m, tea.Batch(cmd, m.toasts.expiry())
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch mode := m.ui.Mode(); {
	case mode.IsInput():
		return m.handleInputMode(msg)
	case mode == state.DeleteItemConfirmMode, mode == state.DeleteColumnConfirmMode:
		return m.handleConfirmMode(msg)
	case mode == state.HelpMode:
		m.ui.SetMode(state.NormalMode)
		return m, nil
	}
	return m.handleNormalMode(msg)
}

func (m Model) handleNormalMode(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	km := m.config.KeyMappings
	s := m.screen()

	switch key {
	case km.Quit:
		return m, tea.Quit
	case km.ShowHelp:
		m.ui.SetMode(state.HelpMode)
		return m, nil
	case km.Cancel:
		s.CancelDrag()
		return m, nil
	case km.SwitchBoard:
		return m.switchBoard(1)
	case "shift+tab":
		return m.switchBoard(-1)
	case km.Reload:
		return m, s.Reload()
	}

	if !s.Loaded() {
		return m, nil
	}

	switch key {
	case km.PrevColumn, "left":
		return m.navigateColumn(-1)
	case km.NextColumn, "right":
		return m.navigateColumn(1)
	case km.PrevItem, "up":
		return m.navigateItem(-1)
	case km.NextItem, "down":
		return m.navigateItem(1)
	case km.MoveItemLeft:
		return m.withSelectedItem(func(id int) tea.Cmd { return s.MoveToNeighbour(id, -1) })
	case km.MoveItemRight:
		return m.withSelectedItem(func(id int) tea.Cmd { return s.MoveToNeighbour(id, 1) })
	case km.MoveItemUp:
		return m.withSelectedItem(func(id int) tea.Cmd { return s.Reorder(id, -1) })
	case km.MoveItemDown:
		return m.withSelectedItem(func(id int) tea.Cmd { return s.Reorder(id, 1) })
	case km.AddItem:
		return m.handleAddItem()
	case km.EditItem:
		return m.handleEditItem()
	case km.DeleteItem:
		return m.handleDeleteItem()
	case km.AddColumn:
		return m.startInput(state.AddColumnMode, "Column name", "")
	case km.DeleteColumn:
		return m.handleDeleteColumn()
	}
	return m, nil
}

func (m Model) switchBoard(delta int) (Model, tea.Cmd) {
	m.screen().CancelDrag()
	m.current = (m.current + delta + len(m.screens)) % len(m.screens)
	if s := m.screen(); !s.Loaded() {
		return m, s.Reload()
	}
	return m, nil
}

func (m Model) navigateColumn(delta int) (Model, tea.Cmd) {
	sel := m.screen().Selection()
	sel.SetColumn(max(sel.Column()+delta, 0))
	return m, nil
}

func (m Model) navigateItem(delta int) (Model, tea.Cmd) {
	sel := m.screen().Selection()
	sel.SetItem(max(sel.Item()+delta, 0))
	return m, nil
}

func (m Model) withSelectedItem(fn func(itemID int) tea.Cmd) (Model, tea.Cmd) {
	id, ok := m.screen().SelectedItemID()
	if !ok {
		return m, nil
	}
	return m, fn(id)
}

// ============================================================================
// Item and column dialogs
// ============================================================================

func (m Model) handleAddItem() (Model, tea.Cmd) {
	s := m.screen()
	col, ok := s.SelectedColumn()
	if !ok {
		return m, nil
	}
	return m.startInput(state.AddItemMode, fmt.Sprintf("New %s in %s", s.Noun(1), col.Name), "")
}

func (m Model) handleEditItem() (Model, tea.Cmd) {
	s := m.screen()
	id, ok := s.SelectedItemID()
	if !ok {
		return m, nil
	}
	card, _ := s.Card(id)
	return m.startInput(state.EditItemMode, "Title", card.Title)
}

func (m Model) handleDeleteItem() (Model, tea.Cmd) {
	id, ok := m.screen().SelectedItemID()
	if !ok {
		return m, nil
	}
	m.deleteItemID = id
	m.ui.SetMode(state.DeleteItemConfirmMode)
	return m, nil
}

func (m Model) handleDeleteColumn() (Model, tea.Cmd) {
	s := m.screen()
	col, ok := s.SelectedColumn()
	if !ok {
		return m, nil
	}
	prompt, err := s.PromptDeleteColumn(col.ID)
	if err != nil {
		return m, nil
	}
	m.deletePrompt = prompt
	m.ui.SetMode(state.DeleteColumnConfirmMode)
	return m, nil
}

func (m Model) startInput(mode state.Mode, placeholder, value string) (Model, tea.Cmd) {
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.ui.SetMode(mode)
	return m, m.input.Focus()
}

func (m Model) handleInputMode(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case m.config.KeyMappings.Cancel:
		return m.closeInput(), nil
	case "enter":
		return m.submitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) closeInput() Model {
	m.input.Blur()
	m.input.Reset()
	m.ui.SetMode(state.NormalMode)
	return m
}

func (m Model) submitInput() (Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	mode := m.ui.Mode()
	m = m.closeInput()
	if value == "" {
		return m, nil
	}

	s := m.screen()
	switch mode {
	case state.AddItemMode:
		if col, ok := s.SelectedColumn(); ok {
			return m, s.CreateItem(col.ID, value)
		}
	case state.EditItemMode:
		if id, ok := s.SelectedItemID(); ok {
			return m, s.RenameItem(id, value)
		}
	case state.AddColumnMode:
		return m, s.CreateColumn(value)
	}
	return m, nil
}

func (m Model) handleConfirmMode(msg tea.KeyMsg) (Model, tea.Cmd) {
	mode := m.ui.Mode()
	switch msg.String() {
	case "y", "Y", "enter":
	case "n", "N", m.config.KeyMappings.Cancel:
		m.ui.SetMode(state.NormalMode)
		return m, nil
	default:
		return m, nil
	}

	m.ui.SetMode(state.NormalMode)
	s := m.screen()
	switch mode {
	case state.DeleteItemConfirmMode:
		id := m.deleteItemID
		m.deleteItemID = 0
		return m, s.DeleteItem(id)
	case state.DeleteColumnConfirmMode:
		prompt := m.deletePrompt
		m.deletePrompt = dnd.ColumnDeletePrompt{}
		return m, s.DeleteColumn(prompt.ColumnID)
	}
	return m, nil
}
