package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"calgrid/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		LogKeyPress(msg)
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		LogMouse(msg)
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case commands.EventsLoadedMsg:
		m.events = msg.Events
		m.loading = false
		return m, nil

	case commands.EventSavedMsg:
		m.selectedID = msg.ID
		return m, commands.LoadEvents(m.store)

	case commands.EventDeletedMsg:
		if m.selectedID == msg.ID {
			m.selectedID = ""
		}
		return m, tea.Batch(commands.LoadEvents(m.store), commands.Status("Deleted"))

	case commands.ErrMsg:
		LogError("update", msg.Err)
		m.err = msg.Err
		m.setStatus(fmt.Sprintf("Error: %v", msg.Err))
		return m, nil

	case commands.StatusMsgCmd:
		m.setStatus(msg.Msg)
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return commands.ClearStatusMsg{}
		})

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil

	case commands.TickMsg:
		m.now = msg.Now
		return m, commands.Tick()
	}

	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}
