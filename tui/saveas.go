package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// promptSavePath asks where to save for Save / Save As.
func (m Model) promptSavePath() (tea.Model, tea.Cmd) {
	m.pathForSave = true
	return m.showPathInput(m.session.SuggestedName())
}

// promptClosePath asks where to save for a close request that chose Save.
func (m Model) promptClosePath(suggested string) (tea.Model, tea.Cmd) {
	m.pathForSave = false
	return m.showPathInput(suggested)
}

func (m Model) showPathInput(suggested string) (tea.Model, tea.Cmd) {
	m.pathInput.SetValue(suggested)
	m.pathInput.CursorEnd()
	m.mode = modeSavePath
	return m, m.pathInput.Focus()
}

func (m Model) updateSavePath(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.pathInput.Blur()
		if m.pathForSave {
			m.mode = modeEdit
			m.setStatus("Save cancelled")
			return m, nil
		}
		m.request.CancelPath()
		return m.continueClose()

	case key.Matches(msg, m.keys.Enter):
		m.pathInput.Blur()
		path := m.opts.Filter.WithExtension(strings.TrimSpace(m.pathInput.Value()))
		if m.pathForSave {
			if path == "" {
				m.mode = modeEdit
				m.setStatus("Save cancelled")
				return m, nil
			}
			return m.save(path)
		}
		m.request.ProvidePath(path)
		return m.continueClose()
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m Model) viewSavePath() string {
	title := "Save As"
	if !m.pathForSave {
		title = "Save changes to"
	}
	content := fmt.Sprintf(
		"%s\n\n%s  %s\n\n%s",
		boxTitleStyle.Render(title),
		dimStyle.Render("File:"), m.pathInput.View(),
		dimStyle.Render(m.opts.Filter.Describe()+"  Enter: save  Esc: cancel"),
	)
	return boxStyle.Render(content)
}
