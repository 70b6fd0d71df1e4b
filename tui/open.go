package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/jackwu/notepad/model"
)

func (m Model) openPicker() (tea.Model, tea.Cmd) {
	fp := filepicker.New()
	fp.AllowedTypes = m.opts.Filter.Extensions
	fp.CurrentDirectory = m.opts.StartDir
	fp.AutoHeight = false
	fp.ShowPermissions = false
	fp.SetHeight(max(m.editor.Height()-6, 3))
	m.picker = fp
	m.mode = modeOpen
	return m, m.picker.Init()
}

func (m Model) updateOpen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// esc is also the picker's "back" key; here it cancels.
	if key.Matches(msg, m.keys.Escape) {
		m.mode = modeEdit
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.opts.StartDir = m.picker.CurrentDirectory
		return m.selectFile(path)
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.setError(fmt.Errorf("%s is not a text document", path))
	}
	return m, cmd
}

// selectFile reads path and then replaces the document with it, once any
// unsaved changes are dealt with.
func (m Model) selectFile(path string) (tea.Model, tea.Cmd) {
	m.mode = modeEdit
	content, err := m.opts.Store.ReadFile(path)
	if err != nil {
		m.logger.Error().Err(err).Str("path", path).Msg("open failed")
		m.setError(&model.LoadError{Path: path, Err: err})
		return m, nil
	}
	m.openPath = path
	m.openContent = content
	return m.startAction(actionOpen)
}

func (m Model) viewOpen() string {
	var b strings.Builder
	b.WriteString(boxTitleStyle.Render("Open") + "\n")
	b.WriteString(dimStyle.Render(m.picker.CurrentDirectory) + "\n\n")
	b.WriteString(m.picker.View())
	b.WriteString("\n" + dimStyle.Render(m.opts.Filter.Describe()+"  Enter: open  Esc: cancel"))
	return boxStyle.Width(min(m.width-4, 72)).Render(b.String())
}

func (m Model) openRecent() (tea.Model, tea.Cmd) {
	if m.opts.Recent == nil {
		m.setStatus("Recent files are disabled")
		return m, nil
	}
	entries, err := m.opts.Recent.List()
	if err != nil {
		m.logger.Warn().Err(err).Msg("history list failed")
		m.setError(fmt.Errorf("history: %w", err))
		return m, nil
	}
	if len(entries) == 0 {
		m.setStatus("No recent files")
		return m, nil
	}
	m.recent = entries
	m.recentCursor = 0
	m.recentOffset = 0
	m.mode = modeRecent
	return m, nil
}

func (m Model) updateRecent(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeEdit

	case key.Matches(msg, m.keys.Up):
		if m.recentCursor > 0 {
			m.recentCursor--
			m.clampRecentOffset()
		}

	case key.Matches(msg, m.keys.Down):
		if m.recentCursor < len(m.recent)-1 {
			m.recentCursor++
			m.clampRecentOffset()
		}

	case key.Matches(msg, m.keys.Enter):
		return m.selectFile(m.recent[m.recentCursor].Path)

	case key.Matches(msg, m.keys.Remove):
		e := m.recent[m.recentCursor]
		if err := m.opts.Recent.Remove(e.Path); err != nil {
			m.setError(fmt.Errorf("history: %w", err))
			return m, nil
		}
		m.recent = append(m.recent[:m.recentCursor], m.recent[m.recentCursor+1:]...)
		if len(m.recent) == 0 {
			m.mode = modeEdit
			m.setStatus("No recent files")
			return m, nil
		}
		if m.recentCursor >= len(m.recent) {
			m.recentCursor = len(m.recent) - 1
		}
		m.clampRecentOffset()
	}
	return m, nil
}

func (m Model) recentRows() int {
	return max(m.editor.Height()-8, 1)
}

func (m *Model) clampRecentOffset() {
	visible := m.recentRows()
	if m.recentCursor < m.recentOffset {
		m.recentOffset = m.recentCursor
	}
	if m.recentCursor >= m.recentOffset+visible {
		m.recentOffset = m.recentCursor - visible + 1
	}
	if m.recentOffset < 0 {
		m.recentOffset = 0
	}
}

func (m Model) viewRecent() string {
	width := min(m.width-8, 72)
	var b strings.Builder
	b.WriteString(boxTitleStyle.Render("Open Recent") + "\n\n")

	end := min(m.recentOffset+m.recentRows(), len(m.recent))
	for i := m.recentOffset; i < end; i++ {
		e := m.recent[i]
		row := pad(e.Name(), 24) + " " + e.OpenedAt.Format("01-02 15:04") + "  " + e.Path
		row = truncate(row, width)
		if i == m.recentCursor {
			row = selectedStyle.Render(lipgloss.PlaceHorizontal(width, lipgloss.Left, row))
		} else {
			row = normalStyle.Render(row)
		}
		b.WriteString(row + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("Enter: open  x: remove  Esc: close"))
	return boxStyle.Render(b.String())
}

func pad(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	return s + strings.Repeat(" ", max(width-lipgloss.Width(s), 0))
}

func truncate(s string, width int) string {
	return ansi.Truncate(s, width, "..")
}
