package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jackwu/notepad/model"
)

const confirmQuestion = "Would you like to save changes?"

// startAction runs the unsaved-changes check ahead of a.
func (m Model) startAction(a action) (tea.Model, tea.Cmd) {
	m.after = a
	m.request = m.session.BeginClose(a == actionExit)
	m.chosen = model.ChoiceCancel
	return m.continueClose()
}

// continueClose moves the UI to whatever the close request waits for, or
// runs the pending action once it is resolved.
func (m Model) continueClose() (tea.Model, tea.Cmd) {
	r := m.request
	switch {
	case r.NeedsChoice():
		m.mode = modeConfirm
		m.confirmFocus = int(model.ChoiceSave)
		return m, nil
	case r.NeedsPath():
		return m.promptClosePath(r.SuggestedName())
	}

	m.mode = modeEdit
	m.request = nil
	after := m.after
	m.after = actionNone

	if r.Outcome() != model.Approved {
		if err := r.Err(); err != nil {
			m.setError(err)
		} else {
			m.setStatus("Cancelled")
		}
		m.openPath, m.openContent = "", ""
		return m, nil
	}

	var cmds []tea.Cmd
	if m.chosen == model.ChoiceSave {
		cmds = append(cmds, m.onSaved())
	}

	if r.CloseWindow() {
		m.logger.Info().Str("session", m.session.ID).Msg("closing")
		m.quitting = true
		return m, tea.Quit
	}

	switch after {
	case actionNew:
		m.session = model.NewSession(m.opts.Store, m.opts.Defaults)
		m.editor.SetValue("")
		m.count = 0
		m.setStatus("New document")
		cmds = append(cmds, tea.SetWindowTitle(m.windowTitle()))
	case actionOpen:
		m.loadPicked()
		m.editor.SetValue(m.session.EditorText())
		cursorToTop(&m.editor)
		m.count = m.session.CharCount()
		m.setStatus("Opened " + m.openPath)
		m.remember(m.openPath)
		m.openPath, m.openContent = "", ""
		cmds = append(cmds, tea.SetWindowTitle(m.windowTitle()))
	}
	return m, tea.Batch(cmds...)
}

// loadPicked replaces the document with the file chosen for Open, reading it
// again now that the close request is resolved. The copy read at pick time is
// the fallback when that read fails.
func (m *Model) loadPicked() {
	err := m.session.Open(m.openPath)
	if err == nil {
		return
	}
	m.logger.Warn().Err(err).Str("path", m.openPath).Msg("re-read failed, using the content read when picked")
	if m.chosen == model.ChoiceSave && sameFile(m.session.Path(), m.openPath) {
		return
	}
	m.session.Load(m.openPath, m.openContent)
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	choices := model.Choices()
	switch {
	case key.Matches(msg, m.keys.Left):
		m.confirmFocus = (m.confirmFocus - 1 + len(choices)) % len(choices)
		return m, nil
	case key.Matches(msg, m.keys.Right):
		m.confirmFocus = (m.confirmFocus + 1) % len(choices)
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		return m.choose(choices[m.confirmFocus])
	case key.Matches(msg, m.keys.Escape):
		return m.choose(model.ChoiceCancel)
	}

	switch msg.String() {
	case "s":
		return m.choose(model.ChoiceSave)
	case "d":
		return m.choose(model.ChoiceDiscard)
	case "c":
		return m.choose(model.ChoiceCancel)
	}
	return m, nil
}

func (m Model) choose(c model.Choice) (tea.Model, tea.Cmd) {
	m.logger.Debug().Str("choice", c.String()).Msg("save prompt answered")
	m.chosen = c
	m.request.Choose(c)
	return m.continueClose()
}

func (m Model) viewConfirm() string {
	names := make([]string, 0, len(model.Choices()))
	for _, c := range model.Choices() {
		names = append(names, c.String())
	}

	content := fmt.Sprintf(
		"%s\n\n%s\n\n%s\n\n%s",
		boxTitleStyle.Render(appName),
		confirmQuestion,
		renderRadio(names, m.confirmFocus),
		dimStyle.Render("Enter: choose  ←→: move  s/d/c  Esc: cancel"),
	)
	return boxStyle.Render(content)
}

// cursorToTop moves the textarea cursor to the start of the text.
func cursorToTop(ta *textarea.Model) {
	for ta.Line() > 0 {
		ta.CursorUp()
	}
	ta.CursorStart()
}

func renderRadio(options []string, selected int) string {
	var parts []string
	for i, opt := range options {
		if i == selected {
			style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
			parts = append(parts, style.Render("● "+opt))
		} else {
			parts = append(parts, dimStyle.Render("○ "+opt))
		}
	}
	return strings.Join(parts, "   ")
}
