package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/jackwu/notepad/history"
	"github.com/jackwu/notepad/model"
	"github.com/jackwu/notepad/textfile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const appName = "Notepad"

type mode int

const (
	modeEdit mode = iota
	modeMenu
	modeConfirm
	modeSavePath
	modeOpen
	modeRecent
	modeAbout
)

// action is what runs once a close request is approved.
type action int

const (
	actionNone action = iota
	actionNew
	actionOpen
	actionExit
)

// RecentStore is the recent-files list. *history.Store implements it.
type RecentStore interface {
	Record(path, sessionID string) error
	List() ([]history.Entry, error)
	Remove(path string) error
}

// Options configure the editor.
type Options struct {
	Store           textfile.Store
	Defaults        model.Defaults
	Filter          textfile.Filter
	Recent          RecentStore // nil disables Open Recent
	ShowLineNumbers bool
	Version         string
	StartDir        string // where the open picker starts
}

type Model struct {
	session *model.Session
	opts    Options
	editor  textarea.Model
	keys    KeyMap
	help    help.Model
	width   int
	height  int
	mode    mode
	count   int

	// close request in progress and what to do once it is approved
	request     *model.CloseRequest
	after       action
	chosen      model.Choice
	openPath    string
	openContent string

	pathInput   textinput.Model
	pathForSave bool // the path prompt serves Save / Save As, not a close request

	confirmFocus int
	menu         menuState
	picker       filepicker.Model

	recent       []history.Entry
	recentCursor int
	recentOffset int

	status    string
	statusErr bool
	quitting  bool
	logger    zerolog.Logger
}

// NewModel returns the editor for session.
func NewModel(session *model.Session, opts Options) Model {
	if opts.Store == nil {
		opts.Store = textfile.OS{}
	}
	if len(opts.Filter.Extensions) == 0 {
		opts.Filter = textfile.Filter{Extensions: []string{".txt"}}
	}
	if opts.StartDir == "" {
		opts.StartDir = "."
	}

	ta := textarea.New()
	ta.Prompt = ""
	ta.ShowLineNumbers = opts.ShowLineNumbers
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetValue(session.EditorText())
	ta.Focus()

	pi := textinput.New()
	pi.Placeholder = session.SuggestedName()
	pi.CharLimit = 1024

	m := Model{
		session:   session,
		opts:      opts,
		editor:    ta,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		width:     80,
		height:    24,
		count:     session.CharCount(),
		pathInput: pi,
		logger:    log.With().Str("component", "tui.Model").Logger(),
	}
	m.resize()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, tea.SetWindowTitle(m.windowTitle()))
}

// Session returns the session being edited.
func (m Model) Session() *model.Session {
	return m.session
}

// Quitting reports whether the editor asked the program to exit.
func (m Model) Quitting() bool {
	return m.quitting
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		// the window close button works everywhere except inside a prompt
		// that is already resolving unsaved changes
		if key.Matches(msg, m.keys.Close) && m.mode != modeConfirm && m.mode != modeSavePath {
			m.logger.Debug().Msg("window close requested")
			m.mode = modeEdit
			return m.startAction(actionExit)
		}
		switch m.mode {
		case modeEdit:
			return m.updateEdit(msg)
		case modeMenu:
			return m.updateMenu(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeSavePath:
			return m.updateSavePath(msg)
		case modeOpen:
			return m.updateOpen(msg)
		case modeRecent:
			return m.updateRecent(msg)
		case modeAbout:
			m.mode = modeEdit
			return m, nil
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	switch m.mode {
	case modeOpen:
		m.picker, cmd = m.picker.Update(msg)
		cmds = append(cmds, cmd)
	case modeSavePath:
		m.pathInput, cmd = m.pathInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m, cmd = m.updateEditor(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.New):
		return m.run(cmdNew)
	case key.Matches(msg, m.keys.Open):
		return m.run(cmdOpen)
	case key.Matches(msg, m.keys.Recent):
		return m.run(cmdRecent)
	case key.Matches(msg, m.keys.Save):
		return m.run(cmdSave)
	case key.Matches(msg, m.keys.SaveAs):
		return m.run(cmdSaveAs)
	case key.Matches(msg, m.keys.Exit):
		return m.run(cmdExit)
	case key.Matches(msg, m.keys.About):
		return m.run(cmdAbout)
	case key.Matches(msg, m.keys.Menu):
		return m.openMenu()
	}
	return m.updateEditor(msg)
}

// updateEditor forwards msg to the textarea and records any change of its
// text in the session.
func (m Model) updateEditor(msg tea.Msg) (Model, tea.Cmd) {
	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if after := m.editor.Value(); after != before {
		m.count = m.session.RecordEdit(restoreText(m.session.EditorText(), after))
		m.status = ""
	}
	return m, cmd
}

// command is an entry of the File or Help menu.
type command int

const (
	cmdNew command = iota
	cmdOpen
	cmdRecent
	cmdSave
	cmdSaveAs
	cmdExit
	cmdAbout
)

func (m Model) run(c command) (tea.Model, tea.Cmd) {
	m.mode = modeEdit
	switch c {
	case cmdNew:
		return m.startAction(actionNew)
	case cmdOpen:
		return m.openPicker()
	case cmdRecent:
		return m.openRecent()
	case cmdSave:
		if m.session.Path() == "" {
			return m.promptSavePath()
		}
		return m.save("")
	case cmdSaveAs:
		return m.promptSavePath()
	case cmdExit:
		return m.startAction(actionExit)
	case cmdAbout:
		m.mode = modeAbout
	}
	return m, nil
}

// save persists the session to target (or its own path) and reports the
// result in the status bar.
func (m Model) save(target string) (Model, tea.Cmd) {
	m.mode = modeEdit
	if err := m.session.Persist(target); err != nil {
		m.setError(err)
		return m, nil
	}
	return m, m.onSaved()
}

func (m *Model) onSaved() tea.Cmd {
	m.setStatus("Saved " + m.session.Path())
	m.remember(m.session.Path())
	return tea.SetWindowTitle(m.windowTitle())
}

// remember records path in the recent-files list.
func (m *Model) remember(path string) {
	if m.opts.Recent == nil {
		return
	}
	if err := m.opts.Recent.Record(path, m.session.ID); err != nil {
		m.logger.Warn().Err(err).Str("path", path).Msg("history update failed")
		m.setError(fmt.Errorf("history: %w", err))
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m *Model) resize() {
	w := m.width
	h := m.height - 4 // title, menu bar, status bar, help
	if h < 1 {
		h = 1
	}
	m.editor.SetWidth(w)
	m.editor.SetHeight(h)
	m.pathInput.Width = max(min(w-12, 60), 10)
	m.help.Width = w
	m.picker.SetHeight(max(h-6, 3))
	m.clampRecentOffset()
}

func (m Model) windowTitle() string {
	return m.session.DisplayName() + " - " + appName
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTitle() + "\n")
	b.WriteString(m.renderMenuBar() + "\n")

	body := m.editor.View()
	switch m.mode {
	case modeMenu:
		body = m.viewMenu()
	case modeConfirm:
		body = m.overlay(m.viewConfirm())
	case modeSavePath:
		body = m.overlay(m.viewSavePath())
	case modeOpen:
		body = m.overlay(m.viewOpen())
	case modeRecent:
		body = m.overlay(m.viewRecent())
	case modeAbout:
		body = m.overlay(m.viewAbout())
	}
	b.WriteString(body + "\n")
	b.WriteString(m.renderStatus() + "\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// overlay centres box over the editing area.
func (m Model) overlay(box string) string {
	return lipgloss.Place(m.width, m.editor.Height(), lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderTitle() string {
	name := m.session.DisplayName()
	if m.session.State() == model.Dirty {
		name += "*"
	}
	title := titleStyle.Render(name) + dimStyle.Render(" - "+appName)
	return ansi.Truncate(title, m.width, "…")
}

func (m Model) renderStatus() string {
	counter := counterStyle.Render(fmt.Sprintf(" Character count: %d ", m.count))
	li := m.editor.LineInfo()
	pos := statusBarStyle.Render(fmt.Sprintf(" Ln %d, Col %d  %s ",
		m.editor.Line()+1, li.StartColumn+li.ColumnOffset+1, m.session.LineEnding()))

	msgWidth := max(m.width-lipgloss.Width(counter)-lipgloss.Width(pos), 0)
	msg := ansi.Truncate(" "+m.status, msgWidth, "…")
	style := statusBarStyle
	if m.statusErr {
		style = errorStyle
	}
	msg = style.Width(msgWidth).Render(msg)
	return counter + msg + pos
}
