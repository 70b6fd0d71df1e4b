package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type menuItem struct {
	label    string
	shortcut string
	cmd      command
}

type menu struct {
	title string
	items []menuItem
}

var menus = []menu{
	{
		title: "File",
		items: []menuItem{
			{"New", "Ctrl+N", cmdNew},
			{"Open...", "Ctrl+O", cmdOpen},
			{"Open Recent", "Ctrl+R", cmdRecent},
			{"Save", "Ctrl+S", cmdSave},
			{"Save As...", "F12", cmdSaveAs},
			{"Exit", "Ctrl+Q", cmdExit},
		},
	},
	{
		title: "Help",
		items: []menuItem{
			{"About", "F1", cmdAbout},
		},
	},
}

type menuState struct {
	open int // index into menus
	item int
}

func (m Model) openMenu() (tea.Model, tea.Cmd) {
	m.menu = menuState{}
	m.mode = modeMenu
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := menus[m.menu.open].items
	switch {
	case key.Matches(msg, m.keys.Menu):
		m.mode = modeEdit

	case key.Matches(msg, m.keys.Left):
		m.menu.open = (m.menu.open - 1 + len(menus)) % len(menus)
		m.menu.item = 0

	case key.Matches(msg, m.keys.Right):
		m.menu.open = (m.menu.open + 1) % len(menus)
		m.menu.item = 0

	case key.Matches(msg, m.keys.Up):
		m.menu.item = (m.menu.item - 1 + len(items)) % len(items)

	case key.Matches(msg, m.keys.Down):
		m.menu.item = (m.menu.item + 1) % len(items)

	case key.Matches(msg, m.keys.Enter):
		return m.run(items[m.menu.item].cmd)
	}
	return m, nil
}

func (m Model) renderMenuBar() string {
	var parts []string
	for i, mn := range menus {
		if m.mode == modeMenu && i == m.menu.open {
			parts = append(parts, menuTitleActiveStyle.Render(mn.title))
		} else {
			parts = append(parts, menuTitleStyle.Render(mn.title))
		}
	}
	return menuBarStyle.Width(m.width).Render(strings.Join(parts, ""))
}

// viewMenu draws the open drop-down below its title in the menu bar.
func (m Model) viewMenu() string {
	mn := menus[m.menu.open]

	labelWidth := 0
	for _, it := range mn.items {
		labelWidth = max(labelWidth, lipgloss.Width(it.label))
	}

	var rows []string
	for i, it := range mn.items {
		label := " " + pad(it.label, labelWidth) + "   "
		shortcut := pad(it.shortcut, 6) + " "
		if i == m.menu.item {
			rows = append(rows, selectedStyle.Render(label+shortcut))
		} else {
			rows = append(rows, label+dimStyle.Render(shortcut))
		}
	}
	box := menuBoxStyle.Render(strings.Join(rows, "\n"))

	indent := 0
	for i := 0; i < m.menu.open; i++ {
		indent += lipgloss.Width(menuTitleStyle.Render(menus[i].title))
	}
	box = lipgloss.NewStyle().MarginLeft(indent).Render(box)
	return lipgloss.Place(m.width, m.editor.Height(), lipgloss.Left, lipgloss.Top, box)
}
