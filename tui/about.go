package tui

import "fmt"

const summary = "A minimal text editor for plain text documents."

func (m Model) viewAbout() string {
	version := m.opts.Version
	if version == "" {
		version = "dev"
	}
	content := fmt.Sprintf(
		"%s\n\n%s\n%s\n\n%s",
		boxTitleStyle.Render("About "+appName),
		"Version "+version,
		summary,
		dimStyle.Render("Press any key to close"),
	)
	return boxStyle.Render(content)
}
