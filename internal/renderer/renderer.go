package renderer

import (
	"github.com/kballard/go-shellquote"
)

// CommandRenderer defines the interface for rendering a command line as text.
type CommandRenderer interface {
	Render(argv []string) string
}

// ShellRenderer implements CommandRenderer with POSIX shell quoting, so the logged
// line can be pasted into a terminal to reproduce a build.
type ShellRenderer struct{}

// Render joins argv into one line, quoting arguments that need it.
func (r ShellRenderer) Render(argv []string) string {
	return shellquote.Join(argv...)
}
