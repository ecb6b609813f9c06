package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func OK(msg string) {
	t := Current()
	fmt.Println(t.Success.Render(t.SymOK + " " + msg))
}

func Fail(msg string) {
	t := Current()
	fmt.Fprintln(os.Stderr, t.Error.Render(t.SymFail+" "+msg))
}

// Panel frames lines in the theme's border.
func Panel(lines ...string) string {
	t := Current()
	border := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}

// Field renders a "label: value" row with the label padded to width.
func Field(label string, width int, value string) string {
	t := Current()
	return t.Muted.Render(fmt.Sprintf("%-*s", width, label)) + " " + value
}
