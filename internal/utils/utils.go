// Package utils holds small helpers shared across the UI.
package utils

import (
	"os/exec"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var matchStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("226")).
	Bold(true)

// CommandExists reports whether cmd resolves on PATH.
func CommandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

// HighlightMatches renders text with the runes at the matched positions
// emphasized. Positions must be ascending, which is how the fuzzy matcher
// reports them; out-of-range positions are ignored.
func HighlightMatches(text string, matches []int) string {
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	next := 0
	for i, r := range []rune(text) {
		for next < len(matches) && matches[next] < i {
			next++
		}
		if next < len(matches) && matches[next] == i {
			b.WriteString(matchStyle.Render(string(r)))
			next++
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
