package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/skratchdot/open-golang/open"

	"github.com/mlenz/lsview/internal/listing"
	"github.com/mlenz/lsview/internal/logger"
	"github.com/mlenz/lsview/internal/utils"
)

// Helper functions

// firstEntry is the lowest line index the cursor may rest on: the first line
// past the path header and ls's total line. Short buffers pin it to the last
// line.
func firstEntry(v *listing.View) int {
	if len(v.Lines) == 0 {
		return 0
	}
	if len(v.Lines)-1 < listing.HeaderLines {
		return len(v.Lines) - 1
	}
	return listing.HeaderLines
}

// entryName extracts the file name from one long-format ls line. The name is
// everything past the eighth field; device files carry a major,minor pair
// where plain files have a size, pushing the name one field right. Header and
// total lines report ok=false.
func entryName(line string) (string, bool) {
	if line == "" || strings.HasPrefix(line, "total ") || strings.HasSuffix(line, ":") {
		return "", false
	}
	fields := strings.Fields(line)
	nameAt := 8
	if len(fields) > 4 && strings.HasSuffix(fields[4], ",") {
		nameAt = 9
	}
	if len(fields) <= nameAt {
		return "", false
	}
	name := strings.Join(fields[nameAt:], " ")
	// Symlinks list their target after an arrow
	if i := strings.Index(name, " -> "); i >= 0 {
		name = name[:i]
	}
	return name, true
}

// entryIsDir reports whether the ls line describes a directory. Symlinked
// directories show as links here; openSelected stats the target instead of
// trusting the line.
func entryIsDir(line string) bool {
	return line != "" && line[0] == 'd'
}

// selectedName returns the entry name under the focused cursor.
func (m *model) selectedName() (string, bool) {
	v := m.focusedView()
	if v.Cursor < 0 || v.Cursor >= len(v.Lines) {
		return "", false
	}
	return entryName(v.Lines[v.Cursor])
}

// selectedPath returns the absolute path of the entry under the cursor.
func (m *model) selectedPath() (string, bool) {
	name, ok := m.selectedName()
	if !ok {
		return "", false
	}
	if name == ".." {
		return filepath.Dir(m.focusedView().Dir), true
	}
	return filepath.Join(m.focusedView().Dir, name), true
}

// visibleEntries lists entry names with their line indexes, for the jump
// prompt.
func visibleEntries(v *listing.View) (names []string, lines []int) {
	for i := firstEntry(v); i < len(v.Lines); i++ {
		if name, ok := entryName(v.Lines[i]); ok {
			names = append(names, name)
			lines = append(lines, i)
		}
	}
	return names, lines
}

// openSelected enters directories and hands files to the system opener.
func (m *model) openSelected() {
	path, ok := m.selectedPath()
	if !ok {
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		m.setStatus(fmt.Sprintf("Cannot open: %v", err))
		return
	}
	if info.IsDir() {
		m.navigate(path)
		return
	}
	m.openWithSystem(path)
}

// openWithSystem hands the path to the OS default opener (handles
// Linux/macOS/Windows automatically).
func (m *model) openWithSystem(path string) {
	if err := open.Run(path); err != nil {
		m.setStatus(fmt.Sprintf("Failed to open: %v", err))
		return
	}
	m.setStatus(fmt.Sprintf("Opened %s", filepath.Base(path)))
}

// editSelected opens the entry under the cursor in the configured editor,
// falling back through $EDITOR and common defaults.
func (m *model) editSelected() tea.Cmd {
	path, ok := m.selectedPath()
	if !ok {
		return nil
	}

	editors := []string{}
	if m.cfg.Editor != "" {
		editors = append(editors, m.cfg.Editor)
	}
	if env := os.Getenv("EDITOR"); env != "" {
		editors = append(editors, env)
	}
	editors = append(editors, "code", "vim", "nano", "vi")

	for _, editor := range editors {
		if !utils.CommandExists(editor) {
			continue
		}
		if editor == "code" {
			// VS Code detaches; no need to suspend the UI
			exec.Command(editor, path).Start()
			m.setStatus(fmt.Sprintf("Opening %s in %s", filepath.Base(path), editor))
			return nil
		}
		c := exec.Command(editor, path)
		return tea.ExecProcess(c, func(err error) tea.Msg {
			return editorFinishedMsg{err: err}
		})
	}

	m.setStatus("No editor found in PATH")
	return nil
}

// copySelectedPath puts the absolute path of the cursor entry on the system
// clipboard.
func (m *model) copySelectedPath() {
	path, ok := m.selectedPath()
	if !ok {
		return
	}
	// Use clipboard library for cross-platform support
	if err := clipboard.WriteAll(path); err != nil {
		logger.Error("clipboard: %v", err)
		m.setStatus(fmt.Sprintf("Failed to copy: %v", err))
		return
	}
	m.setStatus(fmt.Sprintf("Copied: %s", path))
}

// expandHome resolves a leading ~ against the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}
