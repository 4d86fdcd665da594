package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mlenz/lsview/internal/fileops"
	"github.com/mlenz/lsview/internal/logger"
	"github.com/mlenz/lsview/internal/menu"
	"github.com/mlenz/lsview/internal/search"
	"github.com/mlenz/lsview/internal/watch"
)

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("lsview")}
	if m.watcher != nil {
		cmds = append(cmds, waitForChange(m.watcher))
	}
	return tea.Batch(cmds...)
}

// waitForChange blocks until the watcher reports a settled directory change.
func waitForChange(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		dir, ok := <-w.Changed()
		if !ok {
			return nil
		}
		return dirChangedMsg{dir: dir}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Clear expired status messages
	if m.statusMsg != "" && time.Now().After(m.statusExpiry) {
		m.statusMsg = ""
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dirChangedMsg:
		for _, p := range m.panes {
			if p.view.Dir != msg.dir {
				continue
			}
			if err := m.applier.AutoReapply(p.view); err != nil {
				logger.Warn("reapply %s: %v", p.view.Dir, err)
				continue
			}
			m.clampCursor(p)
			p.refreshGit()
		}
		return m, waitForChange(m.watcher)

	case editorFinishedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Editor exited: %v", msg.err))
		}
		m.applyFocused()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSortMenu:
			return m.updateSortMenu(msg)
		case modeSortPrompt:
			return m.updateSortPrompt(msg)
		case modeJump:
			return m.updateJump(msg)
		case modeInput:
			return m.updateInput(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modeHelp:
			return m.updateHelp(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m *model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Sort and visibility commands route through the shared command table, so
	// direct keys, the menu, and the prompt all land in the same place.
	for _, e := range menu.Table() {
		if key.Matches(msg, e.Keys) {
			e.Invoke(m)
			return m, nil
		}
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		m.moveCursor(-1)

	case "down", "j":
		m.moveCursor(1)

	case "pgup":
		m.moveCursor(-m.getContentHeight())

	case "pgdown":
		m.moveCursor(m.getContentHeight())

	case "g", "home":
		v := m.focusedView()
		v.Cursor = firstEntry(v)

	case "G", "end":
		v := m.focusedView()
		if len(v.Lines) > 0 {
			v.Cursor = len(v.Lines) - 1
		}

	case "enter", "l", "right":
		m.openSelected()

	case "backspace", "h", "left":
		m.navigate(filepath.Dir(m.focusedView().Dir))

	case "~":
		if home, err := os.UserHomeDir(); err == nil {
			m.navigate(home)
		}

	case "J":
		m.inputKind = inputGoto
		m.textInput.Placeholder = "Directory..."
		m.textInput.SetValue("")
		m.textInput.Focus()
		m.mode = modeInput
		return m, textinput.Blink

	case "/":
		m.jumpOrigin = m.focusedView().Cursor
		m.promptInput.Placeholder = "Jump to..."
		m.promptInput.SetValue("")
		m.promptInput.Focus()
		m.mode = modeJump
		return m, textinput.Blink

	case "a":
		m.inputKind = inputNewFile
		m.textInput.Placeholder = "New file name..."
		m.textInput.SetValue("")
		m.textInput.Focus()
		m.mode = modeInput
		return m, textinput.Blink

	case "A":
		m.inputKind = inputNewDir
		m.textInput.Placeholder = "New directory name..."
		m.textInput.SetValue("")
		m.textInput.Focus()
		m.mode = modeInput
		return m, textinput.Blink

	case "r":
		name, ok := m.selectedName()
		if !ok || name == ".." {
			return m, nil
		}
		m.renamePath, _ = m.selectedPath()
		m.inputKind = inputRename
		m.textInput.Placeholder = "New name..."
		m.textInput.SetValue(name)
		m.textInput.Focus()
		m.mode = modeInput
		return m, textinput.Blink

	case "d":
		name, ok := m.selectedName()
		if !ok || name == ".." {
			return m, nil
		}
		m.confirmPath, _ = m.selectedPath()
		m.confirmIsDir = entryIsDir(m.focusedView().Lines[m.focusedView().Cursor])
		m.mode = modeConfirmDelete

	case "o":
		if path, ok := m.selectedPath(); ok {
			m.openWithSystem(path)
		}

	case "y":
		m.copySelectedPath()

	case "e":
		return m, m.editSelected()

	case "tab":
		m.switchPane()

	case "|":
		m.toggleDualPane()

	case "ctrl+r":
		m.applyFocused()
		m.setStatus("Refreshed")

	case "?":
		m.mode = modeHelp
	}

	return m, nil
}

func (m *model) updateSortMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := msg.String()
	switch s {
	case "ctrl+c", "esc", "q":
		m.mode = modeBrowse
		m.menuChoice = ""

	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}

	case "down", "j":
		if m.menuCursor < len(menu.Table())-1 {
			m.menuCursor++
		}

	case "backspace":
		if len(m.menuChoice) > 0 {
			m.menuChoice = m.menuChoice[:len(m.menuChoice)-1]
		}

	case "enter":
		// Typed digits win over the highlighted row
		choice := m.menuCursor + 1
		if m.menuChoice != "" {
			n, err := strconv.Atoi(m.menuChoice)
			if err != nil {
				n = 0
			}
			choice = n
		}
		m.mode = modeBrowse
		m.menuChoice = ""
		if err := menu.Dispatch(m, choice); err != nil {
			m.setStatus(err.Error())
		}

	default:
		if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
			m.menuChoice += s
		}
	}

	return m, nil
}

func (m *model) updateSortPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.mode = modeBrowse
		m.promptInput.Blur()

	case "up":
		if m.promptCursor > 0 {
			m.promptCursor--
		}

	case "down", "tab":
		if m.promptCursor < len(m.promptMatches)-1 {
			m.promptCursor++
		}

	case "enter":
		m.mode = modeBrowse
		m.promptInput.Blur()
		if m.promptCursor < len(m.promptMatches) {
			m.promptMatches[m.promptCursor].Entry.Invoke(m)
		}

	default:
		var cmd tea.Cmd
		m.promptInput, cmd = m.promptInput.Update(msg)
		m.promptMatches = menu.Filter(m.promptInput.Value(), menu.Candidates())
		if m.promptCursor >= len(m.promptMatches) {
			m.promptCursor = 0
		}
		return m, cmd
	}

	return m, nil
}

func (m *model) updateJump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		// Abandon the jump and put the cursor back
		m.focusedView().Cursor = m.jumpOrigin
		m.mode = modeBrowse
		m.promptInput.Blur()

	case "enter":
		m.mode = modeBrowse
		m.promptInput.Blur()

	default:
		var cmd tea.Cmd
		m.promptInput, cmd = m.promptInput.Update(msg)
		query := m.promptInput.Value()
		v := m.focusedView()
		if query == "" {
			v.Cursor = m.jumpOrigin
			return m, cmd
		}
		names, lines := visibleEntries(v)
		matches := search.MatchNames(query, names)
		if len(matches) > 0 {
			v.Cursor = lines[matches[0].Index]
		}
		return m, cmd
	}

	return m, nil
}

func (m *model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.mode = modeBrowse
		m.textInput.Blur()
		m.renamePath = ""

	case "enter":
		value := strings.TrimSpace(m.textInput.Value())
		m.mode = modeBrowse
		m.textInput.Blur()
		if value == "" {
			return m, nil
		}
		dir := m.focusedView().Dir

		switch m.inputKind {
		case inputNewFile:
			if err := fileops.CreateFile(dir, value); err != nil {
				logger.Error("create %s: %v", value, err)
				m.setStatus(fmt.Sprintf("Create failed: %v", err))
			} else {
				m.setStatus(fmt.Sprintf("Created %s", value))
				m.applyFocused()
			}

		case inputNewDir:
			if err := fileops.CreateDir(dir, value); err != nil {
				logger.Error("create %s: %v", value, err)
				m.setStatus(fmt.Sprintf("Create failed: %v", err))
			} else {
				m.setStatus(fmt.Sprintf("Created %s/", value))
				m.applyFocused()
			}

		case inputRename:
			if err := fileops.Rename(m.renamePath, value); err != nil {
				logger.Error("rename %s: %v", m.renamePath, err)
				m.setStatus(fmt.Sprintf("Rename failed: %v", err))
			} else {
				m.setStatus(fmt.Sprintf("Renamed to %s", value))
				m.applyFocused()
			}
			m.renamePath = ""

		case inputGoto:
			target := expandHome(value)
			if !filepath.IsAbs(target) {
				target = filepath.Join(dir, target)
			}
			m.navigate(target)
		}

	default:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		if err := fileops.Delete(m.confirmPath, m.confirmIsDir); err != nil {
			logger.Error("delete %s: %v", m.confirmPath, err)
			m.setStatus(fmt.Sprintf("Delete failed: %v", err))
		} else {
			m.setStatus(fmt.Sprintf("Deleted %s", filepath.Base(m.confirmPath)))
			m.applyFocused()
		}
		m.confirmPath = ""
		m.mode = modeBrowse

	case "n", "N", "esc", "q", "ctrl+c":
		m.confirmPath = ""
		m.mode = modeBrowse
	}

	return m, nil
}

func (m *model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q", "enter", "?":
		m.mode = modeBrowse
	}
	return m, nil
}
