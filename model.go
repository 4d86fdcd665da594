package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/mlenz/lsview/internal/config"
	"github.com/mlenz/lsview/internal/git"
	"github.com/mlenz/lsview/internal/listing"
	"github.com/mlenz/lsview/internal/logger"
	"github.com/mlenz/lsview/internal/menu"
	"github.com/mlenz/lsview/internal/watch"
)

// dirChangedMsg reports that a watched directory's contents settled after a
// change on disk.
type dirChangedMsg struct{ dir string }

// editorFinishedMsg reports the external editor exiting.
type editorFinishedMsg struct{ err error }

// Terminal dimension constants
const (
	minTerminalWidth  = 40 // Minimum usable width
	minTerminalHeight = 10 // Minimum usable height
	uiOverhead        = 6  // Header (1) + status (1) + pane title and borders (4)
)

// statusMsgDuration is how long transient status messages stay up.
const statusMsgDuration = 2 * time.Second

type mode int

const (
	modeBrowse mode = iota
	modeSortMenu
	modeSortPrompt
	modeJump
	modeInput
	modeConfirmDelete
	modeHelp
)

type inputKind int

const (
	inputNewFile inputKind = iota
	inputNewDir
	inputRename
	inputGoto
)

// pane is one directory view plus its presentation state. Each pane owns its
// view outright; sort state never leaks between panes.
type pane struct {
	view         *listing.View
	scrollOffset int
	gitBranch    string
	gitModified  int
}

func newPane(dir string, showHidden bool, applier *listing.Applier) (*pane, error) {
	v := listing.NewView(dir, showHidden)
	if err := applier.Apply(v); err != nil {
		return nil, err
	}
	v.Cursor = firstEntry(v)
	p := &pane{view: v}
	p.refreshGit()
	return p, nil
}

func (p *pane) refreshGit() {
	p.gitBranch = git.Branch(p.view.Dir)
	p.gitModified = git.ModifiedCount(p.view.Dir)
}

type model struct {
	cfg     *config.Config
	applier *listing.Applier
	watcher *watch.Watcher

	panes    []*pane
	focus    int // index into panes
	dualPane bool

	mode mode

	menuCursor int    // highlighted sort menu row
	menuChoice string // digits typed in the sort menu

	promptInput   textinput.Model // sort prompt and jump queries
	promptMatches []menu.Match
	promptCursor  int

	textInput  textinput.Model // create, rename, goto dialogs
	inputKind  inputKind
	renamePath string // original path while renaming

	jumpOrigin int // cursor position before the jump prompt opened

	confirmPath  string // path pending delete confirmation
	confirmIsDir bool

	statusMsg    string
	statusExpiry time.Time

	width  int
	height int
}

func initialModel(cfg *config.Config, startDir string, watcher *watch.Watcher) (*model, error) {
	pi := textinput.New()
	pi.Placeholder = "Type to filter..."
	pi.CharLimit = 256
	pi.Width = 50

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50

	applier := listing.NewApplier(listing.ExecLister{})

	m := &model{
		cfg:         cfg,
		applier:     applier,
		watcher:     watcher,
		mode:        modeBrowse,
		promptInput: pi,
		textInput:   ti,
	}

	p, err := newPane(startDir, cfg.ShowHidden, applier)
	if err != nil {
		return nil, err
	}
	m.panes = []*pane{p}

	if cfg.DualPane {
		second, err := newPane(startDir, cfg.ShowHidden, applier)
		if err != nil {
			logger.Warn("second pane: %v", err)
		} else {
			m.panes = append(m.panes, second)
			m.dualPane = true
		}
	}

	m.watchFocused()
	return m, nil
}

// Helper methods for safe dimensions
func (m *model) getSafeWidth() int {
	if m.width < minTerminalWidth {
		return minTerminalWidth
	}
	return m.width
}

func (m *model) getSafeHeight() int {
	if m.height < minTerminalHeight {
		return minTerminalHeight
	}
	return m.height
}

// getContentHeight returns available height for listing lines (total - UI overhead)
func (m *model) getContentHeight() int {
	availableHeight := m.getSafeHeight() - uiOverhead
	if availableHeight < 3 {
		availableHeight = 3
	}
	return availableHeight
}

func (m *model) focusedPane() *pane {
	return m.panes[m.focus]
}

func (m *model) focusedView() *listing.View {
	return m.focusedPane().view
}

func (m *model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusExpiry = time.Now().Add(statusMsgDuration)
}

// SetSortMode selects the focused view's sort order and redraws it. Part of
// the menu.Controller surface.
func (m *model) SetSortMode(sortMode listing.Mode) {
	m.focusedView().SetMode(sortMode)
	m.applyFocused()
	m.setStatus(fmt.Sprintf("Sorted by %s", sortMode))
}

// ToggleHidden flips dotfile visibility on the focused view and redraws it.
// Part of the menu.Controller surface.
func (m *model) ToggleHidden() {
	v := m.focusedView()
	v.ToggleHidden()
	m.applyFocused()
	if v.State.ShowHidden {
		m.setStatus("Showing hidden files")
	} else {
		m.setStatus("Hiding hidden files")
	}
}

// OpenMenu switches to the numbered sort menu, cursor on the current order.
// Part of the menu.Controller surface.
func (m *model) OpenMenu() {
	m.mode = modeSortMenu
	m.menuCursor = int(m.focusedView().State.Mode)
	m.menuChoice = ""
}

// OpenPrompt switches to the sort completion prompt with all candidates
// showing. Part of the menu.Controller surface.
func (m *model) OpenPrompt() {
	m.mode = modeSortPrompt
	m.promptInput.SetValue("")
	m.promptInput.Placeholder = "Type to filter..."
	m.promptInput.Focus()
	m.promptMatches = menu.Filter("", menu.Candidates())
	m.promptCursor = 0
}

// applyFocused re-lists the focused pane. On failure the previous lines stay
// on screen and the error lands on the status line.
func (m *model) applyFocused() {
	p := m.focusedPane()
	if err := m.applier.Apply(p.view); err != nil {
		logger.Warn("apply %s: %v", p.view.Dir, err)
		m.setStatus(fmt.Sprintf("Listing failed: %v", err))
		return
	}
	m.clampCursor(p)
}

// clampCursor keeps the cursor off the header lines after a redraw shrank or
// replaced the buffer.
func (m *model) clampCursor(p *pane) {
	if p.view.Cursor < firstEntry(p.view) {
		p.view.Cursor = firstEntry(p.view)
	}
}

func (m *model) moveCursor(delta int) {
	v := m.focusedView()
	if len(v.Lines) == 0 {
		return
	}
	pos := v.Cursor + delta
	if pos < firstEntry(v) {
		pos = firstEntry(v)
	}
	if pos > len(v.Lines)-1 {
		pos = len(v.Lines) - 1
	}
	v.Cursor = pos
}

// navigate points the focused pane at dir and redraws it. A failed listing
// rolls the pane back to where it was.
func (m *model) navigate(dir string) {
	p := m.focusedPane()
	v := p.view

	prevDir, prevCursor := v.Dir, v.Cursor
	v.Dir = dir
	v.Cursor = 0
	if err := m.applier.Apply(v); err != nil {
		v.Dir, v.Cursor = prevDir, prevCursor
		logger.Warn("navigate %s: %v", dir, err)
		m.setStatus(fmt.Sprintf("Cannot list %s: %v", dir, err))
		return
	}

	v.Cursor = firstEntry(v)
	p.scrollOffset = 0
	p.refreshGit()
	m.watchFocused()
}

// watchFocused re-targets the directory watcher at the focused pane.
func (m *model) watchFocused() {
	if m.watcher == nil {
		return
	}
	dir := m.focusedView().Dir
	if err := m.watcher.Watch(dir); err != nil {
		logger.Warn("watch %s: %v", dir, err)
	}
}

func (m *model) toggleDualPane() {
	if m.dualPane {
		m.panes = m.panes[:1]
		m.focus = 0
		m.dualPane = false
		m.watchFocused()
		m.setStatus("Dual pane off")
		return
	}

	p, err := newPane(m.focusedView().Dir, m.cfg.ShowHidden, m.applier)
	if err != nil {
		m.setStatus(fmt.Sprintf("Cannot open pane: %v", err))
		return
	}
	m.panes = append(m.panes, p)
	m.dualPane = true
	m.focus = 1
	m.watchFocused()
	m.setStatus("Dual pane on")
}

func (m *model) switchPane() {
	if !m.dualPane {
		return
	}
	m.focus = (m.focus + 1) % len(m.panes)
	if err := m.applier.AutoReapply(m.focusedView()); err != nil {
		logger.Warn("reapply %s: %v", m.focusedView().Dir, err)
	}
	m.clampCursor(m.focusedPane())
	m.watchFocused()
}
