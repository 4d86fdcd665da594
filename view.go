package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mlenz/lsview/internal/listing"
	"github.com/mlenz/lsview/internal/menu"
	"github.com/mlenz/lsview/internal/utils"
)

func (m *model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()

	var mainContent string
	switch m.mode {
	case modeSortMenu:
		mainContent = m.renderSortMenu()
	case modeSortPrompt:
		mainContent = m.renderSortPrompt()
	case modeInput:
		mainContent = m.renderInputDialog()
	case modeConfirmDelete:
		mainContent = m.renderConfirmDelete()
	case modeHelp:
		mainContent = m.renderHelp()
	default:
		mainContent = m.renderPanes()
	}

	statusBar := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, header, mainContent, statusBar)
}

func (m *model) renderHeader() string {
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("105")).
		Bold(true).
		Width(m.getSafeWidth())

	title := fmt.Sprintf("📁 lsview - %s", m.focusedView().Dir)
	if m.mode == modeJump {
		title = fmt.Sprintf("Jump: %s", m.promptInput.View())
	}
	return headerStyle.Render(title)
}

func (m *model) renderPanes() string {
	if m.dualPane && len(m.panes) > 1 {
		paneWidth := m.getSafeWidth()/2 - 2
		left := m.renderPane(0, paneWidth)
		right := m.renderPane(1, paneWidth)
		return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}
	return m.renderPane(0, m.getSafeWidth()-2)
}

func (m *model) renderPane(idx, width int) string {
	p := m.panes[idx]
	v := p.view

	available := m.getContentHeight()

	// Keep the cursor inside this pane's scroll window
	if v.Cursor < p.scrollOffset {
		p.scrollOffset = v.Cursor
	}
	if v.Cursor >= p.scrollOffset+available {
		p.scrollOffset = v.Cursor - available + 1
	}
	if p.scrollOffset < 0 {
		p.scrollOffset = 0
	}

	end := p.scrollOffset + available
	if end > len(v.Lines) {
		end = len(v.Lines)
	}

	cursorStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("57")).
		Foreground(lipgloss.Color("230"))
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	var b strings.Builder

	if p.scrollOffset > 0 {
		b.WriteString(dimStyle.Render("▲ More above..."))
		b.WriteString("\n")
	}

	for i := p.scrollOffset; i < end; i++ {
		line := truncateLine(v.Lines[i], width-2)
		switch {
		case i == v.Cursor && idx == m.focus:
			line = cursorStyle.Render(line)
		case i < listing.HeaderLines:
			line = dimStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if end < len(v.Lines) {
		b.WriteString(dimStyle.Render("▼ More below..."))
		b.WriteString("\n")
	}

	borderColor := lipgloss.Color("240")
	if idx == m.focus && m.dualPane {
		borderColor = lipgloss.Color("105")
	}

	paneStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width).
		Height(available + 2)

	return paneStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// truncateLine cuts a line to fit the pane, rune by rune so multi-byte names
// survive.
func truncateLine(line string, width int) string {
	if width <= 0 || lipgloss.Width(line) <= width {
		return line
	}
	out := ""
	for _, r := range line {
		test := out + string(r)
		if lipgloss.Width(test) > width-3 {
			break
		}
		out = test
	}
	return out + "..."
}

func (m *model) renderSortMenu() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))
	selectedStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("57")).
		Foreground(lipgloss.Color("230"))
	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))
	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Listing order"))
	b.WriteString("\n\n")

	for i, line := range menu.Lines(m.focusedView().State) {
		if i == m.menuCursor {
			b.WriteString("▶ " + selectedStyle.Render(line))
		} else {
			b.WriteString("  " + normalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hint := "type a number and press enter (esc to cancel)"
	if m.menuChoice != "" {
		hint = "Choice: " + m.menuChoice
	}
	b.WriteString(hintStyle.Render(hint))

	menuBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("99")).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(m.getSafeWidth(), m.getContentHeight()+2, lipgloss.Center, lipgloss.Center, menuBox)
}

func (m *model) renderSortPrompt() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))
	selectedStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("57")).
		Foreground(lipgloss.Color("230"))
	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Sort order"))
	b.WriteString("\n\n")
	b.WriteString(m.promptInput.View())
	b.WriteString("\n\n")

	if len(m.promptMatches) == 0 {
		b.WriteString(hintStyle.Render("No matching order"))
		b.WriteString("\n")
	}
	for i, match := range m.promptMatches {
		label := utils.HighlightMatches(match.Label, match.MatchedIndexes)
		if i == m.promptCursor {
			b.WriteString("▶ " + selectedStyle.Render(label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteString("\n")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("99")).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(m.getSafeWidth(), m.getContentHeight()+2, lipgloss.Center, lipgloss.Center, box)
}

func (m *model) renderInputDialog() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))
	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	var title string
	switch m.inputKind {
	case inputNewFile:
		title = "New file"
	case inputNewDir:
		title = "New directory"
	case inputRename:
		title = "Rename"
	case inputGoto:
		title = "Go to directory"
	}

	content := titleStyle.Render(title) + "\n\n" +
		m.textInput.View() + "\n\n" +
		hintStyle.Render("enter confirms (esc to cancel)")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("99")).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(m.getSafeWidth(), m.getContentHeight()+2, lipgloss.Center, lipgloss.Center, box)
}

func (m *model) renderConfirmDelete() string {
	dangerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("196"))
	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	kind := "file"
	if m.confirmIsDir {
		kind = "directory"
	}

	content := dangerStyle.Render(fmt.Sprintf("Delete %s?", kind)) + "\n\n" +
		filepath.Base(m.confirmPath) + "\n\n" +
		hintStyle.Render("y confirms (n or esc to cancel)")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("196")).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(m.getSafeWidth(), m.getContentHeight()+2, lipgloss.Center, lipgloss.Center, box)
}

func (m *model) renderHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("105"))
	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keys"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	for _, row := range [][2]string{
		{"j/k, arrows", "move cursor"},
		{"enter, l", "open entry"},
		{"backspace, h", "parent directory"},
		{"~", "home directory"},
		{"g / G", "first / last line"},
		{"J", "go to directory"},
		{"/", "jump to entry"},
	} {
		b.WriteString(fmt.Sprintf("  %-14s %s\n", row[0], row[1]))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Listing order"))
	b.WriteString("\n")
	for _, e := range menu.Table() {
		b.WriteString(fmt.Sprintf("  %-14s %s\n", e.KeyHint(), e.Desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Files"))
	b.WriteString("\n")
	for _, row := range [][2]string{
		{"a / A", "new file / directory"},
		{"r", "rename"},
		{"d", "delete"},
		{"o", "open with system"},
		{"y", "copy path"},
		{"e", "edit"},
	} {
		b.WriteString(fmt.Sprintf("  %-14s %s\n", row[0], row[1]))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Panes"))
	b.WriteString("\n")
	for _, row := range [][2]string{
		{"tab", "switch pane"},
		{"|", "toggle dual pane"},
		{"ctrl+r", "refresh"},
		{"q", "quit"},
	} {
		b.WriteString(fmt.Sprintf("  %-14s %s\n", row[0], row[1]))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("105")).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(m.getSafeWidth(), m.getContentHeight()+2, lipgloss.Center, lipgloss.Center, box)
}

func (m *model) renderStatusBar() string {
	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color("240")).
		Width(m.getSafeWidth())

	p := m.focusedPane()
	v := p.view

	parts := []string{fmt.Sprintf("%d/%d", v.Cursor+1, len(v.Lines))}
	if p.gitBranch != "" {
		branch := "⎇ " + p.gitBranch
		if p.gitModified > 0 {
			branch += fmt.Sprintf(" ±%d", p.gitModified)
		}
		parts = append(parts, branch)
	}
	parts = append(parts, fmt.Sprintf("Sort: %s (S)", v.State.Mode))
	if v.State.ShowHidden {
		parts = append(parts, "hidden shown (.)")
	}
	if m.statusMsg != "" {
		parts = append(parts, m.statusMsg)
	}

	left := strings.Join(parts, " | ")
	right := "? for help"

	padding := m.getSafeWidth() - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return statusStyle.Render(" " + left + strings.Repeat(" ", padding) + right + " ")
}
