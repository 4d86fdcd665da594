// Package menu holds the static sort/visibility command table and renders it
// as a numbered menu or as completion candidates.
package menu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sahilm/fuzzy"

	"github.com/mlenz/lsview/internal/listing"
)

// Action identifies what a table entry does when invoked.
type Action int

const (
	SortByName Action = iota
	SortByNameReverse
	SortByDate
	SortByDateReverse
	SortByExtension
	SortByExtensionReverse
	ToggleHidden
	ShowMenu
	ShowPrompt
)

// sortMode maps sort actions to their listing mode. The second return is
// false for the non-sort actions.
func (a Action) sortMode() (listing.Mode, bool) {
	switch a {
	case SortByName:
		return listing.ByName, true
	case SortByNameReverse:
		return listing.ByNameReverse, true
	case SortByDate:
		return listing.ByDate, true
	case SortByDateReverse:
		return listing.ByDateReverse, true
	case SortByExtension:
		return listing.ByExtension, true
	case SortByExtensionReverse:
		return listing.ByExtensionReverse, true
	}
	return 0, false
}

// Controller is the capability surface entries act through. The host model
// implements it; entries never reach into the host directly.
type Controller interface {
	SetSortMode(listing.Mode)
	ToggleHidden()
	OpenMenu()
	OpenPrompt()
}

// Entry is one row of the command table.
type Entry struct {
	Action Action
	Desc   string
	Keys   key.Binding
}

// KeyHint is the binding hint shown next to the entry in both menus.
func (e Entry) KeyHint() string {
	return e.Keys.Help().Key
}

// Invoke dispatches the entry's action on the controller.
func (e Entry) Invoke(c Controller) {
	if m, ok := e.Action.sortMode(); ok {
		c.SetSortMode(m)
		return
	}
	switch e.Action {
	case ToggleHidden:
		c.ToggleHidden()
	case ShowMenu:
		c.OpenMenu()
	case ShowPrompt:
		c.OpenPrompt()
	}
}

// Active reports whether the entry reflects the current state. Sort entries
// compare mode tags, the hidden toggle mirrors the visibility flag, and the
// two menu entries are never active.
func (e Entry) Active(st listing.State) bool {
	if m, ok := e.Action.sortMode(); ok {
		return st.Mode == m
	}
	return e.Action == ToggleHidden && st.ShowHidden
}

func entry(a Action, desc string, keys ...string) Entry {
	return Entry{
		Action: a,
		Desc:   desc,
		Keys:   key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], desc)),
	}
}

// table order is significant: it defines menu numbering.
var table = []Entry{
	entry(SortByName, "sort by name", "n"),
	entry(SortByNameReverse, "sort by name (reversed)", "N"),
	entry(SortByDate, "sort by date", "t"),
	entry(SortByDateReverse, "sort by date (reversed)", "T"),
	entry(SortByExtension, "sort by extension", "x"),
	entry(SortByExtensionReverse, "sort by extension (reversed)", "X"),
	entry(ToggleHidden, "toggle hidden files", "."),
	entry(ShowMenu, "show sort menu", "S"),
	entry(ShowPrompt, "sort from prompt", ":"),
}

// Table returns the command table in menu order.
func Table() []Entry {
	return table
}

func widths() (idx, desc, hint int) {
	idx = len(strconv.Itoa(len(table)))
	for _, e := range table {
		desc = max(desc, len(e.Desc))
		hint = max(hint, len(e.KeyHint()))
	}
	return idx, desc, hint
}

// Lines renders the numbered menu, one line per entry in table order, with
// active entries starred. Every column is fixed width, so every line has the
// same total width.
func Lines(st listing.State) []string {
	idxW, descW, hintW := widths()
	lines := make([]string, len(table))
	for i, e := range table {
		marker := " "
		if e.Active(st) {
			marker = "*"
		}
		lines[i] = fmt.Sprintf("%*d  %s %-*s  %-*s", idxW, i+1, marker, descW, e.Desc, hintW, e.KeyHint())
	}
	return lines
}

// Candidate pairs a completion label with its entry.
type Candidate struct {
	Label string
	Entry Entry
}

// Candidates renders the table as completion candidates, one per entry in
// table order.
func Candidates() []Candidate {
	idxW, descW, _ := widths()
	cands := make([]Candidate, len(table))
	for i, e := range table {
		cands[i] = Candidate{
			Label: fmt.Sprintf("%*d. %-*s (%s)", idxW, i+1, descW, e.Desc, e.KeyHint()),
			Entry: e,
		}
	}
	return cands
}

// Dispatch invokes the table entry at the 1-based choice. Out-of-range
// choices change nothing and come back as an error for the status line.
func Dispatch(c Controller, choice int) error {
	if choice < 1 || choice > len(table) {
		return fmt.Errorf("invalid selection: %d", choice)
	}
	table[choice-1].Invoke(c)
	return nil
}

// Match is a filtered candidate plus the label positions the query matched,
// for highlighting.
type Match struct {
	Candidate
	MatchedIndexes []int
}

// Filter narrows candidates by fuzzy matching their labels. An empty query
// keeps everything in table order.
func Filter(query string, cands []Candidate) []Match {
	if strings.TrimSpace(query) == "" {
		all := make([]Match, len(cands))
		for i, c := range cands {
			all[i] = Match{Candidate: c}
		}
		return all
	}

	labels := make([]string, len(cands))
	for i, c := range cands {
		labels[i] = c.Label
	}

	var out []Match
	for _, m := range fuzzy.Find(query, labels) {
		out = append(out, Match{Candidate: cands[m.Index], MatchedIndexes: m.MatchedIndexes})
	}
	return out
}
