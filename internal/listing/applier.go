package listing

import (
	"fmt"
	"slices"

	"github.com/mlenz/lsview/internal/logger"
)

// Lister runs the external listing program. Implementations return stdout
// split into lines without trailing newlines.
type Lister interface {
	// List runs `ls <switches> <dir>` and returns its output lines.
	List(dir, switches string) ([]string, error)
	// ParentLine returns the parent directory's own metadata line, the
	// equivalent of running `ls -ld ..` inside dir.
	ParentLine(dir string) (string, error)
}

// HeaderLines is the number of buffer lines before the first entry: the
// directory path line plus the "total" line ls prints in long format.
const HeaderLines = 2

// Applier redraws views from fresh external listing output.
type Applier struct {
	lister Lister
}

// NewApplier returns an Applier backed by the given lister.
func NewApplier(l Lister) *Applier {
	return &Applier{lister: l}
}

// Apply rebuilds the view's lines from a fresh listing and restores the
// cursor to its previous offset, clamped to the new buffer end. A listing
// without hidden files has no parent entry, so one is synthesized from the
// parent's metadata line and inserted right after the header lines; when that
// lookup fails the line is simply left out. A re-entrant call (the redraw
// firing the refresh hook again) is a no-op.
func (a *Applier) Apply(v *View) error {
	if v == nil || v.applying {
		return nil
	}
	v.applying = true
	defer func() { v.applying = false }()

	cursor := v.Cursor
	out, err := a.lister.List(v.Dir, v.Switches())
	if err != nil {
		return fmt.Errorf("list %s: %w", v.Dir, err)
	}

	lines := make([]string, 0, len(out)+2)
	lines = append(lines, v.Dir+":")
	lines = append(lines, out...)

	if !v.State.ShowHidden {
		if parent, err := a.lister.ParentLine(v.Dir); err == nil && parent != "" {
			at := min(HeaderLines, len(lines))
			lines = slices.Insert(lines, at, parent)
		} else if err != nil {
			logger.Debug("parent line for %s: %v", v.Dir, err)
		}
	}

	v.Lines = lines
	v.Cursor = max(0, min(cursor, len(lines)-1))
	v.dirty = false
	return nil
}

// AutoReapply is the focus and pane-switch hook. Surfaces that are not
// directory listings (no view, or a view not yet bound to a directory) are
// left alone; everything else gets a fresh apply.
func (a *Applier) AutoReapply(v *View) error {
	if v == nil || v.Dir == "" {
		return nil
	}
	return a.Apply(v)
}
