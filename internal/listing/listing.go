package listing

// Mode is a directory sort order. The zero value sorts by name.
type Mode int

const (
	ByName Mode = iota
	ByNameReverse
	ByDate
	ByDateReverse
	ByExtension
	ByExtensionReverse
)

// String returns the order name used in status messages and menus.
func (m Mode) String() string {
	switch m {
	case ByNameReverse:
		return "name (reversed)"
	case ByDate:
		return "date"
	case ByDateReverse:
		return "date (reversed)"
	case ByExtension:
		return "extension"
	case ByExtensionReverse:
		return "extension (reversed)"
	default:
		return "name"
	}
}

// fragment returns the ls switches selecting this sort order. ls -t is
// newest-first, so oldest-first date order needs -r on top of -t.
func (m Mode) fragment() string {
	switch m {
	case ByNameReverse:
		return "-r"
	case ByDate:
		return "-t -r"
	case ByDateReverse:
		return "-t"
	case ByExtension:
		return "-X"
	case ByExtensionReverse:
		return "-X -r"
	default:
		return ""
	}
}

const (
	visibleBase = "-Alh --group-directories-first "
	hiddenBase  = "-lh --group-directories-first "
)

// Switches composes the full ls flag string for a visibility/order pair.
// This is the only place listing flags are assembled: the sort tag is the
// source of truth and the string is always derived from it.
func Switches(showHidden bool, mode Mode) string {
	if showHidden {
		return visibleBase + mode.fragment()
	}
	return hiddenBase + mode.fragment()
}

// State is the listing configuration owned by a single view.
type State struct {
	Mode       Mode
	ShowHidden bool
}

// View is one directory listing buffer: the directory it shows, its sort
// state, and the rendered lines with a cursor into them. Each open pane owns
// exactly one View; they are never shared.
type View struct {
	Dir    string
	State  State
	Lines  []string
	Cursor int

	dirty    bool
	applying bool
}

// NewView creates the state for a freshly opened directory buffer. New views
// start sorted by name; the initial hidden-file visibility is injected from
// startup configuration.
func NewView(dir string, showHidden bool) *View {
	return &View{
		Dir:   dir,
		State: State{Mode: ByName, ShowHidden: showHidden},
		dirty: true,
	}
}

// SetMode selects the sort order and marks the view for re-listing. Setting
// the current mode again is harmless.
func (v *View) SetMode(m Mode) {
	v.State.Mode = m
	v.dirty = true
}

// ToggleHidden flips dotfile visibility and marks the view for re-listing.
func (v *View) ToggleHidden() {
	v.State.ShowHidden = !v.State.ShowHidden
	v.dirty = true
}

// Switches returns the ls flags for the view's current state.
func (v *View) Switches() string {
	return Switches(v.State.ShowHidden, v.State.Mode)
}

// Dirty reports whether the view has state changes not yet applied.
func (v *View) Dirty() bool {
	return v.dirty
}
