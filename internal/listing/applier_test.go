package listing

import (
	"errors"
	"testing"
)

type fakeLister struct {
	lines       []string
	listErr     error
	parent      string
	parentErr   error
	listCalls   int
	parentCalls int
	lastDir     string
	lastSwitch  string
}

func (f *fakeLister) List(dir, switches string) ([]string, error) {
	f.listCalls++
	f.lastDir = dir
	f.lastSwitch = switches
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.lines, nil
}

func (f *fakeLister) ParentLine(dir string) (string, error) {
	f.parentCalls++
	if f.parentErr != nil {
		return "", f.parentErr
	}
	return f.parent, nil
}

func TestApplyInsertsParentWhenHidden(t *testing.T) {
	f := &fakeLister{
		lines:  []string{"total 12", "drwxr-xr-x 2 u u 4.0K Jan  2 10:00 docs", "-rw-r--r-- 1 u u 1.2K Jan  2 10:00 notes.txt"},
		parent: "drwxr-xr-x 8 u u 4.0K Jan  1 09:00 ..",
	}
	a := NewApplier(f)
	v := NewView("/home/u/proj", false)

	if err := a.Apply(v); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if len(v.Lines) != 5 {
		t.Fatalf("buffer has %d lines, want 5: %v", len(v.Lines), v.Lines)
	}
	if v.Lines[0] != "/home/u/proj:" {
		t.Errorf("header line = %q", v.Lines[0])
	}
	if v.Lines[2] != f.parent {
		t.Errorf("line 2 = %q, want the parent line", v.Lines[2])
	}
	if f.lastSwitch != "-lh --group-directories-first " {
		t.Errorf("list ran with switches %q", f.lastSwitch)
	}
	if v.Dirty() {
		t.Error("view still dirty after apply")
	}
}

func TestApplySkipsParentWhenVisible(t *testing.T) {
	f := &fakeLister{
		lines:  []string{"total 12", "-rw-r--r-- 1 u u 1.2K Jan  2 10:00 .env"},
		parent: "drwxr-xr-x 8 u u 4.0K Jan  1 09:00 ..",
	}
	a := NewApplier(f)
	v := NewView("/home/u/proj", true)

	if err := a.Apply(v); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if f.parentCalls != 0 {
		t.Errorf("parent lookup ran %d times for a visible listing", f.parentCalls)
	}
	if len(v.Lines) != 3 {
		t.Errorf("buffer has %d lines, want 3", len(v.Lines))
	}
}

func TestApplyParentFailureOmitsLine(t *testing.T) {
	f := &fakeLister{
		lines:     []string{"total 4", "-rw-r--r-- 1 u u 100 Jan  2 10:00 a.txt"},
		parentErr: errors.New("exit status 2"),
	}
	a := NewApplier(f)
	v := NewView("/home/u/proj", false)

	if err := a.Apply(v); err != nil {
		t.Fatalf("Apply should tolerate a parent lookup failure, got %v", err)
	}

	if len(v.Lines) != 3 {
		t.Fatalf("buffer has %d lines, want 3 (no parent line)", len(v.Lines))
	}
	for _, line := range v.Lines {
		if line == f.parent {
			t.Errorf("parent line present despite lookup failure")
		}
	}
}

func TestApplyListErrorKeepsBuffer(t *testing.T) {
	f := &fakeLister{listErr: errors.New("exit status 2")}
	a := NewApplier(f)
	v := NewView("/gone", false)
	v.Lines = []string{"/gone:", "total 0"}
	v.Cursor = 1

	err := a.Apply(v)
	if err == nil {
		t.Fatal("expected an error when the listing fails")
	}
	if len(v.Lines) != 2 || v.Lines[0] != "/gone:" {
		t.Errorf("buffer changed on failure: %v", v.Lines)
	}
	if v.Cursor != 1 {
		t.Errorf("cursor changed on failure: %d", v.Cursor)
	}
}

func TestApplyRestoresCursorClamped(t *testing.T) {
	f := &fakeLister{
		lines:  []string{"total 4", "-rw-r--r-- 1 u u 100 Jan  2 10:00 a.txt"},
		parent: "drwxr-xr-x 8 u u 4.0K Jan  1 09:00 ..",
	}
	a := NewApplier(f)
	v := NewView("/home/u/proj", false)
	v.Cursor = 42

	if err := a.Apply(v); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if want := len(v.Lines) - 1; v.Cursor != want {
		t.Errorf("cursor = %d, want clamped to %d", v.Cursor, want)
	}

	v.Cursor = 2
	if err := a.Apply(v); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if v.Cursor != 2 {
		t.Errorf("cursor = %d, want 2 (unchanged when in range)", v.Cursor)
	}
}

func TestApplyShortOutput(t *testing.T) {
	// A lister returning nothing at all must not break parent insertion.
	f := &fakeLister{parent: "drwxr-xr-x 8 u u 4.0K Jan  1 09:00 .."}
	a := NewApplier(f)
	v := NewView("/home/u/empty", false)

	if err := a.Apply(v); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(v.Lines) != 2 {
		t.Fatalf("buffer has %d lines, want 2: %v", len(v.Lines), v.Lines)
	}
	if v.Lines[1] != f.parent {
		t.Errorf("parent line = %q", v.Lines[1])
	}
}

// reentrantLister fires Apply again from inside List, the way a refresh hook
// reacts to the redraw it is part of.
type reentrantLister struct {
	applier  *Applier
	view     *View
	calls    int
	innerErr error
}

func (r *reentrantLister) List(dir, switches string) ([]string, error) {
	r.calls++
	if r.calls == 1 {
		r.innerErr = r.applier.Apply(r.view)
	}
	return []string{"total 0"}, nil
}

func (r *reentrantLister) ParentLine(dir string) (string, error) {
	return "drwxr-xr-x 8 u u 4.0K Jan  1 09:00 ..", nil
}

func TestApplyReentrancyGuard(t *testing.T) {
	r := &reentrantLister{}
	a := NewApplier(r)
	r.applier = a
	v := NewView("/home/u/proj", false)
	r.view = v

	if err := a.Apply(v); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if r.calls != 1 {
		t.Errorf("listing ran %d times, want 1 (nested apply must no-op)", r.calls)
	}
	if r.innerErr != nil {
		t.Errorf("nested apply returned %v, want nil", r.innerErr)
	}
}

func TestAutoReapply(t *testing.T) {
	f := &fakeLister{lines: []string{"total 0"}}
	a := NewApplier(f)

	if err := a.AutoReapply(nil); err != nil {
		t.Errorf("AutoReapply(nil) = %v", err)
	}
	if err := a.AutoReapply(&View{}); err != nil {
		t.Errorf("AutoReapply on unbound view = %v", err)
	}
	if f.listCalls != 0 {
		t.Fatalf("non-listing surfaces triggered %d listings", f.listCalls)
	}

	v := NewView("/home/u", true)
	if err := a.AutoReapply(v); err != nil {
		t.Fatalf("AutoReapply: %v", err)
	}
	if f.listCalls != 1 {
		t.Errorf("listing ran %d times, want 1", f.listCalls)
	}
}

func TestApplyScenario(t *testing.T) {
	f := &fakeLister{
		lines:  []string{"total 8", "-rw-r--r-- 1 u u 2.0K Jan  2 10:00 b.txt", "-rw-r--r-- 1 u u 1.0K Jan  3 11:00 a.txt"},
		parent: "drwxr-xr-x 8 u u 4.0K Jan  1 09:00 ..",
	}
	a := NewApplier(f)
	v := NewView("/home/u/proj", false)

	if err := a.Apply(v); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if f.lastSwitch != "-lh --group-directories-first " {
		t.Errorf("initial switches = %q", f.lastSwitch)
	}

	v.SetMode(ByDateReverse)
	if err := a.Apply(v); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if f.lastSwitch != "-lh --group-directories-first -t" {
		t.Errorf("date-reversed switches = %q", f.lastSwitch)
	}

	parentLookups := f.parentCalls
	v.ToggleHidden()
	if err := a.Apply(v); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if f.lastSwitch != "-Alh --group-directories-first -t" {
		t.Errorf("visible switches = %q", f.lastSwitch)
	}
	if f.parentCalls != parentLookups {
		t.Error("parent line synthesized for a visible listing")
	}
	for _, line := range v.Lines {
		if line == f.parent {
			t.Error("parent line present in a visible listing")
		}
	}
}
