package fileops

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateFile(t *testing.T) {
	dir := t.TempDir()

	if err := CreateFile(dir, "notes.txt"); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, "notes.txt"))
	if err != nil {
		t.Fatalf("created file missing: %v", err)
	}
	if info.IsDir() {
		t.Error("created a directory, want a file")
	}

	if err := CreateFile(dir, "notes.txt"); err == nil {
		t.Error("creating an existing file should fail")
	}
}

func TestCreateDir(t *testing.T) {
	dir := t.TempDir()

	if err := CreateDir(dir, "projects"); err != nil {
		t.Fatalf("CreateDir: %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, "projects"))
	if err != nil {
		t.Fatalf("created directory missing: %v", err)
	}
	if !info.IsDir() {
		t.Error("created a file, want a directory")
	}

	if err := CreateDir(dir, "projects"); err == nil {
		t.Error("creating an existing directory should fail")
	}
}

func TestCreateRejectsBadNames(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"", ".", "..", "a/b", `a\b`} {
		if err := CreateFile(dir, name); err == nil {
			t.Errorf("CreateFile(%q) should fail", name)
		}
		if err := CreateDir(dir, name); err == nil {
			t.Errorf("CreateDir(%q) should fail", name)
		}
	}
}

func TestRename(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "draft.txt")
	if err := os.WriteFile(oldPath, []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := Rename(oldPath, "final.txt"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "final.txt")); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}
	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Error("old name still present after rename")
	}
}

func TestRenameRefusesToClobber(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	os.WriteFile(a, []byte("a"), 0644)
	os.WriteFile(b, []byte("b"), 0644)

	if err := Rename(a, "b.txt"); err == nil {
		t.Error("renaming onto an existing entry should fail")
	}
	if data, _ := os.ReadFile(b); string(data) != "b" {
		t.Error("existing entry was overwritten")
	}
}

func TestRenameRejectsPaths(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	os.WriteFile(a, []byte("a"), 0644)

	if err := Rename(a, "sub/b.txt"); err == nil {
		t.Error("rename should take a bare name, not a path")
	}
}

func TestDeleteFallsBackToPermanent(t *testing.T) {
	// Point PATH at an empty directory so no trash helper resolves and the
	// permanent branch runs.
	oldPath := os.Getenv("PATH")
	os.Setenv("PATH", t.TempDir())
	defer os.Setenv("PATH", oldPath)

	dir := t.TempDir()
	file := filepath.Join(dir, "junk.txt")
	os.WriteFile(file, []byte("x"), 0644)

	if err := Delete(file, false); err != nil {
		t.Fatalf("Delete file: %v", err)
	}
	if _, err := os.Stat(file); !os.IsNotExist(err) {
		t.Error("file still present after delete")
	}

	sub := filepath.Join(dir, "junkdir")
	os.Mkdir(sub, 0755)
	os.WriteFile(filepath.Join(sub, "inner.txt"), []byte("x"), 0644)

	if err := Delete(sub, true); err != nil {
		t.Fatalf("Delete directory: %v", err)
	}
	if _, err := os.Stat(sub); !os.IsNotExist(err) {
		t.Error("directory still present after delete")
	}
}

func TestCommandExists(t *testing.T) {
	if !commandExists("ls") {
		t.Error("ls should resolve on PATH")
	}
	if commandExists("definitely-not-a-command-xyz") {
		t.Error("nonexistent command resolved")
	}
}
