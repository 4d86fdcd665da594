// Package fileops mutates directory entries on behalf of the browser's
// create, rename, and delete dialogs.
package fileops

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// checkName rejects names the dialogs should never hand to the filesystem:
// empty input, the dot entries, and anything containing a path separator.
func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("empty name")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%s is not a usable name", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("name must not contain a path separator")
	}
	return nil
}

// CreateFile creates an empty file called name inside dir.
func CreateFile(dir, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", name)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return f.Close()
}

// CreateDir creates a directory called name inside dir.
func CreateDir(dir, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", name)
	}
	return os.Mkdir(path, 0755)
}

// Rename gives the entry at oldPath a new name in the same directory. It
// refuses to overwrite an existing entry.
func Rename(oldPath, newName string) error {
	if err := checkName(newName); err != nil {
		return err
	}
	newPath := filepath.Join(filepath.Dir(oldPath), newName)
	if _, err := os.Stat(newPath); err == nil {
		return fmt.Errorf("%s already exists", newName)
	}
	return os.Rename(oldPath, newPath)
}

// Delete removes the entry at path. It prefers the system trash so the
// operation stays recoverable, and deletes permanently only when no trash
// facility is available.
func Delete(path string, isDir bool) error {
	if err := MoveToTrash(path); err == nil {
		return nil
	}
	if isDir {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}

// MoveToTrash hands path to the platform's trash facility.
func MoveToTrash(path string) error {
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("tell application %q to delete POSIX file %q", "Finder", path)
		return exec.Command("osascript", "-e", script).Run()

	case "windows":
		script := fmt.Sprintf(`Add-Type -AssemblyName Microsoft.VisualBasic; [Microsoft.VisualBasic.FileIO.FileSystem]::DeleteFile('%s', 'OnlyErrorDialogs', 'SendToRecycleBin')`, path)
		return exec.Command("powershell", "-Command", script).Run()

	default:
		// Linux desktops differ; probe the common helpers in order.
		for _, helper := range [][]string{{"gio", "trash"}, {"trash-put"}} {
			if !commandExists(helper[0]) {
				continue
			}
			args := append(helper[1:], path)
			return exec.Command(helper[0], args...).Run()
		}
		return fmt.Errorf("no trash helper found (install trash-cli or gvfs)")
	}
}

func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}
