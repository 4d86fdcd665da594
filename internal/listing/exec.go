package listing

import (
	"fmt"
	"os/exec"
	"strings"
)

// ExecLister shells out to the system ls binary.
type ExecLister struct{}

// List runs ls with the composed switches against dir.
func (ExecLister) List(dir, switches string) ([]string, error) {
	args := append(strings.Fields(switches), dir)
	out, err := exec.Command("ls", args...).Output()
	if err != nil {
		return nil, err
	}
	return splitLines(string(out)), nil
}

// ParentLine runs `ls -ld ..` with dir as the working directory, so the
// resulting line names the parent as ".." the way an in-listing entry would.
func (ExecLister) ParentLine(dir string) (string, error) {
	cmd := exec.Command("ls", "-ld", "..")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	lines := splitLines(string(out))
	if len(lines) == 0 {
		return "", fmt.Errorf("no output for parent of %s", dir)
	}
	return lines[0], nil
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
