package git

import (
	"os/exec"
	"strings"
)

// Branch returns the current branch name, or "" when dir is not inside a
// work tree.
func Branch(dir string) string {
	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}

// ModifiedCount returns how many paths git status reports as changed, for the
// status bar. Zero for clean trees and for directories outside a repository.
func ModifiedCount(dir string) int {
	cmd := exec.Command("git", "status", "--porcelain")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return 0
	}

	count := 0
	for _, line := range strings.Split(string(output), "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}
