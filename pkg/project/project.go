// Package project derives project and branch names for a file, preferring
// git metadata and falling back to directory structure. Everything here is
// best-effort: a failed lookup simply yields an empty string.
package project

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var projectMarkers = []string{
	".git",
	"Cargo.toml",
	"package.json",
	"go.mod",
	"pom.xml",
	"build.gradle",
	"CMakeLists.txt",
	"Makefile",
	"setup.py",
	"pyproject.toml",
	".project",
	"composer.json",
	"Gemfile",
}

// Detect returns the project name for the given file path.
func Detect(filePath string) string {
	if filePath == "" {
		return ""
	}
	if project := fromGit(filePath); project != "" {
		return project
	}
	return fromPath(filePath)
}

// DetectBranch returns the current git branch for the given file path.
// Detached HEADs report nothing.
func DetectBranch(filePath string) string {
	if filePath == "" {
		return ""
	}

	out := gitOutput(containingDir(filePath), "rev-parse", "--abbrev-ref", "HEAD")
	if out == "" || out == "HEAD" {
		return ""
	}
	return out
}

func fromGit(filePath string) string {
	dir := containingDir(filePath)

	if remoteURL := gitOutput(dir, "config", "--get", "remote.origin.url"); remoteURL != "" {
		if project := projectFromRemoteURL(remoteURL); project != "" {
			return project
		}
	}

	if root := gitOutput(dir, "rev-parse", "--show-toplevel"); root != "" {
		return filepath.Base(root)
	}

	return ""
}

func fromPath(filePath string) string {
	current := filePath
	for {
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		if hasProjectMarker(parent) {
			return filepath.Base(parent)
		}
		current = parent
	}

	// fall back to the immediate parent directory name
	parent := filepath.Base(filepath.Dir(filePath))
	if parent == "." || parent == string(filepath.Separator) {
		return ""
	}
	return parent
}

func hasProjectMarker(dir string) bool {
	for _, marker := range projectMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// projectFromRemoteURL pulls the repository name out of a git remote URL,
// handling both SSH (git@host:user/repo.git) and HTTP forms.
func projectFromRemoteURL(url string) string {
	url = strings.TrimSuffix(strings.TrimSpace(url), ".git")

	if strings.Contains(url, "@") && strings.Contains(url, ":") {
		afterColon := url[strings.LastIndex(url, ":")+1:]
		if i := strings.LastIndex(afterColon, "/"); i >= 0 {
			afterColon = afterColon[i+1:]
		}
		return afterColon
	}

	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}

func containingDir(filePath string) string {
	if info, err := os.Stat(filePath); err == nil && info.IsDir() {
		return filePath
	}
	return filepath.Dir(filePath)
}

func gitOutput(dir string, args ...string) string {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
