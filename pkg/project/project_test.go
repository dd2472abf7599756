package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectFromRemoteURL(t *testing.T) {
	assert.Equal(t, "my-project", projectFromRemoteURL("https://github.com/user/my-project.git"))
	assert.Equal(t, "my-project", projectFromRemoteURL("git@github.com:user/my-project.git"))
	assert.Equal(t, "my-project", projectFromRemoteURL("https://github.com/user/my-project"))
	assert.Equal(t, "my-project", projectFromRemoteURL("ssh://git@git.example.com/team/my-project.git"))
}

// TestDetect_ProjectMarkers tests project detection from directory
// structure when no git metadata is available.
func TestDetect_ProjectMarkers(t *testing.T) {
	root := t.TempDir()
	projectDir := filepath.Join(root, "my-service")
	srcDir := filepath.Join(projectDir, "internal", "core")
	require.NoError(t, os.MkdirAll(srcDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "go.mod"), []byte("module example.com/my-service\n"), 0644))

	assert.Equal(t, "my-service", Detect(filepath.Join(srcDir, "core.go")))
}

func TestDetect_EmptyPath(t *testing.T) {
	assert.Equal(t, "", Detect(""))
	assert.Equal(t, "", DetectBranch(""))
}
