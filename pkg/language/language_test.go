package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	assert.Equal(t, "Rust", Detect("test.rs"))
	assert.Equal(t, "JavaScript", Detect("test.js"))
	assert.Equal(t, "Python", Detect("test.py"))
	assert.Equal(t, "Go", Detect("/path/to/file.go"))
	assert.Equal(t, "Go", Detect("/path/to/FILE.GO"))
	assert.Equal(t, "", Detect("unknown.xyz"))
	assert.Equal(t, "", Detect("noextension"))
	assert.Equal(t, "", Detect(""))
}

func TestDetect_DockerCompose(t *testing.T) {
	assert.Equal(t, "Docker Compose", Detect("/srv/docker-compose.yml"))
	assert.Equal(t, "Docker Compose", Detect("docker-compose.override.yaml"))
	assert.Equal(t, "YAML", Detect("/srv/deploy.yml"))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "file.rs", FileName("/path/to/file.rs"))
	assert.Equal(t, "file.rs", FileName("file.rs"))
	assert.Equal(t, "", FileName(""))
}
