package daemon

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsChild(t *testing.T) {
	t.Setenv(DaemonEnvVar, "")
	assert.False(t, IsChild())

	t.Setenv(DaemonEnvVar, "1")
	assert.True(t, IsChild())
}

func TestProcessAlive(t *testing.T) {
	assert.True(t, processAlive(os.Getpid()))
}

func TestPaths(t *testing.T) {
	assert.Contains(t, PidFile(), "remotepad.pid")
	assert.Contains(t, LogFile(), "remotepad.log")
}
