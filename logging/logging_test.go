package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggingWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := SetupLogging(Options{File: path, Debug: true})
	require.NoError(t, err)

	assert.True(t, IsDebugMode())
	Infof("loaded %d rows", 3)
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "loaded 3 rows")
}

func TestSetupLoggingWithoutFileDiscards(t *testing.T) {
	cleanup, err := SetupLogging(Options{})
	require.NoError(t, err)
	defer cleanup()
	assert.False(t, IsDebugMode())
	Debugf("nowhere %d", 1)
}
