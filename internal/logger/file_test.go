package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harrison/ordertouch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileLogger_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "logs", "ordertouch.log")

	fl, err := NewFileLogger(path)
	require.NoError(t, err)
	defer fl.Close()

	assert.Equal(t, path, fl.Path())
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileLogger_AppendsAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ordertouch.log")

	first, err := NewFileLogger(path)
	require.NoError(t, err)
	first.LogInfo("first session")
	require.NoError(t, first.Close())

	second, err := NewFileLogger(path)
	require.NoError(t, err)
	second.LogInfo("second session")
	require.NoError(t, second.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "first session")
	assert.Contains(t, content, "second session")
	assert.Equal(t, 2, strings.Count(content, "session started"))
	assert.Less(t, strings.Index(content, "first session"), strings.Index(content, "second session"))
}

func TestFileLogger_TouchAndSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ordertouch.log")

	fl, err := NewFileLoggerWithLevel(path, "debug")
	require.NoError(t, err)

	when := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ok := models.TouchResult{Path: "/w/a.txt", Time: when}
	bad := models.TouchResult{Path: "/w/gone.txt", Time: when, Error: errors.New("no such file")}

	fl.LogTouch(ok)
	fl.LogTouch(bad)
	fl.LogPassSummary(models.PassReport{Root: models.RootAt("/w"), Results: []models.TouchResult{ok, bad}})
	require.NoError(t, fl.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "✓ /w/a.txt -> 2025-03-01T12:00:00Z")
	assert.Contains(t, content, "✗ Failed to set timestamps for /w/gone.txt: no such file")
	assert.Contains(t, content, "/w: 1/2 entries ordered, 1 failed")
	assert.NotContains(t, content, "\x1b[")
}

func TestFileLogger_CloseIsIdempotent(t *testing.T) {
	fl, err := NewFileLogger(filepath.Join(t.TempDir(), "x.log"))
	require.NoError(t, err)

	require.NoError(t, fl.Close())
	assert.NoError(t, fl.Close())
	assert.NotPanics(t, func() { fl.LogError("after close") })
}
