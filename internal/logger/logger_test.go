package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Info("mounted %s", "login")
	Warn("ignored %d", 2)
	Error("boom")

	s := buf.String()
	assert.Contains(t, s, "[INFO] mounted login")
	assert.Contains(t, s, "[WARN] ignored 2")
	assert.Contains(t, s, "[EROR] boom")
}

func TestFileLoggingRotatesDaily(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	day := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	now = func() time.Time { return day }
	defer func() { now = time.Now }()

	dir := t.TempDir()
	require.NoError(t, Init(dir))
	defer Close()

	Info("first")
	day = day.Add(2 * time.Minute)
	Info("second")

	first, err := os.ReadFile(filepath.Join(dir, "logs", "2026-03-01.log"))
	require.NoError(t, err)
	assert.Contains(t, string(first), "[INFO] first")
	assert.NotContains(t, string(first), "second")

	second, err := os.ReadFile(filepath.Join(dir, "logs", "2026-03-02.log"))
	require.NoError(t, err)
	assert.Contains(t, string(second), "[INFO] second")
}

func TestInitKeepsLogsDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Init(dir))
	defer Close()
	assert.Equal(t, dir, logDir)
}

func TestInitEmptyDirIsConsoleOnly(t *testing.T) {
	require.NoError(t, Init(""))
	assert.False(t, fileLogging)
}
