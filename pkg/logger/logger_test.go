package logger

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitAndLevelString(t *testing.T) {
	Init("debug")
	require.Equal(t, "debug", LevelString())
	Init("WARN")
	require.Equal(t, "warn", LevelString())
	Init("Error")
	require.Equal(t, "error", LevelString())
	Init("nonsense")
	require.Equal(t, "info", LevelString(), "unknown input falls back to info")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	orig := logger
	logger = log.New(&buf, "", 0)
	defer func() { logger = orig }()

	Init("warn")
	Debugf("debug-msg")
	Infof("info-msg")
	Warnf("warn-msg")
	Error("error-msg")

	out := buf.String()
	require.NotContains(t, out, "debug-msg")
	require.NotContains(t, out, "info-msg")
	require.Contains(t, out, "[WARN] warn-msg")
	require.Contains(t, out, "[ERROR] error-msg")

	Init("info")
	buf.Reset()
	Info("hello")
	require.Contains(t, buf.String(), "hello")
}

func TestSetOutputFile_WritesToRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.log")
	SetOutputFile(path, 1)
	defer SetOutputFile("", 0)

	Init("info")
	Infof("written to %s", "file")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(b), "written to file"), "log file content: %q", string(b))
	require.NotNil(t, Writer())
}
