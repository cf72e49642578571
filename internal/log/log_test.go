package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLog_Format(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, LevelDebug)
	t.Cleanup(Reset)

	Info(CatSeek, "seek", "seconds", 65)

	line := buf.String()
	require.True(t, strings.HasSuffix(line, " [INFO] [seek] seek seconds=65\n"), line)
}

func TestLog_OddFieldsAndErrors(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, LevelDebug)
	t.Cleanup(Reset)

	Warn(CatDoc, "odd", "orphan")
	ErrorErr(CatDB, "failed", errors.New("boom"))
	ErrorErr(CatDB, "failed", nil)

	out := buf.String()
	require.Contains(t, out, "[WARN] [doc] odd orphan=<missing>")
	require.Contains(t, out, "[ERROR] [db] failed error=boom")
	require.Contains(t, out, "[ERROR] [db] failed error=<nil>")
}

func TestLog_LevelAndEnabled(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, LevelWarn)
	t.Cleanup(Reset)

	Debug(CatUI, "hidden")
	Info(CatUI, "hidden")
	require.Empty(t, buf.String())

	SetMinLevel(LevelDebug)
	Debug(CatUI, "shown")
	require.Contains(t, buf.String(), "shown")

	buf.Reset()
	SetEnabled(false)
	Error(CatUI, "muted")
	require.Empty(t, buf.String())
}

func TestLog_NoLoggerIsNoop(t *testing.T) {
	Reset()
	require.NotPanics(t, func() {
		Info(CatConfig, "nobody listening")
		SetEnabled(true)
		SetMinLevel(LevelError)
	})
}

func TestLevel_String(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.Equal(t, "UNKNOWN", Level(42).String())
}
