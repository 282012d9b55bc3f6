package logger

import (
	"bytes"
	stdlog "log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestBufferedOutput(t *testing.T) {
	l := New(WithColor(false))
	l.Info("[test] hello", zap.Int("n", 3))

	raw := l.Raw()
	require.Contains(t, raw, "[test] hello")
	require.Contains(t, raw, "INFO")
	require.Contains(t, raw, "3")

	l.ClearLogs()
	require.Empty(t, l.Raw())
}

func TestLevelFilter(t *testing.T) {
	l := New(WithLevel(zapcore.InfoLevel))
	assert.False(t, l.Enabled(zapcore.DebugLevel))
	assert.True(t, l.Enabled(zapcore.InfoLevel))

	l.Debug("hidden")
	assert.NotContains(t, l.Raw(), "hidden")
}

func TestWithWriter(t *testing.T) {
	var out bytes.Buffer
	l := New(WithWriter(&out), WithColor(false))
	l.Warn("tee")
	require.NoError(t, l.Sync())

	assert.Contains(t, out.String(), "tee")
	assert.Contains(t, l.Raw(), "tee")
}

func TestNop(t *testing.T) {
	l := NewNop()
	l.Error("nothing")
	assert.Empty(t, l.Raw())
	assert.False(t, l.Enabled(zapcore.ErrorLevel))
}

func TestAnsiToHTML(t *testing.T) {
	in := "\033[31mERROR\033[0m boom\n\033[36mDEBUG\033[0m ok"
	got := ansiToHTML(in)

	assert.True(t, strings.HasPrefix(got, "<pre>"))
	assert.True(t, strings.HasSuffix(got, "</pre>"))
	assert.Contains(t, got, `<span style="color: red;">ERROR</span> boom`)
	assert.Contains(t, got, `<span style="color: cyan;">DEBUG</span> ok`)
	assert.NotContains(t, got, "\033")
}

func TestLogsRendersHTML(t *testing.T) {
	l := New()
	l.Error("[test] failure")
	assert.Contains(t, l.Logs(), `<span style="color: red;">`)
}

func TestZapStdLog(t *testing.T) {
	l := New(WithColor(false))
	zap.NewStdLog(l.Zap()).Print("from the standard logger")
	assert.Contains(t, l.Raw(), "from the standard logger")

	restore := zap.RedirectStdLog(l.Zap())
	stdlog.Print("redirected")
	restore()
	assert.Contains(t, l.Raw(), "redirected")
}
