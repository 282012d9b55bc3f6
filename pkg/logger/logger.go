package logger

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger wraps a zap logger and keeps a copy of everything it writes so
// the demo page can show the sweep trace next to the chart.
type ZapLogger struct {
	log *zap.Logger

	mu     sync.Mutex
	logBuf *bytes.Buffer
}

type config struct {
	level zapcore.Level
	extra []io.Writer
	color bool
}

// Option configures New.
type Option func(*config)

// WithLevel sets the minimum enabled level. Debug by default.
func WithLevel(l zapcore.Level) Option {
	return func(c *config) { c.level = l }
}

// WithWriter tees the log output to w in addition to the internal buffer.
func WithWriter(w io.Writer) Option {
	return func(c *config) { c.extra = append(c.extra, w) }
}

// WithColor toggles ANSI colour codes on the level field.
func WithColor(on bool) Option {
	return func(c *config) { c.color = on }
}

func New(opts ...Option) *ZapLogger {
	cfg := config{level: zap.DebugLevel, color: true}
	for _, o := range opts {
		o(&cfg)
	}

	z := &ZapLogger{logBuf: &bytes.Buffer{}}

	encCfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if cfg.color {
		encCfg.EncodeLevel = colorLevelEncoder
	}

	encoder := zapcore.NewConsoleEncoder(encCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(lockedWriter{z}), cfg.level),
	}
	for _, w := range cfg.extra {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(w), cfg.level))
	}

	z.log = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
	return z
}

// NewNop returns a logger that drops everything.
func NewNop() *ZapLogger {
	return &ZapLogger{log: zap.NewNop(), logBuf: &bytes.Buffer{}}
}

// lockedWriter guards the shared buffer; zap cores may be written from
// several goroutines when the demo server handles concurrent requests.
type lockedWriter struct{ z *ZapLogger }

func (w lockedWriter) Write(p []byte) (int, error) {
	w.z.mu.Lock()
	defer w.z.mu.Unlock()
	return w.z.logBuf.Write(p)
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("[2006-01-02 | 15:04:05]"))
}

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var colorCode string
	switch level {
	case zapcore.DebugLevel:
		colorCode = "\033[36m" // Cyan
	case zapcore.InfoLevel:
		colorCode = "\033[32m" // Green
	case zapcore.WarnLevel:
		colorCode = "\033[33m" // Yellow
	case zapcore.ErrorLevel:
		colorCode = "\033[31m" // Red
	default:
		colorCode = "\033[0m"
	}
	enc.AppendString(colorCode + level.String() + "\033[0m")
}

var ansiRe = regexp.MustCompile(`\033\[(\d+)m`)

// Color mapping for ANSI codes
var colorMap = map[string]string{
	"31": "red",
	"32": "green",
	"33": "yellow",
	"34": "blue",
	"36": "cyan",
}

// ansiToHTML converts ANSI colour codes to inline-styled spans inside a <pre>.
func ansiToHTML(input string) string {
	var result strings.Builder
	var lastIndex int
	open := false

	result.WriteString("<pre>")

	for _, match := range ansiRe.FindAllStringIndex(input, -1) {
		start, end := match[0], match[1]
		if start > lastIndex {
			result.WriteString(input[lastIndex:start])
		}

		code := input[start+2 : end-1]
		if color, ok := colorMap[code]; ok {
			if open {
				result.WriteString("</span>")
			}
			result.WriteString(`<span style="color: ` + color + `;">`)
			open = true
		} else if code == "0" && open {
			result.WriteString("</span>")
			open = false
		}

		lastIndex = end
	}

	if lastIndex < len(input) {
		result.WriteString(input[lastIndex:])
	}
	if open {
		result.WriteString("</span>")
	}

	result.WriteString("</pre>")
	return result.String()
}

// Logs renders the buffered output as HTML. Rendering happens on demand
// rather than after every write, a sweep over many sites logs a lot.
func (z *ZapLogger) Logs() string {
	z.mu.Lock()
	raw := z.logBuf.String()
	z.mu.Unlock()
	return ansiToHTML(raw)
}

// Raw returns the buffered output as written.
func (z *ZapLogger) Raw() string {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.logBuf.String()
}

func (z *ZapLogger) ClearLogs() {
	z.mu.Lock()
	z.logBuf.Reset()
	z.mu.Unlock()
}

// Enabled reports whether messages at level l are written. The sweep checks
// it before building fields for per-event debug lines.
func (z *ZapLogger) Enabled(l zapcore.Level) bool {
	return z.log.Core().Enabled(l)
}

// Zap exposes the underlying logger for callers that need the zap API.
func (z *ZapLogger) Zap() *zap.Logger {
	return z.log
}

func (z *ZapLogger) Sync() error {
	return z.log.Sync()
}

func (z *ZapLogger) Info(wrappedMsg string, fields ...zap.Field) {
	z.log.Info(wrappedMsg, fields...)
}

func (z *ZapLogger) Debug(wrappedMsg string, fields ...zap.Field) {
	z.log.Debug(wrappedMsg, fields...)
}

func (z *ZapLogger) Warn(wrappedMsg string, fields ...zap.Field) {
	z.log.Warn(wrappedMsg, fields...)
}

func (z *ZapLogger) Error(wrappedMsg string, fields ...zap.Field) {
	z.log.Error(wrappedMsg, fields...)
}

func (z *ZapLogger) Fatal(wrappedMsg string, fields ...zap.Field) {
	z.log.Fatal(wrappedMsg, fields...)
}
