package logx

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

const (
	reset  = "\x1b[0m"
	gray   = "\x1b[90m"
	cyan   = "\x1b[36m"
	blue   = "\x1b[34m"
	yellow = "\x1b[33m"
	green  = "\x1b[32m"
	red    = "\x1b[31m"
)

// Channel tags are four characters wide: "RUN ", "GEN ", "BEST", "WARN", "ERR ".
var channelColors = map[string]string{
	"RUN ": cyan,
	"GEN ": blue,
	"BEST": green,
	"WARN": yellow,
	"ERR ": red,
}

// Logger writes channel-tagged progress lines. Color is used only when the
// destination is a terminal and NO_COLOR is unset.
type Logger struct {
	w       io.Writer
	color   bool
	Verbose bool
	now     func() time.Time
}

// New returns a logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{w: w, color: colorEnabled(w), now: time.Now}
}

// Stderr returns a logger on os.Stderr.
func Stderr() *Logger { return New(os.Stderr) }

// Discard returns a logger that drops everything.
func Discard() *Logger { return New(io.Discard) }

func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// C returns s wrapped in color, or s unchanged when color is off.
func (l *Logger) C(color, s string) string {
	if !l.color || color == "" {
		return s
	}
	return color + s + reset
}

func (l *Logger) printf(ch, format string, args ...any) {
	ts := l.now().UTC().Format("15:04:05Z")
	tag := l.C(channelColors[ch], fmt.Sprintf("[%-4s]", ch))
	fmt.Fprintf(l.w, "%s  %s  %s\n", l.C(gray, ts), tag, fmt.Sprintf(format, args...))
}

func (l *Logger) Runf(format string, args ...any)  { l.printf("RUN ", format, args...) }
func (l *Logger) Genf(format string, args ...any)  { l.printf("GEN ", format, args...) }
func (l *Logger) Bestf(format string, args ...any) { l.printf("BEST", format, args...) }
func (l *Logger) Warnf(format string, args ...any) { l.printf("WARN", format, args...) }
func (l *Logger) Errorf(format string, args ...any) {
	l.printf("ERR ", format, args...)
}

// Debugf logs on the GEN channel only in verbose mode.
func (l *Logger) Debugf(format string, args ...any) {
	if l.Verbose {
		l.printf("GEN ", format, args...)
	}
}
