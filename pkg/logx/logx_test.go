package logx

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func fixedLogger(buf *bytes.Buffer) *Logger {
	l := New(buf)
	l.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf)
	l.Bestf("fitness %.2f", 1.5)

	want := "03:04:05Z  [BEST]  fitness 1.50\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLogger_NoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf)
	l.Warnf("careful")
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("non-terminal output contains escape codes: %q", buf.String())
	}
}

func TestLogger_Debug(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf)
	l.Debugf("hidden")
	if buf.Len() != 0 {
		t.Errorf("Debugf wrote without Verbose: %q", buf.String())
	}
	l.Verbose = true
	l.Debugf("shown")
	if !strings.Contains(buf.String(), "[GEN ]  shown") {
		t.Errorf("Debugf missing in verbose mode: %q", buf.String())
	}
}
