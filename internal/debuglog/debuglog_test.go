package debuglog

import (
	"strings"
	"testing"
)

func TestThresholdGating(t *testing.T) {
	var lines []string
	l := New(60, "atmel", Thresholds{Debug: 50, Trace: 55, Dump: 100})
	l.SetOutput(func(_ int, msg string) { lines = append(lines, msg) })

	l.Debugf("debug %d", 1)
	l.Tracef("trace %d", 2)
	l.Dump("payload", []byte{1, 2, 3})

	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %v", len(lines), lines)
	}
	if lines[0] != "atmel: debug 1" {
		t.Errorf("Expected prefixed debug line, got %q", lines[0])
	}
	if lines[1] != "atmel: trace 2" {
		t.Errorf("Expected prefixed trace line, got %q", lines[1])
	}
}

func TestDumpAboveThreshold(t *testing.T) {
	var lines []string
	l := New(301, "dfu", Thresholds{Debug: 100, Trace: 200, Dump: 300})
	l.SetOutput(func(_ int, msg string) { lines = append(lines, msg) })

	l.Dump("DNLOAD", []byte{0x03, 0x01})
	if len(lines) != 1 || !strings.Contains(lines[0], "03 01") {
		t.Fatalf("Expected hex dump line, got %v", lines)
	}
}

func TestNilLoggerIsSilent(t *testing.T) {
	var l *Logger
	l.Debugf("ignored")
	l.Tracef("ignored")
	l.Dump("ignored", nil)
	if l.Level() != 0 || l.DebugEnabled() {
		t.Fatal("Expected nil logger to be disabled")
	}
}

func TestWithKeepsLevel(t *testing.T) {
	l := New(45, "cli", Thresholds{Debug: 40})
	c := l.With("atmel", Thresholds{Debug: 50, Trace: 55})
	if c.Level() != 45 {
		t.Errorf("Expected level 45, got %d", c.Level())
	}
	if c.DebugEnabled() {
		t.Error("Expected atmel debug output to be disabled at level 45")
	}
	if !l.DebugEnabled() {
		t.Error("Expected cli debug output to be enabled at level 45")
	}
}
