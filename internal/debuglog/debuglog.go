// Package debuglog gates diagnostic output on an explicit, caller-owned debug
// level. Sessions and devices each carry their own Logger; nothing in this
// package is process-wide apart from the glog sink itself.
package debuglog

import (
	"encoding/hex"
	"fmt"

	"github.com/golang/glog"
)

// Logger writes messages whose threshold is below the configured level.
// The zero value and a nil *Logger are silent.
type Logger struct {
	level  int
	name   string
	debug  int
	trace  int
	dump   int
	output func(depth int, msg string)
}

// Thresholds names the levels at which a component starts emitting debug,
// trace and payload-dump lines.
type Thresholds struct {
	Debug int
	Trace int
	Dump  int
}

// New returns a logger for the named component.
func New(level int, name string, th Thresholds) *Logger {
	return &Logger{
		level: level,
		name:  name,
		debug: th.Debug,
		trace: th.Trace,
		dump:  th.Dump,
	}
}

// With returns a copy of l with different thresholds, sharing the level and sink.
func (l *Logger) With(name string, th Thresholds) *Logger {
	if l == nil {
		return nil
	}
	c := *l
	c.name = name
	c.debug, c.trace, c.dump = th.Debug, th.Trace, th.Dump
	return &c
}

// Level returns the configured debug level.
func (l *Logger) Level() int {
	if l == nil {
		return 0
	}
	return l.level
}

// DebugEnabled reports whether Debugf output is produced.
func (l *Logger) DebugEnabled() bool { return l != nil && l.level > l.debug }

// TraceEnabled reports whether Tracef output is produced.
func (l *Logger) TraceEnabled() bool { return l != nil && l.level > l.trace }

// DumpEnabled reports whether Dump output is produced.
func (l *Logger) DumpEnabled() bool { return l != nil && l.dump > 0 && l.level > l.dump }

func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.DebugEnabled() {
		l.emit(format, args...)
	}
}

func (l *Logger) Tracef(format string, args ...interface{}) {
	if l.TraceEnabled() {
		l.emit(format, args...)
	}
}

// Dump logs a hex dump of payload.
func (l *Logger) Dump(label string, payload []byte) {
	if !l.DumpEnabled() {
		return
	}
	if len(payload) == 0 {
		l.emit("%s: <empty>", label)
		return
	}
	l.emit("%s (%d bytes):\n%s", label, len(payload), hex.Dump(payload))
}

// SetOutput redirects emitted lines, mainly for tests.
func (l *Logger) SetOutput(fn func(depth int, msg string)) {
	if l != nil {
		l.output = fn
	}
}

func (l *Logger) emit(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if l.name != "" {
		msg = l.name + ": " + msg
	}
	if l.output != nil {
		l.output(2, msg)
		return
	}
	glog.InfoDepth(2, msg)
}
