// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package log is the small structured-logging façade used throughout this
// module, in place of a direct dependency on a specific logging library.
// Callers needing a production backend (JSON, leveled files, a remote
// sink) implement Logger and pass it through pdbsym.ViewOptions.Logger; everything
// downstream only ever talks to the Helper/Logger interfaces below.
package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Level is a log severity.
type Level int

// Severity levels, lowest first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is the minimal sink every backend implements.
type Logger interface {
	Log(level Level, keyvals ...interface{}) error
}

// NewStdLogger returns a Logger that writes "level ts msg" lines to w.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{w: w}
}

type stdLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *stdLogger) Log(level Level, keyvals ...interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.w, "%s %s %s\n", level, time.Now().Format(time.RFC3339), fmt.Sprint(keyvals...))
	return err
}

// FilterOption configures NewFilter.
type FilterOption func(*filterLogger)

// FilterLevel drops any record below the given level.
func FilterLevel(level Level) FilterOption {
	return func(f *filterLogger) { f.level = level }
}

type filterLogger struct {
	next  Logger
	level Level
}

// NewFilter wraps next with a minimum-severity filter.
func NewFilter(next Logger, opts ...FilterOption) Logger {
	f := &filterLogger{next: next, level: LevelDebug}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *filterLogger) Log(level Level, keyvals ...interface{}) error {
	if level < f.level {
		return nil
	}
	return f.next.Log(level, keyvals...)
}

// Helper is the ergonomic, leveled-printf API consumed by the rest of this
// module; construct one with NewHelper around any Logger.
type Helper struct {
	logger Logger
}

// NewHelper wraps a Logger with Debugf/Infof/Warnf/Errorf convenience
// methods.
func NewHelper(logger Logger) *Helper {
	return &Helper{logger: logger}
}

func (h *Helper) log(level Level, format string, args ...interface{}) {
	if h == nil || h.logger == nil {
		return
	}
	h.logger.Log(level, fmt.Sprintf(format, args...))
}

// Debugf logs at LevelDebug.
func (h *Helper) Debugf(format string, args ...interface{}) { h.log(LevelDebug, format, args...) }

// Infof logs at LevelInfo.
func (h *Helper) Infof(format string, args ...interface{}) { h.log(LevelInfo, format, args...) }

// Warnf logs at LevelWarn.
func (h *Helper) Warnf(format string, args ...interface{}) { h.log(LevelWarn, format, args...) }

// Errorf logs at LevelError.
func (h *Helper) Errorf(format string, args ...interface{}) { h.log(LevelError, format, args...) }
