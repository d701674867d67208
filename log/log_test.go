// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestStdLoggerWritesLevelAndMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStdLogger(&buf)
	if err := logger.Log(LevelInfo, "hello ", "world"); err != nil {
		t.Fatalf("Log returned error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "INFO") {
		t.Errorf("expected output to contain level INFO, got %q", out)
	}
	if !strings.Contains(out, "hello world") {
		t.Errorf("expected output to contain the message, got %q", out)
	}
}

func TestFilterDropsBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFilter(NewStdLogger(&buf), FilterLevel(LevelWarn))

	logger.Log(LevelDebug, "debug msg")
	logger.Log(LevelInfo, "info msg")
	if buf.Len() != 0 {
		t.Fatalf("expected debug/info to be filtered out, got %q", buf.String())
	}

	logger.Log(LevelWarn, "warn msg")
	if !strings.Contains(buf.String(), "warn msg") {
		t.Errorf("expected warn msg to pass the filter, got %q", buf.String())
	}
}

func TestHelperNilSafe(t *testing.T) {
	var h *Helper
	h.Debugf("should not panic: %d", 1) // must be a no-op, not a crash
}

func TestHelperFormatsAndLogs(t *testing.T) {
	var buf bytes.Buffer
	h := NewHelper(NewStdLogger(&buf))
	h.Errorf("failed: %s (%d)", "reason", 42)
	out := buf.String()
	if !strings.Contains(out, "ERROR") || !strings.Contains(out, "failed: reason (42)") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestLevelString(t *testing.T) {
	tests := map[Level]string{
		LevelDebug: "DEBUG",
		LevelInfo:  "INFO",
		LevelWarn:  "WARN",
		LevelError: "ERROR",
		Level(99):  "UNKNOWN",
	}
	for level, want := range tests {
		if got := level.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", level, got, want)
		}
	}
}
