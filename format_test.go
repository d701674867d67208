// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pdbsym

import (
	"strings"
	"testing"
)

func TestDefaultFormatterWriteFunction(t *testing.T) {
	tests := []struct {
		name  string
		flags FormatterFlags
		raw   string
		want  string
	}{
		{"plain pass-through", FormatterFlags{}, "DoWork", "DoWork"},
		{"scope qualifier on free function", FormatterFlags{IncludeScopeQualifiers: true}, "DoWork", "DoWork (global scope)"},
		{"scope qualifier skipped for member", FormatterFlags{IncludeScopeQualifiers: true}, "Widget::DoWork", "Widget::DoWork"},
		{"arguments", FormatterFlags{IncludeArguments: true}, "DoWork", "DoWork()"},
		{"return type", FormatterFlags{IncludeReturnType: true}, "DoWork", "DoWork -> auto"},
		{"all flags", FormatterFlags{IncludeScopeQualifiers: true, IncludeArguments: true, IncludeReturnType: true}, "DoWork", "DoWork (global scope)() -> auto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDefaultFormatter(tt.flags)
			var b strings.Builder
			if err := f.WriteFunction(&b, tt.raw, 0); err != nil {
				t.Fatalf("WriteFunction returned error: %v", err)
			}
			if got := b.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultFormatterWriteIDFallback(t *testing.T) {
	f := newDefaultFormatter(FormatterFlags{})
	var b strings.Builder
	if err := f.WriteID(&b, IDIndex(42)); err != nil {
		t.Fatalf("WriteID returned error: %v", err)
	}
	if got, want := b.String(), "id#42"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
