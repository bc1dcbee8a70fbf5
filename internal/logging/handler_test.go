package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestHandleWritesFormattedLineToPrimarySink(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}, false)
	logger := slog.New(h)

	logger.Debug("loaded image", "cells", 64)

	got := buf.String()
	if !strings.Contains(got, "DEBUG: loaded image") || !strings.Contains(got, "cells=64") {
		t.Errorf("output = %q, want it to contain \"DEBUG: loaded image\" and \"cells=64\"", got)
	}
}

func TestWithAttrsPreservesDebugFlag(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}, true)
	child := h.WithAttrs([]slog.Attr{slog.String("component", "vm")}).(*Handler)

	if !child.debug {
		t.Error("WithAttrs should preserve the debug flag")
	}
}

func TestSetDebugTogglesMirroring(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, nil, false)
	h.SetDebug(true)
	if !h.debug {
		t.Error("SetDebug(true) should set debug")
	}
}

func TestEnabledDelegatesToWrappedHandler(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}, false)
	if h.Enabled(nil, slog.LevelDebug) {
		t.Error("debug records should not be enabled when the minimum level is warn")
	}
	if !h.Enabled(nil, slog.LevelError) {
		t.Error("error records should be enabled when the minimum level is warn")
	}
}
