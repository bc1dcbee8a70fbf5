package pipeline

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCompileAndExecuteEchoesInput(t *testing.T) {
	img, clock, err := Compile(Options{Source: "INP ACC\nOUT ACC\nHLT\n"}, silentLogger())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	var out bytes.Buffer
	if err := Execute(img, clock, strings.NewReader("42\n"), &out, silentLogger()); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "42" {
		t.Errorf("output = %q, want \"42\"", got)
	}
}

func TestCompileHonorsMemoryDirective(t *testing.T) {
	img, _, err := Compile(Options{Source: "!MEMORY=32\nHLT\n"}, silentLogger())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if img.Layout.MemoryCells < 32 {
		t.Errorf("memory cells = %d, want >= 32", img.Layout.MemoryCells)
	}
}

func TestCompileReportsLexicalErrorsBatched(t *testing.T) {
	_, _, err := Compile(Options{Source: "1BAD HLT\n"}, silentLogger())
	if err == nil {
		t.Fatal("expected a lexical error for a label starting with a digit")
	}
}

func TestCompileRejectsUnknownConfigurationOption(t *testing.T) {
	_, _, err := Compile(Options{Args: []string{"bogus=1"}, Source: "HLT\n"}, silentLogger())
	if err == nil {
		t.Fatal("expected an unknown-option configuration error")
	}
}
