package monitor

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/chadsembly/chadsembly/internal/pipeline"
	"github.com/chadsembly/chadsembly/internal/vm"
)

func newMonitor(t *testing.T, source string, out *bytes.Buffer) *Monitor {
	t.Helper()
	img, clock, err := pipeline.Compile(pipeline.Options{Source: source}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	machine := vm.New(img.Layout, clock, strings.NewReader(""), out)
	return New(machine, img.Cells, out)
}

func TestDispatchLoadThenStepHalts(t *testing.T) {
	var out bytes.Buffer
	m := newMonitor(t, "HLT\n", &out)

	if quit := m.dispatch("load"); quit {
		t.Fatal("load should not quit")
	}
	if quit := m.dispatch("step"); quit {
		t.Fatal("step should not quit")
	}
	if !strings.Contains(out.String(), "halted") {
		t.Errorf("output = %q, want it to mention \"halted\"", out.String())
	}
}

func TestDispatchQuitReturnsTrue(t *testing.T) {
	var out bytes.Buffer
	m := newMonitor(t, "HLT\n", &out)

	if quit := m.dispatch("quit"); !quit {
		t.Error("quit should return true")
	}
}

func TestDispatchUnknownCommandReportsError(t *testing.T) {
	var out bytes.Buffer
	m := newMonitor(t, "HLT\n", &out)

	m.dispatch("frobnicate")
	if !strings.Contains(out.String(), "unknown command") {
		t.Errorf("output = %q, want an unknown command message", out.String())
	}
}

func TestCmdRunStopsAtBreakpoint(t *testing.T) {
	var out bytes.Buffer
	m := newMonitor(t, "LDA #1\nLDA #2\nLDA #3\nHLT\n", &out)
	m.dispatch("load")

	if quit := m.dispatch("break 1"); quit {
		t.Fatal("break should not quit")
	}
	out.Reset()

	m.dispatch("run")
	if m.machine.ProgramCounter() != 1 {
		t.Errorf("pc = %d, want 1 (stopped at breakpoint before executing it)", m.machine.ProgramCounter())
	}
	if !strings.Contains(out.String(), "breakpoint hit") {
		t.Errorf("output = %q, want a breakpoint message", out.String())
	}
}

func TestCmdMemReportsBadAddress(t *testing.T) {
	var out bytes.Buffer
	m := newMonitor(t, "HLT\n", &out)
	m.dispatch("load")

	m.dispatch("mem notanumber")
	if !strings.Contains(out.String(), "bad address") {
		t.Errorf("output = %q, want a bad address message", out.String())
	}
}
