/*
 * Chadsembly - Interactive monitor
 *
 * Copyright 2026, Chadsembly Contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package monitor is a line-oriented debugger wrapped around a VM: load an
// image, run it to a breakpoint or completion, single-step, and inspect
// registers and memory between steps.
package monitor

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/chadsembly/chadsembly/internal/vm"
)

// Monitor reads commands from a liner prompt and drives a Machine.
type Monitor struct {
	machine     *vm.Machine
	image       []string
	breakpoints map[int64]bool
	out         io.Writer
	line        *liner.State
}

// New returns a Monitor over machine, ready to load image on the "load"
// command.
func New(machine *vm.Machine, image []string, out io.Writer) *Monitor {
	return &Monitor{
		machine:     machine,
		image:       image,
		breakpoints: make(map[int64]bool),
		out:         out,
		line:        liner.NewLiner(),
	}
}

// Run drives the prompt loop until "quit" or end of input.
func (m *Monitor) Run() error {
	defer m.line.Close()
	m.line.SetCtrlCAborts(true)

	for {
		input, err := m.line.Prompt("chadsembly> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		m.line.AppendHistory(input)

		if m.dispatch(input) {
			return nil
		}
	}
}

// dispatch runs one command line and reports whether the monitor should
// exit.
func (m *Monitor) dispatch(input string) (quit bool) {
	fields := strings.Fields(input)
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "load":
		m.cmdLoad()
	case "run":
		m.cmdRun()
	case "step":
		m.cmdStep()
	case "regs":
		m.cmdRegs()
	case "mem":
		m.cmdMem(args)
	case "break":
		m.cmdBreak(args)
	case "quit":
		return true
	default:
		fmt.Fprintln(m.out, "unknown command:", verb)
	}
	return false
}

func (m *Monitor) cmdLoad() {
	if err := m.machine.Load(m.image); err != nil {
		fmt.Fprintln(m.out, "error:", err)
		return
	}
	fmt.Fprintf(m.out, "loaded %d cells\n", len(m.image))
}

// cmdRun steps until a breakpoint (checked after the instruction at the
// old PC has executed, so resuming from a breakpoint makes progress
// instead of re-triggering it immediately) or the machine halts.
func (m *Monitor) cmdRun() {
	for {
		halted, err := m.machine.Step()
		if err != nil {
			fmt.Fprintln(m.out, "error:", err)
			return
		}
		if halted {
			fmt.Fprintln(m.out, "halted")
			return
		}
		if m.breakpoints[m.machine.ProgramCounter()] {
			fmt.Fprintf(m.out, "breakpoint hit at %d\n", m.machine.ProgramCounter())
			return
		}
	}
}

func (m *Monitor) cmdStep() {
	halted, err := m.machine.Step()
	if err != nil {
		fmt.Fprintln(m.out, "error:", err)
		return
	}
	if halted {
		fmt.Fprintln(m.out, "halted")
	}
}

func (m *Monitor) cmdRegs() {
	regs := m.machine.Registers()
	names := make([]string, 0, len(regs))
	for name := range regs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(m.out, "%s = %d\n", name, regs[name])
	}
}

func (m *Monitor) cmdMem(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(m.out, "usage: mem <addr>")
		return
	}
	addr, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintln(m.out, "error: bad address", args[0])
		return
	}
	fmt.Fprintf(m.out, "[%d] = %d\n", addr, m.machine.Peek(addr))
}

func (m *Monitor) cmdBreak(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(m.out, "usage: break <addr>")
		return
	}
	addr, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(m.out, "error: bad address", args[0])
		return
	}
	m.breakpoints[addr] = true
	fmt.Fprintf(m.out, "breakpoint set at %d\n", addr)
}
