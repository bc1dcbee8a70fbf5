/*
 * Chadsembly - Main process
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

package main

import (
	"fmt"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/chadsembly/chadsembly/internal/logging"
	"github.com/chadsembly/chadsembly/internal/monitor"
	"github.com/chadsembly/chadsembly/internal/pipeline"
	"github.com/chadsembly/chadsembly/internal/vm"
)

var Logger *slog.Logger

func main() {
	optMemory := getopt.IntLong("memory", 0, 0, "Minimum memory cells")
	optRegisters := getopt.IntLong("registers", 0, 0, "General-purpose registers")
	optClock := getopt.IntLong("clock", 0, 0, "Inter-instruction delay in ms")
	optDebug := getopt.BoolLong("debug", 0, "Mirror log records to stderr")
	optMonitorMode := getopt.BoolLong("monitor", 0, "Run the interactive monitor instead of executing directly")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	args := getopt.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: chadsembly [options] <source file>")
		os.Exit(2)
	}

	Logger = slog.New(logging.NewHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}, *optDebug))
	slog.SetDefault(Logger)

	source, err := os.ReadFile(args[0])
	if err != nil {
		Logger.Error("cannot read source file", "path", args[0], "error", err)
		os.Exit(2)
	}

	var cliArgs []string
	if *optMemory != 0 {
		cliArgs = append(cliArgs, fmt.Sprintf("memory=%d", *optMemory))
	}
	if *optRegisters != 0 {
		cliArgs = append(cliArgs, fmt.Sprintf("registers=%d", *optRegisters))
	}
	if *optClock != 0 {
		cliArgs = append(cliArgs, fmt.Sprintf("clock=%d", *optClock))
	}

	img, clock, err := pipeline.Compile(pipeline.Options{Args: cliArgs, Source: string(source)}, Logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *optMonitorMode {
		machine := vm.New(img.Layout, clock, os.Stdin, os.Stdout)
		mon := monitor.New(machine, img.Cells, os.Stdout)
		if err := mon.Run(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := pipeline.Execute(img, clock, os.Stdin, os.Stdout, Logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
