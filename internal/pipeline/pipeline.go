/*
 * Chadsembly - Pipeline driver
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

// Package pipeline strings the compilation stages together: configuration
// intake, lexing, parsing, semantic analysis, and code generation. Each
// stage's errors are batched and reported before the next stage runs, per
// the accumulate-then-abort design every stage already follows on its own.
package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/chadsembly/chadsembly/internal/codegen"
	"github.com/chadsembly/chadsembly/internal/config"
	"github.com/chadsembly/chadsembly/internal/layout"
	"github.com/chadsembly/chadsembly/internal/lexer"
	"github.com/chadsembly/chadsembly/internal/parser"
	"github.com/chadsembly/chadsembly/internal/semantic"
	"github.com/chadsembly/chadsembly/internal/vm"
)

// Options bundles the inputs the pipeline itself does not source: reading
// the program from a file and scanning CLI argument strings are the
// caller's job, not the compiler's.
type Options struct {
	// Args holds "option=value" strings, in the configuration
	// processor's own syntax, already split by the caller.
	Args   []string
	Source string
}

func batch[E error](stage string, errs []E) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("%s errors (%d):\n%s", stage, len(errs), strings.Join(msgs, "\n"))
}

// Compile runs configuration intake through code generation, stopping at
// the first stage reporting an error. It returns the generated image and
// the resolved inter-instruction clock delay.
func Compile(opts Options, logger *slog.Logger) (*codegen.Image, time.Duration, error) {
	table := config.Defaults()
	minimums := config.Minimums()

	cleaned, directives := config.ExtractDirectives(opts.Source)

	dp := config.NewDirectiveProcessor(table, minimums)
	if errs := dp.ProcessDirectives(directives); len(errs) != 0 {
		logger.Warn("configuration directives rejected", "count", len(errs))
		return nil, 0, batch("configuration", errs)
	}

	ap := config.NewArgumentProcessor(table, minimums)
	if errs := ap.ProcessArguments(opts.Args); len(errs) != 0 {
		logger.Warn("configuration arguments rejected", "count", len(errs))
		return nil, 0, batch("configuration", errs)
	}
	logger.Info("configuration resolved",
		"memory", table[config.Memory], "registers", table[config.Registers], "clock", table[config.Clock])

	toks, lexErrs := lexer.New(cleaned).Lex()
	if len(lexErrs) != 0 {
		logger.Warn("lexing rejected source", "count", len(lexErrs))
		return nil, 0, batch("lexical", lexErrs)
	}
	logger.Info("lexed source", "tokens", len(toks))

	set, parseErrs := parser.Parse(toks)
	if len(parseErrs) != 0 {
		logger.Warn("parsing rejected source", "count", len(parseErrs))
		return nil, 0, batch("syntactic", parseErrs)
	}
	logger.Info("parsed source", "procedures", len(set.Order))

	stmts, semErrs := semantic.Analyze(set)
	if len(semErrs) != 0 {
		logger.Warn("semantic analysis rejected source", "count", len(semErrs))
		return nil, 0, batch("semantic", semErrs)
	}
	logger.Info("semantic analysis accepted source")

	lay := layout.New(table[config.Memory], table[config.Registers])
	img, genErrs := codegen.Generate(set, stmts, lay)
	if len(genErrs) != 0 {
		logger.Warn("code generation rejected source", "count", len(genErrs))
		return nil, 0, batch("code generation", genErrs)
	}
	logger.Info("generated image", "cells", len(img.Cells), "width", lay.W)

	clock := time.Duration(table[config.Clock]) * time.Millisecond
	return img, clock, nil
}

// Execute loads img into a fresh VM and runs it to completion or to a
// runtime error.
func Execute(img *codegen.Image, clock time.Duration, in io.Reader, out io.Writer, logger *slog.Logger) error {
	m := vm.New(img.Layout, clock, in, out)
	logger.Info(m.Banner())
	if err := m.Load(img.Cells); err != nil {
		return err
	}
	return m.Run()
}
