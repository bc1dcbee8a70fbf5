package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chadsembly/chadsembly/internal/bitstring"
	"github.com/chadsembly/chadsembly/internal/codegen"
	"github.com/chadsembly/chadsembly/internal/layout"
	"github.com/chadsembly/chadsembly/internal/lexer"
	"github.com/chadsembly/chadsembly/internal/parser"
	"github.com/chadsembly/chadsembly/internal/semantic"
)

func run(t *testing.T, source string, lay layout.Layout, stdin string) string {
	t.Helper()
	toks, lexErrs := lexer.New(source).Lex()
	if len(lexErrs) != 0 {
		t.Fatalf("lex errors: %v", lexErrs)
	}
	set, parseErrs := parser.Parse(toks)
	if len(parseErrs) != 0 {
		t.Fatalf("parse errors: %v", parseErrs)
	}
	stmts, semErrs := semantic.Analyze(set)
	if len(semErrs) != 0 {
		t.Fatalf("semantic errors: %v", semErrs)
	}
	img, genErrs := codegen.Generate(set, stmts, lay)
	if len(genErrs) != 0 {
		t.Fatalf("codegen errors: %v", genErrs)
	}

	var out bytes.Buffer
	m := New(img.Layout, 0, strings.NewReader(stdin), &out)
	if err := m.Load(img.Cells); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := m.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String()
}

func TestRunEchoesInputToOutput(t *testing.T) {
	lay := layout.New(16, 4)
	got := run(t, "INP ACC\nOUT ACC\nHLT\n", lay, "7\n")
	if strings.TrimSpace(got) != "7" {
		t.Errorf("output = %q, want \"7\"", got)
	}
}

func TestRunCountedLoopAddsUp(t *testing.T) {
	lay := layout.New(16, 4)
	src := "COUNT DAT 3\n" +
		"SUM DAT 0\n" +
		"LOOP LDA @COUNT, REG1\n" +
		"BRZ @DONE, REG1\n" +
		"LDA @SUM, ACC\n" +
		"ADD @COUNT, ACC\n" +
		"STA @SUM, ACC\n" +
		"LDA @COUNT, ACC\n" +
		"SUB #1, ACC\n" +
		"STA @COUNT, ACC\n" +
		"BRA @LOOP\n" +
		"DONE LDA @SUM, ACC\n" +
		"OUT ACC\n" +
		"HLT\n"
	got := run(t, src, lay, "")
	if strings.TrimSpace(got) != "6" {
		t.Errorf("output = %q, want \"6\" (3+2+1)", got)
	}
}

func TestRunProcedureCallReturns(t *testing.T) {
	lay := layout.New(16, 4)
	src := "LDA #4, ACC\nCALL @GREET\nOUT ACC\nHLT\nGREET {\nADD #1, ACC\nRET\n}\n"
	got := run(t, src, lay, "")
	if strings.TrimSpace(got) != "5" {
		t.Errorf("output = %q, want \"5\"", got)
	}
}

func TestRunShiftCarriesIntoFlags(t *testing.T) {
	lay := layout.New(16, 4)
	got := run(t, "LDA #1, ACC\nLSL #1, ACC\nOUTB FR\nHLT\n", lay, "")
	line := strings.TrimSpace(got)
	if !strings.HasSuffix(line, "0") {
		t.Errorf("flags cell = %q, want LSB 0 (no bit evicted shifting 1 left once in a %d-bit cell)", line, lay.W)
	}
}

func TestRunZeroCountShiftLeavesFlagsUntouched(t *testing.T) {
	lay := layout.New(16, 4)
	got := run(t, "LDA #1, FR\nLSL #0, ACC\nOUTB FR\nHLT\n", lay, "")
	line := strings.TrimSpace(got)
	if !strings.HasSuffix(line, "1") {
		t.Errorf("flags cell = %q, want LSB 1 (a zero-count shift must not clear a pre-existing carry)", line)
	}
}

func TestRunImmediateWriteIsUnaffectedByOperandOrder(t *testing.T) {
	lay := layout.New(16, 4)
	got := run(t, "LDA #9, ACC\nOUT ACC\nHLT\n", lay, "")
	if strings.TrimSpace(got) != "9" {
		t.Errorf("output = %q, want \"9\"", got)
	}
}

func TestLoadRejectsOversizedImage(t *testing.T) {
	lay := layout.New(2, 4)
	m := New(lay, 0, strings.NewReader(""), &bytes.Buffer{})
	oversized := make([]string, lay.MemoryCells+1)
	for i := range oversized {
		oversized[i] = strings.Repeat("0", lay.W)
	}
	if err := m.Load(oversized); err == nil {
		t.Fatal("expected an error loading an image larger than memory")
	}
}

func TestStepHaltsWhenProgramCounterRunsPastMemory(t *testing.T) {
	lay := layout.New(2, 4)
	m := New(lay, 0, strings.NewReader(""), &bytes.Buffer{})
	m.write(m.pcKey(), bitstring.Signed(int64(lay.MemoryCells), lay.W))
	halted, err := m.Step()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !halted {
		t.Fatal("expected the machine to halt with PC past the last memory cell")
	}
}
