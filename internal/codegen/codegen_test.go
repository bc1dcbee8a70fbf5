package codegen

import (
	"testing"

	"github.com/chadsembly/chadsembly/internal/bitstring"
	"github.com/chadsembly/chadsembly/internal/keywords"
	"github.com/chadsembly/chadsembly/internal/layout"
	"github.com/chadsembly/chadsembly/internal/lexer"
	"github.com/chadsembly/chadsembly/internal/parser"
	"github.com/chadsembly/chadsembly/internal/semantic"
)

func compile(t *testing.T, source string, lay layout.Layout) *Image {
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
	img, genErrs := Generate(set, stmts, lay)
	if len(genErrs) != 0 {
		t.Fatalf("codegen errors: %v", genErrs)
	}
	return img
}

func decodeField(cell string, start, width int) int64 {
	return bitstring.ReadSigned(cell[start : start+width])
}

func TestGenerateUniformCellWidth(t *testing.T) {
	lay := layout.New(16, 4)
	img := compile(t, "NOP\nLOOP NOP\nBRA @LOOP\nHLT\n", lay)
	if len(img.Cells) != 4 {
		t.Fatalf("got %d cells, want 4", len(img.Cells))
	}
	for i, c := range img.Cells {
		if len(c) != lay.W {
			t.Errorf("cell %d has width %d, want %d", i, len(c), lay.W)
		}
	}
}

func TestGenerateBranchAddressIsAbsolute(t *testing.T) {
	lay := layout.New(16, 4)
	img := compile(t, "NOP\nLOOP NOP\nBRA @LOOP\nHLT\n", lay)
	src := decodeField(img.Cells[2], lay.M+lay.A, lay.O)
	if src != 1 {
		t.Errorf("BRA source = %d, want 1 (LOOP's absolute index)", src)
	}
}

func TestGenerateVariablePromiseResolved(t *testing.T) {
	lay := layout.New(16, 4)
	img := compile(t, "COUNT DAT 5\nLDA @COUNT, ACC\nHLT\n", lay)
	if len(img.Cells) != 3 {
		t.Fatalf("got %d cells, want 3 (2 instructions + 1 variable)", len(img.Cells))
	}
	if v := bitstring.ReadSigned(img.Cells[2]); v != 5 {
		t.Errorf("COUNT cell = %d, want 5", v)
	}
}

func TestGenerateProcedureAddressAfterGlobal(t *testing.T) {
	lay := layout.New(16, 4)
	img := compile(t, "HLT\nGREET {\nRET\n}\n", lay)
	if len(img.Cells) != 2 {
		t.Fatalf("got %d cells, want 2 (HLT + RET)", len(img.Cells))
	}
	if op := bitstring.ReadUnsigned(img.Cells[1][:lay.M]); op != int64(keywords.RET) {
		t.Errorf("cell 1 opcode = %d, want RET (%d): GREET's body follows the global pool", op, keywords.RET)
	}
}
