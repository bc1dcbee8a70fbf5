package parser

import (
	"testing"

	"github.com/chadsembly/chadsembly/internal/lexer"
	"github.com/chadsembly/chadsembly/internal/symtab"
	"github.com/chadsembly/chadsembly/internal/token"
)

func mustLex(t *testing.T, source string) []token.Token {
	t.Helper()
	toks, errs := lexer.New(source).Lex()
	if len(errs) != 0 {
		t.Fatalf("lex errors: %v", errs)
	}
	return toks
}

func TestPreparseRejectsUnexpectedToken(t *testing.T) {
	toks := mustLex(t, "HLT HLT\n")
	errs := Preparse(toks)
	if len(errs) == 0 {
		t.Fatalf("expected a grammar error for two instructions on one statement")
	}
}

func TestPreparseAcceptsWellFormedProgram(t *testing.T) {
	toks := mustLex(t, "LOOP INP REG1\nOUT REG1\nHLT\n")
	if errs := Preparse(toks); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestPreparseDetectsUnclosedProcedure(t *testing.T) {
	toks := mustLex(t, "GREET {\nHLT\n")
	errs := Preparse(toks)
	if len(errs) == 0 {
		t.Fatalf("expected an unclosed-procedure error")
	}
}

func TestSplitExtractsProcedure(t *testing.T) {
	toks := mustLex(t, "HLT\nGREET {\nINP REG1\nOUT REG1\n}\n")
	set, errs := Parse(toks)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	proc, ok := set.Procedures["GREET"]
	if !ok {
		t.Fatalf("expected a GREET procedure pool")
	}
	if n := len(proc.Tokens); n == 0 {
		t.Fatalf("procedure pool has no tokens")
	}
	if _, ok := set.Global.SymbolTable.Get("GREET"); !ok {
		t.Fatalf("expected GREET registered in the global symbol table")
	}
}

func TestClassifyVariableDeclaration(t *testing.T) {
	toks := mustLex(t, "COUNT DAT 5\nLDA @COUNT, ACC\nHLT\n")
	set, errs := Parse(toks)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	entry, ok := set.Global.SymbolTable.Get("COUNT")
	if !ok || entry.Kind != symtab.Variable || entry.Initializer != 5 {
		t.Fatalf("COUNT entry = %+v, ok=%v, want variable initializer 5", entry, ok)
	}
}

func TestClassifyBranchLabelRelativeIndex(t *testing.T) {
	toks := mustLex(t, "NOP\nLOOP NOP\nBRA @LOOP\nHLT\n")
	set, errs := Parse(toks)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	entry, ok := set.Global.SymbolTable.Get("LOOP")
	if !ok || entry.Kind != symtab.Branch || entry.RelativeIndex != 1 {
		t.Fatalf("LOOP entry = %+v, ok=%v, want branch at relative index 1", entry, ok)
	}
}

func TestClassifyDuplicateBranchLabel(t *testing.T) {
	toks := mustLex(t, "LOOP NOP\nLOOP NOP\nHLT\n")
	_, errs := Parse(toks)
	if len(errs) == 0 {
		t.Fatalf("expected a duplicate branch label error")
	}
}

func TestClassifyVariableRedeclaredAsBranch(t *testing.T) {
	toks := mustLex(t, "COUNT DAT 1\nCOUNT NOP\nHLT\n")
	_, errs := Parse(toks)
	if len(errs) == 0 {
		t.Fatalf("expected a variable-to-branch redeclaration error")
	}
}
