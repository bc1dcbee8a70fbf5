package semantic

import (
	"testing"

	"github.com/chadsembly/chadsembly/internal/ir"
	"github.com/chadsembly/chadsembly/internal/keywords"
	"github.com/chadsembly/chadsembly/internal/lexer"
	"github.com/chadsembly/chadsembly/internal/parser"
)

func analyzeSource(t *testing.T, source string) (map[string][]ir.Statement, []Error) {
	t.Helper()
	toks, lexErrs := lexer.New(source).Lex()
	if len(lexErrs) != 0 {
		t.Fatalf("lex errors: %v", lexErrs)
	}
	set, parseErrs := parser.Parse(toks)
	if len(parseErrs) != 0 {
		t.Fatalf("parse errors: %v", parseErrs)
	}
	return Analyze(set)
}

func TestAnalyzeDefaultsRegisterOperand(t *testing.T) {
	stmts, errs := analyzeSource(t, "INP REG1\nHLT\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	global := stmts[".MAIN"]
	if len(global) != 2 {
		t.Fatalf("got %d statements, want 2", len(global))
	}
	if global[0].Opcode != keywords.INP {
		t.Fatalf("opcode = %v, want INP", global[0].Opcode)
	}
	if got := global[0].Operands[0].Mode; got != keywords.RegisterMode {
		t.Errorf("implicit mode = %v, want RegisterMode", got)
	}
}

func TestAnalyzeDefaultsDirectForBareValue(t *testing.T) {
	stmts, errs := analyzeSource(t, "LDA 5, ACC\nHLT\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	op := stmts[".MAIN"][0].Operands[0]
	if op.Mode != keywords.DirectMode {
		t.Errorf("implicit mode = %v, want DirectMode", op.Mode)
	}
}

func TestAnalyzeImmediateSourceRejectedForDataFlow(t *testing.T) {
	_, errs := analyzeSource(t, "STA #5, ACC\nHLT\n")
	if len(errs) == 0 {
		t.Fatalf("expected an error: STA may not read its source in immediate mode")
	}
}

func TestAnalyzeBranchRequiresLabel(t *testing.T) {
	_, errs := analyzeSource(t, "BRA REG1\nHLT\n")
	if len(errs) == 0 {
		t.Fatalf("expected an error: BRA requires a label operand")
	}
}

func TestAnalyzeMissingOperandOnSingleOperandDefaultsToACC(t *testing.T) {
	stmts, errs := analyzeSource(t, "OUT\nHLT\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	op := stmts[".MAIN"][0].Operands[0]
	if op.Value.Lexeme != "ACC" || op.Mode != keywords.RegisterMode {
		t.Errorf("defaulted operand = %+v, want register-mode ACC", op)
	}
}

func TestAnalyzeMissingSecondOperandDefaultsToACC(t *testing.T) {
	stmts, errs := analyzeSource(t, "ADD #5\nHLT\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	dst := stmts[".MAIN"][0].Operands[1]
	if dst.Value.Lexeme != "ACC" || dst.Mode != keywords.RegisterMode {
		t.Errorf("defaulted destination = %+v, want register-mode ACC", dst)
	}
}

func TestAnalyzeCallRequiresExplicitOperand(t *testing.T) {
	_, errs := analyzeSource(t, "GREET {\nRET\n}\nCALL\nHLT\n")
	if len(errs) == 0 {
		t.Fatalf("expected a missing-operand error: CALL never defaults")
	}
}

func TestAnalyzeRegisterZeroRejected(t *testing.T) {
	_, errs := analyzeSource(t, "INP REGISTER0\nHLT\n")
	if len(errs) == 0 {
		t.Fatalf("expected register 0 to be rejected")
	}
}

func TestAnalyzeImmediateCannotNameALabel(t *testing.T) {
	_, errs := analyzeSource(t, "COUNT DAT 1\nLDA #COUNT, ACC\nHLT\n")
	if len(errs) == 0 {
		t.Fatalf("expected immediate mode to reject a label operand")
	}
}
