package lexer

import (
	"testing"

	"github.com/chadsembly/chadsembly/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func assertKinds(t *testing.T, got []token.Token, want []token.Kind) {
	t.Helper()
	gk := kinds(got)
	if len(gk) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(gk), gk, len(want), want)
	}
	for i := range want {
		if gk[i] != want[i] {
			t.Errorf("token %d kind = %v, want %v", i, gk[i], want[i])
		}
	}
}

func TestLexSimpleInstruction(t *testing.T) {
	toks, errs := New("INP REG1\nOUT REG1\nHLT\n").Lex()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertKinds(t, toks, []token.Kind{
		token.INSTRUCTION, token.REGISTER, token.END,
		token.INSTRUCTION, token.REGISTER, token.END,
		token.INSTRUCTION, token.END,
	})
}

func TestLexRegisterAliasRequiresDigit(t *testing.T) {
	toks, errs := New("LDA %REGISTER\n").Lex()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[2].Kind != token.ADDRESSING_MODE {
		t.Errorf("bare REGISTER kind = %v, want ADDRESSING_MODE", toks[2].Kind)
	}
}

func TestLexRegisterAliasWithDigit(t *testing.T) {
	toks, errs := New("ADD REGISTER7, ACC\n").Lex()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[1].Kind != token.REGISTER || toks[1].Lexeme != "7" {
		t.Errorf("token[1] = %+v, want REGISTER lexeme 7", toks[1])
	}
}

func TestLexValueSign(t *testing.T) {
	toks, errs := New("LDA #-5, ACC\n").Lex()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[2].Kind != token.VALUE || toks[2].Lexeme != "-5" {
		t.Errorf("token[2] = %+v, want VALUE -5", toks[2])
	}
}

func TestLexBlankLinesCollapseToSingleEnd(t *testing.T) {
	toks, errs := New("\n\n\nHLT\n\n").Lex()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertKinds(t, toks, []token.Kind{token.INSTRUCTION, token.END})
}

func TestLexLabelValidation(t *testing.T) {
	_, errs := New("$BAD NOP\n").Lex()
	if len(errs) == 0 || errs[0].Category != "Invalid Label Error" {
		t.Fatalf("errs = %v, want an Invalid Label Error", errs)
	}
}

func TestLexTrailingEndAlwaysPresent(t *testing.T) {
	toks, _ := New("HLT").Lex()
	if toks[len(toks)-1].Kind != token.END {
		t.Errorf("last token kind = %v, want END", toks[len(toks)-1].Kind)
	}
}
