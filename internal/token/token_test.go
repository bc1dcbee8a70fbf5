package token

import "testing"

func TestPositionAdvanceOnNewline(t *testing.T) {
	p := Position{Row: 1, Column: 5}
	p.Advance('\n', 1)
	if p.Row != 2 || p.Column != 1 {
		t.Errorf("p = %+v, want {Row:2 Column:1}", p)
	}
}

func TestPositionAdvanceOnOrdinaryCharacter(t *testing.T) {
	p := Position{Row: 1, Column: 5}
	p.Advance('x', 1)
	if p.Row != 1 || p.Column != 6 {
		t.Errorf("p = %+v, want {Row:1 Column:6}", p)
	}
}

func TestCasingFoldsOnlyLowercaseLetters(t *testing.T) {
	cases := map[string]string{
		"lda":    "LDA",
		"Loop_1": "LOOP_1",
		"HLT":    "HLT",
		"":       "",
	}
	for in, want := range cases {
		if got := Casing(in); got != want {
			t.Errorf("Casing(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKindStringKnownAndUnknown(t *testing.T) {
	if got := LABEL.String(); got != "label" {
		t.Errorf("LABEL.String() = %q, want \"label\"", got)
	}
	if got := Kind(999).String(); got != "unknown token" {
		t.Errorf("Kind(999).String() = %q, want \"unknown token\"", got)
	}
}

func TestNewBuildsTokenWithPosition(t *testing.T) {
	tok := New(VALUE, "42", 3, 7)
	if tok.Kind != VALUE || tok.Lexeme != "42" || tok.Position != (Position{Row: 3, Column: 7}) {
		t.Errorf("New() = %+v, want Kind:VALUE Lexeme:42 Position:{3 7}", tok)
	}
}
