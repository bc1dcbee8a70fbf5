package pool

import (
	"testing"

	"github.com/chadsembly/chadsembly/internal/symtab"
	"github.com/chadsembly/chadsembly/internal/token"
)

func TestNewSetStartsWithOnlyGlobal(t *testing.T) {
	set := NewSet()
	all := set.All()
	if len(all) != 1 || all[0] != set.Global {
		t.Fatalf("All() = %v, want [Global]", all)
	}
}

func TestAddProcedureAppendsInDeclarationOrder(t *testing.T) {
	set := NewSet()
	set.AddProcedure("SQUARE")
	set.AddProcedure("DOUBLE")

	all := set.All()
	if len(all) != 3 {
		t.Fatalf("len(All()) = %d, want 3", len(all))
	}
	if all[1].Identifier != "SQUARE" || all[2].Identifier != "DOUBLE" {
		t.Errorf("order = [%s %s], want [SQUARE DOUBLE]", all[1].Identifier, all[2].Identifier)
	}
}

func TestAddProcedureRedeclarationKeepsOriginalPosition(t *testing.T) {
	set := NewSet()
	set.AddProcedure("SQUARE")
	set.AddProcedure("DOUBLE")
	p := set.AddProcedure("SQUARE")

	if len(set.Order) != 2 {
		t.Fatalf("Order = %v, want 2 entries", set.Order)
	}
	if set.Procedures["SQUARE"] != p {
		t.Error("redeclaring SQUARE should overwrite its pool")
	}
}

func TestCountInstructions(t *testing.T) {
	p := New("TEST")
	p.Tokens = []token.Token{
		token.New(token.INSTRUCTION, "LDA", 1, 1),
		token.New(token.REGISTER, "ACC", 1, 5),
		token.New(token.INSTRUCTION, "HLT", 2, 1),
	}
	if n := CountInstructions(p); n != 2 {
		t.Errorf("CountInstructions() = %d, want 2", n)
	}
}

func TestCountVariables(t *testing.T) {
	p := New("TEST")
	p.SymbolTable.Insert(symtab.Entry{Identifier: "SUM", Kind: symtab.Variable})
	p.SymbolTable.Insert(symtab.Entry{Identifier: "LOOP", Kind: symtab.Branch})

	if n := CountVariables(p); n != 1 {
		t.Errorf("CountVariables() = %d, want 1", n)
	}
}
