package generate

import (
	"bufio"
	"strings"
	"testing"

	"lumen/report"
	"lumen/syntax"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// lowerSource parses and lowers a source string, returning the generator and
// whether lowering succeeded.  The reporter is reset to silent so tests can
// inspect error counts without console noise.
func lowerSource(t *testing.T, src string) (*Generator, bool) {
	t.Helper()

	report.InitReporter(report.LogLevelSilent)

	prog, ok := syntax.ParseFile("test.lum", bufio.NewReader(strings.NewReader(src)))
	if !ok {
		t.Fatal("source failed to parse")
	}

	g := NewGenerator("test.lum")
	return g, g.Lower(prog)
}

// mustLower is lowerSource but fails the test on any lowering error.
func mustLower(t *testing.T, src string) *Generator {
	t.Helper()

	g, ok := lowerSource(t, src)
	if !ok {
		t.Fatalf("lowering failed with %d error(s)", report.ErrorCount())
	}

	return g
}

func TestLowerEmptyProgram(t *testing.T) {
	g := mustLower(t, "")

	if len(g.Units()) != 0 {
		t.Errorf("expected no units, got %d", len(g.Units()))
	}

	if g.MainUnit() != nil {
		t.Error("empty program should have no main unit")
	}
}

func TestLowerCreatesUnitsInSourceOrder(t *testing.T) {
	g := mustLower(t, `
		module alpha {}
		module beta {}
		module gamma {}
	`)

	want := []string{"alpha", "beta", "gamma"}
	units := g.Units()

	if len(units) != len(want) {
		t.Fatalf("expected %d units, got %d", len(want), len(units))
	}

	for i, name := range want {
		if units[i].Name != name {
			t.Errorf("unit %d: expected `%s`, got `%s`", i, name, units[i].Name)
		}
	}
}

func TestLowerDuplicateModuleName(t *testing.T) {
	_, ok := lowerSource(t, `
		module a {}
		module a {}
	`)

	if ok {
		t.Error("duplicate module names should fail lowering")
	}

	if report.ErrorCount() != 1 {
		t.Errorf("expected 1 error, got %d", report.ErrorCount())
	}
}

func TestEntryFunctionLoweredAsStatusReturning(t *testing.T) {
	g := mustLower(t, `
		module app {
			fn main() {}
		}
	`)

	unit := g.MainUnit()
	if unit == nil {
		t.Fatal("expected a main unit")
	}

	if unit.Name != "app" {
		t.Errorf("expected main unit `app`, got `%s`", unit.Name)
	}

	f := unit.FindFunc("main")
	if f == nil {
		t.Fatal("main function not found in IR")
	}

	if !f.Sig.RetType.Equal(types.I32) {
		t.Errorf("entry function should return i32, got %s", f.Sig.RetType)
	}

	if len(f.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(f.Blocks))
	}

	ret, ok := f.Blocks[0].Term.(*ir.TermRet)
	if !ok {
		t.Fatalf("entry block should end in a return, got %T", f.Blocks[0].Term)
	}

	ci, ok := ret.X.(*constant.Int)
	if !ok || ci.X.Int64() != 0 {
		t.Errorf("entry function should fall through to `ret i32 0`, got %v", ret.X)
	}
}

func TestMultipleMainFunctions(t *testing.T) {
	_, ok := lowerSource(t, `
		module a {
			fn main() {}
		}
		module b {
			fn main() {}
		}
	`)

	if ok {
		t.Error("two public main functions should fail lowering")
	}
}

func TestPrivateMainIsNotEntry(t *testing.T) {
	g := mustLower(t, `
		module a {
			priv fn main() {}
		}
	`)

	if g.MainUnit() != nil {
		t.Error("a private main should not mark its unit as main")
	}
}

func TestFunctionLinkage(t *testing.T) {
	g := mustLower(t, `
		module lib {
			fn public_fn() -> i64 { return 1; }
			priv fn private_fn() -> i64 { return 2; }
		}
	`)

	unit := g.FindUnit("lib")
	if unit == nil {
		t.Fatal("unit `lib` not found")
	}

	if f := unit.FindFunc("public_fn"); f == nil || f.Linkage != enum.LinkageExternal {
		t.Error("public functions should have external linkage")
	}

	if f := unit.FindFunc("private_fn"); f == nil || f.Linkage != enum.LinkageInternal {
		t.Error("private functions should have internal linkage")
	}
}

func TestGlobalVarLowering(t *testing.T) {
	g := mustLower(t, `
		module consts {
			let count: i64 = 1_000;
			priv let ratio: f64 = 0.5;
			let flag: bool = true;
		}
	`)

	unit := g.FindUnit("consts")
	if unit == nil {
		t.Fatal("unit `consts` not found")
	}

	count := unit.FindGlobal("count")
	if count == nil {
		t.Fatal("global `count` not found")
	}

	if count.Linkage != enum.LinkageExternal {
		t.Error("public globals should have external linkage")
	}

	ci, ok := count.Init.(*constant.Int)
	if !ok || ci.X.Int64() != 1000 {
		t.Errorf("expected `count` initialized to 1000, got %v", count.Init)
	}

	ratio := unit.FindGlobal("ratio")
	if ratio == nil {
		t.Fatal("global `ratio` not found")
	}

	if ratio.Linkage != enum.LinkageInternal {
		t.Error("private globals should have internal linkage")
	}

	if sym := unit.FindSymbol("flag"); sym == nil || sym.IsFunc {
		t.Error("`flag` should be filed as a variable symbol")
	}
}

func TestGlobalVarRequiresLiteralInitializer(t *testing.T) {
	_, ok := lowerSource(t, `
		module a {
			let x: i64 = 1 + 2;
		}
	`)

	if ok {
		t.Error("non-literal global initializers should be rejected")
	}
}

func TestGlobalVarLiteralTypeMismatch(t *testing.T) {
	_, ok := lowerSource(t, `
		module a {
			let x: bool = 42;
		}
	`)

	if ok {
		t.Error("mismatched global initializer literals should be rejected")
	}
}

func TestSymbolRedeclaration(t *testing.T) {
	_, ok := lowerSource(t, `
		module a {
			fn f() -> i64 { return 1; }
			let f: i64 = 2;
		}
	`)

	if ok {
		t.Error("redeclaring a symbol in the same module should fail lowering")
	}
}

func TestUndefinedSymbolInOtherModuleHint(t *testing.T) {
	_, ok := lowerSource(t, `
		module lib {
			fn helper() -> i64 { return 1; }
		}
		module app {
			fn main() {
				helper();
			}
		}
	`)

	if ok {
		t.Error("referencing another module's symbol without `@use` should fail")
	}

	if report.ErrorCount() != 1 {
		t.Errorf("expected 1 error, got %d", report.ErrorCount())
	}
}
