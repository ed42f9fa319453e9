package syntax

import (
	"bufio"
	"strings"
	"testing"

	"lumen/ast"
	"lumen/report"
	"lumen/typing"
)

// parseString parses a source string, failing the test on parse errors.
func parseString(t *testing.T, src string) *ast.Program {
	t.Helper()

	report.InitReporter(report.LogLevelSilent)

	prog, ok := ParseFile("test.lum", bufio.NewReader(strings.NewReader(src)))
	if !ok {
		t.Fatal("source failed to parse")
	}

	return prog
}

// parseBad parses a source string expected to fail.
func parseBad(t *testing.T, src string) {
	t.Helper()

	report.InitReporter(report.LogLevelSilent)

	if _, ok := ParseFile("test.lum", bufio.NewReader(strings.NewReader(src))); ok {
		t.Errorf("expected a parse error for %q", src)
	}

	if report.ErrorCount() == 0 {
		t.Errorf("expected a reported diagnostic for %q", src)
	}
}

func TestParseEmptyProgram(t *testing.T) {
	prog := parseString(t, "")

	if len(prog.Modules) != 0 {
		t.Errorf("expected no modules, got %d", len(prog.Modules))
	}
}

func TestParseModules(t *testing.T) {
	prog := parseString(t, `
		module a {}
		module b {}
	`)

	if len(prog.Modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(prog.Modules))
	}

	if prog.Modules[0].Name != "a" || prog.Modules[1].Name != "b" {
		t.Error("module names should parse in source order")
	}
}

func TestParseUseDirective(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		module string
		alias  string
	}{
		{"aliased", "module a { @use math as m; }", "math", "m"},
		{"unaliased", "module a { @use math; }", "math", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prog := parseString(t, tc.src)

			use, ok := prog.Modules[0].Items[0].(*ast.UseDirective)
			if !ok {
				t.Fatalf("expected a use directive, got %T", prog.Modules[0].Items[0])
			}

			if use.ModuleName != tc.module || use.Alias != tc.alias {
				t.Errorf("expected (%q, %q), got (%q, %q)", tc.module, tc.alias, use.ModuleName, use.Alias)
			}
		})
	}
}

func TestParseFuncDef(t *testing.T) {
	prog := parseString(t, `
		module a {
			fn add(x: i64, y: f64) -> i64 { return x; }
		}
	`)

	fd, ok := prog.Modules[0].Items[0].(*ast.FuncDef)
	if !ok {
		t.Fatalf("expected a function definition, got %T", prog.Modules[0].Items[0])
	}

	if fd.Name != "add" || !fd.Public {
		t.Error("expected a public function named `add`")
	}

	if len(fd.Params) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(fd.Params))
	}

	if fd.Params[0].Name != "x" || !fd.Params[0].Type.Equiv(typing.PrimI64) {
		t.Error("first parameter should be `x: i64`")
	}

	if fd.Params[1].Name != "y" || !fd.Params[1].Type.Equiv(typing.PrimF64) {
		t.Error("second parameter should be `y: f64`")
	}

	if !fd.ReturnType.Equiv(typing.PrimI64) {
		t.Error("return type should be i64")
	}
}

func TestParseFuncDefaultsToUnitReturn(t *testing.T) {
	prog := parseString(t, "module a { fn f() {} }")

	fd := prog.Modules[0].Items[0].(*ast.FuncDef)
	if !typing.IsUnit(fd.ReturnType) {
		t.Errorf("an arrowless function should return unit, got %s", fd.ReturnType.Repr())
	}
}

func TestParsePrivItems(t *testing.T) {
	prog := parseString(t, `
		module a {
			priv fn f() {}
			priv let x: i64 = 1;
		}
	`)

	if fd := prog.Modules[0].Items[0].(*ast.FuncDef); fd.Public {
		t.Error("`priv fn` should not be public")
	}

	if vd := prog.Modules[0].Items[1].(*ast.VarDecl); vd.Public {
		t.Error("`priv let` should not be public")
	}
}

func TestParseVarDecl(t *testing.T) {
	prog := parseString(t, "module a { let x: f64 = 2.5; }")

	vd, ok := prog.Modules[0].Items[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected a variable declaration, got %T", prog.Modules[0].Items[0])
	}

	if vd.Name != "x" || !vd.Type.Equiv(typing.PrimF64) || !vd.Public {
		t.Error("expected a public `x: f64`")
	}

	lit, ok := vd.Init.(*ast.Literal)
	if !ok || lit.Kind != ast.LitFloat || lit.Value != "2.5" {
		t.Errorf("expected the float literal 2.5, got %v", vd.Init)
	}
}

func TestParseStatements(t *testing.T) {
	prog := parseString(t, `
		module a {
			fn f(x: i64) -> i64 {
				let y: i64 = 0;
				y = y + 1;
				if x > 0 {
					return x;
				} else if x < 0 {
					return -x;
				} else {
					return y;
				}
				while y < x {
					y = y + 1;
					if y == 5 { break; }
					continue;
				}
				f(y);
				return 0;
			}
		}
	`)

	body := prog.Modules[0].Items[0].(*ast.FuncDef).Body

	wantKinds := []interface{}{
		&ast.VarDecl{}, &ast.Assign{}, &ast.IfStmt{}, &ast.WhileStmt{},
		&ast.ExprStmt{}, &ast.ReturnStmt{},
	}

	if len(body.Stmts) != len(wantKinds) {
		t.Fatalf("expected %d statements, got %d", len(wantKinds), len(body.Stmts))
	}

	ifStmt := body.Stmts[2].(*ast.IfStmt)
	elseIf, ok := ifStmt.Else.(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected an else-if chain, got %T", ifStmt.Else)
	}

	if _, ok := elseIf.Else.(*ast.Block); !ok {
		t.Error("the chain should end in a plain else block")
	}
}

func TestParseExprPrecedence(t *testing.T) {
	prog := parseString(t, `
		module a {
			let x: i64 = 1 + 2 * 3;
		}
	`)

	bin := prog.Modules[0].Items[0].(*ast.VarDecl).Init.(*ast.BinaryOp)
	if bin.Op != "+" {
		t.Fatalf("expected `+` at the root, got %q", bin.Op)
	}

	rhs, ok := bin.Rhs.(*ast.BinaryOp)
	if !ok || rhs.Op != "*" {
		t.Error("`*` should bind tighter than `+`")
	}
}

func TestParseQualifiedCall(t *testing.T) {
	prog := parseString(t, `
		module a {
			fn f() -> i64 {
				return m.add(1, x.y);
			}
		}
	`)

	ret := prog.Modules[0].Items[0].(*ast.FuncDef).Body.Stmts[0].(*ast.ReturnStmt)

	call, ok := ret.Value.(*ast.Call)
	if !ok {
		t.Fatalf("expected a call, got %T", ret.Value)
	}

	callee, ok := call.Callee.(*ast.MemberExpr)
	if !ok {
		t.Fatalf("expected a member access callee, got %T", call.Callee)
	}

	obj, ok := callee.Object.(*ast.Identifier)
	if !ok || obj.Name != "m" || callee.Member != "add" {
		t.Error("callee should be the access `m.add`")
	}

	if len(call.Args) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(call.Args))
	}

	if _, ok := call.Args[1].(*ast.MemberExpr); !ok {
		t.Error("member accesses should parse in argument position")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing module name", "module { }"},
		{"unclosed module", "module a {"},
		{"missing semi after use", "module a { @use b }"},
		{"at without use", "module a { @foo b; }"},
		{"bad priv item", "module a { priv module b {} }"},
		{"missing param type", "module a { fn f(x) {} }"},
		{"bad type label", "module a { fn f() -> list {} }"},
		{"let without init", "module a { let x: i64; }"},
		{"stray token", "module a {} )"},
		{"unexpected eof in expr", "module a { let x: i64 = "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parseBad(t, tc.src)
		})
	}
}
