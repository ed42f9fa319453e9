package generate

import (
	"lumen/ast"
	"lumen/report"
)

// Lower lowers a whole program AST into the generator's compilation units.  It
// returns whether lowering produced no errors.
//
// Lowering runs in two passes.  Pass 1 creates a unit for every module
// declaration and declares its top-level symbols.  Pass 2 resolves `@use`
// directives and generates function bodies.  The split guarantees that `@use`
// can reference modules declared textually later in the program and that
// import cycles between modules are safe: by the time any import is resolved,
// every unit and every exported declaration already exists.
func (g *Generator) Lower(prog *ast.Program) bool {
	// Pass 1: create all units in source order and declare their symbols.
	for _, mod := range prog.Modules {
		unit, ok := g.CreateUnit(mod.Name, mod.Span())
		if !ok {
			return false
		}

		g.SetCurrent(unit)

		for _, item := range mod.Items {
			switch v := item.(type) {
			case *ast.FuncDef:
				g.declareFunc(v)
			case *ast.VarDecl:
				g.declareGlobalVar(v)
			case *ast.UseDirective:
				// Deferred to pass 2.
			}
		}
	}

	// Pass 2: process module bodies in source order.  Pass 2 never creates
	// units: an unknown module in a `@use` is diagnosed, not repaired.
	for _, mod := range prog.Modules {
		g.SetCurrent(g.FindUnit(mod.Name))

		for _, item := range mod.Items {
			switch v := item.(type) {
			case *ast.UseDirective:
				g.genUseDirective(v)
			case *ast.FuncDef:
				g.genFuncBody(v)
			case *ast.VarDecl:
				// Fully handled in pass 1.
			}
		}
	}

	g.SetCurrent(nil)
	return !report.AnyErrors()
}
