package generate

import (
	"lumen/ast"
	"lumen/report"
	"lumen/typing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/value"
)

// genUseDirective lowers a `@use` directive by importing the public symbols of
// the referenced module into the current unit.  Unknown modules are a
// recoverable diagnostic: the directive becomes a no-op and lowering
// continues.
func (g *Generator) genUseDirective(use *ast.UseDirective) {
	source := g.FindUnit(use.ModuleName)
	if source == nil {
		report.ReportCompileError(g.path, use.Span(), "module `%s` not found", use.ModuleName)
		return
	}

	if source == g.current {
		report.ReportCompileWarning(g.path, use.Span(), "module `%s` imports itself", use.ModuleName)
		return
	}

	g.importModuleSymbols(source, use.Alias, use.Span())
}

// importModuleSymbols materializes external declarations in the current unit
// for every public symbol of the source unit, filing each under its imported
// name: `alias.base` when an alias is given, the bare base name otherwise.
// The IR-level name of each declaration stays the unqualified base: at link
// time symbols resolve by IR name, while the qualified name exists only for
// in-compiler lookup.  This lets several aliases share one declaration.
func (g *Generator) importModuleSymbols(source *ModuleUnit, alias string, span *report.TextSpan) {
	for _, sym := range source.Symbols {
		// A symbol is exported iff its backing IR value in the source unit has
		// external linkage.  Private symbols are skipped silently.
		if sym.IsFunc {
			if f := source.FindFunc(sym.Name); f == nil || f.Linkage != enum.LinkageExternal {
				continue
			}
		} else {
			if glob := source.FindGlobal(sym.Name); glob == nil || glob.Linkage != enum.LinkageExternal {
				continue
			}
		}

		importedName := sym.Name
		if alias != "" {
			importedName = alias + "." + sym.Name
		}

		// Re-importing an already filed name is a no-op; a kind mismatch on
		// the filed name is a real collision.
		if existing := g.current.FindSymbol(importedName); existing != nil {
			if existing.IsFunc != sym.IsFunc {
				report.ReportCompileError(g.path, span, "duplicate import: `%s`", importedName)
			}

			continue
		}

		var decl value.Value
		if sym.IsFunc {
			decl = g.importFuncDecl(sym, span)
		} else {
			decl = g.importGlobalDecl(sym, span)
		}

		if decl == nil {
			continue
		}

		g.current.AddSymbol(&Symbol{
			Name:   importedName,
			Value:  decl,
			Type:   sym.Type,
			IsFunc: sym.IsFunc,
		})
	}
}

// importFuncDecl finds or creates the external function declaration backing an
// imported function symbol.
func (g *Generator) importFuncDecl(sym *Symbol, span *report.TextSpan) value.Value {
	if f := g.current.FindFunc(sym.Name); f != nil {
		// Reuse the declaration introduced by a previous import of the same
		// base name.  An identically named local definition is a collision.
		if _, ok := g.current.importedDecls[sym.Name]; !ok {
			report.ReportCompileError(g.path, span, "duplicate import: `%s` conflicts with a symbol of module `%s`", sym.Name, g.current.Name)
			return nil
		}

		return f
	}

	ft := sym.Type.(*typing.FuncType)

	var params []*ir.Param
	for _, arg := range ft.Args {
		params = append(params, ir.NewParam("", g.convType(arg)))
	}

	llFunc := g.current.Mod.NewFunc(sym.Name, g.convType(ft.ReturnType), params...)
	llFunc.Linkage = enum.LinkageExternal

	g.current.importedDecls[sym.Name] = struct{}{}
	return llFunc
}

// importGlobalDecl finds or creates the external global declaration backing an
// imported variable symbol.
func (g *Generator) importGlobalDecl(sym *Symbol, span *report.TextSpan) value.Value {
	if glob := g.current.FindGlobal(sym.Name); glob != nil {
		if _, ok := g.current.importedDecls[sym.Name]; !ok {
			report.ReportCompileError(g.path, span, "duplicate import: `%s` conflicts with a symbol of module `%s`", sym.Name, g.current.Name)
			return nil
		}

		return glob
	}

	glob := g.current.Mod.NewGlobal(sym.Name, g.convType(sym.Type))
	glob.Linkage = enum.LinkageExternal
	glob.ExternallyInitialized = true

	g.current.importedDecls[sym.Name] = struct{}{}
	return glob
}
