package generate

import (
	"fmt"
	"strconv"
	"strings"

	"lumen/ast"
	"lumen/report"
	"lumen/typing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// declareFunc declares a function in the current unit: it creates the LLVM
// function with the right linkage and files the symbol, but does not generate
// the body.
func (g *Generator) declareFunc(fd *ast.FuncDef) {
	if g.current.FindSymbol(fd.Name) != nil {
		report.ReportCompileError(g.path, fd.Span(), "multiple symbols with name `%s` declared in module `%s`", fd.Name, g.current.Name)
		return
	}

	var params []*ir.Param
	for _, param := range fd.Params {
		params = append(params, ir.NewParam(param.Name, g.convType(param.Type)))
	}

	// The entry function is declared `-> unit` at the source level but lowered
	// returning an i32 status so the C runtime can call it.
	retType := g.convType(fd.ReturnType)
	if g.isEntryFunc(fd) {
		retType = types.I32
	}

	llFunc := g.current.Mod.NewFunc(fd.Name, retType, params...)

	// Set linkage based on visibility.
	if fd.Public {
		llFunc.Linkage = enum.LinkageExternal
	} else {
		llFunc.Linkage = enum.LinkageInternal
	}

	g.current.AddSymbol(&Symbol{
		Name:   fd.Name,
		Value:  llFunc,
		Type:   fd.Type(),
		IsFunc: true,
	})

	if fd.Name == "main" && fd.Public {
		if main := g.MainUnit(); main != nil {
			report.ReportCompileError(g.path, fd.Span(), "multiple modules define a `main` function: `%s` and `%s`", main.Name, g.current.Name)
			return
		}

		g.current.IsMain = true
	}
}

// isEntryFunc returns whether a function definition is the program entry
// point.
func (g *Generator) isEntryFunc(fd *ast.FuncDef) bool {
	return fd.Name == "main" && fd.Public && typing.IsUnit(fd.ReturnType)
}

// -----------------------------------------------------------------------------

// declareGlobalVar declares a module-level variable in the current unit.
// Module-level variables require literal initializers so that the global can
// be materialized without a runtime initialization function.
func (g *Generator) declareGlobalVar(vd *ast.VarDecl) {
	if g.current.FindSymbol(vd.Name) != nil {
		report.ReportCompileError(g.path, vd.Span(), "multiple symbols with name `%s` declared in module `%s`", vd.Name, g.current.Name)
		return
	}

	init := g.genConstInit(vd.Init, vd.Type)
	if init == nil {
		return
	}

	glob := g.current.Mod.NewGlobalDef(vd.Name, init)
	if vd.Public {
		glob.Linkage = enum.LinkageExternal
	} else {
		glob.Linkage = enum.LinkageInternal
	}

	g.current.AddSymbol(&Symbol{
		Name:   vd.Name,
		Value:  glob,
		Type:   vd.Type,
		IsFunc: false,
	})
}

// genConstInit generates the constant initializer of a module-level variable.
// It returns nil (after reporting) if the initializer is not a literal or does
// not agree with the declared type.
func (g *Generator) genConstInit(init ast.Expr, typ typing.DataType) constant.Constant {
	lit, ok := init.(*ast.Literal)
	if !ok {
		report.ReportCompileError(g.path, init.Span(), "module-level `let` requires a literal initializer")
		return nil
	}

	switch lit.Kind {
	case ast.LitInt:
		x, err := strconv.ParseInt(lit.Value, 10, 64)
		if err != nil {
			report.ReportCompileError(g.path, lit.Span(), "invalid integer literal: `%s`", lit.Value)
			return nil
		}

		switch {
		case typ.Equiv(typing.PrimI32):
			return constant.NewInt(types.I32, x)
		case typ.Equiv(typing.PrimI64):
			return constant.NewInt(types.I64, x)
		case typ.Equiv(typing.PrimF64):
			return constant.NewFloat(types.Double, float64(x))
		}
	case ast.LitFloat:
		x, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			report.ReportCompileError(g.path, lit.Span(), "invalid float literal: `%s`", lit.Value)
			return nil
		}

		if typ.Equiv(typing.PrimF64) {
			return constant.NewFloat(types.Double, x)
		}
	case ast.LitBool:
		if typ.Equiv(typing.PrimBool) {
			return constant.NewBool(lit.Value == "true")
		}
	case ast.LitString:
		if typ.Equiv(typing.PrimString) {
			return g.internString(lit.Value)
		}
	}

	report.ReportCompileError(g.path, lit.Span(), "cannot initialize a value of type `%s` with this literal", typ.Repr())
	return nil
}

// -----------------------------------------------------------------------------

// genFuncBody generates the body of a previously declared function.
func (g *Generator) genFuncBody(fd *ast.FuncDef) {
	sym := g.current.FindSymbol(fd.Name)
	if sym == nil || !sym.IsFunc {
		// The declaration failed: a diagnostic was already reported.
		return
	}

	llFunc, ok := sym.Value.(*ir.Func)
	if !ok {
		return
	}

	g.enclosingFunc = llFunc
	g.entryWrap = g.isEntryFunc(fd)
	g.block = llFunc.NewBlock("entry")

	// Parameters live in an outer scope so that body locals may shadow them.
	g.pushScope()
	for i, param := range fd.Params {
		g.defineLocal(param.Name, llFunc.Params[i], false)
	}

	g.genBlock(fd.Body)

	// Close over fall-through control flow.
	if g.block.Term == nil {
		switch {
		case g.entryWrap:
			g.block.NewRet(constant.NewInt(types.I32, 0))
		case typing.IsUnit(fd.ReturnType):
			g.block.NewRet(nil)
		default:
			// An unreferenced trailing block only exists because every path
			// already returned; a referenced one is a real fall-through.
			if blockIsBranchedTo(llFunc, g.block) {
				report.ReportCompileError(g.path, fd.Span(), "function `%s` is missing a return statement", fd.Name)
			}

			g.block.NewUnreachable()
		}
	}

	g.popScope()
	g.enclosingFunc = nil
	g.entryWrap = false
	g.block = nil
}

// blockIsBranchedTo returns whether the block is the function's entry block or
// the target of any terminator in the function.
func blockIsBranchedTo(f *ir.Func, b *ir.Block) bool {
	if len(f.Blocks) > 0 && f.Blocks[0] == b {
		return true
	}

	for _, blk := range f.Blocks {
		if blk.Term == nil {
			continue
		}

		for _, succ := range blk.Term.Succs() {
			if succ == b {
				return true
			}
		}
	}

	return false
}

// -----------------------------------------------------------------------------

// stringEscapes translates the escape sequences accepted by the lexer.
var stringEscapes = strings.NewReplacer(
	`\a`, "\a", `\b`, "\b", `\f`, "\f", `\n`, "\n", `\r`, "\r",
	`\t`, "\t", `\v`, "\v", `\0`, "\x00", `\\`, `\`, `\"`, `"`,
)

// internString interns a string literal as an anonymous global byte array in
// the current unit and returns a pointer to its first byte.
func (g *Generator) internString(val string) constant.Constant {
	arr := constant.NewCharArrayFromString(stringEscapes.Replace(val) + "\x00")

	glob := g.current.Mod.NewGlobalDef(fmt.Sprintf("str.%d", g.globalCounter), arr)
	glob.Linkage = enum.LinkageInternal
	glob.Immutable = true
	g.globalCounter++

	zero := constant.NewInt(types.I64, 0)
	return constant.NewGetElementPtr(arr.Typ, glob, zero, zero)
}
