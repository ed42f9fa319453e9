package generate

import (
	"lumen/ast"
	"lumen/report"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genBlock generates a block of statements in a fresh local scope.  Statements
// after a terminator are unreachable and dropped.
func (g *Generator) genBlock(block *ast.Block) {
	g.pushScope()

	for _, stmt := range block.Stmts {
		g.genStmt(stmt)

		if g.block.Term != nil {
			break
		}
	}

	g.popScope()
}

// genStmt generates a single statement.
func (g *Generator) genStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.VarDecl:
		g.genLocalVarDecl(v)
	case *ast.Assign:
		g.genAssign(v)
	case *ast.ReturnStmt:
		g.genReturnStmt(v)
	case *ast.IfStmt:
		g.genIfStmt(v)
	case *ast.WhileStmt:
		g.genWhileStmt(v)
	case *ast.BreakStmt:
		if len(g.loopBreaks) == 0 {
			report.ReportCompileError(g.path, v.Span(), "`break` outside of a loop")
			return
		}

		g.block.NewBr(g.loopBreaks[len(g.loopBreaks)-1])
	case *ast.ContinueStmt:
		if len(g.loopContinues) == 0 {
			report.ReportCompileError(g.path, v.Span(), "`continue` outside of a loop")
			return
		}

		g.block.NewBr(g.loopContinues[len(g.loopContinues)-1])
	case *ast.ExprStmt:
		g.genExpr(v.Expr)
	}
}

// genLocalVarDecl generates a local `let`.  Locals are mutable: they are
// backed by an alloca and loaded on use.
func (g *Generator) genLocalVarDecl(vd *ast.VarDecl) {
	init := g.genExpr(vd.Init)
	if init == nil {
		return
	}

	declared := g.convType(vd.Type)
	init = coerceConst(init, declared)
	if !declared.Equal(init.Type()) {
		report.ReportCompileError(g.path, vd.Span(), "cannot initialize a value of type `%s` with a value of an unrelated type", vd.Type.Repr())
		return
	}

	alloca := g.block.NewAlloca(declared)
	g.block.NewStore(init, alloca)
	g.defineLocal(vd.Name, alloca, true)
}

// genAssign generates an assignment statement.
func (g *Generator) genAssign(as *ast.Assign) {
	lhs, ok := as.LHS.(*ast.Identifier)
	if !ok {
		report.ReportCompileError(g.path, as.LHS.Span(), "invalid assignment target")
		return
	}

	if ident, found := g.lookupLocal(lhs.Name); found {
		if !ident.Mutable {
			report.ReportCompileError(g.path, as.Span(), "cannot assign to immutable value `%s`", lhs.Name)
			return
		}

		rhs := g.genExpr(as.RHS)
		if rhs == nil {
			return
		}

		want := ident.Val.Type().(*types.PointerType).ElemType
		rhs = coerceConst(rhs, want)
		if !rhs.Type().Equal(want) {
			report.ReportCompileError(g.path, as.Span(), "cannot assign a value of type `%s` to `%s` of type `%s`", rhs.Type(), lhs.Name, want)
			return
		}

		g.block.NewStore(rhs, ident.Val)
		return
	}

	sym := g.current.FindSymbol(lhs.Name)
	if sym == nil {
		report.ReportCompileError(g.path, lhs.Span(), "undefined symbol: `%s`", lhs.Name)
		return
	} else if sym.IsFunc {
		report.ReportCompileError(g.path, as.Span(), "cannot assign to function `%s`", lhs.Name)
		return
	}

	rhs := g.genExpr(as.RHS)
	if rhs == nil {
		return
	}

	want := g.convType(sym.Type)
	rhs = coerceConst(rhs, want)
	if !rhs.Type().Equal(want) {
		report.ReportCompileError(g.path, as.Span(), "cannot assign a value of type `%s` to `%s` of type `%s`", rhs.Type(), lhs.Name, sym.Type.Repr())
		return
	}

	g.block.NewStore(rhs, sym.Value)
}

// genReturnStmt generates a `return` statement.
func (g *Generator) genReturnStmt(ret *ast.ReturnStmt) {
	if ret.Value == nil {
		// A bare return from the entry function produces a zero exit status.
		if g.entryWrap {
			g.block.NewRet(constant.NewInt(types.I32, 0))
		} else {
			g.block.NewRet(nil)
		}

		return
	}

	val := g.genExpr(ret.Value)
	if val == nil {
		return
	}

	// The entry function is declared `-> unit` even though it is lowered
	// returning a status, so a value return is an error there too.
	retType := g.enclosingFunc.Sig.RetType
	if g.entryWrap || retType.Equal(types.Void) {
		report.ReportCompileError(g.path, ret.Span(), "cannot return a value from a function returning `unit`")
		return
	}

	val = coerceConst(val, retType)
	if !val.Type().Equal(retType) {
		report.ReportCompileError(g.path, ret.Span(), "cannot return a value of type `%s` from a function returning `%s`", val.Type(), retType)
		return
	}

	g.block.NewRet(val)
}

// genIfStmt generates an `if` statement.
func (g *Generator) genIfStmt(stmt *ast.IfStmt) {
	cond := g.genCond(stmt.Cond)
	if cond == nil {
		return
	}

	thenBlock := g.appendBlock()

	var elseBlock *ir.Block
	if stmt.Else != nil {
		elseBlock = g.appendBlock()
	}

	endBlock := g.appendBlock()

	if elseBlock != nil {
		g.block.NewCondBr(cond, thenBlock, elseBlock)
	} else {
		g.block.NewCondBr(cond, thenBlock, endBlock)
	}

	g.block = thenBlock
	g.genBlock(stmt.Then)
	if g.block.Term == nil {
		g.block.NewBr(endBlock)
	}

	if elseBlock != nil {
		g.block = elseBlock
		if elseIf, ok := stmt.Else.(*ast.IfStmt); ok {
			g.genIfStmt(elseIf)
		} else {
			g.genBlock(stmt.Else.(*ast.Block))
		}

		if g.block.Term == nil {
			g.block.NewBr(endBlock)
		}
	}

	g.block = endBlock
}

// genWhileStmt generates a `while` loop.
func (g *Generator) genWhileStmt(stmt *ast.WhileStmt) {
	condBlock := g.appendBlock()
	g.block.NewBr(condBlock)
	g.block = condBlock

	cond := g.genCond(stmt.Cond)
	if cond == nil {
		return
	}

	bodyBlock := g.appendBlock()
	endBlock := g.appendBlock()
	g.block.NewCondBr(cond, bodyBlock, endBlock)

	g.block = bodyBlock
	g.pushLoop(endBlock, condBlock)
	g.genBlock(stmt.Body)
	g.popLoop()

	if g.block.Term == nil {
		g.block.NewBr(condBlock)
	}

	g.block = endBlock
}

// genCond generates a branch condition and checks that it is a boolean.
func (g *Generator) genCond(cond ast.Expr) value.Value {
	val := g.genExpr(cond)
	if val == nil {
		return nil
	}

	if !val.Type().Equal(types.I1) {
		report.ReportCompileError(g.path, cond.Span(), "condition must be of type `bool`")
		return nil
	}

	return val
}
