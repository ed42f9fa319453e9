package generate

import (
	"strconv"

	"lumen/ast"
	"lumen/report"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genExpr generates an expression in the current block.  It returns nil if
// the expression could not be generated; a diagnostic has been reported in
// that case.
func (g *Generator) genExpr(expr ast.Expr) value.Value {
	switch v := expr.(type) {
	case *ast.Literal:
		return g.genLiteral(v)
	case *ast.Identifier:
		return g.genIdentifier(v)
	case *ast.MemberExpr:
		return g.genMemberAccess(v)
	case *ast.Call:
		return g.genCall(v)
	case *ast.BinaryOp:
		return g.genBinaryOp(v)
	case *ast.UnaryOp:
		return g.genUnaryOp(v)
	}

	return nil
}

// genLiteral generates a literal value.  Integer literals default to i64 and
// float literals to f64; narrower contexts coerce the constant at the use
// site.
func (g *Generator) genLiteral(lit *ast.Literal) value.Value {
	switch lit.Kind {
	case ast.LitInt:
		x, err := strconv.ParseInt(lit.Value, 10, 64)
		if err != nil {
			report.ReportCompileError(g.path, lit.Span(), "invalid integer literal: `%s`", lit.Value)
			return nil
		}

		return constant.NewInt(types.I64, x)
	case ast.LitFloat:
		x, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			report.ReportCompileError(g.path, lit.Span(), "invalid float literal: `%s`", lit.Value)
			return nil
		}

		return constant.NewFloat(types.Double, x)
	case ast.LitBool:
		return constant.NewBool(lit.Value == "true")
	case ast.LitString:
		return g.internString(lit.Value)
	}

	return nil
}

// genIdentifier generates a named value reference.  Local scopes are searched
// first (innermost out, implementing shadowing), then the unit symbol tables.
func (g *Generator) genIdentifier(v *ast.Identifier) value.Value {
	if ident, ok := g.lookupLocal(v.Name); ok {
		if ident.Mutable {
			// Mutable values are wrapped in pointers and loaded on use.
			return g.block.NewLoad(ident.Val.Type().(*types.PointerType).ElemType, ident.Val)
		}

		return ident.Val
	}

	sym, unit := g.FindSymbolWithModuleSupport(v.Name)
	if sym == nil {
		report.ReportCompileError(g.path, v.Span(), "undefined symbol: `%s`", v.Name)
		return nil
	}

	// The cross-unit fallback locates the definition but does not materialize
	// a reference in the current unit: that requires an explicit `@use`.
	if unit != g.current {
		report.ReportCompileError(g.path, v.Span(), "symbol `%s` is defined in module `%s`: import it with `@use`", v.Name, unit.Name)
		return nil
	}

	if sym.IsFunc {
		return sym.Value
	}

	return g.block.NewLoad(g.convType(sym.Type), sym.Value)
}

// genMemberAccess lowers an `object.member` access where the object names an
// imported module alias: the qualified `alias.member` name is resolved
// through the current unit's symbol table.  Lumen has no other member-bearing
// values, so a failed lookup is an unresolved member.
func (g *Generator) genMemberAccess(v *ast.MemberExpr) value.Value {
	obj, ok := v.Object.(*ast.Identifier)
	if !ok {
		report.ReportCompileError(g.path, v.Span(), "expression has no member `%s`", v.Member)
		return nil
	}

	qualified := obj.Name + "." + v.Member
	if sym := g.current.FindSymbol(qualified); sym != nil {
		if sym.IsFunc {
			// Yield the declaration handle directly so the access can appear
			// as the callee of a call expression.
			return sym.Value
		}

		return g.block.NewLoad(g.convType(sym.Type), sym.Value)
	}

	report.ReportCompileError(g.path, v.Span(), "module `%s` has no symbol `%s`", obj.Name, v.Member)
	return nil
}

// genCall generates a function call.
func (g *Generator) genCall(v *ast.Call) value.Value {
	callee := g.genExpr(v.Callee)
	if callee == nil {
		return nil
	}

	llFunc, ok := callee.(*ir.Func)
	if !ok {
		report.ReportCompileError(g.path, v.Callee.Span(), "expression is not callable")
		return nil
	}

	if len(v.Args) != len(llFunc.Params) {
		report.ReportCompileError(g.path, v.Span(), "function expects %d arguments but received %d", len(llFunc.Params), len(v.Args))
		return nil
	}

	args := make([]value.Value, len(v.Args))
	for i, argExpr := range v.Args {
		arg := g.genExpr(argExpr)
		if arg == nil {
			return nil
		}

		arg = coerceConst(arg, llFunc.Sig.Params[i])
		if !arg.Type().Equal(llFunc.Sig.Params[i]) {
			report.ReportCompileError(g.path, argExpr.Span(), "mismatched argument type: expected `%s`, got `%s`", llFunc.Sig.Params[i], arg.Type())
			return nil
		}

		args[i] = arg
	}

	return g.block.NewCall(llFunc, args...)
}

// -----------------------------------------------------------------------------

// genBinaryOp generates a binary operator application.
func (g *Generator) genBinaryOp(v *ast.BinaryOp) value.Value {
	lhs := g.genExpr(v.Lhs)
	if lhs == nil {
		return nil
	}

	rhs := g.genExpr(v.Rhs)
	if rhs == nil {
		return nil
	}

	// Coerce untyped constants toward the other operand before agreement is
	// checked.
	lhs = coerceConst(lhs, rhs.Type())
	rhs = coerceConst(rhs, lhs.Type())

	if !lhs.Type().Equal(rhs.Type()) {
		report.ReportCompileError(g.path, v.Span(), "mismatched operand types: `%s` and `%s`", lhs.Type(), rhs.Type())
		return nil
	}

	_, isFloat := lhs.Type().(*types.FloatType)
	intType, isInt := lhs.Type().(*types.IntType)
	isBool := isInt && intType.BitSize == 1

	switch v.Op {
	case "+", "-", "*", "/", "%":
		if isBool || !(isFloat || isInt) {
			report.ReportCompileError(g.path, v.Span(), "operator `%s` is not defined for operands of type `%s`", v.Op, lhs.Type())
			return nil
		}

		return g.genArith(v.Op, lhs, rhs, isFloat)
	case "==", "!=", "<", "<=", ">", ">=":
		if !(isFloat || isInt) {
			report.ReportCompileError(g.path, v.Span(), "operator `%s` is not defined for operands of type `%s`", v.Op, lhs.Type())
			return nil
		}

		return g.genCompare(v.Op, lhs, rhs, isFloat)
	case "&&", "||":
		if !isBool {
			report.ReportCompileError(g.path, v.Span(), "operator `%s` requires `bool` operands", v.Op)
			return nil
		}

		if v.Op == "&&" {
			return g.block.NewAnd(lhs, rhs)
		}

		return g.block.NewOr(lhs, rhs)
	}

	return nil
}

// genArith generates an arithmetic instruction.
func (g *Generator) genArith(op string, lhs, rhs value.Value, isFloat bool) value.Value {
	if isFloat {
		switch op {
		case "+":
			return g.block.NewFAdd(lhs, rhs)
		case "-":
			return g.block.NewFSub(lhs, rhs)
		case "*":
			return g.block.NewFMul(lhs, rhs)
		case "/":
			return g.block.NewFDiv(lhs, rhs)
		default:
			return g.block.NewFRem(lhs, rhs)
		}
	}

	switch op {
	case "+":
		return g.block.NewAdd(lhs, rhs)
	case "-":
		return g.block.NewSub(lhs, rhs)
	case "*":
		return g.block.NewMul(lhs, rhs)
	case "/":
		return g.block.NewSDiv(lhs, rhs)
	default:
		return g.block.NewSRem(lhs, rhs)
	}
}

// intPreds and floatPreds map comparison operators to their ordered signed
// integer and floating-point predicates.
var intPreds = map[string]enum.IPred{
	"==": enum.IPredEQ, "!=": enum.IPredNE,
	"<": enum.IPredSLT, "<=": enum.IPredSLE,
	">": enum.IPredSGT, ">=": enum.IPredSGE,
}

var floatPreds = map[string]enum.FPred{
	"==": enum.FPredOEQ, "!=": enum.FPredONE,
	"<": enum.FPredOLT, "<=": enum.FPredOLE,
	">": enum.FPredOGT, ">=": enum.FPredOGE,
}

// genCompare generates a comparison instruction.
func (g *Generator) genCompare(op string, lhs, rhs value.Value, isFloat bool) value.Value {
	if isFloat {
		return g.block.NewFCmp(floatPreds[op], lhs, rhs)
	}

	return g.block.NewICmp(intPreds[op], lhs, rhs)
}

// genUnaryOp generates a unary operator application.
func (g *Generator) genUnaryOp(v *ast.UnaryOp) value.Value {
	operand := g.genExpr(v.Operand)
	if operand == nil {
		return nil
	}

	switch v.Op {
	case "-":
		if _, ok := operand.Type().(*types.FloatType); ok {
			return g.block.NewFNeg(operand)
		}

		if intType, ok := operand.Type().(*types.IntType); ok && intType.BitSize > 1 {
			return g.block.NewSub(constant.NewInt(intType, 0), operand)
		}
	case "!":
		if operand.Type().Equal(types.I1) {
			return g.block.NewXor(operand, constant.True)
		}
	}

	report.ReportCompileError(g.path, v.Span(), "operator `%s` is not defined for an operand of type `%s`", v.Op, operand.Type())
	return nil
}

// -----------------------------------------------------------------------------

// coerceConst adapts an untyped literal constant to the type its context
// wants: integer constants re-type to any integer or float width, integer
// literals may become floats.  Non-constant values pass through unchanged.
func coerceConst(val value.Value, want types.Type) value.Value {
	ci, ok := val.(*constant.Int)
	if !ok || ci.Typ.BitSize == 1 {
		return val
	}

	switch wt := want.(type) {
	case *types.IntType:
		if wt.BitSize > 1 && !ci.Typ.Equal(wt) {
			return constant.NewInt(wt, ci.X.Int64())
		}
	case *types.FloatType:
		return constant.NewFloat(wt, float64(ci.X.Int64()))
	}

	return val
}
