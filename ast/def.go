package ast

import "lumen/typing"

// FuncDef represents a function definition.
type FuncDef struct {
	ASTBase

	// The name of the function.
	Name string

	// The parameters of the function in declaration order.
	Params []*FuncParam

	// The declared return type of the function.  This is the unit type if no
	// return type annotation was given.
	ReturnType typing.DataType

	// The body of the function.
	Body *Block

	// Whether the function is publicly visible: ie. not marked `priv`.
	Public bool
}

// FuncParam represents a single function parameter.
type FuncParam struct {
	// The name of the parameter.
	Name string

	// The declared type of the parameter.
	Type typing.DataType
}

// Type returns the function type of the function definition.
func (fd *FuncDef) Type() *typing.FuncType {
	args := make([]typing.DataType, len(fd.Params))
	for i, param := range fd.Params {
		args[i] = param.Type
	}

	return &typing.FuncType{Args: args, ReturnType: fd.ReturnType}
}

// VarDecl represents a `let NAME: TYPE = INIT;` declaration.  At module level
// it declares a global variable; inside a block it declares a local.
type VarDecl struct {
	ASTBase

	// The name of the declared variable.
	Name string

	// The declared type of the variable.
	Type typing.DataType

	// The initializer expression.
	Init Expr

	// Whether the variable is publicly visible.  Only meaningful at module
	// level.
	Public bool
}
