package ast

// Expr is the parent interface of all expression nodes.
type Expr interface {
	ASTNode
}

// Identifier represents a named value reference.
type Identifier struct {
	ASTBase

	// The name of the identifier.
	Name string
}

// MemberExpr represents an `object.member` access.  When the object is an
// identifier naming an imported module alias, the access resolves to a symbol
// of the referenced module.
type MemberExpr struct {
	ASTBase

	// The object being accessed.
	Object Expr

	// The name of the accessed member.
	Member string
}

// Call represents a function call.
type Call struct {
	ASTBase

	// The called expression.
	Callee Expr

	// The call arguments in source order.
	Args []Expr
}

// Enumeration of literal kinds.
const (
	LitInt = iota
	LitFloat
	LitBool
	LitString
)

// Literal represents a literal value.
type Literal struct {
	ASTBase

	// The kind of the literal.  Must be one of the enumerated literal kinds.
	Kind int

	// The string value of the literal as written in the source text (with
	// quotes trimmed for strings).
	Value string
}

// BinaryOp represents a binary operator application.
type BinaryOp struct {
	ASTBase

	// The operator string: eg. `+` or `==`.
	Op string

	// The operands.
	Lhs, Rhs Expr
}

// UnaryOp represents a unary operator application.
type UnaryOp struct {
	ASTBase

	// The operator string: `-` or `!`.
	Op string

	// The operand.
	Operand Expr
}
