package ast

// Stmt is the parent interface of all statement nodes.
type Stmt interface {
	ASTNode
}

// Block represents a `{ ... }` sequence of statements.
type Block struct {
	ASTBase

	// The statements of the block in source order.
	Stmts []Stmt
}

// ReturnStmt represents a `return` statement.
type ReturnStmt struct {
	ASTBase

	// The returned expression.  Nil for a bare `return;`.
	Value Expr
}

// IfStmt represents an `if` statement with an optional `else` branch.
type IfStmt struct {
	ASTBase

	// The branch condition.
	Cond Expr

	// The block executed when the condition holds.
	Then *Block

	// The else branch: nil, a *Block, or another *IfStmt for `else if`.
	Else Stmt
}

// WhileStmt represents a `while` loop.
type WhileStmt struct {
	ASTBase

	// The loop condition.
	Cond Expr

	// The loop body.
	Body *Block
}

// BreakStmt represents a `break` statement.
type BreakStmt struct {
	ASTBase
}

// ContinueStmt represents a `continue` statement.
type ContinueStmt struct {
	ASTBase
}

// Assign represents an assignment statement.
type Assign struct {
	ASTBase

	// The assignment target.
	LHS Expr

	// The assigned value.
	RHS Expr
}

// ExprStmt represents an expression used as a statement.
type ExprStmt struct {
	ASTBase

	// The wrapped expression.
	Expr Expr
}
