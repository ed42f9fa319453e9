package syntax

import "lumen/ast"

// block = '{' stmt* '}'
func (p *Parser) parseBlock() *ast.Block {
	startSpan := p.tok.Span
	p.assertAndNext(TOK_LBRACE)

	var stmts []ast.Stmt
	for !p.got(TOK_RBRACE) {
		stmts = append(stmts, p.parseStmt())
	}

	endSpan := p.tok.Span
	p.next()

	return &ast.Block{
		ASTBase: ast.NewASTBaseOver(startSpan, endSpan),
		Stmts:   stmts,
	}
}

// stmt = var_decl | return_stmt | if_stmt | while_stmt | 'break' ';'
//      | 'continue' ';' | expr_or_assign_stmt
func (p *Parser) parseStmt() ast.Stmt {
	switch p.tok.Kind {
	case TOK_LET:
		// Locals carry no visibility: the flag is meaningless inside a block.
		return p.parseVarDecl(false)
	case TOK_RETURN:
		return p.parseReturnStmt()
	case TOK_IF:
		return p.parseIfStmt()
	case TOK_WHILE:
		return p.parseWhileStmt()
	case TOK_BREAK:
		stmt := &ast.BreakStmt{ASTBase: ast.NewASTBaseOn(p.tok.Span)}
		p.want(TOK_SEMI)
		p.next()
		return stmt
	case TOK_CONTINUE:
		stmt := &ast.ContinueStmt{ASTBase: ast.NewASTBaseOn(p.tok.Span)}
		p.want(TOK_SEMI)
		p.next()
		return stmt
	default:
		return p.parseExprOrAssignStmt()
	}
}

// return_stmt = 'return' [expr] ';'
func (p *Parser) parseReturnStmt() ast.Stmt {
	startSpan := p.tok.Span
	p.next()

	var value ast.Expr
	if !p.got(TOK_SEMI) {
		value = p.parseExpr()
	}

	endSpan := p.tok.Span
	p.assertAndNext(TOK_SEMI)

	return &ast.ReturnStmt{
		ASTBase: ast.NewASTBaseOver(startSpan, endSpan),
		Value:   value,
	}
}

// if_stmt = 'if' expr block ['else' (if_stmt | block)]
func (p *Parser) parseIfStmt() ast.Stmt {
	startSpan := p.tok.Span
	p.next()

	cond := p.parseExpr()
	then := p.parseBlock()

	var elseBranch ast.Stmt
	endSpan := then.Span()
	if p.got(TOK_ELSE) {
		p.next()

		if p.got(TOK_IF) {
			elseBranch = p.parseIfStmt()
		} else {
			elseBranch = p.parseBlock()
		}

		endSpan = elseBranch.Span()
	}

	return &ast.IfStmt{
		ASTBase: ast.NewASTBaseOver(startSpan, endSpan),
		Cond:    cond,
		Then:    then,
		Else:    elseBranch,
	}
}

// while_stmt = 'while' expr block
func (p *Parser) parseWhileStmt() ast.Stmt {
	startSpan := p.tok.Span
	p.next()

	cond := p.parseExpr()
	body := p.parseBlock()

	return &ast.WhileStmt{
		ASTBase: ast.NewASTBaseOver(startSpan, body.Span()),
		Cond:    cond,
		Body:    body,
	}
}

// expr_or_assign_stmt = expr ['=' expr] ';'
func (p *Parser) parseExprOrAssignStmt() ast.Stmt {
	expr := p.parseExpr()

	if p.got(TOK_ASSIGN) {
		p.next()
		rhs := p.parseExpr()

		endSpan := p.tok.Span
		p.assertAndNext(TOK_SEMI)

		return &ast.Assign{
			ASTBase: ast.NewASTBaseOver(expr.Span(), endSpan),
			LHS:     expr,
			RHS:     rhs,
		}
	}

	endSpan := p.tok.Span
	p.assertAndNext(TOK_SEMI)

	return &ast.ExprStmt{
		ASTBase: ast.NewASTBaseOver(expr.Span(), endSpan),
		Expr:    expr,
	}
}
