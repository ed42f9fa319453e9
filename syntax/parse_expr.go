package syntax

import "lumen/ast"

// binaryPredTable lists the binary operator token kinds by precedence level,
// lowest precedence first.  All binary operators are left-associative.
var binaryPredTable = [][]int{
	{TOK_LOR},
	{TOK_LAND},
	{TOK_EQ, TOK_NEQ},
	{TOK_LT, TOK_GT, TOK_LTEQ, TOK_GTEQ},
	{TOK_PLUS, TOK_MINUS},
	{TOK_STAR, TOK_DIV, TOK_MOD},
}

// expr = bin_expr
func (p *Parser) parseExpr() ast.Expr {
	return p.parseBinaryExpr(0)
}

// bin_expr = bin_expr(pred+1) (BINOP(pred) bin_expr(pred+1))*
func (p *Parser) parseBinaryExpr(pred int) ast.Expr {
	if pred == len(binaryPredTable) {
		return p.parseUnaryExpr()
	}

	lhs := p.parseBinaryExpr(pred + 1)

	for p.gotOneOf(binaryPredTable[pred]) {
		op := p.tok.Value
		p.next()

		rhs := p.parseBinaryExpr(pred + 1)

		lhs = &ast.BinaryOp{
			ASTBase: ast.NewASTBaseOver(lhs.Span(), rhs.Span()),
			Op:      op,
			Lhs:     lhs,
			Rhs:     rhs,
		}
	}

	return lhs
}

// gotOneOf returns whether the parser's current token kind is one of the given
// kinds.
func (p *Parser) gotOneOf(kinds []int) bool {
	for _, kind := range kinds {
		if p.tok.Kind == kind {
			return true
		}
	}

	return false
}

// unary_expr = ('-' | '!') unary_expr | atom_expr
func (p *Parser) parseUnaryExpr() ast.Expr {
	if p.got(TOK_MINUS) || p.got(TOK_NOT) {
		opTok := p.tok
		p.next()

		operand := p.parseUnaryExpr()

		return &ast.UnaryOp{
			ASTBase: ast.NewASTBaseOver(opTok.Span, operand.Span()),
			Op:      opTok.Value,
			Operand: operand,
		}
	}

	return p.parseAtomExpr()
}

// atom_expr = atom trailer*
// trailer = '.' 'IDENT' | '(' [expr_list] ')'
func (p *Parser) parseAtomExpr() ast.Expr {
	expr := p.parseAtom()

	for {
		switch p.tok.Kind {
		case TOK_DOT:
			p.want(TOK_IDENT)

			expr = &ast.MemberExpr{
				ASTBase: ast.NewASTBaseOver(expr.Span(), p.tok.Span),
				Object:  expr,
				Member:  p.tok.Value,
			}

			p.next()
		case TOK_LPAREN:
			p.next()

			var args []ast.Expr
			if !p.got(TOK_RPAREN) {
				args = append(args, p.parseExpr())
				for p.got(TOK_COMMA) {
					p.next()
					args = append(args, p.parseExpr())
				}
			}

			endSpan := p.tok.Span
			p.assertAndNext(TOK_RPAREN)

			expr = &ast.Call{
				ASTBase: ast.NewASTBaseOver(expr.Span(), endSpan),
				Callee:  expr,
				Args:    args,
			}
		default:
			return expr
		}
	}
}

// atom = 'INTLIT' | 'FLOATLIT' | 'BOOLLIT' | 'STRINGLIT' | 'IDENT'
//      | '(' expr ')'
func (p *Parser) parseAtom() ast.Expr {
	switch p.tok.Kind {
	case TOK_INTLIT:
		return p.makeLiteral(ast.LitInt)
	case TOK_FLOATLIT:
		return p.makeLiteral(ast.LitFloat)
	case TOK_BOOLLIT:
		return p.makeLiteral(ast.LitBool)
	case TOK_STRINGLIT:
		return p.makeLiteral(ast.LitString)
	case TOK_IDENT:
		ident := &ast.Identifier{
			ASTBase: ast.NewASTBaseOn(p.tok.Span),
			Name:    p.tok.Value,
		}
		p.next()
		return ident
	case TOK_LPAREN:
		p.next()
		expr := p.parseExpr()
		p.assertAndNext(TOK_RPAREN)
		return expr
	default:
		p.reject()
		return nil
	}
}

// makeLiteral builds a literal node from the current token and moves the
// parser forward.
func (p *Parser) makeLiteral(kind int) *ast.Literal {
	lit := &ast.Literal{
		ASTBase: ast.NewASTBaseOn(p.tok.Span),
		Kind:    kind,
		Value:   p.tok.Value,
	}

	p.next()
	return lit
}
