package syntax

import (
	"lumen/ast"
	"lumen/typing"
)

// program = module*
func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{Path: p.path}

	for !p.got(TOK_EOF) {
		prog.Modules = append(prog.Modules, p.parseModule())
	}

	return prog
}

// module = 'module' 'IDENT' '{' module_item* '}'
func (p *Parser) parseModule() *ast.ModuleDecl {
	startSpan := p.tok.Span
	p.assertAndNext(TOK_MODULE)

	p.assert(TOK_IDENT)
	name := p.tok.Value
	p.next()

	p.assertAndNext(TOK_LBRACE)

	var items []ast.ASTNode
	for !p.got(TOK_RBRACE) {
		items = append(items, p.parseModuleItem())
	}

	endSpan := p.tok.Span
	p.next()

	return &ast.ModuleDecl{
		ASTBase: ast.NewASTBaseOver(startSpan, endSpan),
		Name:    name,
		Items:   items,
	}
}

// module_item = use_directive | ['priv'] (func_def | var_decl)
func (p *Parser) parseModuleItem() ast.ASTNode {
	switch p.tok.Kind {
	case TOK_ATSIGN:
		return p.parseUseDirective()
	case TOK_PRIV:
		p.next()

		switch p.tok.Kind {
		case TOK_FN:
			return p.parseFuncDef(false)
		case TOK_LET:
			return p.parseVarDecl(false)
		default:
			p.rejectWithMsg("expected a definition after `priv` not %s", repr(p.tok))
			return nil
		}
	case TOK_FN:
		return p.parseFuncDef(true)
	case TOK_LET:
		return p.parseVarDecl(true)
	default:
		p.reject()
		return nil
	}
}

// use_directive = '@' 'use' 'IDENT' ['as' 'IDENT'] ';'
func (p *Parser) parseUseDirective() *ast.UseDirective {
	startSpan := p.tok.Span
	p.assertAndNext(TOK_ATSIGN)
	p.assertAndNext(TOK_USE)

	p.assert(TOK_IDENT)
	moduleName := p.tok.Value
	p.next()

	alias := ""
	if p.got(TOK_AS) {
		p.want(TOK_IDENT)
		alias = p.tok.Value
		p.next()
	}

	endSpan := p.tok.Span
	p.assertAndNext(TOK_SEMI)

	return &ast.UseDirective{
		ASTBase:    ast.NewASTBaseOver(startSpan, endSpan),
		ModuleName: moduleName,
		Alias:      alias,
	}
}

// func_def = 'fn' 'IDENT' '(' [param_list] ')' ['->' type_label] block
func (p *Parser) parseFuncDef(public bool) *ast.FuncDef {
	startSpan := p.tok.Span
	p.assertAndNext(TOK_FN)

	p.assert(TOK_IDENT)
	name := p.tok.Value
	p.next()

	p.assertAndNext(TOK_LPAREN)

	var params []*ast.FuncParam
	if !p.got(TOK_RPAREN) {
		params = p.parseParamList()
	}

	p.assertAndNext(TOK_RPAREN)

	var returnType typing.DataType = typing.PrimUnit
	if p.got(TOK_ARROW) {
		p.next()
		returnType = p.parseTypeLabel()
	}

	body := p.parseBlock()

	return &ast.FuncDef{
		ASTBase:    ast.NewASTBaseOver(startSpan, body.Span()),
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		Public:     public,
	}
}

// param_list = param (',' param)*
// param = 'IDENT' ':' type_label
func (p *Parser) parseParamList() []*ast.FuncParam {
	var params []*ast.FuncParam

	for {
		p.assert(TOK_IDENT)
		name := p.tok.Value

		p.want(TOK_COLON)
		p.next()

		params = append(params, &ast.FuncParam{Name: name, Type: p.parseTypeLabel()})

		if !p.got(TOK_COMMA) {
			return params
		}

		p.next()
	}
}

// var_decl = 'let' 'IDENT' ':' type_label '=' expr ';'
func (p *Parser) parseVarDecl(public bool) *ast.VarDecl {
	startSpan := p.tok.Span
	p.assertAndNext(TOK_LET)

	p.assert(TOK_IDENT)
	name := p.tok.Value

	p.want(TOK_COLON)
	p.next()

	typ := p.parseTypeLabel()

	p.assertAndNext(TOK_ASSIGN)

	init := p.parseExpr()

	endSpan := p.tok.Span
	p.assertAndNext(TOK_SEMI)

	return &ast.VarDecl{
		ASTBase: ast.NewASTBaseOver(startSpan, endSpan),
		Name:    name,
		Type:    typ,
		Init:    init,
		Public:  public,
	}
}

// type_label = 'i32' | 'i64' | 'f64' | 'bool' | 'string' | 'unit'
func (p *Parser) parseTypeLabel() typing.DataType {
	var typ typing.DataType

	switch p.tok.Kind {
	case TOK_I32:
		typ = typing.PrimI32
	case TOK_I64:
		typ = typing.PrimI64
	case TOK_F64:
		typ = typing.PrimF64
	case TOK_BOOL:
		typ = typing.PrimBool
	case TOK_STRING:
		typ = typing.PrimString
	case TOK_UNIT:
		typ = typing.PrimUnit
	default:
		p.rejectWithMsg("expected a type label not %s", repr(p.tok))
	}

	p.next()
	return typ
}
