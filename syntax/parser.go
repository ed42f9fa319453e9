package syntax

import (
	"bufio"
	"fmt"

	"lumen/ast"
	"lumen/report"
)

// Parser is the parser for a Lumen source file.  It is a recursive descent
// parser: it moves over the file token by token and decides what to parse
// based on the token it is currently positioned on and its context (implicit
// from the callstack of parsing functions).  All parsing functions assume that
// they begin with the parser centered on the first token of their production
// and must consume all tokens (including the last) of their production,
// leaving the parser on the next token.  Parse errors are raised as panics and
// recovered at the top level by the report package.
type Parser struct {
	// path is the path to the source file being parsed.
	path string

	// lexer is the Lexer this parser is using to lex the source file.
	lexer *Lexer

	// tok is the current token the parser is positioned on.
	tok *Token
}

// ParseFile parses a whole source file into a program AST.  The returned flag
// indicates whether parsing succeeded: when it is false, a diagnostic has
// already been reported.
func ParseFile(path string, r *bufio.Reader) (prog *ast.Program, ok bool) {
	defer report.CatchErrors(path)

	p := &Parser{path: path, lexer: NewLexer(r)}
	p.next()

	prog = p.parseProgram()
	return prog, true
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() {
	tok, err := p.lexer.NextToken()
	if err != nil {
		panic(err)
	}

	p.tok = tok
}

// got returns true if the parser is on a token of a given kind.
func (p *Parser) got(kind int) bool {
	return p.tok.Kind == kind
}

// assert checks that the parser is on a token of a given kind and rejects the
// token if not.
func (p *Parser) assert(kind int) {
	if !p.got(kind) {
		p.reject()
	}
}

// assertAndNext performs an assert operation and moves the parser forward.
func (p *Parser) assertAndNext(kind int) {
	p.assert(kind)
	p.next()
}

// want moves the parser forward one token and then asserts that the token the
// parser has moved to is of a given kind.
func (p *Parser) want(kind int) {
	p.next()
	p.assert(kind)
}

// -----------------------------------------------------------------------------

// reject raises an unexpected token error on the current token.
func (p *Parser) reject() {
	if p.got(TOK_EOF) {
		panic(report.Raise(p.tok.Span, "unexpected end of file"))
	}

	panic(report.Raise(p.tok.Span, "unexpected token: `%s`", p.tok.Value))
}

// rejectWithMsg rejects the current token with a specific message.
func (p *Parser) rejectWithMsg(msg string, a ...interface{}) {
	panic(report.Raise(p.tok.Span, msg, a...))
}

// repr returns a printable representation of a token for error messages.
func repr(tok *Token) string {
	if tok.Kind == TOK_EOF {
		return "end of file"
	}

	return fmt.Sprintf("`%s`", tok.Value)
}
