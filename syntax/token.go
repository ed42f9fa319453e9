package syntax

import "lumen/report"

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The string value of the token.  This may not directly correspond to the
	// source text: eg. the value of a string token has the leading quotes
	// trimmed off for convenience.
	Value string

	// The text span over which the token exists.
	Span *report.TextSpan
}

// Enumeration of token kinds.
const (
	TOK_MODULE = iota

	TOK_FN
	TOK_LET
	TOK_PRIV

	TOK_IF
	TOK_ELSE
	TOK_WHILE
	TOK_BREAK
	TOK_CONTINUE
	TOK_RETURN

	TOK_USE
	TOK_AS

	TOK_I32
	TOK_I64
	TOK_F64
	TOK_BOOL
	TOK_STRING
	TOK_UNIT

	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_DIV
	TOK_MOD

	TOK_EQ
	TOK_NEQ
	TOK_LT
	TOK_GT
	TOK_LTEQ
	TOK_GTEQ

	TOK_NOT
	TOK_LAND
	TOK_LOR

	TOK_ASSIGN

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACE
	TOK_RBRACE
	TOK_COMMA
	TOK_DOT
	TOK_SEMI
	TOK_COLON
	TOK_ARROW
	TOK_ATSIGN

	TOK_IDENT
	TOK_INTLIT
	TOK_FLOATLIT
	TOK_BOOLLIT
	TOK_STRINGLIT

	TOK_EOF
)
