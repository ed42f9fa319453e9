// Package ast defines the syntax tree the parser produces and the generate
// package lowers.  Nodes are plain structs; every node embeds ASTBase so the
// source location of any construct is available for diagnostics.
package ast

import "lumen/report"

// ASTNode is the interface implemented by every node of the syntax tree.
type ASTNode interface {
	// Span returns the source text span the node was parsed from.
	Span() *report.TextSpan
}

// ASTBase carries the source span of a node.  It is embedded by every
// concrete node type.
type ASTBase struct {
	span *report.TextSpan
}

// NewASTBaseOn creates a base locating a node at a single span, typically the
// span of one token.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

// NewASTBaseOver creates a base locating a node over everything between the
// start of one span and the end of another.
func NewASTBaseOver(start, end *report.TextSpan) ASTBase {
	return ASTBase{span: report.NewSpanOver(start, end)}
}

func (ab ASTBase) Span() *report.TextSpan {
	return ab.span
}
