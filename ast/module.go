package ast

// Program is the root AST node: an ordered sequence of module declarations as
// they appear in the source file.
type Program struct {
	ASTBase

	// The path to the source file the program was parsed from.
	Path string

	// The module declarations in source order.
	Modules []*ModuleDecl
}

// ModuleDecl represents a `module NAME { ... }` declaration.
type ModuleDecl struct {
	ASTBase

	// The declared name of the module.
	Name string

	// The items in the module body in source order: use directives, function
	// definitions, and module-level variable declarations.
	Items []ASTNode
}

// UseDirective represents a `@use NAME (as ALIAS)?;` directive.
type UseDirective struct {
	ASTBase

	// The name of the referenced module.
	ModuleName string

	// The alias the referenced module's symbols are imported under.  Empty if
	// no alias was given.
	Alias string
}
