// Package generate converts the Lumen AST into LLVM IR.  Each module
// declaration is converted into its own compilation unit backed by one LLVM
// module; `@use` directives are resolved by materializing external
// declarations for the public symbols of the referenced unit.
package generate

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
)

// LLVMIdent is the type used for local LLVM identifiers.  It stores the value
// as well as whether or not the value has to be loaded explicitly to be used.
type LLVMIdent struct {
	Val     value.Value
	Mutable bool
}

// Generator is responsible for converting a Lumen program into LLVM IR.  It
// owns the module compilation units of the program and the state of the
// function body currently being lowered.  A generator is single-threaded: it
// is owned by one driver goroutine from construction to teardown.
type Generator struct {
	// path is the path of the source file being compiled.  It is used for
	// diagnostics.
	path string

	// units is the ordered collection of module compilation units.  Units
	// iterate in creation order which equals the source order of module
	// declarations.
	units []*ModuleUnit

	// current is the unit lowering is currently targeting.  Nil outside of
	// lowering.
	current *ModuleUnit

	// enclosingFunc is the function enclosing the block being compiled.
	enclosingFunc *ir.Func

	// block is the basic block instructions are currently appended to.
	block *ir.Block

	// entryWrap indicates that the enclosing function is the program entry
	// point declared `-> unit` and lowered returning an i32 status.
	entryWrap bool

	// localScopes is the stack of local scopes used during generation.
	localScopes []map[string]LLVMIdent

	// loopBreaks and loopContinues are the stacks of branch targets for
	// `break` and `continue` inside enclosing loops.
	loopBreaks    []*ir.Block
	loopContinues []*ir.Block

	// globalCounter is a counter used to generate anonymous globals such as
	// those for interned strings.
	globalCounter int
}

// NewGenerator creates a new generator for the source file at the given path.
func NewGenerator(path string) *Generator {
	return &Generator{path: path}
}

// -----------------------------------------------------------------------------

// pushScope pushes a new local scope onto the scope stack.
func (g *Generator) pushScope() {
	g.localScopes = append(g.localScopes, make(map[string]LLVMIdent))
}

// popScope pops a local scope off of the local scope stack.
func (g *Generator) popScope() {
	g.localScopes = g.localScopes[:len(g.localScopes)-1]
}

// defineLocal defines a local variable in the innermost scope.
func (g *Generator) defineLocal(name string, val value.Value, mutable bool) {
	g.localScopes[len(g.localScopes)-1][name] = LLVMIdent{val, mutable}
}

// lookupLocal looks up a local value.  The second return indicates whether the
// name was found at all.
func (g *Generator) lookupLocal(name string) (LLVMIdent, bool) {
	// Iterate through scopes in reverse order to implement shadowing.
	for i := len(g.localScopes) - 1; i >= 0; i-- {
		if ident, ok := g.localScopes[i][name]; ok {
			return ident, true
		}
	}

	return LLVMIdent{}, false
}

// -----------------------------------------------------------------------------

// appendBlock adds a new basic block to the current function.  It does *not*
// set the current block to this new block.
func (g *Generator) appendBlock() *ir.Block {
	return g.enclosingFunc.NewBlock(fmt.Sprintf("bb%d", len(g.enclosingFunc.Blocks)))
}

// pushLoop pushes a new pair of loop branch targets onto the loop stacks.
func (g *Generator) pushLoop(breakTarget, continueTarget *ir.Block) {
	g.loopBreaks = append(g.loopBreaks, breakTarget)
	g.loopContinues = append(g.loopContinues, continueTarget)
}

// popLoop pops the innermost pair of loop branch targets.
func (g *Generator) popLoop() {
	g.loopBreaks = g.loopBreaks[:len(g.loopBreaks)-1]
	g.loopContinues = g.loopContinues[:len(g.loopContinues)-1]
}
