package generate

import (
	"lumen/report"
	"lumen/typing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/value"
)

// Symbol represents a named, typed IR value visible inside a unit's symbol
// table.  A symbol is created on definition or on import and never mutated
// after insertion: linkage changes happen on the underlying IR value, not on
// the record.
type Symbol struct {
	// The name the symbol is filed under.  This is a bare local name for
	// definitions or a possibly qualified `alias.base` name for imports.  The
	// IR-level name of an imported symbol remains the unqualified base.
	Name string

	// The IR value backing the symbol: the definition site for a local symbol
	// or an external declaration for an imported one.
	Value value.Value

	// The semantic type of the symbol.
	Type typing.DataType

	// Whether the symbol is a function as opposed to a variable.  Public-ness
	// is encoded only on the IR value's linkage: the record carries no
	// visibility flag.
	IsFunc bool
}

// ModuleUnit is the per-module compilation state: one LLVM module, the unit's
// symbol table, and the main-ness flag.  Units are identified by pointer and
// live until the generator is torn down.
type ModuleUnit struct {
	// The globally unique name of the module.
	Name string

	// The backing LLVM module.
	Mod *ir.Module

	// The unit's symbols in insertion order.
	Symbols []*Symbol

	// Whether this unit provides the program entry point.  At most one unit
	// per program has this set.
	IsMain bool

	// importedDecls records the IR names of external declarations introduced
	// into this unit by the import resolver.  It distinguishes declarations
	// that may be shared between aliases from identically named local
	// definitions.
	importedDecls map[string]struct{}
}

// AddSymbol appends a symbol to the unit's symbol table.  Duplicate checking
// is the caller's responsibility (via pre-lookup).
func (u *ModuleUnit) AddSymbol(sym *Symbol) {
	u.Symbols = append(u.Symbols, sym)
}

// FindSymbol looks up a symbol by its filed name.  It returns nil if no such
// symbol exists.
func (u *ModuleUnit) FindSymbol(name string) *Symbol {
	for _, sym := range u.Symbols {
		if sym.Name == name {
			return sym
		}
	}

	return nil
}

// FindFunc looks up a function by IR name in the unit's backing LLVM module.
func (u *ModuleUnit) FindFunc(name string) *ir.Func {
	for _, f := range u.Mod.Funcs {
		if f.Name() == name {
			return f
		}
	}

	return nil
}

// FindGlobal looks up a global variable by IR name in the unit's backing LLVM
// module.
func (u *ModuleUnit) FindGlobal(name string) *ir.Global {
	for _, glob := range u.Mod.Globals {
		if glob.Name() == name {
			return glob
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// CreateUnit appends a new unit with the given module name.  Module names must
// be unique within a program: a duplicate name is reported as an error and no
// unit is created.
func (g *Generator) CreateUnit(name string, span *report.TextSpan) (*ModuleUnit, bool) {
	if g.FindUnit(name) != nil {
		report.ReportCompileError(g.path, span, "multiple modules with name `%s` declared", name)
		return nil, false
	}

	unit := &ModuleUnit{
		Name:          name,
		Mod:           ir.NewModule(),
		importedDecls: make(map[string]struct{}),
	}

	g.units = append(g.units, unit)
	return unit, true
}

// FindUnit looks up a unit by module name.  The registry is small so a linear
// scan is fine.
func (g *Generator) FindUnit(name string) *ModuleUnit {
	for _, unit := range g.units {
		if unit.Name == name {
			return unit
		}
	}

	return nil
}

// Units returns the units of the program in creation order.
func (g *Generator) Units() []*ModuleUnit {
	return g.units
}

// SetCurrent sets the active unit for subsequent lowering.
func (g *Generator) SetCurrent(unit *ModuleUnit) {
	g.current = unit
}

// FindSymbolWithModuleSupport performs unified name resolution over the
// program's units.  The current unit's symbol table is searched first by the
// literal name; failing that, the other units are scanned in insertion order
// for a matching function with external linkage.  The fallback supports
// whole-program diagnostics only: it never materializes a cross-unit
// reference, so a caller that wants to emit the symbol in the current unit
// still has to request an explicit `@use`.
func (g *Generator) FindSymbolWithModuleSupport(name string) (*Symbol, *ModuleUnit) {
	if g.current != nil {
		if sym := g.current.FindSymbol(name); sym != nil {
			return sym, g.current
		}
	}

	for _, unit := range g.units {
		if unit == g.current {
			continue
		}

		if sym := unit.FindSymbol(name); sym != nil && sym.IsFunc {
			if f := unit.FindFunc(sym.Name); f != nil && f.Linkage == enum.LinkageExternal {
				return sym, unit
			}
		}
	}

	return nil, nil
}

// MainUnit returns the unit flagged as providing the program entry point, or
// nil if no unit is.
func (g *Generator) MainUnit() *ModuleUnit {
	for _, unit := range g.units {
		if unit.IsMain {
			return unit
		}
	}

	return nil
}
