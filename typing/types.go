// Package typing defines the semantic types of the Lumen language.  These are
// the type handles carried on symbols and AST nodes; conversion to LLVM types
// happens in the generate package.
package typing

import "strings"

// DataType is the interface implemented by all Lumen data types.
type DataType interface {
	// Equiv returns whether two types are semantically equivalent.
	Equiv(other DataType) bool

	// Repr returns the string representation of the type for diagnostics.
	Repr() string
}

// -----------------------------------------------------------------------------

// PrimType represents a primitive Lumen type.
type PrimType int

// Enumeration of primitive types.
const (
	PrimI32 PrimType = iota
	PrimI64
	PrimF64
	PrimBool
	PrimString
	PrimUnit
)

func (pt PrimType) Equiv(other DataType) bool {
	if opt, ok := other.(PrimType); ok {
		return pt == opt
	}

	return false
}

func (pt PrimType) Repr() string {
	switch pt {
	case PrimI32:
		return "i32"
	case PrimI64:
		return "i64"
	case PrimF64:
		return "f64"
	case PrimBool:
		return "bool"
	case PrimString:
		return "string"
	default:
		return "unit"
	}
}

// IsUnit returns whether a type is the unit type.
func IsUnit(dt DataType) bool {
	return dt.Equiv(PrimUnit)
}

// IsInteger returns whether a type is an integral primitive.
func IsInteger(dt DataType) bool {
	return dt.Equiv(PrimI32) || dt.Equiv(PrimI64)
}

// -----------------------------------------------------------------------------

// FuncType represents a Lumen function type.
type FuncType struct {
	// The types of the function's arguments.
	Args []DataType

	// The return type of the function.
	ReturnType DataType
}

func (ft *FuncType) Equiv(other DataType) bool {
	oft, ok := other.(*FuncType)
	if !ok || len(ft.Args) != len(oft.Args) {
		return false
	}

	for i, arg := range ft.Args {
		if !arg.Equiv(oft.Args[i]) {
			return false
		}
	}

	return ft.ReturnType.Equiv(oft.ReturnType)
}

func (ft *FuncType) Repr() string {
	sb := strings.Builder{}
	sb.WriteRune('(')

	for i, arg := range ft.Args {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(arg.Repr())
	}

	sb.WriteString(") -> ")
	sb.WriteString(ft.ReturnType.Repr())
	return sb.String()
}
