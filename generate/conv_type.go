package generate

import (
	"lumen/typing"

	"github.com/llir/llvm/ir/types"
)

// convType converts a semantic type to its LLVM representation.
func (g *Generator) convType(typ typing.DataType) types.Type {
	switch v := typ.(type) {
	case typing.PrimType:
		return convPrimType(v)
	case *typing.FuncType:
		params := make([]types.Type, len(v.Args))
		for i, arg := range v.Args {
			params[i] = convPrimType(arg.(typing.PrimType))
		}

		return types.NewFunc(g.convType(v.ReturnType), params...)
	}

	// unreachable
	return nil
}

// convPrimType converts a primitive type to its LLVM representation.
func convPrimType(pt typing.PrimType) types.Type {
	switch pt {
	case typing.PrimI32:
		return types.I32
	case typing.PrimI64:
		return types.I64
	case typing.PrimF64:
		return types.Double
	case typing.PrimBool:
		return types.I1
	case typing.PrimString:
		// Strings are interned byte arrays referenced by pointer.
		return types.I8Ptr
	default:
		return types.Void
	}
}
