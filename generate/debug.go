package generate

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// DumpModuleInfo writes a human readable description of every compilation
// unit to w: the module name, whether it is the main module, and its symbols
// in insertion order.  This output is diagnostic only and not part of the
// compilation contract.
func (g *Generator) DumpModuleInfo(w io.Writer) {
	for _, unit := range g.units {
		header := unit.Name
		if unit.IsMain {
			header += " (main)"
		}

		fmt.Fprintf(w, "%s\n", pterm.FgLightCyan.Sprint(header))

		for _, sym := range unit.Symbols {
			kind := "var"
			if sym.IsFunc {
				kind = "func"
			}

			fmt.Fprintf(w, "  %-5s %s\n", kind, sym.Name)
		}
	}
}
