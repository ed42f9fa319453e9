package cmd

import (
	"debug/elf"
	"fmt"
	"os"

	"github.com/pterm/pterm"
)

// maxDumpedSymbols bounds how many symbols the object dump prints per file.
const maxDumpedSymbols = 16

// dumpObjectFiles prints a short description of each produced object file:
// its size, its ELF file type, and its first few symbols.  The files are
// inspected directly rather than by shelling out to external tools.
func dumpObjectFiles(objFilePaths []string) {
	for _, path := range objFilePaths {
		info, err := os.Stat(path)
		if err != nil {
			fmt.Printf("%s: %s\n", path, err)
			continue
		}

		fmt.Printf("%s (%d bytes)\n", pterm.FgLightCyan.Sprint(path), info.Size())

		file, err := elf.Open(path)
		if err != nil {
			fmt.Println("  not an ELF object")
			continue
		}

		fmt.Printf("  type: %s\n", file.Type)

		syms, err := file.Symbols()
		if err != nil {
			fmt.Printf("  no symbol table: %s\n", err)
			file.Close()
			continue
		}

		for i, sym := range syms {
			if i == maxDumpedSymbols {
				fmt.Printf("  ... %d more\n", len(syms)-maxDumpedSymbols)
				break
			}

			if sym.Name != "" {
				fmt.Printf("  symbol: %s\n", sym.Name)
			}
		}

		file.Close()
	}
}
