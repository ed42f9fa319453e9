// Package cmd is the top-level "driver" package for the Lumen compiler: it
// parses command-line arguments, manages compiler state, and runs the phases
// of the compiler.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"lumen/report"

	"github.com/spf13/cobra"
)

// errCompileFailed signals a failed compilation whose diagnostics have already
// been displayed.
var errCompileFailed = errors.New("compilation failed")

var (
	flagName         string
	flagOut          string
	flagSave         bool
	flagClean        bool
	flagVerbose      bool
	flagDebugModules bool
	flagDebugObjects bool
)

var rootCmd = &cobra.Command{
	Use:           "lumen [flags] <source-file>",
	Short:         "Lumen language compiler",
	Long:          "Lumen compiles a multi-module source file to a native executable through LLVM.",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logLevel := report.LogLevelWarn
		if flagVerbose {
			logLevel = report.LogLevelVerbose
		}
		report.InitReporter(logLevel)

		profile := LoadProfile(args[0])
		if flagName != "" {
			profile.Name = flagName
		}
		if flagOut != "" {
			profile.OutputDir = flagOut
		}
		profile.SaveIR = profile.SaveIR || flagSave

		c := NewCompiler(args[0], profile)

		if flagClean {
			c.Clean()
			return nil
		}

		ok := c.Analyze()

		if flagDebugModules {
			c.Generator().DumpModuleInfo(os.Stdout)
		}

		if !ok {
			return errCompileFailed
		}

		objFilePaths := c.Generate()

		if flagDebugObjects {
			dumpObjectFiles(objFilePaths)
		}

		if report.AnyErrors() {
			return errCompileFailed
		}

		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&flagName, "name", "", "name of the produced executable (defaults to the main module's name)")
	rootCmd.Flags().StringVar(&flagOut, "out", "", "directory build artifacts are written to")
	rootCmd.Flags().BoolVar(&flagSave, "save", false, "keep the textual IR files after object emission")
	rootCmd.Flags().BoolVar(&flagClean, "clean", false, "remove build artifacts and exit")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "show build progress messages")
	rootCmd.Flags().BoolVar(&flagDebugModules, "debug-modules", false, "dump per-module symbol tables")
	rootCmd.Flags().BoolVar(&flagDebugObjects, "debug-objects", false, "dump produced object files")
}

// Execute runs the compiler driver and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errCompileFailed) {
			fmt.Fprintln(os.Stderr, err)
		}

		return 1
	}

	return 0
}
