package cmd

import (
	"bufio"
	"os"
	"os/exec"
	"path/filepath"

	"lumen/generate"
	"lumen/report"
	"lumen/syntax"
)

// Compiler represents the overall state of one compilation: the source file
// being compiled, the active build profile, and the code generator.
type Compiler struct {
	// sourcePath is the path to the source file of compilation.
	sourcePath string

	// profile is the active build profile of the compiler.
	profile *BuildProfile

	// gen is the code generator owning the program's compilation units.
	gen *generate.Generator
}

// NewCompiler creates a new compiler for the given source file and profile.
func NewCompiler(sourcePath string, profile *BuildProfile) *Compiler {
	return &Compiler{
		sourcePath: sourcePath,
		profile:    profile,
		gen:        generate.NewGenerator(sourcePath),
	}
}

// Analyze runs the front-end of the compiler: the source file is lexed,
// parsed, and lowered into per-module LLVM IR.  It returns whether the
// front-end produced no errors.
func (c *Compiler) Analyze() bool {
	file, err := os.Open(c.sourcePath)
	if err != nil {
		report.ReportFatal("unable to open source file `%s`: %s", c.sourcePath, err)
		return false
	}
	defer file.Close()

	prog, ok := syntax.ParseFile(c.sourcePath, bufio.NewReader(file))
	if !ok || report.AnyErrors() {
		return false
	}

	return c.gen.Lower(prog)
}

// Generator exposes the compiler's code generator for diagnostics.
func (c *Compiler) Generator() *generate.Generator {
	return c.gen
}

// Generate runs the back-end of the compiler: every unit is written out as
// textual IR, compiled to an object file, and the objects are linked into the
// final executable.  The Analyze phase must have succeeded before this.
func (c *Compiler) Generate() []string {
	if err := os.MkdirAll(c.profile.OutputDir, 0o755); err != nil {
		report.ReportFatal("failed to create output directory: %s", err)
	}

	// Object emission and linking run through clang.  Paths are passed as
	// separate argv entries: no shell ever interpolates them.
	clangPath, err := exec.LookPath("clang")
	if err != nil {
		report.ReportFatal("unable to locate `clang`: %s", err)
	}

	var llFilePaths, objFilePaths []string
	for _, unit := range c.gen.Units() {
		llPath := filepath.Join(c.profile.OutputDir, unit.Name+".ll")
		if err := os.WriteFile(llPath, []byte(unit.Mod.String()), 0o644); err != nil {
			report.ReportFatal("failed to write IR for module `%s`: %s", unit.Name, err)
		}
		llFilePaths = append(llFilePaths, llPath)

		objPath := filepath.Join(c.profile.OutputDir, unit.Name+".o")
		compile := exec.Command(clangPath, "-c", "-Wno-override-module", "-o", objPath, llPath)
		if output, err := compile.CombinedOutput(); err != nil {
			report.ReportFatal("failed to compile module `%s`:\n%s", unit.Name, string(output))
		}
		objFilePaths = append(objFilePaths, objPath)

		report.ReportBuildInfo("compiled", "module `%s`", unit.Name)
	}

	// The final artifact is named after the main unit unless the profile or
	// the command line overrides it.
	mainUnit := c.gen.MainUnit()
	if mainUnit == nil {
		report.ReportFatal("program has no `main` function")
	}

	targetName := c.profile.Name
	if targetName == "" {
		targetName = mainUnit.Name
	}

	targetPath := filepath.Join(c.profile.OutputDir, targetName)
	linkArgs := append([]string{"-o", targetPath}, objFilePaths...)
	link := exec.Command(clangPath, linkArgs...)
	if output, err := link.CombinedOutput(); err != nil {
		report.ReportFatal("failed to link program:\n%s", string(output))
	}

	if !c.profile.SaveIR {
		for _, llPath := range llFilePaths {
			os.Remove(llPath)
		}
	}

	report.ReportBuildInfo("linked", "`%s`", targetPath)
	return objFilePaths
}

// Clean removes the build artifact directory of the compilation.
func (c *Compiler) Clean() {
	if err := os.RemoveAll(c.profile.OutputDir); err != nil {
		report.ReportFatal("failed to remove output directory: %s", err)
	}

	report.ReportBuildInfo("cleaned", "`%s`", c.profile.OutputDir)
}
