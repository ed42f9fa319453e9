package cmd

import (
	"os"
	"path/filepath"

	"lumen/report"

	"github.com/pelletier/go-toml"
)

// profileFileName is the name of the optional build profile file looked up
// next to the compiled source file.
const profileFileName = "lumen.toml"

// BuildProfile represents the build configuration of a compilation.  Values
// given on the command line override values read from the profile file.
type BuildProfile struct {
	// Name is the name of the produced executable.  Defaults to the name of
	// the main module.
	Name string `toml:"name"`

	// OutputDir is the directory build artifacts are written to, relative to
	// the source file's directory unless absolute.
	OutputDir string `toml:"output-dir"`

	// SaveIR indicates whether the textual IR files are kept after object
	// emission.
	SaveIR bool `toml:"save-ir"`
}

// LoadProfile loads the build profile for the given source file.  A missing
// profile file yields the default profile; a malformed one is a fatal error.
func LoadProfile(sourcePath string) *BuildProfile {
	profile := &BuildProfile{}

	path := filepath.Join(filepath.Dir(sourcePath), profileFileName)
	buff, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			report.ReportFatal("unable to read build profile at `%s`: %s", path, err)
		}
	} else if err := toml.Unmarshal(buff, profile); err != nil {
		report.ReportFatal("error parsing build profile at `%s`: %s", path, err)
	}

	if profile.OutputDir == "" {
		profile.OutputDir = "build"
	}

	if !filepath.IsAbs(profile.OutputDir) {
		profile.OutputDir = filepath.Join(filepath.Dir(sourcePath), profile.OutputDir)
	}

	return profile
}
