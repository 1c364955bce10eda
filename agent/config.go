package agent

import (
	"path/filepath"
	"strings"

	"github.com/linescrub/linescrub/engine"
)

// Config carries everything an Agent needs for one run. It is assembled by the CLI from flags merged over
// the HCL config file.
type Config struct {
	// InputPath is the file to redact. It must exist and be readable.
	InputPath string `json:"input_path"`

	// OutputPath is where redacted lines are written. Empty means DefaultOutputPath(InputPath).
	OutputPath string `json:"output_path"`

	// Engines is the ordered chain of engine names to run on each non-empty line. Empty means
	// engine.DefaultChain().
	Engines []string `json:"engines"`

	// Engine holds per-engine settings, mapped from the HCL config.
	Engine engine.Config `json:"-"`
}

// DefaultOutputPath derives the output file name from the input file: the input's stem plus a _redacted
// suffix, placed in the current working directory.
func DefaultOutputPath(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "_redacted.txt"
}
