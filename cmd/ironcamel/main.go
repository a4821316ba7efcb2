// Command ironcamel is the flat-flag CLI front end: --run executes a
// source file (with optional --include files prepended), --compile selects
// the external code-generation backend (stubbed), and --verbose narrates
// stage transitions to stderr (SPEC_FULL.md §2.1).
package main

import (
	"os"

	"github.com/ironcamel-lang/ironcamel/cmd/ironcamel/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
