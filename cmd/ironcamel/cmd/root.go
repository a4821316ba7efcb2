package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironcamel-lang/ironcamel/internal/diag"
	"github.com/ironcamel-lang/ironcamel/internal/interp"
	"github.com/ironcamel-lang/ironcamel/internal/lexer"
	"github.com/ironcamel-lang/ironcamel/internal/parser"
)

// Exit codes (SPEC_FULL.md §2.1): 0 clean Terminated, 1 fatal interpreter
// error, 2 CLI usage error.
const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

var (
	runPath     string
	compilePath string
	includes    []string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:           "ironcamel",
	Short:         "Ironcamel interpreter",
	Long:          "ironcamel tokenizes, parses, and evaluates a statically-scoped, purely functional expression language.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.Flags().StringVar(&runPath, "run", "", "run the named source file")
	rootCmd.Flags().StringVar(&compilePath, "compile", "", "compile the named source file (external backend)")
	rootCmd.Flags().StringArrayVar(&includes, "include", nil, "additional source file to prepend, repeatable")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace stage transitions to stderr")
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if _, ok := os.LookupEnv("IRONCAMEL_LOG"); ok && !rootCmd.Flags().Changed("verbose") {
		verbose = true
	}
	if err := rootCmd.Execute(); err != nil {
		if code, ok := err.(exitCode); ok {
			return int(code)
		}
		// Errors not raised by runRoot come from Cobra's flag parsing.
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	return exitOK
}

// exitCode lets RunE communicate a specific process exit status up through
// Cobra's plain error return.
type exitCode int

func (c exitCode) Error() string { return "" }

func runRoot(_ *cobra.Command, _ []string) error {
	if runPath != "" && compilePath != "" {
		fmt.Fprintln(os.Stderr, "Error: --run and --compile are mutually exclusive")
		return exitCode(exitUsage)
	}
	if runPath == "" && compilePath == "" {
		fmt.Fprintln(os.Stderr, "Error: one of --run or --compile is required")
		return exitCode(exitUsage)
	}
	if compilePath != "" {
		fmt.Fprintln(os.Stderr, "Error: compile backend not implemented in this build")
		return exitCode(exitFatal)
	}
	return runFile(runPath, includes)
}

func runFile(path string, includes []string) error {
	trace("loading %s (%d include(s))", path, len(includes))

	var parts []string
	for _, inc := range includes {
		content, err := os.ReadFile(inc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: reading %s: %v\n", inc, err)
			return exitCode(exitFatal)
		}
		parts = append(parts, string(content))
	}
	main, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading %s: %v\n", path, err)
		return exitCode(exitFatal)
	}
	parts = append(parts, string(main))
	source := strings.Join(parts, "\n")

	trace("Initializing")
	toks, err := lexer.Tokenize(source)
	if err != nil {
		return reportLexError(err, source, path)
	}
	prog, err := parser.ParseProgram(toks)
	if err != nil {
		return reportParseError(err, source, path)
	}

	in := interp.New(os.Stdin, os.Stdout)
	defer in.Close()

	trace("Running")
	if err := in.Run(prog); err != nil {
		if de, ok := err.(*diag.Error); ok {
			fmt.Fprintln(os.Stderr, de.Format(source, path))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return exitCode(exitFatal)
	}
	trace("Terminated")
	return nil
}

func trace(format string, args ...any) {
	if verbose {
		log.SetFlags(log.Ltime)
		log.SetOutput(os.Stderr)
		log.Printf(format, args...)
	}
}

func reportLexError(err error, source, path string) error {
	if le, ok := err.(*lexer.Error); ok {
		d := diag.New(diag.Lexical, le.Pos, "%s", le.Msg)
		fmt.Fprintln(os.Stderr, d.Format(source, path))
		return exitCode(exitFatal)
	}
	fmt.Fprintln(os.Stderr, err)
	return exitCode(exitFatal)
}

func reportParseError(err error, source, path string) error {
	if pe, ok := err.(*parser.Error); ok {
		d := diag.New(diag.Syntax, pe.Pos, "%s", pe.Error())
		fmt.Fprintln(os.Stderr, d.Format(source, path))
		return exitCode(exitFatal)
	}
	fmt.Fprintln(os.Stderr, err)
	return exitCode(exitFatal)
}
