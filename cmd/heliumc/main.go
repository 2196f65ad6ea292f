package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lhaig/helium/internal/compiler"
	"github.com/lhaig/helium/internal/config"
)

const usage = `heliumc - The Helium language front end

Usage:
  heliumc check [--config <file>] <file.he>    Parse and type-check only
  heliumc parse [--config <file>] <file.he>    Print the syntax tree without type checking
  heliumc types [--config <file>] <file.he>    Print the syntax tree annotated with types
  heliumc lint  [--config <file>] <file.he>    Run lint checks for style/best practices
  heliumc repl  [--config <file>]              Start an interactive session

Options:
  --config <file>   Read settings from <file> instead of ./helium.yaml

Examples:
  heliumc check hello.he              Check for errors
  heliumc types hello.he              Show the type of every expression
  heliumc repl --config dev.yaml      Start a session with custom settings
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "check":
		os.Exit(handleCheck(os.Args[2:], os.Stdout, os.Stderr))
	case "parse":
		os.Exit(handleParse(os.Args[2:], os.Stdout, os.Stderr))
	case "types":
		os.Exit(handleTypes(os.Args[2:], os.Stdout, os.Stderr))
	case "lint":
		os.Exit(handleLint(os.Args[2:], os.Stdout, os.Stderr))
	case "repl":
		os.Exit(handleRepl(os.Args[2:]))
	case "help", "--help", "-h":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// options are the command line arguments shared by every command
type options struct {
	filePath   string
	configPath string
}

func parseOptions(args []string, needFile bool) (*options, error) {
	opts := &options{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--config":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--config requires a file")
			}
			i++
			opts.configPath = args[i]
		case strings.HasPrefix(arg, "--config="):
			opts.configPath = strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "-"):
			return nil, fmt.Errorf("unknown option: %s", arg)
		case opts.filePath != "" || !needFile:
			return nil, fmt.Errorf("unexpected argument: %s", arg)
		default:
			opts.filePath = arg
		}
	}

	if needFile && opts.filePath == "" {
		return nil, fmt.Errorf("no input file specified")
	}
	return opts, nil
}

// setup parses the arguments and loads the configuration they name
func setup(args []string, needFile bool, stderr io.Writer) (*options, *config.Config, bool) {
	opts, err := parseOptions(args, needFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return nil, nil, false
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return nil, nil, false
	}
	return opts, cfg, true
}

// compileFile compiles the input file and reports errors to stderr. It
// returns nil when compilation failed.
func compileFile(path string, stderr io.Writer) (res *compiler.Result) {
	defer func() {
		if p := recover(); p != nil {
			fmt.Fprintf(stderr, "internal error: %v\n", p)
			res = nil
		}
	}()

	res = compiler.CompileFile(path)
	if res.Failed() {
		fmt.Fprint(stderr, res.Diagnostics.GetErrors())
		return nil
	}
	return res
}

func printWarnings(res *compiler.Result, stdout io.Writer) int {
	warnings := res.Lint()
	fmt.Fprint(stdout, warnings.Format())
	return warnings.WarningCount()
}

func handleCheck(args []string, stdout, stderr io.Writer) int {
	opts, cfg, ok := setup(args, true, stderr)
	if !ok {
		return 1
	}

	res := compileFile(opts.filePath, stderr)
	if res == nil {
		return 1
	}
	if cfg.Lint {
		printWarnings(res, stdout)
	}

	fmt.Fprintln(stdout, "No errors found.")
	return 0
}

func handleParse(args []string, stdout, stderr io.Writer) int {
	opts, _, ok := setup(args, true, stderr)
	if !ok {
		return 1
	}

	res := compiler.ParseFile(opts.filePath)
	if res.Failed() {
		fmt.Fprint(stderr, res.Diagnostics.GetErrors())
		return 1
	}
	if len(res.Tree) > 0 {
		fmt.Fprintln(stdout, res.Print(false))
	}
	return 0
}

func handleTypes(args []string, stdout, stderr io.Writer) int {
	opts, cfg, ok := setup(args, true, stderr)
	if !ok {
		return 1
	}

	res := compileFile(opts.filePath, stderr)
	if res == nil {
		return 1
	}
	if len(res.Tree) > 0 {
		fmt.Fprintln(stdout, res.Print(true))
	}
	if cfg.Lint {
		printWarnings(res, stdout)
	}
	return 0
}

func handleLint(args []string, stdout, stderr io.Writer) int {
	opts, _, ok := setup(args, true, stderr)
	if !ok {
		return 1
	}

	res := compiler.ParseFile(opts.filePath)
	if res.Failed() {
		fmt.Fprint(stderr, res.Diagnostics.GetErrors())
		return 1
	}

	count := printWarnings(res, stdout)
	if count == 0 {
		fmt.Fprintln(stdout, "No lint warnings.")
		return 0
	}
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%d warning(s) found.\n", count)
	return 0
}
