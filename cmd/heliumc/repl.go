package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/lhaig/helium/internal/compiler"
	"github.com/lhaig/helium/internal/config"
)

const (
	replName = "<repl>"
	banner   = "Helium REPL\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands."
	helpText = `REPL commands:
  :help    Show this help
  :reset   Forget every declaration
  :quit    Exit the REPL
`
)

// prompter reads one line of input, as *liner.State does
type prompter interface {
	Prompt(prompt string) (string, error)
}

func handleRepl(args []string) int {
	_, cfg, ok := setup(args, false, os.Stderr)
	if !ok {
		return 1
	}

	fmt.Println(banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if path := cfg.REPL.HistoryFile; path != "" {
		if f, err := os.Open(path); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(path); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	r := &repl{
		in:      ln,
		history: ln.AppendHistory,
		out:     os.Stdout,
		errOut:  os.Stderr,
		cfg:     cfg,
		session: compiler.NewSession(replName),
	}
	r.run()
	return 0
}

// repl compiles chunks of input against one session. A chunk ends when it
// parses, or fails to parse for any reason other than reaching its end.
type repl struct {
	in      prompter
	history func(string)
	out     io.Writer
	errOut  io.Writer
	cfg     *config.Config
	session *compiler.Session
}

func (r *repl) run() {
	for {
		res, source, ok := r.readChunk()
		if !ok {
			fmt.Fprintln(r.out)
			return
		}

		trimmed := strings.TrimSpace(source)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if quit := r.command(trimmed); quit {
				return
			}
			continue
		}

		if r.history != nil {
			r.history(strings.ReplaceAll(source, "\n", " "))
		}
		r.report(res)
	}
}

// readChunk prompts until the input forms a complete chunk. Commands are
// returned uncompiled. ok is false once input is exhausted.
func (r *repl) readChunk() (res *compiler.Result, source string, ok bool) {
	var b strings.Builder

	for {
		prompt := r.cfg.REPL.Prompt
		if b.Len() > 0 {
			prompt = r.cfg.REPL.ContinuationPrompt
		}

		line, err := r.in.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return nil, "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			fmt.Fprintf(r.errOut, "Error: %s\n", err)
			return nil, "", false
		}

		if b.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return nil, line, true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		source = b.String()
		res = r.compile(source)
		if res == nil || !res.Incomplete {
			return res, source, true
		}
	}
}

// compile compiles one chunk. A crash inside the front end is reported
// and the chunk dropped, keeping the session alive.
func (r *repl) compile(source string) (res *compiler.Result) {
	defer func() {
		if p := recover(); p != nil {
			fmt.Fprintf(r.errOut, "internal error: %v\n", p)
			res = nil
		}
	}()
	return r.session.Compile(source)
}

func (r *repl) report(res *compiler.Result) {
	if res == nil {
		return
	}
	if res.Failed() {
		fmt.Fprint(r.errOut, res.Diagnostics.GetErrors())
		return
	}
	if len(res.Tree) > 0 {
		fmt.Fprintln(r.out, res.Print(r.cfg.PrintTypes))
	}
	if r.cfg.Lint {
		fmt.Fprint(r.out, res.Lint().Format())
	}
}

// command runs a REPL command and reports whether the session should end
func (r *repl) command(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q":
		return true
	case ":reset":
		r.session.Reset()
		fmt.Fprintln(r.out, "Declarations cleared.")
	case ":help":
		fmt.Fprint(r.out, helpText)
	default:
		fmt.Fprintf(r.out, "unknown command. Type :help for commands.\n")
	}
	return false
}
