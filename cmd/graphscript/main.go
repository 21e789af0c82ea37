// cmd/graphscript/main.go
package main

import (
	"fmt"
	"os"

	"graphscript/internal/hostext/cryptomod"
	"graphscript/internal/hostext/dbmod"
	"graphscript/internal/hostext/humanizemod"
	"graphscript/internal/hostext/uuidmod"
	"graphscript/internal/hostext/wsmod"
	"graphscript/internal/interp"
	"graphscript/internal/scriptio"

	"github.com/mattn/go-isatty"
)

const version = "0.1.0"

// extensionFlags maps an opt-in CLI flag to the registrar it enables,
// matching the teacher's pattern of filtering flag-shaped arguments out of
// the positional argument list (cmd/sentra/main.go's "run" handling).
var extensionFlags = map[string]func(*interp.Executor){
	"--db":       func(e *interp.Executor) { dbmod.Register(e.Registry()) },
	"--ws":       func(e *interp.Executor) { wsmod.Register(e.Registry()) },
	"--uuid":     func(e *interp.Executor) { uuidmod.Register(e.Registry()) },
	"--humanize": func(e *interp.Executor) { humanizemod.Register(e.Registry()) },
	"--crypto":   func(e *interp.Executor) { cryptomod.Register(e.Registry()) },
}

var commandAliases = map[string]string{
	"r": "run",
	"v": "version",
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run implements the CLI proper, returning a process exit code rather than
// calling os.Exit itself so it can be driven from testscript's in-process
// command harness (cmd/graphscript/main_test.go).
func run(args []string) int {
	if len(args) == 0 {
		showUsage()
		return 1
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}

	switch cmd {
	case "--help", "-h", "help":
		showUsage()
		return 0
	case "--version", "version":
		fmt.Println("graphscript", version)
		return 0
	case "run":
		return runCommand(args[1:])
	default:
		showUsage()
		return 1
	}
}

func runCommand(args []string) int {
	var filename string
	var enabled []func(*interp.Executor)
	for _, arg := range args {
		if reg, ok := extensionFlags[arg]; ok {
			enabled = append(enabled, reg)
			continue
		}
		if filename == "" {
			filename = arg
		}
	}
	if filename == "" {
		return errorf("no script provided to run command")
	}

	f, err := os.Open(filename)
	if err != nil {
		return errorf("could not open %s: %v", filename, err)
	}
	defer f.Close()

	s, err := scriptio.Load(f, filename)
	if err != nil {
		return errorf("could not load %s: %v", filename, err)
	}

	loader := interp.NewFileLoader(".", "./lib")
	executor := interp.New(loader)
	for _, reg := range enabled {
		reg(executor)
	}

	result, ok, err := executor.Run(s)
	if err != nil {
		return errorf("%v", err)
	}
	if !ok {
		return errorf("script did not complete successfully: %v", result)
	}
	return 0
}

// errorf prints an error, colorized red when stderr is a terminal (spec's
// ambient-stack CLI conventions: conditional colorization, the same
// go-isatty check the pack's CLI tooling uses before writing ANSI codes to
// a possibly-redirected stream), and returns the exit code for it.
func errorf(format string, args ...interface{}) int {
	msg := fmt.Sprintf(format, args...)
	if isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprintf(os.Stderr, "\x1b[31merror:\x1b[0m %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	}
	return 1
}

func showUsage() {
	fmt.Println(`graphscript - a tree-walking instruction-graph interpreter

Usage:
  graphscript run <script.json> [--db] [--ws] [--uuid] [--humanize] [--crypto]
  graphscript version
  graphscript help`)
}
