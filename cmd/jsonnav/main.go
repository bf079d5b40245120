// Command jsonnav converts, queries and inspects text and binary documents.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/romshark/jsonnav"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

type command struct {
	name    string
	args    string
	summary string
	run     func(c *command, args []string, e *env) error
}

var commands = []command{
	{
		name:    "convert",
		args:    "[flags] IN OUT",
		summary: "Convert a document to text, binary or CBOR",
		run:     runConvert,
	},
	{
		name:    "get",
		args:    "[flags] IN PATH",
		summary: "Print the value at a dot separated path as text",
		run:     runGet,
	},
	{
		name:    "dump",
		args:    "[flags] IN",
		summary: "Print the token tree of a document",
		run:     runDump,
	},
	{
		name:    "validate",
		args:    "[flags] IN...",
		summary: "Read every token of each document and report errors",
		run:     runValidate,
	},
}

var errCommandRequired = errors.New("command required")

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	e := &env{stdin: stdin, stdout: stdout, stderr: stderr}
	if len(args) < 1 {
		printUsage(stderr)
		return errCommandRequired
	}
	switch args[0] {
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	}
	for i := range commands {
		if c := &commands[i]; c.name == args[0] {
			return c.run(c, args[1:], e)
		}
	}
	return fmt.Errorf("unknown command %q, run 'jsonnav help' for usage", args[0])
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: jsonnav <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "IN and OUT may be - for stdin and stdout.")
}

// commonFlags are accepted by every command.
type commonFlags struct {
	verbose    bool
	dictionary string
}

func newFlagSet(c *command, e *env, common *commonFlags) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(c.name, pflag.ContinueOnError)
	flagSet.SetOutput(e.stderr)
	flagSet.Usage = func() {
		fmt.Fprintf(e.stderr, "Usage: jsonnav %s %s\n\n%s.\n\nFlags:\n", c.name, c.args, c.summary)
		flagSet.PrintDefaults()
	}
	flagSet.BoolVarP(&common.verbose, "verbose", "v", false,
		"log debug records to stderr")
	flagSet.StringVar(&common.dictionary, "dictionary", "",
		"YAML file holding the dictionary of binary inputs")
	return flagSet
}

// parseFlags parses args and makes sure at least minArgs positional
// arguments remain. It returns false if help was requested.
func parseFlags(flagSet *pflag.FlagSet, args []string, minArgs int) (bool, error) {
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return false, nil
		}
		return false, err
	}
	if flagSet.NArg() < minArgs {
		flagSet.Usage()
		return false, fmt.Errorf("%s: expected at least %d arguments, got %d",
			flagSet.Name(), minArgs, flagSet.NArg())
	}
	return true, nil
}

func (f *commonFlags) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// readOptions returns nil if no dictionary was given.
func (f *commonFlags) readOptions() (*jsonnav.ReadOptions, error) {
	if f.dictionary == "" {
		return nil, nil
	}
	d, err := loadDictionaryFile(f.dictionary)
	if err != nil {
		return nil, err
	}
	return &jsonnav.ReadOptions{Dictionary: d}, nil
}

func readInput(name string, stdin io.Reader) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name)
}

func writeOutput(name string, stdout io.Writer, b []byte) error {
	if name == "-" {
		_, err := stdout.Write(b)
		return err
	}
	return os.WriteFile(name, b, 0o644)
}

func displayName(name string) string {
	if name == "-" {
		return "stdin"
	}
	return name
}
