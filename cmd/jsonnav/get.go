package main

import (
	"fmt"
	"strings"

	"github.com/romshark/jsonnav"
)

func runGet(c *command, args []string, e *env) error {
	var common commonFlags
	flagSet := newFlagSet(c, e, &common)
	if ok, err := parseFlags(flagSet, args, 2); !ok {
		return err
	}
	inName, path := flagSet.Arg(0), flagSet.Arg(1)

	in, err := readInput(inName, e.stdin)
	if err != nil {
		return err
	}
	readOptions, err := common.readOptions()
	if err != nil {
		return err
	}
	nav, err := jsonnav.NewNavigator(in, readOptions)
	if err != nil {
		return fmt.Errorf("reading %s: %w", displayName(inName), err)
	}

	var segments []string
	if path != "" && path != "." {
		segments = strings.Split(path, ".")
	}
	n, ok, err := jsonnav.Lookup(nav, nav.Root(), segments...)
	if err != nil {
		return fmt.Errorf("reading %s: %w", displayName(inName), err)
	}
	if !ok {
		return fmt.Errorf("%s: path %q not found", displayName(inName), path)
	}
	common.logger(e.stderr).Debug("found",
		"path", path, "format", nav.Format().String())

	w := jsonnav.NewTextWriter()
	if err := nav.WriteNode(n, w); err != nil {
		return err
	}
	b, err := w.Result()
	if err != nil {
		return err
	}
	_, err = e.stdout.Write(append(b, '\n'))
	return err
}
