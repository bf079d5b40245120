package main

import (
	"errors"
	"fmt"

	"github.com/romshark/jscan/v2"

	"github.com/romshark/jsonnav"
)

var errNotPlainJSON = errors.New("text contains typed literals or isn't valid JSON")

func runValidate(c *command, args []string, e *env) error {
	var (
		common commonFlags
		strict bool
	)
	flagSet := newFlagSet(c, e, &common)
	flagSet.BoolVar(&strict, "strict", false,
		"additionally require text inputs to be plain JSON")
	if ok, err := parseFlags(flagSet, args, 1); !ok {
		return err
	}
	log := common.logger(e.stderr)
	readOptions, err := common.readOptions()
	if err != nil {
		return err
	}

	invalid := 0
	for _, name := range flagSet.Args() {
		err := validate(name, e, readOptions, strict)
		if err != nil {
			invalid++
			fmt.Fprintf(e.stdout, "%s: %v\n", displayName(name), err)
			continue
		}
		fmt.Fprintf(e.stdout, "%s: ok\n", displayName(name))
		log.Debug("valid", "input", displayName(name))
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d inputs invalid", invalid, flagSet.NArg())
	}
	return nil
}

func validate(name string, e *env, readOptions *jsonnav.ReadOptions, strict bool) error {
	in, err := readInput(name, e.stdin)
	if err != nil {
		return err
	}
	if strict && jsonnav.DetectFormat(in) == jsonnav.FormatText {
		if err := jscan.Validate(in); err.IsErr() {
			return fmt.Errorf("%w: %s", errNotPlainJSON, err.Error())
		}
	}
	r, err := jsonnav.NewReader(in, readOptions)
	if err != nil {
		return err
	}
	for {
		ok, err := r.Read()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		// Resolves dictionary references and escape sequences.
		if _, err := formatToken(r); err != nil {
			return err
		}
	}
}
