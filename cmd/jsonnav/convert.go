package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/romshark/jsonnav"
)

var cborEncMode cbor.EncMode

func init() {
	var err error
	if cborEncMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic("jsonnav: CBOR encoder initialization failed: " + err.Error())
	}
}

var errDictionaryOutNeedsBinary = errors.New("--dictionary-out requires binary output")

func runConvert(c *command, args []string, e *env) error {
	var (
		common          commonFlags
		to              string
		configPath      string
		counts          bool
		uniformArrays   bool
		compressStrings bool
		dictionaryOut   string
	)
	flagSet := newFlagSet(c, e, &common)
	flagSet.StringVar(&to, "to", "",
		"output format: text, binary or cbor (default: the other one of text and binary)")
	flagSet.StringVar(&configPath, "config", "", "YAML file with binary writer settings")
	flagSet.BoolVar(&counts, "counts", false, "serialize container item counts")
	flagSet.BoolVar(&uniformArrays, "uniform-arrays", false, "pack arrays of numbers")
	flagSet.BoolVar(&compressStrings, "compress-strings",
		jsonnav.DefaultWriteOptions.CompressStrings, "use compressed string forms")
	flagSet.StringVar(&dictionaryOut, "dictionary-out", "",
		"write the final dictionary of the binary writer to this YAML file")
	if ok, err := parseFlags(flagSet, args, 2); !ok {
		return err
	}
	log := common.logger(e.stderr)
	inName, outName := flagSet.Arg(0), flagSet.Arg(1)

	in, err := readInput(inName, e.stdin)
	if err != nil {
		return err
	}
	readOptions, err := common.readOptions()
	if err != nil {
		return err
	}

	if to == "" {
		to = jsonnav.FormatBinary.String()
		if jsonnav.DetectFormat(in) == jsonnav.FormatBinary {
			to = jsonnav.FormatText.String()
		}
	}
	if dictionaryOut != "" && to != jsonnav.FormatBinary.String() {
		return errDictionaryOutNeedsBinary
	}

	var out []byte
	switch to {
	case "text":
		if out, err = jsonnav.Transcode(in, jsonnav.FormatText, readOptions, nil); err != nil {
			return fmt.Errorf("converting %s: %w", displayName(inName), err)
		}
	case "binary":
		config := &Config{}
		if configPath != "" {
			if config, err = loadConfig(configPath); err != nil {
				return err
			}
		}
		if flagSet.Changed("counts") {
			config.SerializeCount = counts
		}
		if flagSet.Changed("uniform-arrays") {
			config.UniformArrays = uniformArrays
		}
		if flagSet.Changed("compress-strings") {
			config.CompressStrings = &compressStrings
		}
		writeOptions, err := config.writeOptions()
		if err != nil {
			return err
		}
		if writeOptions.Dictionary == nil && readOptions != nil {
			writeOptions.Dictionary = readOptions.Dictionary.Clone()
		}
		if writeOptions.Dictionary == nil && dictionaryOut != "" {
			writeOptions.Dictionary = jsonnav.NewDictionary()
		}
		writeOptions.Logger = log

		if out, err = jsonnav.Transcode(in, jsonnav.FormatBinary, readOptions, writeOptions); err != nil {
			return fmt.Errorf("converting %s: %w", displayName(inName), err)
		}
		if dictionaryOut != "" {
			if err := saveDictionaryFile(dictionaryOut, writeOptions.Dictionary); err != nil {
				return err
			}
			log.Debug("dictionary saved",
				slog.String("path", dictionaryOut),
				slog.Int("entries", writeOptions.Dictionary.Len()))
		}
	case "cbor":
		nav, err := jsonnav.NewNavigator(in, readOptions)
		if err != nil {
			return fmt.Errorf("reading %s: %w", displayName(inName), err)
		}
		v, err := jsonnav.Materialize(nav, nav.Root())
		if err != nil {
			return fmt.Errorf("reading %s: %w", displayName(inName), err)
		}
		if out, err = cborEncMode.Marshal(cborValue(v)); err != nil {
			return fmt.Errorf("encoding CBOR: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format %q", to)
	}

	log.Debug("converted",
		slog.String("in", displayName(inName)),
		slog.String("to", to),
		slog.Int("in_bytes", len(in)),
		slog.Int("out_bytes", len(out)))
	return writeOutput(outName, e.stdout, out)
}

// cborValue replaces GUIDs in a materialized tree by their string form.
func cborValue(v any) any {
	switch v := v.(type) {
	case uuid.UUID:
		return v.String()
	case []any:
		for i := range v {
			v[i] = cborValue(v[i])
		}
	case map[string]any:
		for k, x := range v {
			v[k] = cborValue(x)
		}
	}
	return v
}
