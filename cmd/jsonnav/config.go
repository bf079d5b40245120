package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/romshark/jsonnav"
)

// Config holds binary writer settings and an optional user dictionary.
// Dictionary files use the same layout with only the dictionary key set.
type Config struct {
	SerializeCount  bool     `yaml:"serialize-count,omitempty"`
	UniformArrays   bool     `yaml:"uniform-arrays,omitempty"`
	CompressStrings *bool    `yaml:"compress-strings,omitempty"`
	Dictionary      []string `yaml:"dictionary,omitempty"`
}

func loadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := yaml.NewDecoder(f)
	d.KnownFields(true)
	var c Config
	if err := d.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &c, nil
}

func loadDictionaryFile(path string) (*jsonnav.Dictionary, error) {
	c, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	d, err := jsonnav.LoadDictionary(c.Dictionary)
	if err != nil {
		return nil, fmt.Errorf("loading dictionary %s: %w", path, err)
	}
	return d, nil
}

func saveDictionaryFile(path string, d *jsonnav.Dictionary) error {
	b, err := yaml.Marshal(Config{Dictionary: d.Strings()})
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// writeOptions applies c on top of jsonnav.DefaultWriteOptions.
func (c *Config) writeOptions() (*jsonnav.WriteOptions, error) {
	o := *jsonnav.DefaultWriteOptions
	o.SerializeCount = c.SerializeCount
	o.UniformArrays = c.UniformArrays
	if c.CompressStrings != nil {
		o.CompressStrings = *c.CompressStrings
	}
	if c.Dictionary != nil {
		d, err := jsonnav.LoadDictionary(c.Dictionary)
		if err != nil {
			return nil, fmt.Errorf("loading config dictionary: %w", err)
		}
		o.Dictionary = d
	}
	return &o, nil
}
