package jsonnav

import "log/slog"

// ReadOptions are options for readers and navigators.
type ReadOptions struct {
	// Dictionary resolves user string references of binary buffers.
	// It must hold the same entries the writer's dictionary held when the
	// buffer was produced.
	Dictionary *Dictionary
}

// WriteOptions are options for writers.
type WriteOptions struct {
	// Dictionary enables user string references in binary output.
	// Strings are added on first use until the dictionary is full.
	Dictionary *Dictionary

	// SerializeCount makes the binary writer emit the length-and-count
	// container forms which make counting items constant time.
	SerializeCount bool

	// UniformArrays makes the binary writer pack arrays of numbers
	// (and arrays of equally shaped number arrays) without per-item markers
	// whenever that's smaller.
	UniformArrays bool

	// CompressStrings makes the binary writer use the compressed string
	// forms whenever they're smaller.
	CompressStrings bool

	// Logger receives debug records about encoding decisions.
	// nil disables logging.
	Logger *slog.Logger
}

// DefaultReadOptions are to be used by default. DO NOT MUTATE.
var DefaultReadOptions = &ReadOptions{}

// DefaultWriteOptions are to be used by default. DO NOT MUTATE.
var DefaultWriteOptions = &WriteOptions{
	CompressStrings: true,
}
