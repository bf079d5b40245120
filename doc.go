// Package jsonnav reads, writes and navigates JSON documents in two
// interchangeable encodings.
//
// FormatText is JSON text extended by typed literals such as I42 (int8),
// D1.5 (float64), G<uuid> and B<base64>. FormatBinary is a compact
// encoding where every value starts with a one byte type marker and
// containers carry their length so that they can be skipped without
// being parsed.
//
// Reader and Writer stream tokens, Navigator provides random access to
// a complete document. Any reader can be copied into any writer, which
// is how documents are transcoded between the two encodings:
//
//	bin, err := jsonnav.Transcode(text, jsonnav.FormatBinary, nil, nil)
//
// Binary output can reference frequent strings in a Dictionary shared
// between writer and readers, and can pack arrays of numbers without
// per-item markers (see WriteOptions).
package jsonnav
