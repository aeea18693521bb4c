// Package normalisers provides implementations of the Normaliser interface
// for the file formats found in document libraries. Each normaliser knows
// how to extract text content from a specific MIME type.
//
// Normalisers are registered with a Registry at startup; see Defaults.
package normalisers
