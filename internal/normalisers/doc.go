// Package normalisers provides implementations of the Normaliser interface
// for the supported document formats. Each normaliser knows how to turn the
// raw bytes of one or more file types into plain text.
//
// Normalisers are registered with the Registry at startup.
package normalisers
