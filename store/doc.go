// Package store reads and writes the flat files that surround curve
// synthesis and sampling: parameter vectors, result vectors, run settings
// and sampled curves.
//
// Every writer creates missing parent directories. Readers skip blank lines.
package store
