// Package filesystem provides FS implementations for agent-teams.
//
// NewOS talks to the real filesystem; NewAferoFS adapts any afero.Fs, which
// the tests use with an in-memory tree.
package filesystem
