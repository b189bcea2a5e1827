// Package types defines the interfaces shared across agent-teams packages.
// The installer engine only touches the filesystem through FS, which lets tests
// run against an in-memory tree or inject failures for a single path.
package types
