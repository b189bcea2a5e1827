// Package testutil provides helpers shared by agent-teams tests.
//
// Key components:
//   - TestEnvironment: a target directory on either an in-memory or a real
//     temporary filesystem, with XDG and HOME isolated per test
//   - FaultFS: a types.FS wrapper that fails selected operations on
//     selected paths
//   - Snapshot / TreeHash: a content fingerprint of a directory tree, used
//     to prove that an operation did not modify anything
//
// Use EnvMemoryOnly unless the test depends on real filesystem semantics
// such as permissions, symlinks or non-empty directory removal.
package testutil
