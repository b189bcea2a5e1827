// Package installer copies a manifest of files and directories into a target
// directory.
//
// Installation runs in two phases. Plan inspects the target and decides, for
// every entry, whether it will be created, overwritten, skipped or reported
// as a conflict. Nothing is written while planning. Apply then executes the
// decisions in order. Each file is written to a temporary sibling and renamed
// into place, so a destination either keeps its previous content or receives
// the complete new content.
//
// Running the same install twice is a no-op the second time: entries whose
// destination already holds identical content are skipped, and existing
// content that differs is never replaced unless Options.Force is set.
//
// A failing entry does not stop the run. Per-entry failures are collected in
// Result.Errors; Apply itself only returns an error when the whole run cannot
// start, for example when another install holds the target's lock.
package installer
