// Package manifest enumerates the files agent-teams installs.
//
// A Source yields an ordered list of Entry values, each mapping a piece of
// content to a relative destination inside the target project. The built-in
// source embeds the agent team assets into the binary and reads the mapping
// rules from an embedded manifest.toml:
//
//	[[mappings]]
//	from = "agents"          # asset file or directory under assets/
//	to   = ".claude/agents"  # destination prefix inside the target
//	mode = "0644"            # optional file mode
//
// Entries are sorted lexicographically by destination so plans and logs are
// reproducible, and every parent directory of a file gets its own directory
// entry. Destinations are not checked for containment here; the installer
// rejects escaping entries when it plans them.
package manifest
