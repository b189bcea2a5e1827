// Package paths provides centralized path handling for agent-teams.
//
// It handles:
//
//   - Resolving the install target directory (~ expansion, absolute form)
//   - Containment checks that keep every destination inside the target root
//   - XDG directory locations for user configuration and state
//
// # Environment Variables
//
//   - XDG_CONFIG_HOME: user configuration ($XDG_CONFIG_HOME/agent-teams/config.toml)
//   - XDG_STATE_HOME: log file ($XDG_STATE_HOME/agent-teams/agent-teams.log)
package paths
