// Package config loads agent-teams settings.
//
// Values are layered with koanf: embedded defaults, the user's XDG config
// file, the project file in the install target, AGENT_TEAMS_* environment
// variables (plus the legacy BMAD_FORCE and BMAD_AUTO_YES) and finally
// command-line overrides. The result is decoded into Config, which is the
// only place the environment is consulted; the installer receives plain
// Options.
package config
