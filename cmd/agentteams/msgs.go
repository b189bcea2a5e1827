package agentteams

// Command descriptions
const (
	MsgRootShort = "Install the BMad Method agent team into a project"
	MsgRootLong  = `agent-teams installs the BMad Method 12-agent development team, the
/bmad-init command and example templates into a project directory, ready for
Claude Code agent teams.

Installing is idempotent: files that already match are left alone, files
that differ are reported as conflicts unless --force is given.`

	MsgInstallShort = "Install BMad Method into a directory (default: current)"
	MsgInstallLong  = `Install copies the agent team into dir, creating missing directories.

Existing files with identical content are skipped. Files with different
content are conflicts and are only replaced with --force. Use --dry-run to see
what would change without writing anything.`
	MsgInstallExample = `  agent-teams install
  agent-teams install ./my-project --yes
  agent-teams install ~/projects/webapp --force
  agent-teams install --dry-run`

	MsgListShort   = "List the files and agents that install writes"
	MsgConfigShort = "Show the effective configuration"
	MsgConfigLong  = `Config prints the configuration install would use for dir, merged from
built-in defaults, the user config file, dir/.agent-teams.toml, AGENT_TEAMS_*
environment variables and flags.

With --write, a commented template is written to dir/.agent-teams.toml.`
	MsgVersionShort = "Show version"
	MsgTopicsShort  = "Display available help topics"
)

// Flag descriptions
const (
	MsgFlagVerbose = "Increase log verbosity (--verbose INFO, twice DEBUG, three times TRACE)"
	MsgFlagNoColor = "Disable colored output"
	MsgFlagYes     = "Skip confirmation prompts"
	MsgFlagForce   = "Overwrite existing files"
	MsgFlagDryRun  = "Show what would change without writing anything"
	MsgFlagWrite   = "Write a config template to dir/.agent-teams.toml"
	MsgFlagBuild   = "Include commit and build date"
)

// Status messages
const (
	MsgConfirmCreate   = "Directory %s does not exist. Create it?"
	MsgInstallingInto  = "Installing into %s"
	MsgDryRunInto      = "Dry run for %s"
	MsgConfigSource    = "# loaded from %s\n"
	MsgConfigWritten   = "Wrote %s\n"
	MsgInvalidAgents   = "Agent definitions are incomplete"
	MsgErrorPrefix     = "Error: %v"
	MsgInstallFailed   = "installation failed"
	MsgAbortedNoCreate = "installation aborted, %s was not created"
)

// Error messages
const (
	MsgErrResolveTarget = "failed to resolve target: %w"
	MsgErrLoadConfig    = "failed to load configuration: %w"
	MsgErrLoadManifest  = "failed to load manifest: %w"
)
