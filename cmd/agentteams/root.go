// Package agentteams is the agent-teams command line interface.
package agentteams

import (
	"embed"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bmad-code/agent-teams/internal/version"
	"github.com/bmad-code/agent-teams/pkg/cobrax/topics"
	"github.com/bmad-code/agent-teams/pkg/config"
	"github.com/bmad-code/agent-teams/pkg/confirm"
	"github.com/bmad-code/agent-teams/pkg/filesystem"
	"github.com/bmad-code/agent-teams/pkg/logging"
	"github.com/bmad-code/agent-teams/pkg/manifest"
	"github.com/bmad-code/agent-teams/pkg/paths"
	"github.com/bmad-code/agent-teams/pkg/style"
	"github.com/bmad-code/agent-teams/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicsFS embed.FS

// errReported marks a failure whose details were already printed.
var errReported = stderrors.New(MsgInstallFailed)

// Reported reports whether err has already been shown to the user, so main
// only needs to set the exit code.
func Reported(err error) bool {
	return stderrors.Is(err, errReported)
}

// Deps are the capabilities commands use. Zero fields get production
// defaults.
type Deps struct {
	FS      types.FS
	Source  manifest.Source
	Confirm confirm.Func
	Getwd   func() (string, error)

	// UserConfig overrides the user configuration file location.
	UserConfig string
}

func (d Deps) withDefaults() Deps {
	if d.FS == nil {
		d.FS = filesystem.NewOS()
	}
	if d.Source == nil {
		d.Source = manifest.Embedded()
	}
	if d.Getwd == nil {
		d.Getwd = os.Getwd
	}
	return d
}

// annotationTargetArg marks commands whose first argument is the target
// directory.
const annotationTargetArg = "agent-teams/target-arg"

// configTarget returns the directory whose .agent-teams.toml applies to cmd:
// its dir argument when it takes one, the working directory otherwise.
func configTarget(cmd *cobra.Command, deps Deps, args []string) string {
	dir := ""
	if _, ok := cmd.Annotations[annotationTargetArg]; ok && len(args) > 0 {
		dir = args[0]
	}
	cwd, err := deps.Getwd()
	if err != nil {
		return ""
	}
	target, err := paths.ResolveTarget(dir, cwd)
	if err != nil {
		// The command reports a bad target itself.
		return ""
	}
	return target
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	verbosity int
	noColor   bool
}

// overrides returns the configuration keys set explicitly on the command
// line. Flags left at their defaults do not mask lower layers.
func (g *globalFlags) overrides(cmd *cobra.Command) map[string]interface{} {
	o := map[string]interface{}{}
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		o["logging.verbosity"] = g.verbosity
	}
	if flags.Changed("no-color") && g.noColor {
		o["output.color"] = config.ColorNever
	}
	return o
}

// NewRootCmd creates the root command with production dependencies.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(Deps{})
}

// NewRootCmdWithDeps creates the root command around deps.
func NewRootCmdWithDeps(deps Deps) *cobra.Command {
	deps = deps.withDefaults()
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "agent-teams",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Semver(),
		// Unknown commands fall through to help.
		Args: cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.LoadOptions{
				Target:     configTarget(cmd, deps, args),
				UserConfig: deps.UserConfig,
				Overrides:  g.overrides(cmd),
			})
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}
			logging.SetupLoggerTo(cmd.ErrOrStderr(), cfg.Logging.Verbosity)
			style.Configure(cfg.Output.Color, cmd.OutOrStdout())
			log.Debug().Str("command", cmd.Name()).Strs("config", cfg.Sources).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.PersistentFlags().CountVar(&g.verbosity, "verbose", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.AddCommand(newInstallCmd(deps, g))
	rootCmd.AddCommand(newListCmd(deps))
	rootCmd.AddCommand(newConfigCmd(deps, g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newTopicsCmd())

	// The banner heads root help.
	baseHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd == rootCmd {
			noColor, _ := cmd.Flags().GetBool("no-color")
			if noColor {
				style.Configure(style.ColorNever, cmd.OutOrStdout())
			}
			fmt.Fprintln(cmd.OutOrStdout(), style.RenderBanner())
			fmt.Fprintln(cmd.OutOrStdout())
		}
		baseHelp(cmd, args)
	})

	helpFS, err := fs.Sub(topicsFS, "topics")
	if err == nil {
		_, err = topics.InitializeWithOptions(rootCmd, helpFS, topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.NewGlamourRenderer(),
		})
	}
	if err != nil {
		// Topics are compiled in; command help still works without them.
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: MsgTopicsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			helpCmd, _, err := cmd.Root().Find([]string{"help"})
			if err != nil || helpCmd == nil || helpCmd.Run == nil {
				return fmt.Errorf("help command not found")
			}
			helpCmd.SetOut(cmd.OutOrStdout())
			helpCmd.Run(helpCmd, []string{"topics"})
			return nil
		},
	}
}
