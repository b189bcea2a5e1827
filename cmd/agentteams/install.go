package agentteams

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/bmad-code/agent-teams/pkg/config"
	"github.com/bmad-code/agent-teams/pkg/confirm"
	"github.com/bmad-code/agent-teams/pkg/errors"
	"github.com/bmad-code/agent-teams/pkg/installer"
	"github.com/bmad-code/agent-teams/pkg/logging"
	"github.com/bmad-code/agent-teams/pkg/paths"
	"github.com/bmad-code/agent-teams/pkg/style"
	"github.com/bmad-code/agent-teams/pkg/types"
	"github.com/spf13/cobra"
)

type installFlags struct {
	yes    bool
	force  bool
	dryRun bool
}

func (f *installFlags) overrides(cmd *cobra.Command, o map[string]interface{}) map[string]interface{} {
	flags := cmd.Flags()
	if flags.Changed("yes") {
		o["install.yes"] = f.yes
	}
	if flags.Changed("force") {
		o["install.force"] = f.force
	}
	if flags.Changed("dry-run") {
		o["install.dry_run"] = f.dryRun
	}
	return o
}

func newInstallCmd(deps Deps, g *globalFlags) *cobra.Command {
	f := &installFlags{}

	cmd := &cobra.Command{
		Use:         "install [dir]",
		Short:       MsgInstallShort,
		Long:        MsgInstallLong,
		Example:     MsgInstallExample,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotationTargetArg: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) > 0 {
				dir = args[0]
			}
			return runInstall(cmd, deps, g, f, dir)
		},
	}

	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, MsgFlagYes)
	cmd.Flags().BoolVar(&f.force, "force", false, MsgFlagForce)
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, MsgFlagDryRun)

	return cmd
}

func runInstall(cmd *cobra.Command, deps Deps, g *globalFlags, f *installFlags, dir string) error {
	logger := logging.GetLogger("cmd.install")
	out := cmd.OutOrStdout()

	cwd, err := deps.Getwd()
	if err != nil {
		return fmt.Errorf(MsgErrResolveTarget, err)
	}
	target, err := paths.ResolveTarget(dir, cwd)
	if err != nil {
		return fmt.Errorf(MsgErrResolveTarget, err)
	}

	cfg, err := config.Load(config.LoadOptions{
		Target:     target,
		UserConfig: deps.UserConfig,
		Overrides:  f.overrides(cmd, g.overrides(cmd)),
	})
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}
	opts := cfg.ToOptions()

	logger.Info().
		Str("target", target).
		Bool("force", opts.Force).
		Bool("dryRun", opts.DryRun).
		Bool("yes", cfg.Install.Yes).
		Msg("Starting install")

	if cfg.Output.Banner {
		fmt.Fprintln(out, style.RenderBanner())
		fmt.Fprintln(out)
	}

	if err := confirmTarget(cmd, deps, cfg, target); err != nil {
		return err
	}

	entries, err := deps.Source.Entries()
	if err != nil {
		return fmt.Errorf(MsgErrLoadManifest, err)
	}

	engine := installer.New(deps.FS, installer.WithLock(cfg.Install.Lock))
	plan, err := engine.Plan(entries, target, opts)
	if err != nil {
		return err
	}

	heading := MsgInstallingInto
	if opts.DryRun {
		heading = MsgDryRunInto
	}
	fmt.Fprintln(out, style.TitleStyle.Render(fmt.Sprintf(heading, style.PathStyle.Render(target))))

	// An interrupt lets the current entry finish so the lock is released.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	result, err := engine.ApplyContext(ctx, plan, opts)
	stop()
	if err != nil {
		if result != nil {
			printEntries(out, result)
		}
		return err
	}

	printEntries(out, result)
	fmt.Fprintln(out, style.RenderStatus(result))

	if !result.OK() {
		return errReported
	}
	if cfg.Output.NextSteps && !result.DryRun {
		fmt.Fprintln(out)
		fmt.Fprintln(out, style.RenderNextSteps(target))
	}
	return nil
}

// confirmTarget asks before an install creates the target directory. Dry
// runs never create it, and --yes answers for the user.
func confirmTarget(cmd *cobra.Command, deps Deps, cfg *config.Config, target string) error {
	if cfg.Install.DryRun || cfg.Install.Yes {
		return nil
	}
	exists, err := dirExists(deps.FS, target)
	if err != nil || exists {
		// A non-directory target is reported by the planner.
		return nil
	}

	ask := deps.Confirm
	if ask == nil {
		ask = confirm.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout()).Func()
	}
	ok, err := ask(fmt.Sprintf(MsgConfirmCreate, target))
	if err != nil {
		return err
	}
	if !ok {
		return errors.Newf(errors.ErrAborted, MsgAbortedNoCreate, target)
	}
	return nil
}

// dirExists reports whether path exists. Anything present counts, so a file
// at path is left to the planner's INVALID_TARGET check.
func dirExists(fsys types.FS, path string) (bool, error) {
	_, err := fsys.Stat(path)
	if err == nil {
		return true, nil
	}
	if stderrors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// printEntries writes the per-entry lines, errors and summary.
func printEntries(out io.Writer, result *installer.Result) {
	if lines := style.RenderOutcomes(result); lines != "" {
		fmt.Fprintln(out, lines)
	}
	fmt.Fprintln(out)
	if len(result.Errors) > 0 {
		fmt.Fprintln(out, style.RenderErrors(result))
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, style.RenderSummary(result))
}
