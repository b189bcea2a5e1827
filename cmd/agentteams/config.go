package agentteams

import (
	"fmt"

	"github.com/bmad-code/agent-teams/pkg/config"
	"github.com/bmad-code/agent-teams/pkg/paths"
	"github.com/spf13/cobra"
)

func newConfigCmd(deps Deps, g *globalFlags) *cobra.Command {
	var write, force bool

	cmd := &cobra.Command{
		Use:         "config [dir]",
		Short:       MsgConfigShort,
		Long:        MsgConfigLong,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotationTargetArg: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			dir := ""
			if len(args) > 0 {
				dir = args[0]
			}
			cwd, err := deps.Getwd()
			if err != nil {
				return fmt.Errorf(MsgErrResolveTarget, err)
			}
			target, err := paths.ResolveTarget(dir, cwd)
			if err != nil {
				return fmt.Errorf(MsgErrResolveTarget, err)
			}

			if write {
				path, err := config.WriteProjectConfig(deps.FS, target, force)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, MsgConfigWritten, path)
				return nil
			}

			cfg, err := config.Load(config.LoadOptions{
				Target:     target,
				UserConfig: deps.UserConfig,
				Overrides:  g.overrides(cmd),
			})
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			for _, src := range cfg.Sources {
				fmt.Fprintf(out, MsgConfigSource, src)
			}
			fmt.Fprint(out, string(data))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)

	return cmd
}
