package agentteams

import (
	"fmt"

	"github.com/bmad-code/agent-teams/pkg/logging"
	"github.com/bmad-code/agent-teams/pkg/manifest"
	"github.com/bmad-code/agent-teams/pkg/style"
	"github.com/spf13/cobra"
)

func newListCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.list")
			out := cmd.OutOrStdout()

			entries, err := deps.Source.Entries()
			if err != nil {
				return fmt.Errorf(MsgErrLoadManifest, err)
			}
			entries, err = manifest.Normalize(entries)
			if err != nil {
				return fmt.Errorf(MsgErrLoadManifest, err)
			}

			agents, err := manifest.Agents()
			if err != nil {
				return fmt.Errorf(MsgErrLoadManifest, err)
			}
			if err := manifest.Validate(agents); err != nil {
				logger.Warn().Err(err).Msg(MsgInvalidAgents)
			}

			fmt.Fprintln(out, style.RenderManifest(entries))
			fmt.Fprintln(out)
			fmt.Fprintln(out, style.RenderAgents(agents))
			return nil
		},
	}
}
