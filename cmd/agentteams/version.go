package agentteams

import (
	"fmt"

	"github.com/bmad-code/agent-teams/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var build bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if build {
				fmt.Fprintln(cmd.OutOrStdout(), version.Detailed())
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
	cmd.Flags().BoolVar(&build, "build", false, MsgFlagBuild)
	return cmd
}
