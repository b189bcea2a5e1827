package main

import (
	"fmt"
	"os"

	"github.com/bmad-code/agent-teams/cmd/agentteams"
	"github.com/bmad-code/agent-teams/pkg/style"
)

func main() {
	rootCmd := agentteams.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !agentteams.Reported(err) {
			fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf(agentteams.MsgErrorPrefix, err)))
		}
		os.Exit(1)
	}
}
