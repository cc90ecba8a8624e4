package main

import (
	"github.com/spf13/cobra"

	"github.com/diffrun/recon/internal/api"
	"github.com/diffrun/recon/internal/config"
	"github.com/diffrun/recon/internal/session"
	"github.com/diffrun/recon/internal/tui"
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the reconciliation agent",
		Long: `Start an interactive conversation with the backend agent. Describe the
reconciliation you want in natural language; the agent runs the query as a
tool call and the summary is shown alongside the transcript.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := api.NewClient(config.APIBase())
			sess := session.New(client, session.WithTimeout(config.AgentTimeout()))
			return tui.Run(cmd.Context(), sess)
		},
	}
}
