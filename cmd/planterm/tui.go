package main

import (
	"github.com/spf13/cobra"

	"github.com/saessak-labs/planterm/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal UI",
	Long: `Start the full-screen terminal UI with the identify, care, growth,
schedule and disease pages. Keys 1-5 switch pages, q quits.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	svc, err := setup()
	if err != nil {
		return err
	}
	defer svc.log.Sync()

	return tui.Run(svc.client, svc.store, svc.schedules, svc.log)
}
