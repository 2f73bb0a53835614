package main

import (
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend server health",
	Long: `Check the health endpoint of the plant-care backend.

Examples:
  planterm health
  planterm health --server http://localhost:8080`,
	Args: cobra.NoArgs,
	RunE: runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	svc, err := setup()
	if err != nil {
		return err
	}
	defer svc.log.Sync()

	resp, err := svc.client.Health(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Printf("✓ %s: %s\n", svc.client.BaseURL(), resp.Status)
	return nil
}
