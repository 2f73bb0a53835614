package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saessak-labs/planterm/internal/api"
)

var diseaseCmd = &cobra.Command{
	Use:   "disease <image>",
	Short: "Diagnose leaf health from a photo",
	Long: `Upload a leaf photo for disease detection. Healthy leaves get a short
confirmation; diseased leaves get the diagnosis with symptoms, causes
and treatment advice.

Examples:
  planterm disease ~/photos/leaf.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runDisease,
}

func runDisease(cmd *cobra.Command, args []string) error {
	svc, err := setup()
	if err != nil {
		return err
	}
	defer svc.log.Sync()

	resp, err := svc.client.DetectDisease(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	cmd.Println("[진단 결과]")
	cmd.Println(diseaseStatusLine(resp))
	if resp.Status == api.DiseaseStatusDisease {
		if resp.DiseaseType != "" {
			cmd.Printf("  병명: %s\n", resp.DiseaseType)
		}
		if resp.Severity != "" {
			cmd.Printf("  심각도: %s\n", resp.Severity)
		}
	}
	if resp.Message != "" {
		cmd.Printf("  %s\n", resp.Message)
	}
	if resp.Description != "" {
		cmd.Printf("  %s\n", resp.Description)
	}

	printBullets(cmd, "증상", resp.Symptoms)
	printBullets(cmd, "원인", resp.Causes)
	printBullets(cmd, "해결 방법", resp.Solutions)
	printBullets(cmd, "예방", resp.Prevention)
	printBullets(cmd, "관리 팁", resp.Tips)
	return nil
}

// diseaseStatusLine formats the verdict line. The backend reports disease
// confidence on the percent scale already, so it renders as-is.
func diseaseStatusLine(resp *api.DiseaseResponse) string {
	switch resp.Status {
	case api.DiseaseStatusHealthy:
		return fmt.Sprintf("  ✓ 건강한 상태입니다 (신뢰도 %.1f%%)", resp.Confidence)
	case api.DiseaseStatusDisease:
		return fmt.Sprintf("  ✗ 병충해 의심 (신뢰도 %.1f%%)", resp.Confidence)
	}
	return fmt.Sprintf("  상태: %s", resp.Status)
}

func printBullets(cmd *cobra.Command, title string, items []string) {
	if len(items) == 0 {
		return
	}
	cmd.Printf("  %s:\n", title)
	for _, item := range items {
		cmd.Printf("   · %s\n", item)
	}
}
