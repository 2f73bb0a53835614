package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/saessak-labs/planterm/internal/session"
)

var identifyCmd = &cobra.Command{
	Use:   "identify <image>",
	Short: "Identify a plant from a photo",
	Long: `Upload a plant photo for AI identification. On success the result,
care guide and growth stages are saved locally so the care, growth and
tui commands can use them without re-uploading.

Examples:
  # Identify a plant
  planterm identify ~/photos/plant.jpg

  # Against a different backend
  planterm identify --server http://localhost:8080 plant.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runIdentify,
}

func runIdentify(cmd *cobra.Command, args []string) error {
	svc, err := setup()
	if err != nil {
		return err
	}
	defer svc.log.Sync()

	resp, err := svc.client.AnalyzeAuto(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if !resp.Succeeded() || resp.Identification == nil {
		if resp.Message != "" {
			return fmt.Errorf("식별 실패: %s", resp.Message)
		}
		return fmt.Errorf("식별 실패: 식물을 인식하지 못했습니다")
	}

	snap := session.Snapshot{
		Identification:    *resp.Identification,
		CareGuide:         resp.CareGuide,
		GrowthPrediction:  resp.GrowthPrediction,
		UploadedImagePath: args[0],
		Timestamp:         time.Now(),
	}
	if err := session.SaveSnapshot(svc.store, snap); err != nil {
		return err
	}

	printIdentification(cmd, snap)
	cmd.Println()
	cmd.Println("관리 가이드: planterm care / 성장 예측: planterm growth")
	return nil
}

func printIdentification(cmd *cobra.Command, snap session.Snapshot) {
	id := snap.Identification
	cmd.Println("[식별 결과]")
	cmd.Printf("  종명: %s\n", id.PlantName)
	if id.ScientificName != nil && *id.ScientificName != "" {
		cmd.Printf("  학명: %s\n", *id.ScientificName)
	}
	cmd.Printf("  신뢰도: %.1f%%\n", id.Confidence*100)
	if len(id.CommonNames) > 0 {
		cmd.Printf("  일반 명칭: %s\n", strings.Join(id.CommonNames, ", "))
	}
}
