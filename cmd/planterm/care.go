package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/saessak-labs/planterm/internal/growth"
	"github.com/saessak-labs/planterm/internal/report"
	"github.com/saessak-labs/planterm/internal/session"
)

var careExportPath string

var careCmd = &cobra.Command{
	Use:   "care",
	Short: "Show the care guide for the last identified plant",
	Long: `Show the stored care guide and growth stages from the most recent
identification. Use --export to write the full analysis report to a
text file instead.

Examples:
  # Show the care guide
  planterm care

  # Export the full report
  planterm care --export 리포트.txt`,
	Args: cobra.NoArgs,
	RunE: runCare,
}

func init() {
	careCmd.Flags().StringVar(&careExportPath, "export", "", "write the full report to this file")
}

func runCare(cmd *cobra.Command, args []string) error {
	svc, err := setup()
	if err != nil {
		return err
	}
	defer svc.log.Sync()

	snap, ok := session.LoadSnapshot(svc.store)
	if !ok {
		return fmt.Errorf("저장된 분석 결과가 없습니다. 먼저 planterm identify <이미지>를 실행하세요")
	}

	if careExportPath != "" {
		var series *growth.Series
		if preview, ok := session.LoadGrowthPreview(svc.store); ok {
			series = &preview.Series
		}
		if err := report.WriteFile(careExportPath, snap, series); err != nil {
			return err
		}
		cmd.Printf("%s 파일로 저장했습니다.\n", careExportPath)
		return nil
	}

	printIdentification(cmd, snap)
	if !snap.Timestamp.IsZero() {
		cmd.Printf("  분석 일시: %s\n", snap.Timestamp.Format("2006-01-02 15:04"))
		if time.Since(snap.Timestamp) > 30*24*time.Hour {
			cmd.Println("  (한 달이 지난 결과입니다. 다시 식별해보세요.)")
		}
	}

	cmd.Println()
	if cg := snap.CareGuide; cg != nil {
		cmd.Println("[관리 가이드]")
		printCareLine(cmd, "물주기", cg.Watering)
		printCareLine(cmd, "햇빛", cg.Sunlight)
		printCareLine(cmd, "온도", cg.Temperature)
		printCareLine(cmd, "습도", cg.Humidity)
		printCareLine(cmd, "비료", cg.Fertilizer)
		printCareLine(cmd, "토양", cg.Soil)
		for i, tip := range cg.Tips {
			cmd.Printf("  팁 %d: %s\n", i+1, tip)
		}
	} else {
		cmd.Println("이 식물에 대한 관리 가이드가 없습니다.")
	}

	if gp := snap.GrowthPrediction; gp != nil && len(gp.Stages) > 0 {
		cmd.Println()
		cmd.Println("[성장 단계]")
		for _, stage := range gp.Stages {
			cmd.Printf("  %s (%s): %s\n", stage.Stage, stage.Timeframe, stage.Description)
		}
	}
	return nil
}

func printCareLine(cmd *cobra.Command, label, value string) {
	if value == "" {
		return
	}
	cmd.Printf("  %s: %s\n", label, value)
}
