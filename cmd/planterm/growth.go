package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/saessak-labs/planterm/internal/api"
	"github.com/saessak-labs/planterm/internal/growth"
	"github.com/saessak-labs/planterm/internal/report"
	"github.com/saessak-labs/planterm/internal/session"
	"github.com/saessak-labs/planterm/internal/tui"
)

var (
	growthPlant   string
	growthUnit    string
	growthPeriods int
	growthChart   bool
)

var growthCmd = &cobra.Command{
	Use:   "growth [image]",
	Short: "Fetch and show the growth prediction",
	Long: `Fetch the growth prediction for a plant and render it as a table.
With an image argument the photo drives the prediction; without one the
plant name from the last identification (or --plant) is used.

The normalized series is stored locally so the tui growth page renders
it without refetching.

Examples:
  # Growth prediction for the last identified plant
  planterm growth

  # From a fresh photo, weekly resolution
  planterm growth --unit week plant.jpg

  # By name, with a sparkline chart
  planterm growth --plant 몬스테라 --chart`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGrowth,
}

func init() {
	growthCmd.Flags().StringVar(&growthPlant, "plant", "", "plant name (defaults to the last identification)")
	growthCmd.Flags().StringVar(&growthUnit, "unit", "month", "period unit: month|week")
	growthCmd.Flags().IntVar(&growthPeriods, "periods", 12, "number of periods to predict")
	growthCmd.Flags().BoolVar(&growthChart, "chart", false, "render sparkline charts above the table")
}

func runGrowth(cmd *cobra.Command, args []string) error {
	svc, err := setup()
	if err != nil {
		return err
	}
	defer svc.log.Sync()

	plantName := growthPlant
	if plantName == "" {
		if snap, ok := session.LoadSnapshot(svc.store); ok {
			plantName = snap.Identification.PlantName
		}
	}

	var resp *api.InsightResponse
	if len(args) == 1 {
		resp, err = svc.client.GrowthInsight(cmd.Context(), api.GrowthInsightOptions{
			ImagePath:   args[0],
			SpeciesHint: plantName,
			PeriodUnit:  growthUnit,
			MaxPeriods:  growthPeriods,
		})
	} else {
		if plantName == "" {
			return fmt.Errorf("식물 이름이 없습니다. 이미지를 넘기거나 --plant를 지정하거나 먼저 planterm identify를 실행하세요")
		}
		resp, err = svc.client.MonthlyAnalysis(cmd.Context(), plantName, growthPeriods)
	}
	if err != nil {
		return err
	}

	series := growth.Normalize(resp, plantName)
	if err := session.SaveGrowthPreview(svc.store, session.GrowthPreview{
		Series:  series,
		SavedAt: time.Now(),
	}); err != nil {
		svc.log.Warn(cmd.Context(), "failed to store growth preview", zap.Error(err))
	}

	if series.PlantName != "" {
		cmd.Printf("[성장 예측] %s\n", series.PlantName)
	} else {
		cmd.Println("[성장 예측]")
	}
	if series.Synthetic {
		cmd.Println("※ 데모용 합성 데이터입니다. 실제 예측이 아닙니다.")
	}
	if growthChart {
		cmd.Println(tui.GrowthCharts(&series))
	}
	cmd.Print(report.GrowthTable(series.Rows))

	if series.Analysis != "" {
		cmd.Println()
		cmd.Println("[AI 종합 설명 및 조언]")
		cmd.Printf("  %s\n", series.Analysis)
	}
	return nil
}
