// Package report renders identification results and growth tables to a
// plain-text file. This is the export surface next to the schedule CSV.
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/saessak-labs/planterm/internal/growth"
	"github.com/saessak-labs/planterm/internal/session"
)

const divider = "============================================================"

// Render builds the full text report. series may be nil when no growth
// data has been fetched yet.
func Render(snap session.Snapshot, series *growth.Series) string {
	var sb strings.Builder

	sb.WriteString(divider + "\n")
	sb.WriteString("식물 분석 리포트\n")
	sb.WriteString(divider + "\n\n")

	id := snap.Identification
	sb.WriteString("[식별 결과]\n")
	sb.WriteString(fmt.Sprintf("  종명: %s\n", id.PlantName))
	if id.ScientificName != nil && *id.ScientificName != "" {
		sb.WriteString(fmt.Sprintf("  학명: %s\n", *id.ScientificName))
	}
	sb.WriteString(fmt.Sprintf("  신뢰도: %.1f%%\n", id.Confidence*100))
	if len(id.CommonNames) > 0 {
		sb.WriteString(fmt.Sprintf("  일반 명칭: %s\n", strings.Join(id.CommonNames, ", ")))
	}
	if !snap.Timestamp.IsZero() {
		sb.WriteString(fmt.Sprintf("  분석 일시: %s\n", snap.Timestamp.Format("2006-01-02 15:04")))
	}
	sb.WriteString("\n")

	if cg := snap.CareGuide; cg != nil {
		sb.WriteString("[관리 가이드]\n")
		writeCareLine(&sb, "물주기", cg.Watering)
		writeCareLine(&sb, "햇빛", cg.Sunlight)
		writeCareLine(&sb, "온도", cg.Temperature)
		writeCareLine(&sb, "습도", cg.Humidity)
		writeCareLine(&sb, "비료", cg.Fertilizer)
		writeCareLine(&sb, "토양", cg.Soil)
		for i, tip := range cg.Tips {
			sb.WriteString(fmt.Sprintf("  팁 %d: %s\n", i+1, tip))
		}
		sb.WriteString("\n")
	}

	if gp := snap.GrowthPrediction; gp != nil && len(gp.Stages) > 0 {
		sb.WriteString("[성장 단계]\n")
		for _, stage := range gp.Stages {
			sb.WriteString(fmt.Sprintf("  %s (%s): %s\n", stage.Stage, stage.Timeframe, stage.Description))
		}
		sb.WriteString("\n")
	}

	if series != nil && len(series.Rows) > 0 {
		sb.WriteString("[성장 예측]\n")
		if series.Synthetic {
			sb.WriteString("  ※ 데모용 합성 데이터입니다. 실제 예측이 아닙니다.\n")
		}
		sb.WriteString(GrowthTable(series.Rows))
		if series.Analysis != "" {
			sb.WriteString("\n[AI 종합 설명 및 조언]\n")
			sb.WriteString("  " + strings.ReplaceAll(series.Analysis, "\n", "\n  ") + "\n")
		}
	}

	return sb.String()
}

// GrowthTable renders canonical rows as an aligned 기간/일반/좋음/나쁨
// table in cm.
func GrowthTable(rows []growth.Row) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("  %-8s %10s %10s %10s\n", "기간", "일반(cm)", "좋음(cm)", "나쁨(cm)"))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("  %-8s %10s %10s %10s\n",
			r.Label,
			growth.FormatHeightValue(r.Typical),
			growth.FormatHeight(r.Good),
			growth.FormatHeight(r.Bad),
		))
	}
	return sb.String()
}

// WriteFile renders the report to path.
func WriteFile(path string, snap session.Snapshot, series *growth.Series) error {
	if err := os.WriteFile(path, []byte(Render(snap, series)), 0o600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func writeCareLine(sb *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	sb.WriteString(fmt.Sprintf("  %s: %s\n", label, value))
}
