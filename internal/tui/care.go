package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saessak-labs/planterm/internal/growth"
	"github.com/saessak-labs/planterm/internal/report"
	"github.com/saessak-labs/planterm/internal/session"
)

// careModel renders the care guide from the last identification. It holds
// no network state; everything comes out of the session store.
type careModel struct {
	deps      deps
	snap      session.Snapshot
	hasSnap   bool
	notice    string
	noticeErr bool
}

func newCareModel(d deps) careModel {
	m := careModel{deps: d}
	m.reload()
	return m
}

func (m *careModel) reload() {
	m.snap, m.hasSnap = session.LoadSnapshot(m.deps.store)
}

func (m careModel) update(msg tea.Msg) (careModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "e":
		return m.exportReport(), nil
	case "r":
		m.reload()
		m.notice = ""
	}
	return m, nil
}

// exportReport writes the full text report next to the schedule CSV
// export, including the stored growth preview when one exists.
func (m careModel) exportReport() careModel {
	if !m.hasSnap {
		m.notice = "내보낼 분석 결과가 없습니다."
		m.noticeErr = true
		return m
	}

	var series *growth.Series
	if preview, ok := session.LoadGrowthPreview(m.deps.store); ok {
		series = &preview.Series
	}

	path := fmt.Sprintf("식물리포트_%s.txt", time.Now().Format("2006-01-02"))
	if err := report.WriteFile(path, m.snap, series); err != nil {
		m.notice = errorText(err)
		m.noticeErr = true
		return m
	}
	m.notice = path + " 파일로 저장했습니다."
	m.noticeErr = false
	return m
}

func (m careModel) view() string {
	var content string
	content += sectionStyle.Render("┃ 관리 가이드") + "\n"

	if !m.hasSnap {
		content += dimStyle.Render("  먼저 [1] 식별 탭에서 식물을 분석해주세요.") + "\n"
		content += "\n" + footerKeys("1", "식별로 이동", "q", "종료")
		return content
	}

	content += labelStyle.Render("  대상: ") + valueStyle.Render(m.snap.Identification.PlantName) + "\n"

	if cg := m.snap.CareGuide; cg != nil {
		content += careLine("물주기", cg.Watering)
		content += careLine("햇빛", cg.Sunlight)
		content += careLine("온도", cg.Temperature)
		content += careLine("습도", cg.Humidity)
		content += careLine("비료", cg.Fertilizer)
		content += careLine("토양", cg.Soil)
		for i, tip := range cg.Tips {
			content += labelStyle.Render(fmt.Sprintf("  팁 %d: ", i+1)) + dimStyle.Render(tip) + "\n"
		}
	} else {
		content += dimStyle.Render("  이 식물에 대한 관리 가이드가 없습니다.") + "\n"
	}

	if gp := m.snap.GrowthPrediction; gp != nil && len(gp.Stages) > 0 {
		content += "\n" + sectionStyle.Render("┃ 성장 단계") + "\n"
		for _, stage := range gp.Stages {
			content += labelStyle.Render("  "+stage.Stage) +
				dimStyle.Render(" ("+stage.Timeframe+") ") +
				valueStyle.Render(stage.Description) + "\n"
		}
	}

	content += renderNotice(m.notice, m.noticeErr)
	content += "\n" + footerKeys("e", "리포트 내보내기", "r", "새로고침", "q", "종료")
	return content
}

func careLine(label, value string) string {
	if value == "" {
		return ""
	}
	return labelStyle.Render("  "+label+": ") + valueStyle.Render(value) + "\n"
}
