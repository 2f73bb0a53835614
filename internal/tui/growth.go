package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/saessak-labs/planterm/internal/api"
	"github.com/saessak-labs/planterm/internal/growth"
	"github.com/saessak-labs/planterm/internal/report"
	"github.com/saessak-labs/planterm/internal/session"
)

const (
	sparklineWidth  = 30
	sparklineHeight = 3
)

// Message types
type insightDoneMsg struct {
	seq    int
	series growth.Series
}

type insightFailMsg struct {
	seq int
	err error
}

// growthModel fetches growth insight for the identified plant and renders
// the canonical rows as sparklines plus a table. The last fetched series
// is persisted so revisits render instantly.
type growthModel struct {
	deps    deps
	spin    spinner.Model
	loading bool
	series  *growth.Series

	notice    string
	noticeErr bool
	seq       int
}

func newGrowthModel(d deps) growthModel {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = healthyStyle

	m := growthModel{deps: d, spin: spin}
	m.reload()
	return m
}

func (m *growthModel) reload() {
	if m.loading {
		return
	}
	if preview, ok := session.LoadGrowthPreview(m.deps.store); ok {
		series := preview.Series
		m.series = &series
	}
}

func (m growthModel) update(msg tea.Msg) (growthModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "r" && !m.loading {
			return m.fetch()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case insightDoneMsg:
		if msg.seq != m.seq {
			return m, nil // superseded request, drop
		}
		m.loading = false
		series := msg.series
		m.series = &series
		m.notice = ""
		if err := session.SaveGrowthPreview(m.deps.store, session.GrowthPreview{
			Series:  msg.series,
			SavedAt: time.Now(),
		}); err != nil {
			m.notice = errorText(err)
			m.noticeErr = true
		}
		return m, nil

	case insightFailMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.notice = errorText(msg.err)
		m.noticeErr = true
		return m, nil
	}
	return m, nil
}

func (m growthModel) fetch() (growthModel, tea.Cmd) {
	snap, ok := session.LoadSnapshot(m.deps.store)
	if !ok {
		m.notice = "먼저 [1] 식별 탭에서 식물을 분석해주세요."
		m.noticeErr = true
		return m, nil
	}

	m.loading = true
	m.notice = ""
	m.seq++
	return m, tea.Batch(m.spin.Tick, insightCmd(m.deps.client, snap, m.seq))
}

// insightCmd prefers the image-driven insight endpoint; when the stored
// image path is no longer readable it falls back to the name-driven
// monthly analysis. Either way the payload goes through the normalizer.
func insightCmd(c *api.Client, snap session.Snapshot, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		plantName := snap.Identification.PlantName

		var resp *api.InsightResponse
		var err error
		if imageReadable(snap.UploadedImagePath) {
			resp, err = c.GrowthInsight(ctx, api.GrowthInsightOptions{
				ImagePath:   snap.UploadedImagePath,
				SpeciesHint: plantName,
			})
		} else {
			resp, err = c.MonthlyAnalysis(ctx, plantName, 12)
		}
		if err != nil {
			return insightFailMsg{seq: seq, err: err}
		}
		return insightDoneMsg{seq: seq, series: growth.Normalize(resp, plantName)}
	}
}

func imageReadable(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (m growthModel) view() string {
	var content string
	content += sectionStyle.Render("┃ 성장 예측") + "\n"

	if m.loading {
		content += "\n" + overlayStyle.Render(m.spin.View()+" 성장 데이터를 분석하고 있습니다...") + "\n"
		content += "\n" + footerKeys("q", "종료")
		return content
	}

	content += renderNotice(m.notice, m.noticeErr)

	if m.series == nil {
		content += dimStyle.Render("  [r]을 눌러 성장 예측을 불러오세요.") + "\n"
		content += "\n" + footerKeys("r", "불러오기", "q", "종료")
		return content
	}

	s := m.series
	if s.PlantName != "" {
		content += labelStyle.Render("  대상: ") + valueStyle.Render(s.PlantName) + "\n"
	}
	if s.Synthetic {
		content += warningStyle.Render("  ⚠ 데모용 합성 데이터입니다. 실제 예측이 아닙니다.") + "\n"
	}

	content += GrowthCharts(s) + "\n\n"

	content += report.GrowthTable(s.Rows)

	if s.Analysis != "" {
		content += "\n" + sectionStyle.Render("┃ AI 종합 설명 및 조언") + "\n"
		content += dimStyle.Render("  "+s.Analysis) + "\n"
	}

	content += "\n" + footerKeys("r", "새로 불러오기", "q", "종료")
	return content
}

// GrowthCharts renders the good/bad sparklines for a series. Shared with
// the growth subcommand's --chart flag.
func GrowthCharts(s *growth.Series) string {
	var content string
	content += labelStyle.Render("  좋은 조건: ") + createSparkline(seriesValues(s.Rows, rowGood), goodSparkStyle) + "\n"
	content += labelStyle.Render("  나쁜 조건: ") + createSparkline(seriesValues(s.Rows, rowBad), badSparkStyle) + "\n"
	content += dimStyle.Render(fmt.Sprintf("  y축 범위: %.0f–%.0f cm", s.MinSize, s.MaxSize))
	return content
}

type rowBound int

const (
	rowGood rowBound = iota
	rowBad
)

// seriesValues extracts one bound for charting; rows without that bound
// fall back to the typical value so the sparkline keeps its shape.
func seriesValues(rows []growth.Row, bound rowBound) []float64 {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		switch {
		case bound == rowGood && r.Good != nil:
			out = append(out, *r.Good)
		case bound == rowBad && r.Bad != nil:
			out = append(out, *r.Bad)
		default:
			out = append(out, r.Typical)
		}
	}
	return out
}

// createSparkline creates a sparkline chart from series data
func createSparkline(data []float64, style lipgloss.Style) string {
	if len(data) == 0 {
		return dimStyle.Render(fmt.Sprintf("%*s", sparklineWidth, "no data"))
	}

	spark := sparkline.New(sparklineWidth, sparklineHeight)
	for _, v := range data {
		spark.Push(v)
	}

	return style.Render(spark.View())
}
