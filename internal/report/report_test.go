package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saessak-labs/planterm/internal/api"
	"github.com/saessak-labs/planterm/internal/growth"
	"github.com/saessak-labs/planterm/internal/session"
)

func fp(v float64) *float64 { return &v }

func sampleSnapshot() session.Snapshot {
	sci := "Monstera deliciosa"
	return session.Snapshot{
		Identification: api.Identification{
			PlantName:      "몬스테라",
			ScientificName: &sci,
			Confidence:     0.93,
			CommonNames:    []string{"Swiss cheese plant"},
		},
		CareGuide: &api.CareGuide{
			Watering: "겉흙이 마르면 충분히",
			Sunlight: "밝은 간접광",
			Tips:     []string{"잎을 정기적으로 닦아주세요"},
		},
		Timestamp: time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
	}
}

func TestRender_Identification(t *testing.T) {
	out := Render(sampleSnapshot(), nil)

	assert.Contains(t, out, "몬스테라")
	assert.Contains(t, out, "Monstera deliciosa")
	assert.Contains(t, out, "93.0%")
	assert.Contains(t, out, "물주기: 겉흙이 마르면 충분히")
	assert.Contains(t, out, "팁 1: 잎을 정기적으로 닦아주세요")
}

func TestRender_SkipsEmptyCareFields(t *testing.T) {
	snap := sampleSnapshot()
	snap.CareGuide = &api.CareGuide{Watering: "주 1회"}
	out := Render(snap, nil)

	assert.Contains(t, out, "물주기: 주 1회")
	assert.NotContains(t, out, "햇빛:")
	assert.NotContains(t, out, "토양:")
}

func TestRender_GrowthSeries(t *testing.T) {
	series := &growth.Series{
		Rows: []growth.Row{
			{Label: "현재", Typical: 15, Good: fp(15), Bad: fp(15)},
			{Label: "M1", Typical: 17.25, Good: fp(18.5), Bad: nil},
		},
		Analysis: "꾸준히 자라는 중입니다.",
	}
	out := Render(sampleSnapshot(), series)

	assert.Contains(t, out, "현재")
	assert.Contains(t, out, "18.5")
	assert.Contains(t, out, "—", "missing bad bound renders as an em-dash")
	assert.Contains(t, out, "꾸준히 자라는 중입니다.")
	assert.NotContains(t, out, "데모용", "real data carries no synthetic notice")
}

func TestRender_SyntheticNotice(t *testing.T) {
	series := &growth.Series{
		Rows:      []growth.Row{{Label: "현재", Typical: 15, Good: fp(15), Bad: fp(15)}},
		Synthetic: true,
	}
	out := Render(sampleSnapshot(), series)
	assert.Contains(t, out, "데모용 합성 데이터", "synthetic series must be visibly marked")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, WriteFile(path, sampleSnapshot(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "식물 분석 리포트"))
}
