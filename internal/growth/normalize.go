// Package growth reconciles the backend's growth payload shapes into one
// canonical row set for charting and tabulation.
//
// The backend has shipped several shapes over time: an authoritative
// growth_graph with good/bad series, a flat monthly_data array with
// multiple field spellings, or nothing at all. Instead of per-shape page
// variants there is one priority chain here:
//
//  1. growth_graph.good_growth, paired with same-index bad_growth
//  2. monthly_data
//  3. a deterministic synthetic linear series, visibly marked as demo data
package growth

import (
	"fmt"

	"github.com/saessak-labs/planterm/internal/api"
)

// Row is one canonical chart/table row. Good and Bad are nil when the
// backend did not send a real measurement; Typical always carries a value
// per the fallback rule below.
type Row struct {
	Label   string
	Typical float64
	Good    *float64
	Bad     *float64
}

// Series is the canonical growth series.
type Series struct {
	PlantName string
	Rows      []Row
	// MinSize/MaxSize bound the chart's y axis.
	MinSize float64
	MaxSize float64
	// Analysis is the backend's comprehensive analysis text, if any.
	Analysis string
	// Synthetic marks the demo fallback series. Renderers must surface
	// this to the user; synthetic rows are continuity, not prediction.
	Synthetic bool
}

const (
	defaultMinSize = 0
	defaultMaxSize = 200
)

// Normalize maps an insight payload to the canonical series. It is a pure
// function of its input: feeding the same payload twice yields identical
// rows. plantName is the fallback when the payload names no plant.
func Normalize(resp *api.InsightResponse, plantName string) Series {
	s := Series{
		PlantName: plantName,
		MinSize:   defaultMinSize,
		MaxSize:   defaultMaxSize,
	}
	if resp == nil {
		s.Rows = syntheticRows(defaultPeriods)
		s.Synthetic = true
		return s
	}

	s.Analysis = resp.ComprehensiveAnalysis
	if resp.Identification != nil && resp.Identification.PlantName != "" {
		s.PlantName = resp.Identification.PlantName
	}

	if g := resp.GrowthGraph; g != nil && len(g.GoodGrowth) > 0 {
		if g.PlantName != "" {
			s.PlantName = g.PlantName
		}
		if g.MinSize != nil {
			s.MinSize = *g.MinSize
		}
		if g.MaxSize != nil {
			s.MaxSize = *g.MaxSize
		}
		s.Rows = graphRows(g)
		if len(s.Rows) > 0 {
			return s
		}
	}

	if len(resp.MonthlyData) > 0 {
		s.Rows = monthlyRows(resp.MonthlyData)
		return s
	}

	s.Rows = syntheticRows(defaultPeriods)
	s.Synthetic = true
	return s
}

// graphRows maps the authoritative growth graph. Entries missing period
// or size are dropped rather than aborting the mapping; a partial chart
// beats no chart.
func graphRows(g *api.GrowthGraph) []Row {
	unit := "M"
	if g.PeriodUnit == "week" {
		unit = "W"
	}

	rows := make([]Row, 0, len(g.GoodGrowth))
	for i, p := range g.GoodGrowth {
		if p.Period == nil || p.Size == nil {
			continue
		}
		good := *p.Size
		row := Row{
			Label: periodLabel(unit, *p.Period),
			Good:  &good,
		}
		if i < len(g.BadGrowth) && g.BadGrowth[i].Size != nil {
			bad := *g.BadGrowth[i].Size
			row.Bad = &bad
		}
		row.Typical = typicalOf(row.Good, row.Bad)
		rows = append(rows, row)
	}
	return rows
}

// monthlyRows maps the flat monthly fallback, accepting every field
// spelling the backend has used for the same values.
func monthlyRows(data []api.MonthlyRow) []Row {
	rows := make([]Row, 0, len(data))
	for i, m := range data {
		label := m.Period
		if label == "" {
			if i == 0 {
				label = "현재"
			} else {
				label = fmt.Sprintf("%d개월", i)
			}
		}

		good := firstNumber(m.GoodConditionHeight, m.Good)
		bad := firstNumber(m.BadConditionHeight, m.Bad)

		row := Row{Label: label, Good: good, Bad: bad}
		if m.ExpectedHeight != nil && *m.ExpectedHeight != 0 {
			row.Typical = *m.ExpectedHeight
		} else {
			row.Typical = typicalOf(good, bad)
		}
		rows = append(rows, row)
	}
	return rows
}

// typicalOf applies the fallback rule: mean when both bounds are present,
// else whichever exists, else 0. The bounds pass through unclamped even
// when bad > good; the normalizer reports what the backend said.
func typicalOf(good, bad *float64) float64 {
	switch {
	case good != nil && bad != nil:
		return (*good + *bad) / 2
	case good != nil:
		return *good
	case bad != nil:
		return *bad
	default:
		return 0
	}
}

func firstNumber(candidates ...*float64) *float64 {
	for _, c := range candidates {
		if c != nil {
			v := *c
			return &v
		}
	}
	return nil
}

func periodLabel(unit string, period int) string {
	if period == 0 {
		return "현재"
	}
	return fmt.Sprintf("%s%d", unit, period)
}
