package growth

import (
	"fmt"
	"math"
)

// Linear demo model: seedlings start at 15cm and gain 3.5cm per period
// under good care, 60% of that under poor care. Purely for continuity
// when the backend sends no series at all.
const (
	defaultPeriods = 12
	baseHeightCM   = 15.0
	goodStepCM     = 3.5
	badStepFactor  = 0.6
)

// syntheticRows builds the deterministic fallback series: a "현재" row at
// the base height followed by one row per period.
func syntheticRows(periods int) []Row {
	if periods <= 0 {
		periods = defaultPeriods
	}
	rows := make([]Row, 0, periods+1)
	for i := 0; i <= periods; i++ {
		good := round1(baseHeightCM + float64(i)*goodStepCM)
		bad := round1(baseHeightCM + float64(i)*goodStepCM*badStepFactor)
		label := "현재"
		if i > 0 {
			label = fmt.Sprintf("%d개월", i)
		}
		rows = append(rows, Row{
			Label:   label,
			Typical: round1((good + bad) / 2),
			Good:    &good,
			Bad:     &bad,
		})
	}
	return rows
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
