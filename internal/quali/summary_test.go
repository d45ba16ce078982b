package quali

import (
	"strings"
	"testing"
	"time"
)

func testComparison(numDrivers int) *Comparison {
	comparison := &Comparison{
		Session:   SessionInfo{Year: 2024, Race: "Monaco", SessionCode: "Q"},
		Telemetry: make(map[string][]TelemetrySample),
	}

	for i := 0; i < numDrivers; i++ {
		comparison.Ranked = append(comparison.Ranked, RankedLap{
			Rank: i + 1,
			Lap: Lap{
				DriverCode: string(rune('A'+i)) + "DR",
				DriverName: "Driver " + string(rune('A'+i)),
				Team:       "Team " + string(rune('A'+i)),
				LapTime:    time.Duration(71000+i*100) * time.Millisecond,
				LapNumber:  i + 1,
			},
		})
	}

	return comparison
}

func TestSummaryTableLimitsRows(t *testing.T) {
	comparison := testComparison(15)

	rendered := SummaryTable(comparison, DefaultSummarySize)

	if !strings.Contains(rendered, "Driver A") {
		t.Errorf("expected first driver in table, got:\n%s", rendered)
	}

	if !strings.Contains(rendered, "Driver J") {
		t.Errorf("expected tenth driver in table, got:\n%s", rendered)
	}

	if strings.Contains(rendered, "Driver K") {
		t.Errorf("expected eleventh driver to be cut, got:\n%s", rendered)
	}

	if !strings.Contains(rendered, "01:11.000") {
		t.Errorf("expected formatted lap time in table, got:\n%s", rendered)
	}
}

func TestSummaryTableShortSession(t *testing.T) {
	rendered := SummaryTable(testComparison(2), DefaultSummarySize)

	if !strings.Contains(rendered, "Driver B") || strings.Contains(rendered, "Driver C") {
		t.Errorf("expected exactly the available drivers, got:\n%s", rendered)
	}
}

func TestSummaryTableFallsBackToDriverCode(t *testing.T) {
	comparison := testComparison(1)
	comparison.Ranked[0].DriverName = ""

	if rendered := SummaryTable(comparison, 0); !strings.Contains(rendered, "ADR") {
		t.Errorf("expected driver code fallback, got:\n%s", rendered)
	}
}
