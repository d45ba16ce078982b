package quali

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// DefaultSummarySize is how many classification rows the summary shows.
const DefaultSummarySize = 10

// SummaryTable renders the top n rows of the classification as a text
// table for the tool response.
func SummaryTable(comparison *Comparison, n int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Pos", "Driver", "Team", "Best Lap"})

	for _, line := range comparison.Ranked {
		if n > 0 && line.Rank > n {
			break
		}

		name := line.DriverName

		if name == "" {
			name = line.DriverCode
		}

		tw.AppendRow(table.Row{line.Rank, name, line.Team, MustFormatLapTime(line.LapTime)})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
