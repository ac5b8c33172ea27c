package cli

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/comitanigiacomo/presence-analyzer/internal/core/domain"
)

func renderTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func weekdayRows(report domain.WeekdayReport) [][]string {
	rows := make([][]string, 0, len(report))
	for _, v := range report {
		rows = append(rows, []string{v.Label, fmt.Sprintf("%.0f", v.Value), formatDuration(v.Value)})
	}
	return rows
}

// formatDuration renders seconds as a rounded Go duration, e.g. 8h20m47s.
func formatDuration(seconds float64) string {
	return (time.Duration(math.Round(seconds)) * time.Second).String()
}

// formatClock renders seconds since midnight as HH:MM:SS.
func formatClock(seconds float64) string {
	s := int(math.Round(seconds))
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s%3600/60, s%60)
}
