// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package flood

import (
	"fmt"
	"strings"
)

// RenderReport produces the markdown summary of one analyzed event
// (spec §4.H step 6).
func RenderReport(r Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Flood event report: %s\n\n", r.Peak.SiteCode)
	fmt.Fprintf(&b, "- Crest instant: %s\n", r.Peak.CrestInstant.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "- Peak stage: %.2f ft\n", r.Peak.PeakStage)
	fmt.Fprintf(&b, "- Severity: %s\n", r.Peak.Severity)
	fmt.Fprintf(&b, "- Event type: %s\n\n", r.EventType)

	b.WriteString("## Precursor window\n\n")
	fmt.Fprintf(&b, "- Window start: %s\n", r.Window.Start.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "- Total rise: %.2f ft\n", r.Window.TotalRiseFt)
	fmt.Fprintf(&b, "- Duration: %.1f h\n", r.Window.DurationHours)
	fmt.Fprintf(&b, "- Average rise rate: %.3f ft/day\n", r.Window.AvgRiseRatePerDay)
	fmt.Fprintf(&b, "- Max single-day rise: %.2f ft\n", r.Window.MaxSingleDayRiseFt)
	if r.Window.FellBackToHorizon {
		b.WriteString("- No threshold crossing found within the lookback window; window start is the lookback horizon.\n")
	}
	b.WriteString("\n")

	b.WriteString("## Linked observations\n\n")
	b.WriteString("| Instant | Stage (ft) | Phase |\n|---|---|---|\n")
	for _, o := range r.Observations {
		fmt.Fprintf(&b, "| %s | %.2f | %s |\n", o.Instant.Format("2006-01-02 15:04"), o.Stage, o.Phase)
	}
	b.WriteString("\n")

	b.WriteString("## CWMS correlation\n\n")
	fmt.Fprintf(&b, "- Backwater detected: %t\n\n", r.Correlation.BackwaterDetected)
	if len(r.Correlation.Samples) > 0 {
		b.WriteString("| Instant | Mississippi (ft) | Illinois (ft) | Differential (ft) |\n|---|---|---|---|\n")
		for i, s := range r.Correlation.Samples {
			fmt.Fprintf(&b, "| %s | %.2f | %.2f | %.2f |\n", s.Instant.Format("2006-01-02 15:04"), s.MississippiStage, s.IllinoisStage, r.Correlation.Differentials[i])
		}
	}

	return b.String()
}
