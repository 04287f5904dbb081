package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"PortfolioLens/internal/aggregator"
	"PortfolioLens/internal/interaction"
	"PortfolioLens/internal/model"
)

// FormatMarkers lists every annotated day of a chart, oldest first.
func FormatMarkers(symbol string, res aggregator.Result) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📍 <b>%s annotations</b> | %s\n\n", html.EscapeString(symbol), time.Now().Format("2006-01-02")))
	if len(res.Markers) == 0 {
		b.WriteString("No trades or dividends to show.\n")
	}
	for _, m := range res.Markers {
		n := 0
		if bk, ok := res.Bucket(m.Day); ok {
			n = bk.EventCount()
		}
		b.WriteString(fmt.Sprintf("%s  %-3s %s (%d)\n", m.Day, m.Label, m.Color, n))
	}
	if len(res.Dropped) > 0 {
		b.WriteString(fmt.Sprintf("\n⚠️ %d event(s) skipped\n", len(res.Dropped)))
	}
	return b.String()
}

// FormatDay renders the detail of one bucket the way the tooltip shows it.
// A non-positive limit uses the tooltip default.
func FormatDay(day model.DayKey, bk *model.Bucket, limit int) string {
	if limit <= 0 {
		limit = interaction.DefaultMaxLines
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗓 <b>%s</b>\n", day))
	if bk == nil || bk.Empty() {
		b.WriteString("No events.\n")
		return b.String()
	}
	writeSections(&b, interaction.Sections(bk, limit))
	return b.String()
}

// FormatTooltip renders a tooltip state, mostly for replay output.
func FormatTooltip(st model.TooltipState) string {
	if !st.Visible {
		return "tooltip hidden\n"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("tooltip %s at (%.0f, %.0f)\n", st.Day, st.X, st.Y))
	writeSections(&b, st.Sections)
	return b.String()
}

// FormatWindow describes a zoom window and the price range inside it.
func FormatWindow(lookback model.Lookback, w model.ZoomWindow, high, low float64) string {
	var b strings.Builder
	if w.FitAll {
		b.WriteString(fmt.Sprintf("🔭 <b>Window</b> %s: full range\n", lookback))
	} else {
		b.WriteString(fmt.Sprintf("🔭 <b>Window</b> %s: %s → %s\n", lookback, w.From, w.To))
	}
	if high > 0 || low > 0 {
		b.WriteString(fmt.Sprintf("High: %.2f | Low: %.2f\n", high, low))
	}
	return b.String()
}

// FormatChanges reports marker days added or removed between two rebuilds.
// It returns "" when nothing changed.
func FormatChanges(symbol string, before, after []model.RenderMarker) string {
	prev := make(map[model.DayKey]model.RenderMarker, len(before))
	for _, m := range before {
		prev[m.Day] = m
	}
	var b strings.Builder
	for _, m := range after {
		old, ok := prev[m.Day]
		delete(prev, m.Day)
		switch {
		case !ok:
			b.WriteString(fmt.Sprintf("➕ %s %s\n", m.Day, m.Label))
		case old.Label != m.Label:
			b.WriteString(fmt.Sprintf("✏️ %s %s → %s\n", m.Day, old.Label, m.Label))
		}
	}
	for _, m := range before {
		if _, gone := prev[m.Day]; gone {
			b.WriteString(fmt.Sprintf("➖ %s %s\n", m.Day, m.Label))
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return fmt.Sprintf("🔔 <b>%s markers changed</b>\n\n%s", html.EscapeString(symbol), b.String())
}

func writeSections(b *strings.Builder, sections []model.TooltipSection) {
	for _, sec := range sections {
		b.WriteString(fmt.Sprintf("<b>%s</b>\n", sec.Title))
		for _, line := range sec.Lines {
			b.WriteString("  • " + html.EscapeString(line) + "\n")
		}
	}
}
