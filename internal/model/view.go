package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Lookback is a zoom request in whole years. The zero value means the full range.
type Lookback int

// LookbackAll requests the full content.
const LookbackAll Lookback = 0

// All reports whether the lookback covers the whole series.
func (l Lookback) All() bool { return l <= 0 }

func (l Lookback) String() string {
	if l.All() {
		return "all"
	}
	return fmt.Sprintf("%dy", int(l))
}

// ParseLookback accepts "all", "N" or "Ny" with N a positive number of years.
func ParseLookback(s string) (Lookback, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "all" || s == "max" {
		return LookbackAll, nil
	}
	n, err := strconv.Atoi(strings.TrimSuffix(s, "y"))
	if err != nil {
		return LookbackAll, fmt.Errorf("invalid lookback %q: %w", s, err)
	}
	if n <= 0 {
		return LookbackAll, fmt.Errorf("invalid lookback %q: years must be positive", s)
	}
	return Lookback(n), nil
}

// ZoomWindow is a visible time range instruction for the engine.
type ZoomWindow struct {
	FitAll bool
	From   DayKey
	To     DayKey
}

// Point is a position in pixels relative to the chart container's top-left.
type Point struct {
	X float64
	Y float64
}

// Size is a container size in pixels.
type Size struct {
	Width  float64
	Height float64
}

// TooltipSection is one category of the detail panel.
type TooltipSection struct {
	Title string
	Lines []string
}

// TooltipState is the floating detail panel, recomputed on every hover.
type TooltipState struct {
	Day      NullDayKey
	X        float64
	Y        float64
	Visible  bool
	Sections []TooltipSection
}

// PinState is the host-selected day drawn with a persistent guide line.
type PinState struct {
	Day NullDayKey
}

// GuideWidth is the width in pixels of the pinned guide line.
const GuideWidth = 1

// Guide is the vertical line positioned over the pinned day.
type Guide struct {
	Visible bool
	X       float64
	Width   float64
}

// ChartTime is a raw time coordinate reported by the chart engine.
type ChartTime interface {
	isChartTime()
}

// UTCTimestamp is a chart time expressed in seconds since the epoch.
type UTCTimestamp int64

// BusinessDay is a chart time expressed as a calendar date.
type BusinessDay struct {
	Year  int
	Month int
	Day   int
}

func (UTCTimestamp) isChartTime() {}
func (BusinessDay) isChartTime()  {}
