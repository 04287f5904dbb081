package calculator

import (
	"time"

	"PortfolioLens/internal/bucketer"
	"PortfolioLens/internal/model"
)

// ZoomWindow converts a lookback into a visible range ending at the last bar.
// An "all" lookback or an empty series asks the engine to fit its full content.
func ZoomWindow(lookback model.Lookback, bars []model.OHLCV) model.ZoomWindow {
	if lookback.All() || len(bars) == 0 {
		return model.ZoomWindow{FitAll: true}
	}
	to := bucketer.FromTime(bars[len(bars)-1].Time)
	return model.ZoomWindow{
		From: YearsBefore(to, int(lookback)),
		To:   to,
	}
}

// YearsBefore returns the same month and day n calendar years before day.
// Feb 29 maps to Feb 28 when the target year has no leap day.
func YearsBefore(day model.DayKey, n int) model.DayKey {
	t := day.Time()
	y, m, d := t.Year()-n, t.Month(), t.Day()
	if last := daysIn(y, m); d > last {
		d = last
	}
	return model.DayKey(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix())
}

func daysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
