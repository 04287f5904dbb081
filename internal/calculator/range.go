package calculator

import (
	"errors"
	"math"

	"PortfolioLens/internal/bucketer"
	"PortfolioLens/internal/model"
)

// WindowRange scans the bars inside a zoom window and returns their high and low.
func WindowRange(bars []model.OHLCV, w model.ZoomWindow) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		if !w.FitAll {
			day := bucketer.FromTime(b.Time)
			if day < w.From || day > w.To {
				continue
			}
		}
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	if math.IsInf(high, -1) {
		return 0, 0, errors.New("no bars inside window")
	}
	return high, low, nil
}

// clamp bounds v to [lo, hi]. The lower bound wins when hi < lo.
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
