package collector

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"PortfolioLens/internal/bucketer"
	"PortfolioLens/internal/model"
)

// Defaults fill the flags a document leaves out.
type Defaults struct {
	ShowTrades    bool
	ShowDividends bool
	Lookback      model.Lookback
}

// Collector turns a loaded document into annotation inputs.
type Collector struct {
	Source   Source
	Defaults Defaults
}

// NewCollector creates a new Collector.
func NewCollector(source Source, defaults Defaults) *Collector {
	return &Collector{Source: source, Defaults: defaults}
}

// Collect loads the document and normalizes it: bars are bucketed to UTC days,
// sorted ascending and deduplicated, the last bar of a day winning.
// Bad bars, a bad pin or a bad lookback are logged and skipped.
func (c *Collector) Collect(ctx context.Context) (*model.Inputs, error) {
	doc, err := c.Source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load from %s: %w", c.Source.Name(), err)
	}

	in := &model.Inputs{
		Symbol:         doc.Symbol,
		Bars:           normalizeBars(doc.Bars),
		Trades:         doc.Trades,
		Dividends:      doc.Dividends,
		ShowTrades:     c.Defaults.ShowTrades,
		ShowDividends:  c.Defaults.ShowDividends,
		ReferencePrice: doc.ReferencePrice,
		Lookback:       c.Defaults.Lookback,
		LoadedAt:       time.Now(),
	}
	if doc.ShowTrades != nil {
		in.ShowTrades = *doc.ShowTrades
	}
	if doc.ShowDividends != nil {
		in.ShowDividends = *doc.ShowDividends
	}
	if doc.Pin != nil {
		if day, err := bucketer.Of(*doc.Pin); err != nil {
			log.Printf("[WARN] %s: ignoring pin: %v", doc.Symbol, err)
		} else {
			in.Pin = model.SomeDay(day)
		}
	}
	if doc.Lookback != "" {
		if l, err := model.ParseLookback(doc.Lookback); err != nil {
			log.Printf("[WARN] %s: %v, using %s", doc.Symbol, err, c.Defaults.Lookback)
		} else {
			in.Lookback = l
		}
	}
	if len(in.Bars) == 0 {
		log.Printf("[WARN] %s: document from %s has no usable bars", doc.Symbol, c.Source.Name())
	}
	return in, nil
}

func normalizeBars(raw []Bar) []model.OHLCV {
	byDay := make(map[model.DayKey]model.OHLCV, len(raw))
	for i, wb := range raw {
		day, err := bucketer.Of(wb.Time)
		if err != nil {
			log.Printf("[WARN] skipping bar %d: %v", i, err)
			continue
		}
		byDay[day] = model.OHLCV{
			Time:   day.Time(),
			Open:   wb.Open,
			High:   wb.High,
			Low:    wb.Low,
			Close:  wb.Close,
			Volume: wb.Volume,
		}
	}
	bars := make([]model.OHLCV, 0, len(byDay))
	for _, b := range byDay {
		bars = append(bars, b)
	}
	// Ensure chronological order
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars
}
