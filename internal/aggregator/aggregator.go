// Package aggregator folds trade and dividend events into one bucket per trading day
// and derives the marker list drawn on the price chart.
package aggregator

import (
	"fmt"
	"log"
	"sort"

	"PortfolioLens/internal/bucketer"
	"PortfolioLens/internal/model"
)

// Options selects which event classes are visible and how their texts read.
type Options struct {
	ShowTrades    bool
	ShowDividends bool
	Formatter     Formatter
}

// EventKind names the class of a dropped event.
type EventKind string

const (
	KindTrade    EventKind = "trade"
	KindDividend EventKind = "dividend"
)

// Dropped records an event skipped because it could not be bucketed.
type Dropped struct {
	Kind  EventKind
	Index int // position in the input slice
	Err   error
}

// Result is the complete derived state of one aggregation pass.
type Result struct {
	Buckets map[model.DayKey]*model.Bucket
	Markers []model.RenderMarker
	Dropped []Dropped
}

// Bucket returns the bucket of day, if any.
func (r Result) Bucket(day model.DayKey) (*model.Bucket, bool) {
	b, ok := r.Buckets[day]
	return b, ok
}

// EventCount is the total number of events held by all buckets.
func (r Result) EventCount() int {
	n := 0
	for _, b := range r.Buckets {
		n += b.EventCount()
	}
	return n
}

// Aggregate buckets the visible events by day key. Trades are applied in input order,
// then dividends, so every bucket lists buys, sells and dividends in arrival order.
// An event with an unusable timestamp or side is dropped alone.
func Aggregate(trades []model.TradeEvent, dividends []model.DividendEvent, opts Options) Result {
	res := Result{Buckets: make(map[model.DayKey]*model.Bucket)}

	bucket := func(day model.DayKey) *model.Bucket {
		b, ok := res.Buckets[day]
		if !ok {
			b = &model.Bucket{Day: day}
			res.Buckets[day] = b
		}
		return b
	}

	if opts.ShowTrades {
		for i, ev := range trades {
			if ev.Side != model.SideBuy && ev.Side != model.SideSell {
				res.drop(KindTrade, i, fmt.Errorf("unknown trade side %q", ev.Side))
				continue
			}
			day, err := bucketer.Of(ev.Time)
			if err != nil {
				res.drop(KindTrade, i, err)
				continue
			}
			b := bucket(day)
			text := opts.Formatter.TradeText(ev)
			if ev.Side == model.SideBuy {
				b.BuyTexts = append(b.BuyTexts, text)
				b.HasBuy = true
			} else {
				b.SellTexts = append(b.SellTexts, text)
				b.HasSell = true
			}
		}
	}

	if opts.ShowDividends {
		for i, ev := range dividends {
			day, err := bucketer.Of(ev.Time)
			if err != nil {
				res.drop(KindDividend, i, err)
				continue
			}
			b := bucket(day)
			b.DividendTexts = append(b.DividendTexts, opts.Formatter.DividendText(ev))
			b.HasDividend = true
		}
	}

	res.Markers = Markers(res.Buckets)
	return res
}

func (r *Result) drop(kind EventKind, index int, err error) {
	log.Printf("[WARN] skipping %s #%d: %v", kind, index, err)
	r.Dropped = append(r.Dropped, Dropped{Kind: kind, Index: index, Err: err})
}

// Markers derives one marker per non-empty bucket, ascending by day.
func Markers(buckets map[model.DayKey]*model.Bucket) []model.RenderMarker {
	markers := make([]model.RenderMarker, 0, len(buckets))
	for _, b := range buckets {
		if b.Empty() {
			continue
		}
		markers = append(markers, Marker(b))
	}
	sort.Slice(markers, func(i, j int) bool { return markers[i].Day < markers[j].Day })
	return markers
}

// Marker applies the style policy to a bucket.
func Marker(b *model.Bucket) model.RenderMarker {
	style := b.Style()
	pos, color, shape := style.Appearance()
	return model.RenderMarker{
		Day:      b.Day,
		Position: pos,
		Color:    color,
		Shape:    shape,
		Label:    style.Label(),
	}
}
