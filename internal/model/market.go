package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Inputs is everything the host hands to the annotation layer for one chart.
type Inputs struct {
	Symbol         string
	Bars           []OHLCV // ascending, one per trading day
	Trades         []TradeEvent
	Dividends      []DividendEvent
	ShowTrades     bool
	ShowDividends  bool
	ReferencePrice *float64 // optional horizontal price line
	Pin            NullDayKey
	Lookback       Lookback
	LoadedAt       time.Time
}
