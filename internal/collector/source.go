package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"PortfolioLens/internal/model"
)

// Source defines the interface for loading a chart document.
type Source interface {
	Load(ctx context.Context) (*Document, error)
	Name() string
}

// Document is the JSON shape of one chart's inputs.
type Document struct {
	Symbol         string                `json:"symbol"`
	Bars           []Bar                 `json:"bars"`
	Trades         []model.TradeEvent    `json:"trades"`
	Dividends      []model.DividendEvent `json:"dividends"`
	ShowTrades     *bool                 `json:"show_trades,omitempty"`
	ShowDividends  *bool                 `json:"show_dividends,omitempty"`
	ReferencePrice *float64              `json:"reference_price,omitempty"`
	Pin            *model.Timestamp      `json:"pin,omitempty"`
	Lookback       string                `json:"lookback,omitempty"`
}

// Bar is one price bar; the time is either an ISO day or epoch seconds.
type Bar struct {
	Time   model.Timestamp `json:"time"`
	Open   float64         `json:"open"`
	High   float64         `json:"high"`
	Low    float64         `json:"low"`
	Close  float64         `json:"close"`
	Volume float64         `json:"volume"`
}

// wireDocument defers the decoding of list elements so one bad element is skipped alone.
type wireDocument struct {
	Document
	Bars      []json.RawMessage `json:"bars"`
	Trades    []json.RawMessage `json:"trades"`
	Dividends []json.RawMessage `json:"dividends"`
}

// Decode reads a Document from r. A bar, trade or dividend that does not decode is
// logged and skipped; only a malformed document fails.
func Decode(r io.Reader) (*Document, error) {
	var w wireDocument
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	doc := w.Document
	doc.Bars = decodeEach[Bar](w.Bars, "bar")
	doc.Trades = decodeEach[model.TradeEvent](w.Trades, "trade")
	doc.Dividends = decodeEach[model.DividendEvent](w.Dividends, "dividend")
	return &doc, nil
}

func decodeEach[T any](raw []json.RawMessage, kind string) []T {
	out := make([]T, 0, len(raw))
	for i, msg := range raw {
		var v T
		if err := json.Unmarshal(msg, &v); err != nil {
			log.Printf("[WARN] skipping %s %d: %v", kind, i, err)
			continue
		}
		out = append(out, v)
	}
	return out
}

// FileSource reads the document from a local JSON file on every load.
type FileSource struct {
	Path string
}

func (f *FileSource) Name() string { return "file" }

func (f *FileSource) Load(_ context.Context) (*Document, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Path, err)
	}
	defer fh.Close()
	return Decode(fh)
}

// MockSource returns a fixed document for development and testing.
type MockSource struct {
	Doc   *Document
	Err   error
	Loads int
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Load(_ context.Context) (*Document, error) {
	m.Loads++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Doc == nil {
		return &Document{}, nil
	}
	return m.Doc, nil
}
