package model

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Side classifies a trade.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Timestamp is a raw event time as received from upstream: either ISO-8601 text or
// epoch seconds. It is normalized to a DayKey by the bucketer, which may reject it.
type Timestamp struct {
	text    string
	unix    int64
	epoch   bool
	invalid bool // text holds the raw JSON of an unusable value
}

// ISO wraps an ISO-8601 (or date-only) text timestamp.
func ISO(text string) Timestamp { return Timestamp{text: text} }

// Epoch wraps a timestamp in seconds since the epoch.
func Epoch(sec int64) Timestamp { return Timestamp{unix: sec, epoch: true} }

// At wraps a time.Time.
func At(t time.Time) Timestamp { return Epoch(t.Unix()) }

// Text returns the raw text and false when the timestamp is epoch based or invalid.
func (t Timestamp) Text() (string, bool) { return t.text, !t.epoch && !t.invalid }

// Valid is false for a timestamp decoded from a JSON value that is neither a string
// nor a number in the int64 range.
func (t Timestamp) Valid() bool { return !t.invalid }

// Unix returns the epoch seconds and false when the timestamp is text based.
func (t Timestamp) Unix() (int64, bool) { return t.unix, t.epoch }

func (t Timestamp) String() string {
	if t.epoch {
		return strconv.FormatInt(t.unix, 10)
	}
	return t.text
}

// UnmarshalJSON accepts either a JSON string or a JSON number of seconds; fractional
// seconds are floored. Any other value decodes to an invalid Timestamp so that only
// the event carrying it is rejected later.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*t = ISO(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		if sec, err := num.Int64(); err == nil {
			*t = Epoch(sec)
			return nil
		}
		if f, err := num.Float64(); err == nil && f >= math.MinInt64 && f < math.MaxInt64 {
			*t = Epoch(int64(math.Floor(f)))
			return nil
		}
	}
	*t = Timestamp{text: string(data), invalid: true}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.invalid {
		return []byte(t.text), nil
	}
	if t.epoch {
		return json.Marshal(t.unix)
	}
	return json.Marshal(t.text)
}

// TradeEvent is a classified buy or sell execution.
type TradeEvent struct {
	Time     Timestamp       `json:"time"`
	Side     Side            `json:"side"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"` // zero when unknown
	Currency string          `json:"currency,omitempty"`
	Label    string          `json:"label,omitempty"`
}

// DividendEvent is a classified dividend payment.
type DividendEvent struct {
	Time     Timestamp       `json:"time"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"`
	Label    string          `json:"label,omitempty"`
}
