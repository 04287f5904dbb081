// Package bucketer normalizes timestamps to UTC-midnight day keys.
package bucketer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"PortfolioLens/internal/model"
)

// zoned layouts carry their own offset; the instant is converted to UTC before taking the date.
var zoned = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999Z07:00",
}

// naive layouts have no offset and are read as UTC wall clock.
var naive = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	model.DayFormat,
	"2006-1-2",
	"20060102",
}

// InputError reports a timestamp that cannot be normalized.
type InputError struct {
	Input string
	Err   error
}

func (e *InputError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid timestamp %q", e.Input)
	}
	return fmt.Sprintf("invalid timestamp %q: %v", e.Input, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// FromTime returns the key of the UTC calendar date of t.
func FromTime(t time.Time) model.DayKey {
	y, m, d := t.UTC().Date()
	return model.DayKey(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix())
}

// FromUnix returns the key of the UTC calendar date of sec seconds since the epoch.
func FromUnix(sec int64) model.DayKey {
	return FromTime(time.Unix(sec, 0))
}

// FromDate returns the key of a calendar date. Out of range values are rejected
// instead of being normalized into a neighbouring date.
func FromDate(year, month, day int) (model.DayKey, error) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return 0, &InputError{Input: fmt.Sprintf("%04d-%02d-%02d", year, month, day)}
	}
	return model.DayKey(t.Unix()), nil
}

// Parse normalizes an ISO-8601 text or a decimal epoch-seconds string.
func Parse(text string) (model.DayKey, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, &InputError{Input: text}
	}
	if sec, ok := parseEpoch(s); ok {
		return FromUnix(sec), nil
	}
	for _, layout := range zoned {
		if t, err := time.Parse(layout, s); err == nil {
			return FromTime(t), nil
		}
	}
	var lastErr error
	for _, layout := range naive {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return FromTime(t), nil
		}
		lastErr = err
	}
	return 0, &InputError{Input: text, Err: lastErr}
}

// parseEpoch reads decimal epoch seconds with an optional fraction, which is floored.
// Fewer than nine integer digits are left to the date layouts ("20240615").
func parseEpoch(s string) (int64, bool) {
	whole, frac, hasFrac := strings.Cut(s, ".")
	if len(strings.TrimPrefix(whole, "-")) <= 8 {
		return 0, false
	}
	sec, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, false
	}
	if hasFrac {
		if frac == "" || strings.Trim(frac, "0123456789") != "" {
			return 0, false
		}
		if sec < 0 && strings.Trim(frac, "0") != "" {
			sec--
		}
	}
	return sec, true
}

// Of normalizes an upstream event timestamp.
func Of(ts model.Timestamp) (model.DayKey, error) {
	if !ts.Valid() {
		return 0, &InputError{Input: ts.String()}
	}
	if sec, ok := ts.Unix(); ok {
		return FromUnix(sec), nil
	}
	text, _ := ts.Text()
	return Parse(text)
}

// FromChartTime normalizes a hover or click coordinate reported by the engine.
func FromChartTime(ct model.ChartTime) (model.DayKey, error) {
	switch v := ct.(type) {
	case model.UTCTimestamp:
		return FromUnix(int64(v)), nil
	case model.BusinessDay:
		return FromDate(v.Year, v.Month, v.Day)
	case nil:
		return 0, &InputError{Input: "<nil>"}
	default:
		return 0, &InputError{Input: fmt.Sprintf("%v", v)}
	}
}
