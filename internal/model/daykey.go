package model

import "time"

// DayFormat is the layout used to print a DayKey.
const DayFormat = "2006-01-02"

// DayKey is the UTC midnight of a calendar date, in seconds since the epoch.
type DayKey int64

// Time returns the UTC midnight instant of the key.
func (k DayKey) Time() time.Time { return time.Unix(int64(k), 0).UTC() }

// String formats the key as a date.
func (k DayKey) String() string { return k.Time().Format(DayFormat) }

// NullDayKey is a DayKey that may be absent, in the manner of sql.NullInt64.
type NullDayKey struct {
	Key   DayKey
	Valid bool
}

// SomeDay wraps a present key.
func SomeDay(k DayKey) NullDayKey { return NullDayKey{Key: k, Valid: true} }

// NoDay is the absent key.
var NoDay = NullDayKey{}

func (n NullDayKey) String() string {
	if !n.Valid {
		return "null"
	}
	return n.Key.String()
}
