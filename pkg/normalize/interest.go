package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"trends-dashboard/pkg/table"
	"trends-dashboard/pkg/trends"
)

const (
	TimestampColumn = "Timestamp"
	PartialColumn   = "isPartial"
	TimestampLayout = "2006-01-02 15:04"

	NoInterestMessage = "No data available for this time period"
)

// naive layouts carry no zone and are read as UTC
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Interest turns the provider's interest table into the display table:
// a leading Timestamp column in loc, then one integer column per value column.
// Keywords missing from a non-empty source table get an all-zero column.
func Interest(raw *trends.InterestTable, keywords []string, loc *time.Location) (*table.Table, error) {
	if raw.IsEmpty() {
		return table.Message(NoInterestMessage), nil
	}
	if loc == nil {
		loc = time.UTC
	}

	rows := len(raw.Index)
	timestamps := make([]table.Cell, rows)
	for i, value := range raw.Index {
		ts, err := ParseTimestamp(value)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		timestamps[i] = table.String(ts.In(loc).Format(TimestampLayout))
	}

	out := table.New()
	if err := out.AddColumn(TimestampColumn, timestamps); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(raw.Columns))
	for _, col := range raw.Columns {
		if col.Name == PartialColumn || col.Name == TimestampColumn {
			continue
		}
		seen[col.Name] = true

		cells := make([]table.Cell, rows)
		for i := range cells {
			var value json.RawMessage
			if i < len(col.Values) {
				value = col.Values[i]
			}
			cells[i] = table.Int(CoerceInt(value))
		}
		if err := out.AddColumn(col.Name, cells); err != nil {
			return nil, err
		}
	}

	for _, keyword := range keywords {
		if seen[keyword] {
			continue
		}
		seen[keyword] = true

		cells := make([]table.Cell, rows)
		for i := range cells {
			cells[i] = table.Int(0)
		}
		if err := out.AddColumn(keyword, cells); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// ParseTimestamp reads a provider timestamp. Zone-less values are UTC; all-digit
// values are unix seconds.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	if isDigits(value) {
		secs, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid unix timestamp %q: %w", value, err)
		}
		return time.Unix(secs, 0).UTC(), nil
	}

	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts.UTC(), nil
	}

	for _, layout := range naiveLayouts {
		if ts, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return ts, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}

// CoerceInt converts a raw provider value to a non-negative integer.
// Date-like strings are treated as missing; anything missing or not numeric is 0.
func CoerceInt(raw json.RawMessage) int64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}

	switch raw[0] {
	case 'n': // null
		return 0
	case 't':
		return 1
	case 'f':
		return 0
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		if isDateLike(s) {
			return 0
		}
		return parseNumber(s)
	case '{', '[':
		return 0
	default:
		return parseNumber(string(raw))
	}
}

func parseNumber(s string) int64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(f)
}

func isDateLike(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || isDigits(s) {
		return false
	}
	_, err := ParseTimestamp(s)
	return err == nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
