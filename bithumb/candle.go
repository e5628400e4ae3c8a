package bithumb

import (
	"fmt"
	"strings"
	"time"
)

// Interval is a candlestick period accepted by the exchange.
type Interval string

const (
	Minute1  Interval = "1m"
	Minute3  Interval = "3m"
	Minute5  Interval = "5m"
	Minute10 Interval = "10m"
	Minute30 Interval = "30m"
	Hour1    Interval = "1h"
	Hour6    Interval = "6h"
	Hour12   Interval = "12h"
	Hour24   Interval = "24h"
)

var intervals = map[Interval]time.Duration{
	Minute1:  time.Minute,
	Minute3:  3 * time.Minute,
	Minute5:  5 * time.Minute,
	Minute10: 10 * time.Minute,
	Minute30: 30 * time.Minute,
	Hour1:    time.Hour,
	Hour6:    6 * time.Hour,
	Hour12:   12 * time.Hour,
	Hour24:   24 * time.Hour,
}

// Intervals lists the supported intervals, shortest first.
func Intervals() []Interval {
	return []Interval{Minute1, Minute3, Minute5, Minute10, Minute30, Hour1, Hour6, Hour12, Hour24}
}

// ParseInterval validates s against the supported set.
func ParseInterval(s string) (Interval, error) {
	i := Interval(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := intervals[i]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInterval, s)
	}
	return i, nil
}

// Duration returns the length of one candle, or 0 for an unknown interval.
func (i Interval) Duration() time.Duration { return intervals[i] }

// kst is Korea Standard Time. Korea has not observed DST since 1988, so a
// fixed offset matches the exchange's civil clock.
var kst = time.FixedZone("KST", 9*60*60)

// naiveKST converts epoch milliseconds to the KST wall clock and drops the
// zone: the wall clock is re-expressed in UTC so no offset is attached.
func naiveKST(ms int64) time.Time {
	t := time.UnixMilli(ms).In(kst)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// Candle is one row of a candle series.
type Candle struct {
	Time   time.Time // naive KST
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// candleColumns is the column order of a series.
var candleColumns = []string{"open", "high", "low", "close", "volume"}

// CandleSeries is a time indexed table of candles in response order.
type CandleSeries struct {
	OrderCurrency   string
	PaymentCurrency string
	Interval        Interval
	Rows            []Candle

	// Duplicates counts rows dropped because their timestamp was already present.
	Duplicates int
}

// Columns returns the value columns in table order.
func (s *CandleSeries) Columns() []string {
	return append([]string(nil), candleColumns...)
}

// Len returns the number of rows.
func (s *CandleSeries) Len() int { return len(s.Rows) }

// Index returns the row timestamps.
func (s *CandleSeries) Index() []time.Time {
	out := make([]time.Time, len(s.Rows))
	for i, r := range s.Rows {
		out[i] = r.Time
	}
	return out
}

// Column returns one value column by name.
func (s *CandleSeries) Column(name string) ([]float64, error) {
	pick, ok := map[string]func(Candle) float64{
		"open":   func(c Candle) float64 { return c.Open },
		"high":   func(c Candle) float64 { return c.High },
		"low":    func(c Candle) float64 { return c.Low },
		"close":  func(c Candle) float64 { return c.Close },
		"volume": func(c Candle) float64 { return c.Volume },
	}[name]
	if !ok {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	out := make([]float64, len(s.Rows))
	for i, r := range s.Rows {
		out[i] = pick(r)
	}
	return out, nil
}

// Values returns each row's values in Columns order.
func (s *CandleSeries) Values() [][]float64 {
	out := make([][]float64, len(s.Rows))
	for i, r := range s.Rows {
		out[i] = []float64{r.Open, r.High, r.Low, r.Close, r.Volume}
	}
	return out
}

// Wire order of a candlestick row: close comes before high and low.
const (
	rowTime = iota
	rowOpen
	rowClose
	rowHigh
	rowLow
	rowVolume
	rowLen
)

func buildCandleSeries(data any) (*CandleSeries, error) {
	rows, ok := data.([]any)
	if !ok {
		if data == nil {
			return nil, &FieldError{Field: "data", Err: ErrMissingField}
		}
		return nil, &FieldError{Field: "data", Value: data, Err: ErrFieldType}
	}

	s := &CandleSeries{Rows: make([]Candle, 0, len(rows))}
	seen := make(map[int64]struct{}, len(rows))

	for i, raw := range rows {
		field := fmt.Sprintf("data[%d]", i)
		row, ok := raw.([]any)
		if !ok {
			return nil, &FieldError{Field: field, Value: raw, Err: ErrFieldType}
		}
		if len(row) < rowLen {
			return nil, &FieldError{Field: fmt.Sprintf("%s[%d]", field, len(row)), Err: ErrMissingField}
		}

		ms, err := toInt64(field+"[0]", row[rowTime])
		if err != nil {
			return nil, err
		}
		if _, dup := seen[ms]; dup {
			s.Duplicates++
			continue
		}
		seen[ms] = struct{}{}

		c := Candle{Time: naiveKST(ms)}
		for _, col := range []struct {
			idx int
			dst *float64
		}{
			{rowOpen, &c.Open},
			{rowHigh, &c.High},
			{rowLow, &c.Low},
			{rowClose, &c.Close},
			{rowVolume, &c.Volume},
		} {
			if *col.dst, err = toFloat(fmt.Sprintf("%s[%d]", field, col.idx), row[col.idx]); err != nil {
				return nil, err
			}
		}
		s.Rows = append(s.Rows, c)
	}
	return s, nil
}
