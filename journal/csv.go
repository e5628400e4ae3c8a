package journal

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/rustyeddy/bithumb/bithumb"
)

// CandleHeader is the header row written by WriteCandlesCSV.
var CandleHeader = []string{"time", "open", "high", "low", "close", "volume"}

// EntryHeader is the header row written by WriteEntriesCSV.
var EntryHeader = []string{"id", "time", "kind", "side", "order_currency", "payment_currency", "order_id", "price", "units"}

// WriteCandlesCSV writes s as CSV. Times are the naive KST wall clock
// without an offset.
func WriteCandlesCSV(w io.Writer, s *bithumb.CandleSeries) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CandleHeader); err != nil {
		return err
	}
	for _, c := range s.Rows {
		if err := cw.Write([]string{
			c.Time.Format("2006-01-02 15:04:05.000"),
			f(c.Open),
			f(c.High),
			f(c.Low),
			f(c.Close),
			f(c.Volume),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEntriesCSV writes journal entries as CSV.
func WriteEntriesCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(EntryHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{
			e.ID,
			e.Time.Format(time.RFC3339Nano),
			string(e.Kind),
			string(e.Side),
			e.OrderCurrency,
			e.PaymentCurrency,
			e.OrderID,
			e.Price.String(),
			e.Units.String(),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
