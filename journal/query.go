package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/bithumb/bithumb"
)

// ErrNotFound is returned by Get for an unknown entry id.
var ErrNotFound = errors.New("journal entry not found")

const selectEntries = `
	SELECT id, time, kind, side, order_currency, payment_currency, order_id, price, units
	FROM orders`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var (
		e            Entry
		kind, side   string
		price, units string
	)
	if err := s.Scan(
		&e.ID,
		&e.Time,
		&kind,
		&side,
		&e.OrderCurrency,
		&e.PaymentCurrency,
		&e.OrderID,
		&price,
		&units,
	); err != nil {
		return Entry{}, err
	}
	e.Kind = bithumb.OrderKind(kind)
	e.Side = bithumb.Side(side)
	e.Time = e.Time.UTC()

	var err error
	if e.Price, err = decimal.NewFromString(price); err != nil {
		return Entry{}, fmt.Errorf("entry %s price: %w", e.ID, err)
	}
	if e.Units, err = decimal.NewFromString(units); err != nil {
		return Entry{}, fmt.Errorf("entry %s units: %w", e.ID, err)
	}
	return e, nil
}

// Get returns a single entry by ID.
func (j *SQLite) Get(entryID string) (Entry, error) {
	e, err := scanEntry(j.db.QueryRow(selectEntries+` WHERE id = ?`, entryID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, entryID)
		}
		return Entry{}, err
	}
	return e, nil
}

// ListByOrder returns every entry for an exchange order id, oldest first.
func (j *SQLite) ListByOrder(orderID string) ([]Entry, error) {
	return j.list(selectEntries+`
		WHERE order_id = ?
		ORDER BY time ASC, id ASC`, orderID)
}

// ListBetween returns entries whose time is within [start, end).
func (j *SQLite) ListBetween(start, end time.Time) ([]Entry, error) {
	return j.list(selectEntries+`
		WHERE time >= ? AND time < ?
		ORDER BY time ASC, id ASC`, start.UTC(), end.UTC())
}

func (j *SQLite) list(query string, args ...any) ([]Entry, error) {
	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
