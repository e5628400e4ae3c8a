package journal

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/bithumb/bithumb"
	"github.com/rustyeddy/bithumb/pkg/id"
)

type SQLite struct {
	db  *sql.DB
	log *slog.Logger
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}

	return &SQLite{
		db:  db,
		log: slog.Default().With(slog.String("component", "journal")),
	}, nil
}

// Record stores e. A missing ID is minted from e.Time.
func (j *SQLite) Record(e Entry) error {
	if e.ID == "" {
		e.ID = id.At(e.Time)
	}
	_, err := j.db.Exec(`
		INSERT INTO orders
		(id, time, kind, side, order_currency, payment_currency, order_id, price, units)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Time.UTC(), string(e.Kind), string(e.Side),
		e.OrderCurrency, e.PaymentCurrency, e.OrderID,
		e.Price.String(), e.Units.String(),
	)
	if err != nil {
		return fmt.Errorf("record %s %s: %w", e.Kind, e.OrderID, err)
	}
	return nil
}

// Hook returns an order hook for bithumb.Private.OnOrder. Write failures
// are logged, since the order itself already went through.
func (j *SQLite) Hook() func(bithumb.OrderEvent) {
	return func(ev bithumb.OrderEvent) {
		e := FromEvent(ev)
		if err := j.Record(e); err != nil {
			j.log.Error("journal write failed", "order_id", e.OrderID, "err", err)
		}
	}
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

var _ Journal = (*SQLite)(nil)
