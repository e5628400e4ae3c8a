package journal

// Prices and units are stored as decimal text so they read back exactly.
const Schema = `
CREATE TABLE IF NOT EXISTS orders (
	id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	kind TEXT NOT NULL,
	side TEXT NOT NULL,
	order_currency TEXT NOT NULL,
	payment_currency TEXT NOT NULL,
	order_id TEXT NOT NULL,
	price TEXT NOT NULL,
	units TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_time ON orders(time);
CREATE INDEX IF NOT EXISTS idx_orders_order_id ON orders(order_id);
`
