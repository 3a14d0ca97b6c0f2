// Package db provides SQLite access to the call-log database.
package db

// schema mirrors the platform call-log columns. _id is the opaque id handed
// to clients; name is the cached display name.
const schema = `
	CREATE TABLE IF NOT EXISTS calls (
		_id INTEGER PRIMARY KEY AUTOINCREMENT,
		number TEXT,
		date INTEGER NOT NULL,
		duration INTEGER NOT NULL DEFAULT 0,
		type INTEGER NOT NULL,
		new INTEGER NOT NULL DEFAULT 1,
		name TEXT
	);

	CREATE INDEX IF NOT EXISTS calls_date_idx ON calls(date);

	CREATE TABLE IF NOT EXISTS permissions (
		capability TEXT PRIMARY KEY,
		granted INTEGER NOT NULL DEFAULT 0
	);
`
