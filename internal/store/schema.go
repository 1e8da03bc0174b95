package store

const schemaDDL = `
CREATE TABLE IF NOT EXISTS snapshots (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	sequence       INTEGER NOT NULL,
	timestamp      TEXT    NOT NULL,
	schema_version TEXT    NOT NULL,
	data           TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_sequence ON snapshots (sequence);
`
