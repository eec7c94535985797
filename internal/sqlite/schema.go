package sqlite

const createSettings = `CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

// schemaDDL lists all CREATE statements in dependency order.
var schemaDDL = []string{
	createSettings,
}
