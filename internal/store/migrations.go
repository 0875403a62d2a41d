package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

-- The title width matches the validation rule at the boundary. SQLite does
-- not truncate, so the CHECK makes an over-long title a hard error instead
-- of silent data loss.
CREATE TABLE IF NOT EXISTS todos (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL CHECK (length(title) <= 50),
	completed   INTEGER NOT NULL DEFAULT 0 CHECK (completed IN (0, 1)),
	description TEXT NOT NULL DEFAULT '',
	created_at  DATETIME NOT NULL,
	updated_at  DATETIME NOT NULL
);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
