package storage

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations. Each migration's
// version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS routines (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT,
	time_of_day TEXT,
	is_active   INTEGER NOT NULL DEFAULT 1,
	color       TEXT,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT,
	completed   INTEGER NOT NULL DEFAULT 0,
	date        TEXT NOT NULL,
	time        TEXT,
	priority    TEXT,
	duration    INTEGER,
	time_of_day TEXT,
	visual_aid  TEXT,
	color       TEXT,
	routine_id  TEXT REFERENCES routines(id) ON DELETE SET NULL,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS routine_days (
	routine_id TEXT NOT NULL REFERENCES routines(id) ON DELETE CASCADE,
	day        INTEGER NOT NULL CHECK (day BETWEEN 0 AND 6),
	PRIMARY KEY (routine_id, day)
);

CREATE INDEX IF NOT EXISTS idx_tasks_date ON tasks(date);
CREATE INDEX IF NOT EXISTS idx_tasks_routine_id ON tasks(routine_id);
CREATE INDEX IF NOT EXISTS idx_routine_days_day ON routine_days(day);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
