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

CREATE TABLE IF NOT EXISTS projects (
	id         TEXT NOT NULL,
	source_id  TEXT NOT NULL,
	name       TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT '',
	fetched_at DATETIME NOT NULL,
	PRIMARY KEY (source_id, id)
);

CREATE TABLE IF NOT EXISTS task_snapshots (
	source_id      TEXT NOT NULL,
	project_id     TEXT NOT NULL,
	task_id        TEXT NOT NULL,
	subject        TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL DEFAULT '',
	priority       TEXT NOT NULL DEFAULT '',
	progress       REAL NOT NULL DEFAULT 0,
	exp_start_date TEXT NOT NULL DEFAULT '',
	exp_end_date   TEXT NOT NULL DEFAULT '',
	assigned_to    TEXT NOT NULL DEFAULT '',
	parent_task_id TEXT NOT NULL DEFAULT '',
	is_group       INTEGER NOT NULL DEFAULT 0,
	depends_on     TEXT NOT NULL DEFAULT '[]',
	position       INTEGER NOT NULL,
	fetched_at     DATETIME NOT NULL,
	PRIMARY KEY (source_id, project_id, task_id)
);

CREATE TABLE IF NOT EXISTS refreshes (
	id          TEXT PRIMARY KEY,
	source_id   TEXT NOT NULL,
	project_id  TEXT NOT NULL,
	task_count  INTEGER NOT NULL DEFAULT 0,
	duration_ms INTEGER NOT NULL DEFAULT 0,
	error       TEXT NOT NULL DEFAULT '',
	finished_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_snapshots_project ON task_snapshots(source_id, project_id, position);
CREATE INDEX IF NOT EXISTS idx_projects_source ON projects(source_id);
CREATE INDEX IF NOT EXISTS idx_refreshes_finished ON refreshes(finished_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
