package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies every schema statement. Statements are idempotent so
// Migrate may run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS strategies (
		id              TEXT PRIMARY KEY,
		title           TEXT NOT NULL,
		color_code      TEXT NOT NULL DEFAULT '',
		status          TEXT NOT NULL DEFAULT 'active'
		                CHECK(status IN ('draft','active','completed','archived')),
		start_date      TEXT NOT NULL,
		target_date     TEXT NOT NULL,
		completion_date TEXT,
		progress        INTEGER NOT NULL DEFAULT 0 CHECK(progress BETWEEN 0 AND 100),
		created_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		strategy_id TEXT NOT NULL REFERENCES strategies(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'not_started'
		            CHECK(status IN ('not_started','on_track','on_hold','behind','completed')),
		start_date  TEXT,
		due_date    TEXT,
		progress    INTEGER NOT NULL DEFAULT 0 CHECK(progress BETWEEN 0 AND 100),
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS actions (
		id          TEXT PRIMARY KEY,
		strategy_id TEXT NOT NULL REFERENCES strategies(id) ON DELETE CASCADE,
		project_id  TEXT REFERENCES projects(id) ON DELETE SET NULL,
		title       TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'not_started'
		            CHECK(status IN ('not_started','in_progress','at_risk','on_hold','achieved')),
		due_date    TEXT,
		is_archived INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS checklist_items (
		id          TEXT PRIMARY KEY,
		action_id   TEXT NOT NULL REFERENCES actions(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		is_done     INTEGER NOT NULL DEFAULT 0,
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS user_profile (
		id           TEXT PRIMARY KEY CHECK(id = 'default'),
		user_id      TEXT NOT NULL DEFAULT '',
		display_name TEXT NOT NULL DEFAULT '',
		email        TEXT NOT NULL DEFAULT '',
		timezone     TEXT NOT NULL DEFAULT '',
		role         TEXT NOT NULL DEFAULT 'viewer'
		             CHECK(role IN ('admin','leader','contributor','viewer'))
	)`,

	`CREATE TABLE IF NOT EXISTS sync_state (
		id         TEXT PRIMARY KEY CHECK(id = 'default'),
		source     TEXT NOT NULL,
		synced_at  TEXT NOT NULL,
		strategies INTEGER NOT NULL DEFAULT 0,
		projects   INTEGER NOT NULL DEFAULT 0,
		actions    INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_strategy ON projects(strategy_id)`,
	`CREATE INDEX IF NOT EXISTS idx_actions_strategy ON actions(strategy_id)`,
	`CREATE INDEX IF NOT EXISTS idx_actions_project ON actions(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_actions_due ON actions(due_date)`,
	`CREATE INDEX IF NOT EXISTS idx_checklist_action ON checklist_items(action_id, order_index)`,
}
