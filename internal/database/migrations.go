package database

import "strings"

// migrations returns the ordered list of SQL migration groups for a driver.
// Each entry is a slice of SQL statements executed together in a single
// transaction; the version number is the 1-based index. Statements are
// written in the subset of SQL shared by SQLite and PostgreSQL, with
// {{blob}} standing in for the binary column type.
func migrations(driver string) [][]string {
	blob := "BLOB"
	if driver == DriverPostgres {
		blob = "BYTEA"
	}

	out := make([][]string, len(migrationSource))
	for i, group := range migrationSource {
		out[i] = make([]string, len(group))
		for j, stmt := range group {
			out[i][j] = strings.ReplaceAll(stmt, "{{blob}}", blob)
		}
	}
	return out
}

var migrationSource = [][]string{
	// Migration 1: core CRM tables
	{
		`CREATE TABLE leads (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			company TEXT NOT NULL,
			company_key TEXT NOT NULL,
			position TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'prospect',
			call_status TEXT NOT NULL DEFAULT 'not_called',
			revenue TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			industry TEXT NOT NULL DEFAULT '',
			website TEXT NOT NULL DEFAULT '',
			ceo TEXT NOT NULL DEFAULT '',
			whose_phone TEXT NOT NULL DEFAULT '',
			go_skip TEXT NOT NULL DEFAULT '',
			last_contact TEXT NOT NULL,
			scheduled_call TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE UNIQUE INDEX leads_company_unique ON leads (company_key)`,
		`CREATE INDEX idx_leads_user_created ON leads(user_id, created_at)`,

		`CREATE TABLE projects (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			company TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			deadline TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,

		`CREATE TABLE demos (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			lead_id TEXT,
			project_id TEXT,
			priority TEXT NOT NULL DEFAULT 'medium',
			status TEXT NOT NULL DEFAULT 'pending',
			due_date TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,

		`CREATE TABLE deals (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			lead_id TEXT,
			title TEXT NOT NULL,
			company TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			deal_value DOUBLE PRECISION NOT NULL DEFAULT 0,
			payment_type TEXT NOT NULL DEFAULT 'one_time',
			monthly_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			installation_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
			contract_length_months INTEGER NOT NULL DEFAULT 0,
			closed_date TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'active',
			salesman_name TEXT NOT NULL DEFAULT '',
			salesman_email TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX idx_deals_user_closed ON deals(user_id, closed_date)`,

		`CREATE TABLE status_updates (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			target_type TEXT NOT NULL,
			target_id TEXT NOT NULL,
			comment TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX idx_status_updates_target ON status_updates(target_type, target_id, created_at)`,

		`CREATE TABLE user_roles (
			id TEXT PRIMARY KEY,
			user_id TEXT UNIQUE NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,

		`CREATE TABLE activity_logs (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			user_email TEXT NOT NULL DEFAULT '',
			action_type TEXT NOT NULL,
			action_details TEXT NOT NULL DEFAULT '',
			target_type TEXT NOT NULL,
			target_id TEXT,
			target_name TEXT,
			metadata TEXT NOT NULL DEFAULT '{}',
			user_agent TEXT,
			timestamp TEXT NOT NULL
		)`,
		`CREATE INDEX idx_activity_logs_time ON activity_logs(timestamp)`,
	},

	// Migration 2: import runs and lead exports
	{
		`CREATE TABLE imports (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			file_name TEXT NOT NULL DEFAULT '',
			state TEXT NOT NULL DEFAULT 'PROCESSING',
			total INTEGER NOT NULL DEFAULT 0,
			imported INTEGER NOT NULL DEFAULT 0,
			duplicates INTEGER NOT NULL DEFAULT 0,
			skipped INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,

		`CREATE TABLE import_errors (
			id TEXT PRIMARY KEY,
			import_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			message TEXT NOT NULL,
			created_at TEXT NOT NULL,
			FOREIGN KEY (import_id) REFERENCES imports(id)
		)`,

		`CREATE TABLE exports (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			format TEXT NOT NULL,
			state TEXT NOT NULL DEFAULT 'ENQUEUED',
			result_data {{blob}},
			record_count INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	},
}
