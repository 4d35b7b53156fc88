// ABOUTME: Database schema definitions
// ABOUTME: Creates lead, activity, booking and task tables on open
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS leads (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL CHECK(status IN ('new', 'contacted', 'engaged', 'nurture', 'won', 'lost')),
	lead_source TEXT NOT NULL,
	instagram TEXT NOT NULL DEFAULT '',
	facebook TEXT NOT NULL DEFAULT '',
	owner_id TEXT NOT NULL DEFAULT '',
	assigned_to TEXT NOT NULL DEFAULT '',
	reassigned_at DATETIME,
	notes TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_leads_owner ON leads(owner_id);
CREATE INDEX IF NOT EXISTS idx_leads_assigned ON leads(assigned_to);
CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status);

CREATE TABLE IF NOT EXISTS activities (
	id TEXT PRIMARY KEY,
	lead_id TEXT NOT NULL,
	activity_type TEXT NOT NULL CHECK(activity_type IN ('call', 'text', 'email', 'dm', 'engagement', 'note')),
	outcome TEXT NOT NULL DEFAULT '',
	occurred_at DATETIME NOT NULL,
	shoot_date DATETIME,
	notes TEXT NOT NULL DEFAULT '',
	engagement_day TEXT,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (lead_id) REFERENCES leads(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_activities_lead ON activities(lead_id, occurred_at);
CREATE UNIQUE INDEX IF NOT EXISTS idx_activities_engagement_day ON activities(lead_id, engagement_day);

CREATE TABLE IF NOT EXISTS bookings (
	id TEXT PRIMARY KEY,
	lead_id TEXT NOT NULL,
	booked_at DATETIME NOT NULL,
	shoot_date DATETIME,
	notes TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	FOREIGN KEY (lead_id) REFERENCES leads(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_bookings_lead ON bookings(lead_id, booked_at);

CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	lead_id TEXT NOT NULL,
	title TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'open' CHECK(status IN ('open', 'done')),
	due_date DATETIME,
	due_time TEXT NOT NULL DEFAULT '',
	priority TEXT NOT NULL DEFAULT '',
	owner_id TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	completed_at DATETIME,
	FOREIGN KEY (lead_id) REFERENCES leads(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_tasks_lead_status ON tasks(lead_id, status);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
