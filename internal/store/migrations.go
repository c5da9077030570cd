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

CREATE TABLE IF NOT EXISTS loans (
	id               TEXT PRIMARY KEY,
	loan_number      TEXT NOT NULL DEFAULT '',
	loan_product     TEXT,
	property_address TEXT NOT NULL DEFAULT '',
	team_member_ids  TEXT NOT NULL DEFAULT '[]',
	created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS borrowers (
	id         TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	email      TEXT NOT NULL DEFAULT '',
	phone      TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS loan_borrowers (
	loan_id     TEXT NOT NULL REFERENCES loans(id) ON DELETE CASCADE,
	borrower_id TEXT NOT NULL REFERENCES borrowers(id) ON DELETE CASCADE,
	position    INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (loan_id, borrower_id)
);

CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	first_name TEXT NOT NULL DEFAULT '',
	last_name  TEXT NOT NULL DEFAULT '',
	email      TEXT NOT NULL DEFAULT '',
	role       TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS checklist_items (
	id                           TEXT PRIMARY KEY,
	loan_id                      TEXT NOT NULL,
	checklist_type               TEXT NOT NULL CHECK(checklist_type IN ('action_item', 'document')),
	category                     TEXT NOT NULL DEFAULT '',
	item_name                    TEXT NOT NULL,
	description                  TEXT NOT NULL DEFAULT '',
	provider                     TEXT NOT NULL DEFAULT '',
	status                       TEXT NOT NULL,
	due_date                     DATETIME,
	assigned_to                  TEXT NOT NULL DEFAULT '[]',
	notes                        TEXT NOT NULL DEFAULT '[]',
	uploaded_files               TEXT NOT NULL DEFAULT '[]',
	activity_history             TEXT NOT NULL DEFAULT '[]',
	first_review_completed_by    TEXT,
	first_review_completed_date  DATETIME,
	second_review_completed_by   TEXT,
	second_review_completed_date DATETIME,
	created_at                   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at                   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_checklist_items_loan_id ON checklist_items(loan_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_checklist_items_key
	ON checklist_items(loan_id, checklist_type, lower(trim(item_name)));

CREATE TABLE IF NOT EXISTS loan_documents (
	id                TEXT PRIMARY KEY,
	loan_id           TEXT NOT NULL,
	document_name     TEXT NOT NULL,
	file_url          TEXT NOT NULL,
	category          TEXT NOT NULL DEFAULT 'application',
	status            TEXT NOT NULL,
	uploaded_by       TEXT NOT NULL DEFAULT '',
	uploaded_date     DATETIME NOT NULL,
	checklist_item_id TEXT,
	created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_loan_documents_loan_item
	ON loan_documents(loan_id, checklist_item_id);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
	{
		version: 3,
		sql: `
CREATE TABLE IF NOT EXISTS notifications (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	type        TEXT NOT NULL,
	message     TEXT NOT NULL,
	entity_type TEXT NOT NULL DEFAULT '',
	entity_id   TEXT NOT NULL DEFAULT '',
	link_url    TEXT NOT NULL DEFAULT '',
	priority    TEXT NOT NULL DEFAULT 'normal',
	read        INTEGER NOT NULL DEFAULT 0 CHECK(read IN (0, 1)),
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_notifications_user_read ON notifications(user_id, read);

INSERT INTO schema_version (version) VALUES (3);
`,
	},
}
