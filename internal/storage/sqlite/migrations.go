package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Tag sets (profile interests, activity interests, common interests) are
// stored one row per tag so set membership stays queryable.
const schema = `
CREATE TABLE IF NOT EXISTS groups (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    city TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS group_members (
    group_id TEXT NOT NULL,
    member_id TEXT NOT NULL,
    PRIMARY KEY (group_id, member_id),
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS profiles (
    user_id TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS profile_interests (
    user_id TEXT NOT NULL,
    tag TEXT NOT NULL,
    PRIMARY KEY (user_id, tag),
    FOREIGN KEY (user_id) REFERENCES profiles(user_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS activities (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    price TEXT NOT NULL,
    location TEXT NOT NULL DEFAULT '',
    image TEXT NOT NULL DEFAULT '',
    is_new INTEGER NOT NULL DEFAULT 0,
    date TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS activity_interests (
    activity_id TEXT NOT NULL,
    tag TEXT NOT NULL,
    PRIMARY KEY (activity_id, tag),
    FOREIGN KEY (activity_id) REFERENCES activities(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS suggestion_records (
    group_id TEXT PRIMARY KEY,
    last_update TEXT NOT NULL,
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS suggestion_common_interests (
    group_id TEXT NOT NULL,
    tag TEXT NOT NULL,
    PRIMARY KEY (group_id, tag),
    FOREIGN KEY (group_id) REFERENCES suggestion_records(group_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS suggestion_items (
    group_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    activity_id TEXT NOT NULL,
    score INTEGER NOT NULL,
    PRIMARY KEY (group_id, position),
    FOREIGN KEY (group_id) REFERENCES suggestion_records(group_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_group_members_group_id ON group_members(group_id);
CREATE INDEX IF NOT EXISTS idx_profile_interests_user_id ON profile_interests(user_id);
CREATE INDEX IF NOT EXISTS idx_activity_interests_activity_id ON activity_interests(activity_id);
CREATE INDEX IF NOT EXISTS idx_suggestion_items_group_id ON suggestion_items(group_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
