package store

// schemaSQL is the DDL for all tables. One policies row per processed
// document; paragraphs and flat_records cascade with it so re-running
// a policy replaces its previous results atomically.
const schemaSQL = `
-- Processed policies with hash-based change detection
CREATE TABLE IF NOT EXISTS policies (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    content_hash TEXT NOT NULL,
    paragraph_count INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Split paragraphs with their recognized scene tags
CREATE TABLE IF NOT EXISTS paragraphs (
    id INTEGER PRIMARY KEY,
    policy_id INTEGER NOT NULL REFERENCES policies(id) ON DELETE CASCADE,
    ordinal INTEGER NOT NULL,
    content TEXT NOT NULL,
    scene_tags JSON,
    UNIQUE(policy_id, ordinal)
);

-- Denormalized knowledge-graph rows: one per action triple
CREATE TABLE IF NOT EXISTS flat_records (
    id INTEGER PRIMARY KEY,
    policy_id INTEGER NOT NULL REFERENCES policies(id) ON DELETE CASCADE,
    ordinal INTEGER NOT NULL,
    item TEXT NOT NULL,
    level1 TEXT,
    level2 TEXT,
    scene_level1 TEXT,
    scene_level2 TEXT,
    scene_level3 TEXT,
    action TEXT
);

CREATE INDEX IF NOT EXISTS idx_paragraphs_policy ON paragraphs(policy_id);
CREATE INDEX IF NOT EXISTS idx_flat_records_policy ON flat_records(policy_id);
CREATE INDEX IF NOT EXISTS idx_flat_records_item ON flat_records(item);
`
