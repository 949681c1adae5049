package storage

const schemaV1 = `
CREATE TABLE IF NOT EXISTS releases (
    release_id      INTEGER PRIMARY KEY AUTOINCREMENT,
    run_uuid        TEXT UNIQUE NOT NULL,
    started_at      TEXT NOT NULL,
    duration_ms     INTEGER DEFAULT 0,
    old_version     TEXT NOT NULL,
    new_version     TEXT NOT NULL,
    commit_hash     TEXT,
    pushed          INTEGER DEFAULT 0,
    dry_run         INTEGER DEFAULT 0,
    files_changed   INTEGER DEFAULT 0,
    status          TEXT NOT NULL,
    error           TEXT,
    created_at      DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_releases_started ON releases(started_at DESC);

CREATE TABLE IF NOT EXISTS fetches (
    fetch_id        INTEGER PRIMARY KEY AUTOINCREMENT,
    run_uuid        TEXT UNIQUE NOT NULL,
    started_at      TEXT NOT NULL,
    duration_ms     INTEGER DEFAULT 0,
    drugbank_url    TEXT,
    steps_ok        INTEGER DEFAULT 0,
    steps_failed    INTEGER DEFAULT 0,
    status          TEXT NOT NULL,
    error           TEXT,
    created_at      DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_fetches_started ON fetches(started_at DESC);
`
