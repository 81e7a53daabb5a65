package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS series (
    id              TEXT PRIMARY KEY,
    title           TEXT NOT NULL,
    amount          TEXT NOT NULL,
    anchor_date     TEXT NOT NULL,
    rule_kind       TEXT NOT NULL,
    rule_interval   INTEGER NOT NULL,
    days_of_week    TEXT,
    end_kind        TEXT NOT NULL,
    end_count       INTEGER,
    end_date        TEXT,
    paid            INTEGER NOT NULL DEFAULT 0,
    template_id     TEXT,
    transaction_id  TEXT,
    created_at      TEXT NOT NULL,
    updated_at      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS exceptions (
    series_id       TEXT NOT NULL REFERENCES series(id) ON DELETE CASCADE,
    original_date   TEXT NOT NULL,
    action          TEXT NOT NULL,
    title           TEXT,
    amount          TEXT,
    date            TEXT,
    paid            INTEGER,
    transaction_id  TEXT,
    PRIMARY KEY (series_id, original_date)
);

CREATE INDEX IF NOT EXISTS idx_series_anchor ON series(anchor_date);
`
