package database

// migrationsSQL contains all database migrations, applied in order by
// version number. Never edit a released migration; add a new version.
var migrationsSQL = map[int]string{
	1: migrationV1Observances,
	2: migrationV2ObservanceLookup,
}

// migrationV1Observances creates the observances table.
//
// An observance recurs on a lunar month and day. The civil dates it falls on
// are computed at query time, so nothing here is tied to a Gregorian year.
const migrationV1Observances = `
CREATE TABLE IF NOT EXISTS observances (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    lunar_month INTEGER NOT NULL CHECK (lunar_month BETWEEN 1 AND 12),
    lunar_day INTEGER NOT NULL CHECK (lunar_day BETWEEN 1 AND 30),
    is_leap_month INTEGER NOT NULL DEFAULT 0 CHECK (is_leap_month IN (0, 1)),
    notes TEXT,
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now')),

    UNIQUE (name, lunar_month, lunar_day, is_leap_month)
);
`

// migrationV2ObservanceLookup indexes observances by lunar date for the
// "what falls on this day" query.
const migrationV2ObservanceLookup = `
CREATE INDEX IF NOT EXISTS idx_observances_lunar_date
    ON observances (lunar_month, lunar_day, is_leap_month);
`
