package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns the zero time if parsing fails.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05.999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// execer is satisfied by both *DB and *Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const observanceColumns = `id, name, lunar_month, lunar_day, is_leap_month, notes, created_at, updated_at`

func scanObservance(row rowScanner) (*Observance, error) {
	var o Observance
	var leap int
	var notes sql.NullString
	var createdAt, updatedAt string

	if err := row.Scan(&o.ID, &o.Name, &o.LunarMonth, &o.LunarDay, &leap, &notes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	o.IsLeapMonth = leap != 0
	if notes.Valid {
		o.Notes = &notes.String
	}
	o.CreatedAt = parseTimestamp(createdAt)
	o.UpdatedAt = parseTimestamp(updatedAt)
	return &o, nil
}

// =============================================================================
// Observance Queries
// =============================================================================

// CreateObservance validates and inserts o, filling in its ID and timestamps.
// Returns ErrDuplicate if the same name is already on that lunar date.
func (db *DB) CreateObservance(ctx context.Context, o *Observance) error {
	if err := o.Validate(); err != nil {
		return err
	}

	id, err := insertObservance(ctx, db, o)
	if err != nil {
		return err
	}

	created, err := db.GetObservance(ctx, id)
	if err != nil {
		return fmt.Errorf("reload observance %d: %w", id, err)
	}
	*o = *created

	db.logger.Debug("observance created",
		slog.Int64("id", o.ID),
		slog.String("name", o.Name),
	)
	return nil
}

func insertObservance(ctx context.Context, ex execer, o *Observance) (int64, error) {
	result, err := ex.ExecContext(ctx, `
		INSERT INTO observances (name, lunar_month, lunar_day, is_leap_month, notes)
		VALUES (?, ?, ?, ?, ?)
	`, o.Name, o.LunarMonth, o.LunarDay, boolToInt(o.IsLeapMonth), nullString(o.Notes))
	if err != nil {
		if mapped := mapConstraintError(err); errors.Is(mapped, ErrDuplicate) {
			return 0, fmt.Errorf("observance %q on %d/%d: %w", o.Name, o.LunarMonth, o.LunarDay, ErrDuplicate)
		}
		return 0, fmt.Errorf("insert observance: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get observance id: %w", err)
	}
	return id, nil
}

// GetObservance retrieves an observance by ID.
// Returns ErrNotFound if it doesn't exist.
func (db *DB) GetObservance(ctx context.Context, id int64) (*Observance, error) {
	row := db.QueryRowContext(ctx, `SELECT `+observanceColumns+` FROM observances WHERE id = ?`, id)

	o, err := scanObservance(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query observance %d: %w", id, err)
	}
	return o, nil
}

// ListObservances returns observances in lunar calendar order, then by name.
func (db *DB) ListObservances(ctx context.Context, opts ListOptions) ([]Observance, error) {
	opts = opts.Normalize()

	rows, err := db.QueryContext(ctx, `
		SELECT `+observanceColumns+`
		FROM observances
		ORDER BY lunar_month, is_leap_month, lunar_day, name
		LIMIT ? OFFSET ?
	`, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("query observances: %w", err)
	}
	defer rows.Close()

	return collectObservances(rows)
}

// ObservancesOn returns the observances recorded for one lunar date.
func (db *DB) ObservancesOn(ctx context.Context, month, day int, isLeapMonth bool) ([]Observance, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+observanceColumns+`
		FROM observances
		WHERE lunar_month = ? AND lunar_day = ? AND is_leap_month = ?
		ORDER BY name
	`, month, day, boolToInt(isLeapMonth))
	if err != nil {
		return nil, fmt.Errorf("query observances on %d/%d: %w", month, day, err)
	}
	defer rows.Close()

	return collectObservances(rows)
}

func collectObservances(rows *sql.Rows) ([]Observance, error) {
	out := []Observance{}
	for rows.Next() {
		o, err := scanObservance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan observance: %w", err)
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate observances: %w", err)
	}
	return out, nil
}

// CountObservances returns the number of stored observances.
func (db *DB) CountObservances(ctx context.Context) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM observances`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count observances: %w", err)
	}
	return n, nil
}

// DeleteObservance removes an observance.
// Returns ErrNotFound if it doesn't exist.
func (db *DB) DeleteObservance(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM observances WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete observance %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	db.logger.Debug("observance deleted", slog.Int64("id", id))
	return nil
}

// ImportObservances inserts all of obs in one transaction. Any invalid or
// duplicate record aborts the import and nothing is written.
func (db *DB) ImportObservances(ctx context.Context, obs []Observance) (int, error) {
	for i := range obs {
		if err := obs[i].Validate(); err != nil {
			return 0, fmt.Errorf("record %d: %w", i+1, err)
		}
	}

	err := db.WithTx(ctx, func(tx *Tx) error {
		for i := range obs {
			id, err := insertObservance(ctx, tx, &obs[i])
			if err != nil {
				return fmt.Errorf("record %d: %w", i+1, err)
			}
			obs[i].ID = id
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	db.logger.Info("observances imported", slog.Int("count", len(obs)))
	return len(obs), nil
}
