package database

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDB creates a temporary in-memory database for testing.
func testDB(t *testing.T) *DB {
	t.Helper()

	cfg := Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}

	// Quiet logger for tests
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	db, err := Open(cfg, logger)
	require.NoError(t, err, "open test database")

	_, err = db.Migrate(context.Background())
	require.NoError(t, err, "migrate test database")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func strPtr(s string) *string {
	return &s
}

// -----------------------------------------------------------------
// DB tests
// -----------------------------------------------------------------

func TestOpen(t *testing.T) {
	db := testDB(t)
	st, err := db.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Status{SchemaVersion: len(migrationsSQL)}, st)
}

func TestHealth_CountsObservances(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateObservance(ctx, &Observance{Name: "Lunar birthday", LunarMonth: 3, LunarDay: 15}))

	st, err := db.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Observances)
}

func TestHealth_Unmigrated(t *testing.T) {
	db, err := Open(DefaultConfig(":memory:"), nil)
	require.NoError(t, err)
	defer db.Close()

	version, err := db.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, version)

	_, err = db.Health(context.Background())
	assert.Error(t, err, "an unmigrated store is not healthy")
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "almanac.db")

	db, err := Open(DefaultConfig(path), nil)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err, "database directory should exist")
}

func TestMigrate(t *testing.T) {
	db := testDB(t)

	// Already applied by testDB.
	count, err := db.Migrate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	var versions int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&versions))
	assert.Equal(t, len(migrationsSQL), versions)
}

// -----------------------------------------------------------------
// Observance tests
// -----------------------------------------------------------------

func TestCreateObservance(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	o := &Observance{
		Name:       "Grandmother's birthday",
		LunarMonth: 8,
		LunarDay:   15,
		Notes:      strPtr("mooncakes"),
	}
	require.NoError(t, db.CreateObservance(ctx, o))

	assert.NotZero(t, o.ID)
	assert.False(t, o.CreatedAt.IsZero(), "CreatedAt should be filled in")

	got, err := db.GetObservance(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grandmother's birthday", got.Name)
	assert.Equal(t, 8, got.LunarMonth)
	assert.Equal(t, 15, got.LunarDay)
	assert.False(t, got.IsLeapMonth)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "mooncakes", *got.Notes)
}

func TestCreateObservance_Duplicate(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateObservance(ctx, &Observance{Name: "Festival", LunarMonth: 1, LunarDay: 15}))

	err := db.CreateObservance(ctx, &Observance{Name: "Festival", LunarMonth: 1, LunarDay: 15})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.True(t, IsDuplicate(err))

	// The leap-month variant is a different observance.
	assert.NoError(t, db.CreateObservance(ctx, &Observance{Name: "Festival", LunarMonth: 1, LunarDay: 15, IsLeapMonth: true}))
}

func TestCreateObservance_Invalid(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	tests := []struct {
		name string
		obs  Observance
	}{
		{"empty name", Observance{Name: "  ", LunarMonth: 1, LunarDay: 1}},
		{"month 0", Observance{Name: "x", LunarMonth: 0, LunarDay: 1}},
		{"month 13", Observance{Name: "x", LunarMonth: 13, LunarDay: 1}},
		{"day 31", Observance{Name: "x", LunarMonth: 1, LunarDay: 31}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := db.CreateObservance(ctx, &tt.obs)
			assert.ErrorIs(t, err, ErrInvalidObservance)
		})
	}
}

func TestGetObservance_NotFound(t *testing.T) {
	db := testDB(t)

	_, err := db.GetObservance(context.Background(), 999)
	assert.True(t, IsNotFound(err), "want not found, got %v", err)
}

func TestListObservances(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	for _, o := range []Observance{
		{Name: "Mid-Autumn", LunarMonth: 8, LunarDay: 15},
		{Name: "New Year", LunarMonth: 1, LunarDay: 1},
		{Name: "Lantern", LunarMonth: 1, LunarDay: 15},
		{Name: "Leap birthday", LunarMonth: 1, LunarDay: 2, IsLeapMonth: true},
	} {
		require.NoError(t, db.CreateObservance(ctx, &o))
	}

	all, err := db.ListObservances(ctx, ListOptions{})
	require.NoError(t, err)
	names := make([]string, 0, len(all))
	for _, o := range all {
		names = append(names, o.Name)
	}
	assert.Equal(t, []string{"New Year", "Lantern", "Leap birthday", "Mid-Autumn"}, names)

	page, err := db.ListObservances(ctx, ListOptions{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Lantern", page[0].Name)

	n, err := db.CountObservances(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	on, err := db.ObservancesOn(ctx, 1, 15, false)
	require.NoError(t, err)
	require.Len(t, on, 1)
	assert.Equal(t, "Lantern", on[0].Name)
}

func TestListObservances_Empty(t *testing.T) {
	db := testDB(t)

	all, err := db.ListObservances(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.NotNil(t, all, "empty list should encode as []")
	assert.Empty(t, all)
}

func TestDeleteObservance(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	o := &Observance{Name: "Memorial", LunarMonth: 3, LunarDay: 3}
	require.NoError(t, db.CreateObservance(ctx, o))

	require.NoError(t, db.DeleteObservance(ctx, o.ID))

	_, err := db.GetObservance(ctx, o.ID)
	assert.True(t, IsNotFound(err))

	assert.ErrorIs(t, db.DeleteObservance(ctx, o.ID), ErrNotFound)
}

func TestImportObservances(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	obs := []Observance{
		{Name: "New Year", LunarMonth: 1, LunarDay: 1},
		{Name: "Dragon Boat", LunarMonth: 5, LunarDay: 5},
		{Name: "Double Ninth", LunarMonth: 9, LunarDay: 9},
	}

	n, err := db.ImportObservances(ctx, obs)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	for _, o := range obs {
		assert.NotZero(t, o.ID)
	}

	count, err := db.CountObservances(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestImportObservances_RollsBack(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	obs := []Observance{
		{Name: "New Year", LunarMonth: 1, LunarDay: 1},
		{Name: "Dragon Boat", LunarMonth: 5, LunarDay: 5},
		{Name: "New Year", LunarMonth: 1, LunarDay: 1},
	}

	_, err := db.ImportObservances(ctx, obs)
	assert.ErrorIs(t, err, ErrDuplicate)

	count, err := db.CountObservances(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "a failed import must write nothing")
}

func TestImportObservances_Invalid(t *testing.T) {
	db := testDB(t)

	_, err := db.ImportObservances(context.Background(), []Observance{
		{Name: "ok", LunarMonth: 1, LunarDay: 1},
		{Name: "bad", LunarMonth: 14, LunarDay: 1},
	})
	assert.ErrorIs(t, err, ErrInvalidObservance)
	assert.Contains(t, err.Error(), "record 2")
}

func TestListOptions_Normalize(t *testing.T) {
	assert.Equal(t, ListOptions{Limit: 50}, ListOptions{}.Normalize())
	assert.Equal(t, ListOptions{Limit: 500}, ListOptions{Limit: 10000}.Normalize())
	assert.Equal(t, ListOptions{Limit: 5}, ListOptions{Limit: 5, Offset: -3}.Normalize())
}

// -----------------------------------------------------------------
// Transaction tests
// -----------------------------------------------------------------

func TestWithTx_Rollback(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	err := db.WithTx(ctx, func(tx *Tx) error {
		if _, err := insertObservance(ctx, tx, &Observance{Name: "temp", LunarMonth: 2, LunarDay: 2}); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	count, err := db.CountObservances(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
