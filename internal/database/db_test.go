package database

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/shift-scheduler/internal/config"
)

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("mysql")
	require.NoError(t, err)
	require.Equal(t, MySQL, d)

	_, err = ParseDialect("postgres")
	require.Error(t, err)
}

func TestMySQLDSN(t *testing.T) {
	dsn := MySQLDSN(config.DB{User: "app", Pass: "secret", Host: "db", Port: "3306", Name: "shifts"})
	require.True(t, strings.HasPrefix(dsn, "app:secret@tcp(db:3306)/shifts?"), dsn)
	require.Contains(t, dsn, "parseTime=true")
}

func TestMigrateSQLiteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, dialect, err := Open(ctx, config.DB{Driver: "sqlite3", Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(ctx, db, dialect))
	require.NoError(t, Migrate(ctx, db, dialect))

	var n int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('employees', 'shifts')`).Scan(&n))
	require.Equal(t, 2, n)
}

func TestSQLiteEnforcesCascadeAndChecks(t *testing.T) {
	ctx := context.Background()
	db, dialect, err := Open(ctx, config.DB{Driver: "sqlite3", Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, Migrate(ctx, db, dialect))

	_, err = db.ExecContext(ctx, `INSERT INTO employees (id, name, role) VALUES (1, 'Ann', 'Cook')`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO shifts (employee_id, shift_date, shift, start_time, end_time)
		VALUES (1, '2025-05-21', 'MORNING', '2025-05-21 09:00:00', '2025-05-21 09:00:00')`)
	require.Error(t, err, "end_time == start_time must violate the check constraint")

	_, err = db.ExecContext(ctx, `INSERT INTO shifts (employee_id, shift_date, shift, start_time, end_time)
		VALUES (99, '2025-05-21', 'MORNING', '2025-05-21 09:00:00', '2025-05-21 10:00:00')`)
	require.Error(t, err, "unknown employee must violate the foreign key")

	_, err = db.ExecContext(ctx, `INSERT INTO shifts (employee_id, shift_date, shift, start_time, end_time)
		VALUES (1, '2025-05-21', 'MORNING', '2025-05-21 09:00:00', '2025-05-21 10:00:00')`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `DELETE FROM employees WHERE id = 1`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shifts`).Scan(&n))
	require.Equal(t, 0, n)
}
