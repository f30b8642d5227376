package database

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name         VARCHAR(255) NOT NULL,
		role         VARCHAR(255) NOT NULL,
		availability TEXT NULL,
		created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS shifts (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		employee_id BIGINT UNSIGNED NOT NULL,
		shift_date  DATE NOT NULL,
		shift       ENUM('MORNING','AFTERNOON','EVENING','NIGHT') NOT NULL,
		note        TEXT NULL,
		start_time  DATETIME NOT NULL,
		end_time    DATETIME NOT NULL,
		created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		CONSTRAINT fk_shifts_employee FOREIGN KEY (employee_id) REFERENCES employees (id) ON DELETE CASCADE,
		CONSTRAINT chk_shifts_times CHECK (end_time > start_time),
		INDEX idx_shifts_employee_date (employee_id, shift_date),
		INDEX idx_shifts_date (shift_date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		name         TEXT NOT NULL,
		role         TEXT NOT NULL,
		availability TEXT NULL,
		created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS shifts (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id INTEGER NOT NULL REFERENCES employees (id) ON DELETE CASCADE,
		shift_date  DATE NOT NULL,
		shift       TEXT NOT NULL CHECK (shift IN ('MORNING','AFTERNOON','EVENING','NIGHT')),
		note        TEXT NULL,
		start_time  DATETIME NOT NULL,
		end_time    DATETIME NOT NULL,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CHECK (end_time > start_time)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_shifts_employee_date ON shifts (employee_id, shift_date)`,
	`CREATE INDEX IF NOT EXISTS idx_shifts_date ON shifts (shift_date)`,
}

// Migrate creates the employees and shifts tables when missing.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	stmts := sqliteSchema
	if dialect == MySQL {
		stmts = mysqlSchema
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "migration failed")
		}
	}
	return nil
}
