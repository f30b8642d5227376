package cli

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/iliyamo/shift-scheduler/internal/config"
	"github.com/iliyamo/shift-scheduler/internal/database"
	"github.com/iliyamo/shift-scheduler/internal/repository"
)

// newLogger builds the process logger from configuration.  It is passed
// down explicitly; nothing else sets slog's default.
func newLogger(conf config.Logger) *slog.Logger {
	opts := &slog.HandlerOptions{Level: conf.SlogLevel()}
	if conf.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// openStore connects to the configured database and, when migrate is true,
// creates the schema.
func openStore(ctx context.Context, conf config.DB, migrate bool, logger *slog.Logger) (*repository.Store, *sql.DB, error) {
	db, dialect, err := database.Open(ctx, conf)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not open database")
	}
	if migrate {
		if err := database.Migrate(ctx, db, dialect); err != nil {
			_ = db.Close()
			return nil, nil, errors.Wrap(err, "could not migrate database")
		}
		logger.InfoContext(ctx, "schema up to date", slog.String("dialect", string(dialect)))
	}
	return repository.NewStore(db, dialect), db, nil
}
