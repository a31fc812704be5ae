package packages

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Database opens the storage handle for dsn. Postgres URLs go through pgdriver,
// anything else is treated as a SQLite DSN.
func Database(dsn string, debug bool) (*bun.DB, error) {
	var bundb *bun.DB

	if isPostgres(dsn) {
		db := sql.OpenDB(pgdriver.NewConnector(
			pgdriver.WithDSN(dsn),
			pgdriver.WithWriteTimeout(time.Second*time.Duration(30)),
			pgdriver.WithTimeout(time.Minute*time.Duration(1)),
			pgdriver.WithDialTimeout(time.Second*time.Duration(10)),
			pgdriver.WithReadTimeout(time.Second*time.Duration(30)),
		))

		db.SetConnMaxIdleTime(time.Duration(time.Second * time.Duration(30)))
		db.SetConnMaxLifetime(time.Duration(time.Minute * time.Duration(5)))

		bundb = bun.NewDB(db, pgdialect.New())
	} else {
		db, err := sql.Open(sqliteshim.ShimName, dsn)
		if err != nil {
			return nil, err
		}

		// one writer at a time, and in-memory databases live only as long as their connection
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)

		bundb = bun.NewDB(db, sqlitedialect.New())
	}

	if err := bundb.Ping(); err != nil {
		defer Logrus("error", "Database connection error: %v", err)
		bundb.Close()
		return nil, err
	}

	defer Logrus("info", "Database connection success")

	if debug {
		bundb.AddQueryHook(bundebug.NewQueryHook(bundebug.WithEnabled(true), bundebug.WithVerbose(true), bundebug.FromEnv("BUNDEBUG")))
	}

	return bundb, nil
}

// Sync creates the table of every model that does not exist yet.
func Sync(ctx context.Context, db *bun.DB, models ...interface{}) error {
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}

	return nil
}
