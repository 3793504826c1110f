package database

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	"library-loan-service/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var EmbedMigrations embed.FS

// Open подключается к базе, выбранной в конфиге, и применяет миграции.
func Open(cfg config.Config, logger *logrus.Logger) (*sql.DB, Dialect, error) {
	dialect, err := ParseDialect(cfg.DBDriver)
	if err != nil {
		return nil, "", err
	}

	if logger != nil {
		goose.SetLogger(logger)
	}

	var db *sql.DB
	switch dialect {
	case SQLite:
		db, err = NewSQLiteDB(cfg.SQLitePath)
	default:
		db, err = NewPostgresDB(cfg)
	}
	if err != nil {
		return nil, "", err
	}

	return db, dialect, nil
}

func NewPostgresDB(cfg config.Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err = MigrateDB(db, Postgres); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func MigrateDB(db *sql.DB, dialect Dialect) error {
	goose.SetBaseFS(EmbedMigrations)

	if err := goose.SetDialect(dialect.gooseDialect()); err != nil {
		return err
	}

	if err := goose.Up(db, dialect.migrationsDir()); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", dialect, err)
	}

	return nil
}
