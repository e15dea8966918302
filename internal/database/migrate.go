// Package database はデータベース接続の選択とマイグレーション管理を提供する。
package database

import (
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// NewMigrator はDBの方言に対応したmigrateインスタンスを生成する。
// マイグレーションSQLは方言ごとにembedされたディレクトリから読み込む。
func NewMigrator(db *DB) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations/"+string(db.Dialect))
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	switch db.Dialect {
	case DialectPostgres:
		d, err := postgres.WithInstance(db.DB, &postgres.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres migration driver: %w", err)
		}
		m, err := migrate.NewWithInstance("iofs", source, "postgres", d)
		if err != nil {
			return nil, fmt.Errorf("failed to create migrator: %w", err)
		}
		return m, nil

	case DialectSQLite:
		d, err := sqlite.WithInstance(db.DB, &sqlite.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to create sqlite migration driver: %w", err)
		}
		m, err := migrate.NewWithInstance("iofs", source, "sqlite", d)
		if err != nil {
			return nil, fmt.Errorf("failed to create migrator: %w", err)
		}
		return m, nil

	default:
		return nil, fmt.Errorf("unknown database dialect: %q", db.Dialect)
	}
}

// MigrateUp はすべての未適用マイグレーションを適用する。
// すでに最新の場合はエラーなしで返る。
func MigrateUp(db *DB) error {
	m, err := NewMigrator(db)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
