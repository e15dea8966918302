package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect は接続先ストアのSQL方言を表す。
type Dialect string

const (
	// DialectPostgres はネットワーク接続のPostgreSQLを示す。
	DialectPostgres Dialect = "postgres"
	// DialectSQLite はローカルファイルのSQLiteを示す。
	DialectSQLite Dialect = "sqlite"
)

// Target は接続設定をパースした結果を表す。
// RemoteとLocalのいずれか一方のみが有効になる。
type Target struct {
	Dialect Dialect

	// DSN はRemoteターゲットの接続文字列（credential注入済み）。
	DSN string
	// Path はLocalターゲットのデータベースファイルパス。
	Path string
}

// ParseTarget は接続URLとcredentialからTargetを構築する。
// スキームで接続方式を判定する:
//   - postgres:// postgresql:// → Remote（credential必須、パスワードとして注入）
//   - file: またはスキームなしのパス → Local（credentialは使用しない）
//
// それ以外のスキームは設定エラーとする。
func ParseTarget(rawURL, credential string) (Target, error) {
	if rawURL == "" {
		return Target{}, fmt.Errorf("database URL is required")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Target{}, fmt.Errorf("invalid database URL: %w", err)
	}

	switch u.Scheme {
	case "postgres", "postgresql":
		if credential == "" {
			return Target{}, fmt.Errorf("database credential is required for remote target")
		}
		username := ""
		if u.User != nil {
			username = u.User.Username()
		}
		u.User = url.UserPassword(username, credential)
		return Target{Dialect: DialectPostgres, DSN: u.String()}, nil

	case "file":
		path := u.Opaque
		if path == "" {
			path = u.Path
		}
		if path == "" {
			return Target{}, fmt.Errorf("database file path is empty")
		}
		return Target{Dialect: DialectSQLite, Path: path}, nil

	case "":
		return Target{Dialect: DialectSQLite, Path: rawURL}, nil

	default:
		return Target{}, fmt.Errorf("unsupported database URL scheme: %q", u.Scheme)
	}
}

// DB はドライバ選択を隠蔽したデータベースハンドル。
// クエリは`?`形式のプレースホルダで記述し、Rebindで方言に合わせて変換する。
// プロセス起動時に1回構築し、複数リクエストから並行利用する。
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open はTargetに応じたドライバでデータベース接続を開く。
// Remote: lib/pqドライバ。sql.Openは接続を試行しないため、
// 実際の接続確認にはPing()を使用すること。
// Local: modernc.org/sqliteドライバ。WALモードと外部キー制約を有効化し、
// 親ディレクトリが存在しない場合は作成する。
func Open(target Target) (*DB, error) {
	switch target.Dialect {
	case DialectPostgres:
		db, err := sql.Open("postgres", target.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		return &DB{DB: db, Dialect: DialectPostgres}, nil

	case DialectSQLite:
		if dir := filepath.Dir(target.Path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}

		db, err := sql.Open("sqlite", target.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}

		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
		if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}

		return &DB{DB: db, Dialect: DialectSQLite}, nil

	default:
		return nil, fmt.Errorf("unknown database dialect: %q", target.Dialect)
	}
}

// Rebind はクエリのプレースホルダを方言に合わせて変換する。
// クエリは`?`形式で記述し、PostgreSQLの場合のみ`$1, $2, ...`へ変換する。
// SQLiteは`?`をそのまま使用する。
func (db *DB) Rebind(query string) string {
	if db.Dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
