// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/toeirei/tokenmaster/internal/model"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	// SQL drivers required at runtime.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// sqlOpenFunc allows tests to override database opening behavior.
var sqlOpenFunc = sql.Open

// tokenRow is the tokens table. The autoincrement id fixes list order and
// gives every record a stable identity behind the positional API.
type tokenRow struct {
	bun.BaseModel `bun:"table:tokens,alias:t"`

	ID          int64  `bun:"id,pk,autoincrement"`
	ProjectName string `bun:"project_name,notnull"`
	Token       string `bun:"token,notnull"`
	Permission  string `bun:"permission,notnull"`
	UserID      string `bun:"user_id,notnull"`
	UserName    string `bun:"user_name,notnull"`
	ExpiryDate  string `bun:"expiry_date,notnull"`
}

func rowFromToken(t model.Token) tokenRow {
	return tokenRow{
		ProjectName: t.ProjectName,
		Token:       t.Token,
		Permission:  t.Permission,
		UserID:      t.UserID,
		UserName:    t.UserName,
		ExpiryDate:  t.ExpiryDate,
	}
}

func (r tokenRow) toToken() model.Token {
	return model.Token{
		ProjectName: r.ProjectName,
		Token:       r.Token,
		Permission:  r.Permission,
		UserID:      r.UserID,
		UserName:    r.UserName,
		ExpiryDate:  r.ExpiryDate,
	}
}

// BunStore keeps tokens in a SQL database through bun.
type BunStore struct {
	bun *bun.DB
}

// *BunStore implements Store
var _ Store = (*BunStore)(nil)

// NewBunStore opens dsn with the driver for dbType (sqlite, postgres or
// mysql) and creates the tokens table if needed.
func NewBunStore(ctx context.Context, dbType, dsn string) (*BunStore, error) {
	driverName := dbType
	// The pgx stdlib registers driver name "pgx"; map "postgres" to that driver.
	if dbType == TypePostgres {
		driverName = "pgx"
	}
	start := time.Now()
	sqlDB, err := sqlOpenFunc(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	const (
		defaultMaxOpenConns    = 25
		defaultMaxIdleConns    = 25
		defaultConnMaxLifetime = 5 * time.Minute
	)
	maxOpen := envInt("TOKENMASTER_DB_MAX_OPEN_CONNS", defaultMaxOpenConns)
	maxIdle := envInt("TOKENMASTER_DB_MAX_IDLE_CONNS", defaultMaxIdleConns)

	// Every connection to ":memory:" gets its own empty database, so pin
	// in-memory SQLite to a single connection.
	if dbType == TypeSQLite && dsn == ":memory:" {
		maxOpen = 1
		maxIdle = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(defaultConnMaxLifetime)
	dbLogf("db: opened %s driver in %s (conn max open=%d, idle=%d)", driverName, time.Since(start), maxOpen, maxIdle)

	s := &BunStore{bun: createBunDB(sqlDB, dbType)}
	if err := s.migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// createBunDB constructs a *bun.DB for the provided *sql.DB and dbType.
func createBunDB(sqlDB *sql.DB, dbType string) *bun.DB {
	switch dbType {
	case TypePostgres:
		return bun.NewDB(sqlDB, pgdialect.New())
	case TypeMySQL:
		return bun.NewDB(sqlDB, mysqldialect.New())
	default:
		return bun.NewDB(sqlDB, sqlitedialect.New())
	}
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func (s *BunStore) migrate(ctx context.Context) error {
	_, err := s.bun.NewCreateTable().
		Model((*tokenRow)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func (s *BunStore) List(ctx context.Context, projectName string) ([]model.Token, error) {
	var rows []tokenRow
	q := s.bun.NewSelect().Model(&rows).Order("id ASC")
	if projectName != "" {
		q = q.Where("project_name = ?", projectName)
	}
	if err := q.Scan(ctx); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	out := make([]model.Token, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toToken())
	}
	return out, nil
}

func (s *BunStore) Append(ctx context.Context, token model.Token) error {
	row := rowFromToken(token)
	_, err := s.bun.NewInsert().Model(&row).Exec(ctx)
	return err
}

func (s *BunStore) ReplaceProject(ctx context.Context, projectName string, tokens []model.Token) error {
	return s.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*tokenRow)(nil)).
			Where("project_name = ?", projectName).
			Exec(ctx); err != nil {
			return err
		}
		return insertAll(ctx, tx, tokens)
	})
}

// DeleteAt resolves the position to a row id and deletes that row in the
// same transaction.
func (s *BunStore) DeleteAt(ctx context.Context, index int) error {
	if index < 0 {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return s.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var id int64
		err := tx.NewSelect().
			Model((*tokenRow)(nil)).
			Column("id").
			Order("id ASC").
			Limit(1).
			Offset(index).
			Scan(ctx, &id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
		}
		if err != nil {
			return err
		}
		dbLogf("db: delete line %d (id %d)", index, id)
		_, err = tx.NewDelete().
			Model((*tokenRow)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return err
	})
}

func (s *BunStore) ReplaceAll(ctx context.Context, tokens []model.Token) error {
	return s.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*tokenRow)(nil)).
			Where("1 = 1").
			Exec(ctx); err != nil {
			return err
		}
		return insertAll(ctx, tx, tokens)
	})
}

func (s *BunStore) Close() error {
	return s.bun.Close()
}

func insertAll(ctx context.Context, tx bun.Tx, tokens []model.Token) error {
	if len(tokens) == 0 {
		return nil
	}
	rows := make([]tokenRow, 0, len(tokens))
	for _, t := range tokens {
		rows = append(rows, rowFromToken(t))
	}
	_, err := tx.NewInsert().Model(&rows).Exec(ctx)
	return err
}
