package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"restaurant-review/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PostgresStore keeps each table as (key TEXT PRIMARY KEY, attrs JSONB).
type PostgresStore struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPostgresStore(db database.PgxIface, log *zap.Logger) *PostgresStore {
	return &PostgresStore{
		db:  db,
		log: log.With(zap.String("store", "postgres")),
	}
}

func tableIdent(t Table) string {
	return pgx.Identifier{t.Name}.Sanitize()
}

func attrExpr(attr string) string {
	return fmt.Sprintf("(attrs->>'%s')", strings.ReplaceAll(attr, "'", "''"))
}

func (s *PostgresStore) EnsureTable(ctx context.Context, table Table) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		key   TEXT PRIMARY KEY,
		attrs JSONB NOT NULL
	)`, tableIdent(table))

	if _, err := s.db.Exec(ctx, query); err != nil {
		s.log.Error("Failed to create table", zap.Error(err), zap.String("table", table.Name))
		return fmt.Errorf("create table %s: %w", table.Name, err)
	}

	for _, attr := range table.Indexes {
		index := pgx.Identifier{table.Name + "_" + attr + "_idx"}.Sanitize()
		query := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (%s)`,
			index, tableIdent(table), attrExpr(attr))
		if _, err := s.db.Exec(ctx, query); err != nil {
			s.log.Error("Failed to create index",
				zap.Error(err),
				zap.String("table", table.Name),
				zap.String("attr", attr),
			)
			return fmt.Errorf("create index %s.%s: %w", table.Name, attr, err)
		}
	}

	return nil
}

func (s *PostgresStore) Get(ctx context.Context, table Table, key string) (Item, error) {
	query := fmt.Sprintf(`SELECT attrs FROM %s WHERE key = $1`, tableIdent(table))

	var raw []byte
	err := s.db.QueryRow(ctx, query, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.log.Error("Failed to get item",
			zap.Error(err),
			zap.String("table", table.Name),
			zap.String("key", key),
		)
		return nil, fmt.Errorf("get %s/%s: %w", table.Name, key, err)
	}

	return decodeItem(raw)
}

func (s *PostgresStore) Put(ctx context.Context, table Table, key string, item Item) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", table.Name, key, err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (key, attrs)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET attrs = EXCLUDED.attrs
	`, tableIdent(table))

	if _, err := s.db.Exec(ctx, query, key, string(payload)); err != nil {
		s.log.Error("Failed to put item",
			zap.Error(err),
			zap.String("table", table.Name),
			zap.String("key", key),
		)
		return fmt.Errorf("put %s/%s: %w", table.Name, key, err)
	}

	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, table Table, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, tableIdent(table))

	result, err := s.db.Exec(ctx, query, key)
	if err != nil {
		s.log.Error("Failed to delete item",
			zap.Error(err),
			zap.String("table", table.Name),
			zap.String("key", key),
		)
		return fmt.Errorf("delete %s/%s: %w", table.Name, key, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *PostgresStore) Query(ctx context.Context, table Table, attr, value string) ([]Item, error) {
	if !table.indexed(attr) {
		return nil, fmt.Errorf("query %s by %s: %w", table.Name, attr, ErrNotIndexed)
	}

	query := fmt.Sprintf(`SELECT attrs FROM %s WHERE %s = $1`, tableIdent(table), attrExpr(attr))

	rows, err := s.db.Query(ctx, query, value)
	if err != nil {
		s.log.Error("Failed to query items",
			zap.Error(err),
			zap.String("table", table.Name),
			zap.String("attr", attr),
		)
		return nil, fmt.Errorf("query %s by %s: %w", table.Name, attr, err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", table.Name, err)
		}
		item, err := decodeItem(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", table.Name, err)
	}

	return items, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}

func decodeItem(raw []byte) (Item, error) {
	var item Item
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("decode item: %w", err)
	}
	return item, nil
}
