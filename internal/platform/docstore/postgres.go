package docstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PG is the Postgres-backed Store. All collections share one documents
// table inside the configured schema.
type PG struct {
	Pool *pgxpool.Pool
}

func Connect(ctx context.Context, databaseURL, databaseName string) (*PG, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	if databaseName != "" {
		poolCfg.ConnConfig.RuntimeParams["search_path"] = databaseName
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	return &PG{Pool: pool}, nil
}

func (s *PG) Close() {
	s.Pool.Close()
}

func (s *PG) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *PG) Collection(name string) Collection {
	return &pgCollection{pool: s.Pool, name: name}
}

type pgCollection struct {
	pool *pgxpool.Pool
	name string
}

func filterArg(filter Filter) map[string]any {
	if filter == nil {
		return map[string]any{}
	}
	return filter
}

func (c *pgCollection) InsertOne(ctx context.Context, doc map[string]any) error {
	_, err := c.pool.Exec(ctx, `
    INSERT INTO documents (collection, doc) VALUES ($1, $2)
  `, c.name, doc)
	return err
}

func (c *pgCollection) Find(ctx context.Context, filter Filter, limit int) ([]map[string]any, error) {
	rows, err := c.pool.Query(ctx, `
    SELECT doc FROM documents
    WHERE collection = $1 AND doc @> $2
    ORDER BY seq
    LIMIT $3
  `, c.name, filterArg(filter), clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []map[string]any
	for rows.Next() {
		var doc map[string]any
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (c *pgCollection) FindOne(ctx context.Context, filter Filter) (map[string]any, error) {
	var doc map[string]any
	err := c.pool.QueryRow(ctx, `
    SELECT doc FROM documents
    WHERE collection = $1 AND doc @> $2
    ORDER BY seq
    LIMIT 1
  `, c.name, filterArg(filter)).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoDocuments
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *pgCollection) UpdateOne(ctx context.Context, filter Filter, set map[string]any) (bool, error) {
	tag, err := c.pool.Exec(ctx, `
    UPDATE documents SET doc = doc || $3
    WHERE seq = (
      SELECT seq FROM documents
      WHERE collection = $1 AND doc @> $2
      ORDER BY seq
      LIMIT 1
    )
  `, c.name, filterArg(filter), set)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Migrate applies the .sql files in migrationsDir in lexical order, once
// each, recording applied versions in schema_migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool, databaseName, migrationsDir string) error {
	if databaseName != "" {
		ident := pgx.Identifier{databaseName}.Sanitize()
		if _, err := pool.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+ident); err != nil {
			return err
		}
	}
	if err := ensureMigrationsTable(ctx, pool); err != nil {
		return err
	}

	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		version := strings.TrimSuffix(file, ".sql")
		applied, err := migrationApplied(ctx, pool, version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		sqlBytes, err := os.ReadFile(filepath.Join(migrationsDir, file))
		if err != nil {
			return err
		}

		tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, string(sqlBytes)); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("migration %s failed: %w", version, err)
		}

		if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", version); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}
	}

	return nil
}

func ensureMigrationsTable(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, "CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMPTZ NOT NULL DEFAULT now())")
	return err
}

func migrationApplied(ctx context.Context, pool *pgxpool.Pool, version string) (bool, error) {
	var count int
	err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM schema_migrations WHERE version = $1", version).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
