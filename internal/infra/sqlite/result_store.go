// Package sqlite persists learner blobs in a single key/value table, for
// deployments without a redis instance.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"gamified-learning-service/internal/domain"
	"gamified-learning-service/internal/infra/blob"
	_ "github.com/mattn/go-sqlite3"
)

const createKVTable = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// ResultStore implements app.ResultStore on SQLite. Values are the same
// versioned JSON envelopes the redis store uses; reads degrade to empty on
// missing or malformed data.
type ResultStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// kv table exists.
func Open(path string) (*ResultStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(createKVTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return &ResultStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *ResultStore) Close() error {
	return s.db.Close()
}

func (s *ResultStore) AppendResult(ctx context.Context, learner string, result domain.QuizResult) error {
	key := "results:" + learner
	results := blob.DecodeResults(s.read(ctx, key))
	results = append(results, result)

	raw, err := blob.EncodeResults(results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return s.write(ctx, key, raw)
}

func (s *ResultStore) UpdateWeakConcepts(ctx context.Context, learner string, concepts []string) error {
	if len(concepts) == 0 {
		return nil
	}
	raw, err := blob.EncodeConcepts(concepts)
	if err != nil {
		return fmt.Errorf("encode weak concepts: %w", err)
	}
	return s.write(ctx, "weak:"+learner, raw)
}

func (s *ResultStore) ReadResults(ctx context.Context, learner string) ([]domain.QuizResult, error) {
	return blob.DecodeResults(s.read(ctx, "results:"+learner)), nil
}

func (s *ResultStore) ReadWeakConcepts(ctx context.Context, learner string) ([]string, error) {
	return blob.DecodeConcepts(s.read(ctx, "weak:"+learner)), nil
}

func (s *ResultStore) read(ctx context.Context, key string) []byte {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		// sql.ErrNoRows and real read failures both mean empty history here;
		// losing analytics must not block taking a new quiz.
		return nil
	}
	return []byte(value)
}

func (s *ResultStore) write(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, string(value))
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
