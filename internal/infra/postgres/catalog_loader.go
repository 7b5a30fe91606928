package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"gamified-learning-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// CatalogLoader loads subject JSONB from Postgres.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

func (l *CatalogLoader) LoadSubject(ctx context.Context, subjectID string) (domain.Subject, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM subjects WHERE id=$1`, subjectID).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Subject{}, domain.ErrSubjectNotFound
		}
		return domain.Subject{}, fmt.Errorf("load subject: %w", err)
	}
	var subject domain.Subject
	if err := json.Unmarshal(raw, &subject); err != nil {
		return domain.Subject{}, fmt.Errorf("unmarshal subject: %w", err)
	}
	return subject, nil
}

func (l *CatalogLoader) ListSubjects(ctx context.Context) ([]domain.Subject, error) {
	rows, err := l.pool.Query(ctx, `SELECT data FROM subjects ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []domain.Subject
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		var subject domain.Subject
		if err := json.Unmarshal(raw, &subject); err != nil {
			return nil, fmt.Errorf("unmarshal subject: %w", err)
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}
