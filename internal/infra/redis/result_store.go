package redis

import (
	"context"
	"fmt"

	"gamified-learning-service/internal/domain"
	"gamified-learning-service/internal/infra/blob"
	"github.com/redis/go-redis/v9"
)

// ResultStore keeps each learner's data under two opaque string keys:
//
//	learning:results:{learner}  versioned JSON envelope, append-only list
//	learning:weak:{learner}     versioned JSON envelope, overwritten whole
//
// Writes are whole-blob read-modify-write. Reads degrade to empty on missing
// or malformed data instead of failing — history is best-effort.
type ResultStore struct {
	client *redis.Client
}

func NewResultStore(client *redis.Client) *ResultStore {
	return &ResultStore{client: client}
}

func (s *ResultStore) AppendResult(ctx context.Context, learner string, result domain.QuizResult) error {
	key := s.resultsKey(learner)
	results := blob.DecodeResults(s.read(ctx, key))
	results = append(results, result)

	raw, err := blob.EncodeResults(results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := s.client.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

func (s *ResultStore) UpdateWeakConcepts(ctx context.Context, learner string, concepts []string) error {
	if len(concepts) == 0 {
		return nil
	}
	raw, err := blob.EncodeConcepts(concepts)
	if err != nil {
		return fmt.Errorf("encode weak concepts: %w", err)
	}
	if err := s.client.Set(ctx, s.weakKey(learner), raw, 0).Err(); err != nil {
		return fmt.Errorf("write weak concepts: %w", err)
	}
	return nil
}

func (s *ResultStore) ReadResults(ctx context.Context, learner string) ([]domain.QuizResult, error) {
	return blob.DecodeResults(s.read(ctx, s.resultsKey(learner))), nil
}

func (s *ResultStore) ReadWeakConcepts(ctx context.Context, learner string) ([]string, error) {
	return blob.DecodeConcepts(s.read(ctx, s.weakKey(learner))), nil
}

// read fetches a raw blob, treating any failure as absent data.
func (s *ResultStore) read(ctx context.Context, key string) []byte {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and transport errors alike read as empty history; an
		// unreachable store must never surface as a user error.
		return nil
	}
	return raw
}

func (s *ResultStore) resultsKey(learner string) string {
	return "learning:results:" + learner
}

func (s *ResultStore) weakKey(learner string) string {
	return "learning:weak:" + learner
}
