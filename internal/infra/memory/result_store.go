package memory

import (
	"context"
	"sync"

	"gamified-learning-service/internal/domain"
)

// ResultStore is an in-memory implementation of app.ResultStore, used in
// tests and when the service runs without a durable backend.
type ResultStore struct {
	mu       sync.RWMutex
	results  map[string][]domain.QuizResult
	concepts map[string][]string
}

func NewResultStore() *ResultStore {
	return &ResultStore{
		results:  make(map[string][]domain.QuizResult),
		concepts: make(map[string][]string),
	}
}

func (s *ResultStore) AppendResult(_ context.Context, learner string, result domain.QuizResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[learner] = append(s.results[learner], result)
	return nil
}

func (s *ResultStore) UpdateWeakConcepts(_ context.Context, learner string, concepts []string) error {
	if len(concepts) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.concepts[learner] = append([]string(nil), concepts...)
	return nil
}

func (s *ResultStore) ReadResults(_ context.Context, learner string) ([]domain.QuizResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.QuizResult(nil), s.results[learner]...), nil
}

func (s *ResultStore) ReadWeakConcepts(_ context.Context, learner string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.concepts[learner]...), nil
}
