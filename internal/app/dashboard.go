package app

import (
	"context"

	"gamified-learning-service/internal/domain"
)

// ComputeStats recomputes the parent-dashboard view from every stored result
// for the learner. The durable store holds only raw per-session facts, so the
// aggregation is rebuilt in full on each call: count, arithmetic mean, max,
// and per-subject latest score (last result wins for each subject).
func (s *LearningService) ComputeStats(ctx context.Context, learner string) (domain.LearnerStats, error) {
	results, err := s.store.ReadResults(ctx, learner)
	if err != nil {
		return domain.LearnerStats{}, err
	}

	stats := domain.LearnerStats{SubjectScores: make(map[string]int)}
	if len(results) == 0 {
		return stats, nil
	}

	total := 0
	for _, result := range results {
		total += result.ScorePercent
		if result.ScorePercent > stats.HighestScorePercent {
			stats.HighestScorePercent = result.ScorePercent
		}
		stats.SubjectScores[result.SubjectID] = result.ScorePercent
	}
	stats.TotalQuizzes = len(results)
	stats.AverageScorePercent = float64(total) / float64(len(results))
	return stats, nil
}

// LearnerHistory returns all stored results for a learner, oldest first.
func (s *LearningService) LearnerHistory(ctx context.Context, learner string) ([]domain.QuizResult, error) {
	return s.store.ReadResults(ctx, learner)
}

// LearnerWeakConcepts returns the most recently recorded weak-concept list.
func (s *LearningService) LearnerWeakConcepts(ctx context.Context, learner string) ([]string, error) {
	return s.store.ReadWeakConcepts(ctx, learner)
}
