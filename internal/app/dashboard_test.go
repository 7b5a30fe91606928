package app_test

import (
	"context"
	"testing"
	"time"

	"gamified-learning-service/internal/app"
	"gamified-learning-service/internal/domain"
	"gamified-learning-service/internal/infra/memory"
)

func seedResults(t *testing.T, store app.ResultStore, learner string, scores map[string][]int) {
	t.Helper()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	i := 0
	for subject, percents := range scores {
		for _, percent := range percents {
			err := store.AppendResult(context.Background(), learner, domain.QuizResult{
				LearnerName:  learner,
				SubjectID:    subject,
				LessonID:     1,
				ScorePercent: percent,
				CompletedAt:  base.Add(time.Duration(i) * time.Hour),
			})
			if err != nil {
				t.Fatalf("seed result: %v", err)
			}
			i++
		}
	}
}

func TestComputeStatsNoResults(t *testing.T) {
	store := memory.NewResultStore()
	subjects := memory.NewCatalogRepository(memory.NewStaticCatalogLoader(fixtureSubjects()), time.Minute)
	service := app.NewLearningService(subjects, store, app.Options{})

	stats, err := service.ComputeStats(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("compute stats: %v", err)
	}
	if stats.TotalQuizzes != 0 || stats.AverageScorePercent != 0 || stats.HighestScorePercent != 0 {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
	if len(stats.SubjectScores) != 0 {
		t.Fatalf("expected empty subject scores, got %v", stats.SubjectScores)
	}
}

func TestComputeStatsAggregates(t *testing.T) {
	store := memory.NewResultStore()
	subjects := memory.NewCatalogRepository(memory.NewStaticCatalogLoader(fixtureSubjects()), time.Minute)
	service := app.NewLearningService(subjects, store, app.Options{})

	// Appended in order: math 60 then 90, science 70. The subject score must
	// reflect the latest attempt, not the best one.
	seedResults(t, store, "Ravi", map[string][]int{"math": {60, 90}})
	seedResults(t, store, "Ravi", map[string][]int{"science": {70}})
	seedResults(t, store, "Ravi", map[string][]int{"math": {50}})

	stats, err := service.ComputeStats(context.Background(), "Ravi")
	if err != nil {
		t.Fatalf("compute stats: %v", err)
	}
	if stats.TotalQuizzes != 4 {
		t.Fatalf("expected 4 quizzes, got %d", stats.TotalQuizzes)
	}
	if stats.AverageScorePercent != 67.5 {
		t.Fatalf("expected average 67.5, got %v", stats.AverageScorePercent)
	}
	if stats.HighestScorePercent != 90 {
		t.Fatalf("expected highest 90, got %d", stats.HighestScorePercent)
	}
	if stats.SubjectScores["math"] != 50 || stats.SubjectScores["science"] != 70 {
		t.Fatalf("unexpected subject scores: %v", stats.SubjectScores)
	}
}

func TestLearnerHistoryOrderPreserved(t *testing.T) {
	store := memory.NewResultStore()
	subjects := memory.NewCatalogRepository(memory.NewStaticCatalogLoader(fixtureSubjects()), time.Minute)
	service := app.NewLearningService(subjects, store, app.Options{})

	for _, percent := range []int{40, 80, 60} {
		err := store.AppendResult(context.Background(), "Ravi", domain.QuizResult{
			LearnerName: "Ravi", SubjectID: "math", LessonID: 1, ScorePercent: percent,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	history, err := service.LearnerHistory(context.Background(), "Ravi")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 results, got %d", len(history))
	}
	for i, want := range []int{40, 80, 60} {
		if history[i].ScorePercent != want {
			t.Fatalf("result %d: expected %d, got %d", i, want, history[i].ScorePercent)
		}
	}
}
