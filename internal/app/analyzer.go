package app

import "gamified-learning-service/internal/domain"

// Mastery thresholds, in percent correct per concept.
const (
	strongThreshold = 80.0
	weakThreshold   = 40.0
)

// AnalyzeConceptPerformance groups a session's answered questions by concept
// tag and classifies each concept's mastery. Output order follows the first
// appearance of each concept among the lesson's questions; questions without
// a recorded answer are ignored.
func AnalyzeConceptPerformance(questions []domain.Question, answers []domain.Answer) []domain.ConceptPerformance {
	answered := make(map[int]int, len(answers))
	for _, a := range answers {
		answered[a.QuestionIndex] = a.SelectedOption
	}

	order := make([]string, 0, len(questions))
	tally := make(map[string]*domain.ConceptPerformance, len(questions))
	for i, q := range questions {
		selected, ok := answered[i]
		if !ok {
			continue
		}
		perf, seen := tally[q.Concept]
		if !seen {
			perf = &domain.ConceptPerformance{Concept: q.Concept}
			tally[q.Concept] = perf
			order = append(order, q.Concept)
		}
		perf.Total++
		if selected == q.CorrectOption {
			perf.Correct++
		}
	}

	out := make([]domain.ConceptPerformance, 0, len(order))
	for _, concept := range order {
		perf := tally[concept]
		perf.Percentage = float64(perf.Correct) / float64(perf.Total) * 100
		perf.Status = classifyMastery(perf.Percentage)
		out = append(out, *perf)
	}
	return out
}

func classifyMastery(percentage float64) domain.MasteryStatus {
	switch {
	case percentage >= strongThreshold:
		return domain.MasteryStrong
	case percentage >= weakThreshold:
		return domain.MasteryNeedsImprovement
	default:
		return domain.MasteryWeak
	}
}

// WeakConcepts extracts the concept names classified Weak, preserving order.
func WeakConcepts(performance []domain.ConceptPerformance) []string {
	var weak []string
	for _, perf := range performance {
		if perf.Status == domain.MasteryWeak {
			weak = append(weak, perf.Concept)
		}
	}
	return weak
}
