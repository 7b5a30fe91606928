package domain

import "time"

// TimedOutOption is the sentinel recorded when the per-question timer expires
// before the learner picks an option. It never matches a valid option index,
// so a timed-out question is always scored incorrect.
const TimedOutOption = -1

// QuestionsPerLesson is fixed: every lesson is a ten-question attempt.
const QuestionsPerLesson = 10

// Question is a single multiple-choice question tagged with the concept it tests.
type Question struct {
	Concept       string   `json:"concept"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correctOption"`
}

// Lesson groups exactly ten questions under a numeric lesson id.
type Lesson struct {
	ID        int        `json:"id"`
	Questions []Question `json:"questions"`
}

// Subject is an immutable catalogue entry (e.g. "math", "science").
type Subject struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Lessons []Lesson `json:"lessons"`
}

// FindLesson returns the lesson with the given id, if the subject has one.
func (s Subject) FindLesson(lessonID int) (Lesson, bool) {
	for _, lesson := range s.Lessons {
		if lesson.ID == lessonID {
			return lesson, true
		}
	}
	return Lesson{}, false
}

// Answer records one answered (or timed-out) question within a session.
type Answer struct {
	QuestionIndex  int `json:"questionIndex"`
	SelectedOption int `json:"selectedOption"`
}

// MasteryStatus classifies how well a learner performed on a concept.
type MasteryStatus string

const (
	MasteryStrong           MasteryStatus = "Strong"
	MasteryNeedsImprovement MasteryStatus = "Needs Improvement"
	MasteryWeak             MasteryStatus = "Weak"
)

// ConceptPerformance is the per-concept breakdown computed once a session completes.
type ConceptPerformance struct {
	Concept    string        `json:"concept"`
	Correct    int           `json:"correct"`
	Total      int           `json:"total"`
	Percentage float64       `json:"percentage"`
	Status     MasteryStatus `json:"status"`
}

// QuizResult is the durable record appended once per completed session.
// Records are append-only: never edited or deleted by this service.
type QuizResult struct {
	LearnerName        string               `json:"learnerName"`
	SubjectID          string               `json:"subjectId"`
	LessonID           int                  `json:"lessonId"`
	ScorePercent       int                  `json:"scorePercent"`
	ConceptPerformance []ConceptPerformance `json:"conceptPerformance"`
	CompletedAt        time.Time            `json:"completedAt"`
}

// LearnerStats is the dashboard view, recomputed in full from stored results
// on every read; nothing here is cached durably.
type LearnerStats struct {
	TotalQuizzes        int            `json:"totalQuizzes"`
	AverageScorePercent float64        `json:"averageScorePercent"`
	HighestScorePercent int            `json:"highestScorePercent"`
	SubjectScores       map[string]int `json:"subjectScores"`
}
