package app

import (
	"context"
	"time"

	"gamified-learning-service/internal/domain"
)

// SubjectRepository loads catalogue content (from cache/backing store).
type SubjectRepository interface {
	GetSubject(ctx context.Context, subjectID string) (domain.Subject, error)
	ListSubjects(ctx context.Context) ([]domain.Subject, error)
}

// ResultStore is the durable area for per-session facts. Writes are whole-blob
// read-modify-write; reads degrade to empty collections when the underlying
// data is missing or malformed, never to an error the caller must handle.
type ResultStore interface {
	AppendResult(ctx context.Context, learner string, result domain.QuizResult) error
	// UpdateWeakConcepts overwrites the learner's weak-concept list. An empty
	// list is a no-op: one strong session does not erase a documented weakness.
	UpdateWeakConcepts(ctx context.Context, learner string, concepts []string) error
	ReadResults(ctx context.Context, learner string) ([]domain.QuizResult, error)
	ReadWeakConcepts(ctx context.Context, learner string) ([]string, error)
}

// Defaults for session timing; overridable through Options for tests and config.
const (
	DefaultQuestionTime  = 30 * time.Second
	DefaultFeedbackDelay = 1500 * time.Millisecond
)

// Options tunes session timing and scheduling. Zero values fall back to the
// defaults above and a wall-clock scheduler.
type Options struct {
	QuestionTime  time.Duration
	FeedbackDelay time.Duration
	Scheduler     Scheduler
	Clock         func() time.Time
}

// LearningService owns the quiz use cases: running sessions, analyzing
// concept mastery, persisting results, and recomputing dashboard stats.
type LearningService struct {
	subjects SubjectRepository
	store    ResultStore

	questionTime  time.Duration
	feedbackDelay time.Duration
	sched         Scheduler
	now           func() time.Time
}

func NewLearningService(subjects SubjectRepository, store ResultStore, opts Options) *LearningService {
	if opts.QuestionTime <= 0 {
		opts.QuestionTime = DefaultQuestionTime
	}
	if opts.FeedbackDelay <= 0 {
		opts.FeedbackDelay = DefaultFeedbackDelay
	}
	if opts.Scheduler == nil {
		opts.Scheduler = WallClockScheduler{}
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &LearningService{
		subjects:      subjects,
		store:         store,
		questionTime:  opts.QuestionTime,
		feedbackDelay: opts.FeedbackDelay,
		sched:         opts.Scheduler,
		now:           opts.Clock,
	}
}

// ListSubjects exposes the catalogue for selection screens.
func (s *LearningService) ListSubjects(ctx context.Context) ([]domain.Subject, error) {
	return s.subjects.ListSubjects(ctx)
}

// FindLesson resolves a subject/lesson pair, mapping a missing lesson to
// domain.ErrLessonNotFound.
func (s *LearningService) FindLesson(ctx context.Context, subjectID string, lessonID int) (domain.Subject, domain.Lesson, error) {
	subject, err := s.subjects.GetSubject(ctx, subjectID)
	if err != nil {
		return domain.Subject{}, domain.Lesson{}, err
	}
	lesson, ok := subject.FindLesson(lessonID)
	if !ok {
		return domain.Subject{}, domain.Lesson{}, domain.ErrLessonNotFound
	}
	return subject, lesson, nil
}
