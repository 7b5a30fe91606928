package app

import (
	"context"
	"log"
	"sync"
	"time"

	"gamified-learning-service/internal/domain"
	"github.com/google/uuid"
)

// tickInterval is how often an in-progress session counts down.
const tickInterval = time.Second

// SessionStatus is the lifecycle state of one lesson attempt.
type SessionStatus string

const (
	StatusNotStarted SessionStatus = "NotStarted"
	StatusInProgress SessionStatus = "InProgress"
	StatusCompleted  SessionStatus = "Completed"
)

// EventType tags the updates a session publishes to subscribers.
type EventType string

const (
	EventQuestion  EventType = "question"
	EventTick      EventType = "tick"
	EventFeedback  EventType = "feedback"
	EventCompleted EventType = "completed"
)

// QuestionView is the learner-facing form of a question: the correct option
// index is deliberately absent.
type QuestionView struct {
	Index     int      `json:"index"`
	Prompt    string   `json:"prompt"`
	Options   []string `json:"options"`
	TimeLimit int      `json:"timeLimitSeconds"`
}

// Feedback is the transient correct/incorrect signal shown between questions.
type Feedback struct {
	QuestionIndex  int  `json:"questionIndex"`
	SelectedOption int  `json:"selectedOption"`
	Correct        bool `json:"correct"`
	Score          int  `json:"score"`
	Streak         int  `json:"streak"`
}

// SessionResult summarizes a completed attempt.
type SessionResult struct {
	Score              int                         `json:"score"`
	ScorePercent       int                         `json:"scorePercent"`
	ConceptPerformance []domain.ConceptPerformance `json:"conceptPerformance"`
}

// Event is one update on a session's subscription channel. Exactly one of the
// pointer fields is set, matching Type.
type Event struct {
	Type      EventType      `json:"type"`
	Question  *QuestionView  `json:"question,omitempty"`
	Remaining int            `json:"remaining,omitempty"`
	Feedback  *Feedback      `json:"feedback,omitempty"`
	Result    *SessionResult `json:"result,omitempty"`
}

// Session drives one lesson attempt for a learner. All mutation happens under
// the session mutex; the per-second countdown and the feedback-delay advance
// run as scheduled callbacks guarded by a generation counter so a timer from
// a superseded run can never touch newer state.
type Session struct {
	id      string
	learner string
	svc     *LearningService

	mu              sync.Mutex
	status          SessionStatus
	subject         domain.Subject
	lesson          domain.Lesson
	current         int
	score           int
	streak          int
	timeRemaining   int
	answers         []domain.Answer
	awaitingAdvance bool
	persisted       bool
	closed          bool

	generation   uint64
	tickTimer    Timer
	advanceTimer Timer

	subscribers map[chan Event]struct{}
}

// NewSession creates an idle session bound to a learner profile.
func (s *LearningService) NewSession(learner string) *Session {
	return &Session{
		id:          uuid.NewString(),
		learner:     learner,
		svc:         s,
		status:      StatusNotStarted,
		subscribers: make(map[chan Event]struct{}),
	}
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// Learner returns the learner this session belongs to.
func (s *Session) Learner() string { return s.learner }

// Start begins a lesson attempt. Starting without both a subject and a lesson
// selected is rejected with domain.ErrSelectionIncomplete and leaves the
// session untouched; so does starting while a run is already in progress.
func (s *Session) Start(ctx context.Context, subjectID string, lessonID int) error {
	if subjectID == "" || lessonID == 0 {
		return domain.ErrSelectionIncomplete
	}

	subject, lesson, err := s.svc.FindLesson(ctx, subjectID, lessonID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrSessionNotActive
	}
	if s.status == StatusInProgress {
		return domain.ErrSessionActive
	}

	s.stopTimersLocked()
	s.generation++
	s.subject = subject
	s.lesson = lesson
	s.current = 0
	s.score = 0
	s.streak = 0
	s.answers = nil
	s.awaitingAdvance = false
	s.persisted = false
	s.timeRemaining = int(s.svc.questionTime.Seconds())
	s.status = StatusInProgress

	s.publishQuestionLocked()
	s.scheduleTickLocked()
	return nil
}

// SubmitAnswer scores the current question. The timeout path uses the
// domain.TimedOutOption sentinel; learner submissions must be a real option
// index. During the feedback window, and outside InProgress, submissions are
// rejected.
func (s *Session) SubmitAnswer(selectedOption int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.status != StatusInProgress || s.awaitingAdvance {
		return domain.ErrSessionNotActive
	}
	if selectedOption != domain.TimedOutOption {
		question := s.lesson.Questions[s.current]
		if selectedOption < 0 || selectedOption >= len(question.Options) {
			return domain.ErrInvalidOption
		}
	}
	s.applyAnswerLocked(selectedOption)
	return nil
}

// Reset returns the session to NotStarted, discarding all attempt state and
// cancelling any pending timers. An in-progress attempt is simply dropped,
// never partially scored or persisted.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.stopTimersLocked()
	s.generation++
	s.status = StatusNotStarted
	s.subject = domain.Subject{}
	s.lesson = domain.Lesson{}
	s.current = 0
	s.score = 0
	s.streak = 0
	s.answers = nil
	s.awaitingAdvance = false
	s.persisted = false
	s.timeRemaining = 0
}

// Close tears the session down: timers are cancelled and subscriber channels
// closed. Safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.stopTimersLocked()
	s.generation++
	s.closed = true
	for ch := range s.subscribers {
		delete(s.subscribers, ch)
		close(ch)
	}
}

// Subscribe returns a channel of session events. The caller must invoke the
// returned cancel function to avoid leaks.
func (s *Session) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// Status reports the session's lifecycle state.
func (s *Session) Status() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Score reports correct answers so far.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Streak reports consecutive correct answers ending at the latest one.
func (s *Session) Streak() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streak
}

// CurrentQuestion reports the index of the question being asked.
func (s *Session) CurrentQuestion() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// TimeRemaining reports the seconds left on the current question.
func (s *Session) TimeRemaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeRemaining
}

// Answers returns a copy of the recorded answers.
func (s *Session) Answers() []domain.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Answer, len(s.answers))
	copy(out, s.answers)
	return out
}

func (s *Session) applyAnswerLocked(selectedOption int) {
	s.stopTickLocked()

	question := s.lesson.Questions[s.current]
	correct := selectedOption == question.CorrectOption
	s.answers = append(s.answers, domain.Answer{QuestionIndex: s.current, SelectedOption: selectedOption})
	if correct {
		s.score++
		s.streak++
	} else {
		s.streak = 0
	}
	s.awaitingAdvance = true

	s.publishLocked(Event{Type: EventFeedback, Feedback: &Feedback{
		QuestionIndex:  s.current,
		SelectedOption: selectedOption,
		Correct:        correct,
		Score:          s.score,
		Streak:         s.streak,
	}})

	gen := s.generation
	s.advanceTimer = s.svc.sched.AfterFunc(s.svc.feedbackDelay, func() {
		s.advance(gen)
	})
}

func (s *Session) tick(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation || s.status != StatusInProgress || s.awaitingAdvance {
		return
	}
	s.timeRemaining--
	s.publishLocked(Event{Type: EventTick, Remaining: s.timeRemaining})
	if s.timeRemaining <= 0 {
		s.applyAnswerLocked(domain.TimedOutOption)
		return
	}
	s.scheduleTickLocked()
}

func (s *Session) advance(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation || s.status != StatusInProgress || !s.awaitingAdvance {
		return
	}
	s.awaitingAdvance = false

	if s.current < len(s.lesson.Questions)-1 {
		s.current++
		s.timeRemaining = int(s.svc.questionTime.Seconds())
		s.publishQuestionLocked()
		s.scheduleTickLocked()
		return
	}
	s.completeLocked()
}

// completeLocked runs the analyzer and the persistence writes exactly once
// per completed attempt, then publishes the final result.
func (s *Session) completeLocked() {
	s.status = StatusCompleted
	if s.persisted {
		return
	}
	s.persisted = true

	performance := AnalyzeConceptPerformance(s.lesson.Questions, s.answers)
	scorePercent := s.score * 100 / len(s.lesson.Questions)
	result := domain.QuizResult{
		LearnerName:        s.learner,
		SubjectID:          s.subject.ID,
		LessonID:           s.lesson.ID,
		ScorePercent:       scorePercent,
		ConceptPerformance: performance,
		CompletedAt:        s.svc.now(),
	}

	// Persistence is best-effort: losing analytics must not break the quiz.
	ctx := context.Background()
	if err := s.svc.store.AppendResult(ctx, s.learner, result); err != nil {
		log.Printf("[STORE] append result for %s: %v", s.learner, err)
	}
	if weak := WeakConcepts(performance); len(weak) > 0 {
		if err := s.svc.store.UpdateWeakConcepts(ctx, s.learner, weak); err != nil {
			log.Printf("[STORE] update weak concepts for %s: %v", s.learner, err)
		}
	}

	s.publishLocked(Event{Type: EventCompleted, Result: &SessionResult{
		Score:              s.score,
		ScorePercent:       scorePercent,
		ConceptPerformance: performance,
	}})
}

func (s *Session) scheduleTickLocked() {
	gen := s.generation
	s.tickTimer = s.svc.sched.AfterFunc(tickInterval, func() {
		s.tick(gen)
	})
}

func (s *Session) stopTickLocked() {
	if s.tickTimer != nil {
		s.tickTimer.Stop()
		s.tickTimer = nil
	}
}

func (s *Session) stopTimersLocked() {
	s.stopTickLocked()
	if s.advanceTimer != nil {
		s.advanceTimer.Stop()
		s.advanceTimer = nil
	}
}

func (s *Session) publishQuestionLocked() {
	question := s.lesson.Questions[s.current]
	options := make([]string, len(question.Options))
	copy(options, question.Options)
	s.publishLocked(Event{Type: EventQuestion, Question: &QuestionView{
		Index:     s.current,
		Prompt:    question.Prompt,
		Options:   options,
		TimeLimit: s.timeRemaining,
	}})
}

func (s *Session) publishLocked(event Event) {
	for ch := range s.subscribers {
		select {
		case ch <- event:
		default:
			// Drop the oldest update so a slow consumer never blocks the session.
			select {
			case <-ch:
			default:
			}
			ch <- event
		}
	}
}
