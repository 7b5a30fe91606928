package domain

import "errors"

var (
	// ErrSubjectNotFound indicates the requested subject is not in the catalogue.
	ErrSubjectNotFound = errors.New("subject not found")
	// ErrLessonNotFound indicates the subject has no lesson with that id.
	ErrLessonNotFound = errors.New("lesson not found")
	// ErrSelectionIncomplete is returned when a session is started without both
	// a subject and a lesson chosen. Callers treat it as a no-op, not a fault.
	ErrSelectionIncomplete = errors.New("subject and lesson must be selected")
	// ErrSessionActive is returned when starting a session that is already running.
	ErrSessionActive = errors.New("quiz session already in progress")
	// ErrSessionNotActive is returned when answering outside an in-progress session.
	ErrSessionNotActive = errors.New("quiz session not in progress")
	// ErrInvalidOption is returned for an answer index outside the option range.
	ErrInvalidOption = errors.New("selected option out of range")
	// ErrLearnerUnknown indicates no learner profile with that name is registered.
	ErrLearnerUnknown = errors.New("learner not registered")
	// ErrInvalidCredentials covers bad parent passwords and learner secret keys.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
