package catalog

import (
	"testing"

	"gamified-learning-service/internal/domain"
)

func TestBuiltinSubjectsWellFormed(t *testing.T) {
	subjects := BuiltinSubjects()
	if len(subjects) == 0 {
		t.Fatalf("empty bank")
	}
	for _, subject := range subjects {
		if subject.ID == "" || subject.Name == "" || len(subject.Lessons) == 0 {
			t.Fatalf("incomplete subject: %+v", subject)
		}
		for _, lesson := range subject.Lessons {
			if len(lesson.Questions) != domain.QuestionsPerLesson {
				t.Fatalf("%s lesson %d has %d questions", subject.ID, lesson.ID, len(lesson.Questions))
			}
			for i, question := range lesson.Questions {
				if question.Concept == "" || question.Prompt == "" {
					t.Fatalf("%s lesson %d question %d is incomplete", subject.ID, lesson.ID, i)
				}
				if len(question.Options) != 4 {
					t.Fatalf("%s lesson %d question %d has %d options", subject.ID, lesson.ID, i, len(question.Options))
				}
				if question.CorrectOption < 0 || question.CorrectOption >= len(question.Options) {
					t.Fatalf("%s lesson %d question %d correct option out of range", subject.ID, lesson.ID, i)
				}
			}
		}
	}
}

func TestBuiltinSubjectsReturnsFreshCopies(t *testing.T) {
	first := BuiltinSubjects()
	first[0].Lessons[0].Questions[0].Prompt = "mutated"
	second := BuiltinSubjects()
	if second[0].Lessons[0].Questions[0].Prompt == "mutated" {
		t.Fatalf("bank shares state between calls")
	}
}
