// Package catalog holds the built-in subject/lesson/question bank used when
// no Postgres catalogue is configured, and seeds the database otherwise.
package catalog

import "gamified-learning-service/internal/domain"

// BuiltinSubjects returns the shipped catalogue. Each lesson carries exactly
// ten questions; the slice is rebuilt per call so callers may not mutate
// shared state.
func BuiltinSubjects() []domain.Subject {
	return []domain.Subject{
		{
			ID:   "math",
			Name: "Mathematics",
			Lessons: []domain.Lesson{
				{
					ID: 1,
					Questions: []domain.Question{
						{Concept: "Addition of single-digit numbers", Prompt: "What is 5 + 3?", Options: []string{"6", "7", "8", "9"}, CorrectOption: 2},
						{Concept: "Subtraction of single-digit numbers", Prompt: "What is 9 - 4?", Options: []string{"3", "4", "5", "6"}, CorrectOption: 2},
						{Concept: "Counting by twos", Prompt: "What comes after 6 when counting by twos?", Options: []string{"7", "8", "9", "10"}, CorrectOption: 1},
						{Concept: "Number patterns", Prompt: "What number comes next: 2, 4, 6, 8, __?", Options: []string{"9", "10", "11", "12"}, CorrectOption: 1},
						{Concept: "Simple word problems", Prompt: "If you have 3 apples and get 2 more, how many do you have?", Options: []string{"4", "5", "6", "7"}, CorrectOption: 1},
						{Concept: "Number comparison", Prompt: "Which number is greater: 7 or 9?", Options: []string{"7", "9", "They are equal", "Cannot compare"}, CorrectOption: 1},
						{Concept: "Basic shapes", Prompt: "How many sides does a triangle have?", Options: []string{"2", "3", "4", "5"}, CorrectOption: 1},
						{Concept: "Simple fractions", Prompt: "What is half of 8?", Options: []string{"2", "3", "4", "5"}, CorrectOption: 2},
						{Concept: "Number sequences", Prompt: "What comes next: 1, 3, 5, 7, __?", Options: []string{"8", "9", "10", "11"}, CorrectOption: 1},
						{Concept: "Basic measurement", Prompt: "Which is longer: a pencil or a ruler?", Options: []string{"Pencil", "Ruler", "Same length", "Cannot tell"}, CorrectOption: 1},
					},
				},
				{
					ID: 2,
					Questions: []domain.Question{
						{Concept: "Addition with carrying", Prompt: "What is 15 + 7?", Options: []string{"20", "21", "22", "23"}, CorrectOption: 2},
						{Concept: "Subtraction with borrowing", Prompt: "What is 13 - 5?", Options: []string{"6", "7", "8", "9"}, CorrectOption: 2},
						{Concept: "Multiplication basics", Prompt: "What is 4 × 3?", Options: []string{"10", "11", "12", "13"}, CorrectOption: 2},
						{Concept: "Division basics", Prompt: "What is 8 ÷ 2?", Options: []string{"2", "3", "4", "5"}, CorrectOption: 2},
						{Concept: "Money counting", Prompt: "How many quarters make $1?", Options: []string{"2", "3", "4", "5"}, CorrectOption: 2},
						{Concept: "Time telling", Prompt: "What time is it when the hour hand is on 3 and the minute hand is on 12?", Options: []string{"3:00", "3:12", "12:03", "12:30"}, CorrectOption: 0},
						{Concept: "Place value", Prompt: "What is the value of 5 in 52?", Options: []string{"5", "50", "500", "5000"}, CorrectOption: 1},
						{Concept: "Number patterns", Prompt: "What comes next: 5, 10, 15, 20, __?", Options: []string{"22", "23", "24", "25"}, CorrectOption: 3},
						{Concept: "Word problems", Prompt: "If you have 4 bags with 3 marbles each, how many marbles do you have?", Options: []string{"7", "10", "12", "15"}, CorrectOption: 2},
						{Concept: "Geometry basics", Prompt: "How many corners does a square have?", Options: []string{"2", "3", "4", "5"}, CorrectOption: 2},
					},
				},
			},
		},
		{
			ID:   "science",
			Name: "Science",
			Lessons: []domain.Lesson{
				{
					ID: 1,
					Questions: []domain.Question{
						{Concept: "Basic plant parts", Prompt: "Which part of the plant takes in water from the soil?", Options: []string{"Leaves", "Stem", "Roots", "Flowers"}, CorrectOption: 2},
						{Concept: "Animal habitats", Prompt: "Where do fish live?", Options: []string{"In trees", "In water", "In caves", "In the sky"}, CorrectOption: 1},
						{Concept: "Weather basics", Prompt: "What do we use to measure temperature?", Options: []string{"Ruler", "Thermometer", "Clock", "Scale"}, CorrectOption: 1},
						{Concept: "Five senses", Prompt: "Which sense do we use to taste food?", Options: []string{"Eyes", "Ears", "Nose", "Tongue"}, CorrectOption: 3},
						{Concept: "Basic materials", Prompt: "Which of these is a liquid?", Options: []string{"Rock", "Water", "Air", "Wood"}, CorrectOption: 1},
						{Concept: "Simple machines", Prompt: "What do we use to cut paper?", Options: []string{"Hammer", "Screwdriver", "Scissors", "Pliers"}, CorrectOption: 2},
						{Concept: "Animal characteristics", Prompt: "Which animal has feathers?", Options: []string{"Dog", "Cat", "Bird", "Fish"}, CorrectOption: 2},
						{Concept: "Basic astronomy", Prompt: "What do we see in the sky at night?", Options: []string{"Clouds", "Stars", "Rainbows", "Rain"}, CorrectOption: 1},
						{Concept: "Human body", Prompt: "Which part of the body pumps blood?", Options: []string{"Brain", "Heart", "Lungs", "Stomach"}, CorrectOption: 1},
						{Concept: "Basic energy", Prompt: "What gives us light during the day?", Options: []string{"Moon", "Stars", "Sun", "Clouds"}, CorrectOption: 2},
					},
				},
			},
		},
	}
}
