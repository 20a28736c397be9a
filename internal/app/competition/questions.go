package competition

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Question types.
const (
	TypeMultipleChoice = "multiple-choice"
	TypeFreeText       = "free-text"
)

// Question is one competition item.
type Question struct {
	ID            int      `json:"id"`
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
}

// DefaultQuestions is the built-in Grade 6 math set used when the teacher's text is not a question list.
func DefaultQuestions() []Question {
	return []Question{
		{ID: 1, Type: TypeMultipleChoice, Question: "What is 15 × 8?", Options: []string{"100", "120", "130", "140"}, CorrectAnswer: "120"},
		{ID: 2, Type: TypeFreeText, Question: "Solve: 3/4 + 1/2 = ?", CorrectAnswer: "1.25"},
		{ID: 3, Type: TypeMultipleChoice, Question: "What is the area of a rectangle with length 12 cm and width 8 cm?", Options: []string{"80 cm²", "96 cm²", "100 cm²", "104 cm²"}, CorrectAnswer: "96 cm²"},
		{ID: 4, Type: TypeFreeText, Question: "What is 25% of 80?", CorrectAnswer: "20"},
		{ID: 5, Type: TypeMultipleChoice, Question: "Which number is prime?", Options: []string{"15", "17", "21", "25"}, CorrectAnswer: "17"},
	}
}

// ParseQuestions turns the teacher's pasted text into questions. Blank text has
// no questions, a JSON array is used as-is, and anything else yields DefaultQuestions.
func ParseQuestions(text string) []Question {
	if strings.TrimSpace(text) == "" {
		return []Question{}
	}

	var parsed []Question
	if err := json.Unmarshal([]byte(text), &parsed); err == nil && parsed != nil {
		return parsed
	}

	return DefaultQuestions()
}

// IsCorrect compares a submitted answer with the expected one, ignoring case and
// surrounding whitespace. Numeric answers also match by value, so "5/4" and "1.250" both match "1.25".
func IsCorrect(expected, given string) bool {
	expected = strings.TrimSpace(expected)
	given = strings.TrimSpace(given)

	if given == "" {
		return false
	}

	if strings.EqualFold(expected, given) {
		return true
	}

	want, okWant := parseNumber(expected)
	got, okGot := parseNumber(given)

	return okWant && okGot && math.Abs(want-got) < 1e-9
}

// parseNumber accepts decimals and simple fractions like "3/4".
func parseNumber(s string) (float64, bool) {
	if num, den, isFraction := strings.Cut(s, "/"); isFraction {
		n, errN := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, errD := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if errN != nil || errD != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
