package competition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classroom/internal/pkg/errs"
)

const twoQuestions = `[
	{"id": 1, "type": "free-text", "question": "2 + 2?", "correctAnswer": "4"},
	{"id": 2, "type": "multiple-choice", "question": "Capital of France?", "options": ["Paris", "Rome"], "correctAnswer": "Paris"}
]`

func TestParseQuestions(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		count int
		first string
	}{
		{"blank", "   \n", 0, ""},
		{"json array", twoQuestions, 2, "2 + 2?"},
		{"empty array", "[]", 0, ""},
		{"plain text", "What is 1+1?", 5, "What is 15 × 8?"},
		{"json object", `{"id": 1}`, 5, "What is 15 × 8?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQuestions(tt.text)
			require.NotNil(t, got)
			require.Len(t, got, tt.count)
			if tt.count > 0 {
				assert.Equal(t, tt.first, got[0].Question)
			}
		})
	}
}

func TestIsCorrect(t *testing.T) {
	tests := []struct {
		expected string
		given    string
		want     bool
	}{
		{"Paris", "  paris ", true},
		{"Paris", "Rome", false},
		{"1.25", "1.250", true},
		{"1.25", "5/4", true},
		{"20", "20.0", true},
		{"20", "", false},
		{"17", "1/0", false},
		{"96 cm²", "96 CM²", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsCorrect(tt.expected, tt.given), "%q vs %q", tt.expected, tt.given)
	}
}

func TestStart_Validation(t *testing.T) {
	c := New()

	_, err := c.Start("  ", 5)
	require.NotNil(t, err)
	assert.Equal(t, errs.ErrCompetitionQuestionsRequired, err.Code)
	assert.False(t, c.Running())

	_, err = c.Start(twoQuestions, 0)
	require.NotNil(t, err)
	assert.Equal(t, errs.ErrInvalidParams, err.Code)

	_, err = c.Start(twoQuestions, 61)
	require.NotNil(t, err)
	assert.False(t, c.Running())
}

func TestStartStop(t *testing.T) {
	c := New()

	idle := c.Status(false)
	assert.False(t, idle.Running)
	assert.Equal(t, DefaultDurationMinutes, idle.DurationMinutes)
	assert.Nil(t, idle.StartedAt)

	st, err := c.Start(twoQuestions, 10)
	require.Nil(t, err)
	assert.True(t, st.Running)
	assert.NotEmpty(t, st.ID)
	assert.Equal(t, 10, st.DurationMinutes)
	assert.Equal(t, 2, st.TotalQuestions)
	require.NotNil(t, st.StartedAt)

	_, stopped := c.Stop()
	assert.True(t, stopped)
	assert.False(t, c.Running())

	_, stopped = c.Stop()
	assert.False(t, stopped)
}

func TestStatus_HidesAnswersFromStudents(t *testing.T) {
	c := New()
	_, err := c.Start(twoQuestions, 5)
	require.Nil(t, err)

	for _, q := range c.Status(false).Items {
		assert.Empty(t, q.CorrectAnswer)
	}
	assert.Equal(t, "4", c.Status(true).Items[0].CorrectAnswer)
}

func TestSubmitAnswer(t *testing.T) {
	c := New()

	_, err := c.SubmitAnswer("Alice Anderson", 1, "4")
	require.NotNil(t, err)
	assert.Equal(t, errs.ErrCompetitionNotRunning, err.Code)

	_, err = c.Start(twoQuestions, 5)
	require.Nil(t, err)

	res, err := c.SubmitAnswer("Alice Anderson", 1, " 4 ")
	require.Nil(t, err)
	assert.Equal(t, AnswerResult{QuestionID: 1, Correct: true, Completed: 1, Score: 1}, res)

	res, err = c.SubmitAnswer("Alice Anderson", 2, "Rome")
	require.Nil(t, err)
	assert.Equal(t, AnswerResult{QuestionID: 2, Correct: false, Completed: 2, Score: 1}, res)

	// A second try does not overwrite the first answer.
	res, err = c.SubmitAnswer("Alice Anderson", 2, "Paris")
	require.Nil(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, 1, res.Score)

	_, err = c.SubmitAnswer("Alice Anderson", 99, "x")
	require.NotNil(t, err)
	assert.Equal(t, errs.ErrQuestionNotFound, err.Code)

	assert.Equal(t, map[string]Progress{"Alice Anderson": {Completed: 2, Correct: 1}}, c.Progress())
}

func TestRestartClearsProgress(t *testing.T) {
	c := New()
	_, err := c.Start(twoQuestions, 5)
	require.Nil(t, err)
	_, err = c.SubmitAnswer("Bob Brown", 1, "4")
	require.Nil(t, err)

	first := c.Status(true).ID
	_, err = c.Start(twoQuestions, 5)
	require.Nil(t, err)

	assert.NotEqual(t, first, c.Status(true).ID)
	assert.Empty(t, c.Progress())
}

func TestStopKeepsProgressForLeaderboard(t *testing.T) {
	c := New()
	_, err := c.Start(twoQuestions, 5)
	require.Nil(t, err)
	_, err = c.SubmitAnswer("Bob Brown", 1, "4")
	require.Nil(t, err)

	c.Stop()

	board := c.Leaderboard([]string{"Bob Brown"}, SortRank)
	require.Len(t, board.Standings, 1)
	assert.Equal(t, 1, board.Standings[0].Correct)
}
