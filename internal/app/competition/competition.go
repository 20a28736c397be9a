/*
Package competition runs the timed learning competition a teacher launches for students.

The teacher pastes questions and a duration; while the competition runs, students submit
answers and the teacher reads a ranked leaderboard. The duration is shown to students
but not enforced by a timer.
*/
package competition

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"classroom/internal/pkg/errs"
	"classroom/internal/pkg/logx"
	"classroom/internal/pkg/randx"
)

const (
	// DefaultDurationMinutes is the duration preset in the start form.
	DefaultDurationMinutes = 5

	// MinDurationMinutes and MaxDurationMinutes bound the accepted duration.
	MinDurationMinutes = 1
	MaxDurationMinutes = 60
)

// Status is the competition as shown to clients.
type Status struct {
	ID              string     `json:"id,omitempty"`
	Running         bool       `json:"running"`
	Questions       string     `json:"questions"`
	DurationMinutes int        `json:"durationMinutes"`
	StartedAt       *time.Time `json:"startedAt,omitempty"`
	Items           []Question `json:"items"`
	TotalQuestions  int        `json:"totalQuestions"`
}

// AnswerResult reports a student's progress after an answer.
type AnswerResult struct {
	QuestionID int  `json:"questionId"`
	Correct    bool `json:"correct"`
	Completed  int  `json:"completed"`
	Score      int  `json:"score"`
}

// Competition holds the single competition of a classroom.
type Competition struct {
	// mu protects every field below.
	mu sync.RWMutex

	id        string
	questions string
	items     []Question
	duration  int
	running   bool
	startedAt time.Time

	// answers maps participant name -> question id -> correctness of the first answer.
	answers map[string]map[int]bool

	now    func() time.Time
	logger zerolog.Logger
}

// New returns an idle competition with the default duration.
func New() *Competition {
	return &Competition{
		duration: DefaultDurationMinutes,
		items:    []Question{},
		answers:  make(map[string]map[int]bool),
		now:      time.Now,
		logger:   logx.Component("competition"),
	}
}

// Start launches a new run. Blank questions are rejected; so is a duration outside 1..60 minutes.
// Starting again while running replaces the questions and clears all progress.
func (c *Competition) Start(questions string, durationMinutes int) (Status, *errs.CustomError) {
	if strings.TrimSpace(questions) == "" {
		return c.Status(true), errs.NewError(errs.ErrCompetitionQuestionsRequired)
	}

	if durationMinutes < MinDurationMinutes || durationMinutes > MaxDurationMinutes {
		return c.Status(true), errs.NewError(errs.ErrInvalidParams)
	}

	id := randx.CompetitionID()

	c.mu.Lock()
	c.id = id
	c.questions = questions
	c.items = ParseQuestions(questions)
	c.duration = durationMinutes
	c.running = true
	c.startedAt = c.now()
	c.answers = make(map[string]map[int]bool)
	parsed := len(c.items)
	c.mu.Unlock()

	c.logger.Info().
		Str("competition_id", id).
		Int("questions", parsed).
		Int("duration_minutes", durationMinutes).
		Msg("Competition started.")

	return c.Status(true), nil
}

// Stop ends the running competition, keeping its progress for the leaderboard.
// It reports false when nothing was running.
func (c *Competition) Stop() (Status, bool) {
	c.mu.Lock()
	wasRunning := c.running
	id := c.id
	c.running = false
	c.mu.Unlock()

	if wasRunning {
		c.logger.Info().Str("competition_id", id).Msg("Competition stopped.")
	}

	return c.Status(true), wasRunning
}

// Running reports whether a competition is in progress.
func (c *Competition) Running() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.running
}

// Status returns the current state. Correct answers are stripped unless withAnswers is set.
func (c *Competition) Status(withAnswers bool) Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := lo.Map(c.items, func(q Question, _ int) Question {
		q.Options = append([]string(nil), q.Options...)
		if !withAnswers {
			q.CorrectAnswer = ""
		}
		return q
	})

	st := Status{
		ID:              c.id,
		Running:         c.running,
		Questions:       c.questions,
		DurationMinutes: c.duration,
		Items:           items,
		TotalQuestions:  totalQuestions(len(c.items)),
	}

	if !c.startedAt.IsZero() {
		startedAt := c.startedAt
		st.StartedAt = &startedAt
	}

	return st
}

// SubmitAnswer records name's answer to questionID. Only the first answer per question counts.
func (c *Competition) SubmitAnswer(name string, questionID int, answer string) (AnswerResult, *errs.CustomError) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return AnswerResult{}, errs.NewError(errs.ErrCompetitionNotRunning)
	}

	q, found := lo.Find(c.items, func(q Question) bool { return q.ID == questionID })
	if !found {
		return AnswerResult{}, errs.NewError(errs.ErrQuestionNotFound)
	}

	sheet, ok := c.answers[name]
	if !ok {
		sheet = make(map[int]bool)
		c.answers[name] = sheet
	}

	correct, answered := sheet[questionID]
	if !answered {
		correct = IsCorrect(q.CorrectAnswer, answer)
		sheet[questionID] = correct

		c.logger.Debug().
			Str("name", name).
			Int("question_id", questionID).
			Bool("correct", correct).
			Msg("Answer recorded.")
	}

	completed, score := tally(sheet)

	return AnswerResult{
		QuestionID: questionID,
		Correct:    correct,
		Completed:  completed,
		Score:      score,
	}, nil
}

// Progress returns completed and correct counts for every participant who answered.
func (c *Competition) Progress() map[string]Progress {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]Progress, len(c.answers))
	for name, sheet := range c.answers {
		completed, correct := tally(sheet)
		out[name] = Progress{Completed: completed, Correct: correct}
	}

	return out
}

// TotalQuestions returns the leaderboard denominator.
func (c *Competition) TotalQuestions() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return totalQuestions(len(c.items))
}

func tally(sheet map[int]bool) (completed, correct int) {
	for _, ok := range sheet {
		completed++
		if ok {
			correct++
		}
	}
	return completed, correct
}
