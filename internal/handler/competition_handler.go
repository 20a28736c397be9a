package handler

import (
	"net/http"

	"classroom/internal/app/competition"
	"classroom/internal/pkg/auth/jwt"
	"classroom/internal/pkg/req"
	"classroom/internal/pkg/resp"
)

type StartCompetitionInput struct {
	Questions string `json:"questions"`
	Duration  *int   `json:"duration,omitempty"`
}

type AnswerInput struct {
	QuestionID int    `json:"questionId" validate:"required"`
	Answer     string `json:"answer" validate:"max=1000"`
}

// HandleGetCompetition returns the competition; correct answers are only included for the teacher.
func HandleGetCompetition(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		resp.RespondSuccess(w, r, deps.Classroom.Competition(identity.IsTeacher()))
	}
}

func HandleStartCompetition(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input StartCompetitionInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		duration := competition.DefaultDurationMinutes
		if input.Duration != nil {
			duration = *input.Duration
		}

		status, customErr := deps.Classroom.StartCompetition(input.Questions, duration)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, status)
	}
}

func HandleStopCompetition(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, _ := deps.Classroom.StopCompetition()
		resp.RespondSuccess(w, r, status)
	}
}

// HandleSubmitAnswer records the calling student's answer.
func HandleSubmitAnswer(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input AnswerInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		identity := jwt.GetPayloadFromContext(r)

		result, customErr := deps.Classroom.SubmitAnswer(identity.Name, input.QuestionID, input.Answer)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, result)
	}
}

// HandleLeaderboard ranks students; ?sort= is alphabetical (default), rank or progress.
func HandleLeaderboard(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := competition.ParseSortMode(r.URL.Query().Get("sort"))
		resp.RespondSuccess(w, r, deps.Classroom.Leaderboard(mode))
	}
}
