package handler

import (
	"net/http"

	"classroom/internal/app/classroom"
	"classroom/internal/pkg/errs"
	"classroom/internal/pkg/req"
	"classroom/internal/pkg/resp"
)

type SelectTabInput struct {
	Tab string `json:"tab" validate:"required"`
}

func HandleGetConsole(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, deps.Classroom.Console())
	}
}

func HandleSelectTab(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input SelectTabInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		tab, ok := classroom.ParseTab(input.Tab)
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		resp.RespondSuccess(w, r, deps.Classroom.SelectTab(tab))
	}
}

func HandleLeaveRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, deps.Classroom.LeaveRoom())
	}
}
