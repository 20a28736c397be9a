/*
Package handler provides HTTP handler functions for per-room console features: screensharing and shared notes.
*/
package handler

import (
	"net/http"

	"classroom/internal/app/roster"
	"classroom/internal/pkg/req"
	"classroom/internal/pkg/resp"
)

type ScreenshareInput struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type NotesInput struct {
	Notes string `json:"notes"`
}

type NotesOutput struct {
	RoomID roster.RoomID `json:"roomId"`
	Notes  string        `json:"notes"`
}

// HandleSetScreenshare turns screensharing on or off for the room in the URL.
func HandleSetScreenshare(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID, customErr := req.IntParam(r, "id")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input ScreenshareInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		console, customErr := deps.Classroom.SetScreenshare(roster.RoomID(roomID), *input.Enabled)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, console)
	}
}

func HandleGetNotes(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID, customErr := req.IntParam(r, "id")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		notes, customErr := deps.Classroom.Notes(roster.RoomID(roomID))
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, NotesOutput{RoomID: roster.RoomID(roomID), Notes: notes})
	}
}

func HandleSetNotes(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID, customErr := req.IntParam(r, "id")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input NotesInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		id := roster.RoomID(roomID)
		console, customErr := deps.Classroom.SetNotes(id, input.Notes)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, NotesOutput{RoomID: id, Notes: console.Notes[id]})
	}
}
