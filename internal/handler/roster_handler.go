package handler

import (
	"net/http"

	"classroom/internal/app/roster"
	"classroom/internal/pkg/logx"
	"classroom/internal/pkg/req"
	"classroom/internal/pkg/resp"
)

const (
	destinationRoom = "room"
	destinationPool = "pool"
)

type MoveInput struct {
	Name        string `json:"name" validate:"required,max=80"`
	Destination string `json:"destination" validate:"required,oneof=room pool"`
	RoomID      int    `json:"roomId,omitempty" validate:"required_if=Destination room,gte=0"`
}

type RosterChangeOutput struct {
	Changed bool            `json:"changed"`
	Roster  roster.Snapshot `json:"roster"`
}

func HandleGetRoster(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, deps.Classroom.Roster())
	}
}

func HandleGetDirectory(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, deps.Classroom.Directory())
	}
}

// HandleMove moves a participant (or the teacher) to a room or the pool.
// Moves that change nothing still succeed with changed=false.
func HandleMove(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input MoveInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		dest := roster.ToPool()
		if input.Destination == destinationRoom {
			dest = roster.ToRoom(roster.RoomID(input.RoomID))
		}

		snap, changed := deps.Classroom.Move(input.Name, dest)
		if changed {
			logx.Info("Participant moved.", "name", input.Name, "destination", dest.String())
		}

		resp.RespondSuccess(w, r, RosterChangeOutput{Changed: changed, Roster: snap})
	}
}

func HandleRandomAssign(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, changed := deps.Classroom.RandomAssign()
		resp.RespondSuccess(w, r, RosterChangeOutput{Changed: changed, Roster: snap})
	}
}
