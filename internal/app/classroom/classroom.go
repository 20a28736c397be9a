/*
Package classroom ties the roster, the teacher's console and the competition together.

Every mutation runs under one lock and is published to the live hub before the
lock is released, so connected clients observe changes in the order they happened.
*/
package classroom

import (
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"classroom/internal/app/competition"
	"classroom/internal/app/live"
	"classroom/internal/app/roster"
	"classroom/internal/pkg/auth/jwt"
	"classroom/internal/pkg/errs"
	"classroom/internal/pkg/logx"
)

// MaxNotesLength caps shared notes per room, in characters.
const MaxNotesLength = 10000

// Publisher receives every state change. live.Hub implements it.
type Publisher interface {
	Publish(msgType live.MessageType, payload any)
}

// View is the full classroom state sent to a new connection.
type View struct {
	Roster      roster.Snapshot    `json:"roster"`
	Console     Console            `json:"console"`
	Competition competition.Status `json:"competition"`
}

// Competition events.
const (
	EventStarted  = "started"
	EventStopped  = "stopped"
	EventAnswered = "answered"
)

// CompetitionEvent is the COMPETITION_UPDATE payload.
type CompetitionEvent struct {
	Event       string             `json:"event"`
	Status      competition.Status `json:"status"`
	Participant string             `json:"participant,omitempty"`
}

// Classroom is the single live classroom served by the process.
type Classroom struct {
	// mu orders mutations together with their broadcasts.
	mu sync.RWMutex

	roster      *roster.Store
	console     Console
	competition *competition.Competition
	hub         Publisher

	logger zerolog.Logger
}

// New wires a classroom around store. The console starts on the teacher's current room.
func New(store *roster.Store, comp *competition.Competition, hub Publisher) *Classroom {
	console := newConsole()
	console.followTeacher(store.State().TeacherRoom())

	return &Classroom{
		roster:      store,
		console:     console,
		competition: comp,
		hub:         hub,
		logger:      logx.Component("classroom"),
	}
}

// Teacher returns the teacher participant.
func (c *Classroom) Teacher() roster.Participant {
	return c.roster.State().Teacher()
}

// Roster returns the current roster snapshot.
func (c *Classroom) Roster() roster.Snapshot {
	return c.roster.Snapshot()
}

// Directory lists everyone with their location.
func (c *Classroom) Directory() []roster.Entry {
	return roster.Directory(c.roster.State())
}

// Knows reports whether name is on the roster, teacher included.
func (c *Classroom) Knows(name string) bool {
	return c.roster.State().Locate(name).Kind() != roster.Unknown
}

// Console returns a copy of the console state.
func (c *Classroom) Console() Console {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.console.clone()
}

// InitData implements live.InitSource. Only the teacher sees correct answers.
func (c *Classroom) InitData(viewer live.Sender) any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return View{
		Roster:      c.roster.Snapshot(),
		Console:     c.console.clone(),
		Competition: c.competition.Status(viewer.Role == string(jwt.RoleTeacher)),
	}
}

// Move relocates name. When the teacher moves, the console follows.
func (c *Classroom) Move(name string, dest roster.Destination) (roster.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, changed := c.roster.Move(name, dest)
	if !changed {
		return state.Snapshot(), false
	}

	snap := state.Snapshot()
	c.hub.Publish(live.TypeRosterUpdate, snap)

	if name == state.Teacher().FullName {
		c.console.followTeacher(state.TeacherRoom())
		c.publishConsole()
	}

	return snap, true
}

// RandomAssign spreads the pool across the rooms.
func (c *Classroom) RandomAssign() (roster.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, changed := c.roster.RandomAssign()
	snap := state.Snapshot()
	if changed {
		c.hub.Publish(live.TypeRosterUpdate, snap)
	}

	return snap, changed
}

// Admit puts a newly joined student in the pool.
func (c *Classroom) Admit(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, changed := c.roster.Admit(name)
	if changed {
		c.hub.Publish(live.TypeRosterUpdate, state.Snapshot())
	}

	return changed
}

// LeaveRoom takes the teacher out of any room and clears the selection.
func (c *Classroom) LeaveRoom() Console {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, changed := c.roster.Move(c.roster.State().Teacher().FullName, roster.ToPool())
	if changed {
		c.hub.Publish(live.TypeRosterUpdate, state.Snapshot())
	}

	c.console.followTeacher(0, false)
	c.publishConsole()

	return c.console.clone()
}

// SelectTab switches the console tab. Screenshare falls back to presentation
// unless the selected room is sharing.
func (c *Classroom) SelectTab(tab Tab) Console {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.console.selectTab(tab)
	c.publishConsole()

	return c.console.clone()
}

// SetScreenshare turns screensharing in room on or off.
func (c *Classroom) SetScreenshare(room roster.RoomID, enabled bool) (Console, *errs.CustomError) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.roster.State().HasRoom(room) {
		return c.console.clone(), errs.NewError(errs.ErrRoomNotFound)
	}

	c.console.setScreenshare(room, enabled)
	c.publishConsole()

	c.logger.Info().Int("room_id", int(room)).Bool("enabled", enabled).Msg("Screenshare toggled.")

	return c.console.clone(), nil
}

// Notes returns the shared notes of room.
func (c *Classroom) Notes(room roster.RoomID) (string, *errs.CustomError) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.roster.State().HasRoom(room) {
		return "", errs.NewError(errs.ErrRoomNotFound)
	}

	return c.console.Notes[room], nil
}

// SetNotes replaces the shared notes of room.
func (c *Classroom) SetNotes(room roster.RoomID, text string) (Console, *errs.CustomError) {
	if utf8.RuneCountInString(text) > MaxNotesLength {
		return c.Console(), errs.NewError(errs.ErrNotesTooLong, MaxNotesLength)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.roster.State().HasRoom(room) {
		return c.console.clone(), errs.NewError(errs.ErrRoomNotFound)
	}

	c.console.Notes[room] = text
	c.publishConsole()

	return c.console.clone(), nil
}

func (c *Classroom) publishConsole() {
	c.hub.Publish(live.TypeConsoleUpdate, c.console.clone())
}

// Competition returns the competition status; withAnswers exposes correct answers.
func (c *Classroom) Competition(withAnswers bool) competition.Status {
	return c.competition.Status(withAnswers)
}

// StartCompetition launches a competition and tells every client.
func (c *Classroom) StartCompetition(questions string, durationMinutes int) (competition.Status, *errs.CustomError) {
	c.mu.Lock()
	defer c.mu.Unlock()

	status, err := c.competition.Start(questions, durationMinutes)
	if err != nil {
		return status, err
	}

	c.publishCompetition(EventStarted, "")

	return status, nil
}

// StopCompetition ends the running competition.
func (c *Classroom) StopCompetition() (competition.Status, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	status, stopped := c.competition.Stop()
	if stopped {
		c.publishCompetition(EventStopped, "")
	}

	return status, stopped
}

// SubmitAnswer records a student's answer.
func (c *Classroom) SubmitAnswer(name string, questionID int, answer string) (competition.AnswerResult, *errs.CustomError) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result, err := c.competition.SubmitAnswer(name, questionID, answer)
	if err != nil {
		return result, err
	}

	c.publishCompetition(EventAnswered, name)

	return result, nil
}

func (c *Classroom) publishCompetition(event, participant string) {
	c.hub.Publish(live.TypeCompetitionUpdate, CompetitionEvent{
		Event:       event,
		Status:      c.competition.Status(false),
		Participant: participant,
	})
}

// Leaderboard ranks every student on the roster.
func (c *Classroom) Leaderboard(mode competition.SortMode) competition.Leaderboard {
	students := lo.FilterMap(c.Directory(), func(e roster.Entry, _ int) (string, bool) {
		return e.FullName, !e.IsTeacher
	})

	return c.competition.Leaderboard(students, mode)
}
