package classroom

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classroom/internal/app/competition"
	"classroom/internal/app/live"
	"classroom/internal/app/roster"
	"classroom/internal/pkg/errs"
	"classroom/internal/pkg/randx"
)

type published struct {
	msgType live.MessageType
	payload any
}

type recorder struct {
	mu       sync.Mutex
	messages []published
}

func (r *recorder) Publish(msgType live.MessageType, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, published{msgType, payload})
}

func (r *recorder) types() []live.MessageType {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]live.MessageType, 0, len(r.messages))
	for _, m := range r.messages {
		out = append(out, m.msgType)
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}

func newClassroom(t *testing.T) (*Classroom, *recorder) {
	t.Helper()

	state, err := roster.NewState(roster.DefaultTeacher, roster.DemoRooms(), roster.DemoPool())
	require.NoError(t, err)

	rec := &recorder{}
	store := roster.NewStore(state, randx.NewSeeded(7))

	return New(store, competition.New(), rec), rec
}

func roomID(id int) *roster.RoomID {
	r := roster.RoomID(id)
	return &r
}

func TestNew_ConsoleStartsIdle(t *testing.T) {
	c, _ := newClassroom(t)

	console := c.Console()
	assert.Nil(t, console.SelectedRoomID)
	assert.Equal(t, TabPresentation, console.ActiveTab)
	assert.NotNil(t, console.Notes)
}

func TestMove_PublishesRoster(t *testing.T) {
	c, rec := newClassroom(t)

	snap, changed := c.Move("Hannah Harris", roster.ToRoom(4))
	require.True(t, changed)
	assert.Equal(t, "Hannah Harris", snap.Rooms[3].Participants[0].FullName)
	assert.Equal(t, []live.MessageType{live.TypeRosterUpdate}, rec.types())

	_, changed = c.Move("Hannah Harris", roster.ToRoom(4))
	assert.False(t, changed)
	assert.Len(t, rec.types(), 1)
}

func TestMove_TeacherDrivesConsole(t *testing.T) {
	c, rec := newClassroom(t)

	_, changed := c.Move(roster.DefaultTeacher.FullName, roster.ToRoom(2))
	require.True(t, changed)
	assert.Equal(t, []live.MessageType{live.TypeRosterUpdate, live.TypeConsoleUpdate}, rec.types())
	assert.Equal(t, roomID(2), c.Console().SelectedRoomID)

	c.SelectTab(TabSharedNotes)
	assert.Equal(t, TabSharedNotes, c.Console().ActiveTab)

	// Switching rooms resets the tab.
	c.Move(roster.DefaultTeacher.FullName, roster.ToRoom(3))
	console := c.Console()
	assert.Equal(t, roomID(3), console.SelectedRoomID)
	assert.Equal(t, TabPresentation, console.ActiveTab)

	teacher := c.Roster().Teacher
	require.NotNil(t, teacher.RoomID)
	assert.Equal(t, roster.RoomID(3), *teacher.RoomID)
}

func TestLeaveRoom(t *testing.T) {
	c, _ := newClassroom(t)

	c.Move(roster.DefaultTeacher.FullName, roster.ToRoom(1))
	c.SelectTab(TabSharedNotes)

	console := c.LeaveRoom()
	assert.Nil(t, console.SelectedRoomID)
	assert.Equal(t, TabPresentation, console.ActiveTab)
	assert.Nil(t, c.Roster().Teacher.RoomID)
}

func TestScreenshareAndTabs(t *testing.T) {
	c, rec := newClassroom(t)
	c.Move(roster.DefaultTeacher.FullName, roster.ToRoom(1))

	// Nothing is shared yet, so the screenshare tab is refused.
	assert.Equal(t, TabPresentation, c.SelectTab(TabScreenshare).ActiveTab)

	// Sharing in another room leaves the tab alone.
	console, err := c.SetScreenshare(2, true)
	require.Nil(t, err)
	assert.Equal(t, TabPresentation, console.ActiveTab)

	console, err = c.SetScreenshare(1, true)
	require.Nil(t, err)
	assert.Equal(t, TabScreenshare, console.ActiveTab)
	assert.True(t, console.Screenshare[1])

	console, err = c.SetScreenshare(1, false)
	require.Nil(t, err)
	assert.Equal(t, TabPresentation, console.ActiveTab)

	rec.reset()
	_, err = c.SetScreenshare(42, true)
	require.NotNil(t, err)
	assert.Equal(t, errs.ErrRoomNotFound, err.Code)
	assert.Empty(t, rec.types())
}

func TestNotes(t *testing.T) {
	c, rec := newClassroom(t)

	console, err := c.SetNotes(2, "Chapter 4, exercises 1-3")
	require.Nil(t, err)
	assert.Equal(t, "Chapter 4, exercises 1-3", console.Notes[2])
	assert.Equal(t, []live.MessageType{live.TypeConsoleUpdate}, rec.types())

	notes, err := c.Notes(2)
	require.Nil(t, err)
	assert.Equal(t, "Chapter 4, exercises 1-3", notes)

	notes, err = c.Notes(3)
	require.Nil(t, err)
	assert.Empty(t, notes)

	_, err = c.Notes(99)
	require.NotNil(t, err)
	assert.Equal(t, errs.ErrRoomNotFound, err.Code)

	_, err = c.SetNotes(99, "x")
	require.NotNil(t, err)
	assert.Equal(t, errs.ErrRoomNotFound, err.Code)

	_, err = c.SetNotes(2, strings.Repeat("é", MaxNotesLength+1))
	require.NotNil(t, err)
	assert.Equal(t, errs.ErrNotesTooLong, err.Code)

	_, err = c.SetNotes(2, strings.Repeat("é", MaxNotesLength))
	assert.Nil(t, err)
}

func TestConsoleCopyIsIsolated(t *testing.T) {
	c, _ := newClassroom(t)
	_, err := c.SetNotes(1, "original")
	require.Nil(t, err)

	console := c.Console()
	console.Notes[1] = "changed"

	notes, _ := c.Notes(1)
	assert.Equal(t, "original", notes)
}

func TestRandomAssignAndAdmit(t *testing.T) {
	c, rec := newClassroom(t)

	assert.True(t, c.Admit("Mia Moore"))
	assert.False(t, c.Admit("Mia Moore"))
	assert.False(t, c.Admit(roster.DefaultTeacher.FullName))
	assert.True(t, c.Knows("Mia Moore"))

	snap, changed := c.RandomAssign()
	require.True(t, changed)
	assert.Empty(t, snap.Available)

	_, changed = c.RandomAssign()
	assert.False(t, changed)

	assert.Equal(t, []live.MessageType{live.TypeRosterUpdate, live.TypeRosterUpdate}, rec.types())
}

func TestCompetitionFlow(t *testing.T) {
	c, rec := newClassroom(t)

	_, err := c.SubmitAnswer("Alice Anderson", 1, "120")
	require.NotNil(t, err)
	assert.Equal(t, errs.ErrCompetitionNotRunning, err.Code)

	status, err := c.StartCompetition("anything that is not JSON", 5)
	require.Nil(t, err)
	assert.Len(t, status.Items, 5)

	result, err := c.SubmitAnswer("Alice Anderson", 1, "120")
	require.Nil(t, err)
	assert.True(t, result.Correct)

	_, err = c.SubmitAnswer("Bob Brown", 1, "100")
	require.Nil(t, err)

	board := c.Leaderboard(competition.SortRank)
	require.NotEmpty(t, board.Standings)
	assert.Equal(t, "Alice Anderson", board.Standings[0].FullName)
	assert.Equal(t, 1, board.Standings[0].Rank)
	for _, s := range board.Standings {
		assert.NotEqual(t, roster.DefaultTeacher.FullName, s.FullName)
	}

	_, stopped := c.StopCompetition()
	assert.True(t, stopped)
	_, stopped = c.StopCompetition()
	assert.False(t, stopped)

	assert.Equal(t, []live.MessageType{
		live.TypeCompetitionUpdate,
		live.TypeCompetitionUpdate,
		live.TypeCompetitionUpdate,
		live.TypeCompetitionUpdate,
	}, rec.types())
}

func TestCompetitionBroadcastHidesAnswers(t *testing.T) {
	c, rec := newClassroom(t)

	_, err := c.StartCompetition("not json", 5)
	require.Nil(t, err)

	require.Len(t, rec.messages, 1)
	event, ok := rec.messages[0].payload.(CompetitionEvent)
	require.True(t, ok)
	assert.Equal(t, EventStarted, event.Event)
	for _, q := range event.Status.Items {
		assert.Empty(t, q.CorrectAnswer)
	}
}

func TestInitData(t *testing.T) {
	c, _ := newClassroom(t)
	_, err := c.StartCompetition("not json", 5)
	require.Nil(t, err)

	teacherView, ok := c.InitData(live.Sender{Name: roster.DefaultTeacher.FullName, Role: "teacher"}).(View)
	require.True(t, ok)
	assert.NotEmpty(t, teacherView.Competition.Items[0].CorrectAnswer)
	assert.Len(t, teacherView.Roster.Rooms, 5)

	studentView, ok := c.InitData(live.Sender{Name: "Alice Anderson", Role: "student"}).(View)
	require.True(t, ok)
	assert.Empty(t, studentView.Competition.Items[0].CorrectAnswer)
}

func TestParseTab(t *testing.T) {
	tab, ok := ParseTab("shared-notes")
	assert.True(t, ok)
	assert.Equal(t, TabSharedNotes, tab)

	_, ok = ParseTab("whiteboard")
	assert.False(t, ok)
}
