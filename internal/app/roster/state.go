package roster

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Room is a breakout room with participants in insertion order.
type Room struct {
	ID           RoomID        `json:"id"`
	Name         string        `json:"name"`
	Participants []Participant `json:"participants"`
}

func (r Room) has(name string) bool {
	return lo.ContainsBy(r.Participants, func(p Participant) bool {
		return p.FullName == name
	})
}

// State is an immutable roster value. Operations return new States and never
// modify the slices of the State they were given.
type State struct {
	rooms     []Room
	pool      []Participant
	teacher   Participant
	teacherAt Location
}

// NewState validates and builds the initial roster. Room ids must be unique,
// and every name must be non-blank and appear once across the teacher, the pool and all rooms.
func NewState(teacher Participant, rooms []Room, pool []Participant) (State, error) {
	if strings.TrimSpace(teacher.FullName) == "" {
		return State{}, errors.New("roster: teacher name is required")
	}

	seenNames := map[string]string{teacher.FullName: "teacher"}
	claim := func(p Participant, where string) error {
		if strings.TrimSpace(p.FullName) == "" {
			return fmt.Errorf("roster: blank participant name in %s", where)
		}
		if prev, dup := seenNames[p.FullName]; dup {
			return fmt.Errorf("roster: %q appears in both %s and %s", p.FullName, prev, where)
		}
		seenNames[p.FullName] = where
		return nil
	}

	s := State{
		teacher:   NewParticipant(teacher.FullName, teacher.Initials),
		teacherAt: teacherLocation(0, false),
		rooms:     make([]Room, 0, len(rooms)),
		pool:      make([]Participant, 0, len(pool)),
	}

	seenRooms := make(map[RoomID]struct{}, len(rooms))
	for _, r := range rooms {
		if _, dup := seenRooms[r.ID]; dup {
			return State{}, fmt.Errorf("roster: duplicate room id %d", r.ID)
		}
		seenRooms[r.ID] = struct{}{}

		room := Room{ID: r.ID, Name: r.Name, Participants: make([]Participant, 0, len(r.Participants))}
		for _, p := range r.Participants {
			if err := claim(p, fmt.Sprintf("room %d", r.ID)); err != nil {
				return State{}, err
			}
			room.Participants = append(room.Participants, NewParticipant(p.FullName, p.Initials))
		}
		s.rooms = append(s.rooms, room)
	}

	for _, p := range pool {
		if err := claim(p, "pool"); err != nil {
			return State{}, err
		}
		s.pool = append(s.pool, NewParticipant(p.FullName, p.Initials))
	}

	return s, nil
}

// Locate reports where name lives. It is the single place that interprets
// the roster layout, so the at-most-one-container invariant is read here.
func (s State) Locate(name string) Location {
	if name == s.teacher.FullName {
		return s.teacherAt
	}

	if lo.ContainsBy(s.pool, func(p Participant) bool { return p.FullName == name }) {
		return poolLocation()
	}

	for _, r := range s.rooms {
		if r.has(name) {
			return roomLocation(r.ID)
		}
	}

	return Location{kind: Unknown}
}

// Teacher returns the teacher record.
func (s State) Teacher() Participant {
	return s.teacher
}

// TeacherRoom returns the room the teacher is in, if any.
func (s State) TeacherRoom() (RoomID, bool) {
	return s.teacherAt.Room()
}

// Rooms returns a copy of all rooms in their seeded order.
func (s State) Rooms() []Room {
	return lo.Map(s.rooms, func(r Room, _ int) Room {
		r.Participants = slices.Clone(r.Participants)
		return r
	})
}

// Room returns a copy of the room with the given id.
func (s State) Room(id RoomID) (Room, bool) {
	i := s.roomIndex(id)
	if i < 0 {
		return Room{}, false
	}

	r := s.rooms[i]
	r.Participants = slices.Clone(r.Participants)
	return r, true
}

// HasRoom reports whether a room with the given id exists.
func (s State) HasRoom(id RoomID) bool {
	return s.roomIndex(id) >= 0
}

// Pool returns a copy of the available pool.
func (s State) Pool() []Participant {
	return slices.Clone(s.pool)
}

func (s State) roomIndex(id RoomID) int {
	return slices.IndexFunc(s.rooms, func(r Room) bool { return r.ID == id })
}

// participant returns the record stored for name at loc.
func (s State) participant(loc Location, name string) (Participant, bool) {
	byName := func(p Participant) bool { return p.FullName == name }

	switch loc.kind {
	case InPool:
		return lo.Find(s.pool, byName)
	case InRoom:
		if i := s.roomIndex(loc.room); i >= 0 {
			return lo.Find(s.rooms[i].Participants, byName)
		}
	case TeacherAt:
		return s.teacher, true
	}

	return Participant{}, false
}

// clone deep-copies the slices so the result can be modified freely.
func (s State) clone() State {
	next := s
	next.pool = slices.Clone(s.pool)
	next.rooms = s.Rooms()
	return next
}

// without returns a copy of list minus the entry called name.
func without(list []Participant, name string) []Participant {
	return lo.Reject(list, func(p Participant, _ int) bool {
		return p.FullName == name
	})
}
