package roster

import "github.com/samber/lo"

// TeacherView is the teacher as rendered by clients; RoomID is null outside rooms.
type TeacherView struct {
	Participant
	RoomID *RoomID `json:"roomId"`
}

// Snapshot is the wire shape of a State.
type Snapshot struct {
	Rooms     []Room        `json:"rooms"`
	Available []Participant `json:"available"`
	Teacher   TeacherView   `json:"teacher"`
}

// Snapshot renders s for clients. Slices are never nil so they encode as [].
func (s State) Snapshot() Snapshot {
	rooms := lo.Map(s.rooms, func(r Room, _ int) Room {
		r.Participants = append(make([]Participant, 0, len(r.Participants)), r.Participants...)
		return r
	})

	return Snapshot{
		Rooms:     rooms,
		Available: append(make([]Participant, 0, len(s.pool)), s.pool...),
		Teacher:   TeacherView{Participant: s.teacher, RoomID: roomPtr(s.teacherAt)},
	}
}

// Entry is one line of the classroom directory.
type Entry struct {
	Participant
	IsTeacher bool    `json:"isTeacher"`
	InPool    bool    `json:"inPool"`
	RoomID    *RoomID `json:"roomId"`
}

// Directory lists everyone in the classroom: the teacher first, then the
// available pool, then each room's participants, each name once.
func Directory(s State) []Entry {
	entries := make([]Entry, 0, 1+len(s.pool))
	seen := make(map[string]struct{})

	add := func(p Participant, loc Location) {
		if _, dup := seen[p.FullName]; dup {
			return
		}
		seen[p.FullName] = struct{}{}

		entries = append(entries, Entry{
			Participant: p,
			IsTeacher:   loc.kind == TeacherAt,
			InPool:      loc.kind == InPool,
			RoomID:      roomPtr(loc),
		})
	}

	add(s.teacher, s.teacherAt)
	for _, p := range s.pool {
		add(p, poolLocation())
	}
	for _, r := range s.rooms {
		for _, p := range r.Participants {
			add(p, roomLocation(r.ID))
		}
	}

	return entries
}

func roomPtr(loc Location) *RoomID {
	if id, ok := loc.Room(); ok {
		return &id
	}
	return nil
}
