package roster

import "strings"

// MovePerson moves name to dest and returns the resulting State.
//
// Moving the teacher only changes the teacher's room pointer. Any other name is
// removed from its current container and appended to the end of the destination.
// Unknown names, unknown destination rooms, and moves to the container that already
// holds the name are no-ops, which also makes repeated moves idempotent.
func MovePerson(s State, name string, dest Destination) State {
	next, _ := move(s, name, dest)
	return next
}

func move(s State, name string, dest Destination) (State, bool) {
	loc := s.Locate(name)
	roomID, toRoom := dest.Room()

	if toRoom && !s.HasRoom(roomID) {
		return s, false
	}

	switch loc.kind {
	case Unknown:
		return s, false

	case TeacherAt:
		current, inRoom := loc.Room()
		if inRoom == toRoom && current == roomID {
			return s, false
		}
		next := s.clone()
		next.teacherAt = teacherLocation(roomID, toRoom)
		return next, true

	case InPool:
		if dest.IsPool() {
			return s, false
		}

	case InRoom:
		if toRoom && loc.room == roomID {
			return s, false
		}
	}

	p, _ := s.participant(loc, name)
	next := s.clone()

	if loc.kind == InPool {
		next.pool = without(next.pool, name)
	} else {
		i := next.roomIndex(loc.room)
		next.rooms[i].Participants = without(next.rooms[i].Participants, name)
	}

	if dest.IsPool() {
		next.pool = append(next.pool, NewParticipant(p.FullName, p.Initials))
		return next, true
	}

	i := next.roomIndex(roomID)
	if !next.rooms[i].has(name) {
		next.rooms[i].Participants = append(next.rooms[i].Participants, p)
	}

	return next, true
}

// Admit adds a newcomer to the end of the available pool. Blank names, the
// teacher's name, and names already on the roster are ignored.
func Admit(s State, fullName string) State {
	next, _ := admit(s, fullName)
	return next
}

func admit(s State, fullName string) (State, bool) {
	if strings.TrimSpace(fullName) == "" || s.Locate(fullName).Kind() != Unknown {
		return s, false
	}

	next := s.clone()
	next.pool = append(next.pool, NewParticipant(fullName, ""))
	return next, true
}
