package roster

import "fmt"

// RoomID identifies a breakout room.
type RoomID int

// LocationKind tags where a name currently lives.
type LocationKind uint8

const (
	// Unknown means the name is not tracked.
	Unknown LocationKind = iota
	// InPool means the participant is in the available pool.
	InPool
	// InRoom means the participant is in a room's participant list.
	InRoom
	// TeacherAt means the name is the teacher's; the room may be empty.
	TeacherAt
)

func (k LocationKind) String() string {
	switch k {
	case InPool:
		return "pool"
	case InRoom:
		return "room"
	case TeacherAt:
		return "teacher"
	default:
		return "unknown"
	}
}

// Location is a tagged union: Unknown, InPool, InRoom(id) or TeacherAt(id | none).
type Location struct {
	kind   LocationKind
	room   RoomID
	inRoom bool
}

func poolLocation() Location {
	return Location{kind: InPool}
}

func roomLocation(id RoomID) Location {
	return Location{kind: InRoom, room: id, inRoom: true}
}

func teacherLocation(id RoomID, inRoom bool) Location {
	if !inRoom {
		id = 0
	}
	return Location{kind: TeacherAt, room: id, inRoom: inRoom}
}

// Kind returns the union tag.
func (l Location) Kind() LocationKind {
	return l.kind
}

// Room returns the room for InRoom and for a teacher who is in a room.
func (l Location) Room() (RoomID, bool) {
	return l.room, l.inRoom
}

func (l Location) String() string {
	if l.inRoom {
		return fmt.Sprintf("%s(%d)", l.kind, l.room)
	}
	return l.kind.String()
}

// Destination is the target of a move: a specific room or the available pool.
type Destination struct {
	room RoomID
	pool bool
}

// ToRoom targets the room with the given id.
func ToRoom(id RoomID) Destination {
	return Destination{room: id}
}

// ToPool targets the available pool.
func ToPool() Destination {
	return Destination{pool: true}
}

// IsPool reports whether the destination is the available pool.
func (d Destination) IsPool() bool {
	return d.pool
}

// Room returns the target room id; ok is false for the pool.
func (d Destination) Room() (RoomID, bool) {
	return d.room, !d.pool
}

func (d Destination) String() string {
	if d.pool {
		return "pool"
	}
	return fmt.Sprintf("room(%d)", d.room)
}
