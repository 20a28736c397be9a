package roster

// DefaultTeacher is the teacher used when none is configured.
var DefaultTeacher = Participant{FullName: "Teacher Name", Initials: "TN"}

// DemoRooms returns the five sample breakout rooms loaded in development.
func DemoRooms() []Room {
	return []Room{
		{ID: 1, Name: "Room Alpha", Participants: []Participant{
			{FullName: "Alice Anderson", Initials: "AA"},
			{FullName: "Bob Brown", Initials: "BB"},
		}},
		{ID: 2, Name: "Room Beta", Participants: []Participant{
			{FullName: "Charlie Chen", Initials: "CC"},
		}},
		{ID: 3, Name: "Room Gamma", Participants: []Participant{
			{FullName: "Diana Davis", Initials: "DD"},
			{FullName: "Eve Evans", Initials: "EE"},
			{FullName: "Frank Foster", Initials: "FF"},
		}},
		{ID: 4, Name: "Room Delta"},
		{ID: 5, Name: "Room Epsilon", Participants: []Participant{
			{FullName: "Grace Green", Initials: "GG"},
		}},
	}
}

// DemoPool returns the sample available participants loaded in development.
func DemoPool() []Participant {
	return []Participant{
		{FullName: "Hannah Harris", Initials: "HH"},
		{FullName: "Ian Ingram", Initials: "II"},
		{FullName: "Jack Johnson", Initials: "JJ"},
		{FullName: "Kate Kelly", Initials: "KK"},
		{FullName: "Liam Lee", Initials: "LL"},
	}
}

// EmptyRooms returns one empty room per name, numbered 1..N in order.
func EmptyRooms(names []string) []Room {
	rooms := make([]Room, 0, len(names))
	for i, name := range names {
		rooms = append(rooms, Room{ID: RoomID(i + 1), Name: name})
	}
	return rooms
}
