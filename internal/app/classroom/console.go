package classroom

import (
	"maps"

	"classroom/internal/app/roster"
)

// Tab is the panel shown in the teacher's console.
type Tab string

const (
	TabPresentation Tab = "presentation"
	TabSharedNotes  Tab = "shared-notes"
	TabScreenshare  Tab = "screenshare"
)

// ParseTab reports whether s names a console tab.
func ParseTab(s string) (Tab, bool) {
	switch t := Tab(s); t {
	case TabPresentation, TabSharedNotes, TabScreenshare:
		return t, true
	default:
		return "", false
	}
}

// Console is the teacher's view over the breakout rooms.
type Console struct {
	SelectedRoomID *roster.RoomID           `json:"selectedRoomId"`
	ActiveTab      Tab                      `json:"activeTab"`
	Screenshare    map[roster.RoomID]bool   `json:"screenshare"`
	Notes          map[roster.RoomID]string `json:"notes"`
}

func newConsole() Console {
	return Console{
		ActiveTab:   TabPresentation,
		Screenshare: make(map[roster.RoomID]bool),
		Notes:       make(map[roster.RoomID]string),
	}
}

func (c Console) clone() Console {
	out := c
	if c.SelectedRoomID != nil {
		id := *c.SelectedRoomID
		out.SelectedRoomID = &id
	}
	out.Screenshare = maps.Clone(c.Screenshare)
	out.Notes = maps.Clone(c.Notes)

	return out
}

func (c Console) selected() (roster.RoomID, bool) {
	if c.SelectedRoomID == nil {
		return 0, false
	}
	return *c.SelectedRoomID, true
}

// followTeacher selects the room the teacher moved into. Switching rooms resets the tab.
func (c *Console) followTeacher(room roster.RoomID, inRoom bool) {
	if !inRoom {
		c.SelectedRoomID = nil
		c.ActiveTab = TabPresentation
		return
	}

	if prev, ok := c.selected(); !ok || prev != room {
		c.ActiveTab = TabPresentation
	}
	c.SelectedRoomID = &room
}

func (c *Console) selectTab(tab Tab) {
	if tab == TabScreenshare {
		room, ok := c.selected()
		if !ok || !c.Screenshare[room] {
			tab = TabPresentation
		}
	}
	c.ActiveTab = tab
}

func (c *Console) setScreenshare(room roster.RoomID, enabled bool) {
	c.Screenshare[room] = enabled

	selected, ok := c.selected()
	switch {
	case enabled && ok && selected == room:
		c.ActiveTab = TabScreenshare
	case !enabled && ok && selected == room && c.ActiveTab == TabScreenshare:
		c.ActiveTab = TabPresentation
	}
}
