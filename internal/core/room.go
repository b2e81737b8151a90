package core

import "strings"

// RoomGlobal is the single well-known broadcast room every session starts in.
const RoomGlobal = "global"

const pairSeparator = "|"

// Room is one conversation surface: an append-only message history plus an
// unread flag. Rooms are created lazily and never destroyed client-side.
type Room struct {
	ID       string
	Messages []*Message
	Unread   bool
}

func newRoom(id string) *Room {
	return &Room{ID: id}
}

// Append adds a message to the end of the history.
func (r *Room) Append(m *Message) {
	r.Messages = append(r.Messages, m)
}

// Registry owns every known room and tracks which one is visible. Exactly
// one room is active at any time.
type Registry struct {
	rooms  map[string]*Room
	active string
}

// NewRegistry creates a registry with the global room present and active.
func NewRegistry() *Registry {
	g := &Registry{rooms: make(map[string]*Room), active: RoomGlobal}
	g.rooms[RoomGlobal] = newRoom(RoomGlobal)
	return g
}

// EnsureRoom returns the room for id, creating an empty one on first
// reference. Idempotent: an existing room's history is never reset.
func (g *Registry) EnsureRoom(id string) *Room {
	if r, ok := g.rooms[id]; ok {
		return r
	}
	r := newRoom(id)
	g.rooms[id] = r
	return r
}

// ActiveID returns the id of the currently visible room.
func (g *Registry) ActiveID() string {
	return g.active
}

// Active returns the currently visible room.
func (g *Registry) Active() *Room {
	return g.EnsureRoom(g.active)
}

// SetActive makes one room visible and all others hidden. Switching to a
// room implies the user has seen it, so its unread flag is cleared here.
func (g *Registry) SetActive(id string) *Room {
	r := g.EnsureRoom(id)
	g.active = id
	r.Unread = false
	return r
}

// PairID derives the canonical private-room id for two participants by
// joining their usernames in sorted order. Both ends of a private
// conversation compute the same id regardless of argument order.
func PairID(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + pairSeparator + b
}

// SplitPairID returns the two participants of a private-room id, or false
// if the id is not a pair id.
func SplitPairID(id string) (string, string, bool) {
	parts := strings.SplitN(id, pairSeparator, 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
