package core

import "time"

// Tombstone replaces the content of deleted messages. Deleted messages keep
// their slot in the history; only the text is substituted.
const Tombstone = "[deleted]"

// Message is one chat event stored in a room's history.
type Message struct {
	// ID is server-assigned and optional; messages without one cannot be
	// targeted for deletion.
	ID string

	Room string

	// Sender is the display name exactly as the server wants it shown,
	// which under anonymous mode is a pseudonym.
	Sender string

	// OriginalSender is the real username behind the message. Ownership is
	// keyed on it, never on Sender alone.
	OriginalSender string

	// IsAnonymous is the author's anonymous flag at send time, immutable
	// once sent.
	IsAnonymous bool

	AvatarRef string
	Text      string

	// System marks informational lines (connection notices, server system
	// frames) that carry no sender identity.
	System bool

	Deleted    bool
	ReceivedAt time.Time
}

// Content returns the renderable text, substituting the tombstone once the
// message has been deleted.
func (m *Message) Content() string {
	if m.Deleted {
		return Tombstone
	}
	return m.Text
}
