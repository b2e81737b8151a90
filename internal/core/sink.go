package core

import "context"

// UserInfo is one entry of the presence list.
type UserInfo struct {
	Name   string
	Avatar string
}

// GroupInfo is one entry of the group directory.
type GroupInfo struct {
	Name    string
	Kind    string
	Members []string
}

// Rendered pairs a message with its reconciled view for display.
type Rendered struct {
	Message *Message
	View    View
}

// Sink receives render commands from the session and owns the actual
// display; the session never touches a display layer directly.
//
// ShowRoom replaces the visible surface with one room's full, re-reconciled
// history. It is how rooms invalidate: the active room re-renders eagerly on
// an anonymous-mode toggle, every other room when next activated.
type Sink interface {
	ShowRoom(roomID string, history []Rendered)
	AppendMessage(roomID string, msg Rendered)
	ReplaceMessage(roomID string, msg Rendered)
	SetUnread(roomID string)
	ClearUnread(roomID string)

	SetUsers(users []UserInfo)
	SetGroups(groups []GroupInfo)

	// Notice is an informational line for the active surface.
	Notice(text string)
	// Prompt surfaces a locally rejected action; never silently dropped.
	Prompt(text string)
	// SessionEnded reports that the session fell back to the pre-connect
	// state, e.g. after a fatal username collision.
	SessionEnded(reason string)
}

// Transport is the duplex channel the session writes envelopes to. The
// inbound side is consumed by the owner loop, not by the session.
type Transport interface {
	Send(ctx context.Context, v any) error
	Close() error
}
