package proto

import (
	"encoding/json"
	"fmt"
)

// Client→server envelope types.
const (
	SendTypeGlobal  = "global"
	SendTypePrivate = "private"
	SendTypeGroup   = "group"

	SendTypeCreateGroup = "create_group"
	SendTypeJoinGroup   = "join_group"
	SendTypeLeaveGroup  = "leave_group"
	SendTypeDeleteGroup = "delete_group"

	SendTypeDelete = "delete"
)

// Server→client frame types.
const (
	FrameTypeError     = "error"
	FrameTypeUserList  = "user_list"
	FrameTypeGroupList = "group_list"
	FrameTypeSystem    = "system"
	FrameTypeChat      = "chat"
	FrameTypeDelete    = "delete"
)

// Hello introduces the client to the server. Sent exactly once, right after
// the socket opens, with no type tag.
type Hello struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// ChatSend carries an outbound chat message. Target is set for private
// sends, Room for group sends, Anonymous only for global sends.
type ChatSend struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Target    string `json:"target,omitempty"`
	Room      string `json:"room,omitempty"`
	Anonymous bool   `json:"anonymous,omitempty"`
}

// GroupAction drives the group lifecycle: create, join, leave, delete.
type GroupAction struct {
	Type string `json:"type"`
	Room string `json:"room"`
}

// DeleteSend asks the server to delete a message by id.
type DeleteSend struct {
	Type      string `json:"type"`
	MessageID string `json:"message_id"`
}

// ErrorFrame surfaces a server-side error to the user.
type ErrorFrame struct {
	Message string `json:"message"`
}

// SystemFrame is an informational line for the active conversation.
type SystemFrame struct {
	Message string `json:"message"`
}

// UserEntry is one connected user as reported by the server.
type UserEntry struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// UserListFrame replaces the full set of known users.
type UserListFrame struct {
	Users []UserEntry `json:"users"`
}

// GroupEntry is one group as reported by the server.
type GroupEntry struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind,omitempty"`
	Members []string `json:"members"`
}

// GroupListFrame replaces the full set of known groups.
type GroupListFrame struct {
	Groups []GroupEntry `json:"groups"`
}

// ChatFrame is one chat message broadcast by the server. Room defaults to
// the global room when absent. Sender is the name to display, which under
// anonymous mode is a pseudonym rather than OriginalSender.
type ChatFrame struct {
	Room           string `json:"room,omitempty"`
	Sender         string `json:"sender"`
	OriginalSender string `json:"original_sender,omitempty"`
	IsAnonymous    bool   `json:"is_anonymous,omitempty"`
	SenderAvatar   string `json:"sender_avatar,omitempty"`
	Message        string `json:"message"`
	MessageID      string `json:"message_id,omitempty"`
}

// DeleteFrame marks a previously delivered message as deleted.
type DeleteFrame struct {
	MessageID string `json:"message_id"`
}

// DecodeServer parses one raw server frame into its typed form. Server
// frames are flat JSON objects discriminated by a "type" field.
func DecodeServer(raw []byte) (any, error) {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, fmt.Errorf("decode frame tag: %w", err)
	}

	switch tag.Type {
	case FrameTypeError:
		var f ErrorFrame
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("decode error frame: %w", err)
		}
		return f, nil
	case FrameTypeUserList:
		var f UserListFrame
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("decode user_list frame: %w", err)
		}
		return f, nil
	case FrameTypeGroupList:
		var f GroupListFrame
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("decode group_list frame: %w", err)
		}
		return f, nil
	case FrameTypeSystem:
		var f SystemFrame
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("decode system frame: %w", err)
		}
		return f, nil
	case FrameTypeChat:
		var f ChatFrame
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("decode chat frame: %w", err)
		}
		return f, nil
	case FrameTypeDelete:
		var f DeleteFrame
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("decode delete frame: %w", err)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unknown frame type %q", tag.Type)
	}
}
