package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/avolkov/roomwire/internal/proto"
)

// Mode selects how an outgoing message is addressed.
type Mode int

const (
	// ModeGlobal broadcasts to the well-known global room.
	ModeGlobal Mode = iota
	// ModePrivate addresses one user; the echo lands in the pair room.
	ModePrivate
	// ModeGroup addresses a joined group room.
	ModeGroup
)

func (m Mode) String() string {
	switch m {
	case ModePrivate:
		return "private"
	case ModeGroup:
		return "group"
	default:
		return "global"
	}
}

type indexed struct {
	room string
	msg  *Message
}

// Session is the client-side chat state machine: one duplex connection
// multiplexed across global, private, and group conversation surfaces, each
// with its own history and unread flag.
//
// A session is confined to a single goroutine. The owning loop feeds it
// user commands via Apply and decoded server frames via HandleFrame, one at
// a time; nothing mutates its state concurrently.
type Session struct {
	log  *zerolog.Logger
	sink Sink
	tr   Transport

	username  string
	avatar    string
	anonymous bool

	mode   Mode
	target string
	group  string

	registry *Registry
	// index locates messages by their server-assigned id across all rooms;
	// ids are globally unique.
	index map[string]indexed

	users  []UserInfo
	groups []GroupInfo
	joined map[string]struct{}

	connected bool
}

// NewSession builds a session for the given identity. The username is the
// equality key for message ownership; the avatar is opaque and chosen once.
func NewSession(username, avatar string, tr Transport, sink Sink, logger *zerolog.Logger) *Session {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Session{
		log:      logger,
		sink:     sink,
		tr:       tr,
		username: username,
		avatar:   avatar,
		registry: NewRegistry(),
		index:    make(map[string]indexed),
		joined:   make(map[string]struct{}),
	}
}

// Connect introduces the session to the server.
func (s *Session) Connect(ctx context.Context) error {
	if err := s.tr.Send(ctx, proto.Hello{Username: s.username, Avatar: s.avatar}); err != nil {
		return fmt.Errorf("send hello: %w", err)
	}
	s.connected = true
	s.log.Info().Str("user", s.username).Msg("session connected")
	return nil
}

// Connected reports whether the session is still attached to a transport.
func (s *Session) Connected() bool { return s.connected }

// Username returns the local identity.
func (s *Session) Username() string { return s.username }

// Anonymous returns the viewer's current anonymous-mode flag.
func (s *Session) Anonymous() bool { return s.anonymous }

// CurrentMode returns how outgoing messages are being addressed.
func (s *Session) CurrentMode() Mode { return s.mode }

// ActiveRoomID returns the id of the visible room.
func (s *Session) ActiveRoomID() string { return s.registry.ActiveID() }

// Apply executes one user command against the session state.
func (s *Session) Apply(ctx context.Context, cmd *Command) error {
	switch cmd.Kind {
	case CommandSendText:
		return s.sendText(ctx, cmd.Text)
	case CommandSwitchRoom:
		s.switchRoom(cmd.Room)
		return nil
	case CommandOpenPrivate:
		return s.openPrivate(cmd.Target)
	case CommandOpenGroup:
		s.openGroup(cmd.Room)
		return nil
	case CommandOpenGlobal:
		s.mode = ModeGlobal
		s.setActive(RoomGlobal)
		return nil
	case CommandToggleAnonymous:
		s.toggleAnonymous()
		return nil
	case CommandCreateGroup:
		return s.createGroup(ctx, cmd.Room)
	case CommandJoinGroup:
		return s.joinGroup(ctx, cmd.Room)
	case CommandLeaveGroup:
		return s.leaveGroup(ctx, cmd.Room)
	case CommandDeleteGroup:
		return s.deleteGroup(ctx, cmd.Room)
	case CommandDeleteMessage:
		return s.deleteMessage(ctx, cmd.MessageID)
	}
	return coreError(ErrCodeBadRequest, "unknown command")
}

// HandleFrame routes one decoded server frame. Unknown frames are dropped.
func (s *Session) HandleFrame(frame any) {
	switch f := frame.(type) {
	case proto.ErrorFrame:
		s.handleError(f)
	case proto.UserListFrame:
		s.handleUserList(f)
	case proto.GroupListFrame:
		s.handleGroupList(f)
	case proto.SystemFrame:
		s.handleSystem(f)
	case proto.ChatFrame:
		s.handleChat(f)
	case proto.DeleteFrame:
		s.handleDelete(f)
	default:
		s.log.Debug().Type("frame", frame).Msg("drop unhandled frame")
	}
}

// HandleDisconnect surfaces a closed channel as one informational line in
// the active room. The session does not reconnect.
func (s *Session) HandleDisconnect(err error) {
	if !s.connected {
		return
	}
	s.connected = false

	text := "disconnected from server"
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
		text = text + ": " + err.Error()
	}
	s.appendSystem(text)
	s.log.Info().Err(err).Msg("session disconnected")
}

func (s *Session) sendText(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		// Whitespace-only input never produces an envelope.
		return nil
	}
	if !s.connected {
		s.sink.Prompt("not connected")
		return coreError(ErrCodeNotConnected, "session is not connected")
	}

	switch s.mode {
	case ModePrivate:
		if s.target == "" {
			s.sink.Prompt("pick a user to message first")
			return coreError(ErrCodeNoTarget, "no private target selected")
		}
		// Switch to the pair room before sending so the server's echo of
		// this message lands on the visible surface.
		pair := PairID(s.username, s.target)
		if s.registry.ActiveID() != pair {
			s.setActive(pair)
		}
		return s.send(ctx, proto.ChatSend{
			Type:    proto.SendTypePrivate,
			Message: text,
			Target:  s.target,
		})
	case ModeGroup:
		if s.group == "" || !s.isJoined(s.group) {
			s.sink.Prompt("join a group before sending to one")
			return coreError(ErrCodeNotInGroup, "not a member of the group")
		}
		return s.send(ctx, proto.ChatSend{
			Type:    proto.SendTypeGroup,
			Message: text,
			Room:    s.group,
		})
	default:
		env := proto.ChatSend{Type: proto.SendTypeGlobal, Message: text}
		// The anonymous flag is only supported on global sends.
		if s.anonymous {
			env.Anonymous = true
		}
		return s.send(ctx, env)
	}
}

func (s *Session) send(ctx context.Context, v any) error {
	if err := s.tr.Send(ctx, v); err != nil {
		return fmt.Errorf("send envelope: %w", err)
	}
	return nil
}

func (s *Session) handleError(f proto.ErrorFrame) {
	s.sink.Notice("server error: " + f.Message)
	if !IsNameCollision(f.Message) {
		// Advisory: the session stays intact.
		return
	}

	// A taken username is fatal: close the channel and fall back to the
	// pre-session state.
	if err := s.tr.Close(); err != nil {
		s.log.Warn().Err(err).Msg("close transport after name collision")
	}
	s.reset()
	s.sink.SessionEnded(f.Message)
	s.log.Warn().Str("user", s.username).Msg("username collision ended session")
}

func (s *Session) handleUserList(f proto.UserListFrame) {
	users := make([]UserInfo, 0, len(f.Users))
	for _, u := range f.Users {
		users = append(users, UserInfo{Name: u.Name, Avatar: u.Avatar})
	}
	s.users = users
	s.sink.SetUsers(users)
}

func (s *Session) handleGroupList(f proto.GroupListFrame) {
	groups := make([]GroupInfo, 0, len(f.Groups))
	joined := make(map[string]struct{})
	for _, g := range f.Groups {
		groups = append(groups, GroupInfo{Name: g.Name, Kind: g.Kind, Members: g.Members})
		for _, member := range g.Members {
			if member == s.username {
				joined[g.Name] = struct{}{}
				break
			}
		}
	}
	s.groups = groups
	s.joined = joined
	s.sink.SetGroups(groups)
}

// handleSystem appends an informational line to whichever room is active at
// receipt time; system frames are never routed by room.
func (s *Session) handleSystem(f proto.SystemFrame) {
	s.appendSystem(f.Message)
}

func (s *Session) handleChat(f proto.ChatFrame) {
	room := f.Room
	if room == "" {
		room = RoomGlobal
	}
	orig := f.OriginalSender
	if orig == "" {
		orig = f.Sender
	}

	msg := &Message{
		ID:             f.MessageID,
		Room:           room,
		Sender:         f.Sender,
		OriginalSender: orig,
		IsAnonymous:    f.IsAnonymous,
		AvatarRef:      f.SenderAvatar,
		Text:           f.Message,
		ReceivedAt:     time.Now(),
	}

	r := s.registry.EnsureRoom(room)
	r.Append(msg)
	if msg.ID != "" {
		s.index[msg.ID] = indexed{room: room, msg: msg}
	}

	if room == s.registry.ActiveID() {
		s.sink.AppendMessage(room, s.render(msg))
		return
	}
	r.Unread = true
	s.sink.SetUnread(room)
}

func (s *Session) handleDelete(f proto.DeleteFrame) {
	loc, ok := s.index[f.MessageID]
	if !ok {
		// The message may belong to a room this client never opened.
		s.log.Debug().Str("message_id", f.MessageID).Msg("delete for unknown message")
		return
	}
	loc.msg.Deleted = true
	if loc.room == s.registry.ActiveID() {
		s.sink.ReplaceMessage(loc.room, s.render(loc.msg))
	}
}

func (s *Session) openPrivate(target string) error {
	if target == "" {
		s.sink.Prompt("pick a user to message first")
		return coreError(ErrCodeNoTarget, "no private target selected")
	}
	s.mode = ModePrivate
	s.target = target
	s.setActive(PairID(s.username, target))
	return nil
}

func (s *Session) openGroup(room string) {
	s.mode = ModeGroup
	s.group = room
	s.setActive(room)
}

// switchRoom activates a room and infers the matching send mode from the
// room's identity.
func (s *Session) switchRoom(id string) {
	switch {
	case id == RoomGlobal:
		s.mode = ModeGlobal
	case s.isJoined(id):
		s.mode = ModeGroup
		s.group = id
	default:
		if a, b, ok := SplitPairID(id); ok && (a == s.username || b == s.username) {
			s.mode = ModePrivate
			if a == s.username {
				s.target = b
			} else {
				s.target = a
			}
		}
	}
	s.setActive(id)
}

func (s *Session) toggleAnonymous() {
	s.anonymous = !s.anonymous
	// The viewer's mode affects how their own past messages present, so the
	// visible room is re-reconciled eagerly; other rooms catch up when next
	// activated.
	r := s.registry.Active()
	s.sink.ShowRoom(r.ID, s.renderAll(r))
}

func (s *Session) createGroup(ctx context.Context, room string) error {
	if room == "" {
		s.sink.Prompt("name the group to create")
		return coreError(ErrCodeBadRequest, "group name is required")
	}
	if err := s.send(ctx, proto.GroupAction{Type: proto.SendTypeCreateGroup, Room: room}); err != nil {
		return err
	}
	// The creator is a member; group_list will confirm.
	s.joined[room] = struct{}{}
	s.openGroup(room)
	return nil
}

func (s *Session) joinGroup(ctx context.Context, room string) error {
	if room == "" {
		s.sink.Prompt("name the group to join")
		return coreError(ErrCodeBadRequest, "group name is required")
	}
	if err := s.send(ctx, proto.GroupAction{Type: proto.SendTypeJoinGroup, Room: room}); err != nil {
		return err
	}
	s.joined[room] = struct{}{}
	s.openGroup(room)
	return nil
}

// leaveGroup leaves room, or the current group when room is empty. Leaving
// returns focus to the global room; the group's history is kept.
func (s *Session) leaveGroup(ctx context.Context, room string) error {
	if room == "" {
		room = s.group
	}
	if room == "" {
		s.sink.Prompt("no group to leave")
		return coreError(ErrCodeNotInGroup, "not in a group")
	}
	if err := s.send(ctx, proto.GroupAction{Type: proto.SendTypeLeaveGroup, Room: room}); err != nil {
		return err
	}
	s.dropGroup(room)
	return nil
}

func (s *Session) deleteGroup(ctx context.Context, room string) error {
	if room == "" {
		room = s.group
	}
	if room == "" {
		s.sink.Prompt("name the group to delete")
		return coreError(ErrCodeBadRequest, "group name is required")
	}
	if err := s.send(ctx, proto.GroupAction{Type: proto.SendTypeDeleteGroup, Room: room}); err != nil {
		return err
	}
	s.dropGroup(room)
	return nil
}

func (s *Session) deleteMessage(ctx context.Context, id string) error {
	if id == "" {
		s.sink.Prompt("message id is required")
		return coreError(ErrCodeBadRequest, "message id is required")
	}
	// Tombstoning happens when the server's delete frame comes back.
	return s.send(ctx, proto.DeleteSend{Type: proto.SendTypeDelete, MessageID: id})
}

func (s *Session) dropGroup(room string) {
	delete(s.joined, room)
	if s.group == room {
		s.group = ""
		s.mode = ModeGlobal
		s.setActive(RoomGlobal)
	}
}

func (s *Session) setActive(id string) {
	r := s.registry.SetActive(id)
	s.sink.ClearUnread(id)
	s.sink.ShowRoom(id, s.renderAll(r))
}

func (s *Session) appendSystem(text string) {
	r := s.registry.Active()
	msg := &Message{Room: r.ID, Text: text, System: true, ReceivedAt: time.Now()}
	r.Append(msg)
	s.sink.AppendMessage(r.ID, Rendered{Message: msg})
}

func (s *Session) render(m *Message) Rendered {
	if m.System {
		return Rendered{Message: m}
	}
	return Rendered{Message: m, View: Reconcile(m, s.viewer())}
}

func (s *Session) renderAll(r *Room) []Rendered {
	out := make([]Rendered, 0, len(r.Messages))
	for _, m := range r.Messages {
		out = append(out, s.render(m))
	}
	return out
}

func (s *Session) viewer() Viewer {
	return Viewer{Username: s.username, Anonymous: s.anonymous}
}

func (s *Session) isJoined(room string) bool {
	_, ok := s.joined[room]
	return ok
}

// reset discards all room and presence state; a fresh Connect starts clean.
func (s *Session) reset() {
	s.registry = NewRegistry()
	s.index = make(map[string]indexed)
	s.joined = make(map[string]struct{})
	s.users = nil
	s.groups = nil
	s.mode = ModeGlobal
	s.target = ""
	s.group = ""
	s.connected = false
}
