package core

import (
	"context"
	"testing"
)

// sinkRecorder captures render commands for assertions.
type sinkRecorder struct {
	shown     []string
	histories map[string][]Rendered
	appended  map[string][]Rendered
	replaced  map[string][]Rendered
	unread    []string
	cleared   []string
	users     []UserInfo
	groups    []GroupInfo
	notices   []string
	prompts   []string
	ended     []string
}

func newSinkRecorder() *sinkRecorder {
	return &sinkRecorder{
		histories: make(map[string][]Rendered),
		appended:  make(map[string][]Rendered),
		replaced:  make(map[string][]Rendered),
	}
}

func (r *sinkRecorder) ShowRoom(roomID string, history []Rendered) {
	r.shown = append(r.shown, roomID)
	r.histories[roomID] = history
}

func (r *sinkRecorder) AppendMessage(roomID string, msg Rendered) {
	r.appended[roomID] = append(r.appended[roomID], msg)
}

func (r *sinkRecorder) ReplaceMessage(roomID string, msg Rendered) {
	r.replaced[roomID] = append(r.replaced[roomID], msg)
}

func (r *sinkRecorder) SetUnread(roomID string) { r.unread = append(r.unread, roomID) }
func (r *sinkRecorder) ClearUnread(roomID string) { r.cleared = append(r.cleared, roomID) }
func (r *sinkRecorder) SetUsers(users []UserInfo) { r.users = users }
func (r *sinkRecorder) SetGroups(groups []GroupInfo) { r.groups = groups }
func (r *sinkRecorder) Notice(text string) { r.notices = append(r.notices, text) }
func (r *sinkRecorder) Prompt(text string) { r.prompts = append(r.prompts, text) }
func (r *sinkRecorder) SessionEnded(reason string) { r.ended = append(r.ended, reason) }

func (r *sinkRecorder) lastAppended(t *testing.T, roomID string) Rendered {
	t.Helper()
	msgs := r.appended[roomID]
	if len(msgs) == 0 {
		t.Fatalf("no messages appended to room %q", roomID)
	}
	return msgs[len(msgs)-1]
}

// transportRecorder captures outbound envelopes in place of a socket.
type transportRecorder struct {
	sent   []any
	closed bool
}

func (tr *transportRecorder) Send(_ context.Context, v any) error {
	tr.sent = append(tr.sent, v)
	return nil
}

func (tr *transportRecorder) Close() error {
	tr.closed = true
	return nil
}

// newTestSession builds a connected session. The hello envelope is cleared
// from the transport so assertions start from zero outbound sends.
func newTestSession(t *testing.T, user string) (*Session, *transportRecorder, *sinkRecorder) {
	t.Helper()

	tr := &transportRecorder{}
	sink := newSinkRecorder()
	s := NewSession(user, "avatars/"+user+".png", tr, sink, nil)
	if err := s.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	tr.sent = nil
	return s, tr, sink
}
