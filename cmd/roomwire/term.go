package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/avolkov/roomwire/internal/core"
)

// termSink renders session output as plain lines. The session calls it from
// the app loop while the stdin loop reads presence from another goroutine,
// hence the mutex.
type termSink struct {
	mu     sync.Mutex
	out    io.Writer
	users  []core.UserInfo
	groups []core.GroupInfo
}

func newTermSink(out io.Writer) *termSink {
	return &termSink{out: out}
}

func (t *termSink) ShowRoom(roomID string, history []core.Rendered) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "--- %s ---\n", roomID)
	for _, r := range history {
		fmt.Fprintln(t.out, formatLine(r))
	}
}

func (t *termSink) AppendMessage(roomID string, msg core.Rendered) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, formatLine(msg))
}

func (t *termSink) ReplaceMessage(roomID string, msg core.Rendered) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, formatLine(msg))
}

func (t *termSink) SetUnread(roomID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "* new messages in %s (/room %s)\n", roomID, roomID)
}

// ClearUnread needs no output; the room header printed by ShowRoom already
// marks the switch.
func (t *termSink) ClearUnread(roomID string) {}

func (t *termSink) SetUsers(users []core.UserInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.users = users
}

func (t *termSink) SetGroups(groups []core.GroupInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.groups = groups
}

func (t *termSink) Notice(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "! %s\n", text)
}

func (t *termSink) Prompt(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "? %s\n", text)
}

func (t *termSink) SessionEnded(reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "session ended: %s\n", reason)
}

func (t *termSink) printUsers() {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "connected users (%d):\n", len(t.users))
	for _, u := range t.users {
		fmt.Fprintf(t.out, "  %s\n", u.Name)
	}
}

func (t *termSink) printGroups() {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "groups (%d):\n", len(t.groups))
	for _, g := range t.groups {
		fmt.Fprintf(t.out, "  %s (%d members)\n", g.Name, len(g.Members))
	}
}

func (t *termSink) printHelp() {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprint(t.out, `commands:
  /room <id>          switch to a room
  /global             back to the global room
  /pm <user>          open a private conversation
  /group <name>       switch to a group room
  /create <name>      create a group
  /join <name>        join a group
  /leave [name]       leave a group (focus returns to global)
  /delete-group [name] delete a group
  /del <message-id>   delete a message
  /anon               toggle anonymous mode
  /who                list connected users
  /groups             list groups
  /quit               exit
anything else is sent as a message in the current mode
`)
}

func formatLine(r core.Rendered) string {
	m := r.Message
	if m.System {
		return "* " + m.Content()
	}
	name := r.View.DisplayName
	if r.View.Mine && name != core.SelfDisplayName {
		name = name + " (you)"
	}
	return fmt.Sprintf("%s: %s", name, m.Content())
}
