package core

import (
	"testing"

	"github.com/avolkov/roomwire/internal/proto"
)

type discardSink struct{}

func (discardSink) ShowRoom(string, []Rendered) {}
func (discardSink) AppendMessage(string, Rendered) {}
func (discardSink) ReplaceMessage(string, Rendered) {}
func (discardSink) SetUnread(string) {}
func (discardSink) ClearUnread(string) {}
func (discardSink) SetUsers([]UserInfo) {}
func (discardSink) SetGroups([]GroupInfo) {}
func (discardSink) Notice(string) {}
func (discardSink) Prompt(string) {}
func (discardSink) SessionEnded(string) {}

func benchmarkChatDispatch(b *testing.B, rooms int) {
	s := NewSession("alice", "", &transportRecorder{}, discardSink{}, nil)

	roomIDs := make([]string, rooms)
	for i := range roomIDs {
		roomIDs[i] = "room" + string(rune('a'+i%26))
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		s.HandleFrame(proto.ChatFrame{
			Room:           roomIDs[i%rooms],
			Sender:         "bob",
			OriginalSender: "bob",
			Message:        "payload",
		})
	}
}

func BenchmarkChatDispatch_1(b *testing.B)  { benchmarkChatDispatch(b, 1) }
func BenchmarkChatDispatch_8(b *testing.B)  { benchmarkChatDispatch(b, 8) }
func BenchmarkChatDispatch_26(b *testing.B) { benchmarkChatDispatch(b, 26) }
