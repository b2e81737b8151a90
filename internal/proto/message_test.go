package proto

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDecodeServerChatFrame(t *testing.T) {
	raw := []byte(`{
		"type": "chat",
		"room": "den",
		"sender": "Shadow42",
		"original_sender": "alice",
		"is_anonymous": true,
		"sender_avatar": "avatars/alice.png",
		"message": "hello",
		"message_id": "m-17"
	}`)

	frame, err := DecodeServer(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	chat, ok := frame.(ChatFrame)
	if !ok {
		t.Fatalf("decoded %T, want ChatFrame", frame)
	}
	if chat.Room != "den" || chat.Sender != "Shadow42" || chat.OriginalSender != "alice" ||
		!chat.IsAnonymous || chat.Message != "hello" || chat.MessageID != "m-17" {
		t.Fatalf("unexpected frame: %+v", chat)
	}
}

func TestDecodeServerOptionalFieldsDefaultEmpty(t *testing.T) {
	frame, err := DecodeServer([]byte(`{"type":"chat","sender":"bob","message":"hi"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	chat := frame.(ChatFrame)
	if chat.Room != "" || chat.OriginalSender != "" || chat.IsAnonymous || chat.MessageID != "" {
		t.Fatalf("optional fields must stay zero, got %+v", chat)
	}
}

func TestDecodeServerRejectsUnknownType(t *testing.T) {
	if _, err := DecodeServer([]byte(`{"type":"presence"}`)); err == nil {
		t.Fatalf("expected an error for an unknown frame type")
	}
}

func TestDecodeServerRejectsMalformedPayload(t *testing.T) {
	if _, err := DecodeServer([]byte(`{"type": "chat", `)); err == nil {
		t.Fatalf("expected an error for truncated JSON")
	}
}

func TestChatSendOmitsUnsetFields(t *testing.T) {
	data, err := json.Marshal(ChatSend{Type: SendTypeGlobal, Message: "hi"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{"target", "room", "anonymous"} {
		if strings.Contains(string(data), field) {
			t.Fatalf("global envelope must omit %q: %s", field, data)
		}
	}

	data, err = json.Marshal(ChatSend{Type: SendTypeGlobal, Message: "hi", Anonymous: true})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"anonymous":true`) {
		t.Fatalf("anonymous flag must be attached when set: %s", data)
	}
}

func TestDeleteSendShape(t *testing.T) {
	data, err := json.Marshal(DeleteSend{Type: SendTypeDelete, MessageID: "m-1"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"type":"delete","message_id":"m-1"}` {
		t.Fatalf("unexpected wire shape: %s", data)
	}
}
