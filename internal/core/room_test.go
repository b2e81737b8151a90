package core

import "testing"

func TestPairIDSymmetric(t *testing.T) {
	if got, want := PairID("alice", "bob"), PairID("bob", "alice"); got != want {
		t.Fatalf("pair ids differ by argument order: %q vs %q", got, want)
	}
	if PairID("alice", "bob") == PairID("alice", "carol") {
		t.Fatalf("distinct pairs produced the same id")
	}
}

func TestSplitPairID(t *testing.T) {
	id := PairID("bob", "alice")
	a, b, ok := SplitPairID(id)
	if !ok {
		t.Fatalf("expected %q to split", id)
	}
	if a != "alice" || b != "bob" {
		t.Fatalf("unexpected participants: %q, %q", a, b)
	}
	if _, _, ok := SplitPairID(RoomGlobal); ok {
		t.Fatalf("global room id must not split as a pair")
	}
}

func TestEnsureRoomIdempotent(t *testing.T) {
	reg := NewRegistry()

	den := reg.EnsureRoom("den")
	den.Append(&Message{Text: "hi"})

	again := reg.EnsureRoom("den")
	if again != den {
		t.Fatalf("EnsureRoom returned a different room for the same id")
	}
	if len(again.Messages) != 1 {
		t.Fatalf("history was reset, want 1 message, got %d", len(again.Messages))
	}
}

func TestSetActiveClearsUnread(t *testing.T) {
	reg := NewRegistry()
	if reg.ActiveID() != RoomGlobal {
		t.Fatalf("new registry must start in %q, got %q", RoomGlobal, reg.ActiveID())
	}

	den := reg.EnsureRoom("den")
	den.Unread = true

	reg.SetActive("den")
	if reg.ActiveID() != "den" {
		t.Fatalf("active room is %q, want den", reg.ActiveID())
	}
	if den.Unread {
		t.Fatalf("activation must clear the unread flag")
	}
}
