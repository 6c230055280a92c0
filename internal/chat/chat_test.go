package chat

import "testing"

func TestPostAndRead(t *testing.T) {
	b := NewBoard()

	first, ok := b.Post("p1", "Ana", "kickoff at 10")
	if !ok {
		t.Fatal("expected post to be accepted")
	}
	if first.ID == "" || first.SentAt.IsZero() {
		t.Error("expected id and timestamp to be stamped")
	}

	b.Post("p1", "Bo", "ack")
	b.Post("p2", "Ana", "other project")

	msgs := b.Messages("p1")
	if len(msgs) != 2 {
		t.Fatalf("message count = %d, want 2", len(msgs))
	}
	if msgs[0].Body != "kickoff at 10" || msgs[1].Body != "ack" {
		t.Error("messages must come back in send order")
	}
	if len(b.Messages("p2")) != 1 {
		t.Error("projects must not share discussions")
	}
}

func TestPostRejectsBlank(t *testing.T) {
	b := NewBoard()

	if _, ok := b.Post("p1", "Ana", "   "); ok {
		t.Error("blank body must be dropped")
	}
	if _, ok := b.Post("", "Ana", "hello"); ok {
		t.Error("missing project must be dropped")
	}
	if len(b.Messages("p1")) != 0 {
		t.Error("nothing should be stored")
	}
}

func TestClear(t *testing.T) {
	b := NewBoard()
	b.Post("p1", "Ana", "hello")
	b.Clear("p1")
	if len(b.Messages("p1")) != 0 {
		t.Error("expected discussion cleared")
	}
}

func TestMessagesReturnsCopy(t *testing.T) {
	b := NewBoard()
	b.Post("p1", "Ana", "hello")

	msgs := b.Messages("p1")
	msgs[0].Body = "mutated"
	if b.Messages("p1")[0].Body != "hello" {
		t.Error("Messages must return a copy")
	}
}
