package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPublishProofEventNeverBlocks(t *testing.T) {
	// Drain anything left over, then overfill the queue: publishing past
	// capacity must drop, not block the caller.
	for {
		select {
		case <-Broadcast:
			continue
		default:
		}
		break
	}

	done := make(chan struct{})
	go func() {
		for i := 0; i < cap(Broadcast)+5; i++ {
			PublishProofEvent(EventProofSubmitted, uuid.New(), "pending", "user", "GOLD")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("PublishProofEvent blocked on a full queue")
	}

	if len(Broadcast) != cap(Broadcast) {
		t.Fatalf("queue should be full, holds %d of %d", len(Broadcast), cap(Broadcast))
	}

	for len(Broadcast) > 0 {
		<-Broadcast
	}
}

func TestProofEventCarriesTimestamp(t *testing.T) {
	for len(Broadcast) > 0 {
		<-Broadcast
	}

	before := time.Now()
	PublishProofEvent(EventProofApproved, uuid.New(), "approved", "user", "DIAMOND")
	event := <-Broadcast

	if event.Type != EventProofApproved {
		t.Fatalf("unexpected event type: %s", event.Type)
	}
	if event.At.Before(before) {
		t.Fatal("event timestamp predates publication")
	}
}
