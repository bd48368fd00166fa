package signaling

import (
	"fmt"
	"sync"
	"testing"

	errors2 "github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/protodef/errors"
	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/protodef/model"
)

func testParticipant(connID, userID string, role model.InterviewRole) *Participant {
	return NewParticipant(connID, model.Identity{UserID: userID, Nickname: userID, Role: role}, nil)
}

func TestTryAdmitCapacity(t *testing.T) {
	registry := NewRegistry()

	members, err := registry.TryAdmit("room-1", testParticipant("c1", "u1", model.InterviewRoleInterviewer))
	if err != nil {
		t.Fatalf("first admit failed: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(members))
	}

	members, err = registry.TryAdmit("room-1", testParticipant("c2", "u2", model.InterviewRoleCandidate))
	if err != nil {
		t.Fatalf("second admit failed: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}

	_, err = registry.TryAdmit("room-1", testParticipant("c3", "u3", model.InterviewRoleCandidate))
	if !errors2.Is(err, errors2.ServerErrorRoomFull) {
		t.Fatalf("expected room full error, got %v", err)
	}
	members, _ = registry.Find("room-1")
	if len(members) != 2 {
		t.Fatalf("rejected admit changed membership, got %d members", len(members))
	}
}

func TestTryAdmitSameConnIdempotent(t *testing.T) {
	registry := NewRegistry()
	p := testParticipant("c1", "u1", model.InterviewRoleInterviewer)

	if _, err := registry.TryAdmit("room-1", p); err != nil {
		t.Fatalf("admit failed: %v", err)
	}
	members, err := registry.TryAdmit("room-1", p)
	if err != nil {
		t.Fatalf("re-admit failed: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("re-admit duplicated participant, got %d members", len(members))
	}
}

func TestTryAdmitConcurrent(t *testing.T) {
	registry := NewRegistry()

	const attempts = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted, rejected := 0, 0
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := testParticipant(fmt.Sprintf("c%d", i), fmt.Sprintf("u%d", i), model.InterviewRoleCandidate)
			_, err := registry.TryAdmit("room-1", p)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				admitted++
			} else if errors2.Is(err, errors2.ServerErrorRoomFull) {
				rejected++
			} else {
				t.Errorf("unexpected admit error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if admitted != RoomCapacity {
		t.Fatalf("expected exactly %d admissions, got %d", RoomCapacity, admitted)
	}
	if rejected != attempts-RoomCapacity {
		t.Fatalf("expected %d rejections, got %d", attempts-RoomCapacity, rejected)
	}
	members, _ := registry.Find("room-1")
	if len(members) != RoomCapacity {
		t.Fatalf("expected %d members after race, got %d", RoomCapacity, len(members))
	}
}

func TestRemove(t *testing.T) {
	registry := NewRegistry()
	registry.TryAdmit("room-1", testParticipant("c1", "u1", model.InterviewRoleInterviewer))
	registry.TryAdmit("room-1", testParticipant("c2", "u2", model.InterviewRoleCandidate))

	removed, remaining, empty := registry.Remove("room-1", "c1")
	if removed == nil || removed.UserID != "u1" {
		t.Fatalf("expected to remove u1, got %v", removed)
	}
	if empty || len(remaining) != 1 {
		t.Fatalf("expected 1 remaining member, got %d, empty=%v", len(remaining), empty)
	}

	removed, remaining, empty = registry.Remove("room-1", "c2")
	if removed == nil || !empty || len(remaining) != 0 {
		t.Fatalf("expected emptied room, removed=%v remaining=%d empty=%v", removed, len(remaining), empty)
	}
	if _, ok := registry.Find("room-1"); ok {
		t.Fatal("emptied room should have been deleted")
	}
}

func TestRemoveUnknownConn(t *testing.T) {
	registry := NewRegistry()
	registry.TryAdmit("room-1", testParticipant("c1", "u1", model.InterviewRoleInterviewer))

	removed, remaining, empty := registry.Remove("room-1", "nope")
	if removed != nil {
		t.Fatalf("expected no removal, got %v", removed)
	}
	if empty || len(remaining) != 1 {
		t.Fatalf("membership should be untouched, got %d members, empty=%v", len(remaining), empty)
	}
}

func TestRoomsContaining(t *testing.T) {
	registry := NewRegistry()
	registry.TryAdmit("room-1", testParticipant("c1", "u1", model.InterviewRoleInterviewer))
	registry.TryAdmit("room-2", testParticipant("c2", "u2", model.InterviewRoleCandidate))

	rooms := registry.RoomsContaining("c1")
	if len(rooms) != 1 || rooms[0] != "room-1" {
		t.Fatalf("expected [room-1], got %v", rooms)
	}
	if rooms := registry.RoomsContaining("nope"); len(rooms) != 0 {
		t.Fatalf("expected no rooms, got %v", rooms)
	}
}
