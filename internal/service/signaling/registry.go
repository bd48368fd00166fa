package signaling

import (
	"sync"

	errors2 "github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/protodef/errors"
)

// RoomCapacity an interview call is exactly two parties.
const RoomCapacity = 2

// Registry the process-wide mapping from room id to admitted participants.
// It is the only mutable shared state of the signaling namespace; keeping
// it behind an interface lets the relay and session logic run unchanged if
// the backing store is ever moved out of process.
type Registry interface {
	// TryAdmit adds p to the room, creating it lazily, and returns the
	// membership snapshot after the add. The capacity check and the insert
	// are one atomic step: of N racing admissions at most RoomCapacity
	// succeed, the rest get a room-full error. Re-admitting the same
	// connection is a no-op returning the current snapshot.
	TryAdmit(roomID string, p *Participant) ([]*Participant, error)
	// Remove deletes the participant with the given connection id, if
	// present. It returns the removed participant, the remaining members
	// and whether the room is now empty; empty rooms are deleted so the
	// registry never leaks them.
	Remove(roomID, connID string) (removed *Participant, remaining []*Participant, empty bool)
	// Find returns the membership snapshot of a room.
	Find(roomID string) ([]*Participant, bool)
	// RoomsContaining lists every room the connection belongs to. A
	// connection should be in at most one room, but disconnect handling
	// must not assume that.
	RoomsContaining(connID string) []string
}

type memoryRegistry struct {
	mu    sync.Mutex
	rooms map[string][]*Participant
}

func NewRegistry() Registry {
	return &memoryRegistry{rooms: make(map[string][]*Participant)}
}

func (r *memoryRegistry) TryAdmit(roomID string, p *Participant) ([]*Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	members := r.rooms[roomID]
	for _, m := range members {
		if m.ConnID == p.ConnID {
			return snapshot(members), nil
		}
	}
	if len(members) >= RoomCapacity {
		return nil, errors2.New(errors2.ServerErrorRoomFull, "room is full")
	}
	members = append(members, p)
	r.rooms[roomID] = members
	return snapshot(members), nil
}

func (r *memoryRegistry) Remove(roomID, connID string) (*Participant, []*Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	members, ok := r.rooms[roomID]
	if !ok {
		return nil, nil, true
	}
	var removed *Participant
	kept := members[:0]
	for _, m := range members {
		if m.ConnID == connID && removed == nil {
			removed = m
			continue
		}
		kept = append(kept, m)
	}
	if len(kept) == 0 {
		delete(r.rooms, roomID)
		return removed, nil, true
	}
	r.rooms[roomID] = kept
	return removed, snapshot(kept), false
}

func (r *memoryRegistry) Find(roomID string) ([]*Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	members, ok := r.rooms[roomID]
	return snapshot(members), ok
}

func (r *memoryRegistry) RoomsContaining(connID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var roomIDs []string
	for roomID, members := range r.rooms {
		for _, m := range members {
			if m.ConnID == connID {
				roomIDs = append(roomIDs, roomID)
				break
			}
		}
	}
	return roomIDs
}

func snapshot(members []*Participant) []*Participant {
	out := make([]*Participant, len(members))
	copy(out, members)
	return out
}
