package signaling

import (
	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/protodef/model"
)

// Pusher delivers one outbound event to a connected client. Push must not
// block the caller; implementations drop the event when the peer's buffer
// is exhausted.
type Pusher interface {
	Push(event *model.SocketEvent)
}

// Participant one connected identity currently admitted to a room. Owned
// by the registry; created on successful join, removed on leave or
// disconnect, never persisted.
type Participant struct {
	ConnID   string
	UserID   string
	Nickname string
	Role     model.InterviewRole
	pusher   Pusher
}

func NewParticipant(connID string, identity model.Identity, pusher Pusher) *Participant {
	return &Participant{
		ConnID:   connID,
		UserID:   identity.UserID,
		Nickname: identity.Nickname,
		Role:     identity.Role,
		pusher:   pusher,
	}
}

func (p *Participant) Push(event *model.SocketEvent) {
	if p.pusher != nil {
		p.pusher.Push(event)
	}
}

func (p *Participant) Info() model.ParticipantInfo {
	return model.ParticipantInfo{
		ConnID:   p.ConnID,
		UserID:   p.UserID,
		Nickname: p.Nickname,
		Role:     p.Role,
	}
}
