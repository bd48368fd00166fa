package form

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RoomForm payload of join-room, leave-room and end-call events.
type RoomForm struct {
	RoomID string `json:"roomId"`
}

type JoinRoomForm = RoomForm
type LeaveRoomForm = RoomForm
type EndCallForm = RoomForm

func (f *RoomForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.RoomID, validation.Required, validation.Length(1, 64)),
	)
}

// SignalForm payload of offer, answer and ice-candidate events. TargetID
// is the connection id of the peer the negotiation message is addressed to.
type SignalForm struct {
	RoomID   string          `json:"roomId"`
	TargetID string          `json:"targetId"`
	Payload  json.RawMessage `json:"payload"`
}

func (f *SignalForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.RoomID, validation.Required, validation.Length(1, 64)),
		validation.Field(&f.TargetID, validation.Required),
		validation.Field(&f.Payload, validation.Required.Error("payload must not be empty")),
	)
}

// ToggleForm payload of toggle-video and toggle-audio events. Enabled is a
// pointer so a missing or non-boolean value fails validation instead of
// defaulting to false.
type ToggleForm struct {
	RoomID  string `json:"roomId"`
	Enabled *bool  `json:"enabled"`
}

func (f *ToggleForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.RoomID, validation.Required, validation.Length(1, 64)),
		validation.Field(&f.Enabled, validation.NotNil.Error("enabled must be a boolean")),
	)
}
