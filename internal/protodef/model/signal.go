package model

// Inbound socket events accepted on the interview namespace.
const (
	EventJoinRoom     = "join-room"
	EventLeaveRoom    = "leave-room"
	EventEndCall      = "end-call"
	EventOffer        = "offer"
	EventAnswer       = "answer"
	EventIceCandidate = "ice-candidate"
	EventToggleVideo  = "toggle-video"
	EventToggleAudio  = "toggle-audio"
)

// Outbound socket events produced toward connected clients.
const (
	EventRoomJoined              = "room-joined"
	EventParticipantJoined       = "participant-joined"
	EventParticipantLeft         = "participant-left"
	EventRoomFull                = "room-full"
	EventCallEnded               = "call-ended"
	EventInterviewerDisconnected = "interviewer-disconnected"
	EventUserToggleVideo         = "user-toggle-video"
	EventUserToggleAudio         = "user-toggle-audio"
	EventError                   = "error"
)

// SocketEvent wire envelope for every S2C message.
type SocketEvent struct {
	Event   string      `json:"event"`
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessEvent(event, message string, data interface{}) *SocketEvent {
	return &SocketEvent{Event: event, Success: true, Message: message, Data: data}
}

func NewFailEvent(event, message string, code int) *SocketEvent {
	return &SocketEvent{
		Event:   event,
		Success: false,
		Message: message,
		Data:    map[string]int{"code": code},
	}
}

// ParticipantInfo identity of one admitted participant as pushed to peers.
// ConnID is the connection-scoped id signaling messages are targeted by;
// it changes when a party reconnects.
type ParticipantInfo struct {
	ConnID   string        `json:"connId"`
	UserID   string        `json:"userId"`
	Nickname string        `json:"nickname"`
	Role     InterviewRole `json:"role"`
}

// RoomJoinedData payload of the room-joined event sent to the caller.
type RoomJoinedData struct {
	ConnID       string            `json:"connId"`
	Interview    *InterviewDo      `json:"interview"`
	Participants []ParticipantInfo `json:"participants"`
	RTCToken     string            `json:"rtcToken,omitempty"`
	IMToken      string            `json:"imToken,omitempty"`
}

// SignalData payload of a relayed offer/answer/ice-candidate event.
type SignalData struct {
	From    ParticipantInfo `json:"from"`
	Payload interface{}     `json:"payload"`
}

// ToggleData payload of a user-toggle-video/user-toggle-audio event.
type ToggleData struct {
	From    ParticipantInfo `json:"from"`
	Enabled bool            `json:"enabled"`
}
