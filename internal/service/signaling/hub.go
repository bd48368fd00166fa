package signaling

import (
	"encoding/json"
	"time"

	"github.com/qiniu/x/xlog"

	errors2 "github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/protodef/errors"
	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/protodef/form"
	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/protodef/model"
)

// SessionStore the durable interview store consumed by the signaling
// namespace. Implemented by db.InterviewService.
type SessionStore interface {
	FindActiveByRoom(xl *xlog.Logger, roomID string) (*model.InterviewDo, error)
	FindEligibleForJoin(xl *xlog.Logger, roomID, userID string, now time.Time) (*model.InterviewDo, error)
	UpdateOnStart(xl *xlog.Logger, interviewID string, startedAt time.Time, remarks string) (bool, error)
	UpdateOnComplete(xl *xlog.Logger, interviewID string, endedAt time.Time, remarks string) (bool, error)
}

// RTCTokenProvider mints media room tokens carried in the room-joined
// payload. Implemented by cloud.RTCService.
type RTCTokenProvider interface {
	RoomToken(roomID, userID, permission string) string
}

// IMTokenProvider issues IM tokens for the text channel next to the call.
// Implemented by cloud.RongCloudIMService.
type IMTokenProvider interface {
	UserToken(xl *xlog.Logger, userID, name string) (string, error)
}

// Hub coordinates the interview rooms: admission, lifecycle transitions,
// signal relay and cleanup. All durable writes are best-effort; in-memory
// room state is cleaned up even when the store is unreachable so no
// phantom rooms are left behind.
type Hub struct {
	registry Registry
	store    SessionStore
	// RTC and IM are optional; when nil the corresponding token fields of
	// room-joined stay empty.
	RTC RTCTokenProvider
	IM  IMTokenProvider
	// Now is the clock, replaceable in tests.
	Now func() time.Time
	xl  *xlog.Logger
}

func NewHub(registry Registry, store SessionStore, xl *xlog.Logger) *Hub {
	if xl == nil {
		xl = xlog.New("interview-hub")
	}
	return &Hub{
		registry: registry,
		store:    store,
		Now:      time.Now,
		xl:       xl,
	}
}

// JoinRoom admits the caller into the room after authorization against the
// schedule. The first admission of a scheduled interview starts the call.
func (h *Hub) JoinRoom(xl *xlog.Logger, identity model.Identity, connID string, caller Pusher, f *form.JoinRoomForm) {
	if xl == nil {
		xl = h.xl
	}
	interview, err := h.store.FindEligibleForJoin(xl, f.RoomID, identity.UserID, h.Now())
	if err != nil {
		caller.Push(failEvent(err))
		return
	}
	// The schedule, not the credential, decides which side of the table
	// the caller sits on.
	identity.Role = interview.RoleOf(identity.UserID)
	participant := NewParticipant(connID, identity, caller)

	members, err := h.registry.TryAdmit(f.RoomID, participant)
	if err != nil {
		if errors2.Is(err, errors2.ServerErrorRoomFull) {
			xl.Infof("user %s rejected from full room %s", identity.UserID, f.RoomID)
			caller.Push(model.NewFailEvent(model.EventRoomFull, "room is full", errors2.ServerErrorRoomFull))
			return
		}
		caller.Push(failEvent(err))
		return
	}
	xl.Infof("user %s joined room %s as %s, %d online", identity.UserID, f.RoomID, identity.Role, len(members))

	if len(members) == 1 {
		h.startCall(xl, interview)
	}

	data := &model.RoomJoinedData{
		ConnID:       connID,
		Interview:    interview,
		Participants: infos(members),
	}
	if h.RTC != nil {
		permission := "user"
		if identity.Role == model.InterviewRoleInterviewer {
			permission = "admin"
		}
		data.RTCToken = h.RTC.RoomToken(f.RoomID, identity.UserID, permission)
	}
	if h.IM != nil {
		imToken, err := h.IM.UserToken(xl, identity.UserID, identity.Nickname)
		if err != nil {
			xl.Errorf("failed to get im token for user %s, error %v", identity.UserID, err)
		}
		data.IMToken = imToken
	}
	caller.Push(model.NewSuccessEvent(model.EventRoomJoined, "joined room", data))

	joined := model.NewSuccessEvent(model.EventParticipantJoined, "participant joined", participant.Info())
	for _, m := range members {
		if m.ConnID != connID {
			m.Push(joined)
		}
	}
}

// LeaveRoom handles an explicit leave-room action.
func (h *Hub) LeaveRoom(xl *xlog.Logger, connID string, caller Pusher, f *form.LeaveRoomForm) {
	if xl == nil {
		xl = h.xl
	}
	if !h.leave(xl, f.RoomID, connID, false) {
		caller.Push(model.NewFailEvent(model.EventError, "not a participant of this room", errors2.ServerErrorNoPermission))
		return
	}
	caller.Push(model.NewSuccessEvent(model.EventParticipantLeft, "left room", nil))
}

// EndCall handles the interviewer's explicit termination: the session is
// finalized and every other participant is removed and notified. Ending an
// already finalized call tears the room down without touching the store.
func (h *Hub) EndCall(xl *xlog.Logger, connID string, caller Pusher, f *form.EndCallForm) {
	if xl == nil {
		xl = h.xl
	}
	members, ok := h.registry.Find(f.RoomID)
	sender := findByConn(members, connID)
	if !ok || sender == nil {
		caller.Push(model.NewFailEvent(model.EventError, "not a participant of this room", errors2.ServerErrorNoPermission))
		return
	}
	if sender.Role != model.InterviewRoleInterviewer {
		xl.Infof("user %s tried to end call %s without permission", sender.UserID, f.RoomID)
		caller.Push(model.NewFailEvent(model.EventError, "only the interviewer may end the call", errors2.ServerErrorNoPermission))
		return
	}

	interview, err := h.store.FindActiveByRoom(xl, f.RoomID)
	if err != nil {
		if !errors2.Is(err, errors2.ServerErrorInterviewNotFound) {
			xl.Errorf("failed to load interview for room %s on end-call, error %v", f.RoomID, err)
		}
		// Cleanup still proceeds; the durable side is already settled or
		// unreachable.
	} else {
		h.finalize(xl, interview, CallEventEndCall)
	}

	ended := model.NewSuccessEvent(model.EventCallEnded, "call ended", nil)
	for _, m := range members {
		h.registry.Remove(f.RoomID, m.ConnID)
		m.Push(ended)
	}
	xl.Infof("call %s ended by interviewer %s", f.RoomID, sender.UserID)
}

// Relay forwards one negotiation message (offer, answer, ice-candidate) to
// the targeted participant of the same room. Sender and target are looked
// up by connection id; a failed relay surfaces an error event to the
// caller and mutates nothing.
func (h *Hub) Relay(xl *xlog.Logger, connID string, caller Pusher, event string, f *form.SignalForm) {
	if xl == nil {
		xl = h.xl
	}
	members, _ := h.registry.Find(f.RoomID)
	sender := findByConn(members, connID)
	if sender == nil {
		caller.Push(model.NewFailEvent(model.EventError, "not a participant of this room", errors2.ServerErrorNoPermission))
		return
	}
	target := findByConn(members, f.TargetID)
	if target == nil || target.ConnID == connID {
		xl.Infof("relay %s in room %s to unknown target %s", event, f.RoomID, f.TargetID)
		caller.Push(model.NewFailEvent(model.EventError, "unknown target participant", errors2.ServerErrorValidation))
		return
	}
	target.Push(model.NewSuccessEvent(event, "", &model.SignalData{
		From:    sender.Info(),
		Payload: json.RawMessage(f.Payload),
	}))
}

// Toggle broadcasts a presence toggle (video/audio enabled) to every other
// participant, annotated with the sender's identity. Not persisted.
func (h *Hub) Toggle(xl *xlog.Logger, connID string, caller Pusher, event string, f *form.ToggleForm) {
	if xl == nil {
		xl = h.xl
	}
	members, _ := h.registry.Find(f.RoomID)
	sender := findByConn(members, connID)
	if sender == nil {
		caller.Push(model.NewFailEvent(model.EventError, "not a participant of this room", errors2.ServerErrorNoPermission))
		return
	}
	var out string
	switch event {
	case model.EventToggleVideo:
		out = model.EventUserToggleVideo
	case model.EventToggleAudio:
		out = model.EventUserToggleAudio
	default:
		caller.Push(model.NewFailEvent(model.EventError, "unknown toggle", errors2.ServerErrorValidation))
		return
	}
	toggled := model.NewSuccessEvent(out, "", &model.ToggleData{
		From:    sender.Info(),
		Enabled: *f.Enabled,
	})
	for _, m := range members {
		if m.ConnID != connID {
			m.Push(toggled)
		}
	}
}

// Disconnect reacts to abrupt connection loss. It runs the ordinary leave
// path for every room the connection is found in and never fails the
// disconnect itself.
func (h *Hub) Disconnect(xl *xlog.Logger, connID string) {
	if xl == nil {
		xl = h.xl
	}
	for _, roomID := range h.registry.RoomsContaining(connID) {
		h.leave(xl, roomID, connID, true)
	}
}

// leave removes the connection from the room and drives the lifecycle:
// an interviewer departure while the call is under way finalizes the
// session immediately, a candidate departure leaves the interviewer's
// room open, and an emptied ongoing room is finalized as an implicit end.
// Reports whether the connection was a participant.
func (h *Hub) leave(xl *xlog.Logger, roomID, connID string, ungraceful bool) bool {
	removed, remaining, empty := h.registry.Remove(roomID, connID)
	if removed == nil {
		return false
	}
	xl.Infof("user %s left room %s, %d remaining", removed.UserID, roomID, len(remaining))

	left := model.NewSuccessEvent(model.EventParticipantLeft, "participant left", removed.Info())
	for _, m := range remaining {
		m.Push(left)
	}

	interview, err := h.store.FindActiveByRoom(xl, roomID)
	if err != nil {
		if !errors2.Is(err, errors2.ServerErrorInterviewNotFound) {
			xl.Errorf("failed to load interview for room %s on leave, error %v", roomID, err)
		}
		return true
	}

	if removed.Role == model.InterviewRoleInterviewer && interview.Status == model.InterviewStatusOngoing {
		if ungraceful {
			gone := model.NewSuccessEvent(model.EventInterviewerDisconnected, "interviewer disconnected", removed.Info())
			for _, m := range remaining {
				m.Push(gone)
			}
		}
		h.finalize(xl, interview, CallEventInterviewerGone)
		return true
	}
	if empty {
		h.finalize(xl, interview, CallEventRoomEmptied)
	}
	return true
}

// startCall transitions a scheduled interview to ongoing. Store failures
// are logged; the room keeps working either way.
func (h *Hub) startCall(xl *xlog.Logger, interview *model.InterviewDo) {
	next, fire := NextStatus(interview.Status, CallEventFirstJoin)
	if !fire {
		return
	}
	startedAt := h.Now()
	remarks := RemarksOngoing(startedAt)
	updated, err := h.store.UpdateOnStart(xl, interview.ID, startedAt, remarks)
	if err != nil {
		xl.Errorf("failed to start call for interview %s, error %v", interview.ID, err)
		return
	}
	if updated {
		interview.Status = next
		interview.CallStartedAt = &startedAt
		interview.Remarks = remarks
	}
}

// finalize marks the session completed. Skipped entirely when the current
// status does not advance on the event, so racing cleanup paths are no-ops.
func (h *Hub) finalize(xl *xlog.Logger, interview *model.InterviewDo, event CallEvent) {
	next, fire := NextStatus(interview.Status, event)
	if !fire {
		return
	}
	endedAt := h.Now()
	if interview.CallStartedAt != nil && !endedAt.After(*interview.CallStartedAt) {
		// callEndedAt must be strictly after callStartedAt.
		endedAt = interview.CallStartedAt.Add(time.Millisecond)
	}
	remarks := RemarksCompleted(interview.CallStartedAt, endedAt)
	updated, err := h.store.UpdateOnComplete(xl, interview.ID, endedAt, remarks)
	if err != nil {
		xl.Errorf("failed to finalize interview %s, error %v", interview.ID, err)
		return
	}
	if updated {
		interview.Status = next
		interview.CallEndedAt = &endedAt
		interview.Remarks = remarks
	}
}

func failEvent(err error) *model.SocketEvent {
	if serverErr, ok := err.(*errors2.ServerError); ok {
		return model.NewFailEvent(model.EventError, serverErr.Summary, serverErr.Code)
	}
	return model.NewFailEvent(model.EventError, "internal error", errors2.ServerErrorMongoOpFail)
}

func findByConn(members []*Participant, connID string) *Participant {
	for _, m := range members {
		if m.ConnID == connID {
			return m
		}
	}
	return nil
}

func infos(members []*Participant) []model.ParticipantInfo {
	out := make([]model.ParticipantInfo, 0, len(members))
	for _, m := range members {
		out = append(out, m.Info())
	}
	return out
}
