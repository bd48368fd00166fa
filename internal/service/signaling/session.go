package signaling

import (
	"fmt"
	"time"

	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/protodef/model"
)

// CallEvent a membership transition the session lifecycle reacts to.
type CallEvent int

const (
	// CallEventFirstJoin the first participant was admitted to the room.
	CallEventFirstJoin CallEvent = iota
	// CallEventEndCall the interviewer explicitly ended the call.
	CallEventEndCall
	// CallEventRoomEmptied the room emptied through ordinary leave or
	// disconnect without an explicit end.
	CallEventRoomEmptied
	// CallEventInterviewerGone the interviewer left or dropped while the
	// call was under way.
	CallEventInterviewerGone
)

// NextStatus is the single transition function of the session lifecycle:
// (current status, event) -> (next status, fire). fire is false for every
// combination the lifecycle does not advance on, which makes racing
// cleanup paths idempotent: a second end-call against a completed session
// simply does not fire.
//
//	scheduled --first join--> ongoing
//	scheduled --end call----> completed
//	ongoing   --end call----> completed
//	ongoing   --emptied-----> completed
//	ongoing   --interviewer gone--> completed
//
// completed and cancelled are terminal; cancelled is assigned by the
// scheduling side and only respected here.
func NextStatus(current model.InterviewStatus, event CallEvent) (model.InterviewStatus, bool) {
	switch current {
	case model.InterviewStatusScheduled:
		switch event {
		case CallEventFirstJoin:
			return model.InterviewStatusOngoing, true
		case CallEventEndCall:
			return model.InterviewStatusCompleted, true
		}
	case model.InterviewStatusOngoing:
		switch event {
		case CallEventEndCall, CallEventRoomEmptied, CallEventInterviewerGone:
			return model.InterviewStatusCompleted, true
		}
	}
	return current, false
}

const remarksTimeLayout = "2006-01-02 15:04"

// RemarksOngoing human-readable remarks for an interview whose call is in
// progress.
func RemarksOngoing(startedAt time.Time) string {
	return fmt.Sprintf("Call in progress since %s.", startedAt.Format(remarksTimeLayout))
}

// RemarksCompleted human-readable remarks for a completed interview call.
func RemarksCompleted(startedAt *time.Time, endedAt time.Time) string {
	if startedAt == nil {
		return fmt.Sprintf("Call ended at %s before it started.", endedAt.Format(remarksTimeLayout))
	}
	duration := endedAt.Sub(*startedAt).Round(time.Second)
	return fmt.Sprintf("Call completed at %s, duration %s.", endedAt.Format(remarksTimeLayout), duration)
}
