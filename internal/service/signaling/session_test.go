package signaling

import (
	"strings"
	"testing"
	"time"

	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/protodef/model"
)

func TestNextStatus(t *testing.T) {
	cases := []struct {
		name    string
		current model.InterviewStatus
		event   CallEvent
		next    model.InterviewStatus
		fire    bool
	}{
		{"scheduled first join starts", model.InterviewStatusScheduled, CallEventFirstJoin, model.InterviewStatusOngoing, true},
		{"scheduled end call completes", model.InterviewStatusScheduled, CallEventEndCall, model.InterviewStatusCompleted, true},
		{"scheduled emptied is noop", model.InterviewStatusScheduled, CallEventRoomEmptied, model.InterviewStatusScheduled, false},
		{"scheduled interviewer gone is noop", model.InterviewStatusScheduled, CallEventInterviewerGone, model.InterviewStatusScheduled, false},
		{"ongoing first join is noop", model.InterviewStatusOngoing, CallEventFirstJoin, model.InterviewStatusOngoing, false},
		{"ongoing end call completes", model.InterviewStatusOngoing, CallEventEndCall, model.InterviewStatusCompleted, true},
		{"ongoing emptied completes", model.InterviewStatusOngoing, CallEventRoomEmptied, model.InterviewStatusCompleted, true},
		{"ongoing interviewer gone completes", model.InterviewStatusOngoing, CallEventInterviewerGone, model.InterviewStatusCompleted, true},
		{"completed is terminal", model.InterviewStatusCompleted, CallEventEndCall, model.InterviewStatusCompleted, false},
		{"completed ignores joins", model.InterviewStatusCompleted, CallEventFirstJoin, model.InterviewStatusCompleted, false},
		{"cancelled is terminal", model.InterviewStatusCancelled, CallEventFirstJoin, model.InterviewStatusCancelled, false},
		{"cancelled ignores end call", model.InterviewStatusCancelled, CallEventEndCall, model.InterviewStatusCancelled, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			next, fire := NextStatus(c.current, c.event)
			if next != c.next || fire != c.fire {
				t.Fatalf("NextStatus(%s, %d) = (%s, %v), want (%s, %v)", c.current, c.event, next, fire, c.next, c.fire)
			}
		})
	}
}

func TestNextStatusNeverMovesBackward(t *testing.T) {
	rank := map[model.InterviewStatus]int{
		model.InterviewStatusScheduled: 0,
		model.InterviewStatusOngoing:   1,
		model.InterviewStatusCompleted: 2,
		model.InterviewStatusCancelled: 2,
	}
	events := []CallEvent{CallEventFirstJoin, CallEventEndCall, CallEventRoomEmptied, CallEventInterviewerGone}
	for current := range rank {
		for _, event := range events {
			next, fire := NextStatus(current, event)
			if rank[next] < rank[current] {
				t.Fatalf("NextStatus(%s, %d) moved backward to %s", current, event, next)
			}
			if !fire && next != current {
				t.Fatalf("NextStatus(%s, %d) changed status without firing", current, event)
			}
		}
	}
}

func TestRemarks(t *testing.T) {
	startedAt := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	endedAt := startedAt.Add(42 * time.Minute)

	ongoing := RemarksOngoing(startedAt)
	if !strings.Contains(ongoing, "2026-03-10 14:00") {
		t.Fatalf("unexpected ongoing remarks %q", ongoing)
	}

	completed := RemarksCompleted(&startedAt, endedAt)
	if !strings.Contains(completed, "14:42") || !strings.Contains(completed, "42m0s") {
		t.Fatalf("unexpected completed remarks %q", completed)
	}

	neverStarted := RemarksCompleted(nil, endedAt)
	if !strings.Contains(neverStarted, "before it started") {
		t.Fatalf("unexpected never-started remarks %q", neverStarted)
	}
}
