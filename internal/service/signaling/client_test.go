package signaling

import (
	"testing"
	"time"

	"github.com/qiniu/x/xlog"

	errors2 "github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/protodef/errors"
	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/protodef/model"
)

func newTestClient(h *Hub, userID, connID string) *Client {
	identity := model.Identity{UserID: userID, Nickname: userID}
	return NewClient(h, nil, identity, connID, xlog.New("client-test"))
}

func drain(t *testing.T, c *Client) *model.SocketEvent {
	t.Helper()
	select {
	case e := <-c.send:
		return e
	default:
		t.Fatal("expected a queued event")
		return nil
	}
}

func TestDispatchJoinRoom(t *testing.T) {
	h, _ := newTestHub(time.Now())
	c := newTestClient(h, testInterviewerID, "c1")

	c.dispatch([]byte(`{"event":"join-room","data":{"roomId":"` + testRoomID + `"}}`))

	e := drain(t, c)
	if e.Event != model.EventRoomJoined || !e.Success {
		t.Fatalf("expected room-joined, got %+v", e)
	}
	if rooms := h.registry.RoomsContaining("c1"); len(rooms) != 1 {
		t.Fatalf("expected membership after join, got %v", rooms)
	}
}

func TestDispatchUnknownEvent(t *testing.T) {
	h, _ := newTestHub(time.Now())
	c := newTestClient(h, testInterviewerID, "c1")

	c.dispatch([]byte(`{"event":"self-destruct"}`))

	e := drain(t, c)
	if e.Event != model.EventError || failCode(e) != errors2.ServerErrorValidation {
		t.Fatalf("expected validation error, got %+v", e)
	}
}

func TestDispatchMissingEvent(t *testing.T) {
	h, _ := newTestHub(time.Now())
	c := newTestClient(h, testInterviewerID, "c1")

	c.dispatch([]byte(`{"roomId":"r"}`))

	e := drain(t, c)
	if e.Event != model.EventError {
		t.Fatalf("expected error event, got %+v", e)
	}
}

func TestDispatchInvalidPayload(t *testing.T) {
	h, _ := newTestHub(time.Now())
	c := newTestClient(h, testInterviewerID, "c1")

	c.dispatch([]byte(`{"event":"join-room","data":{"roomId":""}}`))

	e := drain(t, c)
	if e.Event != model.EventError || failCode(e) != errors2.ServerErrorValidation {
		t.Fatalf("expected validation error, got %+v", e)
	}
	if rooms := h.registry.RoomsContaining("c1"); len(rooms) != 0 {
		t.Fatal("invalid payload must not reach room state")
	}
}

func TestDispatchToggleMissingEnabled(t *testing.T) {
	h, _ := newTestHub(time.Now())
	c := newTestClient(h, testInterviewerID, "c1")
	c.dispatch([]byte(`{"event":"join-room","data":{"roomId":"` + testRoomID + `"}}`))
	drain(t, c)

	c.dispatch([]byte(`{"event":"toggle-video","data":{"roomId":"` + testRoomID + `"}}`))

	e := drain(t, c)
	if e.Event != model.EventError || failCode(e) != errors2.ServerErrorValidation {
		t.Fatalf("expected validation error for missing enabled, got %+v", e)
	}
}

func TestPushDropsWhenBufferFull(t *testing.T) {
	h, _ := newTestHub(time.Now())
	c := newTestClient(h, testInterviewerID, "c1")

	for i := 0; i < sendBuffer+10; i++ {
		c.Push(model.NewSuccessEvent(model.EventParticipantJoined, "", nil))
	}
	if len(c.send) != sendBuffer {
		t.Fatalf("expected full buffer of %d, got %d", sendBuffer, len(c.send))
	}
}
