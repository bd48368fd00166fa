package signaling

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/qiniu/x/xlog"
	"github.com/tidwall/gjson"

	errors2 "github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/protodef/errors"
	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/protodef/form"
	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/protodef/model"
)

const (
	// writeWait time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// pongWait time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// pingPeriod must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// maxMessageSize is generous enough for SDP payloads.
	maxMessageSize = 64 * 1024
	// sendBuffer outbound events queued per connection before drops.
	sendBuffer = 256
)

// Client wraps one authenticated socket connection on the interview
// namespace. The verified identity is attached for the connection's whole
// lifetime; the connection id is what rooms and relays key on.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	identity model.Identity
	connID   string
	send     chan *model.SocketEvent
	done     chan struct{}
	xl       *xlog.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, identity model.Identity, connID string, xl *xlog.Logger) *Client {
	if xl == nil {
		xl = xlog.New("interview-socket-" + connID)
	}
	return &Client{
		hub:      hub,
		conn:     conn,
		identity: identity,
		connID:   connID,
		send:     make(chan *model.SocketEvent, sendBuffer),
		done:     make(chan struct{}),
		xl:       xl,
	}
}

// Push queues one outbound event. Events are dropped, not blocked on, when
// the peer stops draining its buffer; the ping/pong deadline will tear the
// connection down shortly after.
func (c *Client) Push(event *model.SocketEvent) {
	select {
	case c.send <- event:
	default:
		c.xl.Errorf("send buffer full for conn %s, dropping %s", c.connID, event.Event)
	}
}

// ReadPump pumps inbound events from the connection into the hub. It is
// the only reader of the connection; on any read error the connection is
// treated as lost and the disconnect path runs.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Disconnect(c.xl, c.connID)
		c.conn.Close()
		// send stays open: other participants' handlers may still hold a
		// snapshot with this client and push into it.
		close(c.done)
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.xl.Infof("conn %s closed unexpectedly, error %v", c.connID, err)
			}
			return
		}
		c.dispatch(raw)
	}
}

// WritePump pumps queued events to the connection and keeps it alive with
// pings. It is the only writer of the connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case event := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(event); err != nil {
				c.xl.Errorf("failed to write to conn %s, error %v", c.connID, err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// dispatch demultiplexes one raw frame by its event field and hands the
// validated payload to the hub. Malformed frames answer with an error
// event and never reach room state.
func (c *Client) dispatch(raw []byte) {
	event := gjson.GetBytes(raw, "event").String()
	if event == "" {
		c.Push(model.NewFailEvent(model.EventError, "missing event field", errors2.ServerErrorValidation))
		return
	}
	switch event {
	case model.EventJoinRoom:
		f := &form.JoinRoomForm{}
		if !c.bind(raw, f) {
			return
		}
		c.hub.JoinRoom(c.xl, c.identity, c.connID, c, f)
	case model.EventLeaveRoom:
		f := &form.LeaveRoomForm{}
		if !c.bind(raw, f) {
			return
		}
		c.hub.LeaveRoom(c.xl, c.connID, c, f)
	case model.EventEndCall:
		f := &form.EndCallForm{}
		if !c.bind(raw, f) {
			return
		}
		c.hub.EndCall(c.xl, c.connID, c, f)
	case model.EventOffer, model.EventAnswer, model.EventIceCandidate:
		f := &form.SignalForm{}
		if !c.bind(raw, f) {
			return
		}
		c.hub.Relay(c.xl, c.connID, c, event, f)
	case model.EventToggleVideo, model.EventToggleAudio:
		f := &form.ToggleForm{}
		if !c.bind(raw, f) {
			return
		}
		c.hub.Toggle(c.xl, c.connID, c, event, f)
	default:
		c.xl.Debugf("unknown event %s from conn %s", event, c.connID)
		c.Push(model.NewFailEvent(model.EventError, "unknown event", errors2.ServerErrorValidation))
	}
}

type validator interface {
	Validate() error
}

// bind unmarshals the frame's data object into the form and validates it.
func (c *Client) bind(raw []byte, f validator) bool {
	data := gjson.GetBytes(raw, "data")
	if data.Exists() {
		raw = []byte(data.Raw)
	}
	if err := json.Unmarshal(raw, f); err != nil {
		c.xl.Infof("malformed %s payload from conn %s, error %v", gjson.GetBytes(raw, "event").String(), c.connID, err)
		c.Push(model.NewFailEvent(model.EventError, "malformed payload", errors2.ServerErrorValidation))
		return false
	}
	if err := f.Validate(); err != nil {
		c.Push(model.NewFailEvent(model.EventError, err.Error(), errors2.ServerErrorValidation))
		return false
	}
	return true
}
