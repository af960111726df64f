package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Service is the external pop service.
type Service interface {
	CreateTracker(ctx context.Context, zoneKey int) (Session, error)
	Pop(ctx context.Context, trackerID uint16, session Session) error
}

// Phoenix channel events.
const (
	eventJoin  = "phx_join"
	eventReply = "phx_reply"
	eventError = "phx_error"

	eventCreate = "create_instance"
	eventPop    = "set_pop_time"

	lobbyTopic = "tracker:lobby"
)

// ClientConfig configures the websocket client.
type ClientConfig struct {
	// SocketURL is the websocket endpoint, e.g. wss://host/socket/websocket.
	SocketURL string
	// PublicURL prefixes instance ids to build shareable links.
	PublicURL        string
	HandshakeTimeout time.Duration
	ReplyTimeout     time.Duration
}

// Client talks to the tracker over a Phoenix channel websocket.
// Every call uses its own connection; the tracker is contacted rarely.
type Client struct {
	cfg ClientConfig
	ref atomic.Uint64
	now func() time.Time
}

// NewClient creates a tracker client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = 5 * time.Second
	}
	if cfg.ReplyTimeout <= 0 {
		cfg.ReplyTimeout = 10 * time.Second
	}
	return &Client{cfg: cfg, now: time.Now}
}

// frame is [join_ref, ref, topic, event, payload].
type frame struct {
	JoinRef *string
	Ref     *string
	Topic   string
	Event   string
	Payload json.RawMessage
}

func (f frame) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{f.JoinRef, f.Ref, f.Topic, f.Event, f.Payload})
}

func (f *frame) UnmarshalJSON(b []byte) error {
	var parts [5]json.RawMessage
	if err := json.Unmarshal(b, &parts); err != nil {
		return fmt.Errorf("decoding frame: %w", err)
	}
	if err := json.Unmarshal(parts[0], &f.JoinRef); err != nil {
		return fmt.Errorf("decoding join ref: %w", err)
	}
	if err := json.Unmarshal(parts[1], &f.Ref); err != nil {
		return fmt.Errorf("decoding ref: %w", err)
	}
	if err := json.Unmarshal(parts[2], &f.Topic); err != nil {
		return fmt.Errorf("decoding topic: %w", err)
	}
	if err := json.Unmarshal(parts[3], &f.Event); err != nil {
		return fmt.Errorf("decoding event: %w", err)
	}
	f.Payload = parts[4]
	return nil
}

type reply struct {
	Status   string          `json:"status"`
	Response json.RawMessage `json:"response"`
}

// CreateTracker opens a new tracker instance for the zone.
func (c *Client) CreateTracker(ctx context.Context, zoneKey int) (Session, error) {
	conn, closeConn, err := c.dial(ctx)
	if err != nil {
		return Session{}, err
	}
	defer closeConn()

	joinRef, err := c.join(ctx, conn, lobbyTopic, map[string]any{})
	if err != nil {
		return Session{}, err
	}

	resp, err := c.call(ctx, conn, joinRef, lobbyTopic, eventCreate, map[string]any{"zone_id": zoneKey})
	if err != nil {
		return Session{}, fmt.Errorf("creating tracker for zone %d: %w", zoneKey, err)
	}
	if err := validate(createValidator, resp); err != nil {
		return Session{}, fmt.Errorf("creating tracker for zone %d: %w", zoneKey, err)
	}

	var created struct {
		ID       string `json:"id"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(resp, &created); err != nil {
		return Session{}, fmt.Errorf("decoding create response: %w", err)
	}

	s := Session{Instance: c.instanceURL(created.ID), Password: created.Password}
	slog.Info("tracker created", "zone", zoneKey, "instance", s.Instance, "password", s.Fingerprint())
	return s, nil
}

// Pop marks the notorious monster trackerID as popped now.
func (c *Client) Pop(ctx context.Context, trackerID uint16, session Session) error {
	if !session.Configured() {
		return ErrNotConfigured
	}

	conn, closeConn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer closeConn()

	topic := "instance:" + session.InstanceID()
	joinRef, err := c.join(ctx, conn, topic, map[string]any{"password": session.Password})
	if err != nil {
		return err
	}

	payload := map[string]any{"id": trackerID, "time": c.now().UnixMilli()}
	if _, err := c.call(ctx, conn, joinRef, topic, eventPop, payload); err != nil {
		return fmt.Errorf("popping tracker id %d: %w", trackerID, err)
	}

	slog.Debug("tracker pop sent", "trackerID", trackerID, "instance", session.InstanceID())
	return nil
}

func (c *Client) instanceURL(id string) string {
	if c.cfg.PublicURL == "" {
		return id
	}
	return strings.TrimRight(c.cfg.PublicURL, "/") + "/" + id
}

// dial connects to the tracker. The returned close func must be called.
func (c *Client) dial(ctx context.Context) (*websocket.Conn, func(), error) {
	d := websocket.Dialer{HandshakeTimeout: c.cfg.HandshakeTimeout}
	conn, resp, err := d.DialContext(ctx, c.cfg.SocketURL, http.Header{})
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("dialing tracker %s: %w", c.cfg.SocketURL, err)
	}
	// ReadMessage does not watch ctx; closing the connection unblocks it.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	return conn, func() {
		stop()
		_ = conn.Close()
	}, nil
}

// join joins topic and returns the join ref.
func (c *Client) join(ctx context.Context, conn *websocket.Conn, topic string, payload any) (string, error) {
	ref := c.nextRef()
	if _, err := c.exchange(ctx, conn, ref, ref, topic, eventJoin, payload); err != nil {
		return "", fmt.Errorf("joining %s: %w", topic, err)
	}
	return ref, nil
}

// call pushes event on a joined topic and returns the reply response.
func (c *Client) call(ctx context.Context, conn *websocket.Conn, joinRef, topic, event string, payload any) (json.RawMessage, error) {
	return c.exchange(ctx, conn, joinRef, c.nextRef(), topic, event, payload)
}

func (c *Client) exchange(ctx context.Context, conn *websocket.Conn, joinRef, ref, topic, event string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", event, err)
	}

	deadline := time.Now().Add(c.cfg.ReplyTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	_ = conn.SetWriteDeadline(deadline)
	if err := conn.WriteJSON(frame{JoinRef: &joinRef, Ref: &ref, Topic: topic, Event: event, Payload: body}); err != nil {
		return nil, fmt.Errorf("sending %s: %w", event, err)
	}

	for {
		_ = conn.SetReadDeadline(deadline)
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("waiting for %s reply: %w", event, err)
		}

		var f frame
		if err := json.Unmarshal(msg, &f); err != nil {
			slog.Debug("skipping malformed tracker frame", "error", err)
			continue
		}
		if f.Topic != topic {
			continue
		}
		if f.Event == eventError {
			return nil, fmt.Errorf("%s on %s: %w", eventError, topic, ErrRejected)
		}
		// broadcasts to the channel carry no ref
		if f.Event != eventReply || f.Ref == nil || *f.Ref != ref {
			continue
		}

		if err := validate(replyValidator, f.Payload); err != nil {
			return nil, fmt.Errorf("%s reply: %w", event, err)
		}
		var r reply
		if err := json.Unmarshal(f.Payload, &r); err != nil {
			return nil, fmt.Errorf("decoding %s reply: %w", event, err)
		}
		if r.Status != "ok" {
			return nil, fmt.Errorf("%s: %s: %w", event, string(r.Response), ErrRejected)
		}
		return r.Response, nil
	}
}

func (c *Client) nextRef() string {
	return strconv.FormatUint(c.ref.Add(1), 10)
}
