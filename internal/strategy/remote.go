package strategy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/tensor"
)

// ErrAgent is returned when the remote agent reports an error.
var ErrAgent = errors.New("remote agent error")

// RemoteOption configures a Remote strategy.
type RemoteOption func(*Remote)

// WithTimeout bounds every decision. Zero leaves only the context deadline.
func WithTimeout(d time.Duration) RemoteOption {
	return func(r *Remote) {
		r.timeout = d
	}
}

// WithDialer replaces websocket.DefaultDialer.
func WithDialer(d *websocket.Dialer) RemoteOption {
	return func(r *Remote) {
		r.dialer = d
	}
}

// Remote asks a learned agent behind a WebSocket for each decision. The
// agent receives a tensor.Observation and answers with a game.Action.
// The connection is opened on first use and reopened after a failure.
type Remote struct {
	serverURL string
	dialer    *websocket.Dialer
	timeout   time.Duration
	logger    *log.Logger

	mu    sync.Mutex
	conn  *websocket.Conn
	reqID int
}

// NewRemote creates a Remote strategy for the agent at serverURL.
func NewRemote(serverURL string, logger *log.Logger, opts ...RemoteOption) *Remote {
	r := &Remote{
		serverURL: serverURL,
		dialer:    websocket.DefaultDialer,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func wsURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid agent URL: %w", err)
	}

	// Ensure WebSocket scheme
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		u.Scheme = "ws"
	}
	return u.String(), nil
}

// connect must be called with r.mu held.
func (r *Remote) connect(ctx context.Context) error {
	if r.conn != nil {
		return nil
	}
	target, err := wsURL(r.serverURL)
	if err != nil {
		return err
	}
	r.logger.Info("Connecting to agent", "url", target)
	conn, _, err := r.dialer.DialContext(ctx, target, nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	r.conn = conn
	return nil
}

// dropConn must be called with r.mu held.
func (r *Remote) dropConn() {
	if r.conn != nil {
		_ = r.conn.Close()
		r.conn = nil
	}
}

// Decide sends the encoded view and waits for the agent's action. The wait
// ends early when ctx is done.
func (r *Remote) Decide(ctx context.Context, v game.View) (game.Action, error) {
	obs, err := tensor.Observe(v)
	if err != nil {
		return game.Action{}, fmt.Errorf("encode observation: %w", err)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.connect(ctx); err != nil {
		return game.Action{}, err
	}
	conn := r.conn

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
		_ = conn.SetReadDeadline(deadline)
	} else {
		_ = conn.SetWriteDeadline(time.Time{})
		_ = conn.SetReadDeadline(time.Time{})
	}
	// unblock a pending read if ctx is cancelled
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetReadDeadline(time.Now())
	})
	defer stop()

	a, err := r.roundTrip(conn, obs)
	if err != nil {
		r.dropConn()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return game.Action{}, fmt.Errorf("agent decision: %w", ctxErr)
		}
		return game.Action{}, err
	}
	r.logger.Debug("Remote decision", "seat", v.Seat, "round", v.Round, "action", a)
	return a, nil
}

func (r *Remote) roundTrip(conn *websocket.Conn, obs tensor.Observation) (game.Action, error) {
	msg, err := NewMessage(MessageDecide, obs)
	if err != nil {
		return game.Action{}, err
	}
	r.reqID++
	msg.RequestID = strconv.Itoa(r.reqID)

	if err := conn.WriteJSON(msg); err != nil {
		return game.Action{}, fmt.Errorf("send observation: %w", err)
	}

	var reply Message
	if err := conn.ReadJSON(&reply); err != nil {
		return game.Action{}, fmt.Errorf("read action: %w", err)
	}
	if reply.RequestID != "" && reply.RequestID != msg.RequestID {
		return game.Action{}, fmt.Errorf("reply to request %s, want %s", reply.RequestID, msg.RequestID)
	}

	switch reply.Type {
	case MessageAction:
		var a game.Action
		if err := json.Unmarshal(reply.Data, &a); err != nil {
			return game.Action{}, fmt.Errorf("decode action: %w", err)
		}
		return a, nil
	case MessageError:
		var e ErrorData
		_ = json.Unmarshal(reply.Data, &e)
		return game.Action{}, fmt.Errorf("%w: %s", ErrAgent, e.Message)
	}
	return game.Action{}, fmt.Errorf("unexpected message type %q", reply.Type)
}

// Close closes the connection to the agent.
func (r *Remote) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil {
		return nil
	}
	_ = r.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	err := r.conn.Close()
	r.conn = nil
	return err
}
