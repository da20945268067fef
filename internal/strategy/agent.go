package strategy

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/tensor"
)

// DecideFunc is the agent side of the Remote protocol.
type DecideFunc func(ctx context.Context, obs tensor.Observation) (game.Action, error)

// AgentHandler serves decide over WebSocket so that a Remote strategy can
// reach it. Each connection is answered sequentially.
type AgentHandler struct {
	decide   DecideFunc
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewAgentHandler creates a handler answering with decide.
func NewAgentHandler(decide DecideFunc, logger *log.Logger) *AgentHandler {
	return &AgentHandler{
		decide: decide,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.WithPrefix("agent"),
	}
}

func (h *AgentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		reply := h.handle(ctx, &msg)
		reply.RequestID = msg.RequestID
		if err := conn.WriteJSON(reply); err != nil {
			h.logger.Error("Failed to send reply", "error", err)
			return
		}
	}
}

func (h *AgentHandler) handle(ctx context.Context, msg *Message) *Message {
	if msg.Type != MessageDecide {
		return errorMessage("unexpected message type " + string(msg.Type))
	}
	var obs tensor.Observation
	if err := json.Unmarshal(msg.Data, &obs); err != nil {
		return errorMessage("decode observation: " + err.Error())
	}
	a, err := h.decide(ctx, obs)
	if err != nil {
		return errorMessage(err.Error())
	}
	reply, err := NewMessage(MessageAction, a)
	if err != nil {
		return errorMessage(err.Error())
	}
	return reply
}

func errorMessage(text string) *Message {
	msg, _ := NewMessage(MessageError, ErrorData{Message: text})
	return msg
}

// PassiveAgent checks or calls from the observation's legal menu. It is
// the agent served by "headsup agent" for wiring tests.
func PassiveAgent(_ context.Context, obs tensor.Observation) (game.Action, error) {
	for _, va := range obs.Legal {
		if va.Kind == game.Check {
			return game.CheckAction(), nil
		}
	}
	for _, va := range obs.Legal {
		if va.Kind == game.Call {
			return game.CallAction(va.MinAmount), nil
		}
	}
	return game.FoldAction(), nil
}
