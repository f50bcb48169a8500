package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/senceapptr/SenceApp-sub004/internal/app"
	"github.com/senceapptr/SenceApp-sub004/internal/domain"
	"github.com/senceapptr/SenceApp-sub004/internal/logger"
	"github.com/senceapptr/SenceApp-sub004/internal/trivia"
)

type WSHandler struct {
	service  *app.TriviaService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.TriviaService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type categoryPayload struct {
	Category domain.Category `json:"category"`
}

type difficultyPayload struct {
	Difficulty domain.Difficulty `json:"difficulty"`
}

type answerPayload struct {
	Option int `json:"option"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type signalPayload struct {
	SessionID string `json:"sessionId"`
}

// ServeWS upgrades the request and runs one trivia engine for the connection.
// Engine snapshots are pushed as "state" messages; host signals arrive as
// "abandoned" or "left".
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := uuid.NewString()
	log := logger.FromContext(r.Context()).WithField("session_id", sessionID)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("ws upgrade failed")
		return
	}
	defer conn.Close()

	ctx := logger.NewContext(context.Background(), log)

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// host callbacks run on whichever goroutine drove the engine; never block them
	signal := func(kind string) {
		select {
		case send <- outboundMessage[any]{Type: kind, Payload: signalPayload{SessionID: sessionID}}:
		case <-closeSignals:
		case <-writerDone:
		}
	}
	host := trivia.HostFuncs{
		OnAbandoned: func() { signal("abandoned") },
		OnReturn:    func() { signal("left") },
	}

	session, err := h.service.Open(ctx, sessionID, host)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer h.service.Close(ctx, sessionID)
	engine := session.Engine

	updates, cancel := engine.Subscribe()
	defer cancel()

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.WithError(err).Debug("ws write error")
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "state", Payload: update}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if err := h.service.Touch(sessionID); err != nil {
			log.WithError(err).Debug("session touch failed")
		}
		if err := dispatch(engine, inbound); err != nil {
			select {
			case send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}:
			case <-writerDone:
			}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

var errUnsupported = &protocolError{"unsupported message type"}

type protocolError struct{ msg string }

func (e *protocolError) Error() string { return e.msg }

func dispatch(engine *trivia.Engine, in inboundMessage) error {
	switch in.Type {
	case "start":
		return engine.Start()
	case "category":
		var p categoryPayload
		if err := json.Unmarshal(in.Payload, &p); err != nil {
			return &protocolError{"invalid category payload"}
		}
		return engine.SelectCategory(p.Category)
	case "difficulty":
		var p difficultyPayload
		if err := json.Unmarshal(in.Payload, &p); err != nil {
			return &protocolError{"invalid difficulty payload"}
		}
		return engine.SelectDifficulty(p.Difficulty)
	case "answer":
		var p answerPayload
		if err := json.Unmarshal(in.Payload, &p); err != nil {
			return &protocolError{"invalid answer payload"}
		}
		// late or repeated answers are ignored without an error
		engine.Answer(p.Option)
		return nil
	case "exit":
		return engine.RequestExit()
	case "confirmExit":
		return engine.ConfirmExit()
	case "cancelExit":
		return engine.CancelExit()
	case "restart":
		return engine.Restart()
	case "leave":
		return engine.Leave()
	default:
		return errUnsupported
	}
}
