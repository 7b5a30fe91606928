package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"gamified-learning-service/internal/app"
	"gamified-learning-service/internal/auth"
	"gamified-learning-service/internal/domain"
	"github.com/gorilla/websocket"
)

// WSHandler runs one quiz session per websocket connection. Closing the
// connection abandons the session: timers are cancelled and nothing is
// persisted for an incomplete attempt.
type WSHandler struct {
	service  *app.LearningService
	auth     *auth.Service
	upgrader websocket.Upgrader
}

// NewWSHandler wires the session engine to websocket clients. authSvc may be
// nil, in which case learner keys are not checked (dev mode).
func NewWSHandler(service *app.LearningService, authSvc *auth.Service) *WSHandler {
	return &WSHandler{
		service: service,
		auth:    authSvc,
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

type startPayload struct {
	SubjectID string `json:"subjectId"`
	LessonID  int    `json:"lessonId"`
}

type answerPayload struct {
	Option int `json:"option"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type tickPayload struct {
	Remaining int `json:"remaining"`
}

// ServeWS upgrades the request and drives a learner's quiz session.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	learner := r.URL.Query().Get("learner")
	if learner == "" {
		http.Error(w, "missing learner", http.StatusBadRequest)
		return
	}
	if h.auth != nil {
		if err := h.auth.VerifyLearnerKey(learner, r.URL.Query().Get("key")); err != nil {
			http.Error(w, "invalid learner key", http.StatusUnauthorized)
			return
		}
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session := h.service.NewSession(learner)
	defer session.Close()

	events, cancel := session.Subscribe()
	defer cancel()

	send := make(chan outboundMessage, 32)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	eventsDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("[WS] write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(eventsDone)
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return
				}
				select {
				case send <- eventToMessage(event):
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	send <- outboundMessage{Type: "ready", Payload: map[string]string{"sessionId": session.ID()}}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "start":
			var payload startPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid start payload")
				continue
			}
			if err := session.Start(r.Context(), payload.SubjectID, payload.LessonID); err != nil {
				// An incomplete selection is a silent no-op: the UI simply
				// keeps the start action disabled.
				if !errors.Is(err, domain.ErrSelectionIncomplete) {
					send <- errorMessage(err.Error())
				}
				continue
			}
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid answer payload")
				continue
			}
			if err := session.SubmitAnswer(payload.Option); err != nil {
				// Answers racing the feedback window are expected; drop them.
				if !errors.Is(err, domain.ErrSessionNotActive) {
					send <- errorMessage(err.Error())
				}
			}
		case "reset":
			session.Reset()
			send <- outboundMessage{Type: "reset"}
		default:
			send <- errorMessage("unsupported message type")
		}
	}

	close(closeSignals)
	<-eventsDone
	close(send)
	<-writerDone
}

func eventToMessage(event app.Event) outboundMessage {
	switch event.Type {
	case app.EventQuestion:
		return outboundMessage{Type: string(event.Type), Payload: event.Question}
	case app.EventTick:
		return outboundMessage{Type: string(event.Type), Payload: tickPayload{Remaining: event.Remaining}}
	case app.EventFeedback:
		return outboundMessage{Type: string(event.Type), Payload: event.Feedback}
	case app.EventCompleted:
		return outboundMessage{Type: string(event.Type), Payload: event.Result}
	default:
		return outboundMessage{Type: string(event.Type)}
	}
}

func errorMessage(message string) outboundMessage {
	return outboundMessage{Type: "error", Payload: errorPayload{Message: message}}
}
