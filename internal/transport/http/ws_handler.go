package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"brainblitz-service/internal/app"
	"brainblitz-service/internal/domain"
	"github.com/gorilla/websocket"
)

// WSHandler runs one quiz session per websocket connection: it loads the
// question set, drives the countdown, forwards player intents into the
// session and streams state frames back.
type WSHandler struct {
	service       *app.QuizService
	upgrader      websocket.Upgrader
	tickInterval  time.Duration
	revealDelay   time.Duration
	defaultAmount int
}

func NewWSHandler(service *app.QuizService, tickInterval, revealDelay time.Duration, defaultAmount int) *WSHandler {
	if tickInterval <= 0 {
		tickInterval = time.Second
	}
	if defaultAmount == 0 {
		defaultAmount = 10
	}
	return &WSHandler{
		service:       service,
		tickInterval:  tickInterval,
		revealDelay:   revealDelay,
		defaultAmount: defaultAmount,
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

type answerPayload struct {
	Option string `json:"option"`
}

type questionPayload struct {
	Index      int      `json:"index"`
	Total      int      `json:"total"`
	Category   string   `json:"category"`
	Difficulty string   `json:"difficulty"`
	Prompt     string   `json:"prompt"`
	Options    []string `json:"options"`
	Remaining  int      `json:"remaining"`
	Score      int      `json:"score"`
}

type tickPayload struct {
	Remaining int `json:"remaining"`
}

type revealPayload struct {
	CorrectAnswer string `json:"correctAnswer"`
	Selected      string `json:"selected,omitempty"`
	Correct       bool   `json:"correct"`
	Score         int    `json:"score"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// ServeWS upgrades the request and plays a full session over the socket.
// Query parameters: name (required), category, difficulty, amount.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "missing name", http.StatusBadRequest)
		return
	}
	settings, err := h.settingsFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.service.NewSession(settings)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	intents := make(chan inboundMessage, 4)
	done := make(chan struct{})
	go func() {
		defer close(intents)
		for {
			var inbound inboundMessage
			if err := conn.ReadJSON(&inbound); err != nil {
				return
			}
			select {
			case intents <- inbound:
			case <-done:
				return
			}
		}
	}()

	h.runSession(r.Context(), session, name, send, intents)
	close(done)
	close(send)
	<-writerDone
}

func (h *WSHandler) runSession(ctx context.Context, session *app.Session, name string, send chan<- outboundMessage[any], intents <-chan inboundMessage) {
	if !h.loadUntilReady(ctx, session, send, intents) {
		return
	}
	send <- questionFrame(session.Snapshot())

	ticker := time.NewTicker(h.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			if session.Tick() {
				send <- revealFrame(session.Snapshot())
				continue
			}
			if snap := session.Snapshot(); snap.Status == app.StatusReady && !snap.Revealed {
				send <- outboundMessage[any]{Type: "tick", Payload: tickPayload{Remaining: snap.Remaining}}
			}

		case msg, ok := <-intents:
			if !ok {
				return
			}
			switch msg.Type {
			case "answer":
				var payload answerPayload
				if err := json.Unmarshal(msg.Payload, &payload); err != nil {
					send <- errorFrame(errors.New("invalid answer payload"))
					continue
				}
				if _, err := session.SelectAnswer(payload.Option); err != nil {
					send <- errorFrame(err)
					continue
				}
				// Feedback pacing: reveal after the configured delay. The
				// timer is already paused, so sleeping here skips no ticks.
				if h.revealDelay > 0 {
					time.Sleep(h.revealDelay)
				}
				send <- revealFrame(session.Snapshot())

			case "advance":
				finished, err := session.Advance()
				if err != nil {
					send <- errorFrame(err)
					continue
				}
				if !finished {
					send <- questionFrame(session.Snapshot())
					continue
				}
				h.finish(ctx, session, name, send)
				return

			default:
				send <- errorFrame(errors.New("unsupported message type"))
			}
		}
	}
}

// loadUntilReady drives Load and, on failure, waits for retry intents until
// the session is ready or the client goes away.
func (h *WSHandler) loadUntilReady(ctx context.Context, session *app.Session, send chan<- outboundMessage[any], intents <-chan inboundMessage) bool {
	for {
		if err := session.Load(ctx); err != nil {
			send <- errorFrame(err)
			if !awaitRetry(ctx, intents, send) {
				return false
			}
			continue
		}
		return true
	}
}

func awaitRetry(ctx context.Context, intents <-chan inboundMessage, send chan<- outboundMessage[any]) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case msg, ok := <-intents:
			if !ok {
				return false
			}
			if msg.Type == "retry" {
				return true
			}
			send <- errorFrame(errors.New("session not loaded, send retry"))
		}
	}
}

func (h *WSHandler) finish(ctx context.Context, session *app.Session, name string, send chan<- outboundMessage[any]) {
	result, err := session.Result()
	if err != nil {
		send <- errorFrame(err)
		return
	}
	send <- outboundMessage[any]{Type: "result", Payload: result}

	board, err := h.service.SubmitResult(ctx, name, result, session.Settings())
	if err != nil {
		send <- errorFrame(err)
		return
	}
	send <- outboundMessage[any]{Type: "leaderboard", Payload: board}
}

func (h *WSHandler) settingsFromQuery(r *http.Request) (domain.Settings, error) {
	settings := domain.Settings{
		Category:   r.URL.Query().Get("category"),
		Difficulty: r.URL.Query().Get("difficulty"),
		Amount:     h.defaultAmount,
	}
	if settings.Category == "" {
		settings.Category = domain.CategoryAny
	}
	if settings.Difficulty == "" {
		settings.Difficulty = domain.DifficultyAny
	}
	if raw := r.URL.Query().Get("amount"); raw != "" {
		amount, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Settings{}, errors.New("amount must be an integer")
		}
		settings.Amount = amount
	}
	return settings, settings.Validate()
}

func questionFrame(snap app.Snapshot) outboundMessage[any] {
	return outboundMessage[any]{Type: "question", Payload: questionPayload{
		Index:      snap.Index,
		Total:      snap.Total,
		Category:   snap.Question.Category,
		Difficulty: snap.Question.Difficulty,
		Prompt:     snap.Question.Prompt,
		Options:    snap.Question.Options,
		Remaining:  snap.Remaining,
		Score:      snap.Score,
	}}
}

func revealFrame(snap app.Snapshot) outboundMessage[any] {
	return outboundMessage[any]{Type: "reveal", Payload: revealPayload{
		CorrectAnswer: snap.Question.CorrectAnswer,
		Selected:      snap.Selected,
		Correct:       snap.Selected != "" && snap.Selected == snap.Question.CorrectAnswer,
		Score:         snap.Score,
	}}
}

func errorFrame(err error) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{
		Reason:  classifyReason(err),
		Message: err.Error(),
	}}
}

func classifyReason(err error) string {
	var httpErr *domain.HTTPError
	switch {
	case errors.Is(err, domain.ErrFetchTimeout):
		return "timeout"
	case errors.Is(err, domain.ErrEmptyResult):
		return "empty"
	case errors.As(err, &httpErr):
		return "http"
	case errors.Is(err, domain.ErrInvalidState):
		return "invalid_state"
	default:
		return "error"
	}
}
