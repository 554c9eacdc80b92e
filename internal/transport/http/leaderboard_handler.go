package http

import (
	"encoding/json"
	"log"
	"net/http"

	"brainblitz-service/internal/app"
	"brainblitz-service/internal/domain"
)

// LeaderboardHandler serves the persisted top-10 board as JSON.
type LeaderboardHandler struct {
	service *app.QuizService
}

func NewLeaderboardHandler(service *app.QuizService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

func (h *LeaderboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	entries, err := h.service.Leaderboard(r.Context())
	if err != nil {
		log.Printf("leaderboard load failed: %v", err)
		http.Error(w, "leaderboard unavailable", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entries)
}
