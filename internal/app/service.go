package app

import (
	"context"
	"log"
	"time"

	"brainblitz-service/internal/domain"
	"github.com/google/uuid"
)

// LeaderboardStore persists the ranked board (in-memory, Redis, etc).
type LeaderboardStore interface {
	Load(ctx context.Context) ([]domain.LeaderboardEntry, error)
	Save(ctx context.Context, entries []domain.LeaderboardEntry) error
}

// CategorySource lists the question provider's category catalog.
type CategorySource interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// QuizService wires sessions to their collaborators: the question source
// behind Load and the leaderboard store behind result submission.
type QuizService struct {
	source      QuestionSource
	store       LeaderboardStore
	timerBudget int
	now         func() time.Time
	newID       func() string
}

func NewQuizService(source QuestionSource, store LeaderboardStore, timerBudget int) *QuizService {
	return &QuizService{
		source:      source,
		store:       store,
		timerBudget: timerBudget,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// NewSession builds an idle session for the given settings.
func (s *QuizService) NewSession(settings domain.Settings) (*Session, error) {
	return NewSession(s.source, settings, s.timerBudget)
}

// SubmitResult records a finished result on the leaderboard under the given
// name and returns the updated board. Persistence is best-effort: losing the
// leaderboard must never break the quiz flow, so store failures are logged
// and the ranked board is still returned.
func (s *QuizService) SubmitResult(ctx context.Context, name string, result domain.Result, settings domain.Settings) ([]domain.LeaderboardEntry, error) {
	entries, err := s.store.Load(ctx)
	if err != nil {
		log.Printf("leaderboard load failed, starting empty: %v", err)
		entries = nil
	}

	entry := domain.LeaderboardEntry{
		ID:          s.newID(),
		DisplayName: name,
		Score:       result.Percentage,
		CompletedAt: result.CompletedAt,
		Category:    settings.Category,
		Difficulty:  settings.Difficulty,
	}
	ranked := domain.RankEntries(entries, entry)

	if err := s.store.Save(ctx, ranked); err != nil {
		log.Printf("leaderboard save failed: %v", err)
	}
	return ranked, nil
}

// Leaderboard returns the persisted board.
func (s *QuizService) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	return s.store.Load(ctx)
}
