package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"brainblitz-service/internal/domain"
)

// StaticQuestionSource serves sessions from a fixed in-memory bank (useful
// for tests/demos). Each fetch picks a fresh random subset and option order.
type StaticQuestionSource struct {
	bank []domain.Question

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewStaticQuestionSource(bank []domain.Question) *StaticQuestionSource {
	return NewStaticQuestionSourceWithRand(bank, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewStaticQuestionSourceWithRand injects the random source for
// deterministic selection under test.
func NewStaticQuestionSourceWithRand(bank []domain.Question, rnd *rand.Rand) *StaticQuestionSource {
	return &StaticQuestionSource{bank: bank, rnd: rnd}
}

func (s *StaticQuestionSource) Fetch(_ context.Context, settings domain.Settings) ([]domain.Question, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.SelectQuestions(s.bank, settings, s.rnd)
}
