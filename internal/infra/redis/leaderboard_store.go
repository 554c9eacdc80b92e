package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"brainblitz-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "brainblitz:leaderboard"

// envelopeVersion is bumped when the entry schema changes; loads of older
// envelopes degrade gracefully instead of failing.
const envelopeVersion = 1

type envelope struct {
	Version int                       `json:"version"`
	Entries []domain.LeaderboardEntry `json:"entries"`
}

// LeaderboardStore persists the ranked board as a versioned JSON envelope
// under a single key.
type LeaderboardStore struct {
	client *redis.Client
}

func NewLeaderboardStore(client *redis.Client) *LeaderboardStore {
	return &LeaderboardStore{client: client}
}

func (s *LeaderboardStore) Load(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	raw, err := s.client.Get(ctx, leaderboardKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}
	if env.Version != envelopeVersion {
		// Best-effort read of foreign versions; a save rewrites the envelope.
		log.Printf("leaderboard envelope version %d (want %d), loading best-effort", env.Version, envelopeVersion)
	}
	return env.Entries, nil
}

func (s *LeaderboardStore) Save(ctx context.Context, entries []domain.LeaderboardEntry) error {
	raw, err := json.Marshal(envelope{Version: envelopeVersion, Entries: entries})
	if err != nil {
		return fmt.Errorf("encode leaderboard: %w", err)
	}
	if err := s.client.Set(ctx, leaderboardKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("save leaderboard: %w", err)
	}
	return nil
}
