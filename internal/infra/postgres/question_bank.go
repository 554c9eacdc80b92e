package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"brainblitz-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuestionBank serves sessions from a locally curated question table instead
// of the third-party API. Rows hold one normalized question as JSONB.
type QuestionBank struct {
	pool *pgxpool.Pool

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuestionBank(pool *pgxpool.Pool) *QuestionBank {
	return NewQuestionBankWithRand(pool, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewQuestionBankWithRand injects the random source for deterministic
// selection under test.
func NewQuestionBankWithRand(pool *pgxpool.Pool, rnd *rand.Rand) *QuestionBank {
	return &QuestionBank{pool: pool, rnd: rnd}
}

func (b *QuestionBank) Fetch(ctx context.Context, settings domain.Settings) ([]domain.Question, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	rows, err := b.pool.Query(ctx, `SELECT data FROM question_bank`)
	if err != nil {
		return nil, fmt.Errorf("query question bank: %w", err)
	}
	defer rows.Close()

	var bank []domain.Question
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		var question domain.Question
		if err := json.Unmarshal(raw, &question); err != nil {
			return nil, fmt.Errorf("unmarshal question: %w", err)
		}
		bank = append(bank, question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate question bank: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return domain.SelectQuestions(bank, settings, b.rnd)
}
