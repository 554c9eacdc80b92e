package opentdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"math/rand"
	"net/http"
	"net/url"
	"sync"
	"time"

	"brainblitz-service/internal/domain"
)

const (
	// DefaultBaseURL points at the public Open Trivia DB API.
	DefaultBaseURL = "https://opentdb.com"
	// DefaultTimeout bounds a single question fetch.
	DefaultTimeout = 8 * time.Second
)

// Decoder turns entity-encoded provider text into display text.
type Decoder func(string) string

// Client fetches question sets and the category catalog from Open Trivia DB.
// It implements app.QuestionSource: returned questions are already decoded
// and carry a fixed shuffled option order.
type Client struct {
	baseURL string
	httpc   *http.Client
	timeout time.Duration
	decode  Decoder

	mu  sync.Mutex
	rnd *rand.Rand
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the per-fetch budget.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.timeout = timeout }
}

// WithDecoder overrides entity decoding (tests inject a no-op).
func WithDecoder(decode Decoder) Option {
	return func(c *Client) { c.decode = decode }
}

// WithRand injects the shuffle source so option order is reproducible under
// test.
func WithRand(rnd *rand.Rand) Option {
	return func(c *Client) { c.rnd = rnd }
}

func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		timeout: DefaultTimeout,
		decode:  html.UnescapeString,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.httpc = &http.Client{Timeout: c.timeout}
	return c
}

type questionsResponse struct {
	ResponseCode int `json:"response_code"`
	Results      []struct {
		Category         string   `json:"category"`
		Type             string   `json:"type"`
		Difficulty       string   `json:"difficulty"`
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
	} `json:"results"`
}

type categoriesResponse struct {
	TriviaCategories []domain.Category `json:"trivia_categories"`
}

// Fetch requests settings.Amount questions. "any" category or difficulty
// omits the corresponding filter. Failures come back classified:
// domain.ErrFetchTimeout, *domain.HTTPError or domain.ErrEmptyResult.
func (c *Client) Fetch(ctx context.Context, settings domain.Settings) ([]domain.Question, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("amount", fmt.Sprint(settings.Amount))
	if settings.Category != domain.CategoryAny && settings.Category != "" {
		query.Set("category", settings.Category)
	}
	if settings.Difficulty != domain.DifficultyAny && settings.Difficulty != "" {
		query.Set("difficulty", settings.Difficulty)
	}

	var payload questionsResponse
	if err := c.getJSON(ctx, "/api.php?"+query.Encode(), &payload); err != nil {
		return nil, err
	}
	if payload.ResponseCode != 0 || len(payload.Results) == 0 {
		return nil, domain.ErrEmptyResult
	}

	questions := make([]domain.Question, 0, len(payload.Results))
	for _, raw := range payload.Results {
		distractors := make([]string, 0, len(raw.IncorrectAnswers))
		for _, answer := range raw.IncorrectAnswers {
			distractors = append(distractors, c.decode(answer))
		}
		correct := c.decode(raw.CorrectAnswer)
		questions = append(questions, domain.Question{
			Category:      c.decode(raw.Category),
			Type:          raw.Type,
			Difficulty:    raw.Difficulty,
			Prompt:        c.decode(raw.Question),
			CorrectAnswer: correct,
			Distractors:   distractors,
			Options:       c.shuffleOptions(correct, distractors),
		})
	}
	return questions, nil
}

// ListCategories fetches the provider's category catalog.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var payload categoriesResponse
	if err := c.getJSON(ctx, "/api_category.php", &payload); err != nil {
		return nil, err
	}
	if len(payload.TriviaCategories) == 0 {
		return nil, domain.ErrEmptyResult
	}
	categories := make([]domain.Category, 0, len(payload.TriviaCategories))
	for _, cat := range payload.TriviaCategories {
		cat.Name = c.decode(cat.Name)
		categories = append(categories, cat)
	}
	return categories, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return fmt.Errorf("%w: %v", domain.ErrFetchTimeout, err)
		}
		return fmt.Errorf("fetch questions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &domain.HTTPError{Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) shuffleOptions(correct string, distractors []string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.ShuffleOptions(correct, distractors, c.rnd)
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
