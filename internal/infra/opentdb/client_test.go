package opentdb

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"brainblitz-service/internal/domain"
)

const sampleBody = `{
	"response_code": 0,
	"results": [
		{
			"category": "Science &amp; Nature",
			"type": "multiple",
			"difficulty": "easy",
			"question": "What is H&sub2;O better known as?",
			"correct_answer": "Water",
			"incorrect_answers": ["Hydrogen", "Oxygen", "Salt"]
		},
		{
			"category": "General Knowledge",
			"type": "boolean",
			"difficulty": "medium",
			"question": "The sky is green.",
			"correct_answer": "False",
			"incorrect_answers": ["True"]
		}
	]
}`

func testSettings() domain.Settings {
	return domain.Settings{Category: domain.CategoryAny, Difficulty: domain.DifficultyAny, Amount: 5}
}

func TestFetchDecodesAndShuffles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("amount"); got != "5" {
			t.Errorf("expected amount=5, got %q", got)
		}
		if r.URL.Query().Has("category") || r.URL.Query().Has("difficulty") {
			t.Errorf("'any' filters must be omitted, got %q", r.URL.RawQuery)
		}
		w.Write([]byte(sampleBody))
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRand(rand.New(rand.NewSource(1))))
	questions, err := client.Fetch(context.Background(), testSettings())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}

	first := questions[0]
	if first.Category != "Science & Nature" {
		t.Fatalf("entities not decoded: %q", first.Category)
	}
	if len(first.Options) != 4 {
		t.Fatalf("expected 4 options, got %v", first.Options)
	}
	seen := map[string]bool{}
	for _, opt := range first.Options {
		seen[opt] = true
	}
	if !seen["Water"] || !seen["Hydrogen"] || !seen["Oxygen"] || !seen["Salt"] {
		t.Fatalf("options are not a permutation: %v", first.Options)
	}

	boolean := questions[1]
	if len(boolean.Options) != 2 {
		t.Fatalf("boolean question should present 2 options, got %v", boolean.Options)
	}
}

func TestFetchForwardsFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("category"); got != "9" {
			t.Errorf("expected category=9, got %q", got)
		}
		if got := r.URL.Query().Get("difficulty"); got != "hard" {
			t.Errorf("expected difficulty=hard, got %q", got)
		}
		w.Write([]byte(sampleBody))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Fetch(context.Background(), domain.Settings{Category: "9", Difficulty: domain.DifficultyHard, Amount: 10})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
}

func TestFetchClassifiesEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response_code": 1, "results": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Fetch(context.Background(), testSettings())
	if !errors.Is(err, domain.ErrEmptyResult) {
		t.Fatalf("expected empty result, got %v", err)
	}
}

func TestFetchClassifiesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Fetch(context.Background(), testSettings())
	var httpErr *domain.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Status != http.StatusBadGateway {
		t.Fatalf("expected HTTPError 502, got %v", err)
	}
}

func TestFetchClassifiesTimeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	client := NewClient(server.URL, WithTimeout(50*time.Millisecond))
	_, err := client.Fetch(context.Background(), testSettings())
	if !errors.Is(err, domain.ErrFetchTimeout) {
		t.Fatalf("expected timeout classification, got %v", err)
	}
}

func TestFetchRejectsInvalidSettings(t *testing.T) {
	client := NewClient("http://unused.invalid")
	_, err := client.Fetch(context.Background(), domain.Settings{Category: domain.CategoryAny, Difficulty: domain.DifficultyAny, Amount: 3})
	if !errors.Is(err, domain.ErrInvalidSettings) {
		t.Fatalf("expected invalid settings, got %v", err)
	}
}

func TestListCategories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api_category.php" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"trivia_categories": [{"id": 9, "name": "General Knowledge"}, {"id": 17, "name": "Science &amp; Nature"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	categories, err := client.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 2 || categories[1].Name != "Science & Nature" {
		t.Fatalf("unexpected categories: %+v", categories)
	}
}
