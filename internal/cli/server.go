package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brainblitz-service/internal/app"
	"brainblitz-service/internal/config"
	"brainblitz-service/internal/infra/memory"
	"brainblitz-service/internal/infra/opentdb"
	pgbank "brainblitz-service/internal/infra/postgres"
	redisstore "brainblitz-service/internal/infra/redis"
	transport "brainblitz-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port, source)
		},
	}
	cmd.Flags().StringVar(&source, "source", "opentdb", "question source: opentdb or local")
	return cmd
}

func runServer(ctx context.Context, configPath, portFlag, sourceFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if sourceFlag == "local" && cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	service, categories, cleanup, err := buildService(ctx, cfg, sourceFlag)
	if err != nil {
		return err
	}
	defer cleanup()

	tickInterval := time.Second
	revealDelay := config.DurationOr(cfg.Quiz.RevealDelay, 500*time.Millisecond)
	wsHandler := transport.NewWSHandler(service, tickInterval, revealDelay, cfg.Quiz.DefaultAmount)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	mux.Handle("/leaderboard", transport.NewLeaderboardHandler(service))
	mux.Handle("/categories", transport.NewCategoriesHandler(categories))

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting brainblitz on :%s (source=%s)", finalPort, sourceFlag)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// buildService wires the question source and leaderboard store picked by
// config into a QuizService. The returned cleanup closes owned pools.
func buildService(ctx context.Context, cfg config.Config, sourceFlag string) (*app.QuizService, app.CategorySource, func(), error) {
	cleanup := func() {}

	client := opentdb.NewClient(cfg.OpenTDB.BaseURL,
		opentdb.WithTimeout(config.DurationOr(cfg.OpenTDB.Timeout, opentdb.DefaultTimeout)))
	categories := memory.NewCategoryCache(client, config.DurationOr(cfg.OpenTDB.CategoryTTL, time.Hour))

	var source app.QuestionSource
	switch sourceFlag {
	case "", "opentdb":
		source = client
	case "local":
		if cfg.Postgres.URL == "" {
			return nil, nil, cleanup, fmt.Errorf("local source requires postgres url")
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, cleanup, err
		}
		cleanup = pool.Close
		source = pgbank.NewQuestionBank(pool)
	default:
		return nil, nil, cleanup, fmt.Errorf("unknown question source %q", sourceFlag)
	}

	var store app.LeaderboardStore
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store = redisstore.NewLeaderboardStore(redisClient)
	} else {
		store = memory.NewLeaderboardStore()
	}

	timerBudget := cfg.Quiz.TimerSeconds
	if timerBudget <= 0 {
		timerBudget = app.DefaultTimerBudget
	}
	return app.NewQuizService(source, store, timerBudget), categories, cleanup, nil
}
