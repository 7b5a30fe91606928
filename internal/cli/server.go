package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gamified-learning-service/internal/app"
	"gamified-learning-service/internal/auth"
	"gamified-learning-service/internal/catalog"
	"gamified-learning-service/internal/config"
	"gamified-learning-service/internal/infra/memory"
	pgcatalog "gamified-learning-service/internal/infra/postgres"
	redisstore "gamified-learning-service/internal/infra/redis"
	sqlitestore "gamified-learning-service/internal/infra/sqlite"
	transport "gamified-learning-service/internal/transport/http"
	"gamified-learning-service/internal/tutor"
	"gamified-learning-service/internal/videos"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the learning server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
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

	// Catalogue: Postgres when configured, otherwise the built-in bank;
	// either way behind the TTL cache.
	var loader memory.CatalogLoader = memory.NewStaticCatalogLoader(catalog.BuiltinSubjects())
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		loader = pgcatalog.NewCatalogLoader(pool)
	}
	catalogTTL := config.Duration(cfg.Quiz.CatalogTTL, 10*time.Minute)
	subjects := memory.NewCatalogRepository(loader, catalogTTL)

	// Durable store: redis first, then sqlite, then in-memory for dev runs.
	var store app.ResultStore
	switch {
	case cfg.Redis.Addr != "":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store = redisstore.NewResultStore(client)
		log.Printf("[STARTUP] results stored in redis at %s", cfg.Redis.Addr)
	case cfg.SQLite.Path != "":
		sqlStore, err := sqlitestore.Open(cfg.SQLite.Path)
		if err != nil {
			return err
		}
		defer sqlStore.Close()
		store = sqlStore
		log.Printf("[STARTUP] results stored in sqlite at %s", cfg.SQLite.Path)
	default:
		store = memory.NewResultStore()
		log.Printf("[STARTUP] results stored in memory (no durable backend configured)")
	}

	service := app.NewLearningService(subjects, store, app.Options{
		QuestionTime:  config.Duration(cfg.Quiz.QuestionTime, app.DefaultQuestionTime),
		FeedbackDelay: config.Duration(cfg.Quiz.FeedbackDelay, app.DefaultFeedbackDelay),
	})

	var authSvc *auth.Service
	if cfg.Auth.JWTSecret != "" {
		tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, config.Duration(cfg.Auth.TokenTTL, 24*time.Hour))
		if err != nil {
			return err
		}
		authSvc = auth.NewService(tokens)
		for _, parent := range cfg.Auth.Parents {
			authSvc.AddParent(parent.Name, parent.Hash)
		}
		for _, learner := range cfg.Auth.Learners {
			authSvc.AddLearner(learner.Name, learner.Hash)
		}
	} else {
		log.Printf("[STARTUP] auth disabled (no jwtSecret configured)")
	}

	var tutorClient transport.TutorClient
	if cfg.Tutor.APIKey != "" {
		tutorClient = tutor.NewClient(cfg.Tutor.APIKey, cfg.Tutor.BaseURL, cfg.Tutor.Model,
			config.Duration(cfg.Tutor.Timeout, 30*time.Second))
	}
	var videoClient transport.VideoClient
	if cfg.Videos.APIKey != "" {
		videoClient = videos.NewClient(cfg.Videos.APIKey, cfg.Videos.BaseURL, 10*time.Second)
	}

	wsHandler := transport.NewWSHandler(service, authSvc)
	apiHandler := transport.NewAPIHandler(service, authSvc, tutorClient, videoClient)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	apiHandler.Register(mux)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("[STARTUP] learning service listening on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[FATAL] failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("[SHUTDOWN] shutting down server...")
	case <-ctx.Done():
		log.Println("[SHUTDOWN] context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
