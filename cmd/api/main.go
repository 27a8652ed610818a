package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"hogwarts.org/internal/artifact"
	"hogwarts.org/internal/auth"
	"hogwarts.org/internal/chat"
	"hogwarts.org/internal/httpapi"
	"hogwarts.org/internal/obs"
	"hogwarts.org/internal/stream"
	"hogwarts.org/internal/user"
	"hogwarts.org/internal/wizard"
)

var (
	version = "1.0.0"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	secret := os.Getenv("HOGWARTS_AUTH_SECRET")
	if secret == "" {
		log.Fatal("missing HOGWARTS_AUTH_SECRET")
	}
	tokens, err := auth.NewTokenService(secret)
	if err != nil {
		log.Fatalf("token service: %v", err)
	}

	// Database (optional; in-memory stores otherwise), so /readyz can ping it.
	var db *sql.DB
	if dsn := os.Getenv("HOGWARTS_PG_DSN"); dsn != "" {
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	// Session whitelist: Redis in production, in-memory for local runs.
	var sessions auth.SessionStore
	var redisClient *redis.Client
	if addr := os.Getenv("HOGWARTS_REDIS_ADDR"); addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("HOGWARTS_REDIS_PASSWORD"),
		})
		sessions = auth.NewRedisSessionStore(redisClient)
	} else {
		log.Println("HOGWARTS_REDIS_ADDR not set, using in-memory session store")
		sessions = auth.NewMemorySessionStore()
	}

	var (
		userStore     user.Store
		artifactStore artifact.Store
		wizardStore   wizard.Store
	)
	if db != nil {
		userStore = user.NewPGStore(db)
		artifactStore = artifact.NewPGStore(db)
		wizardStore = wizard.NewPGStore(db)
	} else {
		log.Println("HOGWARTS_PG_DSN not set, using in-memory stores")
		memArtifacts := artifact.NewMemoryStore()
		userStore = user.NewMemoryStore()
		artifactStore = memArtifacts
		wizardStore = wizard.NewMemoryStore(memArtifacts)
	}

	var chatClient chat.Client
	if key := os.Getenv("HOGWARTS_GROQ_API_KEY"); key != "" {
		chatClient = chat.NewGroqClient(key,
			chat.WithEndpoint(os.Getenv("HOGWARTS_GROQ_ENDPOINT")),
			chat.WithModel(os.Getenv("HOGWARTS_GROQ_MODEL")))
	} else {
		log.Println("HOGWARTS_GROQ_API_KEY not set, artifact summary disabled")
	}

	authSvc := auth.NewService(user.NewAccounts(userStore), tokens, sessions)
	userSvc := user.NewService(userStore, authSvc)
	artifactSvc := artifact.NewService(artifactStore, chatClient)
	events := stream.New()
	wizardSvc := wizard.NewService(wizardStore, artifactStore, events)

	api := httpapi.New(httpapi.ReadyProbe{DB: db}, version, httpapi.Services{
		Auth:      authSvc,
		Users:     userSvc,
		Wizards:   wizardSvc,
		Artifacts: artifactSvc,
		Stream:    events,
	})

	addr := os.Getenv("HOGWARTS_HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting hogwarts-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	if db != nil {
		_ = db.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	log.Println("Stopped")
}
