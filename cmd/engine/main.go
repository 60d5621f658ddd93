package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"

	"jobforge-engine/internal/config"
	"jobforge-engine/internal/domain"
	"jobforge-engine/internal/events"
	"jobforge-engine/internal/httpapi"
	"jobforge-engine/internal/ingest"
	"jobforge-engine/internal/secrets"
	"jobforge-engine/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	dataDir := os.Getenv("JOBFORGE_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir. A second replica would double every upstream
	// call even though the url index still prevents duplicate rows.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance already owns %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}
	cfg, err := config.Load(userCfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config invalid (%s): %v", userCfgPath, err)
	}

	db, err := store.Open(filepath.Join(dataDir, "jobforge.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	creds := secrets.LoadCredentials()
	hub := events.NewHub()

	runner := &ingest.Runner{
		DB:       db.Pool,
		Fetchers: buildFetchers(cfg, creds),
		Delay:    time.Duration(cfg.Ingest.SourceDelaySeconds) * time.Second,
		OnSaved: func(p domain.JobPosting) {
			hub.Publish(events.JobCreated(p.URL, p.Title, string(p.Source)))
		},
		OnDone: func(sum ingest.RunSummary) {
			hub.Publish(events.RunFinished(sum))
		},
	}

	sched := ingest.NewScheduler(
		runner,
		db.Pool,
		time.Duration(cfg.Ingest.IntervalMinutes)*time.Minute,
		time.Duration(cfg.Ingest.StalenessMinutes)*time.Minute,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sched.Start(ctx)

	deps := httpapi.Deps{
		DB:             db.Pool,
		Hub:            hub,
		Scheduler:      sched,
		RunQuotaSource: buildQuotaRunner(cfg, creds, db.Pool, hub),
	}

	handler := httpapi.Chain(
		httpapi.NewMux(deps),
		httpapi.RequestID,
		httpapi.AccessLog,
		httpapi.Recover,
		httpapi.Cors,
	)

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (data=%s)", addr, dataDir)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shctx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Printf("engine stopped")
}
