package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"trapzone/db/migrations"
	staticconfig "trapzone/internal/adapter/config/static"
	httpadapter "trapzone/internal/adapter/http"
	metricsinmem "trapzone/internal/adapter/metrics/inmemory"
	gormrepo "trapzone/internal/adapter/repo/gorm"
	"trapzone/internal/adapter/repo/memory"
	sqliterepo "trapzone/internal/adapter/repo/sqlite"
	"trapzone/internal/adapter/stream"
	"trapzone/internal/app/game"
	"trapzone/internal/app/ports"
	"trapzone/internal/app/replay"
	"trapzone/internal/app/status"
	"trapzone/internal/domain/hunting"

	"github.com/cloudwego/hertz/pkg/app/server"
)

type journal struct {
	backend  string
	events   ports.EventRepository
	sessions ports.SessionRepository
	tx       ports.TxManager
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	j := mustBuildJournal()
	registry := game.NewRegistry()
	kpiRecorder := metricsinmem.NewRecorder()
	scenarios := staticconfig.Provider{Root: resolveScenariosRoot(), Base: cfg}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := stream.NewHub(logger)
	hub.Accept = func(id string) bool {
		_, err := registry.Snapshot(id)
		return err == nil
	}
	go hub.Run(ctx)
	retention := time.Duration(intEnv("TRAPZONE_SESSION_RETENTION_SECONDS", 600)) * time.Second
	go evictClosedSessions(ctx, registry, retention, time.Minute, logger)

	wsAddr := stringEnv("TRAPZONE_WS_ADDR", ":8081")
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	wsServer := &http.Server{Addr: wsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := wsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("websocket server: %v", err)
		}
	}()

	h := httpadapter.Handler{
		GameUC: game.UseCase{
			Registry:  registry,
			Config:    cfg,
			TxManager: j.tx,
			Sessions:  j.sessions,
			Events:    j.events,
			Scenarios: scenarios,
			Publisher: hub,
			Metrics:   kpiRecorder,
			Logger:    logger,
			Now:       time.Now,
		},
		StatusUC:    status.UseCase{Live: registry, Sessions: j.sessions},
		ReplayUC:    replay.UseCase{Events: j.events},
		Scenarios:   scenarios,
		KPI:         kpiRecorder,
		AllowOrigin: stringEnv("TRAPZONE_CORS_ORIGIN", ""),
	}

	httpAddr := stringEnv("TRAPZONE_HTTP_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(httpAddr))
	h.RegisterRoutes(s)

	log.Printf("trapzone server listening on %s (websocket %s, journal %s)", httpAddr, wsAddr, j.backend)
	s.Spin()

	cancel()
	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	_ = wsServer.Shutdown(shutdownCtx)
}

// evictClosedSessions drops finished sessions from memory once they have been
// over for longer than retention.
func evictClosedSessions(ctx context.Context, registry *game.Registry, retention, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if ids := registry.EvictClosed(now.Add(-retention)); len(ids) > 0 {
				logger.Info("evicted finished sessions", "count", len(ids), "live", registry.Len())
			}
		}
	}
}

func loadConfig() (hunting.Config, error) {
	cfg := hunting.DefaultConfig()
	if path := strings.TrimSpace(os.Getenv("TRAPZONE_CONFIG")); path != "" {
		loaded, err := staticconfig.LoadFile(path, cfg)
		if err != nil {
			return hunting.Config{}, err
		}
		cfg = loaded
	}
	cfg.StartMoney = intEnv("TRAPZONE_START_MONEY", cfg.StartMoney)
	cfg.TaxMin = intEnv("TRAPZONE_TAX_MIN", cfg.TaxMin)
	cfg.TaxMax = intEnv("TRAPZONE_TAX_MAX", cfg.TaxMax)
	cfg.InitialStock = intEnv("TRAPZONE_INITIAL_STOCK", cfg.InitialStock)
	if err := cfg.Validate(); err != nil {
		return hunting.Config{}, err
	}
	return cfg, nil
}

func mustBuildJournal() journal {
	if dsn := strings.TrimSpace(os.Getenv("TRAPZONE_DB_DSN")); dsn != "" {
		db, err := gormrepo.OpenPostgres(dsn)
		if err != nil {
			log.Fatalf("open postgres: %v", err)
		}
		applied, err := gormrepo.ApplyMigrations(context.Background(), db, migrationsFS())
		if err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
		log.Printf("applied %d migration(s)", len(applied))
		return journal{
			backend:  "postgres",
			events:   gormrepo.NewEventRepo(db),
			sessions: gormrepo.NewSessionRepo(db),
			tx:       gormrepo.NewTxManager(db),
		}
	}
	if path := strings.TrimSpace(os.Getenv("TRAPZONE_SQLITE_PATH")); path != "" {
		db, err := sqliterepo.InitSQLite(path)
		if err != nil {
			log.Fatalf("open sqlite: %v", err)
		}
		return journal{
			backend:  "sqlite",
			events:   sqliterepo.NewEventRepo(db),
			sessions: sqliterepo.NewSessionRepo(db),
			tx:       sqliterepo.NewTxManager(db),
		}
	}
	store := memory.NewStore()
	return journal{
		backend:  "memory",
		events:   memory.NewEventRepo(store),
		sessions: memory.NewSessionRepo(store),
		tx:       memory.NewTxManager(store),
	}
}

func migrationsFS() fs.FS {
	if dir := strings.TrimSpace(os.Getenv("TRAPZONE_MIGRATIONS_DIR")); dir != "" {
		return os.DirFS(dir)
	}
	return migrations.FS
}

func resolveScenariosRoot() string {
	if root := strings.TrimSpace(os.Getenv("TRAPZONE_SCENARIOS_DIR")); root != "" {
		return root
	}
	return "./scenarios"
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
