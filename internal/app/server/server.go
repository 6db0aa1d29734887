package server

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"payrolld/internal/db"
	"payrolld/internal/domain/directory"
	"payrolld/internal/domain/intake"
	"payrolld/internal/domain/payroll"
	"payrolld/internal/platform/config"
	"payrolld/internal/platform/metrics"
	intakehandler "payrolld/internal/transport/http/handlers/intake"
	salarieshandler "payrolld/internal/transport/http/handlers/salaries"
	"payrolld/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	directoryStore := directory.NewStore(pool)
	cache := directory.NewCache(directoryStore.ListWorkers, cfg.DirectoryCacheTTL, nil)
	resolver := intake.NewResolver(intake.NewStore(pool))
	payrollService := payroll.NewService(payroll.NewStore(pool), resolver, cache)

	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(collector))
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		salarieshandler.NewHandler(payrollService).RegisterRoutes(r)
		intakehandler.NewHandler(resolver).RegisterRoutes(r)

		// Directory rebuilds lazily on TTL; this lets an operator force it
		// after a bulk import.
		r.Post("/directory/cache/invalidate", func(w http.ResponseWriter, req *http.Request) {
			cache.Invalidate()
			w.WriteHeader(http.StatusNoContent)
		})

		if cfg.MetricsEnabled {
			r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				writeMetrics(w, collector)
			})
		}
	})

	log.Printf("payrolld listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func writeMetrics(w http.ResponseWriter, collector *metrics.Collector) {
	if err := json.NewEncoder(w).Encode(collector.Snapshot()); err != nil {
		slog.Warn("metrics encode failed", "err", err)
	}
}
