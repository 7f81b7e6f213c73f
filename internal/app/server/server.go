package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"diarias/internal/domain/auth"
	"diarias/internal/domain/roster"
	"diarias/internal/platform/config"
	"diarias/internal/platform/db"
	authhandler "diarias/internal/transport/http/handlers/auth"
	exporthandler "diarias/internal/transport/http/handlers/export"
	rosterhandler "diarias/internal/transport/http/handlers/roster"
	"diarias/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Router http.Handler
}

// New wires stores, services and handlers onto the router. Run owns the
// process lifecycle; New exists so tests can drive the full router.
func New(cfg config.Config, pool *pgxpool.Pool) *App {
	authStore := auth.NewStore(pool)
	rosterStore := roster.NewStore(pool)
	rosterService := roster.NewService(rosterStore, roster.NewNotifier())

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

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
		authHandler := authhandler.NewHandler(authStore, cfg.JWTSecret, cfg.SessionTTL, cfg.AllowSelfSignup)
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)

			r.Get("/me", authHandler.HandleMe)

			rosterHandler := rosterhandler.NewHandler(rosterService)
			r.Route("/employees", func(r chi.Router) {
				r.Get("/", rosterHandler.HandleList)
				r.Post("/", rosterHandler.HandleCreate)
				r.Put("/{employeeID}", rosterHandler.HandleUpdate)
				r.Delete("/{employeeID}", rosterHandler.HandleDelete)
				r.Put("/{employeeID}/workdays/{month}", rosterHandler.HandleSaveMonth)
				r.Delete("/{employeeID}/workdays/{workDayID}", rosterHandler.HandleDeleteWorkDay)
				r.Get("/{employeeID}/summary/{month}", rosterHandler.HandleSummary)

				exportHandler := exporthandler.NewHandler(rosterService)
				r.Get("/{employeeID}/export/{month}", exportHandler.HandleExport)
			})

			r.Get("/roster/stream", rosterHandler.HandleStream)
		})
	})

	return &App{Config: cfg, DB: pool, Router: router}
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	app := New(cfg, pool)

	log.Printf("diarias server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
