package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"hrms/internal/domain/assistant"
	"hrms/internal/domain/hr"
	"hrms/internal/platform/config"
	"hrms/internal/platform/docstore"
	"hrms/internal/platform/llm"
	"hrms/internal/transport/http/api"
	assistanthandler "hrms/internal/transport/http/handlers/assistant"
	authhandler "hrms/internal/transport/http/handlers/auth"
	leavehandler "hrms/internal/transport/http/handlers/leave"
	orghandler "hrms/internal/transport/http/handlers/org"
	payrollhandler "hrms/internal/transport/http/handlers/payroll"
	performancehandler "hrms/internal/transport/http/handlers/performance"
	"hrms/internal/transport/http/middleware"
)

func Run() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	store, err := docstore.Connect(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		log.Fatalf("store connect failed: %v", err)
	}
	defer store.Close()

	if err := docstore.Migrate(ctx, store.Pool, cfg.DatabaseName, cfg.MigrationsDir); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	llmClient := llm.NewAnthropic(cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	router := NewRouter(cfg, store, llmClient, store.Ping)

	slog.Info("HR server listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// NewRouter assembles the full HTTP surface. The docstore and LLM client
// come in as interfaces so tests can swap in doubles.
func NewRouter(cfg config.Config, db docstore.Store, llmClient llm.Client, ping func(context.Context) error) http.Handler {
	hrStore := hr.NewStore(db)
	assistantService := assistant.NewService(hrStore, llmClient)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				http.Error(w, "store not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			api.JSON(w, http.StatusOK, map[string]string{"message": "HR Management API"})
		})

		authHandler := authhandler.NewHandler(hrStore, cfg.JWTSecret, cfg.TokenTTL)
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(cfg.JWTSecret, hrStore))

			r.Post("/auth/mfa/setup", authHandler.HandleMFASetup)
			r.Post("/auth/mfa/activate", authHandler.HandleMFAActivate)

			orghandler.NewHandler(hrStore).RegisterRoutes(r)
			leavehandler.NewHandler(hrStore).RegisterRoutes(r)
			performancehandler.NewHandler(hrStore).RegisterRoutes(r)
			payrollhandler.NewHandler(hrStore).RegisterRoutes(r)
			assistanthandler.NewHandler(assistantService).RegisterRoutes(r)
		})
	})

	return router
}
