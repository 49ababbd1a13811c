package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Harshitk-cp/flash/internal/api/handlers"
	mw "github.com/Harshitk-cp/flash/internal/api/middleware"
	"github.com/Harshitk-cp/flash/internal/config"
	"github.com/Harshitk-cp/flash/internal/domain"
	"github.com/Harshitk-cp/flash/internal/embedding"
	"github.com/Harshitk-cp/flash/internal/llm"
	"github.com/Harshitk-cp/flash/internal/service"
	"github.com/Harshitk-cp/flash/internal/store"
)

// App holds the router plus request metrics.
type App struct {
	Router       *chi.Mux
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(db *pgxpool.Pool, logger *zap.Logger) *App {
	// Stores
	profileStore := store.NewProfileStore(db)
	answerStore := store.NewAnswerStore(db)
	applicationLogStore := store.NewApplicationLogStore(db)

	// External clients via provider factory
	var generationClient domain.GenerationClient
	var embeddingClient domain.EmbeddingClient

	llmProvider := config.LLMProvider()
	embeddingProvider := config.EmbeddingProvider()

	var err error
	generationClient, err = llm.NewClient(llmProvider, config.LLMAPIKey())
	if err != nil {
		logger.Warn("generation client initialization failed", zap.String("provider", llmProvider), zap.Error(err))
	} else {
		logger.Info("generation client initialized", zap.String("provider", llmProvider))
	}

	embeddingClient, err = embedding.NewClient(embeddingProvider, config.EmbeddingAPIKey())
	if err != nil {
		logger.Warn("embedding client initialization failed", zap.String("provider", embeddingProvider), zap.Error(err))
	} else {
		logger.Info("embedding client initialized", zap.String("provider", embeddingProvider))
	}

	// Services
	historySearch := service.NewHistorySearch(answerStore, embeddingClient, config.SearchTimeout(), logger)
	aggregator := service.NewEvidenceAggregator(historySearch, logger)
	composer := service.NewAnswerComposer(generationClient, config.GenerationTimeout(), logger)
	guardrails := service.NewGuardrailsService()
	knowledge := service.NewKnowledgeService(answerStore, embeddingClient, logger)
	analyzer := service.NewJobAnalyzerService(generationClient, logger)
	tailor := service.NewResumeTailorService(generationClient, guardrails, logger)
	applications := service.NewApplicationService(aggregator, composer, guardrails, applicationLogStore, logger)

	// Handlers
	answerHandler := handlers.NewAnswerHandler(aggregator, composer, guardrails, knowledge, profileStore)
	profileHandler := handlers.NewProfileHandler(profileStore)
	jobHandler := handlers.NewJobHandler(analyzer)
	resumeHandler := handlers.NewResumeHandler(tailor, analyzer)
	applicationHandler := handlers.NewApplicationHandler(applications, profileStore)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		startTime: time.Now(),
	}

	// Metrics collector for middleware
	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	r.Get("/health", healthHandler(db))
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		// Answer composition
		r.Route("/answers", func(r chi.Router) {
			r.Post("/", answerHandler.Compose)
			r.Post("/approve", answerHandler.Approve)
		})

		// Job analysis
		r.Post("/jobs/analyze", jobHandler.Analyze)

		// Resume tailoring
		r.Post("/resumes/tailor", resumeHandler.Tailor)

		// Application filling
		r.Post("/applications/fill", applicationHandler.Fill)
		r.Get("/applications/profile/{profileID}", applicationHandler.History)

		// Profiles
		r.Route("/profiles", func(r chi.Router) {
			r.Post("/", profileHandler.Create)
			r.Get("/", profileHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", profileHandler.GetByID)
				r.Put("/", profileHandler.Update)
				r.Delete("/", profileHandler.Delete)
			})
		})
	})

	return app
}

// NewRouter returns just the chi.Mux.
func NewRouter(db *pgxpool.Pool, logger *zap.Logger) *chi.Mux {
	return NewApp(db, logger).Router
}

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores and clients satisfy interfaces at compile time.
var (
	_ domain.ProfileStore        = (*store.ProfileStore)(nil)
	_ domain.AnswerStore         = (*store.AnswerStore)(nil)
	_ domain.ApplicationLogStore = (*store.ApplicationLogStore)(nil)
	_ domain.EmbeddingClient     = (*embedding.OpenAIClient)(nil)
	_ domain.EmbeddingClient     = (*embedding.MockClient)(nil)
	_ domain.GenerationClient    = (*llm.OpenAIClient)(nil)
	_ domain.GenerationClient    = (*llm.AnthropicClient)(nil)
	_ domain.GenerationClient    = (*llm.GeminiClient)(nil)
	_ domain.GenerationClient    = (*llm.CerebrasClient)(nil)
	_ domain.GenerationClient    = (*llm.MockClient)(nil)
)
