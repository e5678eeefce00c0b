package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"auilqec/internal/config"
	"auilqec/internal/model"
	"auilqec/internal/report"
	"auilqec/internal/storage"
)

// APIServer provides HTTP endpoints for running and retrieving
// QEC/AUIL comparison sweeps.
type APIServer struct {
	store       *storage.PostgresStore
	rateLimiter *rate.Limiter
	metrics     *Metrics
}

// Metrics tracks API performance.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	activeRequests  prometheus.Gauge
	sweepsTotal     prometheus.Counter
}

func newMetrics() *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"endpoint", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "api_request_duration_seconds",
				Help:    "API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		activeRequests: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "api_active_requests",
				Help: "Number of active API requests",
			},
		),
		sweepsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sweeps_computed_total",
				Help: "Total number of comparison sweeps computed",
			},
		),
	}

	prometheus.MustRegister(m.requestsTotal, m.requestDuration, m.activeRequests, m.sweepsTotal)
	return m
}

func NewAPIServer(store *storage.PostgresStore) *APIServer {
	return &APIServer{
		store:       store,
		rateLimiter: rate.NewLimiter(rate.Limit(100), 200), // 100 RPS burst 200
		metrics:     newMetrics(),
	}
}

// SweepRequest represents the API request payload. Unset fields fall
// back to the toy-model defaults.
type SweepRequest struct {
	SystemSize  int      `json:"system_size,omitempty"`
	GridPoints  int      `json:"grid_points,omitempty"`
	TrialPoints int      `json:"trial_points,omitempty"`
	Codes       []string `json:"codes,omitempty"`
	TrialCode   string   `json:"trial_code,omitempty"`
	TrialSeed   *int64   `json:"trial_seed,omitempty"`
}

// SweepResponse returns the run id and the headline rates; the full
// payload is retrievable by id.
type SweepResponse struct {
	RunID           uuid.UUID               `json:"run_id"`
	SystemSize      int                     `json:"system_size"`
	GridPoints      int                     `json:"grid_points"`
	Classifications []report.Classification `json:"classifications"`
}

// HealthResponse represents health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

func (s *APIServer) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.rateLimiter.Allow() {
			s.metrics.requestsTotal.WithLabelValues(r.URL.Path, "429").Inc()
			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *APIServer) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.metrics.activeRequests.Inc()
		defer s.metrics.activeRequests.Dec()

		next.ServeHTTP(w, r)

		duration := time.Since(start).Seconds()
		s.metrics.requestDuration.WithLabelValues(r.URL.Path).Observe(duration)
	})
}

// HandleHealth returns API health status.
func (s *APIServer) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleComputeSweep runs a full comparison sweep, archives it, and
// returns the run id with the per-code detection rates.
func (s *APIServer) HandleComputeSweep(w http.ResponseWriter, r *http.Request) {
	var req SweepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cfg, err := configFromRequest(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rpt, err := report.Build(cfg)
	if err != nil {
		log.Printf("Failed to build report: %v", err)
		http.Error(w, "Failed to compute sweep", http.StatusInternalServerError)
		return
	}
	s.metrics.sweepsTotal.Inc()

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	runID, err := s.store.InsertRun(ctx, rpt)
	if err != nil {
		log.Printf("Failed to archive run: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := SweepResponse{
		RunID:           runID,
		SystemSize:      rpt.SystemSize,
		GridPoints:      len(rpt.Grid),
		Classifications: rpt.Classifications,
	}

	s.metrics.requestsTotal.WithLabelValues("/api/v1/sweep", "200").Inc()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleListRuns returns recent archived runs.
func (s *APIServer) HandleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	records, err := s.store.ListRuns(ctx, limit)
	if err != nil {
		log.Printf("Failed to list runs: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

// HandleGetRun returns one archived run's full payload.
func (s *APIServer) HandleGetRun(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid run id", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	rpt, err := s.store.GetRun(ctx, id)
	if err != nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rpt)
}

// configFromRequest applies request overrides to the default
// configuration, rebuilding threshold tables so the 1/n invariant
// holds for the requested system size.
func configFromRequest(req SweepRequest) (config.Config, error) {
	cfg := config.Default()

	if req.SystemSize > 0 {
		cfg.SystemSize = req.SystemSize
	}
	if req.GridPoints > 0 {
		cfg.Grid = config.Linspace(0, 1, req.GridPoints)
	}
	if req.TrialPoints > 0 {
		cfg.TrialGrid = config.Linspace(0, 1, req.TrialPoints)
	}
	if len(req.Codes) > 0 {
		codes := make([]model.Code, 0, len(req.Codes))
		for _, label := range req.Codes {
			code, err := model.ParseCode(label)
			if err != nil {
				return config.Config{}, err
			}
			codes = append(codes, code)
		}
		cfg.Codes = codes
	}
	if req.TrialCode != "" {
		code, err := model.ParseCode(req.TrialCode)
		if err != nil {
			return config.Config{}, err
		}
		cfg.TrialCode = code
	}
	if req.TrialSeed != nil {
		cfg.TrialSeed = *req.TrialSeed
	}

	qec := make(map[model.Code]float64, len(cfg.Codes))
	auil := make(map[model.Code]float64, len(cfg.Codes))
	for _, c := range cfg.Codes {
		qec[c] = 0.5
		auil[c] = 1.0 / float64(cfg.SystemSize)
	}
	cfg.ThresholdQEC = qec
	cfg.ThresholdAUIL = auil

	return cfg, cfg.Validate()
}

func main() {
	// Database configuration from environment
	dbConfig := storage.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		Database: getEnv("DB_NAME", "auilqec_db"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	store, err := storage.NewPostgresStore(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := store.InitSchema(initCtx); err != nil {
		cancel()
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	cancel()

	server := NewAPIServer(store)

	// Setup router
	r := mux.NewRouter()
	r.Use(server.rateLimitMiddleware)
	r.Use(server.metricsMiddleware)

	// API endpoints
	r.HandleFunc("/health", server.HandleHealth).Methods("GET")
	r.HandleFunc("/api/v1/sweep", server.HandleComputeSweep).Methods("POST")
	r.HandleFunc("/api/v1/runs", server.HandleListRuns).Methods("GET")
	r.HandleFunc("/api/v1/runs/{id}", server.HandleGetRun).Methods("GET")

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// HTTP server
	port := getEnv("PORT", "8080")
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("API server listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
