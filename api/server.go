// Package api - Thin, stateless HTTP layer over the pricing engine
// The API is ONLY responsible for: input decoding, profile resolution, output serialization.
// The API NEVER performs cost logic.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"recipe-pricing/internal/config"
	"recipe-pricing/internal/errors"
	"recipe-pricing/internal/logging"
	"recipe-pricing/internal/settings"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// Options configures a Server
type Options struct {
	Version string

	// Tenant supplies the profile used when a request names none
	Tenant config.TenantConfig

	// Settings is the tenant settings file, already decoded. May be nil.
	Settings *settings.File

	MetricsNamespace string
	Registerer       prometheus.Registerer
	Gatherer         prometheus.Gatherer
	RequestTimeout   time.Duration
}

// Server is the API server
type Server struct {
	router   chi.Router
	version  string
	base     settings.File
	metrics  *Metrics
	validate *validator.Validate
	gatherer prometheus.Gatherer
	timeout  time.Duration
}

// NewServer creates a new API server
func NewServer(opts Options) *Server {
	base := settings.File{}
	if opts.Settings != nil {
		base = *opts.Settings
	}
	if base.BusinessType == "" {
		base.BusinessType = opts.Tenant.BusinessType
	}
	if base.Country == "" {
		base.Country = opts.Tenant.Country
	}

	reg := opts.Registerer
	gatherer := opts.Gatherer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		router:   chi.NewRouter(),
		version:  opts.Version,
		base:     base,
		metrics:  NewMetrics(opts.MetricsNamespace, reg),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		gatherer: gatherer,
		timeout:  opts.RequestTimeout,
	}

	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	r := s.router
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Middleware)
	if s.timeout > 0 {
		r.Use(middleware.Timeout(s.timeout))
	}

	// Pricing endpoints
	r.Route("/v1", func(r chi.Router) {
		r.Post("/quote", s.handleQuote)
		r.Post("/variants", s.handleVariants)
		r.Post("/round", s.handleRound)
		r.Post("/consistency", s.handleConsistency)

		r.Get("/business-types", s.handleBusinessTypes)
		r.Get("/business-types/{type}/defaults", s.handleBusinessDefaults)
		r.Get("/countries", s.handleCountries)
		r.Get("/countries/{country}/defaults", s.handleCountryDefaults)
		r.Get("/policies", s.handlePolicies)
	})

	// Supporting endpoints
	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Error("failed to encode response", zap.Error(err))
	}
}

// writeError maps err onto a status code and the canonical error body
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	errType := errors.TypeOf(err)
	status := statusFor(errType)
	if status >= http.StatusInternalServerError {
		logging.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		s.metrics.FailuresTotal.WithLabelValues(string(errType)).Inc()
	}

	s.writeJSON(w, status, map[string]ErrorBody{
		"error": {
			Code:      string(errType),
			Message:   err.Error(),
			RequestID: RequestIDFrom(r.Context()),
		},
	})
}

func statusFor(t errors.Type) int {
	switch t {
	case errors.TypeInvalidParameter, errors.TypeInvalidPrice, errors.TypeDivisionByZero,
		errors.TypeParse, errors.TypeConfig:
		return http.StatusUnprocessableEntity
	case errors.TypeInput:
		return http.StatusBadRequest
	case errors.TypeInvalidBusinessType, errors.TypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON body into v and validates it
func (s *Server) decode(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.TypeInput, "invalid JSON body", err)
	}
	if err := s.validate.Struct(v); err != nil {
		return errors.Wrap(errors.TypeInput, "validation failed", err)
	}
	return nil
}

type ctxKey struct{}

// RequestIDFrom returns the request ID stored by the requestID middleware
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the server and shuts it down when ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("listening", zap.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
