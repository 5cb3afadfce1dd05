// Package server exposes the REST API: profile management, dry-run
// evaluation, delivery history, digest schedule introspection, and
// feedback submission.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/chatscope/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/profile_store.go -pkg mocks -skip-ensure -fmt goimports . ProfileStore
//go:generate moq -out mocks/resolver.go -pkg mocks -skip-ensure -fmt goimports . Resolver
//go:generate moq -out mocks/evaluator.go -pkg mocks -skip-ensure -fmt goimports . Evaluator
//go:generate moq -out mocks/ingestor.go -pkg mocks -skip-ensure -fmt goimports . Ingestor
//go:generate moq -out mocks/delivery_store.go -pkg mocks -skip-ensure -fmt goimports . DeliveryStore
//go:generate moq -out mocks/feedback_store.go -pkg mocks -skip-ensure -fmt goimports . FeedbackStore
//go:generate moq -out mocks/feedback_scheduler.go -pkg mocks -skip-ensure -fmt goimports . FeedbackScheduler
//go:generate moq -out mocks/schedule_state.go -pkg mocks -skip-ensure -fmt goimports . ScheduleState

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	profiles  ProfileStore
	resolver  Resolver
	evaluator Evaluator
	ingestor  Ingestor
	delivered DeliveryStore
	feedback  FeedbackStore
	recompute FeedbackScheduler
	schedules ScheduleState
	dedup     interface{ Degraded() bool }
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// ProfileStore is the profile CRUD surface
type ProfileStore interface {
	GetProfile(ctx context.Context, id int64) (*domain.Profile, error)
	GetProfiles(ctx context.Context, enabledOnly bool) ([]*domain.Profile, error)
	CreateProfile(ctx context.Context, profile *domain.Profile) error
	UpdateProfile(ctx context.Context, profile *domain.Profile) error
	DeleteProfile(ctx context.Context, id int64) error
}

// Resolver provides effective profiles and cache invalidation
type Resolver interface {
	Resolve(ctx context.Context, sourceID, senderID int64) domain.EffectiveProfile
	Invalidate(profileID int64)
	InvalidateAll()
}

// Evaluator scores a message without side effects
type Evaluator interface {
	Evaluate(ctx context.Context, msg domain.Message) domain.ScoreResult
}

// Ingestor accepts a normalized message into the evaluation pipeline
type Ingestor interface {
	Submit(ctx context.Context, msg domain.Message) error
}

// DeliveryStore reads recent delivery attempts
type DeliveryStore interface {
	Recent(ctx context.Context, profileID int64, limit int) ([]domain.DeliveryAttempt, error)
}

// FeedbackStore persists user feedback events
type FeedbackStore interface {
	AddFeedback(ctx context.Context, fb *domain.Feedback) error
}

// FeedbackScheduler enqueues profile recomputes after feedback
type FeedbackScheduler interface {
	ScheduleRecompute(ctx context.Context, profileID int64)
	Degraded() bool
}

// ScheduleState reads persisted digest last run marks
type ScheduleState interface {
	GetAllLastRuns(ctx context.Context) (map[string]time.Time, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, profiles ProfileStore, resolver Resolver, evaluator Evaluator,
	ingestor Ingestor, delivered DeliveryStore, feedback FeedbackStore, recompute FeedbackScheduler,
	schedules ScheduleState, dedup interface{ Degraded() bool }, version string, debug bool) *Server {

	s := &Server{
		config:    cfg,
		profiles:  profiles,
		resolver:  resolver,
		evaluator: evaluator,
		ingestor:  ingestor,
		delivered: delivered,
		feedback:  feedback,
		recompute: recompute,
		schedules: schedules,
		dedup:     dedup,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("chatscope", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("GET /profiles", s.listProfilesHandler)
		r.HandleFunc("POST /profiles", s.createProfileHandler)
		r.HandleFunc("GET /profiles/effective", s.effectiveProfileHandler)
		r.HandleFunc("GET /profiles/{id}", s.getProfileHandler)
		r.HandleFunc("PUT /profiles/{id}", s.updateProfileHandler)
		r.HandleFunc("DELETE /profiles/{id}", s.deleteProfileHandler)

		r.HandleFunc("POST /messages", s.ingestHandler)
		r.HandleFunc("POST /evaluate", s.evaluateHandler)
		r.HandleFunc("GET /digests/due", s.digestsDueHandler)
		r.HandleFunc("GET /deliveries", s.deliveriesHandler)
		r.HandleFunc("POST /feedback", s.feedbackHandler)
	})
}
