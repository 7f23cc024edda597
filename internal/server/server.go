// Package server exposes the onboarding platform over HTTP: questionnaire
// sessions, account creation, the dashboard, KYC, the advisor chat and
// funnel analytics.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ameya-wealth/wealth-api/internal/advisor"
	"github.com/ameya-wealth/wealth-api/internal/kyc"
	"github.com/ameya-wealth/wealth-api/internal/model"
	"github.com/ameya-wealth/wealth-api/internal/onboarding"
	"github.com/ameya-wealth/wealth-api/internal/storage"
	"github.com/ameya-wealth/wealth-api/internal/store"
	"github.com/ameya-wealth/wealth-api/pkg/anthropic"
)

// KYCService is the slice of the KYC saga the handlers need.
type KYCService interface {
	Initiate(ctx context.Context, req kyc.InitiateRequest) (*kyc.Outcome, error)
	Status(ctx context.Context, userID string) (*kyc.StatusReport, error)
	SubmitDocument(ctx context.Context, doc *model.UserDocument) (*model.UserDocument, error)
	ReviewDocument(ctx context.Context, userID, docID string, approved bool, notes string) (*model.KYCRecord, error)
}

// ChatService streams advisor responses.
type ChatService interface {
	Chat(ctx context.Context, req advisor.ChatRequest, onDelta func(text string) error) (*anthropic.MessageResponse, error)
}

// LeadPusher pushes new accounts to the CRM without blocking the request.
type LeadPusher interface {
	PushLeadAsync(profile *model.UserProfile, investor *model.InvestorProfile, goal *model.GoalRecord)
}

// Deps wires the server to its collaborators. Advisor, CRM and Blobs may be
// nil; the matching endpoints then report unavailable.
type Deps struct {
	Store    store.Store
	Sessions onboarding.SessionStore
	Emitter  onboarding.Emitter
	KYC      KYCService
	Advisor  ChatService
	CRM      LeadPusher
	Blobs    storage.BlobStore
}

// Options tunes the HTTP surface.
type Options struct {
	AllowedOrigins []string
	MaxUploadBytes int64
}

// Server is the HTTP API.
type Server struct {
	deps    Deps
	opts    Options
	machine *onboarding.Machine
	router  chi.Router
}

// New builds the server and its route table.
func New(deps Deps, opts Options) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		deps:    deps,
		opts:    opts,
		machine: onboarding.NewMachine(deps.Emitter),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(metricsMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/onboarding/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Get("/{id}", s.handleGetSession)
			r.Post("/{id}/answers", s.handleSelectAnswer)
			r.Post("/{id}/advance", s.handleAdvance)
			r.Post("/{id}/back", s.handleBack)
			r.Post("/{id}/restart", s.handleRestart)
			r.Get("/{id}/result", s.handleResult)
		})

		r.Post("/accounts", s.handleCreateAccount)
		r.Get("/dashboard/{userID}", s.handleDashboard)
		r.Post("/dashboard/{userID}/holdings", s.handleAddHolding)

		r.Route("/kyc", func(r chi.Router) {
			r.Post("/initiate", s.handleKYCInitiate)
			r.Get("/status/{userID}", s.handleKYCStatus)
			r.Post("/documents", s.handleDocumentUpload)
			r.Post("/documents/{docID}/review", s.handleDocumentReview)
		})

		r.Post("/advisor/chat", s.handleAdvisorChat)

		r.Post("/events", s.handleIngestEvents)
		r.Get("/admin/funnel", s.handleFunnelReport)
	})

	return r
}

// Router exposes the handler for tests and embedding.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Store.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "store unreachable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Run serves until ctx is cancelled, then drains in-flight requests. It
// returns only once the drain has finished so callers can tear down the
// handlers' collaborators safely.
func (s *Server) Run(ctx context.Context, port int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return eris.Wrap(err, "server listen")
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	zap.L().Info("starting server", zap.Int("port", port))
	return serve(ctx, srv, ln)
}

// serve runs srv on ln until ctx is cancelled. Serve returns as soon as
// Shutdown is called, so serve waits for the shutdown goroutine before
// returning; otherwise in-flight handlers could outlive the caller's
// deferred cleanup.
func serve(ctx context.Context, srv *http.Server, ln net.Listener) error {
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server serve")
	}
	<-drained
	return nil
}
