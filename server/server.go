package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/station-portal/identity"
	"github.com/jrsteele09/station-portal/internal/config"
	"github.com/jrsteele09/station-portal/internal/metrics"
	"github.com/jrsteele09/station-portal/server/authflowrepo"
	"github.com/jrsteele09/station-portal/sessions"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

const sweepInterval = time.Minute

type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	provider  identity.Provider
	sessions  *sessions.Manager
	authState authflowrepo.Repo
	pages     map[string]*pageTemplate
	registry  *prometheus.Registry
	metrics   metrics.Recorder
	now       func() time.Time
}

func New(config config.Config, provider identity.Provider, sessionManager *sessions.Manager, authStateRepo authflowrepo.Repo) (*Server, error) {
	if provider == nil || sessionManager == nil || authStateRepo == nil {
		return nil, fmt.Errorf("[Server New] provider, session manager and auth state repo are required")
	}

	registry := prometheus.NewRegistry()
	s := &Server{
		env:       config.GetEnv(),
		mux:       http.NewServeMux(),
		config:    config,
		provider:  provider,
		sessions:  sessionManager,
		authState: authStateRepo,
		registry:  registry,
		metrics:   metrics.NewCollector(registry),
		now:       time.Now,
	}
	metrics.RegisterSessionGauge(registry, sessionManager.Count)

	pages, err := parsePages(Pages)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse page templates: %w", err)
	}
	s.pages = pages

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// RunBackground sweeps expired sessions and abandoned login flows until ctx is done
func (s *Server) RunBackground(ctx context.Context) {
	go s.sessions.RunSweeper(ctx, sweepInterval)

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepAuthStates()
		}
	}
}

func (s *Server) sweepAuthStates() int {
	removed := s.authState.DeleteOlderThan(s.now().Add(-s.config.GetAuthFlowTimeout()))
	if removed > 0 {
		log.Debug().Int("removed", removed).Msg("Abandoned login flows swept")
	}
	return removed
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if sessions.IsSecureRequest(r) {
		return "https"
	}
	return "http"
}

// externalURL builds an absolute URL for path, from BASE_URL when set or from the request otherwise
func (s *Server) externalURL(r *http.Request, path string) string {
	if base := s.config.GetBaseURL(); base != "" {
		return base + path
	}
	return getScheme(r) + "://" + r.Host + path
}
