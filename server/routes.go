package server

import (
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/station-portal/internal/errors"
	"github.com/jrsteele09/station-portal/internal/metrics"
	"github.com/rs/zerolog/log"
)

func (s *Server) initRoutes() {
	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteCallback, ChainMiddleware(s.CallbackHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleware(s.RequireSession())...))

	// Pages (require a login session)
	for _, p := range Pages {
		pattern := "GET " + p.Route
		if p.Route == RouteHome {
			pattern += "{$}" // "/" alone would match every unknown path
		}
		s.RegisterRouteHandler(pattern, ChainMiddleware(s.PageHandler(p.Route), s.HTMLMiddleware(s.RequireSession())...))
	}

	// Operational
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, metrics.Handler(s.registry))

	s.RegisterRouteHandler("GET "+RoutePublic, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))
	s.RegisterRouteHandler("/", ChainMiddleware(s.NotFoundHandler(), s.HTMLMiddleware()...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return s.handle(func(w http.ResponseWriter, r *http.Request) error {
		filePath := strings.TrimPrefix(r.PathValue("file"), "/")
		if filePath == "" {
			return apperrors.NewHTTPError(http.StatusNotFound, apperrors.ErrNotFound)
		}
		if err := StreamFile(w, r, filePath); err != nil {
			log.Debug().Err(err).Str("file", filePath).Msg("Static file not found")
			return apperrors.NewHTTPError(http.StatusNotFound, apperrors.ErrNotFound)
		}
		return nil
	})
}

// NotFoundHandler answers requests no route takes. Known paths asked for with the
// wrong method get a JSON 405, everything else a JSON 404.
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return s.handle(func(w http.ResponseWriter, r *http.Request) error {
		if r.Method != http.MethodGet && r.Method != http.MethodHead && s.servesGET(r) {
			w.Header().Set("Allow", "GET, HEAD")
			return apperrors.NewHTTPError(http.StatusMethodNotAllowed, apperrors.ErrMethodNotAllowed)
		}
		return apperrors.NewHTTPError(http.StatusNotFound, apperrors.ErrNotFound)
	})
}

// servesGET reports whether a GET for r's path would reach a route other than this fallback
func (s *Server) servesGET(r *http.Request) bool {
	get := r.Clone(r.Context())
	get.Method = http.MethodGet
	_, pattern := s.mux.Handler(get)
	return pattern != "" && pattern != "/"
}

// HealthHandler reports liveness
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
