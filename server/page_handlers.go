package server

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/jrsteele09/station-portal/identity"
	apperrors "github.com/jrsteele09/station-portal/internal/errors"
)

// Page is a protected, server-rendered page
type Page struct {
	Route    string
	Template string
	Title    string
}

var Pages = []Page{
	{Route: RouteHome, Template: "home.html", Title: "Home"},
	{Route: RouteProductsTraining, Template: "productsTraining.html", Title: "Products Training"},
	{Route: RouteNewStation, Template: "newStation.html", Title: "New Station"},
	{Route: RouteMyAccount, Template: "myAccount.html", Title: "My Account"},
	{Route: RouteAddCamera, Template: "addCamera.html", Title: "Add Camera"},
	{Route: RouteCameraList, Template: "cameraList.html", Title: "Camera List"},
	{Route: RouteDatasetList, Template: "DatasetList.html", Title: "Dataset List"},
}

// PageData is what every page template renders from
type PageData struct {
	AppName        string
	Title          string
	ActiveRoute    string
	Nav            []Page
	UserInfo       *identity.Identity
	UserInfoPretty string
}

type pageTemplate struct {
	page Page
	tmpl *template.Template
}

func parsePages(pages []Page) (map[string]*pageTemplate, error) {
	parsed := make(map[string]*pageTemplate, len(pages))
	for _, p := range pages {
		tmpl, err := ParseTemplate(p.Template)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Template, err)
		}
		parsed[p.Route] = &pageTemplate{page: p, tmpl: tmpl}
	}
	return parsed, nil
}

// PageHandler renders the page registered for route with the caller's identity.
// It must sit behind RequireSession.
func (s *Server) PageHandler(route string) http.HandlerFunc {
	p, ok := s.pages[route]
	if !ok {
		panic("no page registered for route " + route)
	}

	return s.handle(func(w http.ResponseWriter, r *http.Request) error {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			return apperrors.NewHTTPError(http.StatusUnauthorized, apperrors.ErrSessionNotFound)
		}

		data := PageData{
			AppName:        s.config.GetAppName(),
			Title:          p.page.Title,
			ActiveRoute:    p.page.Route,
			Nav:            Pages,
			UserInfo:       id,
			UserInfoPretty: id.Claims.Pretty(),
		}

		// Render fully before writing so a template failure still yields a clean error response
		var buf bytes.Buffer
		if err := p.tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("[PageHandler] failed to render %s: %w", p.page.Template, err)
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		_, _ = buf.WriteTo(w)
		return nil
	})
}
