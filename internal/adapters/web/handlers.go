// Package web renders the listing and map pages from the places API.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"tourist_places/internal/app"
	"tourist_places/internal/catalog"
	"tourist_places/internal/domain"
	"tourist_places/internal/geo"
)

//go:embed templates/*.html
var templateFS embed.FS

// PlacesClient is the slice of the API the pages need.
type PlacesClient interface {
	ListPlaces(ctx context.Context, f domain.PlaceFilter) ([]domain.Place, error)
	MapView(ctx context.Context, name string, user *domain.Coords) (app.MapView, error)
}

type Handlers struct {
	client PlacesClient
	tmpl   *template.Template
}

// NewHandlers parses the embedded templates. imageBase is the API root serving /uploads/.
func NewHandlers(c PlacesClient, imageBase string) (*Handlers, error) {
	tmpl, err := template.New("web").Funcs(funcs(imageBase)).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Handlers{client: c, tmpl: tmpl}, nil
}

func funcs(imageBase string) template.FuncMap {
	return template.FuncMap{
		"imageURL": func(name string) string {
			if name == "" {
				return ""
			}
			return imageBase + "/uploads/" + url.PathEscape(name)
		},
		"mapURL": func(name string) string {
			return "/map?" + url.Values{"name": {name}}.Encode()
		},
		"price": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
		"km": func(d *float64) string {
			if d == nil {
				return "N/A"
			}
			return fmt.Sprintf("%.2f km", *d)
		},
		"modeIcon": func(m geo.Mode) string {
			switch m {
			case geo.Walking:
				return "🚶"
			case geo.Cycling:
				return "🚴"
			case geo.Driving:
				return "🚗"
			}
			return ""
		},
		"modeLabel": func(m geo.Mode) string {
			s := string(m)
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
	}
}

func (h *Handlers) Routes(r chi.Router) {
	r.Get("/", h.places)
	r.Get("/map", h.mapPage)
}

type placesPage struct {
	Categories []string
	Category   string
	Cost       string
	Rating     string
	Places     []domain.Place
	Notice     string
}

func (h *Handlers) places(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := placesPage{
		Categories: catalog.Categories,
		Category:   q.Get(app.ParamCategory),
		Cost:       q.Get(app.ParamCost),
		Rating:     q.Get(app.ParamRating),
		Places:     []domain.Place{},
	}

	f, err := app.ParseFilter(q)
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		page.Notice = "Please enter a valid " + ve.Param + "."
	case err != nil:
		page.Notice = err.Error()
	default:
		ps, err := h.client.ListPlaces(r.Context(), f)
		if err != nil {
			log.Error().Err(err).Str("filter", f.Key()).Msg("fetch places failed")
			page.Notice = "Places could not be loaded right now."
		} else {
			page.Places = ps
		}
	}

	h.render(w, http.StatusOK, "places", page)
}

type mapPage struct {
	View app.MapView
}

func (h *Handlers) mapPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := q.Get("name")
	user := app.ParseCoords(q.Get("lat"), q.Get("lon"))

	if name == "" {
		h.render(w, http.StatusNotFound, "notfound", nil)
		return
	}
	mv, err := h.client.MapView(r.Context(), name, user)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.render(w, http.StatusNotFound, "notfound", nil)
			return
		}
		log.Error().Err(err).Str("name", name).Msg("fetch map view failed")
		http.Error(w, "map is unavailable right now", http.StatusBadGateway)
		return
	}

	h.render(w, http.StatusOK, "map", mapPage{View: mv})
}

// render executes into a buffer so a template error never leaves a half-written page.
func (h *Handlers) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, "Error rendering template", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
