package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"tourist_places/internal/app"
	"tourist_places/internal/domain"
)

type Handlers struct {
	Q    *app.QueryService
	Seed *app.SeedService

	UploadsDir  string
	PopulateRPS float64
}

type message struct {
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/api", func(r chi.Router) {
		r.With(RateLimit(h.PopulateRPS, 2)).Post("/populate", h.populate)
		r.Get("/places", h.listPlaces)
		r.Get("/places/{slug}", h.getPlace)
		r.Get("/map", h.mapView)
	})

	if h.UploadsDir != "" {
		s.mux.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.UploadsDir))))
	}
}

// writeJSON encodes before writing the header so an unencodable value becomes a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("encode JSON response failed")
		status = http.StatusInternalServerError
		body = []byte(`{"message":"failed to encode response"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCached writes v with a weak ETag and answers 304 when the client already has it.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeJSON(w, http.StatusInternalServerError, message{Message: "failed to encode response"})
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) populate(w http.ResponseWriter, r *http.Request) {
	n, err := h.Seed.Populate(r.Context())
	if err != nil {
		log.Error().Err(err).Int("added", n).Msg("populate failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if n == 0 {
		writeJSON(w, http.StatusBadRequest, message{Message: "All places already exist. No new data added!"})
		return
	}
	writeJSON(w, http.StatusCreated, message{Message: fmt.Sprintf("%d new places added successfully!", n)})
}

func (h *Handlers) listPlaces(w http.ResponseWriter, r *http.Request) {
	f, err := app.ParseFilter(r.URL.Query())
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusBadRequest, message{Message: ve.Error(), Param: ve.Param})
			return
		}
		writeJSON(w, http.StatusBadRequest, message{Message: err.Error()})
		return
	}

	places, err := h.Q.ListPlaces(r.Context(), f)
	if err != nil {
		log.Error().Err(err).Str("filter", f.Key()).Msg("list places failed")
		writeJSON(w, http.StatusInternalServerError, message{Message: err.Error()})
		return
	}
	writeCached(w, r, places)
}

func (h *Handlers) getPlace(w http.ResponseWriter, r *http.Request) {
	p, err := h.Q.GetPlace(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, message{Message: "place not found"})
			return
		}
		log.Error().Err(err).Msg("get place failed")
		writeJSON(w, http.StatusInternalServerError, message{Message: err.Error()})
		return
	}
	writeCached(w, r, p)
}

func (h *Handlers) mapView(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	user := app.ParseCoords(q.Get("lat"), q.Get("lon"))

	mv, err := h.Q.MapView(r.Context(), q.Get("name"), user)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, message{Message: "Location not found"})
			return
		}
		log.Error().Err(err).Msg("map view failed")
		writeJSON(w, http.StatusInternalServerError, message{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, mv)
}
