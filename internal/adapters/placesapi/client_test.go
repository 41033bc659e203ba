package placesapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"tourist_places/internal/adapters/placesapi"
	"tourist_places/internal/domain"
)

func TestClient_ListPlaces_SendsFilter(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/places" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]domain.Place{{ID: "a1", Name: "Tekri Hill", Category: "Hill"}})
	}))
	defer ts.Close()

	cl, err := placesapi.New(ts.URL, 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	cat := "Hill"
	got, err := cl.ListPlaces(context.Background(), domain.PlaceFilter{Category: &cat})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a1" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if gotQuery != "category=Hill" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
}

func TestClient_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	cl, _ := placesapi.New(ts.URL, 100)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := cl.ListPlaces(ctx, domain.PlaceFilter{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
	if atomic.LoadInt32(&hits) != 2 {
		t.Fatalf("expected 2 calls, got %d", hits)
	}
}

func TestClient_MapView_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lat") != "26.27" || r.URL.Query().Get("lon") != "73.01" {
			t.Errorf("user location not forwarded: %s", r.URL.RawQuery)
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Location not found"}`))
	}))
	defer ts.Close()

	cl, _ := placesapi.New(ts.URL, 100)
	_, err := cl.MapView(context.Background(), "Atlantis", &domain.Coords{Lat: 26.27, Lon: 73.01})
	if !placesapi.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestClient_ValidationErrorSurfacesMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"invalid cost: must be a number","param":"cost"}`))
	}))
	defer ts.Close()

	cl, _ := placesapi.New(ts.URL, 100)
	_, err := cl.ListPlaces(context.Background(), domain.PlaceFilter{})
	var se *placesapi.StatusError
	if !errors.As(err, &se) || se.Status != http.StatusBadRequest || se.Message != "invalid cost: must be a number" {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestNew_RejectsBadBase(t *testing.T) {
	if _, err := placesapi.New("not a url", 1); err == nil {
		t.Fatalf("expected error")
	}
}
