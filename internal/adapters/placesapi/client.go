// Package placesapi is the frontend's HTTP client for the places API.
package placesapi

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"tourist_places/internal/adapters/observability"
	"tourist_places/internal/app"
	"tourist_places/internal/domain"
)

const service = "places_api"

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int) (*Client, error) {
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", base, err)
	}
	if rps <= 0 {
		rps = 20
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 10 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// Base is the API root, used by pages to build image URLs under /uploads/.
func (c *Client) Base() string { return c.base }

// ---- Public API ----

func (c *Client) ListPlaces(ctx context.Context, f domain.PlaceFilter) ([]domain.Place, error) {
	u := c.base + "/api/places"
	if q := app.FilterValues(f); len(q) > 0 {
		u += "?" + q.Encode()
	}
	out := []domain.Place{}
	if err := c.get(ctx, "places", u, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MapView fetches the map model for name. user may be nil.
func (c *Client) MapView(ctx context.Context, name string, user *domain.Coords) (app.MapView, error) {
	q := url.Values{"name": {name}}
	if user != nil {
		q.Set("lat", strconv.FormatFloat(user.Lat, 'f', -1, 64))
		q.Set("lon", strconv.FormatFloat(user.Lon, 'f', -1, 64))
	}
	var out app.MapView
	if err := c.get(ctx, "map", c.base+"/api/map?"+q.Encode(), &out); err != nil {
		return app.MapView{}, err
	}
	return out, nil
}

// ---- Internals ----

// ErrNotFound mirrors a 404 from the API.
var ErrNotFound = fmt.Errorf("places api: %w", domain.ErrNotFound)

// StatusError is any other non-success answer.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("places api: status %d: %s", e.Status, e.Message)
}

// get performs a GET with client-side rate limiting, retries, and JSON decode into out.
// Retries on transient 5xx, honoring Retry-After when provided.
func (c *Client) get(ctx context.Context, endpoint, target string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 3; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "tourist-places-web/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal(service, endpoint, 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 2 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			return lastErr
		}
		observability.ObserveExternal(service, endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNotFound:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return ErrNotFound

		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = &StatusError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
			if i < 2 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			return decodeError(resp)
		}
	}
	return lastErr
}

// decodeError reads the API's {"message": ...} body into a StatusError.
func decodeError(resp *http.Response) error {
	defer resp.Body.Close()
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := strings.TrimSpace(string(b))
	if json.Unmarshal(b, &body) == nil {
		if body.Message != "" {
			msg = body.Message
		} else if body.Error != "" {
			msg = body.Error
		}
	}
	return &StatusError{Status: resp.StatusCode, Message: msg}
}

// IsNotFound reports whether err came from a 404.
func IsNotFound(err error) bool { return errors.Is(err, domain.ErrNotFound) }

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After in seconds. Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	if secs, err := strconv.Atoi(strings.TrimSpace(resp.Header.Get("Retry-After"))); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}

// backoff doubles from 100ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 100 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	return base + time.Duration(0.5*float64(b[0])/255.0*float64(base))
}
