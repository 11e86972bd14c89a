// Package geocoder converts positions to what3words addresses and back by
// calling the what3words HTTP API.
//
// Each call is a single best-effort request: nothing is cached and nothing
// is retried. Transport failures, non-2xx responses and unreadable bodies
// are reported as common.ErrGeocode. A response that lacks the requested
// field (words or coordinates) is reported as common.ErrInvalidAddress,
// which also matches common.ErrGeocode.
package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/landgrab/internal/client/metrics"
	"github.com/dmitrijs2005/landgrab/internal/client/models"
	"github.com/dmitrijs2005/landgrab/internal/common"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://mapapi.what3words.com/api"

	endpointToWords  = "convert-to-3wa"
	endpointToCoords = "convert-to-coordinates"
)

// Geocoder is the contract the workflow services depend on.
type Geocoder interface {
	PositionToWords(ctx context.Context, pos models.Coordinates) (models.WordAddress, error)
	WordsToCoordinates(ctx context.Context, words models.WordAddress) (models.Coordinates, error)
}

type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	metrics *metrics.Metrics
}

type Option func(*HTTPClient)

// WithAPIKey sends key with every request.
func WithAPIKey(key string) Option {
	return func(c *HTTPClient) { c.apiKey = key }
}

// WithRateLimit paces requests to rps per second. rps <= 0 disables pacing.
func WithRateLimit(rps float64) Option {
	return func(c *HTTPClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *HTTPClient) { c.metrics = m }
}

func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type wordsResponse struct {
	Words string `json:"words"`
}

type coordinatesResponse struct {
	Coordinates *models.Coordinates `json:"coordinates"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// PositionToWords resolves pos to its three-word address.
func (c *HTTPClient) PositionToWords(ctx context.Context, pos models.Coordinates) (models.WordAddress, error) {
	q := url.Values{}
	q.Set("coordinates", formatCoord(pos.Lat)+","+formatCoord(pos.Lng))
	q.Set("language", "en")
	q.Set("format", "json")

	var resp wordsResponse
	err := c.get(ctx, endpointToWords, q, &resp)
	if err == nil && resp.Words == "" {
		err = fmt.Errorf("%w: %w: no words for %s,%s", common.ErrGeocode, common.ErrInvalidAddress,
			formatCoord(pos.Lat), formatCoord(pos.Lng))
	}
	c.metrics.ObserveGeocoder(endpointToWords, err)
	if err != nil {
		return "", err
	}
	return models.WordAddress(resp.Words), nil
}

// WordsToCoordinates resolves words to the centre of its cell.
func (c *HTTPClient) WordsToCoordinates(ctx context.Context, words models.WordAddress) (models.Coordinates, error) {
	q := url.Values{}
	q.Set("words", string(words))
	q.Set("format", "json")

	var resp coordinatesResponse
	err := c.get(ctx, endpointToCoords, q, &resp)
	if err == nil && resp.Coordinates == nil {
		err = fmt.Errorf("%w: %w: no coordinates for %q", common.ErrGeocode, common.ErrInvalidAddress, words)
	}
	c.metrics.ObserveGeocoder(endpointToCoords, err)
	if err != nil {
		return models.Coordinates{}, err
	}
	return *resp.Coordinates, nil
}

func (c *HTTPClient) get(ctx context.Context, endpoint string, q url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %w", common.ErrGeocode, err)
		}
	}
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrGeocode, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrGeocode, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrGeocode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.Status, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %w", common.ErrGeocode, endpoint, err)
	}
	return nil
}

func statusError(status string, body []byte) error {
	var e errorResponse
	if json.Unmarshal(body, &e) == nil && e.Error.Code != "" {
		if e.Error.Code == "BadWords" {
			return fmt.Errorf("%w: %w: %s", common.ErrGeocode, common.ErrInvalidAddress, e.Error.Message)
		}
		return fmt.Errorf("%w: %s: %s", common.ErrGeocode, e.Error.Code, e.Error.Message)
	}
	return fmt.Errorf("%w: %s", common.ErrGeocode, status)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
