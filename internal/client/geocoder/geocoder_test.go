package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/landgrab/internal/client/models"
	"github.com/dmitrijs2005/landgrab/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL)
}

func TestPositionToWords_OK(t *testing.T) {
	var gotQuery string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/convert-to-3wa", r.URL.Path)
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"country":"GB","words":"hints.sporting.permit"}`))
	})

	words, err := c.PositionToWords(context.Background(), models.Coordinates{Lat: 51.520847, Lng: -0.19552})
	require.NoError(t, err)
	assert.Equal(t, models.WordAddress("hints.sporting.permit"), words)
	assert.Contains(t, gotQuery, "coordinates=51.520847%2C-0.19552")
	assert.Contains(t, gotQuery, "language=en")
}

func TestPositionToWords_MissingWordsField(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"country":"GB"}`))
	})

	_, err := c.PositionToWords(context.Background(), models.Coordinates{Lat: 1, Lng: 2})
	require.ErrorIs(t, err, common.ErrInvalidAddress)
	require.ErrorIs(t, err, common.ErrGeocode)
}

func TestWordsToCoordinates_OK(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/convert-to-coordinates", r.URL.Path)
		assert.Equal(t, "apple.bee.cat", r.URL.Query().Get("words"))
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"coordinates":{"lng":-0.195521,"lat":51.520847},"words":"apple.bee.cat"}`))
	})
	c.apiKey = "secret"

	pos, err := c.WordsToCoordinates(context.Background(), "apple.bee.cat")
	require.NoError(t, err)
	assert.Equal(t, models.Coordinates{Lat: 51.520847, Lng: -0.195521}, pos)
}

func TestWordsToCoordinates_MissingCoordinatesField(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"words":"apple.bee.cat"}`))
	})

	_, err := c.WordsToCoordinates(context.Background(), "apple.bee.cat")
	require.ErrorIs(t, err, common.ErrInvalidAddress)
}

func TestWordsToCoordinates_BadWordsStatus(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BadWords","message":"Invalid or non-existent 3 word address"}}`))
	})

	_, err := c.WordsToCoordinates(context.Background(), "not.real.words")
	require.ErrorIs(t, err, common.ErrInvalidAddress)
	assert.Contains(t, err.Error(), "Invalid or non-existent 3 word address")
}

func TestGet_ServerErrorIsGeocodeError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.PositionToWords(context.Background(), models.Coordinates{})
	require.ErrorIs(t, err, common.ErrGeocode)
	require.NotErrorIs(t, err, common.ErrInvalidAddress)
}

func TestGet_UnreachableIsGeocodeError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url)
	_, err := c.PositionToWords(context.Background(), models.Coordinates{})
	require.ErrorIs(t, err, common.ErrGeocode)
}

func TestGet_MalformedBody(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"words":`))
	})

	_, err := c.PositionToWords(context.Background(), models.Coordinates{})
	require.ErrorIs(t, err, common.ErrGeocode)
}

func TestWithRateLimit_CancelledContext(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"words":"a.b.c"}`))
	})
	WithRateLimit(0.001)(c)

	_, err := c.PositionToWords(context.Background(), models.Coordinates{})
	require.NoError(t, err, "first request uses the initial burst token")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.PositionToWords(ctx, models.Coordinates{})
	require.ErrorIs(t, err, common.ErrGeocode)
}

func TestNewHTTPClient_DefaultBaseURL(t *testing.T) {
	c := NewHTTPClient("")
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Nil(t, c.limiter)
}
