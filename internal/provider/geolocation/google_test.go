package geolocation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const joesPizzaDetails = `{
  "status": "OK",
  "result": {
    "place_id": "X",
    "name": "Joe's Pizza",
    "formatted_address": "1435 Broadway",
    "geometry": { "location": { "lat": 40.75, "lng": -73.98 } }
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *GoogleClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewGoogleClientWithOptions("test-key", server.URL, server.Client(), zap.NewNop())
}

func TestPlaceDetails_Success(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/details/json", r.URL.Path)
		assert.Equal(t, "X", r.URL.Query().Get("place_id"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(joesPizzaDetails))
	})

	place, err := client.PlaceDetails(context.Background(), "X")
	require.NoError(t, err)
	assert.Equal(t, &Place{
		ID:               "X",
		Name:             "Joe's Pizza",
		Latitude:         40.75,
		Longitude:        -73.98,
		FormattedAddress: "1435 Broadway",
	}, place)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestPlaceDetails_ZeroCoordinatesAreValid(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK","result":{"name":"Null Island Cafe","formatted_address":"0,0","geometry":{"location":{"lat":0,"lng":0}}}}`))
	})

	place, err := client.PlaceDetails(context.Background(), "Z")
	require.NoError(t, err)
	assert.Equal(t, "Z", place.ID)
	assert.Zero(t, place.Latitude)
	assert.Zero(t, place.Longitude)
}

func TestPlaceDetails_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{}`},
		{name: "malformed body", status: http.StatusOK, body: `{"status":`},
		{name: "provider status", status: http.StatusOK, body: `{"status":"NOT_FOUND"}`},
		{name: "missing result", status: http.StatusOK, body: `{"status":"OK"}`},
		{name: "missing name", status: http.StatusOK, body: `{"status":"OK","result":{"formatted_address":"a","geometry":{"location":{"lat":1,"lng":2}}}}`},
		{name: "missing address", status: http.StatusOK, body: `{"status":"OK","result":{"name":"a","geometry":{"location":{"lat":1,"lng":2}}}}`},
		{name: "missing longitude", status: http.StatusOK, body: `{"status":"OK","result":{"name":"a","formatted_address":"b","geometry":{"location":{"lat":1}}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			place, err := client.PlaceDetails(context.Background(), "X")
			assert.Nil(t, place)
			assert.ErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestPlaceDetails_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	t.Cleanup(server.Close)

	client := NewGoogleClientWithOptions("test-key", server.URL, &http.Client{Timeout: 50 * time.Millisecond}, zap.NewNop())

	_, err := client.PlaceDetails(context.Background(), "X")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPlaceDetails_MissingAPIKey(t *testing.T) {
	client := NewGoogleClientWithOptions("", "http://127.0.0.1:1", nil, zap.NewNop())

	_, err := client.PlaceDetails(context.Background(), "X")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNearbyRestaurants(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nearbysearch/json", r.URL.Path)
		assert.Equal(t, "40.750000,-73.980000", r.URL.Query().Get("location"))
		assert.Equal(t, "500", r.URL.Query().Get("radius"))
		assert.Equal(t, "restaurant", r.URL.Query().Get("type"))
		_, _ = w.Write([]byte(`{
  "status": "OK",
  "results": [
    {"place_id": "X", "name": "Joe's Pizza", "vicinity": "1435 Broadway", "geometry": {"location": {"lat": 40.75, "lng": -73.98}}},
    {"place_id": "", "name": "No Id", "geometry": {"location": {"lat": 1, "lng": 1}}}
  ]
}`))
	})

	places, err := client.NearbyRestaurants(context.Background(), 40.75, -73.98, 500)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "X", places[0].ID)
	assert.Equal(t, "1435 Broadway", places[0].FormattedAddress)
}

func TestNearbyRestaurants_ZeroResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	})

	places, err := client.NearbyRestaurants(context.Background(), 1, 2, 100)
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestNearbyRestaurants_DeniedRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key"}`))
	})

	_, err := client.NearbyRestaurants(context.Background(), 1, 2, 100)
	assert.ErrorIs(t, err, ErrUnavailable)
}
