package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"restaurant-review/pkg/utils"

	"go.uber.org/zap"
)

const (
	googlePlacesURL = "https://maps.googleapis.com/maps/api/place"

	endpointDetails = "details"
	endpointNearby  = "nearbysearch"

	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// GoogleClient talks to the Google Places web service.
type GoogleClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewGoogleClient(config utils.GeolocationConfig, log *zap.Logger) *GoogleClient {
	return NewGoogleClientWithOptions(config.APIKey, config.BaseURL, &http.Client{Timeout: config.Timeout}, log)
}

// NewGoogleClientWithOptions allows overriding base URL and HTTP client (used for tests).
func NewGoogleClientWithOptions(apiKey, baseURL string, httpClient *http.Client, log *zap.Logger) *GoogleClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = googlePlacesURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GoogleClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		log:        log.With(zap.String("provider", "google_places")),
	}
}

type googleLocation struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type googlePlace struct {
	PlaceID          string `json:"place_id"`
	Name             string `json:"name"`
	FormattedAddress string `json:"formatted_address"`
	Vicinity         string `json:"vicinity"`
	Geometry         struct {
		Location googleLocation `json:"location"`
	} `json:"geometry"`
}

type googleDetailsResponse struct {
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message"`
	Result       *googlePlace `json:"result"`
}

type googleNearbyResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Results      []googlePlace `json:"results"`
}

// PlaceDetails resolves one external id. The returned Place carries
// externalID as its ID regardless of what the provider echoes back.
func (g *GoogleClient) PlaceDetails(ctx context.Context, externalID string) (place *Place, err error) {
	defer func() { recordLookup(endpointDetails, err) }()

	params := url.Values{
		"place_id": []string{externalID},
		"fields":   []string{"place_id,name,geometry/location,formatted_address"},
	}

	var resp googleDetailsResponse
	if err := g.get(ctx, endpointDetails, params, &resp); err != nil {
		return nil, err
	}

	if resp.Status != statusOK {
		return nil, g.statusError(endpointDetails, resp.Status, resp.ErrorMessage)
	}
	if resp.Result == nil {
		return nil, fmt.Errorf("place details %s: empty result: %w", externalID, ErrUnavailable)
	}

	r := resp.Result
	if r.Name == "" || r.FormattedAddress == "" || r.Geometry.Location.Lat == nil || r.Geometry.Location.Lng == nil {
		return nil, fmt.Errorf("place details %s: incomplete result: %w", externalID, ErrUnavailable)
	}

	return &Place{
		ID:               externalID,
		Name:             r.Name,
		Latitude:         *r.Geometry.Location.Lat,
		Longitude:        *r.Geometry.Location.Lng,
		FormattedAddress: r.FormattedAddress,
	}, nil
}

// NearbyRestaurants lists restaurants within radiusMeters of a point.
// Results missing an id, a name or coordinates are skipped.
func (g *GoogleClient) NearbyRestaurants(ctx context.Context, latitude, longitude float64, radiusMeters int) (places []*Place, err error) {
	defer func() { recordLookup(endpointNearby, err) }()

	params := url.Values{
		"location": []string{fmt.Sprintf("%f,%f", latitude, longitude)},
		"radius":   []string{strconv.Itoa(radiusMeters)},
		"type":     []string{"restaurant"},
	}

	var resp googleNearbyResponse
	if err := g.get(ctx, endpointNearby, params, &resp); err != nil {
		return nil, err
	}

	switch resp.Status {
	case statusOK:
	case statusZeroResults:
		return []*Place{}, nil
	default:
		return nil, g.statusError(endpointNearby, resp.Status, resp.ErrorMessage)
	}

	places = make([]*Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.PlaceID == "" || r.Name == "" || r.Geometry.Location.Lat == nil || r.Geometry.Location.Lng == nil {
			continue
		}
		address := r.FormattedAddress
		if address == "" {
			address = r.Vicinity
		}
		places = append(places, &Place{
			ID:               r.PlaceID,
			Name:             r.Name,
			Latitude:         *r.Geometry.Location.Lat,
			Longitude:        *r.Geometry.Location.Lng,
			FormattedAddress: address,
		})
	}

	return places, nil
}

func (g *GoogleClient) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if g.apiKey == "" {
		return fmt.Errorf("google places api key is required: %w", ErrUnavailable)
	}

	params.Set("key", g.apiKey)
	reqURL := fmt.Sprintf("%s/%s/json?%s", g.baseURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %v: %w", endpoint, err, ErrUnavailable)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.log.Warn("Places request failed", zap.String("endpoint", endpoint), zap.Error(err))
		return fmt.Errorf("%s request failed: %v: %w", endpoint, err, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.log.Warn("Places request returned error status",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%s request returned status %d: %w", endpoint, resp.StatusCode, ErrUnavailable)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %v: %w", endpoint, err, ErrUnavailable)
	}

	return nil
}

func (g *GoogleClient) statusError(endpoint, status, message string) error {
	g.log.Warn("Places API returned non-OK status",
		zap.String("endpoint", endpoint),
		zap.String("status", status),
		zap.String("message", message),
	)
	if message != "" {
		return fmt.Errorf("%s status %s: %s: %w", endpoint, status, message, ErrUnavailable)
	}
	return fmt.Errorf("%s status %s: %w", endpoint, status, ErrUnavailable)
}
