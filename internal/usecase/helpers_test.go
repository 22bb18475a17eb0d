package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"restaurant-review/internal/data/entity"
	"restaurant-review/internal/data/repository"
	"restaurant-review/internal/provider/geolocation"
	"restaurant-review/pkg/kvstore"
	"restaurant-review/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errStoreDown = errors.New("store down")

// flakyStore fails selected operations on selected tables.
type flakyStore struct {
	kvstore.Store
	failures map[string]bool
}

func (s *flakyStore) fail(op, table string) {
	s.failures[op+":"+table] = true
}

func (s *flakyStore) failing(op string, table kvstore.Table) bool {
	return s.failures[op+":"+table.Name]
}

func (s *flakyStore) Get(ctx context.Context, table kvstore.Table, key string) (kvstore.Item, error) {
	if s.failing("get", table) {
		return nil, errStoreDown
	}
	return s.Store.Get(ctx, table, key)
}

func (s *flakyStore) Put(ctx context.Context, table kvstore.Table, key string, item kvstore.Item) error {
	if s.failing("put", table) {
		return errStoreDown
	}
	return s.Store.Put(ctx, table, key, item)
}

func (s *flakyStore) Query(ctx context.Context, table kvstore.Table, attr, value string) ([]kvstore.Item, error) {
	if s.failing("query", table) {
		return nil, errStoreDown
	}
	return s.Store.Query(ctx, table, attr, value)
}

type fakeGeo struct {
	mu     sync.Mutex
	places map[string]*geolocation.Place
	nearby []*geolocation.Place
	err    error
	calls  int
}

func (g *fakeGeo) PlaceDetails(ctx context.Context, externalID string) (*geolocation.Place, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	place, ok := g.places[externalID]
	if !ok {
		return nil, geolocation.ErrUnavailable
	}
	copied := *place
	return &copied, nil
}

func (g *fakeGeo) NearbyRestaurants(ctx context.Context, latitude, longitude float64, radiusMeters int) ([]*geolocation.Place, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.nearby, nil
}

func (g *fakeGeo) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type testEnv struct {
	store   *flakyStore
	repo    *repository.Repository
	geo     *fakeGeo
	service *Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := &flakyStore{
		Store:    kvstore.NewRedisStore(client, zap.NewNop()),
		failures: make(map[string]bool),
	}
	repo := repository.NewRepository(store, zap.NewNop())
	geo := &fakeGeo{places: map[string]*geolocation.Place{
		"X": {ID: "X", Name: "Joe's Pizza", Latitude: 40.75, Longitude: -73.98, FormattedAddress: "1435 Broadway"},
	}}
	config := &utils.Config{Session: utils.SessionConfig{ExpiryHours: 24}}

	return &testEnv{
		store:   store,
		repo:    repo,
		geo:     geo,
		service: NewService(repo, geo, config, zap.NewNop()),
	}
}

func (e *testEnv) seedUser(t *testing.T, username string) *entity.User {
	t.Helper()
	hash, err := utils.HashPassword("12345")
	require.NoError(t, err)

	user := &entity.User{
		ID:           "id-" + username,
		Username:     username,
		FirstName:    "John",
		LastName:     "James",
		Email:        username + "@email.com",
		PasswordHash: hash,
	}
	require.NoError(t, e.repo.User.Save(context.Background(), user))
	return user
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func boolPtr(b bool) *bool { return &b }
