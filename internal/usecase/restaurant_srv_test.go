package usecase

import (
	"context"
	"errors"
	"testing"

	"restaurant-review/internal/data/entity"
	"restaurant-review/internal/dto/request"
	"restaurant-review/internal/provider/geolocation"
	"restaurant-review/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRestaurant(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.repo.Restaurant.Save(ctx, &entity.Restaurant{
		ID: "X", Name: "Joe's Pizza", Latitude: 40.75, Longitude: -73.98, Address: "1435 Broadway",
	}))

	resp, err := env.service.Restaurant.GetRestaurant(ctx, "X")
	require.NoError(t, err)
	assert.Equal(t, "Joe's Pizza", resp.Name)

	_, err = env.service.Restaurant.GetRestaurant(ctx, "Y")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestFindNearby(t *testing.T) {
	env := newTestEnv(t)
	env.geo.nearby = []*geolocation.Place{
		{ID: "X", Name: "Joe's Pizza", Latitude: 40.75, Longitude: -73.98, FormattedAddress: "1435 Broadway"},
	}
	ctx := context.Background()

	resp, err := env.service.Restaurant.FindNearby(ctx, &request.NearbyRestaurantsRequest{Latitude: 40.75, Longitude: -73.98, Radius: 500})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "1435 Broadway", resp.Restaurants[0].Address)

	_, err = env.repo.Restaurant.FindByID(ctx, "X")
	assert.Error(t, err)

	_, err = env.service.Restaurant.FindNearby(ctx, &request.NearbyRestaurantsRequest{Latitude: 95, Longitude: 0, Radius: 500})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	env.geo.err = errors.New("down")
	_, err = env.service.Restaurant.FindNearby(ctx, &request.NearbyRestaurantsRequest{Latitude: 1, Longitude: 1, Radius: 500})
	assert.True(t, apperror.Is(err, apperror.KindUnavailable))
	assert.Equal(t, apperror.GeolocationProvider, apperror.SubjectOf(err))
}
