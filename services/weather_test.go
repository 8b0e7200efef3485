package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleeper-league-bot/models"
)

var fakePoint = models.GeoPoint{Latitude: 39.9, Longitude: -75.17, Timezone: ForecastTimezone}

func TestFindKickIndex(t *testing.T) {
	times := []string{"2025-09-14T11:00", "2025-09-14T12:00", "2025-09-14T13:00", "2025-09-14T16:00"}

	assert.Equal(t, 2, FindKickIndex(times, "2025-09-14", "13:00"))
	assert.Equal(t, 2, FindKickIndex(times, "2025-09-14", "13:25"))
	assert.Equal(t, 3, FindKickIndex(times, "2025-09-14", "16:25"))
	assert.Equal(t, 3, FindKickIndex(times, "2025-09-14", "20:20"), "nearest hour")
	assert.Equal(t, 0, FindKickIndex(times, "2025-09-14", "9:30"))
	assert.Equal(t, -1, FindKickIndex(nil, "2025-09-14", "13:00"))
}

func TestGeocodeCachesHits(t *testing.T) {
	api, server := newFakeAPI(t, map[string]string{
		"/search": `{"results": [{"latitude": 39.9, "longitude": -75.17, "timezone": ""}]}`,
	})
	weather := NewWeatherService(server.URL+"/forecast", server.URL+"/search", 0)

	for i := 0; i < 3; i++ {
		point, err := weather.Geocode(context.Background(), "Lincoln Financial Field", "Philadelphia, PA")
		require.NoError(t, err)
		require.NotNil(t, point)
		assert.Equal(t, ForecastTimezone, point.Timezone)
	}
	assert.Equal(t, 1, api.Hits("/search"))
}

func TestGeocodeNoMatch(t *testing.T) {
	_, server := newFakeAPI(t, map[string]string{"/search": `{}`})
	weather := NewWeatherService(server.URL+"/forecast", server.URL+"/search", 0)

	point, err := weather.Geocode(context.Background(), "Nowhere", "")
	require.NoError(t, err)
	assert.Nil(t, point)
}

func TestHourlyForecastToleratesNulls(t *testing.T) {
	_, server := newFakeAPI(t, map[string]string{
		"/forecast": `{"hourly": {
			"time": ["2025-09-14T12:00", "2025-09-14T13:00"],
			"wind_speed_10m": [10.2, null],
			"wind_gusts_10m": [22.0, 31.5],
			"precipitation_probability": [5]
		}}`,
	})
	weather := NewWeatherService(server.URL+"/forecast", server.URL+"/search", 0)

	forecast, err := weather.HourlyForecast(context.Background(), &fakePoint, "2025-09-14")
	require.NoError(t, err)

	at := forecast.At(1)
	assert.Zero(t, at.WindMPH)
	assert.Equal(t, 31.5, at.GustMPH)
	assert.Zero(t, at.PrecipPct)
}
