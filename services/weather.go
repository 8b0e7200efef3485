package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"sleeper-league-bot/logging"
	"sleeper-league-bot/models"
)

const (
	// ForecastTimezone is the zone forecasts are requested in; schedule
	// kickoffs are published in Eastern time
	ForecastTimezone = "America/New_York"

	hourLayout = "2006-01-02T15:04"
)

type geocodeResponse struct {
	Results []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Timezone  string  `json:"timezone"`
	} `json:"results"`
}

type forecastResponse struct {
	Hourly struct {
		Time              []string            `json:"time"`
		WindSpeed         []models.LooseFloat `json:"wind_speed_10m"`
		WindGusts         []models.LooseFloat `json:"wind_gusts_10m"`
		PrecipProbability []models.LooseFloat `json:"precipitation_probability"`
	} `json:"hourly"`
}

// WeatherService reads Open-Meteo geocoding and hourly forecasts. Geocoding
// hits are cached for the lifetime of the service.
type WeatherService struct {
	client      *http.Client
	forecastURL string
	geocodeURL  string
	logger      *logging.Logger

	mu    sync.Mutex
	cache map[string]*models.GeoPoint
}

// NewWeatherService creates an Open-Meteo client
func NewWeatherService(forecastURL, geocodeURL string, timeout time.Duration) *WeatherService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &WeatherService{
		client:      &http.Client{Timeout: timeout},
		forecastURL: forecastURL,
		geocodeURL:  geocodeURL,
		logger:      logging.WithPrefix("Weather"),
		cache:       make(map[string]*models.GeoPoint),
	}
}

// Geocode resolves a stadium to coordinates. A venue with no match returns
// nil and no error.
func (w *WeatherService) Geocode(ctx context.Context, stadium, location string) (*models.GeoPoint, error) {
	key := strings.ToLower(stadium + "|" + location)

	w.mu.Lock()
	cached, ok := w.cache[key]
	w.mu.Unlock()
	if ok {
		return cached, nil
	}

	q := url.Values{}
	q.Set("name", strings.TrimSpace(stadium+" "+location+" stadium"))
	q.Set("count", "1")
	q.Set("language", "en")
	q.Set("format", "json")
	q.Set("countryCode", "US")

	var resp geocodeResponse
	if err := fetchJSON(ctx, w.client, w.geocodeURL+"?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("failed to geocode %q: %w", stadium, err)
	}
	if len(resp.Results) == 0 {
		w.logger.Warnf("No geocoding match for %s (%s)", stadium, location)
		return nil, nil
	}

	hit := resp.Results[0]
	point := &models.GeoPoint{Latitude: hit.Latitude, Longitude: hit.Longitude, Timezone: hit.Timezone}
	if point.Timezone == "" {
		point.Timezone = ForecastTimezone
	}

	w.mu.Lock()
	w.cache[key] = point
	w.mu.Unlock()
	return point, nil
}

// HourlyForecast fetches one day of hourly wind and rain data in mph,
// indexed in Eastern time
func (w *WeatherService) HourlyForecast(ctx context.Context, point *models.GeoPoint, day string) (*models.HourlyForecast, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(point.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(point.Longitude, 'f', -1, 64))
	q.Set("hourly", "wind_speed_10m,wind_gusts_10m,precipitation_probability")
	q.Set("wind_speed_unit", "mph")
	q.Set("precipitation_unit", "inch")
	q.Set("timezone", ForecastTimezone)
	q.Set("start_date", day)
	q.Set("end_date", day)

	var resp forecastResponse
	if err := fetchJSON(ctx, w.client, w.forecastURL+"?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch forecast for %s: %w", day, err)
	}

	return &models.HourlyForecast{
		Times:             resp.Hourly.Time,
		WindSpeedMPH:      looseSeries(resp.Hourly.WindSpeed),
		WindGustMPH:       looseSeries(resp.Hourly.WindGusts),
		PrecipProbability: looseSeries(resp.Hourly.PrecipProbability),
	}, nil
}

func looseSeries(in []models.LooseFloat) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

// FindKickIndex returns the index of the kickoff hour in times, or the
// nearest hour when the exact hour is missing. -1 means no usable entry.
func FindKickIndex(times []string, day, kickoff string) int {
	hour := strings.SplitN(strings.TrimSpace(kickoff), ":", 2)[0]
	if len(hour) == 1 {
		hour = "0" + hour
	}
	target := day + "T" + hour + ":00"

	for i, t := range times {
		if t == target {
			return i
		}
	}

	targetTime, err := time.Parse(hourLayout, target)
	if err != nil {
		return -1
	}
	best, bestDiff := -1, time.Duration(0)
	for i, t := range times {
		parsed, err := time.Parse(hourLayout, t)
		if err != nil {
			continue
		}
		diff := parsed.Sub(targetTime)
		if diff < 0 {
			diff = -diff
		}
		if best == -1 || diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return best
}
