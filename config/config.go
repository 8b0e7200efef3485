package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"sleeper-league-bot/logging"

	"github.com/joho/godotenv"
)

const dateLayout = "2006-01-02"

// Config holds all application configuration
type Config struct {
	Sleeper   SleeperConfig   `json:"sleeper"`
	Discord   DiscordConfig   `json:"discord"`
	Season    SeasonConfig    `json:"season"`
	Weather   WeatherConfig   `json:"weather"`
	Database  DatabaseConfig  `json:"database"`
	Server    ServerConfig    `json:"server"`
	Auth      AuthConfig      `json:"auth"`
	Scheduler SchedulerConfig `json:"scheduler"`
	Logging   LoggingConfig   `json:"logging"`
}

// SleeperConfig holds Sleeper API settings
type SleeperConfig struct {
	BaseURL  string        `json:"base_url"`
	LeagueID string        `json:"league_id"`
	Timeout  time.Duration `json:"timeout"`
}

// DiscordConfig holds webhook delivery settings
type DiscordConfig struct {
	WebhookURL string `json:"-"`
	DryRun     bool   `json:"dry_run"`
}

// SeasonConfig bounds the window in which league jobs post
type SeasonConfig struct {
	Year     int       `json:"year"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Timezone string    `json:"timezone"`
}

// WeatherConfig holds wind watch thresholds and data sources
type WeatherConfig struct {
	WindSustainedMPH float64 `json:"wind_sustained_mph"`
	WindGustMPH      float64 `json:"wind_gust_mph"`
	PrecipPct        float64 `json:"precip_pct"`
	GameType         string  `json:"game_type"`
	ScheduleURL      string  `json:"schedule_url"`
	ForecastURL      string  `json:"forecast_url"`
	GeocodeURL       string  `json:"geocode_url"`
	MaxFlagged       int     `json:"max_flagged"`
}

// DatabaseConfig holds MongoDB settings for the post archive
type DatabaseConfig struct {
	Enabled  bool          `json:"enabled"`
	Host     string        `json:"host"`
	Port     string        `json:"port"`
	Username string        `json:"username"`
	Password string        `json:"-"`
	Database string        `json:"database"`
	Timeout  time.Duration `json:"timeout"`
}

// ServerConfig holds operator API settings
type ServerConfig struct {
	Host string `json:"host"`
	Port string `json:"port"`
}

// AuthConfig holds operator API credentials
type AuthConfig struct {
	JWTSecret    string `json:"-"`
	AdminKeyHash string `json:"-"`
}

// SchedulerConfig holds cron specs, evaluated in the season timezone
type SchedulerConfig struct {
	RecapCron   string `json:"recap_cron"`
	LineupCron  string `json:"lineup_cron"`
	WeatherCron string `json:"weather_cron"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level       string `json:"level"`
	Prefix      string `json:"prefix"`
	EnableColor bool   `json:"enable_color"`
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	return LoadWith(nil)
}

// LoadWith loads configuration and applies overrides, such as command line
// flags, before validating it
func LoadWith(override func(*Config)) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Missing .env is normal in CI and cron environments
		logging.Debugf("Could not load .env file: %v", err)
	}

	start, err := getDateEnv("SEASON_START", "2025-09-04")
	if err != nil {
		return nil, err
	}
	end, err := getDateEnv("SEASON_END", "2026-01-06")
	if err != nil {
		return nil, err
	}

	config := &Config{
		Sleeper: SleeperConfig{
			BaseURL:  getEnv("SLEEPER_BASE_URL", "https://api.sleeper.app/v1"),
			LeagueID: getEnv("LEAGUE_ID", "1259729726277160960"),
			Timeout:  getDurationEnv("SLEEPER_TIMEOUT", 30*time.Second),
		},
		Discord: DiscordConfig{
			WebhookURL: getEnv("DISCORD_WEBHOOK_URL", ""),
			DryRun:     getBoolEnv("DRY_RUN", false),
		},
		Season: SeasonConfig{
			Year:     getIntEnv("SEASON", time.Now().Year()),
			Start:    start,
			End:      end,
			Timezone: getEnv("SEASON_TZ", "America/Chicago"),
		},
		Weather: WeatherConfig{
			WindSustainedMPH: getFloatEnv("WIND_SUSTAINED", 18),
			WindGustMPH:      getFloatEnv("WIND_GUST", 30),
			PrecipPct:        getFloatEnv("PRECIP_PCT", 40),
			GameType:         strings.ToUpper(getEnv("GAME_TYPE", "REG")),
			ScheduleURL:      getEnv("SCHEDULE_CSV_URL", "https://raw.githubusercontent.com/nflverse/nfldata/master/data/games.csv"),
			ForecastURL:      getEnv("OPEN_METEO_FORECAST_URL", "https://api.open-meteo.com/v1/forecast"),
			GeocodeURL:       getEnv("OPEN_METEO_GEOCODE_URL", "https://geocoding-api.open-meteo.com/v1/search"),
			MaxFlagged:       getIntEnv("WEATHER_MAX_FLAGGED", 10),
		},
		Database: DatabaseConfig{
			Enabled:  getBoolEnv("ARCHIVE_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "27017"),
			Username: getEnv("DB_USERNAME", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "sleeper_league_bot"),
			Timeout:  getDurationEnv("DB_TIMEOUT", 10*time.Second),
		},
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "127.0.0.1"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			AdminKeyHash: getEnv("ADMIN_KEY_HASH", ""),
		},
		Scheduler: SchedulerConfig{
			RecapCron:   getEnv("RECAP_CRON", "0 9 * * 2"),
			LineupCron:  getEnv("LINEUP_CRON", "0 10 * * 0,4"),
			WeatherCron: getEnv("WEATHER_CRON", "0 8 * * 0,1,4"),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Prefix:      getEnv("LOG_PREFIX", ""),
			EnableColor: getBoolEnv("LOG_COLOR", true),
		},
	}

	if override != nil {
		override(config)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration for required fields and sensible values
func (c *Config) Validate() error {
	if c.Sleeper.LeagueID == "" {
		return fmt.Errorf("LEAGUE_ID is required")
	}
	if c.Sleeper.BaseURL == "" {
		return fmt.Errorf("Sleeper base URL is required")
	}

	if c.Discord.WebhookURL == "" && !c.Discord.DryRun {
		return fmt.Errorf("DISCORD_WEBHOOK_URL is required unless DRY_RUN=true")
	}

	if !c.Season.End.After(c.Season.Start) {
		return fmt.Errorf("season end %s must be after season start %s",
			c.Season.End.Format(dateLayout), c.Season.Start.Format(dateLayout))
	}
	if _, err := time.LoadLocation(c.Season.Timezone); err != nil {
		return fmt.Errorf("invalid SEASON_TZ %q: %w", c.Season.Timezone, err)
	}

	if c.Weather.WindSustainedMPH <= 0 || c.Weather.WindGustMPH <= 0 {
		return fmt.Errorf("wind thresholds must be positive, got sustained=%.1f gust=%.1f",
			c.Weather.WindSustainedMPH, c.Weather.WindGustMPH)
	}
	if c.Weather.MaxFlagged <= 0 {
		return fmt.Errorf("WEATHER_MAX_FLAGGED must be positive, got %d", c.Weather.MaxFlagged)
	}

	if c.Database.Enabled && c.Database.Database == "" {
		return fmt.Errorf("database name is required when ARCHIVE_ENABLED=true")
	}

	return nil
}

// Location returns the season timezone, falling back to UTC
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Season.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsAuthConfigured returns true if the operator API can issue tokens
func (c *Config) IsAuthConfigured() bool {
	return c.Auth.JWTSecret != "" && c.Auth.AdminKeyHash != ""
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

// GetMongoURI returns the MongoDB connection URI
func (c *Config) GetMongoURI() string {
	if c.Database.Username != "" && c.Database.Password != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=%s",
			c.Database.Username, c.Database.Password,
			c.Database.Host, c.Database.Port,
			c.Database.Database, c.Database.Database)
	}
	return fmt.Sprintf("mongodb://%s:%s/%s",
		c.Database.Host, c.Database.Port, c.Database.Database)
}

// LogConfiguration logs the current configuration (without sensitive data)
func (c *Config) LogConfiguration() {
	logger := logging.WithPrefix("Config")
	logger.Infof("Sleeper: %s league=%s timeout=%s", c.Sleeper.BaseURL, c.Sleeper.LeagueID, c.Sleeper.Timeout)
	logger.Infof("Discord: webhook set=%t dry_run=%t", c.Discord.WebhookURL != "", c.Discord.DryRun)
	logger.Infof("Season: %d window %s..%s (%s)", c.Season.Year,
		c.Season.Start.Format(dateLayout), c.Season.End.Format(dateLayout), c.Season.Timezone)
	logger.Infof("Weather: sustained>=%.0f gust>=%.0f rain>=%.0f%% type=%s",
		c.Weather.WindSustainedMPH, c.Weather.WindGustMPH, c.Weather.PrecipPct, c.Weather.GameType)
	logger.Infof("Archive: enabled=%t %s:%s/%s (auth: %t)", c.Database.Enabled,
		c.Database.Host, c.Database.Port, c.Database.Database, c.Database.Password != "")
	logger.Infof("Server: %s auth configured=%t", c.GetServerAddress(), c.IsAuthConfigured())
	logger.Infof("Scheduler: recap=%q lineup=%q weather=%q",
		c.Scheduler.RecapCron, c.Scheduler.LineupCron, c.Scheduler.WeatherCron)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getDateEnv parses a YYYY-MM-DD date. Unlike the other getters, a malformed
// value is an error rather than a fallback to the default.
func getDateEnv(key, defaultValue string) (time.Time, error) {
	value := getEnv(key, defaultValue)
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q (want YYYY-MM-DD): %w", key, value, err)
	}
	return parsed, nil
}
