// ABOUTME: Configuration loader for backend service and CLI
// ABOUTME: Loads settings from an optional .env file and environment variables with defaults

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/markalston/route-economics/backend/geodesy"
	"github.com/markalston/route-economics/backend/models"
	"github.com/markalston/route-economics/backend/services"
)

type Config struct {
	// Server
	Port               string
	CacheTTL           int      // seconds, in-memory artifact cache
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)

	// Artifacts
	DataDir   string // directory for stored artifacts; empty keeps them in memory
	Overwrite bool   // recompute derived artifacts even when stored

	// airportdb.io (optional)
	AirportDBURL     string
	AirportDBToken   string
	AirportDBTimeout int // seconds

	// Pipeline
	Hubs           []string
	DistanceMethod string
	SphericalScale float64
	RefuelPolicy   string

	// Assumption overrides
	PercentOfFlyers     float64
	MarketShare         float64
	MinMiles            float64
	WestboundMultiplier float64
	TurnaroundMinutes   float64
	RefuelMinutes       float64
	CruiseSpeedFactor   float64
}

// AirportDBConfigured returns true if an airportdb.io token is set
func (c *Config) AirportDBConfigured() bool {
	return c.AirportDBToken != ""
}

func Load() (*Config, error) {
	if err := loadDotEnv(getEnv("ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	defaults := models.DefaultAssumptions()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CacheTTL:           getEnvInt("CACHE_TTL", 3600),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),

		DataDir:   os.Getenv("DATA_DIR"),
		Overwrite: getEnvBool("OVERWRITE", false),

		AirportDBURL:     ensureScheme(getEnv("AIRPORTDB_URL", "https://airportdb.io/api/v1")),
		AirportDBToken:   os.Getenv("AIRPORTDB_TOKEN"),
		AirportDBTimeout: getEnvInt("AIRPORTDB_TIMEOUT", 30),

		Hubs:           getEnvStringList("HUBS"),
		DistanceMethod: getEnv("DISTANCE_METHOD", string(geodesy.MethodGeodesic)),
		SphericalScale: getEnvFloat("SPHERICAL_SCALE", 1),
		RefuelPolicy:   getEnv("REFUEL_POLICY", string(services.RefuelNever)),

		PercentOfFlyers:     getEnvFloat("PERCENT_OF_FLYERS", defaults.Demand.PercentOfFlyers),
		MarketShare:         getEnvFloat("MARKET_SHARE", defaults.Demand.MarketShare),
		MinMiles:            getEnvFloat("MIN_MILES", defaults.Demand.MinMiles),
		WestboundMultiplier: getEnvFloat("WESTBOUND_MULTIPLIER", defaults.Timing.WestboundMultiplier),
		TurnaroundMinutes:   getEnvFloat("TURNAROUND_MINUTES", defaults.Timing.TurnaroundMinutes),
		RefuelMinutes:       getEnvFloat("REFUEL_MINUTES", defaults.Timing.RefuelMinutes),
		CruiseSpeedFactor:   getEnvFloat("CRUISE_SPEED_FACTOR", defaults.Timing.CruiseSpeedFactor),
	}

	if cfg.Hubs == nil {
		cfg.Hubs = []string{"KATL", "KDFW", "KDEN"}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	if c.CacheTTL < 1 {
		return fmt.Errorf("CACHE_TTL must be positive, got %d", c.CacheTTL)
	}
	if c.AirportDBTimeout < 1 {
		return fmt.Errorf("AIRPORTDB_TIMEOUT must be positive, got %d", c.AirportDBTimeout)
	}
	for _, hub := range c.Hubs {
		if err := services.ValidateAirportID(hub); err != nil {
			return fmt.Errorf("HUBS: %w", err)
		}
	}
	if _, err := geodesy.ParseMethod(c.DistanceMethod); err != nil {
		return fmt.Errorf("DISTANCE_METHOD: %w", err)
	}
	if _, err := services.ParseRefuelPolicy(c.RefuelPolicy); err != nil {
		return fmt.Errorf("REFUEL_POLICY: %w", err)
	}
	if c.SphericalScale <= 0 {
		return fmt.Errorf("SPHERICAL_SCALE must be positive, got %v", c.SphericalScale)
	}

	for _, r := range []struct {
		name  string
		value float64
	}{
		{"PERCENT_OF_FLYERS", c.PercentOfFlyers},
		{"MARKET_SHARE", c.MarketShare},
		{"CRUISE_SPEED_FACTOR", c.CruiseSpeedFactor},
	} {
		if r.value <= 0 || r.value > 1 {
			return fmt.Errorf("%s must be in (0, 1], got %v", r.name, r.value)
		}
	}

	for _, n := range []struct {
		name  string
		value float64
	}{
		{"MIN_MILES", c.MinMiles},
		{"WESTBOUND_MULTIPLIER", c.WestboundMultiplier},
		{"TURNAROUND_MINUTES", c.TurnaroundMinutes},
		{"REFUEL_MINUTES", c.RefuelMinutes},
	} {
		if n.value < 0 {
			return fmt.Errorf("%s must not be negative, got %v", n.name, n.value)
		}
	}

	return nil
}

// PipelineOptions applies the configured overrides on top of the default assumptions
func (c *Config) PipelineOptions() (services.PipelineOptions, error) {
	opts := services.DefaultPipelineOptions()

	method, err := geodesy.ParseMethod(c.DistanceMethod)
	if err != nil {
		return opts, err
	}
	refuel, err := services.ParseRefuelPolicy(c.RefuelPolicy)
	if err != nil {
		return opts, err
	}

	opts.Method = method
	opts.SphericalScale = c.SphericalScale
	opts.Refuel = refuel
	opts.Hubs = models.NewHubSet(c.Hubs...)

	a := &opts.Assumptions
	a.Demand.PercentOfFlyers = c.PercentOfFlyers
	a.Demand.MarketShare = c.MarketShare
	a.Demand.MinMiles = c.MinMiles
	a.Timing.WestboundMultiplier = c.WestboundMultiplier
	a.Timing.TurnaroundMinutes = c.TurnaroundMinutes
	a.Timing.RefuelMinutes = c.RefuelMinutes
	a.Timing.CruiseSpeedFactor = c.CruiseSpeedFactor

	return opts, nil
}

// AirportProvider returns the airportdb.io client when a token is set, else the embedded seed table
func (c *Config) AirportProvider() services.AirportProvider {
	if !c.AirportDBConfigured() {
		return services.SeedProvider{}
	}
	timeout := time.Duration(c.AirportDBTimeout) * time.Second
	return services.NewAirportDBClient(c.AirportDBURL, c.AirportDBToken, timeout, services.SeedProvider{})
}

// loadDotEnv reads KEY=VALUE pairs from path without overriding variables already set.
// A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ensureScheme adds https:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}
