package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Server
	ServerPort     string
	ServerHost     string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestBody int64

	// Database
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// Redis (reverse-geocode cache, optional)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Kafka (enrichment events, optional)
	KafkaBrokers     []string
	EnrichedTopic    string
	EnrichedDLQTopic string

	// External golf catalog
	CatalogBaseURL string
	CatalogAPIKey  string
	CatalogTimeout time.Duration

	// Reverse geocoder
	GeocoderBaseURL string
	GeocoderTimeout time.Duration
	GeocodeCacheTTL time.Duration

	// Matching policy
	Match MatchPolicy
}

// MatchPolicy holds the geo gates and acceptance thresholds used by the
// candidate matcher. Defaults can be seeded from a YAML file named by
// MATCH_POLICY_FILE; individual environment variables always win.
type MatchPolicy struct {
	MaxKmNamed      float64 `yaml:"max_km_named" json:"maxKm"`
	MaxKmUnnamed    float64 `yaml:"max_km_unnamed" json:"maxKmUnnamed"`
	MinNameSim      float64 `yaml:"min_name_sim" json:"minNameSim"`
	MinFinalNamed   float64 `yaml:"min_final_named" json:"minFinal"`
	MinFinalUnnamed float64 `yaml:"min_final_unnamed" json:"minFinalUnnamed"`
}

func Load() *Config {
	policy := MatchPolicy{
		MaxKmNamed:      60,
		MaxKmUnnamed:    40,
		MinNameSim:      0.05,
		MinFinalNamed:   0.55,
		MinFinalUnnamed: 0.65,
	}
	if path := os.Getenv("MATCH_POLICY_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(data, &policy)
		}
	}
	policy.MaxKmNamed = getFloatEnv("MATCH_MAX_KM_NAMED", policy.MaxKmNamed)
	policy.MaxKmUnnamed = getFloatEnv("MATCH_MAX_KM_UNNAMED", policy.MaxKmUnnamed)
	policy.MinNameSim = getFloatEnv("MATCH_MIN_NAME_SIM", policy.MinNameSim)
	policy.MinFinalNamed = getFloatEnv("MATCH_MIN_FINAL_NAMED", policy.MinFinalNamed)
	policy.MinFinalUnnamed = getFloatEnv("MATCH_MIN_FINAL_UNNAMED", policy.MinFinalUnnamed)

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		ReadTimeout:    getDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:   getDuration("WRITE_TIMEOUT", 30*time.Second),
		MaxRequestBody: int64(getIntEnv("MAX_REQUEST_BODY_BYTES", 1*1024*1024)),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "ciaga"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "ciaga123"),
		PostgresDB:       getEnv("POSTGRES_DB", "ciaga"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		KafkaBrokers:     getStringSliceEnv("KAFKA_BROKERS", nil),
		EnrichedTopic:    getEnv("COURSE_ENRICHED_TOPIC", "course.enriched"),
		EnrichedDLQTopic: getEnv("COURSE_ENRICHED_DLQ_TOPIC", ""),

		CatalogBaseURL: getEnv("GOLF_CATALOG_BASE_URL", "https://api.golfcourseapi.com"),
		CatalogAPIKey:  getEnv("GOLF_CATALOG_API_KEY", ""),
		CatalogTimeout: getDuration("GOLF_CATALOG_TIMEOUT", 15*time.Second),

		GeocoderBaseURL: getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocoderTimeout: getDuration("GEOCODER_TIMEOUT", 10*time.Second),
		GeocodeCacheTTL: getDuration("GEOCODE_CACHE_TTL", 24*time.Hour),

		Match: policy,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
