package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr             string
	LogLevel         string
	Redis            Redis
	SQLitePath       string
	RateLimitPerMin  int
	RateLimitWindow  time.Duration
	RateLimitOff     bool
	PositionCacheTTL time.Duration
	RequestTimeout   time.Duration
	ShutdownTimeout  time.Duration
}

// Redis holds connection settings for the optional Redis backend.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays
// lean. The container contract is PORT with a default of 8080, bound on all
// interfaces.
func FromEnv() Server {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return Server{
		Addr:     "0.0.0.0:" + port,
		LogLevel: logLevel,
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		SQLitePath:       os.Getenv("SQLITE_PATH"),
		RateLimitPerMin:  envInt("RATE_LIMIT_PER_MIN", 60),
		RateLimitWindow:  time.Minute,
		RateLimitOff:     os.Getenv("RATE_LIMIT_DISABLED") == "true",
		PositionCacheTTL: envDuration("POSITION_CACHE_TTL", time.Minute),
		RequestTimeout:   envDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout:  envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
