package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverMongo  = "mongo"
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	WebAddr     string
	MetricsAddr string

	StoreDriver string
	MongoURI    string
	MongoDB     string
	MySQLDSN    string

	RedisAddr string // empty disables caching
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	UploadsDir  string
	CORSOrigins []string
	PopulateRPS float64

	APIBaseURL  string
	SeedCatalog string
	SeedWorkers int
}

// Load reads an optional .env file, then the process environment. Variables already set
// in the environment win over .env entries.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not a number, using default")
		}
		return def
	}

	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":5000"),
		WebAddr:     env("WEB_ADDR", ":3000"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),
		StoreDriver: strings.ToLower(env("STORE_DRIVER", DriverMongo)),
		MongoURI:    env("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     env("MONGO_DB", "tourist_places"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/places?parseTime=true&charset=utf8mb4&loc=UTC"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		UploadsDir:  env("UPLOADS_DIR", "uploads"),
		CORSOrigins: splitList(env("CORS_ORIGINS", "*")),
		PopulateRPS: atof("POPULATE_RPS", 1),
		APIBaseURL:  strings.TrimRight(env("API_BASE_URL", "http://localhost:5000"), "/"),
		SeedCatalog: os.Getenv("SEED_CATALOG"),
		SeedWorkers: atoi("SEED_WORKERS", 4),
	}

	switch c.StoreDriver {
	case DriverMongo, DriverMySQL, DriverMemory:
	default:
		log.Warn().Str("driver", c.StoreDriver).Msg("unknown STORE_DRIVER, falling back to mongo")
		c.StoreDriver = DriverMongo
	}
	if c.SeedWorkers < 1 {
		c.SeedWorkers = 1
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
