// Package config handles loading and parsing application configuration.
// It supports these sources (later ones win):
//  1. A .env file in the working directory, if present
//  2. A YAML file:  CONFIG_PATH=/path/to/config.yaml  or  --config=...
//  3. Environment variables (env:"..." tags)
//  4. Defaults from env-default:"..." tags for anything still empty
//
// When no YAML path is given the config is read from the environment
// alone, so a container only needs MONGODB_URL to boot.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Storage drivers understood by the bootstrap.
const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity. Valid values: "dev", "staging", "prod".
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// StorageDriver selects the document store backend: "mongo" or "sqlite".
	StorageDriver string `yaml:"storage_driver" env:"STORAGE_DRIVER" env-default:"mongo"`

	MongoDB    MongoDB    `yaml:"mongodb"`
	SQLite     SQLite     `yaml:"sqlite"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Metrics    Metrics    `yaml:"metrics"`
	Log        Log        `yaml:"log"`
	Joke       Joke       `yaml:"joke"`
}

// MongoDB holds the document store connection settings.
//
// URL is injected at deploy time (a secret in the cluster), which is why
// it is the only required value: better to crash at boot than to start
// pointing at nothing.
type MongoDB struct {
	URL            string        `yaml:"url" env:"MONGODB_URL" env-required:"true"`
	Database       string        `yaml:"database" env:"MONGODB_DB" env-default:"college"`
	Collection     string        `yaml:"collection" env:"MONGODB_COLLECTION" env-default:"students"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"MONGODB_CONNECT_TIMEOUT" env-default:"10s"`
}

// SQLite configures the embedded store, used for local runs and as the
// in-memory double in tests.
type SQLite struct {
	Path string `yaml:"path" env:"SQLITE_PATH" env-default:"storage/college.db"`
}

// HTTPServer holds settings specific to the API listener.
type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:":8081"`
	// IdleTimeout is how long keep-alive connections are held open.
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_SERVER_IDLE_TIMEOUT" env-default:"90s"`
}

// Metrics holds settings for the Prometheus scrape listener.
type Metrics struct {
	Addr string `yaml:"address" env:"METRICS_ADDR" env-default:":8000"`
}

// Log holds logger parameters. Output always goes to stdout.
type Log struct {
	Name       string `yaml:"name" env:"LOG_NAME" env-default:"college-api"`
	Level      string `yaml:"level" env:"LOG_LEVEL" env-default:"debug"`
	Format     string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
	TimeFormat string `yaml:"time_format" env:"LOG_TIME_FORMAT" env-default:"2006-01-02 15:04:05 -0700"`
}

// Joke configures the outbound joke provider.
type Joke struct {
	URL     string        `yaml:"url" env:"JOKE_URL" env-default:"https://official-joke-api.appspot.com/random_joke"`
	Timeout time.Duration `yaml:"timeout" env:"JOKE_TIMEOUT" env-default:"10s"`
}

// Load reads the config from the YAML file at path (if path is non-empty)
// and from the environment, then validates it.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read env: %w", err)
		}
	} else {
		// Verify the file exists first so the message is clear rather
		// than a cryptic "open: no such file" from deep inside cleanenv.
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config.Load: config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read %s: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return &cfg, nil
}

// MustLoad reads, validates, and returns the application config.
//
// Functions prefixed with "Must" are allowed to fatal on failure. If this
// function returns, the config is valid.
func MustLoad() *Config {
	// A missing .env is the normal case in a container.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("cannot read .env: %s", err.Error())
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %s", err.Error())
	}

	return cfg
}

// ForTest returns the configuration used by tests: an in-memory sqlite
// store stands in for MongoDB, so handlers run without a live database.
func ForTest() *Config {
	url := os.Getenv("MONGODB_URL")
	if url == "" {
		url = "mongodb://user:aa@localhost:27017/"
	}

	return &Config{
		Env:           "test",
		StorageDriver: DriverSQLite,
		MongoDB: MongoDB{
			URL:            url,
			Database:       "college",
			Collection:     "students",
			ConnectTimeout: 10 * time.Second,
		},
		SQLite:     SQLite{Path: ":memory:"},
		HTTPServer: HTTPServer{Addr: ":8081", IdleTimeout: 90 * time.Second},
		Metrics:    Metrics{Addr: ":8000"},
		Log: Log{
			Name:       "college-api-test",
			Level:      "info",
			Format:     "text",
			TimeFormat: "2006-01-02 15:04:05 -0700",
		},
		Joke: Joke{
			URL:     "https://official-joke-api.appspot.com/random_joke",
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case DriverMongo, DriverSQLite:
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	if c.Joke.Timeout <= 0 {
		return errors.New("joke timeout must be positive")
	}

	return nil
}
