// Package config loads service settings from .env, config.toml and the
// environment, in that order of precedence (environment wins).
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"trip-assignment-service/internal/domain"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverWorkbook = "workbook"
)

type Config struct {
	// DefaultVehicle is used when a request names no vehicle type.
	DefaultVehicle string                `toml:"default_vehicle"`
	Server         ServerConfig          `toml:"server"`
	Storage        StorageConfig         `toml:"storage"`
	Planner        domain.PlanningPolicy `toml:"planner"`
	Vehicles       []domain.VehicleType  `toml:"vehicles"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

type StorageConfig struct {
	Driver       string `toml:"driver"`
	DSN          string `toml:"dsn"`
	DBPath       string `toml:"db_path"`
	WorkbookPath string `toml:"workbook_path"`
}

func Default() *Config {
	return &Config{
		DefaultVehicle: domain.DefaultVehicleName,
		Server:         ServerConfig{Port: "8080"},
		Storage: StorageConfig{
			Driver: DriverSQLite,
			DBPath: "data/app.db",
		},
		Planner:  domain.DefaultPlanningPolicy(),
		Vehicles: domain.DefaultVehicleTypes(),
	}
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadEnv loads a .env file into the environment if one exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// FromEnv loads the config file named by CONFIG_PATH (default config.toml)
// and applies environment overrides.
func FromEnv() (*Config, error) {
	return Load(Get("CONFIG_PATH", "config.toml"))
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Printf("config file=%s not found (using defaults)", path)
	case err != nil:
		return nil, fmt.Errorf("load config: read %q: %w", path, err)
	default:
		if err := decode(data, cfg); err != nil {
			return nil, fmt.Errorf("load config: parse %q: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	defaults := cfg.Vehicles
	cfg.Vehicles = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return err
	}
	// A file without [[vehicles]] keeps the built-in catalog.
	if len(cfg.Vehicles) == 0 {
		cfg.Vehicles = defaults
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = Get("PORT", cfg.Server.Port)
	cfg.Storage.Driver = Get("STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Storage.DBPath = Get("DB_PATH", cfg.Storage.DBPath)
	cfg.Storage.WorkbookPath = Get("WORKBOOK_PATH", cfg.Storage.WorkbookPath)
	if dsn := os.Getenv("DATABASE_URL"); strings.TrimSpace(dsn) != "" {
		cfg.Storage.Driver = DriverPostgres
		cfg.Storage.DSN = dsn
	}
}

func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Server.Port) == "" {
		errs = append(errs, errors.New("server.port must not be empty"))
	}

	switch c.Storage.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Storage.DBPath) == "" {
			errs = append(errs, errors.New("storage.db_path is required for sqlite"))
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			errs = append(errs, errors.New("storage.dsn (or DATABASE_URL) is required for postgres"))
		}
	case DriverWorkbook:
		if strings.TrimSpace(c.Storage.WorkbookPath) == "" {
			errs = append(errs, errors.New("storage.workbook_path is required for workbook"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q is not one of sqlite, postgres, workbook", c.Storage.Driver))
	}

	if err := c.Planner.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("planner: %w", err))
	}

	for _, v := range c.Vehicles {
		if strings.TrimSpace(v.Name) == "" {
			errs = append(errs, errors.New("vehicles: name must not be empty"))
			continue
		}
		if _, err := v.Capacity(1); err != nil {
			errs = append(errs, fmt.Errorf("vehicles: %w", err))
		}
	}
	if _, ok := domain.FindVehicleType(c.Vehicles, c.DefaultVehicle); !ok {
		errs = append(errs, fmt.Errorf("default_vehicle %q is not in the vehicle catalog", c.DefaultVehicle))
	}

	return errors.Join(errs...)
}
