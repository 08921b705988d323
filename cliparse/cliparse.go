package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
	DatabaseMemory   = "memory"

	DefaultPort    = 3318
	DefaultEnvFile = ".env"
)

type Config struct {
	Port             int
	DatabaseURL      string
	DatabaseType     string
	CatalogPath      string
	FingerprintSalt  string
	HashIPs          bool
	StrictValidation bool
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string
	var hashIPs, strict string

	fs := flag.NewFlagSet("meai-survey", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (empty leaves storage unavailable)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or memory)")
	fs.StringVar(&cfg.CatalogPath, "catalog", "", "Question catalog YAML file (built-in catalog if empty)")
	fs.StringVar(&envFile, "env", DefaultEnvFile, "dotenv file to load")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.FingerprintSalt, "fingerprint-salt", "", "Fingerprint salt (prefer env)")

	// Behaviour toggles
	fs.StringVar(&hashIPs, "hash-ips", "", "Store a salted hash instead of the client IP (true/false)")
	fs.StringVar(&strict, "strict", "", "Validate submissions against the catalog (true/false)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// .env never overrides variables already set in the process
	if err := LoadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	switch cfg.DatabaseType {
	case DatabaseSQLite, DatabasePostgres, DatabaseMemory:
	default:
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite, postgres or memory)", cfg.DatabaseType)
	}

	if cfg.CatalogPath == "" {
		cfg.CatalogPath = os.Getenv("CATALOG_PATH")
	}

	var err error
	if cfg.HashIPs, err = boolSetting(hashIPs, "HASH_IPS"); err != nil {
		return Config{}, err
	}
	if cfg.StrictValidation, err = boolSetting(strict, "STRICT_VALIDATION"); err != nil {
		return Config{}, err
	}

	// Secrets - MUST be provided
	if cfg.FingerprintSalt == "" {
		cfg.FingerprintSalt = os.Getenv("FINGERPRINT_SALT")
	}
	if cfg.FingerprintSalt == "" {
		return Config{}, errors.New("FINGERPRINT_SALT required")
	}

	return cfg, nil
}

// LoadEnvFile loads path into the process environment. A missing file is
// not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func boolSetting(flagValue, envKey string) (bool, error) {
	v := flagValue
	if v == "" {
		v = os.Getenv(envKey)
	}
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q", envKey, v)
	}
	return b, nil
}
