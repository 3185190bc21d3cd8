package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the run-level settings, loaded from the environment with
// sensible defaults. The column mapping lives in Mapping and is loaded
// separately so tests and deployments can inject their own.
type Config struct {
	DatabaseURL    string
	DataDir        string
	SourceLocation string
	MappingFile    string
	HeaderScanRows int
	MinHeaderHits  int
}

func New() (*Config, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	cfg := &Config{
		DatabaseURL:    databaseURL,
		DataDir:        "data",
		SourceLocation: "MOMBASA",
		HeaderScanRows: 20,
		MinHeaderHits:  4,
	}

	if v := os.Getenv("AUCTION_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("SOURCE_LOCATION"); v != "" {
		cfg.SourceLocation = v
	}
	if v := os.Getenv("MAPPING_FILE"); v != "" {
		cfg.MappingFile = v
	}

	var err error
	cfg.HeaderScanRows, err = getEnvAsInt("HEADER_SCAN_ROWS", cfg.HeaderScanRows)
	if err != nil {
		return nil, err
	}

	cfg.MinHeaderHits, err = getEnvAsInt("MIN_HEADER_HITS", cfg.MinHeaderHits)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: expected an integer, got '%s'", key, valueStr)
	}

	return value, nil
}
