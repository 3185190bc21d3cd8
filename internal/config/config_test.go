package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Expect: an error when DATABASE_URL is missing", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")

		_, err := New()
		assert.Error(t, err)
	})

	t.Run("Expect: defaults when only DATABASE_URL is set", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/auctions")

		cfg, err := New()
		require.NoError(t, err)
		assert.Equal(t, "data", cfg.DataDir)
		assert.Equal(t, "MOMBASA", cfg.SourceLocation)
		assert.Equal(t, "", cfg.MappingFile)
		assert.Equal(t, 20, cfg.HeaderScanRows)
		assert.Equal(t, 4, cfg.MinHeaderHits)
	})

	t.Run("Expect: environment overrides to be honored", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/auctions")
		t.Setenv("AUCTION_DATA_DIR", "/srv/drops")
		t.Setenv("SOURCE_LOCATION", "COLOMBO")
		t.Setenv("MAPPING_FILE", "mapping.yaml")
		t.Setenv("HEADER_SCAN_ROWS", "30")
		t.Setenv("MIN_HEADER_HITS", "2")

		cfg, err := New()
		require.NoError(t, err)
		assert.Equal(t, "/srv/drops", cfg.DataDir)
		assert.Equal(t, "COLOMBO", cfg.SourceLocation)
		assert.Equal(t, "mapping.yaml", cfg.MappingFile)
		assert.Equal(t, 30, cfg.HeaderScanRows)
		assert.Equal(t, 2, cfg.MinHeaderHits)
	})

	t.Run("Expect: a non-integer override to be rejected", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/auctions")
		t.Setenv("HEADER_SCAN_ROWS", "twenty")

		_, err := New()
		assert.Error(t, err)
	})
}
