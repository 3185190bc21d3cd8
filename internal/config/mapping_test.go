package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMapping(t *testing.T) {
	m := DefaultMapping()

	t.Run("Expect: every canonical lot field to be present", func(t *testing.T) {
		names := FieldNames(m.LotFields)
		for _, field := range []string{
			FieldBroker, FieldMark, FieldGrade, FieldLotNumber,
			FieldInvoiceNumber, FieldQuantityKgs, FieldPackageCount,
			FieldPrice, FieldValuationOrRP, FieldBuyer,
			FieldSaleDateInternal, FieldSaleNumberInternal,
		} {
			assert.Contains(t, names, field)
		}
	})

	t.Run("Expect: the noise set to be normalized for lookup", func(t *testing.T) {
		noise := m.NoiseSet()
		for _, tok := range []string{"NAN", "NONE", "", "-", "NIL", "N/A", "NULL", "UNKNOWN"} {
			_, ok := noise[tok]
			assert.True(t, ok, "token %q missing", tok)
		}
	})

	t.Run("Expect: numeric column classes to separate floats and integers", func(t *testing.T) {
		assert.True(t, m.IsFloatField(FieldPrice))
		assert.True(t, m.IsIntegerField(FieldPackageCount))
		assert.False(t, m.IsFloatField(FieldPackageCount))
		assert.False(t, m.IsIntegerField(FieldBroker))
	})
}

func TestLoadMapping(t *testing.T) {
	t.Run("Expect: an empty path to return the defaults", func(t *testing.T) {
		m, err := LoadMapping("")
		require.NoError(t, err)
		assert.Equal(t, DefaultMapping(), m)
	})

	t.Run("Expect: a YAML file to replace the vocabulary wholesale", func(t *testing.T) {
		content := `
lot_fields:
  - field: lot_number
    aliases: ["Lot"]
header_keywords: ["Lot"]
noise_tokens: ["N/A"]
float_fields: ["price"]
integer_fields: ["package_count"]
`
		path := filepath.Join(t.TempDir(), "mapping.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		m, err := LoadMapping(path)
		require.NoError(t, err)
		require.Len(t, m.LotFields, 1)
		assert.Equal(t, FieldLotNumber, m.LotFields[0].Field)
		assert.Equal(t, []string{"Lot"}, m.HeaderKeywords)
	})

	t.Run("Expect: a missing file to surface an error", func(t *testing.T) {
		_, err := LoadMapping(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("Expect: malformed YAML to surface an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("lot_fields: [unterminated"), 0o644))

		_, err := LoadMapping(path)
		assert.Error(t, err)
	})
}
