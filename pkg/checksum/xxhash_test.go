package checksum

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFileChecksum(t *testing.T) {
	t.Run("Expect: identical content to hash identically", func(t *testing.T) {
		dir := t.TempDir()
		a := filepath.Join(dir, "a.csv")
		b := filepath.Join(dir, "b.csv")
		require.NoError(t, os.WriteFile(a, []byte("LotNo,Price\nL1,2.50\n"), 0o644))
		require.NoError(t, os.WriteFile(b, []byte("LotNo,Price\nL1,2.50\n"), 0o644))

		sumA, err := GetFileChecksum(a)
		require.NoError(t, err)
		sumB, err := GetFileChecksum(b)
		require.NoError(t, err)

		assert.NotEmpty(t, sumA)
		assert.Equal(t, sumA, sumB)
	})

	t.Run("Expect: different content to hash differently", func(t *testing.T) {
		dir := t.TempDir()
		a := filepath.Join(dir, "a.csv")
		b := filepath.Join(dir, "b.csv")
		require.NoError(t, os.WriteFile(a, []byte("L1"), 0o644))
		require.NoError(t, os.WriteFile(b, []byte("L2"), 0o644))

		sumA, err := GetFileChecksum(a)
		require.NoError(t, err)
		sumB, err := GetFileChecksum(b)
		require.NoError(t, err)

		assert.NotEqual(t, sumA, sumB)
	})

	t.Run("Expect: a missing file to surface an error", func(t *testing.T) {
		_, err := GetFileChecksum(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})
}
