package database

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildBatchInsert(t *testing.T) {
	t.Run("Expect: one placeholder per cell and the conflict clause", func(t *testing.T) {
		query := buildBatchInsert("auction_sales", salesColumns, 3)
		assert.Equal(t, 3*len(salesColumns), strings.Count(query, "$"))
		assert.Contains(t, query, fmt.Sprintf("$%d", 3*len(salesColumns)))
		assert.Contains(t, query, `"auction_sales"`)
		assert.Contains(t, query, "ON CONFLICT (source_location, sale_number, lot_number) DO NOTHING")
	})

	t.Run("Expect: offer statements to carry the offer column set", func(t *testing.T) {
		query := buildBatchInsert("auction_offers", offersColumns, 1)
		assert.Contains(t, query, "valuation_or_rp")
		assert.NotContains(t, query, "buyer")
	})

	t.Run("Expect: a full chunk to stay under the bind-parameter cap", func(t *testing.T) {
		assert.Less(t, insertChunkRows*len(salesColumns), 65535)
		assert.Less(t, insertChunkRows*len(offersColumns), 65535)
	})
}
