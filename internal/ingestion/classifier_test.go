package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teatrade/auction-ingest/internal/models"
)

func strp(s string) *string   { return &s }
func f64p(f float64) *float64 { return &f }

func TestClassify(t *testing.T) {
	t.Run("Expect: priced lots to land in both sets", func(t *testing.T) {
		records := []models.LotRecord{
			{LotNumber: strp("L1"), Mark: strp("FARM X"), Price: f64p(2.50)},
			{LotNumber: strp("L2"), Mark: strp("FARM Y")},
		}

		offers, sales := Classify(records)
		assert.Len(t, offers, 2)
		assert.Len(t, sales, 1)
		assert.Equal(t, "L1", *sales[0].LotNumber)
	})

	t.Run("Expect: rows empty across the identity columns to be dropped", func(t *testing.T) {
		records := []models.LotRecord{
			{Broker: strp("ABC")},
			{LotNumber: strp("L1"), QuantityKgs: f64p(1000)},
		}

		offers, sales := Classify(records)
		assert.Len(t, offers, 1)
		assert.Empty(t, sales)
	})

	t.Run("Expect: rows without a lot number to be dropped even with data", func(t *testing.T) {
		records := []models.LotRecord{
			{Mark: strp("FARM X"), Grade: strp("PEKOE"), Price: f64p(2.50)},
		}

		offers, sales := Classify(records)
		assert.Empty(t, offers)
		assert.Empty(t, sales)
	})

	t.Run("Expect: no rows to yield empty sets", func(t *testing.T) {
		offers, sales := Classify(nil)
		assert.Empty(t, offers)
		assert.Empty(t, sales)
	})
}
