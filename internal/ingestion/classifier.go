package ingestion

import "github.com/teatrade/auction-ingest/internal/models"

// Classify splits cleaned records into the offer and sale sets.
//
// Rows empty across lot_number, mark, grade and quantity_kgs are
// non-data (blank trailers, repeated banners) and are dropped. Rows
// without a lot_number are dropped regardless: the lot number is the
// irreducible identity key of the store.
//
// Every surviving row is an offer (the catalogue); rows with a price are
// also sales. A sold lot appearing in both sets is intentional.
func Classify(records []models.LotRecord) (offers []models.LotRecord, sales []models.LotRecord) {
	for _, rec := range records {
		if rec.LotNumber == nil && rec.Mark == nil && rec.Grade == nil && rec.QuantityKgs == nil {
			continue
		}
		if rec.LotNumber == nil {
			continue
		}

		offers = append(offers, rec)
		if rec.Price != nil {
			sales = append(sales, rec)
		}
	}

	return offers, sales
}
