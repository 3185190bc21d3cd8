package ingestion

import (
	"time"

	"github.com/teatrade/auction-ingest/internal/cleaning"
	"github.com/teatrade/auction-ingest/internal/config"
	"github.com/teatrade/auction-ingest/internal/models"
	"github.com/teatrade/auction-ingest/internal/parser"
)

// recordBuilder turns a mapped lot table into typed records: text fields
// trimmed/uppercased with noise mapped to null, numeric fields cleaned
// per their column class, and the file-level sale metadata stamped onto
// every row.
type recordBuilder struct {
	mapping        config.Mapping
	noise          map[string]struct{}
	sourceLocation string
}

func newRecordBuilder(mapping config.Mapping, sourceLocation string) *recordBuilder {
	return &recordBuilder{
		mapping:        mapping,
		noise:          mapping.NoiseSet(),
		sourceLocation: sourceLocation,
	}
}

func (b *recordBuilder) build(mapped parser.Table, meta models.SaleMetadata, fileIdentifier string, processedAt time.Time) []models.LotRecord {
	cols := make(map[string]int, len(mapped.Header))
	for i, h := range mapped.Header {
		cols[h] = i
	}
	col := func(field string) int {
		if i, ok := cols[field]; ok {
			return i
		}
		return -1
	}

	records := make([]models.LotRecord, 0, len(mapped.Rows))
	for row := range mapped.Rows {
		text := func(field string) *string {
			value, ok := cleaning.Text(mapped.Cell(row, col(field)), b.noise)
			if !ok {
				return nil
			}
			return &value
		}
		number := func(field string) *float64 {
			raw := mapped.Cell(row, col(field))
			var value float64
			var ok bool
			if b.mapping.IsIntegerField(field) {
				value, ok = cleaning.Integral(raw)
			} else {
				value, ok = cleaning.Numeric(raw)
			}
			if !ok {
				return nil
			}
			return &value
		}

		records = append(records, models.LotRecord{
			SourceLocation:       b.sourceLocation,
			SaleDate:             meta.SaleDate,
			SaleNumber:           meta.SaleNumber,
			Broker:               text(config.FieldBroker),
			Mark:                 text(config.FieldMark),
			Grade:                text(config.FieldGrade),
			LotNumber:            text(config.FieldLotNumber),
			InvoiceNumber:        text(config.FieldInvoiceNumber),
			QuantityKgs:          number(config.FieldQuantityKgs),
			PackageCount:         number(config.FieldPackageCount),
			Price:                number(config.FieldPrice),
			ValuationOrRP:        number(config.FieldValuationOrRP),
			Buyer:                text(config.FieldBuyer),
			SourceFileIdentifier: fileIdentifier,
			ProcessedTimestamp:   processedAt,
		})
	}

	return records
}
