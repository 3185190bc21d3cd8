package database

import (
	"context"

	"github.com/teatrade/auction-ingest/internal/models"
)

// DBManager is the storage seam of the pipeline: the idempotency ledger
// plus the append-only, natural-key-deduplicated lot tables.
type DBManager interface {
	InitSchema(ctx context.Context) error
	IsFileAlreadyProcessed(ctx context.Context, fileIdentifier string, dataType models.DataType) (bool, error)
	LogProcessing(ctx context.Context, entry models.ProcessingLogEntry) error
	InsertOffers(ctx context.Context, records []models.LotRecord) (int64, error)
	InsertSales(ctx context.Context, records []models.LotRecord) (int64, error)
}
