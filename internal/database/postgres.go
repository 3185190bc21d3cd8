package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/teatrade/auction-ingest/internal/models"
)

func ConnectDB(ctx context.Context, connStr string) (*pgxpool.Pool, error) {
	dbpool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	return dbpool, nil
}

type PostgresDBManager struct {
	dbpool *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresDBManager(pool *pgxpool.Pool, logger *zap.Logger) *PostgresDBManager {
	return &PostgresDBManager{dbpool: pool, logger: logger}
}

// InitSchema creates the ledger and the append-only report tables. The
// natural-key unique constraints are what make re-ingestion safe: the
// insert path relies on them for its upsert-or-skip semantics.
func (m *PostgresDBManager) InitSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS processing_log (
			id SERIAL PRIMARY KEY,
			file_identifier TEXT NOT NULL,
			data_type VARCHAR(20) NOT NULL,
			processed_timestamp TIMESTAMP NOT NULL,
			records_inserted BIGINT,
			status VARCHAR(20) NOT NULL CHECK (status IN ('SUCCESS', 'NO_NEW_DATA', 'FAILURE')),
			checksum VARCHAR(64),
			UNIQUE (file_identifier, data_type)
		);`,
		`CREATE TABLE IF NOT EXISTS auction_sales (
			id BIGSERIAL PRIMARY KEY,
			source_location TEXT NOT NULL,
			sale_date TEXT,
			sale_number TEXT,
			broker TEXT,
			mark TEXT,
			grade TEXT,
			lot_number TEXT NOT NULL,
			invoice_number TEXT,
			quantity_kgs DOUBLE PRECISION,
			package_count DOUBLE PRECISION,
			price DOUBLE PRECISION,
			buyer TEXT,
			source_file_identifier TEXT NOT NULL,
			processed_timestamp TIMESTAMP NOT NULL,
			UNIQUE (source_location, sale_number, lot_number)
		);`,
		`CREATE TABLE IF NOT EXISTS auction_offers (
			id BIGSERIAL PRIMARY KEY,
			source_location TEXT NOT NULL,
			sale_date TEXT,
			sale_number TEXT,
			broker TEXT,
			mark TEXT,
			grade TEXT,
			lot_number TEXT NOT NULL,
			invoice_number TEXT,
			quantity_kgs DOUBLE PRECISION,
			package_count DOUBLE PRECISION,
			valuation_or_rp DOUBLE PRECISION,
			source_file_identifier TEXT NOT NULL,
			processed_timestamp TIMESTAMP NOT NULL,
			UNIQUE (source_location, sale_number, lot_number)
		);`,
		`CREATE TABLE IF NOT EXISTS grade_summary (
			id BIGSERIAL PRIMARY KEY,
			source_location TEXT NOT NULL,
			sale_date TEXT,
			sale_number TEXT,
			auction_type TEXT NOT NULL,
			grade TEXT NOT NULL,
			lots DOUBLE PRECISION,
			quantity_kgs DOUBLE PRECISION,
			source_file_identifier TEXT NOT NULL,
			processed_timestamp TIMESTAMP NOT NULL,
			UNIQUE (source_location, sale_number, auction_type, grade)
		);`,
		`CREATE TABLE IF NOT EXISTS market_commentary (
			id BIGSERIAL PRIMARY KEY,
			source_location TEXT NOT NULL,
			report_date TEXT,
			sale_number TEXT,
			content_type TEXT NOT NULL,
			content TEXT NOT NULL,
			source_file TEXT NOT NULL,
			processed_timestamp TIMESTAMP NOT NULL,
			UNIQUE (source_location, sale_number, content_type, source_file)
		);`,
	}

	for _, query := range queries {
		if _, err := m.dbpool.Exec(ctx, query); err != nil {
			return fmt.Errorf("error initializing schema: %w", err)
		}
	}

	m.logger.Info("Database schema initialized")
	return nil
}

// IsFileAlreadyProcessed reports whether this exact fingerprint already
// completed successfully for the data type. FAILURE and NO_NEW_DATA
// entries do not block a retry.
func (m *PostgresDBManager) IsFileAlreadyProcessed(ctx context.Context, fileIdentifier string, dataType models.DataType) (bool, error) {
	query := `
	SELECT status
	FROM processing_log
	WHERE file_identifier = $1 AND data_type = $2;`

	var status string
	err := m.dbpool.QueryRow(ctx, query, fileIdentifier, string(dataType)).Scan(&status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("error checking processing status: %w", err)
	}

	return status == models.StatusSuccess, nil
}

// LogProcessing upserts the ledger entry for a processing attempt,
// whatever its outcome. Failed attempts are recorded too so they can be
// retried on the next run without looping silently.
func (m *PostgresDBManager) LogProcessing(ctx context.Context, entry models.ProcessingLogEntry) error {
	query := `
	INSERT INTO processing_log (file_identifier, data_type, processed_timestamp, records_inserted, status, checksum)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (file_identifier, data_type) DO UPDATE SET
		processed_timestamp = EXCLUDED.processed_timestamp,
		records_inserted = EXCLUDED.records_inserted,
		status = EXCLUDED.status,
		checksum = EXCLUDED.checksum;`

	_, err := m.dbpool.Exec(ctx, query,
		entry.FileIdentifier, string(entry.DataType), entry.ProcessedTimestamp,
		entry.RecordsInserted, entry.Status, entry.Checksum)
	if err != nil {
		return fmt.Errorf("error logging processing status for %s: %w", entry.FileIdentifier, err)
	}

	return nil
}

var salesColumns = []string{
	"source_location", "sale_date", "sale_number", "broker", "mark", "grade",
	"lot_number", "invoice_number", "quantity_kgs", "package_count", "price",
	"buyer", "source_file_identifier", "processed_timestamp",
}

var offersColumns = []string{
	"source_location", "sale_date", "sale_number", "broker", "mark", "grade",
	"lot_number", "invoice_number", "quantity_kgs", "package_count",
	"valuation_or_rp", "source_file_identifier", "processed_timestamp",
}

// InsertSales lands a batch of sale records, silently skipping rows whose
// natural key (source_location, sale_number, lot_number) already exists.
// Returns the number of rows actually inserted.
func (m *PostgresDBManager) InsertSales(ctx context.Context, records []models.LotRecord) (int64, error) {
	args := func(rec models.LotRecord) []interface{} {
		return []interface{}{
			rec.SourceLocation, rec.SaleDate, rec.SaleNumber, rec.Broker, rec.Mark,
			rec.Grade, rec.LotNumber, rec.InvoiceNumber, rec.QuantityKgs,
			rec.PackageCount, rec.Price, rec.Buyer, rec.SourceFileIdentifier,
			rec.ProcessedTimestamp,
		}
	}
	return m.insertBatch(ctx, "auction_sales", salesColumns, records, args)
}

// InsertOffers lands a batch of offer records under the same
// upsert-or-skip semantics as InsertSales.
func (m *PostgresDBManager) InsertOffers(ctx context.Context, records []models.LotRecord) (int64, error) {
	args := func(rec models.LotRecord) []interface{} {
		return []interface{}{
			rec.SourceLocation, rec.SaleDate, rec.SaleNumber, rec.Broker, rec.Mark,
			rec.Grade, rec.LotNumber, rec.InvoiceNumber, rec.QuantityKgs,
			rec.PackageCount, rec.ValuationOrRP, rec.SourceFileIdentifier,
			rec.ProcessedTimestamp,
		}
	}
	return m.insertBatch(ctx, "auction_offers", offersColumns, records, args)
}

// Postgres caps bind parameters at 65535 per statement; chunking keeps a
// file of any size inside that limit (1000 rows x 14 columns per chunk).
const insertChunkRows = 1000

// insertBatch lands records in chunked multi-row
// INSERT ... ON CONFLICT DO NOTHING statements. Duplicate lots are
// absorbed by the store rather than surfaced, so a re-exported file that
// overlaps an earlier one only contributes its new rows. The summed
// command tags carry the true inserted count.
func (m *PostgresDBManager) insertBatch(ctx context.Context, table string, columns []string, records []models.LotRecord, args func(models.LotRecord) []interface{}) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	var total int64
	for start := 0; start < len(records); start += insertChunkRows {
		end := start + insertChunkRows
		if end > len(records) {
			end = len(records)
		}
		chunk := records[start:end]

		values := make([]interface{}, 0, len(chunk)*len(columns))
		for _, rec := range chunk {
			values = append(values, args(rec)...)
		}

		tag, err := m.dbpool.Exec(ctx, buildBatchInsert(table, columns, len(chunk)), values...)
		if err != nil {
			return total, fmt.Errorf("error inserting batch into %s: %w", table, err)
		}
		total += tag.RowsAffected()
	}

	if total < int64(len(records)) {
		m.logger.Info("Skipped duplicate lots during insert",
			zap.String("table", table),
			zap.Int64("inserted", total),
			zap.Int("batch", len(records)))
	}

	return total, nil
}

func buildBatchInsert(table string, columns []string, rows int) string {
	valueClauses := make([]string, rows)
	for i := 0; i < rows; i++ {
		placeholders := make([]string, len(columns))
		for j := range columns {
			placeholders[j] = fmt.Sprintf("$%d", i*len(columns)+j+1)
		}
		valueClauses[i] = fmt.Sprintf("(%s)", strings.Join(placeholders, ", "))
	}

	return fmt.Sprintf(`
	INSERT INTO %s (%s)
	VALUES %s
	ON CONFLICT (source_location, sale_number, lot_number) DO NOTHING;`,
		pgx.Identifier{table}.Sanitize(),
		strings.Join(columns, ", "),
		strings.Join(valueClauses, ", "))
}
