package ingestion

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/teatrade/auction-ingest/internal/config"
	"github.com/teatrade/auction-ingest/internal/database"
	"github.com/teatrade/auction-ingest/internal/metadata"
	"github.com/teatrade/auction-ingest/internal/models"
	"github.com/teatrade/auction-ingest/internal/parser"
)

// Service orchestrates one batch run: scan, classify, and process each
// file independently. A failing file is recorded and skipped; nothing a
// single file does can abort the batch.
type Service struct {
	dbManager     database.DBManager
	fileProcessor Processor
	resolver      *metadata.Resolver
	builder       *recordBuilder
	mapping       config.Mapping
	detector      parser.DetectorParams
	logger        *zap.Logger

	now func() time.Time
}

func NewService(
	dbManager database.DBManager,
	fileProcessor Processor,
	resolver *metadata.Resolver,
	mapping config.Mapping,
	detector parser.DetectorParams,
	sourceLocation string,
	logger *zap.Logger,
) *Service {
	return &Service{
		dbManager:     dbManager,
		fileProcessor: fileProcessor,
		resolver:      resolver,
		builder:       newRecordBuilder(mapping, sourceLocation),
		mapping:       mapping,
		detector:      detector,
		logger:        logger,
		now:           time.Now,
	}
}

// Execute runs the pipeline over one directory. Only the scan itself can
// fail the run; per-file outcomes land in the processing log.
func (s *Service) Execute(ctx context.Context, dir string) error {
	fileInfos, err := s.fileProcessor.ScanForFiles(dir)
	if err != nil {
		return err
	}

	processed := 0
	for _, fileInfo := range fileInfos {
		s.logger.Info("Processing file",
			zap.String("file", fileInfo.Name),
			zap.String("type", string(fileInfo.DataType)),
			zap.String("structure", string(fileInfo.Structure)))

		s.processFile(ctx, fileInfo)
		processed++
	}

	if processed == 0 {
		s.logger.Info("No processable files found", zap.String("dir", dir))
	}

	s.logger.Info("Batch run finished", zap.Int("files", processed))
	return nil
}

func (s *Service) processFile(ctx context.Context, fileInfo models.FileInfo) {
	if fileInfo.Structure == models.StructureUnstructured {
		// Commentary extraction is out of scope; the file stays eligible
		// for a future extractor because no ledger entry is written.
		s.logger.Info("Skipping unstructured file (extraction not implemented)",
			zap.String("file", fileInfo.Name))
		return
	}

	alreadyDone, err := s.dbManager.IsFileAlreadyProcessed(ctx, fileInfo.Fingerprint, fileInfo.DataType)
	if err != nil {
		// a broken ledger read must not hide the file: treat it as new and
		// let the post-attempt ledger write record the outcome
		s.logger.Warn("Could not check processing status, treating file as new",
			zap.String("file", fileInfo.Name), zap.Error(err))
	}
	if alreadyDone {
		s.logger.Info("File already processed successfully, skipping",
			zap.String("file", fileInfo.Name),
			zap.String("fingerprint", fileInfo.Fingerprint))
		return
	}

	inserted, procErr := s.processStructured(ctx, fileInfo)

	status := models.StatusNoNewData
	if procErr != nil {
		status = models.StatusFailure
		s.logger.Error("File processing failed",
			zap.String("file", fileInfo.Name), zap.Error(procErr))
	} else if inserted > 0 {
		status = models.StatusSuccess
	}

	entry := models.ProcessingLogEntry{
		FileIdentifier:     fileInfo.Fingerprint,
		DataType:           fileInfo.DataType,
		ProcessedTimestamp: s.now(),
		RecordsInserted:    inserted,
		Status:             status,
		Checksum:           fileInfo.Checksum,
	}
	if err := s.dbManager.LogProcessing(ctx, entry); err != nil {
		s.logger.Error("Failed to update processing log",
			zap.String("file", fileInfo.Name), zap.Error(err))
	}

	s.logger.Info("Finished processing file",
		zap.String("file", fileInfo.Name),
		zap.String("status", status),
		zap.Int64("records_inserted", inserted))
}

func (s *Service) processStructured(ctx context.Context, fileInfo models.FileInfo) (int64, error) {
	keywords := s.mapping.HeaderKeywords
	if fileInfo.DataType == models.DataTypeSummary {
		keywords = config.FieldNames(s.mapping.SummaryFields)
	}

	table, err := parser.ReadFile(fileInfo.Path, keywords, s.detector, s.logger)
	if err != nil {
		return 0, &models.AppError{File: fileInfo.Name, Stage: "read", Message: "failed to read file", Err: err}
	}
	if table.Empty() {
		return 0, &models.AppError{File: fileInfo.Name, Stage: "read", Message: "file is empty or unreadable"}
	}

	switch fileInfo.DataType {
	case models.DataTypeOffer, models.DataTypeSale:
		return s.processLotDetails(ctx, fileInfo, table)
	case models.DataTypeSummary:
		// Grade summary extraction mirrors the upstream exports' stub:
		// the file is read and ledgered but contributes no rows yet.
		s.logger.Info("Grade summary extraction not implemented, recording file only",
			zap.String("file", fileInfo.Name))
		return 0, nil
	default:
		return 0, nil
	}
}

// processLotDetails is the heart of the pipeline: map columns, resolve
// sale metadata, clean, classify, and persist both projections.
func (s *Service) processLotDetails(ctx context.Context, fileInfo models.FileInfo, table parser.Table) (int64, error) {
	mapped := parser.MapColumns(table, s.mapping.LotFields)

	meta := s.resolver.Resolve(fileInfo.Name, mapped)

	records := s.builder.build(mapped, meta, fileInfo.Fingerprint, s.now())
	offers, sales := Classify(records)

	if len(offers) == 0 && len(sales) == 0 {
		s.logger.Warn("No valid lot details found after cleaning",
			zap.String("file", fileInfo.Name))
		return 0, nil
	}

	var total int64

	if len(offers) > 0 {
		inserted, err := s.dbManager.InsertOffers(ctx, offers)
		if err != nil {
			return total, &models.AppError{File: fileInfo.Name, Stage: "persist", Message: "failed to insert offers", Err: err}
		}
		s.logger.Info("Inserted offer records",
			zap.String("file", fileInfo.Name), zap.Int64("inserted", inserted))
		total += inserted
	}

	if len(sales) > 0 {
		inserted, err := s.dbManager.InsertSales(ctx, sales)
		if err != nil {
			return total, &models.AppError{File: fileInfo.Name, Stage: "persist", Message: "failed to insert sales", Err: err}
		}
		s.logger.Info("Inserted sale records",
			zap.String("file", fileInfo.Name), zap.Int64("inserted", inserted))
		total += inserted
	}

	s.logger.Info("Lot details finalized",
		zap.String("file", fileInfo.Name),
		zap.Int("offers", len(offers)),
		zap.Int("sales", len(sales)))

	return total, nil
}
