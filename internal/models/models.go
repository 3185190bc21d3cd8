package models

import (
	"fmt"
	"time"
)

// DataType classifies what a source file contains, derived from its filename.
type DataType string

const (
	DataTypeOffer      DataType = "OFFER"
	DataTypeSale       DataType = "SALE"
	DataTypeSummary    DataType = "SUMMARY"
	DataTypeCommentary DataType = "COMMENTARY"
)

// Structure distinguishes tabular files from free-text reports.
type Structure string

const (
	StructureStructured   Structure = "structured"
	StructureUnstructured Structure = "unstructured"
)

// Processing log statuses.
const (
	StatusSuccess   = "SUCCESS"
	StatusNoNewData = "NO_NEW_DATA"
	StatusFailure   = "FAILURE"
)

// FileInfo describes one candidate file found during the directory scan.
// Fingerprint is basename|mtime, so any edit to the file produces a new
// fingerprint and invalidates previous ledger entries. Checksum is an
// xxhash of the content, recorded for diagnostics.
type FileInfo struct {
	Path        string
	Name        string
	Fingerprint string
	Checksum    string
	DataType    DataType
	Structure   Structure
}

// SaleMetadata carries the file-level sale identifier and date. Either
// field may be nil when neither the filename nor the embedded data could
// resolve it; rows are still persisted in that case.
type SaleMetadata struct {
	SaleNumber *string
	SaleDate   *string
}

// LotRecord is one normalized auction lot row. Nullable fields are
// pointers; numeric lot measures are float64 across the board, including
// package_count, to match the store's schema.
type LotRecord struct {
	SourceLocation       string
	SaleDate             *string
	SaleNumber           *string
	Broker               *string
	Mark                 *string
	Grade                *string
	LotNumber            *string
	InvoiceNumber        *string
	QuantityKgs          *float64
	PackageCount         *float64
	Price                *float64
	ValuationOrRP        *float64
	Buyer                *string
	SourceFileIdentifier string
	ProcessedTimestamp   time.Time
}

// ProcessingLogEntry is the ledger row keyed by (FileIdentifier, DataType).
type ProcessingLogEntry struct {
	FileIdentifier     string
	DataType           DataType
	ProcessedTimestamp time.Time
	RecordsInserted    int64
	Status             string
	Checksum           string
}

// AppError attaches file and pipeline-stage context to an error before it
// reaches the orchestration boundary.
type AppError struct {
	File    string
	Stage   string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s [%s]: %s - %v", e.File, e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %s", e.File, e.Stage, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
