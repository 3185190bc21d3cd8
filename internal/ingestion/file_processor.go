package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/teatrade/auction-ingest/internal/models"
	"github.com/teatrade/auction-ingest/pkg/checksum"
)

// Processor defines the file-discovery seam.
type Processor interface {
	ScanForFiles(rootPath string) ([]models.FileInfo, error)
}

// FileProcessor walks the input directory, classifies files by filename
// pattern, and computes the identifiers the ledger needs.
type FileProcessor struct {
	logger *zap.Logger
}

func NewFileProcessor(logger *zap.Logger) *FileProcessor {
	return &FileProcessor{logger: logger}
}

// ScanForFiles lists the directory (listing order, not sorted; the store
// is order-independent) and returns a FileInfo per recognized file.
// Temporary and hidden files are always skipped.
func (fp *FileProcessor) ScanForFiles(rootPath string) ([]models.FileInfo, error) {
	entries, err := os.ReadDir(rootPath)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", rootPath, err)
	}

	var fileInfos []models.FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, "~") || strings.HasPrefix(name, ".") {
			continue
		}

		dataType, structure, ok := IdentifyFileType(name)
		if !ok {
			fp.logger.Info("Skipping unrecognized file", zap.String("file", name))
			continue
		}

		path := filepath.Join(rootPath, name)
		info, err := entry.Info()
		if err != nil {
			fp.logger.Warn("Could not stat file, skipping",
				zap.String("file", name), zap.Error(err))
			continue
		}

		sum, err := checksum.GetFileChecksum(path)
		if err != nil {
			fp.logger.Warn("Could not checksum file, skipping",
				zap.String("file", name), zap.Error(err))
			continue
		}

		fileInfos = append(fileInfos, models.FileInfo{
			Path:        path,
			Name:        name,
			Fingerprint: Fingerprint(name, info.ModTime().Unix()),
			Checksum:    sum,
			DataType:    dataType,
			Structure:   structure,
		})
	}

	fp.logger.Info("Directory scan complete",
		zap.String("dir", rootPath), zap.Int("files", len(fileInfos)))
	return fileInfos, nil
}

// Fingerprint builds the content-change-sensitive file identifier. Any
// edit bumps the mtime, which invalidates prior SUCCESS ledger entries
// and forces reprocessing.
func Fingerprint(name string, modTimeUnix int64) string {
	return fmt.Sprintf("%s|%d", name, modTimeUnix)
}

var structuredExtensions = map[string]bool{
	".csv":  true,
	".xls":  true,
	".xlsx": true,
	".xlsm": true,
}

// IdentifyFileType classifies a file by filename substring. GeneralReport
// exports carry both the catalogue and realized prices and are treated as
// SALE. An ambiguous structured extension also defaults to SALE rather
// than dropping data on the floor.
func IdentifyFileType(filename string) (models.DataType, models.Structure, bool) {
	name := strings.ToLower(filename)

	if strings.Contains(name, "generalreport") {
		return models.DataTypeSale, models.StructureStructured, true
	}

	if strings.Contains(name, "offer") || strings.Contains(name, "catalogue") {
		return models.DataTypeOffer, models.StructureStructured, true
	}

	if strings.Contains(name, "sale") || strings.Contains(name, "result") || strings.Contains(name, "price list") {
		if strings.Contains(name, "summary") || strings.Contains(name, "average") {
			return models.DataTypeSummary, models.StructureStructured, true
		}
		return models.DataTypeSale, models.StructureStructured, true
	}

	if strings.Contains(name, "commentary") || strings.Contains(name, "market report") {
		return models.DataTypeCommentary, models.StructureUnstructured, true
	}

	if structuredExtensions[strings.ToLower(filepath.Ext(filename))] {
		return models.DataTypeSale, models.StructureStructured, true
	}

	return "", "", false
}
