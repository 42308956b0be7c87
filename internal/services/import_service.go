package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/celyn/geirfa/internal/errors"
	"github.com/celyn/geirfa/internal/jobs"
	"github.com/celyn/geirfa/internal/logger"
	"github.com/celyn/geirfa/internal/models"
	"github.com/celyn/geirfa/internal/worker"
)

// ImportSummary reports what a deck upload produced.
type ImportSummary struct {
	Queued  int      `json:"queued"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// ImportService parses deck files and queues card creation.
// Expected columns: source, target, pronunciation, category, then
// optional example sentence pairs (source, target).
type ImportService interface {
	ImportDeck(ctx context.Context, userID int64, filename string, r io.Reader) (*ImportSummary, error)
}

type importService struct {
	queue jobs.JobQueue
}

// NewImportService creates a new ImportService
func NewImportService(queue jobs.JobQueue) ImportService {
	return &importService{queue: queue}
}

func (s *importService) ImportDeck(ctx context.Context, userID int64, filename string, r io.Reader) (*ImportSummary, error) {
	log := logger.FromContext(ctx)
	log.Info("importing deck: user_id=%d, file=%s", userID, filename)

	var rows [][]string
	var err error
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx":
		rows, err = readXLSX(r)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return nil, errors.NewValidationError("file", fmt.Sprintf("unsupported format %q, expected .xlsx or .csv", ext))
	}
	if err != nil {
		log.Warn("failed to parse deck file %s: %v", filename, err)
		return nil, errors.NewBadRequestError(fmt.Sprintf("could not read %s: %v", filename, err))
	}

	summary := &ImportSummary{}
	var cards []models.Flashcard
	for i, row := range rows {
		if i == 0 && isHeaderRow(row) {
			continue
		}
		card, err := parseCardRow(row, userID)
		if err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		if card == nil {
			continue
		}
		cards = append(cards, *card)
	}

	if len(cards) == 0 {
		return nil, errors.NewBadRequestError("no usable rows in file")
	}
	if err := s.queue.EnqueueImport(userID, filename, cards); err != nil {
		if err == worker.ErrQueueFull {
			return nil, errors.NewConflictError("import queue is full, try again later")
		}
		return nil, errors.NewInternalError(err)
	}

	summary.Queued = len(cards)
	log.Info("deck queued: %d cards, %d rows skipped", summary.Queued, summary.Skipped)
	return summary, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheet)
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader.ReadAll()
}

func isHeaderRow(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "source")
}

func parseCardRow(row []string, userID int64) (*models.Flashcard, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	source := cell(0)
	target := cell(1)
	if source == "" && target == "" {
		return nil, nil
	}
	if source == "" {
		return nil, fmt.Errorf("missing source text")
	}
	if target == "" {
		return nil, fmt.Errorf("missing target text")
	}
	category := cell(3)
	if category == "" {
		category = "uncategorised"
	}

	card := &models.Flashcard{
		ID:            uuid.NewString(),
		UserID:        userID,
		SourceText:    source,
		TargetText:    target,
		Pronunciation: cell(2),
		Category:      category,
	}
	// Example pairs follow in columns 5, 6, 7, 8, ...
	for i := 4; i < len(row); i += 2 {
		exSource, exTarget := cell(i), cell(i+1)
		if exSource == "" && exTarget == "" {
			continue
		}
		card.Examples = append(card.Examples, models.ExampleSentence{Source: exSource, Target: exTarget})
	}
	return card, nil
}
