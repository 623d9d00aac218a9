package services

import (
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"

	"izaanhr/cv-intake-bot/internal/models"
)

const ledgerSheet = "Applications"

var ledgerHeaders = []string{
	"Timestamp",
	"Phone Number",
	"Position Applied",
	"AI Score",
	"Category",
	"AI Analysis",
}

// LedgerService appends scored applications to the local xlsx ledger. Writes
// are serialized with a mutex: concurrent unsynchronized appends against the
// same workbook would corrupt it.
type LedgerService interface {
	Append(record models.ScoredApplication) error
	FilePath() string
}

type ledgerService struct {
	mu       sync.Mutex
	filePath string
}

func NewLedgerService(filePath string) LedgerService {
	return &ledgerService{
		filePath: filePath,
	}
}

// FilePath implements LedgerService.
func (l *ledgerService) FilePath() string {
	return l.filePath
}

// Append implements LedgerService. The workbook is created with a header row
// on first use; existing rows are never rewritten.
func (l *ledgerService) Append(record models.ScoredApplication) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := l.openOrCreate()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(ledgerSheet)
	if err != nil {
		return fmt.Errorf("failed to read ledger rows: %w", err)
	}

	rowNum := len(rows) + 1
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to compute ledger cell: %w", err)
	}

	row := []interface{}{
		record.Timestamp.Format("2006-01-02 15:04"),
		record.Phone,
		record.Position,
		record.RawScore,
		record.RankLabel,
		record.Analysis,
	}
	if err := f.SetSheetRow(ledgerSheet, cell, &row); err != nil {
		return fmt.Errorf("failed to write ledger row: %w", err)
	}

	if err := f.SaveAs(l.filePath); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}

	return nil
}

func (l *ledgerService) openOrCreate() (*excelize.File, error) {
	if _, err := os.Stat(l.filePath); os.IsNotExist(err) {
		f := excelize.NewFile()
		f.SetSheetName("Sheet1", ledgerSheet)

		headerStyle, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
		})
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create header style: %w", err)
		}

		header := make([]interface{}, len(ledgerHeaders))
		for i, h := range ledgerHeaders {
			header[i] = h
		}
		if err := f.SetSheetRow(ledgerSheet, "A1", &header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write ledger header: %w", err)
		}

		lastCell, _ := excelize.CoordinatesToCellName(len(ledgerHeaders), 1)
		if err := f.SetCellStyle(ledgerSheet, "A1", lastCell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to style ledger header: %w", err)
		}

		return f, nil
	}

	f, err := excelize.OpenFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}

	return f, nil
}
