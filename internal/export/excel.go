package export

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"salonmate/internal/model"
)

var exportColumns = []string{"날짜", "시간", "고객명", "연락처", "시술", "메모", "등록일"}

// ExcelWriter renders the reservation book as an xlsx workbook, one
// sheet per month.
type ExcelWriter struct {
	file         *excelize.File
	currentSheet string
	currentRow   int
}

func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{file: excelize.NewFile()}
}

// WriteReservations builds the workbook and returns its bytes.
// Reservations are sorted by date then time; each YYYY-MM month
// becomes its own sheet.
func (w *ExcelWriter) WriteReservations(reservations []model.Reservation) ([]byte, error) {
	sorted := make([]model.Reservation, len(reservations))
	copy(sorted, reservations)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].Time < sorted[j].Time
	})

	if len(sorted) == 0 {
		if err := w.addSheet("예약"); err != nil {
			return nil, err
		}
		if err := w.writeHeader(); err != nil {
			return nil, err
		}
	}

	var currentMonth string
	for _, r := range sorted {
		month := monthOf(r.Date)
		if month != currentMonth {
			if err := w.addSheet(month); err != nil {
				return nil, err
			}
			if err := w.writeHeader(); err != nil {
				return nil, err
			}
			currentMonth = month
		}
		row := []any{r.Date, r.Time, r.CustomerName, r.CustomerPhone,
			r.ServiceType, r.Memo, r.CreatedAt.Format("2006-01-02 15:04")}
		if err := w.writeRow(row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := w.file.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func monthOf(dateStr string) string {
	if len(dateStr) >= 7 {
		return dateStr[:7]
	}
	return dateStr
}

func (w *ExcelWriter) addSheet(name string) error {
	// Excel caps sheet names at 31 chars.
	if len(name) > 31 {
		name = name[:31]
	}

	if w.currentSheet == "" {
		w.file.SetSheetName("Sheet1", name)
	} else {
		if _, err := w.file.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	w.currentSheet = name
	w.currentRow = 1
	return nil
}

func (w *ExcelWriter) writeHeader() error {
	for i, col := range exportColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, w.currentRow)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.currentSheet, cell, col); err != nil {
			return err
		}
	}

	style, err := w.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, w.currentRow)
		endCell, _ := excelize.CoordinatesToCellName(len(exportColumns), w.currentRow)
		_ = w.file.SetCellStyle(w.currentSheet, startCell, endCell, style)
	}

	w.currentRow++
	return nil
}

func (w *ExcelWriter) writeRow(row []any) error {
	for i, val := range row {
		cell, err := excelize.CoordinatesToCellName(i+1, w.currentRow)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.currentSheet, cell, val); err != nil {
			return err
		}
	}
	w.currentRow++
	return nil
}
