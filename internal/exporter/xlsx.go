package exporter

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

// DefaultSheetName names the single worksheet of an XLSX export
const DefaultSheetName = "Campaigns"

// XLSXWriter streams records into a single-sheet workbook.
// Rows are buffered by excelize and the file is written on Close.
type XLSXWriter struct {
	file   *excelize.File
	stream *excelize.StreamWriter
	path   string
	row    int
}

// CreateXLSXWriter prepares a workbook for filePath and writes headers
func CreateXLSXWriter(filePath string, headers []string) (*XLSXWriter, error) {
	slog.Debug("Creating XLSX stream writer",
		slog.String("file_path", filePath),
		slog.Int("header_count", len(headers)))

	if err := ensureDir(filePath); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", DefaultSheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	stream, err := f.NewStreamWriter(DefaultSheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create stream writer: %w", err)
	}

	w := &XLSXWriter{file: f, stream: stream, path: filePath}
	if len(headers) > 0 {
		if err := w.setRow(headers); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}
	return w, nil
}

// WriteRecord appends a row to the sheet
func (w *XLSXWriter) WriteRecord(record []string) error {
	if err := w.setRow(record); err != nil {
		return fmt.Errorf("failed to write record %d: %w", w.row, err)
	}
	return nil
}

// Close flushes the sheet, saves the workbook and releases it
func (w *XLSXWriter) Close() error {
	defer w.file.Close()

	if err := w.stream.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}
	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save %s: %w", w.path, err)
	}
	return nil
}

func (w *XLSXWriter) setRow(values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, w.row+1)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := w.stream.SetRow(cell, row); err != nil {
		return err
	}
	w.row++
	return nil
}
