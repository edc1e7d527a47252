package exporter

import (
	"fmt"
	"strconv"
	"strings"
)

// Format selects the output file type
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat parses a user-supplied format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want csv or xlsx)", s)
	}
}

// Extension returns the file extension including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// RecordWriter streams records into a tabular file
type RecordWriter interface {
	WriteRecord(record []string) error
	Close() error
}

// Create opens a writer for format at filePath and writes headers
func Create(format Format, filePath string, headers []string) (RecordWriter, error) {
	switch format {
	case FormatCSV:
		return CreateStreamWriter(filePath, headers, WriteOptions{})
	case FormatXLSX:
		return CreateXLSXWriter(filePath, headers)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// FormatInt formats an int64 value for export
func FormatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}
