// Package exporter writes tabular exports to disk.
//
// Writers stream one record at a time: the output directory is created if
// missing, any existing file is truncated, the header row is written first and
// records follow in the order they are written.
//
// Two formats are supported:
//
//	CSV  - encoding/csv, UTF-8, optional BOM for Excel
//	XLSX - excelize stream writer, saved on Close
//
// Example usage:
//
//	w, err := exporter.Create(exporter.FormatCSV, "out/campaigns.csv", []string{"Campaign ID", "Campaign Name"})
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	err = w.WriteRecord([]string{"1", "Spring sale"})
package exporter
