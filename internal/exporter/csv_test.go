package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCreateStreamWriter(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		records  [][]string
		options  WriteOptions
		validate func(t *testing.T, content []byte, path string)
	}{
		{
			name:    "headers and records",
			headers: []string{"Campaign ID", "Campaign Name"},
			records: [][]string{{"1", "Alpha"}, {"2", "Beta"}},
			validate: func(t *testing.T, content []byte, path string) {
				assert.Equal(t, "Campaign ID,Campaign Name\n1,Alpha\n2,Beta\n", string(content))
			},
		},
		{
			name:    "header only",
			headers: []string{"Campaign ID", "Campaign Name"},
			validate: func(t *testing.T, content []byte, path string) {
				assert.Equal(t, "Campaign ID,Campaign Name\n", string(content))
			},
		},
		{
			name:    "special characters are quoted",
			headers: []string{"id", "name"},
			records: [][]string{{"7", `Sale, "Big" one`}, {"8", "multi\nline"}, {"9", "Ünïcödé"}},
			validate: func(t *testing.T, content []byte, path string) {
				records := readCSV(t, path)
				require.Len(t, records, 4)
				assert.Equal(t, []string{"7", `Sale, "Big" one`}, records[1])
				assert.Equal(t, []string{"8", "multi\nline"}, records[2])
				assert.Equal(t, []string{"9", "Ünïcödé"}, records[3])
			},
		},
		{
			name:    "BOM prefix",
			headers: []string{"a"},
			options: WriteOptions{BOMPrefix: true},
			validate: func(t *testing.T, content []byte, path string) {
				assert.True(t, bytes.HasPrefix(content, []byte{0xEF, 0xBB, 0xBF}))
				assert.Equal(t, "a\n", string(content[3:]))
			},
		},
		{
			name:    "no headers",
			records: [][]string{{"x"}},
			validate: func(t *testing.T, content []byte, path string) {
				assert.Equal(t, "x\n", string(content))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.csv")

			w, err := CreateStreamWriter(path, tt.headers, tt.options)
			require.NoError(t, err)
			for _, r := range tt.records {
				require.NoError(t, w.WriteRecord(r))
			}
			assert.Equal(t, len(tt.records), w.Rows())
			require.NoError(t, w.Close())

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			tt.validate(t, content, path)
		})
	}
}

func TestCreateStreamWriter_CreatesNestedDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c", "out.csv")

	w, err := CreateStreamWriter(path, []string{"h"}, WriteOptions{})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestCreateStreamWriter_TruncatesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("old,content\nthat,is\nmuch,longer\n"), 0644))

	w, err := CreateStreamWriter(path, []string{"new"}, WriteOptions{})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(content))
}

func TestCreateStreamWriter_DirectoryIsAFile(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := CreateStreamWriter(filepath.Join(blocker, "out.csv"), nil, WriteOptions{})
	assert.ErrorContains(t, err, "failed to create directory")
}
