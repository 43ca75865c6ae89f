package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"

	"courtwatch-backend/models"
)

// csvColumns is the fixed tabular schema: every decision field except
// the raw opinion text
var csvColumns = []string{
	"opinion_id",
	"cluster_id",
	"case_name",
	"date_filed",
	"author",
	"type",
	"citation",
	"page_count",
	"url",
	"download_url",
	"classification",
	"confidence",
	"tags",
	"notes",
	"summary",
	"reasoning",
	"text_length",
	"analyzed_date",
}

// CSVStore is the tabular output store. Rows are appended; the header
// row is written exactly once, when the file is first created.
type CSVStore struct {
	path string
}

// NewCSVStore creates a CSV store at the given path
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Path returns the file path of the store
func (s *CSVStore) Path() string {
	return s.path
}

// Append writes the batch to the end of the file, creating it with a
// header row if it does not exist yet
func (s *CSVStore) Append(decisions []models.Decision) error {
	_, statErr := os.Stat(s.path)
	writeHeader := errors.Is(statErr, os.ErrNotExist)

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open tabular store: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(csvColumns); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	for i := range decisions {
		if err := w.Write(record(&decisions[i])); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush tabular store: %w", err)
	}
	return nil
}

// ReadIDs returns the set of opinion ids present in the store. Rows with
// an unparsable id are skipped.
func (s *CSVStore) ReadIDs() (map[int64]struct{}, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tabular store: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read tabular store: %w", err)
	}
	if len(rows) == 0 {
		return map[int64]struct{}{}, nil
	}

	idCol := -1
	for i, name := range rows[0] {
		if name == "opinion_id" {
			idCol = i
			break
		}
	}
	if idCol < 0 {
		return nil, errors.New("tabular store has no opinion_id column")
	}

	ids := make(map[int64]struct{}, len(rows)-1)
	for _, row := range rows[1:] {
		if idCol >= len(row) {
			continue
		}
		id, err := strconv.ParseInt(row[idCol], 10, 64)
		if err != nil {
			continue
		}
		ids[id] = struct{}{}
	}
	return ids, nil
}

func record(d *models.Decision) []string {
	return []string{
		strconv.FormatInt(d.OpinionID, 10),
		strconv.FormatInt(d.ClusterID, 10),
		d.CaseName,
		d.DateFiled,
		d.Author,
		d.Type,
		d.Citation,
		strconv.Itoa(d.PageCount),
		d.URL,
		d.DownloadURL,
		d.Classification,
		d.Confidence,
		d.Tags,
		d.Notes,
		d.Summary,
		d.Reasoning,
		strconv.Itoa(d.TextLength),
		d.AnalyzedDate,
	}
}
