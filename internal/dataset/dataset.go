package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ErrUnavailable marks a sentence source that could not be fetched or
// parsed. It is surfaced before any translation request is sent.
var ErrUnavailable = errors.New("dataset unavailable")

// Source supplies an ordered, finite sequence of sentences. Calling
// Sentences again yields the same sequence.
type Source interface {
	Sentences(ctx context.Context) ([]string, error)
}

// DefaultColumn is the dataset field holding the sentence text.
const DefaultColumn = "sentence"

// CSVSource reads sentences from one column of a local CSV file. The
// file is read fully into memory; row order is preserved.
type CSVSource struct {
	Path   string
	Column string
}

func NewCSVSource(path, column string) *CSVSource {
	if column == "" {
		column = DefaultColumn
	}
	return &CSVSource{Path: path, Column: column}
}

func (s *CSVSource) Sentences(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", ErrUnavailable, s.Path, err)
	}
	defer f.Close()

	return parseColumn(f, s.Column)
}

// RemoteCSVSource fetches a CSV dataset over HTTP and reads sentences
// from one column. The default URL points at the Hugging Face export of
// the speech-uk text-to-speech sentence set.
type RemoteCSVSource struct {
	URL    string
	Column string
	Client *http.Client
}

// DefaultDatasetURL resolves the speech-uk/text-to-speech-sentences
// dataset on the Hugging Face hub.
const DefaultDatasetURL = "https://huggingface.co/datasets/speech-uk/text-to-speech-sentences/resolve/main/data.csv"

func NewRemoteCSVSource(url, column string) *RemoteCSVSource {
	if url == "" {
		url = DefaultDatasetURL
	}
	if column == "" {
		column = DefaultColumn
	}
	return &RemoteCSVSource{
		URL:    url,
		Column: column,
		Client: &http.Client{Timeout: 120 * time.Second},
	}
}

func (s *RemoteCSVSource) Sentences(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrUnavailable, err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch %s: %v", ErrUnavailable, s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrUnavailable, s.URL, resp.StatusCode)
	}

	return parseColumn(resp.Body, s.Column)
}

// parseColumn reads all CSV records and extracts the named column. The
// first record is the header; empty cells are kept out of the sequence.
func parseColumn(r io.Reader, column string) ([]string, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse CSV: %v", ErrUnavailable, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: CSV is empty", ErrUnavailable)
	}

	colIdx := -1
	for i, name := range records[0] {
		if name == column {
			colIdx = i
			break
		}
	}
	if colIdx < 0 {
		return nil, fmt.Errorf("%w: no column %q in header", ErrUnavailable, column)
	}

	sentences := make([]string, 0, len(records)-1)
	for _, row := range records[1:] {
		if colIdx >= len(row) {
			continue
		}
		if row[colIdx] == "" {
			continue
		}
		sentences = append(sentences, row[colIdx])
	}

	return sentences, nil
}
