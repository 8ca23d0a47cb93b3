package dictionary

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bastiangx/cluelist/internal/utils"
	"github.com/bastiangx/cluelist/pkg/wordlist"
	"github.com/charmbracelet/log"
)

// csvFields is the column count of a clue row: id, clue, answer
const csvFields = 3

// LoaderStats describes how far a CSVReader got through its input.
type LoaderStats struct {
	Rows      int   // data rows returned, header excluded
	BytesRead int64 // bytes consumed from the underlying reader
	Size      int64 // total input size, 0 if unknown
}

// Percent returns read progress as a 0-100 value.
func (s LoaderStats) Percent() float64 {
	return utils.Percent(s.BytesRead, s.Size)
}

// countingReader tracks how many bytes passed through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// CSVReader streams RawEntry values from id,clue,answer rows. Quoted fields
// may contain commas, doubled quotes and newlines. Rows with fewer than three
// fields are padded with empty strings, extra fields are ignored.
type CSVReader struct {
	csv        *csv.Reader
	counter    *countingReader
	size       int64
	skipHeader bool
	started    bool
	rows       int
}

// NewCSVReader wraps r. size is only used for progress and may be 0.
func NewCSVReader(r io.Reader, size int64, skipHeader bool) *CSVReader {
	counter := &countingReader{r: r}
	cr := csv.NewReader(counter)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	return &CSVReader{
		csv:        cr,
		counter:    counter,
		size:       size,
		skipHeader: skipHeader,
	}
}

// Read returns the next row. It returns io.EOF when the input is exhausted.
func (r *CSVReader) Read() (wordlist.RawEntry, error) {
	if !r.started {
		r.started = true
		if r.skipHeader {
			if _, err := r.csv.Read(); err != nil {
				return wordlist.RawEntry{}, r.wrap(err)
			}
		}
	}

	record, err := r.csv.Read()
	if err != nil {
		return wordlist.RawEntry{}, r.wrap(err)
	}
	r.rows++

	var fields [csvFields]string
	copy(fields[:], record)
	return wordlist.RawEntry{ID: fields[0], Clue: fields[1], Answer: fields[2]}, nil
}

func (r *CSVReader) wrap(err error) error {
	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	return fmt.Errorf("read csv row %d: %w", r.rows+1, err)
}

// Stats returns the progress so far.
func (r *CSVReader) Stats() LoaderStats {
	return LoaderStats{
		Rows:      r.rows,
		BytesRead: r.counter.n,
		Size:      r.size,
	}
}

// RowFunc receives each row along with the reader progress.
type RowFunc func(entry wordlist.RawEntry, stats LoaderStats) error

// LoadRaw streams every row of a clue CSV file into fn. A non-nil error from
// fn stops the load and is returned.
func LoadRaw(path string, skipHeader bool, fn RowFunc) (LoaderStats, error) {
	if err := ValidateFileFormat(path, FormatCSV); err != nil {
		return LoaderStats{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return LoaderStats{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	var size int64
	if info, err := file.Stat(); err == nil {
		size = info.Size()
	}

	reader := NewCSVReader(file, size, skipHeader)
	for {
		entry, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return reader.Stats(), fmt.Errorf("%s: %w", path, err)
		}
		if err := fn(entry, reader.Stats()); err != nil {
			return reader.Stats(), err
		}
	}

	stats := reader.Stats()
	log.Debugf("Read %s rows from %s", utils.FormatWithCommas(stats.Rows), path)
	return stats, nil
}

// LoadWordList loads a dataset from either a word list artifact or a raw
// clue CSV, aggregating the latter in memory.
func LoadWordList(path string, opts ...wordlist.Option) (wordlist.WordList, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
		return wordlist.ReadFile(path)
	case FormatCSV:
		agg := wordlist.NewAggregator(opts...)
		_, err := LoadRaw(path, true, func(entry wordlist.RawEntry, _ LoaderStats) error {
			agg.Add(entry)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return agg.List(), nil
	default:
		return nil, fmt.Errorf("unsupported format %v", format)
	}
}
