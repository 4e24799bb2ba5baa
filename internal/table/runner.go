package table

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/san-kum/fitcsv/internal/extract"
)

// Opener loads one fit-result file.
type Opener func(path string) (extract.FitResult, error)

// Status classifies the outcome of one processed file.
type Status int

const (
	// StatusWritten means the file contributed a row.
	StatusWritten Status = iota
	// StatusSkippedOpen means a non-schema file could not be opened.
	StatusSkippedOpen
	// StatusSkippedInvalid means the fit did not converge.
	StatusSkippedInvalid
	// StatusSkippedDrift means the amplitude set differs from the
	// schema-defining file.
	StatusSkippedDrift
	// StatusFailed means extraction hit a hard per-file error, such
	// as a malformed amplitude tag.
	StatusFailed
)

// Event reports the outcome of one file to an observer.
type Event struct {
	Index  int
	Total  int
	Path   string
	Status Status
	Err    error
}

// Summary totals one batch run.
type Summary struct {
	Files          int
	Rows           int
	SkippedOpen    int
	SkippedInvalid int
	SkippedDrift   int
	Failed         int
	Errors         []error
}

// Batch drives sequential extraction of an ordered file list into one
// csv table. Only the locked column schema persists across files.
type Batch struct {
	Open    Opener
	Options extract.Options
	Logger  *zap.Logger
	// OnFile, when set, observes every file outcome (progress UIs).
	OnFile func(Event)
}

// Run processes the files in order, writing one row per valid file.
//
// An open failure is fatal only while no schema is locked; afterwards
// the file is skipped. Invalid fits, schema drift, and hard per-file
// extraction errors skip the file and the batch continues.
func (b *Batch) Run(files []string, out io.Writer) (Summary, error) {
	logger := b.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	w := NewWriter(out)
	sum := Summary{Files: len(files)}

	emit := func(i int, path string, st Status, err error) {
		if b.OnFile != nil {
			b.OnFile(Event{Index: i, Total: len(files), Path: path, Status: st, Err: err})
		}
	}

	for i, path := range files {
		logger.Info("analyzing file", zap.String("path", path))

		res, err := b.Open(path)
		if err != nil {
			if !w.Locked() {
				return sum, fmt.Errorf("%w: %s: %v", ErrSchemaFileOpen, path, err)
			}
			sum.SkippedOpen++
			sum.Errors = append(sum.Errors, fmt.Errorf("%s: %w", path, err))
			logger.Warn("cannot open file, skipping", zap.String("path", path), zap.Error(err))
			emit(i, path, StatusSkippedOpen, err)
			continue
		}

		rec, err := extract.Extract(res, b.Options)
		if err != nil {
			if errors.Is(err, extract.ErrInvalidFit) {
				sum.SkippedInvalid++
				logger.Warn("invalid fit results, skipping", zap.String("path", path))
				emit(i, path, StatusSkippedInvalid, err)
				continue
			}
			sum.Failed++
			sum.Errors = append(sum.Errors, fmt.Errorf("%s: %w", path, err))
			logger.Error("extraction failed", zap.String("path", path), zap.Error(err))
			emit(i, path, StatusFailed, err)
			continue
		}

		if err := w.Write(rec); err != nil {
			if errors.Is(err, ErrSchemaDrift) {
				sum.SkippedDrift++
				sum.Errors = append(sum.Errors, fmt.Errorf("%s: %w", path, err))
				logger.Error("schema drift, row dropped", zap.String("path", path), zap.Error(err))
				emit(i, path, StatusSkippedDrift, err)
				continue
			}
			return sum, fmt.Errorf("writing row for %s: %w", path, err)
		}

		sum.Rows++
		emit(i, path, StatusWritten, nil)
	}

	return sum, nil
}
