package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"trends-exporter/internal/logger"
	"trends-exporter/internal/models"
	"trends-exporter/internal/trends"

	"golang.org/x/sync/errgroup"
)

const (
	// FilePrefix and TimestampLayout make up google_trends_<YYYYMMDD_HHMMSS>.csv.
	FilePrefix      = "google_trends_"
	TimestampLayout = "20060102_150405"
)

var (
	// ErrNoData is returned when every requested region failed.
	ErrNoData = errors.New("no trend data could be retrieved")

	// ErrExportExists is returned when the timestamped file is already present.
	ErrExportExists = errors.New("export file already exists")
)

// StatusSink receives human-readable progress messages. Implementations must
// be safe for concurrent use.
type StatusSink interface {
	Status(message string)
}

// StatusFunc adapts a plain function to StatusSink.
type StatusFunc func(message string)

func (f StatusFunc) Status(message string) { f(message) }

// ExportFileName returns the artifact name for an export started at t.
func ExportFileName(t time.Time) string {
	return FilePrefix + t.Format(TimestampLayout) + ".csv"
}

// ExportStats aggregates outcomes across runs for diagnostics.
type ExportStats struct {
	TotalExports  int
	FailedExports int
	RegionsFailed int
	AverageTime   time.Duration
}

// ExportService fetches trending terms per region and writes them to one CSV.
type ExportService struct {
	provider    trends.Provider
	log         logger.Logger
	concurrency int
	now         func() time.Time

	mu        sync.Mutex
	stats     ExportStats
	totalTime time.Duration
}

// NewExportService creates an export service. concurrency bounds the number of
// provider calls in flight during one export.
func NewExportService(provider trends.Provider, log logger.Logger, concurrency int) *ExportService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &ExportService{
		provider:    provider,
		log:         log,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// SetClock replaces the time source used for file names.
func (s *ExportService) SetClock(now func() time.Time) {
	s.now = now
}

type regionOutcome struct {
	terms []string
	err   error
}

// Run fetches every code in sel, skips regions that fail, and writes the
// remaining columns to a new CSV in sel.OutputDir. It writes nothing and
// returns ErrNoData when no region succeeded.
func (s *ExportService) Run(ctx context.Context, sel models.Selection, sink StatusSink) (*models.ExportResult, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = StatusFunc(func(string) {})
	}

	start := time.Now()
	s.log.Info("Exporter", "export started", map[string]interface{}{
		"regions":    sel.Codes,
		"output_dir": sel.OutputDir,
	})

	outcomes := s.fetchAll(ctx, sel.Codes, sink)
	if err := ctx.Err(); err != nil {
		s.record(start, err, 0)
		return nil, err
	}

	table := models.NewTrendTable()
	var failures []models.RegionFailure
	for i, code := range sel.Codes {
		if outcomes[i].err != nil {
			failures = append(failures, models.RegionFailure{Code: code, Err: outcomes[i].err})
			continue
		}
		table.AddColumn(code, outcomes[i].terms)
	}

	if table.Empty() {
		errs := make([]error, 0, len(failures))
		for _, f := range failures {
			errs = append(errs, fmt.Errorf("%s: %w", f.Code, f.Err))
		}
		err := fmt.Errorf("%w: %w", ErrNoData, errors.Join(errs...))
		s.log.Error("Exporter", err, map[string]interface{}{"regions": sel.Codes})
		s.record(start, err, len(failures))
		return nil, err
	}

	path := filepath.Join(sel.OutputDir, ExportFileName(s.now()))
	if err := writeTableCSV(path, table); err != nil {
		s.log.Error("Exporter", err, map[string]interface{}{"path": path})
		s.record(start, err, len(failures))
		return nil, err
	}

	result := &models.ExportResult{
		Path:     path,
		Columns:  table.Header(),
		Rows:     table.RowCount(),
		Failures: failures,
		Duration: time.Since(start),
	}
	s.record(start, nil, len(failures))

	s.log.Info("Exporter", "export written", map[string]interface{}{
		"path":           path,
		"columns":        table.ColumnCount(),
		"rows":           result.Rows,
		"regions_failed": len(failures),
		"duration_ms":    result.Duration.Milliseconds(),
	})
	sink.Status(fmt.Sprintf("Trends saved to:\n%s", path))

	return result, nil
}

// fetchAll queries the provider with bounded parallelism. Outcomes are stored
// by input position so column order matches the selection.
func (s *ExportService) fetchAll(ctx context.Context, codes []string, sink StatusSink) []regionOutcome {
	outcomes := make([]regionOutcome, len(codes))

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, code := range codes {
		i, code := i, code
		g.Go(func() error {
			sink.Status(fmt.Sprintf("Fetching trends for %s...", code))

			terms, err := s.provider.TrendingSearches(ctx, code)
			if err != nil {
				s.log.Warning("Exporter", "region skipped", map[string]interface{}{
					"region": code,
					"error":  err.Error(),
				})
				outcomes[i].err = err
				return nil
			}

			s.log.Debug("Exporter", "region fetched", map[string]interface{}{
				"region": code,
				"terms":  len(terms),
			})
			outcomes[i].terms = terms
			return nil
		})
	}

	// Per-region errors are recorded in outcomes; the group never fails.
	_ = g.Wait()
	return outcomes
}

func writeTableCSV(path string, table *models.TrendTable) (err error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExportExists, path)
		}
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close export file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	w := csv.NewWriter(file)
	if err := w.Write(table.Header()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range table.Rows() {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to finalise CSV: %w", err)
	}
	return nil
}

func (s *ExportService) record(start time.Time, err error, regionsFailed int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.TotalExports++
	s.stats.RegionsFailed += regionsFailed
	if err != nil {
		s.stats.FailedExports++
	}
	s.totalTime += time.Since(start)
	s.stats.AverageTime = s.totalTime / time.Duration(s.stats.TotalExports)
}

// GetExportStats returns counters accumulated since start-up.
func (s *ExportService) GetExportStats() ExportStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
