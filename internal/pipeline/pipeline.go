// Package pipeline drives one ingestion run: discover spreadsheet files,
// extract, transform and load each one sequentially, and finalize the batch
// row. One bad file never aborts the run.
package pipeline

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"voltgrid/internal/excel"
	"voltgrid/internal/models"
	"voltgrid/internal/parser"
	"voltgrid/internal/repository"
	"voltgrid/internal/transform"
)

// ExtractFunc produces the raw records of one spreadsheet file.
type ExtractFunc func(path string) (parser.Result, error)

// Extract is the production extractor: workbook grid reader plus row parser.
func Extract(path string) (parser.Result, error) {
	grid, err := excel.ReadGrid(path)
	if err != nil {
		return parser.Result{}, err
	}
	return parser.Parse(grid, filepath.Base(path))
}

// FileLoader persists one file's canonical records atomically.
type FileLoader interface {
	LoadFile(ctx context.Context, stations []models.Station, connectors []models.Connector) (models.FileStats, error)
}

// BatchTracker owns the ingestion batch lifecycle row.
type BatchTracker interface {
	Start(ctx context.Context, id string) error
	Complete(ctx context.Context, id string, stats models.RunStats) error
}

// Pipeline orchestrates extract -> transform -> load per file, strictly
// sequentially, and aggregates totals across files.
type Pipeline struct {
	extract ExtractFunc
	loader  FileLoader
	batches BatchTracker
	batchID string
	logger  *zap.Logger
}

// New wires a pipeline for one batch.
func New(extract ExtractFunc, loader FileLoader, batches BatchTracker, batchID string, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		extract: extract,
		loader:  loader,
		batches: batches,
		batchID: batchID,
		logger:  logger,
	}
}

// Run processes every spreadsheet in inputDir. A missing or unreadable
// directory is fatal; any per-file failure is logged and skipped, and the
// batch completes with the sum of the surviving files' counts.
func (p *Pipeline) Run(ctx context.Context, inputDir string) (models.RunStats, error) {
	var totals models.RunStats

	files, err := DiscoverFiles(inputDir)
	if err != nil {
		return totals, err
	}
	p.logger.Info("discovered spreadsheet files",
		zap.Int("count", len(files)),
		zap.String("input_dir", inputDir))

	if err := p.batches.Start(ctx, p.batchID); err != nil {
		return totals, fmt.Errorf("pipeline: start batch: %w", err)
	}

	for _, file := range files {
		name := filepath.Base(file)
		p.logger.Info("processing file", zap.String("file", name))

		raw, err := p.extract(file)
		if err != nil {
			p.logger.Error("extract failed, skipping file",
				zap.String("file", name), zap.Error(err))
			continue
		}

		res := transform.Apply(raw)
		if res.DroppedStations > 0 || res.DroppedConnectors > 0 {
			p.logger.Warn("dropped malformed records",
				zap.String("file", name),
				zap.Int("stations", res.DroppedStations),
				zap.Int("connectors", res.DroppedConnectors))
		}

		fs, err := p.loader.LoadFile(ctx, res.Stations, res.Connectors)
		if err != nil {
			p.logger.Error("load failed, skipping file",
				zap.String("file", name), zap.Error(err))
			continue
		}

		totals.AddFile(fs)
		p.logger.Info("file loaded",
			zap.String("file", name),
			zap.Int("stations_inserted", fs.StationsInserted),
			zap.Int("stations_updated", fs.StationsUpdated),
			zap.Int("connectors_inserted", fs.ConnectorsInserted),
			zap.Int("connectors_skipped", fs.ConnectorsSkipped),
			zap.Int("records_failed", fs.RecordsFailed))
	}

	if err := p.batches.Complete(ctx, p.batchID, totals); err != nil {
		return totals, fmt.Errorf("pipeline: complete batch: %w", err)
	}
	return totals, nil
}

// DiscoverFiles lists the workbook files in dir, sorted by name. Extension
// match is case-insensitive.
func DiscoverFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("pipeline: read input dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".xls", ".xlsx":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// BatchRepoTracker adapts the batch repository to the BatchTracker
// interface, binding it to the run's connection pool.
type BatchRepoTracker struct {
	pool *sql.DB
	repo *repository.BatchRepository
}

// NewBatchRepoTracker returns the production batch tracker.
func NewBatchRepoTracker(pool *sql.DB) *BatchRepoTracker {
	return &BatchRepoTracker{pool: pool, repo: repository.NewBatchRepository()}
}

// Start inserts the RUNNING batch row.
func (t *BatchRepoTracker) Start(ctx context.Context, id string) error {
	return t.repo.Start(ctx, t.pool, id)
}

// Complete writes the terminal batch update.
func (t *BatchRepoTracker) Complete(ctx context.Context, id string, stats models.RunStats) error {
	return t.repo.Complete(ctx, t.pool, id, stats)
}
