package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"voltgrid/internal/models"
	"voltgrid/internal/parser"
)

type fakeLoader struct {
	stats   map[string]models.FileStats
	failOn  map[string]bool
	calls   []string
	lastErr error
}

func (f *fakeLoader) LoadFile(_ context.Context, stations []models.Station, _ []models.Connector) (models.FileStats, error) {
	key := ""
	if len(stations) > 0 {
		key = stations[0].SourceFile
	}
	f.calls = append(f.calls, key)
	if f.failOn[key] {
		f.lastErr = errors.New("commit failed")
		return models.FileStats{}, f.lastErr
	}
	return f.stats[key], nil
}

type fakeTracker struct {
	started   []string
	completed []string
	finalized models.RunStats
}

func (f *fakeTracker) Start(_ context.Context, id string) error {
	f.started = append(f.started, id)
	return nil
}

func (f *fakeTracker) Complete(_ context.Context, id string, stats models.RunStats) error {
	f.completed = append(f.completed, id)
	f.finalized = stats
	return nil
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func rawFor(file string, stations int) parser.Result {
	var res parser.Result
	for i := 0; i < stations; i++ {
		res.Stations = append(res.Stations, parser.RawStation{
			StationNo:  file + "-" + string(rune('A'+i)),
			SourceFile: file,
		})
	}
	return res
}

func TestDiscoverFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.xlsx")
	touch(t, dir, "a.xls")
	touch(t, dir, "C.XLS")
	touch(t, dir, "notes.txt")
	touch(t, dir, "report.csv")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.xls"), 0o755))

	files, err := DiscoverFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, filepath.Join(dir, "C.XLS"), files[0])
	assert.Equal(t, filepath.Join(dir, "a.xls"), files[1])
	assert.Equal(t, filepath.Join(dir, "b.xlsx"), files[2])
}

func TestDiscoverFilesMissingDir(t *testing.T) {
	_, err := DiscoverFiles(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestPipelineRun(t *testing.T) {
	newExtract := func(results map[string]parser.Result, failOn map[string]error) ExtractFunc {
		return func(path string) (parser.Result, error) {
			name := filepath.Base(path)
			if err := failOn[name]; err != nil {
				return parser.Result{}, err
			}
			return results[name], nil
		}
	}

	t.Run("aggregates totals across files", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "a.xlsx")
		touch(t, dir, "b.xlsx")

		ldr := &fakeLoader{stats: map[string]models.FileStats{
			"a.xlsx": {StationsInserted: 5, StationsUpdated: 1, ConnectorsInserted: 9},
			"b.xlsx": {StationsInserted: 2, StationsUpdated: 3, ConnectorsInserted: 4},
		}}
		tracker := &fakeTracker{}
		extract := newExtract(map[string]parser.Result{
			"a.xlsx": rawFor("a.xlsx", 2),
			"b.xlsx": rawFor("b.xlsx", 2),
		}, nil)

		p := New(extract, ldr, tracker, "batch-1", zap.NewNop())
		totals, err := p.Run(context.Background(), dir)
		require.NoError(t, err)

		assert.Equal(t, 2, totals.FilesProcessed)
		assert.Equal(t, 7, totals.StationsInserted)
		assert.Equal(t, 4, totals.StationsUpdated)
		assert.Equal(t, 13, totals.ConnectorsInserted)
		assert.Equal(t, []string{"batch-1"}, tracker.started)
		assert.Equal(t, []string{"batch-1"}, tracker.completed)
		assert.Equal(t, totals, tracker.finalized)
	})

	t.Run("extract failure skips the file only", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "bad.xlsx")
		touch(t, dir, "good.xlsx")

		ldr := &fakeLoader{stats: map[string]models.FileStats{
			"good.xlsx": {StationsInserted: 3},
		}}
		tracker := &fakeTracker{}
		extract := newExtract(
			map[string]parser.Result{"good.xlsx": rawFor("good.xlsx", 1)},
			map[string]error{"bad.xlsx": parser.ErrNoHeader},
		)

		p := New(extract, ldr, tracker, "batch-2", zap.NewNop())
		totals, err := p.Run(context.Background(), dir)
		require.NoError(t, err)

		assert.Equal(t, 1, totals.FilesProcessed)
		assert.Equal(t, 3, totals.StationsInserted)
		require.Len(t, tracker.completed, 1)
	})

	t.Run("load failure skips the file only", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "a.xlsx")
		touch(t, dir, "b.xlsx")

		ldr := &fakeLoader{
			stats:  map[string]models.FileStats{"b.xlsx": {StationsInserted: 4}},
			failOn: map[string]bool{"a.xlsx": true},
		}
		tracker := &fakeTracker{}
		extract := newExtract(map[string]parser.Result{
			"a.xlsx": rawFor("a.xlsx", 1),
			"b.xlsx": rawFor("b.xlsx", 1),
		}, nil)

		p := New(extract, ldr, tracker, "batch-3", zap.NewNop())
		totals, err := p.Run(context.Background(), dir)
		require.NoError(t, err)

		assert.Equal(t, 1, totals.FilesProcessed)
		assert.Equal(t, 4, totals.StationsInserted)
		assert.Equal(t, totals, tracker.finalized)
	})

	t.Run("file with zero valid stations is not an error", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "empty.xlsx")

		ldr := &fakeLoader{stats: map[string]models.FileStats{}}
		tracker := &fakeTracker{}
		// All raw stations lack a business key; transform drops them.
		extract := newExtract(map[string]parser.Result{
			"empty.xlsx": {Stations: []parser.RawStation{{SourceFile: "empty.xlsx"}}},
		}, nil)

		p := New(extract, ldr, tracker, "batch-4", zap.NewNop())
		totals, err := p.Run(context.Background(), dir)
		require.NoError(t, err)

		assert.Equal(t, 1, totals.FilesProcessed)
		assert.Zero(t, totals.StationsInserted)
		assert.Zero(t, totals.ConnectorsInserted)
	})

	t.Run("missing input dir is fatal", func(t *testing.T) {
		tracker := &fakeTracker{}
		p := New(newExtract(nil, nil), &fakeLoader{}, tracker, "batch-5", zap.NewNop())
		_, err := p.Run(context.Background(), filepath.Join(t.TempDir(), "absent"))
		require.Error(t, err)
		assert.Empty(t, tracker.started)
	})
}
