package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"voltgrid/internal/config"
	"voltgrid/internal/db"
	"voltgrid/internal/geocode"
	"voltgrid/internal/loader"
	"voltgrid/internal/logging"
	"voltgrid/internal/pipeline"
	"voltgrid/internal/repository"
)

var cli struct {
	Ingest  ingestCmd  `cmd:"" help:"Ingest regulator spreadsheet exports into the store."`
	Geocode geocodeCmd `cmd:"" help:"Backfill station coordinates."`
	Migrate migrateCmd `cmd:"" help:"Apply pending database migrations."`
	Batches batchesCmd `cmd:"" help:"List recent ingestion batches."`
}

type geocodeCmd struct {
	City    geocodeCityCmd    `cmd:"" help:"Approximate coordinates from the city centroid table."`
	Address geocodeAddressCmd `cmd:"" help:"Resolve exact coordinates through the external lookup service."`
}

// runContext carries the shared dependencies into subcommand Run methods.
type runContext struct {
	ctx    context.Context
	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("voltgrid"),
		kong.Description("Charging-station registry ingestion and enrichment pipeline."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync() // best-effort flush

	if err := kctx.Run(&runContext{ctx: ctx, cfg: cfg, logger: logger}); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

func openPool(rc *runContext) (*sql.DB, error) {
	pool, err := db.NewPostgres(rc.cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect to store: %w", err)
	}
	return pool, nil
}

type ingestCmd struct {
	InputDir string `required:"" name:"input-dir" help:"Directory containing .xls/.xlsx exports." type:"existingdir"`
}

func (c *ingestCmd) Run(rc *runContext) error {
	pool, err := openPool(rc)
	if err != nil {
		return err
	}
	defer pool.Close()

	batchID := uuid.NewString()
	rc.logger.Info("starting ingestion",
		zap.String("batch_id", batchID),
		zap.String("input_dir", c.InputDir))

	ldr := loader.New(pool, batchID, rc.logger)
	pl := pipeline.New(pipeline.Extract, ldr, pipeline.NewBatchRepoTracker(pool), batchID, rc.logger)

	totals, err := pl.Run(rc.ctx, c.InputDir)
	if err != nil {
		return err
	}

	line := strings.Repeat("=", 72)
	fmt.Println(line)
	fmt.Printf("COMPLETED - Batch ID: %s\n", batchID)
	fmt.Printf("Files: %d\n", totals.FilesProcessed)
	fmt.Printf("Stations: %d inserted, %d updated\n", totals.StationsInserted, totals.StationsUpdated)
	fmt.Printf("Connectors: %d\n", totals.ConnectorsInserted)
	fmt.Println(line)
	return nil
}

type geocodeCityCmd struct{}

func (c *geocodeCityCmd) Run(rc *runContext) error {
	pool, err := openPool(rc)
	if err != nil {
		return err
	}
	defer pool.Close()

	pass := geocode.NewCityPass(pool, rc.cfg.Geocode.CityBatchSize, rc.cfg.Geocode.JitterDegrees, rc.logger)
	summary, err := pass.Run(rc.ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Coarse geocoding done: %d matched, %d failed\n", summary.Matched, summary.Failed)
	return nil
}

type geocodeAddressCmd struct{}

func (c *geocodeAddressCmd) Run(rc *runContext) error {
	pool, err := openPool(rc)
	if err != nil {
		return err
	}
	defer pool.Close()

	client := geocode.NewNominatimClient(
		rc.cfg.Geocode.Endpoint,
		rc.cfg.Geocode.UserAgent,
		rc.cfg.Geocode.Country,
		rc.cfg.Geocode.CountryCode,
		rc.cfg.HTTPTimeout(),
		rc.logger,
	)
	pass := geocode.NewAddressPass(pool, client, rc.cfg.Geocode.AddressLimit, rc.cfg.RequestDelay(), rc.logger)
	summary, err := pass.Run(rc.ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Precise geocoding done: %d matched, %d failed\n", summary.Matched, summary.Failed)
	return nil
}

type migrateCmd struct{}

func (c *migrateCmd) Run(rc *runContext) error {
	pool, err := openPool(rc)
	if err != nil {
		return err
	}
	defer pool.Close()

	return db.RunMigrations(pool, rc.cfg.Migrations.Path, rc.logger)
}

type batchesCmd struct {
	Limit int `default:"20" help:"How many batches to list."`
}

func (c *batchesCmd) Run(rc *runContext) error {
	pool, err := openPool(rc)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := repository.NewBatchRepository()
	batches, err := repo.ListRecent(rc.ctx, pool, c.Limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BATCH ID\tSTATUS\tSTARTED\tCOMPLETED\tFILES\tINS\tUPD\tCONN")
	for _, b := range batches {
		completed := "-"
		if b.CompletedAt != nil {
			completed = b.CompletedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			b.ID, b.Status, b.StartedAt.Format("2006-01-02 15:04:05"), completed,
			b.FilesProcessed, b.StationsInserted, b.StationsUpdated, b.ConnectorsInserted)
	}
	return w.Flush()
}
