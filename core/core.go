// Package core has core logic for importing, syncing and analyzing donor data.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adminizer/giving/core/algo"
	"github.com/adminizer/giving/core/ingest"
	"github.com/adminizer/giving/internal/contract"
	"github.com/adminizer/giving/internal/docsource"
	"github.com/adminizer/giving/internal/iocache"
	"github.com/adminizer/giving/internal/outwriter"
	"github.com/adminizer/giving/schema"
)

// StdinPath is the import path that reads from standard input.
const StdinPath = "-"

// OptionsFromConfig maps the validated config onto analytics options.
func OptionsFromConfig(cfg *contract.Config) algo.Options {
	opts := algo.DefaultOptions()
	if len(cfg.TierBreakpoints) > 0 {
		opts.TierBreakpoints = cfg.TierBreakpoints
	}
	if cfg.ResultLimit > 0 {
		opts.TopLimit = cfg.ResultLimit
	}
	return opts
}

// newImporter binds an importer to the active store of mgr.
func newImporter(cfg *contract.Config, mgr contract.StoreManager) (*Importer, error) {
	if mgr == nil {
		return nil, ErrNoStore
	}
	store := mgr.GetDonorStore()
	if store == nil {
		return nil, ErrNoStore
	}
	return NewImporter(store, OptionsFromConfig(cfg)), nil
}

// openInput opens a local file, or standard input for "-".
func openInput(path string) (ingest.File, func(), error) {
	if path == StdinPath {
		return ingest.File{Name: "stdin", Body: os.Stdin}, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return ingest.File{}, nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	return ingest.File{Name: filepath.Base(path), Body: f}, func() { _ = f.Close() }, nil
}

// ExecuteImport imports every path in order and prints the report of the
// final collection. A failed file does not stop the files after it.
func ExecuteImport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, paths []string) error {
	start := time.Now()
	if len(paths) == 0 {
		return errors.New("at least one file path is required")
	}
	im, err := newImporter(cfg, mgr)
	if err != nil {
		return err
	}
	ow := outwriter.NewOutWriter()

	var errs []error
	var last *ImportOutcome
	for _, path := range paths {
		file, closeFn, err := openInput(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		outcome, err := im.ImportFile(ctx, file)
		closeFn()
		if outcome.Parse.Success || outcome.Parse.Error != "" {
			if werr := ow.WriteImport(file.Name, outcome.Parse, cfg); werr != nil {
				contract.LogWarn("Failed to print import summary", werr)
			}
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", file.Name, err))
			continue
		}
		contract.LogInfo("📥 %d donors in file, %d donors in store", outcome.BatchDonors, outcome.TotalDonors)
		last = &outcome
	}

	if last != nil {
		if err := ow.WriteReport(last.Analysis, cfg, time.Since(start)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ExecuteReport analyzes the stored donors and prints the report.
func ExecuteReport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	im, err := newImporter(cfg, mgr)
	if err != nil {
		return err
	}
	result, err := im.Report(ctx)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteReport(result, cfg, time.Since(start))
}

// ExecuteDonors prints the donor directory ranked by lifetime amount.
func ExecuteDonors(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	im, err := newImporter(cfg, mgr)
	if err != nil {
		return err
	}
	donors, err := im.Donors(ctx)
	if err != nil {
		return err
	}
	ranked := algo.RankDonors(donors, cfg.ResultLimit)
	return outwriter.NewOutWriter().WriteDonors(ranked, cfg, time.Since(start))
}

// ExecuteExport writes the stored donors as CSV, JSON or Parquet.
func ExecuteExport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	im, err := newImporter(cfg, mgr)
	if err != nil {
		return err
	}
	if cfg.Output == schema.ParquetOut {
		return iocache.ExecuteDonorExport(ctx, im.store, cfg.OutputFile)
	}
	donors, err := im.Donors(ctx)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteExport(donors, cfg)
}

// ExecuteHistory prints the upload history.
func ExecuteHistory(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	im, err := newImporter(cfg, mgr)
	if err != nil {
		return err
	}
	history, err := im.History(ctx)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteHistory(history, cfg)
}

// ExecuteClear removes all donor data, history and processed-document marks.
func ExecuteClear(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	im, err := newImporter(cfg, mgr)
	if err != nil {
		return err
	}
	return im.Clear(ctx)
}

// newSyncer binds a syncer to the configured document source.
func newSyncer(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, source contract.DocumentSource) (*Syncer, error) {
	im, err := newImporter(cfg, mgr)
	if err != nil {
		return nil, err
	}
	if source == nil {
		source, err = docsource.FromConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}
	return NewSyncer(source, im), nil
}

// ExecuteSync imports every unprocessed document from the configured source.
func ExecuteSync(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	syncer, err := newSyncer(ctx, cfg, mgr, nil)
	if err != nil {
		return err
	}
	result := syncer.Sync(ctx)
	if err := outwriter.NewOutWriter().WriteSync(result, cfg); err != nil {
		return err
	}
	if !result.Success {
		return errors.New(result.Error)
	}
	return nil
}

// ExecuteSyncStatus prints how many documents are waiting to be synced.
func ExecuteSyncStatus(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	syncer, err := newSyncer(ctx, cfg, mgr, nil)
	if err != nil {
		return err
	}
	n, err := syncer.UnprocessedCount(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(os.Stdout, "%d documents waiting to be synced from %s\n", n, syncer.source.Name())
	return err
}

// ExecuteWatch syncs the source folder once, then again after every settled
// change, until ctx is cancelled. Only the dir source can be watched.
func ExecuteWatch(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	if cfg.Source != schema.DirSource {
		return fmt.Errorf("watch requires the %s source (configured: %s)", schema.DirSource, cfg.Source)
	}
	dir := docsource.NewDirSource(cfg.SourceDir)
	syncer, err := newSyncer(ctx, cfg, mgr, dir)
	if err != nil {
		return err
	}
	ow := outwriter.NewOutWriter()

	runSync := func(ctx context.Context) {
		if err := ow.WriteSync(syncer.Sync(ctx), cfg); err != nil {
			contract.LogWarn("Failed to print sync summary", err)
		}
	}
	runSync(ctx)

	watcher, err := docsource.NewWatcher(dir.Root(), cfg.Debounce)
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	contract.LogInfo("👀 Watching %s for donor data (Ctrl+C to stop)", dir.Root())
	return watcher.Run(ctx, func(ctx context.Context, paths []string) {
		contract.LogInfo("📂 %d changed files detected", len(paths))
		runSync(ctx)
	})
}
