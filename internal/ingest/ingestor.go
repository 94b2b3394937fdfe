// Package ingest walks the uploads tree, runs each image through the vision
// extractor, archives the file into a per-run batch directory, and records
// the result in the catalog.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"instatory/internal/catalog"
	"instatory/internal/config"
	"instatory/internal/imaging"
	"instatory/internal/logging"
	"instatory/internal/services"
)

const (
	lockFileName = "instatory.lock"
	batchFormat  = "20060102-150405"
)

// Analyzer extracts a structured product draft from an encoded image.
type Analyzer interface {
	AnalyzeProduct(ctx context.Context, img imaging.EncodedImage) (*catalog.Draft, error)
}

// Summary reports the outcome of a single ingestion run.
type Summary struct {
	RunID      string
	BatchDir   string
	Scanned    int
	Cataloged  int
	Duplicates int
	Failed     int
	Orphaned   int
}

// Ingestor drives the image-to-catalog pipeline for one uploads tree.
type Ingestor struct {
	cfg      *config.Config
	store    *catalog.Store
	analyzer Analyzer
	logger   *slog.Logger

	now func() time.Time
}

// Option customizes an Ingestor.
type Option func(*Ingestor)

// WithClock overrides the batch timestamp source.
func WithClock(now func() time.Time) Option {
	return func(i *Ingestor) {
		if now != nil {
			i.now = now
		}
	}
}

// New builds an Ingestor over the given store and analyzer.
func New(cfg *config.Config, store *catalog.Store, analyzer Analyzer, logger *slog.Logger, opts ...Option) *Ingestor {
	if logger == nil {
		logger = logging.NewNop()
	}
	ingestor := &Ingestor{
		cfg:      cfg,
		store:    store,
		analyzer: analyzer,
		logger:   logging.NewComponentLogger(logger, "ingest"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(ingestor)
	}
	return ingestor
}

// Run processes every eligible image under the uploads root. Individual file
// failures are logged and skipped; only lock contention, a storage failure
// while loading the dedup snapshot, or a fatal analyzer error abort the run.
func (i *Ingestor) Run(ctx context.Context) (*Summary, error) {
	runLock := flock.New(filepath.Join(i.cfg.Paths.DataDir, lockFileName))
	locked, err := runLock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, errors.New("another ingestion run is already in progress")
	}
	defer func() {
		if err := runLock.Unlock(); err != nil {
			i.logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	summary := &Summary{RunID: uuid.NewString()}
	logger := i.logger.With(logging.String(logging.FieldRunID, summary.RunID))

	references, err := i.store.ExistingReferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("load existing references: %w", err)
	}

	summary.BatchDir = filepath.Join(i.cfg.Paths.InventoryDir, i.now().Format(batchFormat))
	if err := os.MkdirAll(summary.BatchDir, 0o755); err != nil {
		return nil, fmt.Errorf("create batch directory: %w", err)
	}
	logger.Info("starting ingestion run",
		logging.String("uploads_dir", i.cfg.Paths.UploadsDir),
		logging.String("batch_dir", summary.BatchDir))

	walkErr := filepath.WalkDir(i.cfg.Paths.UploadsDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("skipping unreadable path", logging.String("path", path), logging.Error(err))
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() || !imaging.Eligible(entry.Name()) {
			return nil
		}
		summary.Scanned++
		return i.processFile(ctx, logger, summary, references, path)
	})
	if walkErr != nil {
		return summary, fmt.Errorf("walk uploads: %w", walkErr)
	}

	logger.Info("ingestion run complete",
		logging.Int("scanned", summary.Scanned),
		logging.Int("cataloged", summary.Cataloged),
		logging.Int("duplicates", summary.Duplicates),
		logging.Int("failed", summary.Failed),
		logging.Int("orphaned", summary.Orphaned))
	return summary, nil
}

// processFile handles one upload. The destination reference mirrors the
// file's position under the uploads root so identical filenames in different
// subdirectories never collide.
func (i *Ingestor) processFile(ctx context.Context, logger *slog.Logger, summary *Summary, references map[string]struct{}, path string) error {
	rel, err := filepath.Rel(i.cfg.Paths.UploadsDir, path)
	if err != nil {
		summary.Failed++
		logger.Error("cannot resolve relative path", logging.String("path", path), logging.Error(err))
		return nil
	}
	destination := filepath.Join(summary.BatchDir, rel)

	if _, seen := references[destination]; seen {
		summary.Duplicates++
		logger.Info("image already cataloged", logging.String("reference", destination))
		return nil
	}

	encoded, err := imaging.EncodeFile(path)
	if err != nil {
		summary.Failed++
		logger.Warn("could not encode image", logging.String("path", path), logging.Error(err))
		return nil
	}

	draft, err := i.analyzer.AnalyzeProduct(ctx, encoded)
	if err != nil {
		if services.IsFatal(err) || ctx.Err() != nil {
			return err
		}
		summary.Failed++
		logger.Error("feature extraction failed", logging.String("path", path), logging.Error(err))
		return nil
	}
	if canonical, ok := catalog.CanonicalCategory(draft.Category); ok {
		draft.Category = canonical
	}

	if err := moveFile(path, destination); err != nil {
		summary.Failed++
		logger.Error("could not archive image", logging.String("path", path), logging.Error(err))
		return nil
	}

	id, err := i.store.Insert(ctx, draft, destination)
	if err != nil {
		// The file is already archived at this point. A rejected insert
		// leaves it in the batch directory for manual reconciliation.
		summary.Orphaned++
		var missing *catalog.MissingFieldError
		if errors.As(err, &missing) {
			logger.Error("image archived but record incomplete",
				logging.String("reference", destination),
				logging.String("missing_field", missing.Field))
		} else {
			logger.Error("image archived but insert failed",
				logging.String("reference", destination),
				logging.Error(err))
		}
		return nil
	}

	references[destination] = struct{}{}
	summary.Cataloged++
	logger.Info("cataloged product image",
		logging.Int64("product_id", id),
		logging.String("reference", destination),
		logging.String("category", draft.Category))
	return nil
}
