package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"instatory/internal/catalog"
	"instatory/internal/ingest"
	"instatory/internal/logging"
	"instatory/internal/services/vision"
)

// runPipeline backs the bare `instatory` invocation. The catalog schema is
// always initialized; the ingestion run itself only happens when
// --process-images is set.
func runPipeline(cmd *cobra.Command, cctx *commandContext, processImages bool) error {
	cfg, err := cctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	store, err := catalog.Open(cfg)
	if err != nil {
		if !processImages {
			logger.Error("catalog initialization failed", logging.Error(err))
			return nil
		}
		return fmt.Errorf("open catalog: %w", err)
	}
	defer store.Close()

	if !processImages {
		logger.Warn("no action requested; use --process-images to process uploaded images")
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := vision.NewClient(vision.FromConfig(cfg))
	summary, err := ingest.New(cfg, store, client, logger).Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Processed %d image(s): %d cataloged, %d duplicate(s), %d failed, %d orphaned\n",
		summary.Scanned, summary.Cataloged, summary.Duplicates, summary.Failed, summary.Orphaned)
	if summary.Cataloged > 0 {
		fmt.Fprintf(out, "Archived batch: %s\n", summary.BatchDir)
	}
	return nil
}
