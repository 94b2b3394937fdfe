package preflight

import (
	"context"

	"instatory/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Uploads directory", cfg.Paths.UploadsDir),
		CheckDirectoryAccess("Inventory directory", cfg.Paths.InventoryDir),
		CheckDatabase(cfg),
		CheckDiskSpace(cfg.Paths.DataDir),
	}
	results = append(results, CheckVision(ctx, cfg))
	return results
}
