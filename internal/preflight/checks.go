package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"instatory/internal/catalog"
	"instatory/internal/config"
	"instatory/internal/services/vision"
)

// lowDiskBytes is the free-space floor below which the disk check fails.
// Archived image batches accumulate, so a nearly full volume is a real
// operational problem rather than a curiosity.
const lowDiskBytes = 256 << 20

// CheckVision verifies that the inference API is reachable and the key is
// valid. Single attempt, no retries; a slow or flapping backend should show
// up here as a failure.
func CheckVision(ctx context.Context, cfg *config.Config) Result {
	const name = "Vision API"

	if cfg.Vision.APIKey == "" {
		return Result{Name: name, Detail: "API key missing (set OPENAI_API_KEY or vision.api_key)"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client := vision.NewClient(vision.FromConfig(cfg), vision.WithMaxAttempts(1))
	if err := client.HealthCheck(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeVisionError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "API reachable"}
}

// CheckDatabase verifies the catalog store opens and its schema initializes.
func CheckDatabase(cfg *config.Config) Result {
	const name = "Catalog database"

	store, err := catalog.Open(cfg)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	defer store.Close()
	count, err := store.Count(context.Background())
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", store.Path(), err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d products)", store.Path(), count)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDiskSpace verifies the data volume has room for another image batch.
func CheckDiskSpace(path string) Result {
	const name = "Disk space"

	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	detail := fmt.Sprintf("%s (%.1f GiB free)", path, float64(free)/(1<<30))
	if free < lowDiskBytes {
		return Result{Name: name, Detail: detail + " below minimum"}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// summarizeVisionError produces a human-readable summary for health check failures.
func summarizeVisionError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "health check timed out (API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (API unreachable)"
	}
	return err.Error()
}
