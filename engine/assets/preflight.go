package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/rs/zerolog"
)

// AssetKind identifies what an asset file is used for.
type AssetKind int

const (
	// KindModel is the glTF scene.
	KindModel AssetKind = iota

	// KindEnvironment is the HDR environment map.
	KindEnvironment
)

// String returns a human readable name for the kind.
func (k AssetKind) String() string {
	switch k {
	case KindModel:
		return "model"
	case KindEnvironment:
		return "environment"
	default:
		return "unknown"
	}
}

// Asset is a file referenced by a manifest.
type Asset struct {
	Kind AssetKind
	Path string
}

// Result is the outcome of checking one asset.
type Result struct {
	Asset
	// Available is true when the file exists, is a regular non-empty file and its
	// header matches the expected format.
	Available bool
	// Size is the file size in bytes.
	Size int64
	// Err explains why the asset is unavailable.
	Err error
}

// Report collects preflight results in the order the assets were given.
type Report struct {
	Results []Result
}

// Available reports whether every asset of kind passed preflight. It is false when
// the report holds no asset of that kind.
//
// Parameters:
//   - kind: the asset kind to check
//
// Returns:
//   - bool: true if at least one asset of kind exists and all of them are available
func (r Report) Available(kind AssetKind) bool {
	found := false
	for _, res := range r.Results {
		if res.Kind != kind {
			continue
		}
		if !res.Available {
			return false
		}
		found = true
	}
	return found
}

// Missing returns the results that failed preflight.
//
// Returns:
//   - []Result: the unavailable assets
func (r Report) Missing() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Available {
			out = append(out, res)
		}
	}
	return out
}

// ProgressFunc is called once per finished asset with the number finished so far.
type ProgressFunc func(loaded, total int, path string)

type preflightConfig struct {
	workers  int
	progress ProgressFunc
	logger   zerolog.Logger
}

// PreflightOption configures Preflight.
type PreflightOption func(*preflightConfig)

// WithWorkers sets the worker pool size. Values <= 0 use GOMAXPROCS.
//
// Parameters:
//   - n: the number of workers
//
// Returns:
//   - PreflightOption: a function that applies the worker count
func WithWorkers(n int) PreflightOption {
	return func(c *preflightConfig) {
		c.workers = n
	}
}

// WithProgress sets the progress callback. It is invoked from worker goroutines, serialized.
//
// Parameters:
//   - fn: the progress callback
//
// Returns:
//   - PreflightOption: a function that applies the progress callback
func WithProgress(fn ProgressFunc) PreflightOption {
	return func(c *preflightConfig) {
		c.progress = fn
	}
}

// WithLogger sets the logger that receives per-file progress lines.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - PreflightOption: a function that applies the logger
func WithLogger(logger zerolog.Logger) PreflightOption {
	return func(c *preflightConfig) {
		c.logger = logger
	}
}

// Preflight checks every asset concurrently on a worker pool. Files are not parsed; each is
// stat'd and its leading bytes compared with the signature its extension implies.
// A missing or malformed asset is reported in the Report, not as an error.
//
// Parameters:
//   - ctx: cancels outstanding checks
//   - assets: the files to check
//   - options: functional options
//
// Returns:
//   - Report: one Result per asset, in input order
//   - error: ctx.Err() if the context was cancelled before all checks finished
func Preflight(ctx context.Context, assets []Asset, options ...PreflightOption) (Report, error) {
	cfg := &preflightConfig{
		workers: runtime.GOMAXPROCS(0),
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		opt(cfg)
	}
	if cfg.workers <= 0 {
		cfg.workers = runtime.GOMAXPROCS(0)
	}

	report := Report{Results: make([]Result, len(assets))}
	if len(assets) == 0 {
		return report, ctx.Err()
	}

	pool := worker.NewDynamicWorkerPool(min(cfg.workers, len(assets)), len(assets), time.Second)
	defer pool.Stop()

	total := len(assets)
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		loaded int
	)
	for i, a := range assets {
		wg.Add(1)
		idx, asset := i, a
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()

				res := Result{Asset: asset}
				if err := ctx.Err(); err != nil {
					res.Err = err
				} else {
					res.Size, res.Err = checkAsset(asset)
					res.Available = res.Err == nil
				}
				report.Results[idx] = res

				mu.Lock()
				loaded++
				n := loaded
				cfg.logger.Info().
					Str("kind", asset.Kind.String()).
					Str("path", asset.Path).
					Bool("available", res.Available).
					Msgf("loading file %d of %d", n, total)
				if cfg.progress != nil {
					cfg.progress(n, total, asset.Path)
				}
				mu.Unlock()
				return res, res.Err
			},
		})
	}
	wg.Wait()

	for _, res := range report.Results {
		if !res.Available {
			cfg.logger.Warn().Err(res.Err).Str("path", res.Path).Msg("asset unavailable")
		}
	}
	return report, ctx.Err()
}

// signatures maps lower-case file extensions to the magic bytes their files start with.
// Extensions not listed are only checked for existence.
var signatures = map[string][][]byte{
	".hdr":  {[]byte("#?RADIANCE"), []byte("#?RGBE")},
	".glb":  {[]byte("glTF")},
	".gltf": {[]byte("{")},
}

func checkAsset(a Asset) (int64, error) {
	info, err := os.Stat(a.Path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", a.Path, err)
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%s is not a regular file", a.Path)
	}
	if info.Size() == 0 {
		return 0, fmt.Errorf("%s is empty", a.Path)
	}

	magic, ok := signatures[strings.ToLower(filepath.Ext(a.Path))]
	if !ok {
		return info.Size(), nil
	}

	f, err := os.Open(a.Path)
	if err != nil {
		return info.Size(), fmt.Errorf("open %s: %w", a.Path, err)
	}
	defer f.Close()

	head := make([]byte, 16)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return info.Size(), fmt.Errorf("read %s: %w", a.Path, err)
	}
	head = bytes.TrimLeft(head[:n], " \t\r\n")
	for _, m := range magic {
		if bytes.HasPrefix(head, m) {
			return info.Size(), nil
		}
	}
	return info.Size(), fmt.Errorf("%s: unrecognized %s header", a.Path, a.Kind)
}
