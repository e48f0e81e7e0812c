package assets

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is how long the watcher waits after the last file event before reloading.
const DefaultDebounce = 100 * time.Millisecond

// manifestWatcherImpl is the implementation of the ManifestWatcher interface.
type manifestWatcherImpl struct {
	path     string
	onChange func(*Manifest)
	debounce time.Duration
	logger   zerolog.Logger
	watcher  *fsnotify.Watcher
}

// ManifestWatcher reloads a manifest whenever its file changes on disk.
//
// The manifest's directory is watched rather than the file itself, so editors that save by
// writing a temporary file and renaming it over the original are still observed. Bursts of
// events are coalesced by the debounce interval. A manifest that fails to load or validate
// is logged and ignored; onChange only ever receives valid manifests.
type ManifestWatcher interface {
	// Run processes file events until ctx is cancelled or the watcher is closed.
	//
	// Parameters:
	//   - ctx: stops the loop when done
	//
	// Returns:
	//   - error: nil on cancellation or close, or the watcher's error
	Run(ctx context.Context) error

	// Close stops watching and releases the underlying OS watch.
	//
	// Returns:
	//   - error: an error if the OS watch could not be released
	Close() error
}

var _ ManifestWatcher = &manifestWatcherImpl{}

// ManifestWatcherOption configures a ManifestWatcher.
type ManifestWatcherOption func(*manifestWatcherImpl)

// WithDebounce sets the quiet period before a reload. Non-positive values reload on every event.
//
// Parameters:
//   - d: the debounce interval
//
// Returns:
//   - ManifestWatcherOption: a function that applies the debounce
func WithDebounce(d time.Duration) ManifestWatcherOption {
	return func(w *manifestWatcherImpl) {
		w.debounce = d
	}
}

// WithWatchLogger sets the logger for reload and error messages.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - ManifestWatcherOption: a function that applies the logger
func WithWatchLogger(logger zerolog.Logger) ManifestWatcherOption {
	return func(w *manifestWatcherImpl) {
		w.logger = logger
	}
}

// NewManifestWatcher starts watching the directory containing path.
//
// Parameters:
//   - path: the manifest file
//   - onChange: called with each successfully reloaded manifest, from the Run goroutine
//   - options: functional options
//
// Returns:
//   - ManifestWatcher: the watcher, ready for Run
//   - error: an error if the OS watch could not be created
func NewManifestWatcher(path string, onChange func(*Manifest), options ...ManifestWatcherOption) (ManifestWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	w := &manifestWatcherImpl{
		path:     abs,
		onChange: onChange,
		debounce: DefaultDebounce,
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		opt(w)
	}

	w.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.watcher.Add(filepath.Dir(abs)); err != nil {
		w.watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return w, nil
}

func (w *manifestWatcherImpl) Run(ctx context.Context) error {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if w.debounce <= 0 {
				w.reload()
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("manifest watcher error")
		}
	}
}

func (w *manifestWatcherImpl) Close() error {
	return w.watcher.Close()
}

// relevant reports whether event touched the manifest with an operation that may change its content.
func (w *manifestWatcherImpl) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *manifestWatcherImpl) reload() {
	m, err := LoadManifest(w.path)
	if err != nil {
		w.logger.Warn().Err(err).Str("path", w.path).Msg("manifest reload skipped")
		return
	}
	w.logger.Info().Str("path", w.path).Int("points", len(m.Points)).Msg("manifest reloaded")
	if w.onChange != nil {
		w.onChange(m)
	}
}
