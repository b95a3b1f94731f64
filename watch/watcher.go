package watch

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/rnakao/marktree/scan"
)

// DefaultDebounce is the delay between the last file change and the
// refresh it triggers.
const DefaultDebounce = 300 * time.Millisecond

// Watcher monitors a vault directory for document changes and emits a
// debounced refresh signal. Create, write, remove and rename all
// trigger the same refresh; the scan rebuilds everything anyway, so the
// event kind does not matter.
type Watcher struct {
	fsw       *fsnotify.Watcher
	root      string
	include   []string
	debouncer *Debouncer
	refresh   chan struct{}
	wg        sync.WaitGroup
	done      chan struct{}
	stopOnce  sync.Once

	mu   sync.Mutex
	dirs map[string]struct{} // directories under watch, by absolute path
}

// New creates a Watcher for the vault rooted at root. Only files whose
// vault-relative path matches one of the include patterns trigger a
// refresh.
func New(root string, include []string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		root:    root,
		include: include,
		refresh: make(chan struct{}, 1),
		done:    make(chan struct{}),
		dirs:    make(map[string]struct{}),
	}
	w.debouncer = NewDebouncer(debounce, w.notify)
	return w, nil
}

// Start adds watches for the vault's directory hierarchy and begins
// processing events.
func (w *Watcher) Start() error {
	if err := w.addWatches(w.root); err != nil {
		w.fsw.Close()
		return err
	}

	w.wg.Add(1)
	go w.processEvents()
	return nil
}

// Refresh returns the channel a refresh signal is delivered on. The
// channel is buffered; a signal arriving while one is already pending
// is dropped, which is fine since each refresh rescans everything.
func (w *Watcher) Refresh() <-chan struct{} {
	return w.refresh
}

// Stop cancels any pending refresh and shuts the watcher down.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.debouncer.Stop()
		w.fsw.Close()
		w.wg.Wait()
	})
}

func (w *Watcher) notify() {
	select {
	case w.refresh <- struct{}{}:
	default:
	}
}

// addWatches recursively watches root and every non-ignored directory
// below it. fsnotify watches are not recursive on their own.
func (w *Watcher) addWatches(root string) error {
	return filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries, keep walking
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && scan.IgnoredDir(entry.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			slog.Warn("failed to watch directory", "path", path, "error", err)
		}
		w.rememberDir(path)
		return nil
	})
}

func (w *Watcher) rememberDir(path string) {
	w.mu.Lock()
	w.dirs[path] = struct{}{}
	w.mu.Unlock()
}

// forgetDir reports whether path was a watched directory and drops it.
func (w *Watcher) forgetDir(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.dirs[path]; !ok {
		return false
	}
	delete(w.dirs, path)
	return true
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// A newly created directory needs its own watch before we can see
	// events inside it.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !scan.IgnoredDir(filepath.Base(event.Name)) {
				if err := w.fsw.Add(event.Name); err != nil {
					slog.Warn("failed to watch new directory", "path", event.Name, "error", err)
				}
				w.rememberDir(event.Name)
				w.debouncer.Trigger()
			}
			return
		}
	}

	// A removed or renamed directory takes all its documents with it in
	// one event, and its path never matches the include patterns. Watched
	// directories are tracked by path so the refresh still fires.
	if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 && w.forgetDir(event.Name) {
		w.debouncer.Trigger()
		return
	}

	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	if !w.relevant(event.Name) {
		return
	}
	w.debouncer.Trigger()
}

// relevant reports whether a changed path matches the include patterns.
// Removed and renamed files cannot be stat'ed, so the decision is made
// on the path alone.
func (w *Watcher) relevant(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if len(w.include) == 0 {
		return true
	}
	for _, pattern := range w.include {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
	}
	return false
}
