package watcher

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/harrison/ordertouch/internal/filelock"
	"github.com/harrison/ordertouch/internal/ignore"
	"github.com/harrison/ordertouch/internal/models"
	"github.com/harrison/ordertouch/internal/orderspec"
)

// Reason describes why a pass was requested
type Reason int

const (
	// OrderChanged indicates the .order file was created, written or removed
	OrderChanged Reason = iota
	// IgnoreChanged indicates the .gitignore file was created, written or removed
	IgnoreChanged
	// Saved indicates some other file in the tree was written
	Saved
)

// String returns a human-readable representation of the reason
func (r Reason) String() string {
	switch r {
	case OrderChanged:
		return "order file changed"
	case IgnoreChanged:
		return "ignore file changed"
	case Saved:
		return "file saved"
	default:
		return "unknown"
	}
}

// Trigger is emitted once per debounce window
type Trigger struct {
	Root   models.Root
	Path   string
	Reason Reason
	At     time.Time
}

// DefaultDebounceDelay is the default delay for coalescing bursts of events
const DefaultDebounceDelay = 250 * time.Millisecond

// Options configures a Watcher
type Options struct {
	Debounce time.Duration
	// AllSaves also triggers on writes to files other than .order and .gitignore
	AllSaves bool
	// SkipPaths never trigger, e.g. a diagnostic log file kept inside a root
	SkipPaths []string
}

// Watcher watches one or more roots and emits coalesced triggers
type Watcher struct {
	watcher *fsnotify.Watcher
	roots   []models.Root
	opts    Options

	triggers chan Trigger
	errors   chan error
	done     chan struct{}

	skip map[string]bool

	mu      sync.Mutex
	ignores map[string]*ignore.Matcher
	pending *Trigger
	timer   *time.Timer
	closed  bool
}

// New creates a Watcher over every directory of roots that is not ignored
func New(roots []models.Root, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounceDelay
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		roots:    roots,
		opts:     opts,
		triggers: make(chan Trigger, 1),
		errors:   make(chan error, 10),
		done:     make(chan struct{}),
		skip:     make(map[string]bool, len(opts.SkipPaths)),
		ignores:  make(map[string]*ignore.Matcher),
	}
	for _, p := range opts.SkipPaths {
		if abs, err := filepath.Abs(p); err == nil {
			w.skip[abs] = true
		}
	}

	for _, root := range roots {
		w.reloadIgnore(root)
		if err := w.addRecursive(root, root.Path); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	go w.processEvents()

	return w, nil
}

// reloadIgnore rebuilds the ignore matcher for root from its current .gitignore
func (w *Watcher) reloadIgnore(root models.Root) {
	matcher, err := ignore.Load(osfs.Default, root.Path)
	if err != nil {
		w.sendError(err)
	}
	w.mu.Lock()
	w.ignores[root.Path] = matcher
	w.mu.Unlock()
}

func (w *Watcher) ignored(root models.Root, path string, isDir bool) bool {
	w.mu.Lock()
	matcher := w.ignores[root.Path]
	w.mu.Unlock()
	return matcher != nil && matcher.Match(path, isDir)
}

// addRecursive adds dir and its non-ignored subdirectories to the watcher
func (w *Watcher) addRecursive(root models.Root, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root.Path && w.ignored(root, path, true) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			if os.IsPermission(err) {
				return nil
			}
			return err
		}
		return nil
	})
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Our own timestamp writes arrive as chmod/attrib only.
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	path := event.Name
	root, ok := w.rootFor(path)
	if !ok {
		return
	}

	isDir := false
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			isDir = true
			if err := w.addRecursive(root, path); err != nil {
				w.sendError(err)
			}
		}
	}

	reason, ok := w.classify(root, path, isDir, event)
	if !ok {
		return
	}
	if reason == IgnoreChanged {
		w.reloadIgnore(root)
	}
	w.schedule(Trigger{Root: root, Path: path, Reason: reason})
}

// classify maps an event to a Reason; ok is false when the event should not trigger
func (w *Watcher) classify(root models.Root, path string, isDir bool, event fsnotify.Event) (Reason, bool) {
	if w.skip[path] || filelock.IsTempFile(path) {
		return 0, false
	}
	if filepath.Dir(path) == root.Path {
		switch filepath.Base(path) {
		case orderspec.FileName:
			return OrderChanged, true
		case ignore.FileName:
			return IgnoreChanged, true
		}
	}
	if !w.opts.AllSaves || isDir || !event.Has(fsnotify.Write) {
		return 0, false
	}
	if w.ignored(root, path, false) {
		return 0, false
	}
	return Saved, true
}

// rootFor returns the most specific root containing path
func (w *Watcher) rootFor(path string) (models.Root, bool) {
	var best models.Root
	found := false
	for _, root := range w.roots {
		if path != root.Path && !strings.HasPrefix(path, root.RootPath()) {
			continue
		}
		if !found || len(root.Path) > len(best.Path) {
			best = root
			found = true
		}
	}
	return best, found
}

// schedule coalesces triggers so a burst results in a single pass
func (w *Watcher) schedule(t Trigger) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	// .order and .gitignore changes outrank plain saves within one window
	if w.pending == nil || t.Reason <= w.pending.Reason {
		w.pending = &t
	}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.opts.Debounce, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	pending := w.pending
	w.pending = nil
	w.timer = nil
	w.mu.Unlock()

	if pending == nil {
		return
	}
	pending.At = time.Now()

	select {
	case w.triggers <- *pending:
	case <-w.done:
	default:
		// A pass is already queued; it will observe this change too.
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}

// Triggers returns the channel of coalesced triggers
func (w *Watcher) Triggers() <-chan Trigger {
	return w.triggers
}

// Errors returns the channel for receiving watch errors
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Roots returns the watched roots
func (w *Watcher) Roots() []models.Root {
	return w.roots
}

// Close stops the watcher and releases resources
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.pending = nil
	w.mu.Unlock()

	close(w.done)

	return w.watcher.Close()
}
