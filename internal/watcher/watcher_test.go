package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/ordertouch/internal/filelock"
	"github.com/harrison/ordertouch/internal/logger"
	"github.com/harrison/ordertouch/internal/models"
)

const testDebounce = 50 * time.Millisecond

func newTestWatcher(t *testing.T, opts Options) (*Watcher, models.Root) {
	t.Helper()
	root, err := models.NewRoot(t.TempDir())
	require.NoError(t, err)

	if opts.Debounce == 0 {
		opts.Debounce = testDebounce
	}
	w, err := New([]models.Root{root}, opts)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })
	return w, root
}

func waitTrigger(t *testing.T, w *Watcher) Trigger {
	t.Helper()
	select {
	case tr := <-w.Triggers():
		return tr
	case err := <-w.Errors():
		t.Fatalf("unexpected watch error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for trigger")
	}
	return Trigger{}
}

func expectQuiet(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case tr := <-w.Triggers():
		t.Fatalf("unexpected trigger: %+v", tr)
	case <-time.After(6 * testDebounce):
	}
}

func TestReasonString(t *testing.T) {
	tests := []struct {
		reason   Reason
		expected string
	}{
		{OrderChanged, "order file changed"},
		{IgnoreChanged, "ignore file changed"},
		{Saved, "file saved"},
		{Reason(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.reason.String())
		})
	}
}

func TestWatcher_OrderFileWrite(t *testing.T) {
	w, root := newTestWatcher(t, Options{})

	require.NoError(t, os.WriteFile(root.File(".order"), []byte("a\nb\n"), 0644))

	tr := waitTrigger(t, w)
	assert.Equal(t, OrderChanged, tr.Reason)
	assert.Equal(t, root.Path, tr.Root.Path)
	assert.Equal(t, root.File(".order"), tr.Path)
	assert.False(t, tr.At.IsZero())
}

func TestWatcher_OrderFileRemove(t *testing.T) {
	root, err := models.NewRoot(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(root.File(".order"), []byte("a\n"), 0644))

	w, err := New([]models.Root{root}, Options{Debounce: testDebounce})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.Remove(root.File(".order")))

	tr := waitTrigger(t, w)
	assert.Equal(t, OrderChanged, tr.Reason)
}

func TestWatcher_GitignoreWrite(t *testing.T) {
	w, root := newTestWatcher(t, Options{})

	require.NoError(t, os.WriteFile(root.File(".gitignore"), []byte("build/\n"), 0644))

	tr := waitTrigger(t, w)
	assert.Equal(t, IgnoreChanged, tr.Reason)
}

func TestWatcher_ChtimesDoesNotTrigger(t *testing.T) {
	root, err := models.NewRoot(t.TempDir())
	require.NoError(t, err)
	file := root.File("notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	w, err := New([]models.Root{root}, Options{Debounce: testDebounce, AllSaves: true})
	require.NoError(t, err)
	defer w.Close()

	ts := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(file, ts, ts))
	require.NoError(t, os.Chtimes(root.Path, ts, ts))

	expectQuiet(t, w)
}

func TestWatcher_SavesRespectOption(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		root, err := models.NewRoot(t.TempDir())
		require.NoError(t, err)
		file := root.File("main.go")
		require.NoError(t, os.WriteFile(file, []byte("package main\n"), 0644))

		w, err := New([]models.Root{root}, Options{Debounce: testDebounce})
		require.NoError(t, err)
		defer w.Close()

		require.NoError(t, os.WriteFile(file, []byte("package main\n\nfunc main() {}\n"), 0644))
		expectQuiet(t, w)
	})

	t.Run("enabled", func(t *testing.T) {
		root, err := models.NewRoot(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, os.MkdirAll(filepath.Join(root.Path, "pkg"), 0755))
		file := filepath.Join(root.Path, "pkg", "util.go")
		require.NoError(t, os.WriteFile(file, []byte("package pkg\n"), 0644))

		w, err := New([]models.Root{root}, Options{Debounce: testDebounce, AllSaves: true})
		require.NoError(t, err)
		defer w.Close()

		require.NoError(t, os.WriteFile(file, []byte("package pkg\n\n// x\n"), 0644))

		tr := waitTrigger(t, w)
		assert.Equal(t, Saved, tr.Reason)
		assert.Equal(t, file, tr.Path)
	})
}

func TestWatcher_IgnoredDirectoryNotWatched(t *testing.T) {
	root, err := models.NewRoot(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(root.File(".gitignore"), []byte("build/\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root.Path, "build"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root.Path, ".git"), 0755))

	w, err := New([]models.Root{root}, Options{Debounce: testDebounce, AllSaves: true})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(root.Path, "build", "out.bin"), []byte("1"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root.Path, ".git", "HEAD"), []byte("ref"), 0644))

	expectQuiet(t, w)
}

func TestWatcher_NestedOrderFileIsSave(t *testing.T) {
	root, err := models.NewRoot(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(root.Path, "docs"), 0755))

	w, err := New([]models.Root{root}, Options{Debounce: testDebounce})
	require.NoError(t, err)
	defer w.Close()

	// Only the root's own .order drives ordering.
	require.NoError(t, os.WriteFile(filepath.Join(root.Path, "docs", ".order"), []byte("a\n"), 0644))
	expectQuiet(t, w)
}

func TestWatcher_BurstCoalesces(t *testing.T) {
	w, root := newTestWatcher(t, Options{AllSaves: true})

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(root.File("f.txt"), []byte{byte('a' + i)}, 0644))
	}
	require.NoError(t, os.WriteFile(root.File(".order"), []byte("f.txt\n"), 0644))

	tr := waitTrigger(t, w)
	assert.Equal(t, OrderChanged, tr.Reason, "order changes outrank saves in the same window")
	expectQuiet(t, w)
}

func TestWatcher_NewDirectoryIsWatched(t *testing.T) {
	w, root := newTestWatcher(t, Options{AllSaves: true})

	sub := filepath.Join(root.Path, "later")
	require.NoError(t, os.Mkdir(sub, 0755))
	// Let the create event register the new directory.
	time.Sleep(4 * testDebounce)
	select {
	case <-w.Triggers():
	default:
	}

	file := filepath.Join(sub, "x.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	tr := waitTrigger(t, w)
	assert.Equal(t, Saved, tr.Reason)
	assert.Equal(t, file, tr.Path)
}

func TestWatcher_MultipleRoots(t *testing.T) {
	first, err := models.NewRoot(t.TempDir())
	require.NoError(t, err)
	second, err := models.NewRoot(t.TempDir())
	require.NoError(t, err)

	w, err := New([]models.Root{first, second}, Options{Debounce: testDebounce})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(second.File(".order"), []byte("z\n"), 0644))

	tr := waitTrigger(t, w)
	assert.Equal(t, second.Path, tr.Root.Path)
	assert.Len(t, w.Roots(), 2)
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	w, root := newTestWatcher(t, Options{})

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	// Events after close are dropped.
	_ = os.WriteFile(root.File(".order"), []byte("a\n"), 0644)
	select {
	case tr := <-w.Triggers():
		t.Fatalf("trigger after close: %+v", tr)
	case <-time.After(4 * testDebounce):
	}
}

func TestWatcher_SkipPathsDoNotTrigger(t *testing.T) {
	root, err := models.NewRoot(t.TempDir())
	require.NoError(t, err)
	logPath := root.File("ordertouch.log")

	w, err := New([]models.Root{root}, Options{
		Debounce:  testDebounce,
		AllSaves:  true,
		SkipPaths: []string{logPath},
	})
	require.NoError(t, err)
	defer w.Close()

	fileLog, err := logger.NewFileLogger(logPath)
	require.NoError(t, err)
	fileLog.LogInfo("Starting ordering pass")
	require.NoError(t, fileLog.Close())

	expectQuiet(t, w)
}

func TestWatcher_AtomicWriteTempFilesDoNotTrigger(t *testing.T) {
	w, root := newTestWatcher(t, Options{AllSaves: true})

	tmp, err := os.CreateTemp(root.Path, filelock.TempPrefix+"*")
	require.NoError(t, err)
	_, err = tmp.WriteString("a\nb\n")
	require.NoError(t, err)
	require.NoError(t, tmp.Close())
	require.NoError(t, os.Remove(tmp.Name()))

	expectQuiet(t, w)
}
