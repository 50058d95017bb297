package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ktsmell/internal/testutil"
)

func TestNew_Defaults(t *testing.T) {
	w := New(Config{})
	assert.Equal(t, []string{"."}, w.roots)
	assert.Equal(t, DefaultDebounce, w.debounce)
	assert.Equal(t, []string{".kt", ".kts"}, w.extensions)
	assert.NotNil(t, w.logger)
}

func TestWatcher_Matches(t *testing.T) {
	w := New(Config{})
	assert.True(t, w.matches("src/A.kt"))
	assert.True(t, w.matches("build.gradle.kts"))
	assert.False(t, w.matches("README.md"))
	assert.False(t, w.matches("A.kt.swp"))
}

func TestWatcher_SkipsExcludedDirectories(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"src/main", "build/generated", "app/build", "app/src", ".gradle/caches"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, filepath.FromSlash(sub)), 0o755))
	}

	w := New(Config{Roots: []string{dir}, Exclude: []string{"build/**", ".gradle/**"}})

	tests := []struct {
		rel  string
		want bool
	}{
		{"src", false},
		{"src/main", false},
		{"build", true},
		{"app/build", true},
		{".gradle", true},
		{"app/src", false},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			assert.Equal(t, tt.want, w.skipped(filepath.Join(dir, filepath.FromSlash(tt.rel))))
		})
	}

	fw, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = fw.Close() }()
	require.NoError(t, w.add(fw, dir))

	var watched []string
	for _, p := range fw.WatchList() {
		rel, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		watched = append(watched, filepath.ToSlash(rel))
	}
	assert.ElementsMatch(t, []string{".", "src", "src/main", "app", "app/src"}, watched)
}

func TestWatcher_MissingRoot(t *testing.T) {
	w := New(Config{Roots: []string{filepath.Join(t.TempDir(), "missing")}})
	err := w.Run(context.Background(), func(context.Context, []string) {})
	require.Error(t, err)
}

func TestWatcher_Run(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	w := New(Config{Roots: []string{dir}, Debounce: 20 * time.Millisecond, Logger: testutil.NewTestLogger(t)})

	var (
		mu      sync.Mutex
		batches [][]string
	)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, changed []string) {
			mu.Lock()
			defer mu.Unlock()
			batches = append(batches, changed)
		})
	}()

	target := filepath.Join(sub, "A.kt")
	ignored := filepath.Join(sub, "notes.txt")

	// The watcher registers its directories asynchronously, so keep touching
	// the file until a callback arrives.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(ignored, []byte("x"), 0o644)
		_ = os.WriteFile(target, []byte("class A"), 0o644)
		mu.Lock()
		defer mu.Unlock()
		return len(batches) > 0
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}

	mu.Lock()
	defer mu.Unlock()
	for _, batch := range batches {
		for _, path := range batch {
			assert.Equal(t, target, path, "only Kotlin files are reported")
		}
	}
}
