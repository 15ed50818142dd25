package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForPath(t *testing.T, ch <-chan string, want string) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case got, ok := <-ch:
			require.True(t, ok, "event channel closed before %s arrived", want)
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func TestWatcherEmitsNewScan(t *testing.T) {
	root := t.TempDir()
	companyDir := filepath.Join(root, uuid.NewString())
	require.NoError(t, os.Mkdir(companyDir, 0o755))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatchConfig{
		Roots:    []string{root},
		Debounce: 20 * time.Millisecond,
	})
	require.NoError(t, err)

	scan := filepath.Join(companyDir, "sheet.jpg")
	require.NoError(t, os.WriteFile(scan, []byte("not really a jpg"), 0o644))

	waitForPath(t, evCh, scan)
}

func TestWatcherIgnoresOtherExtensions(t *testing.T) {
	root := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.pdf"), []byte("x"), 0o644))
	wanted := filepath.Join(root, "sheet.png")
	require.NoError(t, os.WriteFile(wanted, []byte("x"), 0o644))

	// Only the png should come through.
	waitForPath(t, evCh, wanted)
}

func TestWatcherInitialScan(t *testing.T) {
	root := t.TempDir()
	existing := filepath.Join(root, "old.txt")
	require.NoError(t, os.WriteFile(existing, []byte("Daily Time Record"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatchConfig{
		Roots:       []string{root},
		InitialScan: true,
	})
	require.NoError(t, err)

	waitForPath(t, evCh, existing)
}

func TestWatcherPicksUpNewCompanyFolder(t *testing.T) {
	root := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatchConfig{
		Roots:    []string{root},
		Debounce: 20 * time.Millisecond,
	})
	require.NoError(t, err)

	companyDir := filepath.Join(root, uuid.NewString())
	require.NoError(t, os.Mkdir(companyDir, 0o755))
	// Give the watcher a beat to register the new directory.
	time.Sleep(200 * time.Millisecond)

	scan := filepath.Join(companyDir, "sheet.jpeg")
	require.NoError(t, os.WriteFile(scan, []byte("x"), 0o644))

	waitForPath(t, evCh, scan)
}

// A burst of writes lands while earlier debounce windows are still
// flushing; every file must still come through exactly once.
func TestWatcherHandlesWriteBurst(t *testing.T) {
	root := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatchConfig{
		Roots:    []string{root},
		Debounce: time.Millisecond,
	})
	require.NoError(t, err)

	const n = 100
	paths := make([]string, 0, n)
	want := map[string]struct{}{}
	for i := 0; i < n; i++ {
		p := filepath.Join(root, fmt.Sprintf("sheet-%03d.jpg", i))
		paths = append(paths, p)
		want[p] = struct{}{}
	}

	go func() {
		for _, p := range paths {
			_ = os.WriteFile(p, []byte("x"), 0o644)
		}
	}()

	deadline := time.After(5 * time.Second)
	for len(want) > 0 {
		select {
		case got, ok := <-evCh:
			require.True(t, ok, "event channel closed early")
			delete(want, got)
		case <-deadline:
			t.Fatalf("timed out with %d files unseen", len(want))
		}
	}
}

func TestWatcherRequiresRoots(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{})
	require.Error(t, err)
}

func TestCompanyFromPath(t *testing.T) {
	root := filepath.Join("var", "drops")
	companyID := uuid.New()

	id, err := CompanyFromPath(root, filepath.Join(root, companyID.String(), "sheet.jpg"))
	require.NoError(t, err)
	assert.Equal(t, companyID, id)

	// Nested below the company folder is still that company's file.
	id, err = CompanyFromPath(root, filepath.Join(root, companyID.String(), "2024", "sheet.jpg"))
	require.NoError(t, err)
	assert.Equal(t, companyID, id)

	_, err = CompanyFromPath(root, filepath.Join(root, "sheet.jpg"))
	assert.Error(t, err, "file directly in the root has no company")

	_, err = CompanyFromPath(root, filepath.Join(root, "not-a-uuid", "sheet.jpg"))
	assert.Error(t, err)

	_, err = CompanyFromPath(root, filepath.Join("elsewhere", "sheet.jpg"))
	assert.Error(t, err)
}
