package file

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_ReloadsOnExternalWrite(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, store, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// Keep writing until the watcher has registered and seen a change.
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(5 * time.Second)

loop:
	for {
		select {
		case <-ticker.C:
			require.NoError(t, os.WriteFile(store.Path(), []byte("[form]\nmax_subjects = 9\n"), 0600))
		case <-changed:
			break loop
		case <-timeout:
			t.Fatal("watcher did not report a change")
		}
	}

	assert.Equal(t, 9, store.GetInt("form.max_subjects"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(tmpDir))

	err = Watch(context.Background(), store, nil)

	assert.Error(t, err)
}
