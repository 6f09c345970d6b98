package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartStop(t *testing.T) {
	w, err := New()
	require.NoError(t, err)

	assert.False(t, w.IsRunning())
	require.NoError(t, w.Start())
	assert.True(t, w.IsRunning())

	// Starting twice is a no-op.
	require.NoError(t, w.Start())

	w.Stop()
	assert.False(t, w.IsRunning())

	// Stopping twice is a no-op too.
	w.Stop()
}

func TestDetectsWriteToWatchedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.csv")
	require.NoError(t, os.WriteFile(path, []byte("index,file_type,source_text,translated_text\n"), 0644))

	w, err := New()
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.SetFile(path))
	require.NoError(t, w.Start())

	require.NoError(t, os.WriteFile(path, []byte("index,file_type,source_text,translated_text\n0,a,x,\n"), 0644))

	select {
	case mod := <-w.FileChannel():
		abs, _ := filepath.Abs(path)
		assert.Equal(t, abs, mod.Path)
		assert.False(t, mod.Timestamp.IsZero())
	case <-time.After(5 * time.Second):
		t.Fatal("no modification event delivered")
	}
}

func TestIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "bundle.csv")
	sibling := filepath.Join(dir, "other.csv")
	require.NoError(t, os.WriteFile(watched, []byte("a\n"), 0644))

	w, err := New()
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.SetFile(watched))
	require.NoError(t, w.Start())

	require.NoError(t, os.WriteFile(sibling, []byte("b\n"), 0644))

	select {
	case mod := <-w.FileChannel():
		t.Fatalf("unexpected event for %s", mod.Path)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestStopDuringEventStream(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.csv")
	require.NoError(t, os.WriteFile(path, []byte("a\n"), 0644))

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.SetFile(path))
	require.NoError(t, w.Start())

	// Keep events flowing while the watcher shuts down.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			_ = os.WriteFile(path, []byte("b\n"), 0644)
		}
	}()

	time.Sleep(10 * time.Millisecond)
	w.Stop()
	<-done

	// The event goroutine closes the channel after it drains out; a send
	// racing shutdown must never panic.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-w.FileChannel():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("event channel never closed after Stop")
		}
	}
}

func TestSetFileSwitchesDirectory(t *testing.T) {
	first := filepath.Join(t.TempDir(), "a.csv")
	second := filepath.Join(t.TempDir(), "b.csv")
	require.NoError(t, os.WriteFile(first, []byte("a\n"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("b\n"), 0644))

	w, err := New()
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.SetFile(first))
	require.NoError(t, w.SetFile(second))
	require.NoError(t, w.Start())

	require.NoError(t, os.WriteFile(second, []byte("changed\n"), 0644))

	select {
	case mod := <-w.FileChannel():
		abs, _ := filepath.Abs(second)
		assert.Equal(t, abs, mod.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("no modification event after switching files")
	}
}
