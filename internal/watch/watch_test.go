package watch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestWatchCallsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.log")
	if err := os.WriteFile(path, []byte("first"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var calls atomic.Int32
	changed := make(chan struct{}, 1)
	var logs bytes.Buffer
	w := New(path, func() {
		calls.Add(1)
		select {
		case changed <- struct{}{}:
		default:
		}
	}, log.New(&logs)).WithDebounce(200 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("second"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(filepath.Dir(path), "other.log"), nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("onChange was not called")
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Fatalf("Watch returned %v, want context.Canceled", err)
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("expected writes to be coalesced into one call, got %d", n)
	}
}

func TestDebouncerRunsDoNotOverlap(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	done := make(chan struct{}, 2)
	d := &debouncer{delay: time.Millisecond, fn: func() {
		n := inFlight.Add(1)
		for {
			m := maxInFlight.Load()
			if n <= m || maxInFlight.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(50 * time.Millisecond)
		inFlight.Add(-1)
		done <- struct{}{}
	}}

	d.trigger()
	// second burst settles while the first run is still sleeping
	time.Sleep(15 * time.Millisecond)
	d.trigger()

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatalf("run %d did not finish", i+1)
		}
	}
	if m := maxInFlight.Load(); m != 1 {
		t.Fatalf("callbacks overlapped: %d ran at once", m)
	}
}
