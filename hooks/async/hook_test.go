package asynchook

import (
	"sync"
	"testing"
)

type countingHooks struct {
	mu     sync.Mutex
	events []string
}

func (h *countingHooks) add(e string) {
	h.mu.Lock()
	h.events = append(h.events, e)
	h.mu.Unlock()
}

func (h *countingHooks) Hit(string, string)                    { h.add("hit") }
func (h *countingHooks) Miss(string, string)                   { h.add("miss") }
func (h *countingHooks) DecodeFailure(string, bool)            { h.add("decode") }
func (h *countingHooks) GenerationLoaded(string, uint64, bool) { h.add("loaded") }
func (h *countingHooks) Invalidated(string, uint64)            { h.add("invalidated") }
func (h *countingHooks) GenerationError(string, string, error) { h.add("generr") }

func TestDeliversAllEventKinds(t *testing.T) {
	inner := &countingHooks{}
	h := New(inner, 2, 16)

	h.Hit("posts", "k")
	h.Miss("posts", "k")
	h.DecodeFailure("k", false)
	h.GenerationLoaded("posts", 0, true)
	h.Invalidated("posts", 1)
	h.GenerationError("posts", "load", nil)
	h.Close() // drains the queue

	inner.mu.Lock()
	defer inner.mu.Unlock()
	if len(inner.events) != 6 {
		t.Fatalf("delivered %d events, want 6: %v", len(inner.events), inner.events)
	}
}

func TestCloseIdempotent(t *testing.T) {
	h := New(&countingHooks{}, 1, 1)
	h.Close()
	h.Close() // must not panic
}

func TestFullQueueDropsInsteadOfBlocking(t *testing.T) {
	block := make(chan struct{})
	inner := &blockingHooks{release: block}
	h := New(inner, 1, 1)

	// First event occupies the worker, second fills the queue, the rest
	// must drop without blocking this goroutine.
	for i := 0; i < 10; i++ {
		h.Hit("posts", "k")
	}
	close(block)
	h.Close()
}

type blockingHooks struct{ release chan struct{} }

func (h *blockingHooks) Hit(string, string)                    { <-h.release }
func (h *blockingHooks) Miss(string, string)                   {}
func (h *blockingHooks) DecodeFailure(string, bool)            {}
func (h *blockingHooks) GenerationLoaded(string, uint64, bool) {}
func (h *blockingHooks) Invalidated(string, uint64)            {}
func (h *blockingHooks) GenerationError(string, string, error) {}
