package modelcache

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	be "github.com/threadworks/modelcache/backend"
	"github.com/threadworks/modelcache/internal/keys"
)

func seedControl(bk *memBackend, ns string, gen uint64) {
	bk.m[keys.Control(ns)] = memEntry{v: []byte(strconv.FormatUint(gen, 10))}
}

func TestGenerationLazyLoadExisting(t *testing.T) {
	ctx := context.Background()
	bk := newMemBackend()
	seedControl(bk, "posts", 7)

	cc := newTestCache(t, "posts", bk, nil)
	defer cc.Close(ctx)

	g, err := cc.Generation(ctx)
	if err != nil || g != 7 {
		t.Fatalf("Generation: got %d err=%v, want 7", g, err)
	}
	k, _ := cc.Key(ctx, 1)
	if want := "posts-7-"; k[:len(want)] != want {
		t.Fatalf("key %q not under generation 7", k)
	}
}

func TestGenerationMissingDefaultsToZeroAndSelfHeals(t *testing.T) {
	ctx := context.Background()
	bk := newMemBackend()
	cc := newTestCache(t, "posts", bk, nil)
	defer cc.Close(ctx)

	g, err := cc.Generation(ctx)
	if err != nil || g != 0 {
		t.Fatalf("Generation: got %d err=%v, want 0", g, err)
	}
	raw, ok := bk.m[keys.Control("posts")]
	if !ok || string(raw.v) != "0" {
		t.Fatalf("control key not written back: ok=%v v=%q", ok, raw.v)
	}
}

// Driving the counter to MaxGeneration and invalidating once more wraps to
// 0, never to MaxGeneration+1, and never errors.
func TestGenerationWraparound(t *testing.T) {
	ctx := context.Background()
	bk := newMemBackend()
	seedControl(bk, "posts", MaxGeneration)

	cc := newTestCache(t, "posts", bk, nil)
	defer cc.Close(ctx)

	if g, err := cc.Generation(ctx); err != nil || g != MaxGeneration {
		t.Fatalf("Generation at max: got %d err=%v", g, err)
	}
	if err := cc.InvalidateAll(ctx); err != nil {
		t.Fatalf("InvalidateAll at max: %v", err)
	}
	g, err := cc.Generation(ctx)
	if err != nil || g != 0 {
		t.Fatalf("wraparound: got %d err=%v, want 0", g, err)
	}
	if raw := bk.m[keys.Control("posts")]; string(raw.v) != "0" {
		t.Fatalf("control key holds %q after wraparound", raw.v)
	}
}

// An out-of-range value written by a foreign client folds back into the
// valid range instead of breaking every read.
func TestGenerationOutOfRangeFolds(t *testing.T) {
	ctx := context.Background()
	bk := newMemBackend()
	seedControl(bk, "posts", MaxGeneration+3)

	cc := newTestCache(t, "posts", bk, nil)
	defer cc.Close(ctx)

	g, err := cc.Generation(ctx)
	if err != nil || g != 2 {
		t.Fatalf("folded generation: got %d err=%v, want 2", g, err)
	}
}

func TestGenerationParseErrorSurfaces(t *testing.T) {
	ctx := context.Background()
	bk := newMemBackend()
	bk.m[keys.Control("posts")] = memEntry{v: []byte("not-a-number")}

	cc := newTestCache(t, "posts", bk, nil)
	defer cc.Close(ctx)

	if _, err := cc.Generation(ctx); err == nil {
		t.Fatalf("expected parse error to surface")
	}
	// The corrupt control value must not be silently replaced.
	if raw := bk.m[keys.Control("posts")]; string(raw.v) != "not-a-number" {
		t.Fatalf("control key rewritten to %q", raw.v)
	}
}

// controlStoreFailBackend rejects writes to the control key only.
type controlStoreFailBackend struct {
	*memBackend
	failAfter int // successful control writes before failing
	writes    int
}

func (b *controlStoreFailBackend) Store(ctx context.Context, key string, value []byte, opts be.StoreOptions) error {
	if key == keys.Control("posts") {
		b.writes++
		if b.writes > b.failAfter {
			return errors.New("control write refused")
		}
	}
	return b.memBackend.Store(ctx, key, value, opts)
}

// A failed persist keeps the instance on its old generation: readers must
// never observe a generation the backend has not accepted.
func TestInvalidatePersistFailureKeepsOldGeneration(t *testing.T) {
	ctx := context.Background()
	bk := &controlStoreFailBackend{memBackend: newMemBackend(), failAfter: 1}
	cc := newTestCache(t, "posts", bk, nil)
	defer func() { _ = cc.Close(ctx) }()

	// First use loads and self-heal writes generation 0 (allowed write #1).
	if g, err := cc.Generation(ctx); err != nil || g != 0 {
		t.Fatalf("warm: got %d err=%v", g, err)
	}

	err := cc.InvalidateAll(ctx)
	if err == nil {
		t.Fatalf("expected persist failure")
	}
	var ie *InvalidateError
	if !errors.As(err, &ie) || ie.StoreErr == nil {
		t.Fatalf("expected InvalidateError with StoreErr, got %T: %v", err, err)
	}
	if g, _ := cc.Generation(ctx); g != 0 {
		t.Fatalf("generation advanced despite persist failure: %d", g)
	}
}

func TestInvalidateLoadFailureWrapsError(t *testing.T) {
	ctx := context.Background()
	cc := newTestCache(t, "posts", &errBackend{}, nil)

	err := cc.InvalidateAll(ctx)
	if err == nil {
		t.Fatalf("expected load failure")
	}
	var ie *InvalidateError
	if !errors.As(err, &ie) || ie.LoadErr == nil {
		t.Fatalf("expected InvalidateError with LoadErr, got %T: %v", err, err)
	}
}

// GenerationTTL is applied to control-key writes.
func TestGenerationTTLApplied(t *testing.T) {
	ctx := context.Background()
	bk := newMemBackend()
	cc := newTestCache(t, "posts", bk, func(o *Options[post]) {
		o.GenerationTTL = 24 * time.Hour
	})
	defer cc.Close(ctx)

	if _, err := cc.Generation(ctx); err != nil {
		t.Fatalf("Generation: %v", err)
	}
	if got := bk.lastOpts[keys.Control("posts")]; got.TTL != 24*time.Hour {
		t.Fatalf("control key TTL: got %v want 24h", got.TTL)
	}
}
