package backend

import (
	"testing"
	"time"
)

func TestMergePerCallWins(t *testing.T) {
	base := StoreOptions{
		TTL:   10 * time.Minute,
		Flags: map[string]string{"tier": "warm", "compress": "no"},
	}

	t.Run("zero_call_keeps_base", func(t *testing.T) {
		got := StoreOptions{}.Merge(base)
		if got.TTL != base.TTL {
			t.Fatalf("TTL: got %v", got.TTL)
		}
		if got.Flags["tier"] != "warm" || got.Flags["compress"] != "no" {
			t.Fatalf("Flags: got %v", got.Flags)
		}
	})

	t.Run("call_overrides_collisions", func(t *testing.T) {
		over := StoreOptions{TTL: time.Minute, Flags: map[string]string{"tier": "hot"}}
		got := over.Merge(base)
		if got.TTL != time.Minute {
			t.Fatalf("TTL: got %v", got.TTL)
		}
		if got.Flags["tier"] != "hot" {
			t.Fatalf("collision not won by call: %v", got.Flags)
		}
		if got.Flags["compress"] != "no" {
			t.Fatalf("unrelated base flag lost: %v", got.Flags)
		}
	})

	t.Run("merge_does_not_mutate_base", func(t *testing.T) {
		over := StoreOptions{Flags: map[string]string{"tier": "hot"}}
		_ = over.Merge(base)
		if base.Flags["tier"] != "warm" {
			t.Fatalf("base mutated: %v", base.Flags)
		}
	})
}
