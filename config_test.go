package modelcache

import "testing"

func TestDisabledFromEnv(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		if DisabledFromEnv("posts") {
			t.Fatalf("disabled with no env set")
		}
	})

	t.Run("global", func(t *testing.T) {
		t.Setenv("MODELCACHE_DISABLE", "true")
		if !DisabledFromEnv("posts") {
			t.Fatalf("global flag ignored")
		}
	})

	t.Run("per_namespace", func(t *testing.T) {
		t.Setenv("MODELCACHE_DISABLE_POSTS", "1")
		if !DisabledFromEnv("posts") {
			t.Fatalf("namespace flag ignored")
		}
		if DisabledFromEnv("users") {
			t.Fatalf("flag leaked to another namespace")
		}
	})

	t.Run("suffix_sanitized", func(t *testing.T) {
		t.Setenv("MODELCACHE_DISABLE_FORUM_POSTS", "true")
		if !DisabledFromEnv("forum-posts") {
			t.Fatalf("sanitized suffix not matched")
		}
	})

	t.Run("malformed_counts_as_unset", func(t *testing.T) {
		t.Setenv("MODELCACHE_DISABLE", "maybe")
		if DisabledFromEnv("posts") {
			t.Fatalf("malformed value treated as set")
		}
	})
}
