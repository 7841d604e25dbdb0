package modelcache

import (
	"os"
	"strconv"
	"strings"
)

// DisabledFromEnv resolves the caching kill switch for a namespace from the
// environment, read once at construction time:
//
//	MODELCACHE_DISABLE        disables every namespace
//	MODELCACHE_DISABLE_<NS>   disables one namespace (upper-cased, with
//	                          non-alphanumerics mapped to '_')
//
// Malformed values count as unset. Pass the result as Options.Disabled to
// get an operational escape hatch without a code change.
func DisabledFromEnv(namespace string) bool {
	if envBool(os.Getenv("MODELCACHE_DISABLE")) {
		return true
	}
	return envBool(os.Getenv("MODELCACHE_DISABLE_" + envSuffix(namespace)))
}

func envBool(s string) bool {
	if s == "" {
		return false
	}
	v, err := strconv.ParseBool(s)
	return err == nil && v
}

func envSuffix(ns string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r >= 'a' && r <= 'z':
			return r - ('a' - 'A')
		default:
			return '_'
		}
	}, ns)
}
