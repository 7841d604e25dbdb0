// Package keys builds the storage keys used by modelcache: entry keys of the
// form <namespace>-<generation>-<digest>, and the per-namespace control key
// that holds the generation counter.
package keys

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/fxamacker/cbor/v2"
)

// ControlPrefix is the namespace reserved for generation counters.
const ControlPrefix = "generation"

// digestHexLen is 128 bits of SHA-256 in hex. Wide enough that accidental
// collisions are negligible at any realistic entry count; truncated so keys
// stay short for stores with key-size limits.
const digestHexLen = 32

var detMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// Digest returns a deterministic content hash of the lookup arguments. The
// argument list is encoded as an RFC 8949 core deterministic CBOR array, so
// equal values produce equal digests across processes and runs, and changing
// any element's value or position changes the digest.
func Digest(args []any) (string, error) {
	if args == nil {
		args = []any{}
	}
	b, err := detMode.Marshal(args)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])[:digestHexLen], nil
}

// Entry assembles the storage key for one cache entry.
func Entry(ns string, gen uint64, digest string) string {
	return ns + "-" + strconv.FormatUint(gen, 10) + "-" + digest
}

// Control returns the key holding a namespace's generation counter.
func Control(ns string) string {
	return ControlPrefix + "-" + ns
}
