package sloghooks

import (
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"

	"github.com/threadworks/modelcache"
)

type Options struct {
	// Sampling to avoid floods on hot namespaces; 0/1 = log all.
	HitEvery  uint64
	MissEvery uint64
	// Optional key redactor. Defaults to an xxhash fingerprint so keys with
	// sensitive lookup arguments never reach the logs verbatim.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	hitCtr  atomic.Uint64
	missCtr atomic.Uint64
}

var _ modelcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	return strconv.FormatUint(xxhash.Sum64String(k), 16)
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Hit(ns, key string) {
	if h.l == nil || !sample(h.opts.HitEvery, &h.hitCtr) {
		return
	}
	h.l.Debug("modelcache.hit",
		"ns", ns,
		"key", h.redact(key))
}

func (h *Hooks) Miss(ns, key string) {
	if h.l == nil || !sample(h.opts.MissEvery, &h.missCtr) {
		return
	}
	h.l.Debug("modelcache.miss",
		"ns", ns,
		"key", h.redact(key))
}

func (h *Hooks) DecodeFailure(key string, recomputing bool) {
	if h.l == nil {
		return
	}
	h.l.Error("modelcache.decode_failure",
		"key", h.redact(key),
		"recomputing", recomputing)
}

func (h *Hooks) GenerationLoaded(ns string, gen uint64, seeded bool) {
	if h.l == nil {
		return
	}
	h.l.Info("modelcache.generation_loaded",
		"ns", ns,
		"gen", gen,
		"seeded", seeded)
}

func (h *Hooks) Invalidated(ns string, gen uint64) {
	if h.l == nil {
		return
	}
	h.l.Info("modelcache.invalidated",
		"ns", ns,
		"gen", gen)
}

func (h *Hooks) GenerationError(ns, op string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("modelcache.generation_error",
		"ns", ns,
		"op", op,
		"err", err)
}
