// Package sloghooks reports pack.Hooks events through log/slog.
package sloghooks

import (
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/intcode/pack"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	PackRejectEvery  uint64
	BlockRejectEvery uint64
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	packRejectCtr  atomic.Uint64
	blockRejectCtr atomic.Uint64
}

var _ pack.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) PackRejected(scheme string, count int, reason string) {
	if h.l == nil || !sample(h.opts.PackRejectEvery, &h.packRejectCtr) {
		return
	}
	h.l.Info("intcode.pack_rejected",
		"scheme", scheme,
		"count", count,
		"reason", reason)
}

func (h *Hooks) BlockRejected(scheme, reason string, err error) {
	if h.l == nil || !sample(h.opts.BlockRejectEvery, &h.blockRejectCtr) {
		return
	}
	h.l.Warn("intcode.block_rejected",
		"scheme", scheme,
		"reason", reason,
		"err", err)
}
