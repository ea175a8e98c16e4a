// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bus implements the subscription fan-out that runs after a
// successful decode: every subscriber registered on the published
// node, and on each of its ancestors up to the tree root, is invoked
// with the full list of leaves the decode touched.
//
// Go functions are not comparable, so instead of an
// unsubscribe(node, callback) pair, a Subscribe call returns a
// *Subscription handle whose own Unsubscribe method removes exactly
// that registration, the same shape github.com/nats-io/nats.go uses
// for Subscribe/Unsubscribe.
package bus

import (
	"github.com/signaltree/vsd-core/internal/tree"
)

// Callback receives the complete list of leaves a dispatch touched.
type Callback func(touched []tree.Signal)

// ErrNoSubscriber is returned by Unsubscribe when the handle names a
// registration that is no longer present on its node.
var ErrNoSubscriber = tree.ErrNoSubscriber

// Subscription is the handle returned by Subscribe. Its zero value is
// not usable; always use the value Subscribe returns.
type Subscription struct {
	bus  *Bus
	node tree.Signal
	seq  uint64
}

// Unsubscribe removes this registration. Calling it twice returns
// ErrNoSubscriber the second time.
func (s *Subscription) Unsubscribe() error {
	return s.bus.unsubscribe(s)
}

type entry struct {
	seq uint64
	cb  Callback
}

// Bus owns the per-node subscriber lists for one tree.Context.
type Bus struct {
	subs map[tree.Signal][]entry
	next uint64
}

// New creates an empty bus. One Bus should be paired with exactly one
// tree.Context, since Signal handles are only comparable within the
// Context that minted them.
func New() *Bus {
	return &Bus{subs: make(map[tree.Signal][]entry)}
}

// Subscribe appends callback to node's subscriber list, after any
// already registered there, and returns a handle that removes it.
func (b *Bus) Subscribe(node tree.Signal, callback Callback) *Subscription {
	b.next++
	seq := b.next
	b.subs[node] = append(b.subs[node], entry{seq: seq, cb: callback})
	return &Subscription{bus: b, node: node, seq: seq}
}

func (b *Bus) unsubscribe(s *Subscription) error {
	list := b.subs[s.node]
	for i, e := range list {
		if e.seq == s.seq {
			b.subs[s.node] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNoSubscriber
}

// Dispatch invokes every subscriber on root, then on root's parent,
// and so on up to and including the tree root, each in insertion
// order, passing touched unmodified to every callback. A
// callback that mutates values or calls Publish does not trigger a
// recursive Dispatch; Publish always schedules a new outbound payload
// rather than reentering this call.
func (b *Bus) Dispatch(root tree.Signal, touched []tree.Signal) {
	for n, ok := root, true; ok; n, ok = n.Parent() {
		for _, e := range b.subs[n] {
			e.cb(touched)
		}
	}
}
