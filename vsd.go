// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package vsdcore is the Vehicle Signal Distribution library's public
// entry point: it wires a signal tree (internal/tree), a subscription
// bus (internal/bus) and a wire codec (internal/codec) to a pluggable
// Transport, exposing the publish/subscribe surface described for
// in-vehicle and vehicle-to-cloud signal distribution.
//
// Construct a tree with NewContext, load it from a specification (see
// pkg/vss for the CSV loader), Finalize it, then wrap it in a
// Distributor together with a Transport implementation (see
// internal/transport for the NATS-backed one) to publish and subscribe.
package vsdcore

import (
	"errors"
	"fmt"

	"github.com/signaltree/vsd-core/internal/bus"
	"github.com/signaltree/vsd-core/internal/codec"
	"github.com/signaltree/vsd-core/internal/metrics"
	"github.com/signaltree/vsd-core/internal/tree"
)

// Re-exported core types, so callers never need to import internal/tree
// directly.
type (
	Context     = tree.Context
	Signal      = tree.Signal
	Scalar      = tree.Scalar
	DataKind    = tree.DataKind
	ElementKind = tree.ElementKind
	LeafSpec    = tree.LeafSpec
)

var NewContext = tree.NewContext

const (
	KindInt8    = tree.KindInt8
	KindUint8   = tree.KindUint8
	KindInt16   = tree.KindInt16
	KindUint16  = tree.KindUint16
	KindInt32   = tree.KindInt32
	KindUint32  = tree.KindUint32
	KindFloat32 = tree.KindFloat32
	KindFloat64 = tree.KindFloat64
	KindBool    = tree.KindBool
	KindString  = tree.KindString
	KindStream  = tree.KindStream
	KindNone    = tree.KindNone

	ElementAttribute = tree.ElementAttribute
	ElementBranch    = tree.ElementBranch
	ElementSensor    = tree.ElementSensor
	ElementActuator  = tree.ElementActuator
	ElementElement   = tree.ElementElement
)

// Sentinel errors, re-exported for errors.Is against this package's API.
var (
	ErrInvalidArgument  = tree.ErrInvalidArgument
	ErrNotFound         = tree.ErrNotFound
	ErrNotADirectory    = tree.ErrNotADirectory
	ErrIsADirectory     = tree.ErrIsADirectory
	ErrNoSpace          = tree.ErrNoSpace
	ErrTruncated        = tree.ErrTruncated
	ErrUnsupportedKind  = tree.ErrUnsupportedKind
	ErrUnknownSignature = tree.ErrUnknownSignature
	ErrNoSubscriber     = bus.ErrNoSubscriber
	ErrDuplicateID      = tree.ErrDuplicateID
)

// MaxPayload is the largest payload a single Publish will ever produce.
const MaxPayload = codec.MaxPayload

// Transport is the substrate a Distributor hands encoded payloads to,
// and that delivers inbound payloads back via OnReceive. internal/transport
// provides a NATS-backed implementation; tests and examples may use any
// type satisfying this interface.
type Transport interface {
	// Transmit delivers payload to all interested peers, tagged with tag
	// (the published root's subtree signature).
	Transmit(tag uint32, payload []byte) error
}

// Subscription is the handle Subscribe returns; call its Unsubscribe
// method to remove the registration.
type Subscription = bus.Subscription

// Callback receives the full list of leaves one dispatch touched.
type Callback = bus.Callback

// Distributor ties one Context to one Transport: it owns the
// subscription bus, runs Publish's encode step, and drives Dispatch
// from OnReceive after a successful decode.
type Distributor struct {
	ctx       *Context
	bus       *bus.Bus
	transport Transport
	scratch   []byte

	// Metrics is nil by default; set it (typically right after
	// NewDistributor, before any Publish/OnReceive call) to have the
	// distributor record publish/decode/dispatch activity against it.
	Metrics *metrics.Registry
}

// NewDistributor creates a Distributor over an already-Finalized ctx.
func NewDistributor(ctx *Context, transport Transport) *Distributor {
	return &Distributor{
		ctx:       ctx,
		bus:       bus.New(),
		transport: transport,
		scratch:   make([]byte, MaxPayload),
	}
}

// Context returns the distributor's underlying tree context.
func (d *Distributor) Context() *Context { return d.ctx }

// Subscribe registers callback on node; it fires once per Dispatch that
// reaches node, in insertion order relative to node's other subscribers.
func (d *Distributor) Subscribe(node Signal, callback Callback) *Subscription {
	return d.bus.Subscribe(node, callback)
}

// Publish encodes every leaf under root and hands the result to the
// transport, tagged with root's subtree signature. Publishing an
// unchanged subtree is valid; there is no dirty tracking.
func (d *Distributor) Publish(root Signal) error {
	n, err := codec.Encode(root, d.scratch)
	if err != nil {
		return err
	}
	payload := make([]byte, n)
	copy(payload, d.scratch[:n])
	if err := d.transport.Transmit(root.Signature(), payload); err != nil {
		return err
	}
	if d.Metrics != nil {
		d.Metrics.PublishTotal.Inc()
		d.Metrics.EncodeBytes.Observe(float64(n))
	}
	return nil
}

// OnReceive is the Transport's callback for an inbound payload: it
// resolves the root by tag, verifies the local signature agrees (a
// mismatch is surfaced as an error, never a process abort), decodes in
// place, and dispatches.
func (d *Distributor) OnReceive(tag uint32, payload []byte) error {
	root, err := d.ctx.LookupBySignature(tag)
	if err != nil {
		if d.Metrics != nil {
			d.Metrics.DecodeErrorsTotal.WithLabelValues("unknown-signature").Inc()
		}
		return fmt.Errorf("resolving publish root for tag %#x: %w", tag, err)
	}
	if root.Signature() != tag {
		if d.Metrics != nil {
			d.Metrics.DecodeErrorsTotal.WithLabelValues("signature-mismatch").Inc()
		}
		return fmt.Errorf("%w: local signature %#x does not match tag %#x", ErrUnknownSignature, root.Signature(), tag)
	}

	touched, err := codec.Decode(d.ctx, payload)
	if err != nil {
		if d.Metrics != nil {
			d.Metrics.DecodeErrorsTotal.WithLabelValues("decode").Inc()
		}
		return fmt.Errorf("decoding payload for tag %#x: %w", tag, err)
	}
	if d.Metrics != nil {
		d.Metrics.DecodeTotal.Inc()
		d.Metrics.DispatchTotal.Inc()
	}
	d.bus.Dispatch(root, touched)
	return nil
}

// IsRecoverable reports whether err is one of this package's
// recoverable error kinds, as opposed to an error this package never
// returns (allocation failure, which Go's runtime already surfaces as a
// panic rather than a returned error).
func IsRecoverable(err error) bool {
	for _, sentinel := range []error{
		ErrInvalidArgument, ErrNotFound, ErrNotADirectory, ErrIsADirectory,
		ErrNoSpace, ErrTruncated, ErrUnsupportedKind, ErrUnknownSignature,
		ErrNoSubscriber, ErrDuplicateID,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
