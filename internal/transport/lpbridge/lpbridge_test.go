// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lpbridge

import (
	"testing"

	"github.com/influxdata/line-protocol/v2/lineprotocol"

	"github.com/signaltree/vsd-core/internal/tree"
)

func buildVehicle(t *testing.T) *tree.Context {
	t.Helper()
	ctx := tree.NewContext("Vehicle")
	root := ctx.Root()
	if _, err := ctx.AddLeaf(root, "Speed", 101, tree.ElementSensor, tree.KindUint16, tree.LeafSpec{}); err != nil {
		t.Fatalf("AddLeaf Speed: %v", err)
	}
	ctx.Finalize()
	return ctx
}

// A known measurement's "value" field is written via the
// convert-setter; an unknown measurement is skipped, not fatal.
func TestDecodeMapsKnownField(t *testing.T) {
	ctx := buildVehicle(t)

	batch := []byte("Vehicle.Speed value=42i 1700000000000000000\n" +
		"Vehicle.Unknown value=7i 1700000000000000000\n")
	dec := lineprotocol.NewDecoderWithBytes(batch)

	touched, errs := Decode(ctx, dec)
	if len(touched) != 1 {
		t.Fatalf("touched = %d signals, want 1 (errs=%v)", len(touched), errs)
	}
	if len(errs) != 0 {
		t.Fatalf("errs = %v, want none (the unknown measurement is skipped)", errs)
	}

	speed, err := ctx.LookupByPath("Vehicle.Speed")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	v, err := speed.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v.I64 != 42 {
		t.Errorf("Speed = %d, want 42", v.I64)
	}
}
