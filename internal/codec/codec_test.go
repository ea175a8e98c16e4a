// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package codec

import (
	"errors"
	"testing"

	"github.com/signaltree/vsd-core/internal/tree"
)

func buildVehicle(t *testing.T) *tree.Context {
	t.Helper()
	ctx := tree.NewContext("Vehicle")
	root := ctx.Root()

	if _, err := ctx.AddLeaf(root, "Speed", 101, tree.ElementSensor, tree.KindUint16, tree.LeafSpec{}); err != nil {
		t.Fatalf("AddLeaf Speed: %v", err)
	}
	drivetrain, err := ctx.AddBranch(root, "Drivetrain", 200)
	if err != nil {
		t.Fatalf("AddBranch Drivetrain: %v", err)
	}
	if _, err := ctx.AddLeaf(drivetrain, "EngineSpeed", 201, tree.ElementSensor, tree.KindUint32, tree.LeafSpec{}); err != nil {
		t.Fatalf("AddLeaf EngineSpeed: %v", err)
	}
	if _, err := ctx.AddLeaf(root, "Name", 102, tree.ElementAttribute, tree.KindString, tree.LeafSpec{}); err != nil {
		t.Fatalf("AddLeaf Name: %v", err)
	}

	ctx.Finalize()
	return ctx
}

// Encode then decode into a fresh, identically-built peer reproduces
// every value written.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	a := buildVehicle(t)
	b := buildVehicle(t)

	if err := a.SetUint16ByPath("Vehicle.Speed", 123); err != nil {
		t.Fatalf("SetUint16ByPath: %v", err)
	}
	if err := a.SetUint32ByPath("Vehicle.Drivetrain.EngineSpeed", 4500); err != nil {
		t.Fatalf("SetUint32ByPath: %v", err)
	}
	if err := a.SetStringByPath("Vehicle.Name", "roadster"); err != nil {
		t.Fatalf("SetStringByPath: %v", err)
	}

	root, err := a.LookupByPath("Vehicle")
	if err != nil {
		t.Fatalf("lookup root: %v", err)
	}

	buf := make([]byte, MaxPayload)
	n, err := Encode(root, buf)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	touched, err := Decode(b, buf[:n])
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(touched) != 3 {
		t.Fatalf("touched = %d leaves, want 3", len(touched))
	}

	speed, err := b.LookupByPath("Vehicle.Speed")
	if err != nil {
		t.Fatalf("lookup Speed: %v", err)
	}
	v, err := speed.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v.I64 != 123 {
		t.Errorf("Speed = %d, want 123", v.I64)
	}

	name, err := b.LookupByPath("Vehicle.Name")
	if err != nil {
		t.Fatalf("lookup Name: %v", err)
	}
	nv, err := name.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if nv.Str != "roadster" {
		t.Errorf("Name = %q, want roadster", nv.Str)
	}
}

// Encoding into a buffer too small to hold the subtree fails with
// ErrNoSpace and never partially mutates the caller's buffer boundary.
func TestEncodeNoSpace(t *testing.T) {
	a := buildVehicle(t)
	root, err := a.LookupByPath("Vehicle")
	if err != nil {
		t.Fatalf("lookup root: %v", err)
	}
	buf := make([]byte, 3) // smaller than a single record's signature field
	if _, err := Encode(root, buf); !errors.Is(err, tree.ErrNoSpace) {
		t.Errorf("Encode into undersized buffer: err = %v, want ErrNoSpace", err)
	}
}

// Decode of a truncated payload fails with ErrTruncated rather than
// reading past the slice.
func TestDecodeTruncated(t *testing.T) {
	a := buildVehicle(t)
	if err := a.SetUint16ByPath("Vehicle.Speed", 7); err != nil {
		t.Fatalf("SetUint16ByPath: %v", err)
	}
	root, err := a.LookupByPath("Vehicle")
	if err != nil {
		t.Fatalf("lookup root: %v", err)
	}
	buf := make([]byte, MaxPayload)
	n, err := Encode(root, buf)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	b := buildVehicle(t)
	if _, err := Decode(b, buf[:n-1]); !errors.Is(err, tree.ErrTruncated) {
		t.Errorf("Decode truncated payload: err = %v, want ErrTruncated", err)
	}
}

// Decoding a signature no peer declares is recoverable, not a process abort.
func TestDecodeUnknownSignature(t *testing.T) {
	b := buildVehicle(t)
	payload := []byte{0xef, 0xbe, 0xad, 0xde} // 0xdeadbeef, little-endian
	if _, err := Decode(b, payload); !errors.Is(err, tree.ErrUnknownSignature) {
		t.Errorf("Decode unknown signature: err = %v, want ErrUnknownSignature", err)
	}
}

// Re-encoding an unmodified subtree reproduces byte-identical output
// (idempotence of encode over an unchanged tree).
func TestEncodeIdempotent(t *testing.T) {
	a := buildVehicle(t)
	root, err := a.LookupByPath("Vehicle")
	if err != nil {
		t.Fatalf("lookup root: %v", err)
	}

	buf1 := make([]byte, MaxPayload)
	n1, err := Encode(root, buf1)
	if err != nil {
		t.Fatalf("Encode #1: %v", err)
	}
	buf2 := make([]byte, MaxPayload)
	n2, err := Encode(root, buf2)
	if err != nil {
		t.Fatalf("Encode #2: %v", err)
	}
	if n1 != n2 {
		t.Fatalf("n1 = %d, n2 = %d", n1, n2)
	}
	for i := 0; i < n1; i++ {
		if buf1[i] != buf2[i] {
			t.Fatalf("byte %d differs: %x vs %x", i, buf1[i], buf2[i])
		}
	}
}
