// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bus

import (
	"errors"
	"testing"

	"github.com/signaltree/vsd-core/internal/tree"
)

func buildVehicle(t *testing.T) *tree.Context {
	t.Helper()
	ctx := tree.NewContext("Vehicle")
	root := ctx.Root()

	drivetrain, err := ctx.AddBranch(root, "Drivetrain", 200)
	if err != nil {
		t.Fatalf("AddBranch Drivetrain: %v", err)
	}
	if _, err := ctx.AddLeaf(drivetrain, "EngineSpeed", 201, tree.ElementSensor, tree.KindUint32, tree.LeafSpec{}); err != nil {
		t.Fatalf("AddLeaf EngineSpeed: %v", err)
	}
	cabin, err := ctx.AddBranch(root, "Cabin", 300)
	if err != nil {
		t.Fatalf("AddBranch Cabin: %v", err)
	}
	if _, err := ctx.AddLeaf(cabin, "Temperature", 301, tree.ElementSensor, tree.KindFloat32, tree.LeafSpec{}); err != nil {
		t.Fatalf("AddLeaf Temperature: %v", err)
	}

	ctx.Finalize()
	return ctx
}

// Ancestor fan-out fires once per ancestor; non-ancestors stay silent.
func TestDispatchAncestorFanOut(t *testing.T) {
	ctx := buildVehicle(t)
	b := New()

	root := ctx.Root()
	drivetrain, _ := ctx.LookupByPath("Vehicle.Drivetrain")
	engineSpeed, _ := ctx.LookupByPath("Vehicle.Drivetrain.EngineSpeed")
	cabin, _ := ctx.LookupByPath("Vehicle.Cabin")

	var rootFired, drivetrainFired, cabinFired int
	b.Subscribe(root, func(touched []tree.Signal) { rootFired++ })
	b.Subscribe(drivetrain, func(touched []tree.Signal) { drivetrainFired++ })
	b.Subscribe(cabin, func(touched []tree.Signal) { cabinFired++ })

	b.Dispatch(engineSpeed, []tree.Signal{engineSpeed})

	if rootFired != 1 {
		t.Errorf("root fired %d times, want 1", rootFired)
	}
	if drivetrainFired != 1 {
		t.Errorf("drivetrain (ancestor) fired %d times, want 1", drivetrainFired)
	}
	if cabinFired != 0 {
		t.Errorf("cabin (non-ancestor) fired %d times, want 0", cabinFired)
	}
}

// Subscribers fire in insertion order, and unsubscribe removes only the
// named registration.
func TestDispatchOrderingAndUnsubscribe(t *testing.T) {
	ctx := buildVehicle(t)
	b := New()
	drivetrain, _ := ctx.LookupByPath("Vehicle.Drivetrain")

	var order []string
	s1 := b.Subscribe(drivetrain, func(touched []tree.Signal) { order = append(order, "c1") })
	b.Subscribe(drivetrain, func(touched []tree.Signal) { order = append(order, "c2") })

	b.Dispatch(drivetrain, nil)
	if got := len(order); got != 2 || order[0] != "c1" || order[1] != "c2" {
		t.Fatalf("dispatch order = %v, want [c1 c2]", order)
	}

	if err := s1.Unsubscribe(); err != nil {
		t.Fatalf("Unsubscribe: %v", err)
	}
	order = nil
	b.Dispatch(drivetrain, nil)
	if got := len(order); got != 1 || order[0] != "c2" {
		t.Fatalf("dispatch order after unsubscribe = %v, want [c2]", order)
	}

	if err := s1.Unsubscribe(); !errors.Is(err, ErrNoSubscriber) {
		t.Errorf("second Unsubscribe: err = %v, want ErrNoSubscriber", err)
	}
}

// Callback sees the full touched-leaves list, unmodified, regardless
// of which ancestor it is registered on.
func TestDispatchPassesFullTouchedList(t *testing.T) {
	ctx := buildVehicle(t)
	b := New()
	root := ctx.Root()
	drivetrain, _ := ctx.LookupByPath("Vehicle.Drivetrain")
	engineSpeed, _ := ctx.LookupByPath("Vehicle.Drivetrain.EngineSpeed")

	var seenAtRoot []tree.Signal
	b.Subscribe(root, func(touched []tree.Signal) { seenAtRoot = touched })

	want := []tree.Signal{engineSpeed}
	b.Dispatch(drivetrain, want)

	if len(seenAtRoot) != 1 || !seenAtRoot[0].Equal(engineSpeed) {
		t.Errorf("root saw %v, want %v", seenAtRoot, want)
	}
}
