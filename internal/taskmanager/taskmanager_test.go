// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskmanager

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	vsdcore "github.com/signaltree/vsd-core"
)

type countingTransport struct {
	n atomic.Int32
}

func (t *countingTransport) Transmit(tag uint32, payload []byte) error {
	t.n.Add(1)
	return nil
}

func buildContext(t *testing.T) *vsdcore.Context {
	t.Helper()
	ctx := vsdcore.NewContext("Vehicle")
	speed, err := ctx.AddLeaf(ctx.Root(), "Speed", 101, vsdcore.ElementSensor, vsdcore.KindUint16, vsdcore.LeafSpec{})
	require.NoError(t, err)
	ctx.Finalize()
	require.NoError(t, speed.SetUint16(10))
	return ctx
}

func TestRegisterHeartbeatRejectsNonPositiveInterval(t *testing.T) {
	m, err := New()
	require.NoError(t, err)
	ctx := buildContext(t)
	dist := vsdcore.NewDistributor(ctx, &countingTransport{})
	err = m.RegisterHeartbeat(dist, []vsdcore.Signal{ctx.Root()}, 0)
	require.Error(t, err)
}

func TestHeartbeatRepublishes(t *testing.T) {
	m, err := New()
	require.NoError(t, err)
	ctx := buildContext(t)
	transport := &countingTransport{}
	dist := vsdcore.NewDistributor(ctx, transport)

	speed, err := ctx.LookupByPath("Vehicle.Speed")
	require.NoError(t, err)
	require.NoError(t, m.RegisterHeartbeat(dist, []vsdcore.Signal{speed}, 10*time.Millisecond))
	m.Start()
	defer m.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for transport.n.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	require.GreaterOrEqual(t, transport.n.Load(), int32(2))
}
