// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadValid(t *testing.T) {
	raw := []byte(`{
		"specification": "./vss.csv",
		"nats": {"address": "nats://localhost:4222", "subject": "vsd.vehicle1"},
		"metrics": {"enabled": true, "address": ":9100"}
	}`)
	cfg, err := Load(raw)
	require.NoError(t, err)
	require.Equal(t, "./vss.csv", cfg.Specification)
	require.Equal(t, "nats://localhost:4222", cfg.Nats.Address)
	require.True(t, cfg.Metrics.Enabled)
}

func TestLoadHeartbeat(t *testing.T) {
	raw := []byte(`{
		"specification": "./vss.csv",
		"nats": {"address": "nats://localhost:4222"},
		"heartbeat": {"enabled": true, "interval": "5s", "roots": ["Vehicle.Speed"]}
	}`)
	cfg, err := Load(raw)
	require.NoError(t, err)
	require.True(t, cfg.Heartbeat.Enabled)
	require.Equal(t, "5s", cfg.Heartbeat.Interval)
	require.Equal(t, []string{"Vehicle.Speed"}, cfg.Heartbeat.Roots)
}

func TestLoadMissingRequiredField(t *testing.T) {
	raw := []byte(`{"nats": {"address": "nats://localhost:4222"}}`)
	_, err := Load(raw)
	require.Error(t, err, "missing \"specification\"")
}

func TestLoadMalformedJSON(t *testing.T) {
	_, err := Load([]byte(`{not json`))
	require.Error(t, err, "malformed JSON")
}

func TestLoadNatsMissingAddress(t *testing.T) {
	raw := []byte(`{"specification": "./vss.csv", "nats": {"username": "u"}}`)
	_, err := Load(raw)
	require.Error(t, err, "nats config missing \"address\"")
}
