// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config loads and validates the JSON configuration for a VSD
// distributor process: compile the schema on each Validate call, validate the raw
// document against it before ever unmarshaling into a typed struct.
// Every error is returned to the caller; a process wiring a library
// should decide for itself whether a bad config file is fatal.
package config

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// NatsConfig configures the NATS transport adapter.
type NatsConfig struct {
	Address              string  `json:"address"`
	Username             string  `json:"username"`
	Password             string  `json:"password"`
	CredsFilePath        string  `json:"creds-file-path"`
	Subject              string  `json:"subject"`
	PublishRatePerSecond float64 `json:"publish-rate-per-second"`
}

// LineProtocolBridgeConfig configures the legacy line-protocol ingestion bridge.
type LineProtocolBridgeConfig struct {
	Enabled   bool   `json:"enabled"`
	Precision string `json:"precision"`
}

// HTTPDebugAPIConfig configures the read-only inspection API.
type HTTPDebugAPIConfig struct {
	Enabled bool   `json:"enabled"`
	Address string `json:"address"`
}

// MetricsConfig configures the Prometheus exposition endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Address string `json:"address"`
}

// HeartbeatConfig configures the periodic republish scheduler
// (internal/taskmanager): a background job that republishes a fixed
// set of roots on a fixed interval, independent of whatever value
// changes a caller makes in between.
type HeartbeatConfig struct {
	Enabled  bool     `json:"enabled"`
	Interval string   `json:"interval"`
	Roots    []string `json:"roots"`
}

// Config is the fully parsed, schema-validated process configuration.
type Config struct {
	Specification       string                   `json:"specification"`
	Nats                NatsConfig               `json:"nats"`
	LineProtocolBridge  LineProtocolBridgeConfig `json:"line-protocol-bridge"`
	HTTPDebugAPI        HTTPDebugAPIConfig       `json:"http-debug-api"`
	Metrics             MetricsConfig            `json:"metrics"`
	Heartbeat           HeartbeatConfig          `json:"heartbeat"`
	LogLevel            string                   `json:"loglevel"`
}

// Validate checks instance against the package's compiled JSON Schema.
func Validate(instance json.RawMessage) error {
	sch, err := jsonschema.CompileString("vsd-config.json", schema)
	if err != nil {
		return fmt.Errorf("compiling config schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(instance, &v); err != nil {
		return fmt.Errorf("config is not valid JSON: %w", err)
	}

	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("config failed schema validation: %w", err)
	}
	return nil
}

// Load validates instance and unmarshals it into a Config.
func Load(instance json.RawMessage) (*Config, error) {
	if err := Validate(instance); err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(instance, &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}
