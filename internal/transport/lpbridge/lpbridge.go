// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lpbridge decodes InfluxDB line-protocol batches, the format
// some legacy telemetry producers emit instead of speaking the native
// binary codec, and writes each field into the matching signal via the
// tree's convert-setter. The decode loop iterates measurements, then
// tags, then fields, writing as it goes rather than building an
// intermediate representation first.
//
// The bridge never calls Publish itself. Decoding legacy input into
// tree values and publishing an atomic snapshot are separate concerns;
// a caller composes them, typically: decode a batch, then Publish the
// branch the batch affected.
package lpbridge

import (
	"fmt"
	"time"

	"github.com/influxdata/line-protocol/v2/lineprotocol"

	"github.com/signaltree/vsd-core/internal/tree"
)

var zeroTime time.Time

// FieldError describes one field in the batch that could not be
// written, keeping the measurement name and field key for diagnosis.
type FieldError struct {
	Measurement string
	Field       string
	Err         error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("lpbridge: %s %s: %v", e.Measurement, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Decode reads every line in dec. Each line's measurement name is
// resolved against ctx as a dotted signal path; a measurement naming no
// signal is skipped (legacy producers commonly emit a superset of
// fields only some of which this tree declares). Within a resolved
// measurement, only a field named "value" is accepted, one value per
// measurement, and is written through SetConvert using the field's
// literal text. Decode collects per-field errors and keeps going, so
// one bad line does not abort the batch; it returns the resolved
// signals it successfully wrote, in the order they were decoded.
func Decode(ctx *tree.Context, dec *lineprotocol.Decoder) ([]tree.Signal, []error) {
	var touched []tree.Signal
	var errs []error

	for dec.Next() {
		measurement, err := dec.Measurement()
		if err != nil {
			errs = append(errs, fmt.Errorf("lpbridge: reading measurement: %w", err))
			continue
		}
		path := string(measurement)

		var sig tree.Signal
		known := false
		if s, err := ctx.LookupByPath(path); err == nil {
			sig, known = s, true
		}

		for {
			key, _, err := dec.NextTag()
			if err != nil {
				errs = append(errs, fmt.Errorf("lpbridge: %s: reading tag: %w", path, err))
				break
			}
			if key == nil {
				break
			}
			// Tags are not addressed to any signal; the bridge only
			// maps measurement name and the "value" field.
		}

		for {
			key, val, err := dec.NextField()
			if err != nil {
				errs = append(errs, fmt.Errorf("lpbridge: %s: reading field: %w", path, err))
				break
			}
			if key == nil {
				break
			}
			if string(key) != "value" {
				continue
			}
			if !known {
				continue
			}
			if err := sig.SetConvert(literalOf(val)); err != nil {
				errs = append(errs, &FieldError{Measurement: path, Field: "value", Err: err})
				continue
			}
			touched = append(touched, sig)
		}

		if _, err := dec.Time(lineprotocol.Nanosecond, zeroTime); err != nil {
			errs = append(errs, fmt.Errorf("lpbridge: %s: reading timestamp: %w", path, err))
		}
	}

	return touched, errs
}

func literalOf(v lineprotocol.Value) string {
	switch v.Kind() {
	case lineprotocol.Float:
		return fmt.Sprintf("%g", v.FloatV())
	case lineprotocol.Int:
		return fmt.Sprintf("%d", v.IntV())
	case lineprotocol.Uint:
		return fmt.Sprintf("%d", v.UintV())
	case lineprotocol.Bool:
		if v.BoolV() {
			return "t"
		}
		return "0"
	case lineprotocol.String:
		return v.StringV()
	default:
		return ""
	}
}
