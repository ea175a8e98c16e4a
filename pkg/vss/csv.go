// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package vss loads a signal tree from the CSV specification format:
// one signal per line, most-derived path component last, parent
// branches already present by the time a leaf's line is reached.
//
// Load collects a *LineError per bad line and keeps going, returning
// every error joined together. A CSV file with one bad signal still
// loads the rest.
package vss

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signaltree/vsd-core/internal/tree"
)

// Column order: path, id, elem_kind, data_kind, unit, min, max,
// description, allowed_values, sensor, actuator. The trailing sensor
// and actuator columns are read for line-shape compatibility but carry
// no meaning in this tree: VSS signal direction is already captured by
// elem_kind (sensor vs. actuator).
const numColumns = 11

// LineError names the 1-based source line a signal could not be
// created from, and why.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("vss: line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Load reads every line of r as one CSV-encoded signal and adds it to
// ctx. A line naming the context root itself updates the root's id and
// description rather than adding a child. Load returns errors.Join of
// every line's LineError; a nil return means every line loaded. ctx
// must not yet be Finalized.
func Load(ctx *tree.Context, r io.Reader) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var errs []error
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			errs = append(errs, &LineError{Line: line, Err: err})
			continue
		}
		if len(record) == 0 {
			continue
		}
		if err := loadRecord(ctx, record); err != nil {
			errs = append(errs, &LineError{Line: line, Err: err})
		}
	}
	return errors.Join(errs...)
}

func loadRecord(ctx *tree.Context, record []string) error {
	if len(record) != numColumns {
		return fmt.Errorf("expected %d columns, got %d", numColumns, len(record))
	}
	path := record[0]
	rawID := record[1]
	rawElemKind := record[2]
	rawDataKind := record[3]
	unit := record[4]
	rawMin := record[5]
	rawMax := record[6]
	description := record[7]
	rawAllowed := record[8]

	id64, err := strconv.ParseUint(rawID, 0, 32)
	if err != nil {
		return fmt.Errorf("parsing id %q: %w", rawID, err)
	}
	id := uint32(id64)

	elemKind, ok := tree.ElementKindFromString(rawElemKind)
	if !ok {
		return fmt.Errorf("unknown elem_kind %q", rawElemKind)
	}

	parentPath, name := splitPath(path)
	if parentPath == "" && name == ctx.Root().Name() {
		if elemKind != tree.ElementBranch {
			return fmt.Errorf("root signal %q must be a branch, got %q", name, rawElemKind)
		}
		return ctx.DescribeRoot(id, description)
	}
	parent, err := resolveParent(ctx, parentPath)
	if err != nil {
		return err
	}

	if elemKind == tree.ElementBranch {
		_, err := ctx.AddBranch(parent, name, id)
		return err
	}

	dataKind, ok := tree.DataKindFromString(rawDataKind)
	if !ok {
		return fmt.Errorf("unknown data_kind %q", rawDataKind)
	}

	spec := tree.LeafSpec{Unit: unit, Description: description}
	if rawAllowed != "" {
		spec.AllowedValues = strings.FieldsFunc(rawAllowed, func(r rune) bool {
			return r == ' ' || r == '/'
		})
	}
	if dataKind != tree.KindString && dataKind != tree.KindStream && dataKind != tree.KindNone {
		if rawMin != "" {
			min, err := parseScalar(dataKind, rawMin)
			if err != nil {
				return fmt.Errorf("parsing min %q: %w", rawMin, err)
			}
			spec.HasMin, spec.Min = true, min
		}
		if rawMax != "" {
			max, err := parseScalar(dataKind, rawMax)
			if err != nil {
				return fmt.Errorf("parsing max %q: %w", rawMax, err)
			}
			spec.HasMax, spec.Max = true, max
		}
	}

	_, err = ctx.AddLeaf(parent, name, id, elemKind, dataKind, spec)
	return err
}

func splitPath(path string) (parent string, name string) {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}

func resolveParent(ctx *tree.Context, parentPath string) (tree.Signal, error) {
	if parentPath == "" {
		return ctx.Root(), nil
	}
	parent, err := ctx.LookupByPath(parentPath)
	if err != nil {
		return tree.Signal{}, fmt.Errorf("parent %q: %w", parentPath, err)
	}
	if !parent.IsBranch() {
		return tree.Signal{}, fmt.Errorf("parent %q is not a branch", parentPath)
	}
	return parent, nil
}

func parseScalar(kind tree.DataKind, literal string) (tree.Scalar, error) {
	switch kind {
	case tree.KindInt8:
		v, err := strconv.ParseInt(literal, 10, 8)
		return tree.ScalarI8(int8(v)), err
	case tree.KindUint8:
		v, err := strconv.ParseUint(literal, 10, 8)
		return tree.ScalarU8(uint8(v)), err
	case tree.KindInt16:
		v, err := strconv.ParseInt(literal, 10, 16)
		return tree.ScalarI16(int16(v)), err
	case tree.KindUint16:
		v, err := strconv.ParseUint(literal, 10, 16)
		return tree.ScalarU16(uint16(v)), err
	case tree.KindInt32:
		v, err := strconv.ParseInt(literal, 10, 32)
		return tree.ScalarI32(int32(v)), err
	case tree.KindUint32:
		v, err := strconv.ParseUint(literal, 10, 32)
		return tree.ScalarU32(uint32(v)), err
	case tree.KindFloat32:
		v, err := strconv.ParseFloat(literal, 32)
		return tree.ScalarF32(float32(v)), err
	case tree.KindFloat64:
		v, err := strconv.ParseFloat(literal, 64)
		return tree.ScalarF64(v), err
	case tree.KindBool:
		b := literal == "1" || literal == "t" || literal == "T"
		return tree.ScalarBool(b), nil
	default:
		return tree.Scalar{}, fmt.Errorf("data kind %s has no scalar min/max", kind)
	}
}
