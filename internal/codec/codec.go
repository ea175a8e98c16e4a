// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package codec implements the deterministic binary wire format: a
// subtree's current values are serialized as a flat, self-delimiting
// sequence of per-leaf records, in pre-order over the canonical child
// order shared by every peer's specification. Branches contribute no
// bytes; both encoder and decoder reconstruct them implicitly because
// both sides agree on the tree's shape.
//
// Every multi-byte field on the wire is little-endian
// (encoding/binary.LittleEndian), including scalar values, so payloads
// are portable between peers of different endianness. A string's length
// prefix is 2 bytes on both the encode and decode side.
package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/signaltree/vsd-core/internal/tree"
)

// MaxPayload is the largest payload Publish will ever hand to a
// transport: 65,280 bytes.
const MaxPayload = 65280

// Encode serializes every leaf under root into buf, in pre-order, and
// returns the number of bytes written. If buf is too small to hold the
// whole subtree, Encode returns tree.ErrNoSpace and leaves buf's
// contents undefined past the last complete record; no partial record
// is ever started.
func Encode(root tree.Signal, buf []byte) (int, error) {
	n, err := encodeInto(root, buf, 0)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func encodeInto(s tree.Signal, buf []byte, n int) (int, error) {
	if s.IsBranch() {
		for _, child := range s.Children() {
			var err error
			n, err = encodeInto(child, buf, n)
			if err != nil {
				return n, err
			}
		}
		return n, nil
	}
	return encodeLeaf(s, buf, n)
}

func encodeLeaf(s tree.Signal, buf []byte, n int) (int, error) {
	size, err := wireValueSize(s)
	if err != nil {
		return n, err
	}
	need := 4 + size
	if len(buf)-n < need {
		return n, tree.ErrNoSpace
	}

	binary.LittleEndian.PutUint32(buf[n:], s.Signature())
	n += 4

	v, err := s.Value()
	if err != nil {
		return n, err
	}
	n, err = putScalar(buf, n, s.DataKind(), v)
	return n, err
}

// wireValueSize returns the byte count encodeLeaf will write for s's
// current value, including the 2-byte length prefix for strings.
func wireValueSize(s tree.Signal) (int, error) {
	k := s.DataKind()
	if fixed := fixedSize(k); fixed >= 0 {
		return fixed, nil
	}
	if k == tree.KindString {
		v, err := s.Value()
		if err != nil {
			return 0, err
		}
		return 2 + len(v.Str), nil
	}
	return 0, fmt.Errorf("%w: %s", tree.ErrUnsupportedKind, k)
}

func fixedSize(k tree.DataKind) int {
	switch k {
	case tree.KindInt8, tree.KindUint8, tree.KindBool:
		return 1
	case tree.KindInt16, tree.KindUint16:
		return 2
	case tree.KindInt32, tree.KindUint32, tree.KindFloat32:
		return 4
	case tree.KindFloat64:
		return 8
	default:
		return -1
	}
}

func putScalar(buf []byte, n int, kind tree.DataKind, v tree.Scalar) (int, error) {
	switch kind {
	case tree.KindInt8, tree.KindUint8, tree.KindBool:
		buf[n] = byte(v.I64)
		return n + 1, nil
	case tree.KindInt16, tree.KindUint16:
		binary.LittleEndian.PutUint16(buf[n:], uint16(v.I64))
		return n + 2, nil
	case tree.KindInt32, tree.KindUint32:
		binary.LittleEndian.PutUint32(buf[n:], uint32(v.I64))
		return n + 4, nil
	case tree.KindFloat32:
		binary.LittleEndian.PutUint32(buf[n:], math.Float32bits(v.F32))
		return n + 4, nil
	case tree.KindFloat64:
		binary.LittleEndian.PutUint64(buf[n:], math.Float64bits(v.F64))
		return n + 8, nil
	case tree.KindString:
		binary.LittleEndian.PutUint16(buf[n:], uint16(len(v.Str)))
		n += 2
		n += copy(buf[n:], v.Str)
		return n, nil
	default:
		return n, fmt.Errorf("%w: %s", tree.ErrUnsupportedKind, kind)
	}
}

// Decode walks payload as a sequence of per-leaf records and writes each
// resolved leaf's value in place, returning the list of touched leaves
// in wire order (which is pre-order, since that's how Encode produced
// it). An unknown signature or any other malformed-payload
// condition is a recoverable error, not a process abort.
func Decode(ctx *tree.Context, payload []byte) ([]tree.Signal, error) {
	var touched []tree.Signal
	n := 0
	for n < len(payload) {
		if len(payload)-n < 4 {
			return touched, tree.ErrTruncated
		}
		sig := binary.LittleEndian.Uint32(payload[n:])
		n += 4

		leaf, err := ctx.LookupBySignature(sig)
		if err != nil {
			return touched, err
		}
		if leaf.IsBranch() {
			return touched, fmt.Errorf("%w: signature %#x names a branch", tree.ErrUnsupportedKind, sig)
		}

		var v tree.Scalar
		v, n, err = readScalar(payload, n, leaf.DataKind())
		if err != nil {
			return touched, err
		}
		if err := leaf.SetScalar(v); err != nil {
			return touched, err
		}
		touched = append(touched, leaf)
	}
	return touched, nil
}

func readScalar(payload []byte, n int, kind tree.DataKind) (tree.Scalar, int, error) {
	if fixed := fixedSize(kind); fixed >= 0 {
		if len(payload)-n < fixed {
			return tree.Scalar{}, n, tree.ErrTruncated
		}
		v := readFixed(payload[n:], kind)
		return v, n + fixed, nil
	}
	if kind == tree.KindString {
		if len(payload)-n < 2 {
			return tree.Scalar{}, n, tree.ErrTruncated
		}
		l := int(binary.LittleEndian.Uint16(payload[n:]))
		n += 2
		if len(payload)-n < l {
			return tree.Scalar{}, n, tree.ErrTruncated
		}
		s := tree.ScalarString(string(payload[n : n+l]))
		return s, n + l, nil
	}
	return tree.Scalar{}, n, fmt.Errorf("%w: %s", tree.ErrUnsupportedKind, kind)
}

func readFixed(b []byte, kind tree.DataKind) tree.Scalar {
	switch kind {
	case tree.KindInt8:
		return tree.ScalarI8(int8(b[0]))
	case tree.KindUint8:
		return tree.ScalarU8(b[0])
	case tree.KindBool:
		return tree.ScalarBool(b[0] != 0)
	case tree.KindInt16:
		return tree.ScalarI16(int16(binary.LittleEndian.Uint16(b)))
	case tree.KindUint16:
		return tree.ScalarU16(binary.LittleEndian.Uint16(b))
	case tree.KindInt32:
		return tree.ScalarI32(int32(binary.LittleEndian.Uint32(b)))
	case tree.KindUint32:
		return tree.ScalarU32(binary.LittleEndian.Uint32(b))
	case tree.KindFloat32:
		return tree.ScalarF32(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	case tree.KindFloat64:
		return tree.ScalarF64(math.Float64frombits(binary.LittleEndian.Uint64(b)))
	default:
		return tree.Scalar{}
	}
}
