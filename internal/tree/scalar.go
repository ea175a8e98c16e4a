// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tree

// Scalar is a self-describing tagged value used to pass a typed value
// across the package boundary: as a Min/Max in LeafSpec, as the result
// of Signal.Value, or as the parsed result of a convert-setter.
// It intentionally does not carry a *Context or a Signal: it is pure
// data, safe to copy and compare.
type Scalar struct {
	Kind DataKind
	I64  int64 // holds i8/u8/i16/u16/i32/u32 sign/zero-extended, bool as 0/1
	F32  float32
	F64  float64
	Str  string
}

func ScalarI8(v int8) Scalar     { return Scalar{Kind: KindInt8, I64: int64(v)} }
func ScalarU8(v uint8) Scalar    { return Scalar{Kind: KindUint8, I64: int64(v)} }
func ScalarI16(v int16) Scalar   { return Scalar{Kind: KindInt16, I64: int64(v)} }
func ScalarU16(v uint16) Scalar  { return Scalar{Kind: KindUint16, I64: int64(v)} }
func ScalarI32(v int32) Scalar   { return Scalar{Kind: KindInt32, I64: int64(v)} }
func ScalarU32(v uint32) Scalar  { return Scalar{Kind: KindUint32, I64: int64(v)} }
func ScalarF32(v float32) Scalar { return Scalar{Kind: KindFloat32, F32: v} }
func ScalarF64(v float64) Scalar { return Scalar{Kind: KindFloat64, F64: v} }
func ScalarBool(v bool) Scalar {
	var i int64
	if v {
		i = 1
	}
	return Scalar{Kind: KindBool, I64: i}
}
func ScalarString(v string) Scalar { return Scalar{Kind: KindString, Str: v} }

// Bool interprets I64 as a boolean (non-zero is true).
func (s Scalar) Bool() bool { return s.I64 != 0 }

func (s Scalar) toValue(dataKind DataKind) value {
	var v value
	switch dataKind {
	case KindFloat32:
		v.f32 = s.F32
	case KindFloat64:
		v.f64 = s.F64
	case KindString:
		v.setString(s.Str)
	default:
		v.i64 = s.I64
	}
	return v
}

func scalarFromValue(dataKind DataKind, v value) Scalar {
	switch dataKind {
	case KindFloat32:
		return Scalar{Kind: dataKind, F32: v.f32}
	case KindFloat64:
		return Scalar{Kind: dataKind, F64: v.f64}
	case KindString:
		return Scalar{Kind: dataKind, Str: v.stringValue()}
	default:
		return Scalar{Kind: dataKind, I64: v.i64}
	}
}

// Value returns the leaf's current value as a Scalar; a branch carries
// no value and fails with ErrIsADirectory.
func (s Signal) Value() (Scalar, error) {
	if s.IsBranch() {
		return Scalar{}, errIsADirectoryf(s.Name())
	}
	r := s.rec()
	return scalarFromValue(r.dataKind, r.val), nil
}

// Min returns the declared minimum, if any.
func (s Signal) Min() (Scalar, bool) {
	r := s.rec()
	if !r.hasMin {
		return Scalar{}, false
	}
	return scalarFromValue(r.dataKind, r.min), true
}

// Max returns the declared maximum, if any.
func (s Signal) Max() (Scalar, bool) {
	r := s.rec()
	if !r.hasMax {
		return Scalar{}, false
	}
	return scalarFromValue(r.dataKind, r.max), true
}
