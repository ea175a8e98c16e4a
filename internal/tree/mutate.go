// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tree

import (
	"strconv"
)

// checkLeafKind is the common precondition every typed setter enforces:
// the target must be a leaf of exactly the setter's own data kind.
func (s Signal) checkLeafKind(want DataKind) error {
	if s.IsBranch() {
		return errIsADirectoryf(s.Name())
	}
	if s.DataKind() != want {
		return errInvalidArgumentf("signal %q has data kind %s, not %s", s.Name(), s.DataKind(), want)
	}
	return nil
}

// SetInt8 sets an int8 leaf's value. Fails with ErrIsADirectory on a
// branch and ErrInvalidArgument on a data kind mismatch.
func (s Signal) SetInt8(v int8) error {
	if err := s.checkLeafKind(KindInt8); err != nil {
		return err
	}
	s.rec().val.i64 = int64(v)
	return nil
}

func (s Signal) SetUint8(v uint8) error {
	if err := s.checkLeafKind(KindUint8); err != nil {
		return err
	}
	s.rec().val.i64 = int64(v)
	return nil
}

func (s Signal) SetInt16(v int16) error {
	if err := s.checkLeafKind(KindInt16); err != nil {
		return err
	}
	s.rec().val.i64 = int64(v)
	return nil
}

func (s Signal) SetUint16(v uint16) error {
	if err := s.checkLeafKind(KindUint16); err != nil {
		return err
	}
	s.rec().val.i64 = int64(v)
	return nil
}

func (s Signal) SetInt32(v int32) error {
	if err := s.checkLeafKind(KindInt32); err != nil {
		return err
	}
	s.rec().val.i64 = int64(v)
	return nil
}

func (s Signal) SetUint32(v uint32) error {
	if err := s.checkLeafKind(KindUint32); err != nil {
		return err
	}
	s.rec().val.i64 = int64(v)
	return nil
}

func (s Signal) SetFloat32(v float32) error {
	if err := s.checkLeafKind(KindFloat32); err != nil {
		return err
	}
	s.rec().val.f32 = v
	return nil
}

func (s Signal) SetFloat64(v float64) error {
	if err := s.checkLeafKind(KindFloat64); err != nil {
		return err
	}
	s.rec().val.f64 = v
	return nil
}

func (s Signal) SetBool(v bool) error {
	if err := s.checkLeafKind(KindBool); err != nil {
		return err
	}
	var i int64
	if v {
		i = 1
	}
	s.rec().val.i64 = i
	return nil
}

// SetString copies data into the leaf's value cell through the growth
// policy: the buffer only grows, never shrinks.
func (s Signal) SetString(data string) error {
	if err := s.checkLeafKind(KindString); err != nil {
		return err
	}
	s.rec().val.setString(data)
	return nil
}

// SetScalar writes a Scalar whose Kind must already match the leaf's
// DataKind; it is the untyped counterpart used by the codec decoder.
func (s Signal) SetScalar(v Scalar) error {
	switch v.Kind {
	case KindInt8:
		return s.SetInt8(int8(v.I64))
	case KindUint8:
		return s.SetUint8(uint8(v.I64))
	case KindInt16:
		return s.SetInt16(int16(v.I64))
	case KindUint16:
		return s.SetUint16(uint16(v.I64))
	case KindInt32:
		return s.SetInt32(int32(v.I64))
	case KindUint32:
		return s.SetUint32(uint32(v.I64))
	case KindFloat32:
		return s.SetFloat32(v.F32)
	case KindFloat64:
		return s.SetFloat64(v.F64)
	case KindBool:
		return s.SetBool(v.Bool())
	case KindString:
		return s.SetString(v.Str)
	default:
		return errInvalidArgumentf("unsupported data kind %s", v.Kind)
	}
}

// SetConvert parses literal according to s's own DataKind and writes
// the result: integers via base-10 with sign, floats via standard
// decimal parsing, booleans as "1|t|T -> true" else false, strings
// copied verbatim.
func (s Signal) SetConvert(literal string) error {
	if s.IsBranch() {
		return errIsADirectoryf(s.Name())
	}
	switch s.DataKind() {
	case KindString:
		return s.SetString(literal)
	case KindBool:
		b := literal == "1" || literal == "t" || literal == "T"
		return s.SetBool(b)
	case KindFloat32:
		f, err := strconv.ParseFloat(literal, 32)
		if err != nil {
			return errInvalidArgumentf("parsing %q as float: %v", literal, err)
		}
		return s.SetFloat32(float32(f))
	case KindFloat64:
		f, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return errInvalidArgumentf("parsing %q as double: %v", literal, err)
		}
		return s.SetFloat64(f)
	case KindInt8, KindUint8, KindInt16, KindUint16, KindInt32, KindUint32:
		return s.setConvertInt(literal)
	default:
		return errInvalidArgumentf("data kind %s cannot be converted from string", s.DataKind())
	}
}

func (s Signal) setConvertInt(literal string) error {
	switch s.DataKind() {
	case KindInt8:
		v, err := strconv.ParseInt(literal, 10, 8)
		if err != nil {
			return errInvalidArgumentf("parsing %q as int8: %v", literal, err)
		}
		return s.SetInt8(int8(v))
	case KindUint8:
		v, err := strconv.ParseUint(literal, 10, 8)
		if err != nil {
			return errInvalidArgumentf("parsing %q as uint8: %v", literal, err)
		}
		return s.SetUint8(uint8(v))
	case KindInt16:
		v, err := strconv.ParseInt(literal, 10, 16)
		if err != nil {
			return errInvalidArgumentf("parsing %q as int16: %v", literal, err)
		}
		return s.SetInt16(int16(v))
	case KindUint16:
		v, err := strconv.ParseUint(literal, 10, 16)
		if err != nil {
			return errInvalidArgumentf("parsing %q as uint16: %v", literal, err)
		}
		return s.SetUint16(uint16(v))
	case KindInt32:
		v, err := strconv.ParseInt(literal, 10, 32)
		if err != nil {
			return errInvalidArgumentf("parsing %q as int32: %v", literal, err)
		}
		return s.SetInt32(int32(v))
	case KindUint32:
		v, err := strconv.ParseUint(literal, 10, 32)
		if err != nil {
			return errInvalidArgumentf("parsing %q as uint32: %v", literal, err)
		}
		return s.SetUint32(uint32(v))
	default:
		return errInvalidArgumentf("data kind %s is not an integer kind", s.DataKind())
	}
}

// --- by-path / by-id convenience wrappers -------------------------------
//
// Every by-signal setter above has a by-path and by-id sibling. Each
// resolves the target then delegates to the by-signal form, so the
// kind/leaf checks live in exactly one place.

func (ctx *Context) SetInt8ByPath(path string, v int8) error {
	s, err := ctx.LookupByPath(path)
	if err != nil {
		return err
	}
	return s.SetInt8(v)
}

func (ctx *Context) SetInt8ByID(id uint32, v int8) error {
	s, err := ctx.LookupByID(id)
	if err != nil {
		return err
	}
	return s.SetInt8(v)
}

func (ctx *Context) SetUint8ByPath(path string, v uint8) error {
	s, err := ctx.LookupByPath(path)
	if err != nil {
		return err
	}
	return s.SetUint8(v)
}

func (ctx *Context) SetUint8ByID(id uint32, v uint8) error {
	s, err := ctx.LookupByID(id)
	if err != nil {
		return err
	}
	return s.SetUint8(v)
}

func (ctx *Context) SetInt16ByPath(path string, v int16) error {
	s, err := ctx.LookupByPath(path)
	if err != nil {
		return err
	}
	return s.SetInt16(v)
}

func (ctx *Context) SetInt16ByID(id uint32, v int16) error {
	s, err := ctx.LookupByID(id)
	if err != nil {
		return err
	}
	return s.SetInt16(v)
}

func (ctx *Context) SetUint16ByPath(path string, v uint16) error {
	s, err := ctx.LookupByPath(path)
	if err != nil {
		return err
	}
	return s.SetUint16(v)
}

func (ctx *Context) SetUint16ByID(id uint32, v uint16) error {
	s, err := ctx.LookupByID(id)
	if err != nil {
		return err
	}
	return s.SetUint16(v)
}

func (ctx *Context) SetInt32ByPath(path string, v int32) error {
	s, err := ctx.LookupByPath(path)
	if err != nil {
		return err
	}
	return s.SetInt32(v)
}

func (ctx *Context) SetInt32ByID(id uint32, v int32) error {
	s, err := ctx.LookupByID(id)
	if err != nil {
		return err
	}
	return s.SetInt32(v)
}

func (ctx *Context) SetUint32ByPath(path string, v uint32) error {
	s, err := ctx.LookupByPath(path)
	if err != nil {
		return err
	}
	return s.SetUint32(v)
}

func (ctx *Context) SetUint32ByID(id uint32, v uint32) error {
	s, err := ctx.LookupByID(id)
	if err != nil {
		return err
	}
	return s.SetUint32(v)
}

func (ctx *Context) SetFloat32ByPath(path string, v float32) error {
	s, err := ctx.LookupByPath(path)
	if err != nil {
		return err
	}
	return s.SetFloat32(v)
}

func (ctx *Context) SetFloat32ByID(id uint32, v float32) error {
	s, err := ctx.LookupByID(id)
	if err != nil {
		return err
	}
	return s.SetFloat32(v)
}

func (ctx *Context) SetFloat64ByPath(path string, v float64) error {
	s, err := ctx.LookupByPath(path)
	if err != nil {
		return err
	}
	return s.SetFloat64(v)
}

func (ctx *Context) SetFloat64ByID(id uint32, v float64) error {
	s, err := ctx.LookupByID(id)
	if err != nil {
		return err
	}
	return s.SetFloat64(v)
}

func (ctx *Context) SetBoolByPath(path string, v bool) error {
	s, err := ctx.LookupByPath(path)
	if err != nil {
		return err
	}
	return s.SetBool(v)
}

func (ctx *Context) SetBoolByID(id uint32, v bool) error {
	s, err := ctx.LookupByID(id)
	if err != nil {
		return err
	}
	return s.SetBool(v)
}

func (ctx *Context) SetStringByPath(path string, data string) error {
	s, err := ctx.LookupByPath(path)
	if err != nil {
		return err
	}
	return s.SetString(data)
}

func (ctx *Context) SetStringByID(id uint32, data string) error {
	s, err := ctx.LookupByID(id)
	if err != nil {
		return err
	}
	return s.SetString(data)
}

func (ctx *Context) SetConvertByPath(path string, literal string) error {
	s, err := ctx.LookupByPath(path)
	if err != nil {
		return err
	}
	return s.SetConvert(literal)
}

func (ctx *Context) SetConvertByID(id uint32, literal string) error {
	s, err := ctx.LookupByID(id)
	if err != nil {
		return err
	}
	return s.SetConvert(literal)
}
