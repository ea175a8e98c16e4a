// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tree

import "math/bits"

// minStringCap is the smallest buffer a string cell ever allocates,
// damping fragmentation for the common case of short signal values.
const minStringCap = 16

// value is the per-leaf value cell. Exactly one of the scalar fields or
// str is meaningful, selected by the owning Signal's DataKind. String
// cells own a grow-only buffer: str is reused across assignments and
// only reallocated when a longer value arrives.
type value struct {
	i64 int64   // holds i8/u8/i16/u16/i32/u32 sign/zero-extended, and bool as 0/1
	f32 float32
	f64 float64
	str []byte // len(str) is the live length; cap(str) is the owned capacity
}

// roundStringCap rounds n up to the next power of two, floored at
// minStringCap. This is the "small power-of-two boundary" growth policy
// from the data model: capacity grows but never shrinks.
func roundStringCap(n int) int {
	if n <= minStringCap {
		return minStringCap
	}
	return 1 << bits.Len(uint(n-1))
}

// setString writes s into the cell, growing the buffer only if the
// existing capacity cannot hold s. A shorter string reuses the buffer;
// capacity is never shrunk.
func (v *value) setString(s string) {
	if cap(v.str) >= len(s) {
		v.str = append(v.str[:0], s...)
		return
	}
	newCap := roundStringCap(len(s))
	buf := make([]byte, len(s), newCap)
	copy(buf, s)
	v.str = buf
}

func (v *value) stringValue() string {
	return string(v.str)
}

func (v *value) stringCap() int {
	return cap(v.str)
}
