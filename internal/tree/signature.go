// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tree

import (
	"encoding/binary"
	"hash/crc32"
)

// computeSignature fills in signature for idx and (recursively) every
// descendant, post-order, so a branch's signature already has its
// children's signatures available to fold in.
//
// The layout hashed is exactly the information two peers must agree on
// for a wire exchange to make sense: name, element kind, data kind, id,
// and, for a branch, every child's signature in canonical (declared)
// order.
func computeSignature(ctx *Context, idx int32) uint32 {
	rec := &ctx.nodes[idx]

	buf := make([]byte, 0, 64)
	buf = append(buf, rec.name...)
	buf = append(buf, byte(rec.elemKind), byte(rec.dataKind))
	buf = binary.LittleEndian.AppendUint32(buf, rec.id)

	for _, c := range rec.children {
		childSig := computeSignature(ctx, c)
		buf = binary.LittleEndian.AppendUint32(buf, childSig)
	}

	sig := crc32.ChecksumIEEE(buf)
	rec.signature = sig
	return sig
}
