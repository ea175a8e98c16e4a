// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package tree implements the in-process signal tree: a typed,
// hierarchical namespace of branches and leaves addressed by dotted
// path, numeric id, or subtree signature.
//
// Nodes live in a Context-owned arena and are referenced by stable
// index rather than by pointer, so parent/child never forms a Go
// reference cycle. A Context is built once (AddBranch/AddLeaf, typically
// driven by a CSV specification loader), then Finalize computes every
// node's subtree signature. After Finalize the node set is fixed
// (AddBranch/AddLeaf fail); only value cells mutate, through the typed
// setters in mutate.go.
package tree
