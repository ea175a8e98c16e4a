// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"strings"
	"sync"
)

// maxPathBuf is the rendering budget PathOf uses before falling back
// to the "too long" sentinel.
const maxPathBuf = 1024

const pathTooLong = "[signal path too long]"

// Context owns the whole arena of nodes built from one specification. A
// Context's node set is append-only until Finalize and fixed after it;
// thereafter only value cells and the bus's subscriber lists mutate.
type Context struct {
	nodes []nodeRec
	byID  map[uint32]int32

	sigOnce sync.Once
	bySig   map[uint32]int32

	finalized bool
}

// NewContext creates a context with a single root branch node named root.
func NewContext(root string) *Context {
	ctx := &Context{
		byID: make(map[uint32]int32),
	}
	ctx.nodes = append(ctx.nodes, nodeRec{
		name:     root,
		parent:   noParent,
		elemKind: ElementBranch,
		dataKind: KindNone,
	})
	return ctx
}

// Root returns the root branch handle.
func (ctx *Context) Root() Signal {
	return Signal{ctx: ctx, idx: 0}
}

// LeafSpec carries the optional attributes a leaf may declare. Zero value
// means "not specified" for Min/Max; AllowedValues, Unit and Description
// default to empty.
type LeafSpec struct {
	HasMin, HasMax  bool
	Min, Max        Scalar
	AllowedValues   []string
	Unit            string
	Description     string
}

// AddBranch creates a new branch child of parent. id must be unique
// within the context.
func (ctx *Context) AddBranch(parent Signal, name string, id uint32) (Signal, error) {
	return ctx.addNode(parent, name, id, ElementBranch, KindNone, LeafSpec{})
}

// AddLeaf creates a new leaf child of parent with the given element and
// data kind. id must be unique within the context.
func (ctx *Context) AddLeaf(parent Signal, name string, id uint32, elemKind ElementKind, dataKind DataKind, spec LeafSpec) (Signal, error) {
	if elemKind == ElementBranch {
		return Signal{}, fmt.Errorf("%w: AddLeaf called with branch element kind", ErrInvalidArgument)
	}
	return ctx.addNode(parent, name, id, elemKind, dataKind, spec)
}

func (ctx *Context) addNode(parent Signal, name string, id uint32, elemKind ElementKind, dataKind DataKind, spec LeafSpec) (Signal, error) {
	if ctx.finalized {
		return Signal{}, fmt.Errorf("%w: context is finalized, tree is append-only before Finalize", ErrInvalidArgument)
	}
	if !parent.Valid() || parent.ctx != ctx {
		return Signal{}, fmt.Errorf("%w: parent does not belong to this context", ErrInvalidArgument)
	}
	if parent.IsLeaf() {
		return Signal{}, fmt.Errorf("%w: parent %q is a leaf", ErrNotADirectory, parent.Name())
	}
	if name == "" || strings.Contains(name, ".") {
		return Signal{}, fmt.Errorf("%w: name %q must be non-empty and dotless", ErrInvalidArgument, name)
	}
	if _, exists := ctx.findChild(parent, name); exists {
		return Signal{}, fmt.Errorf("%w: parent %q already has a child named %q", ErrInvalidArgument, parent.Name(), name)
	}
	if _, exists := ctx.byID[id]; exists {
		return Signal{}, fmt.Errorf("%w: %d", ErrDuplicateID, id)
	}

	idx := int32(len(ctx.nodes))
	rec := nodeRec{
		name:        name,
		parent:      parent.idx,
		elemKind:    elemKind,
		dataKind:    dataKind,
		id:          id,
		unit:        spec.Unit,
		description: spec.Description,
		allowed:     spec.AllowedValues,
		hasMin:      spec.HasMin,
		hasMax:      spec.HasMax,
	}
	if spec.HasMin {
		rec.min = spec.Min.toValue(dataKind)
	}
	if spec.HasMax {
		rec.max = spec.Max.toValue(dataKind)
	}
	ctx.nodes = append(ctx.nodes, rec)
	ctx.nodes[parent.idx].children = append(ctx.nodes[parent.idx].children, idx)
	ctx.byID[id] = idx

	return Signal{ctx: ctx, idx: idx}, nil
}

// DescribeRoot assigns the root branch the numeric id and metadata its
// specification line declares. NewContext creates the root before any
// specification line is read, so a loader calls this when it reaches
// the root's own line rather than adding a child.
func (ctx *Context) DescribeRoot(id uint32, description string) error {
	if ctx.finalized {
		return fmt.Errorf("%w: context is finalized, tree is append-only before Finalize", ErrInvalidArgument)
	}
	if idx, exists := ctx.byID[id]; exists && idx != 0 {
		return fmt.Errorf("%w: %d", ErrDuplicateID, id)
	}
	root := &ctx.nodes[0]
	if idx, exists := ctx.byID[root.id]; exists && idx == 0 {
		delete(ctx.byID, root.id)
	}
	root.id = id
	root.description = description
	ctx.byID[id] = 0
	return nil
}

// Finalize computes every node's subtree signature and must be
// called once, after the full specification has been loaded and before
// any Publish/Subscribe/encode/decode call. Finalize is idempotent.
func (ctx *Context) Finalize() {
	if ctx.finalized {
		return
	}
	computeSignature(ctx, 0)
	ctx.finalized = true
}

// Finalized reports whether Finalize has run.
func (ctx *Context) Finalized() bool { return ctx.finalized }

// LookupByPath resolves a dotted path starting at the root. Trailing
// dots and empty paths are rejected with ErrInvalidArgument; a missing
// component yields ErrNotFound; traversing through a leaf yields
// ErrNotADirectory.
func (ctx *Context) LookupByPath(path string) (Signal, error) {
	if path == "" || strings.HasSuffix(path, ".") {
		return Signal{}, fmt.Errorf("%w: empty or trailing-dot path", ErrInvalidArgument)
	}
	parts := strings.Split(path, ".")
	root := ctx.Root()
	if parts[0] != root.Name() {
		return Signal{}, fmt.Errorf("%w: path %q", ErrNotFound, path)
	}
	cur := root
	for _, part := range parts[1:] {
		if cur.IsLeaf() {
			return Signal{}, fmt.Errorf("%w: %q is not a branch", ErrNotADirectory, cur.Name())
		}
		next, ok := ctx.findChild(cur, part)
		if !ok {
			return Signal{}, fmt.Errorf("%w: path %q", ErrNotFound, path)
		}
		cur = next
	}
	return cur, nil
}

func (ctx *Context) findChild(parent Signal, name string) (Signal, bool) {
	for _, c := range parent.rec().children {
		if ctx.nodes[c].name == name {
			return Signal{ctx: ctx, idx: c}, true
		}
	}
	return Signal{}, false
}

// LookupByID resolves a node by its unique numeric id in O(1).
func (ctx *Context) LookupByID(id uint32) (Signal, error) {
	idx, ok := ctx.byID[id]
	if !ok {
		return Signal{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return Signal{ctx: ctx, idx: idx}, nil
}

// LookupBySignature resolves a node by its subtree signature. The first
// call builds a full index over all nodes in one linear pass; every call
// after that is O(1). Requires Finalize to have run.
func (ctx *Context) LookupBySignature(sig uint32) (Signal, error) {
	ctx.sigOnce.Do(func() {
		ctx.bySig = make(map[uint32]int32, len(ctx.nodes))
		for i := range ctx.nodes {
			ctx.bySig[ctx.nodes[i].signature] = int32(i)
		}
	})
	idx, ok := ctx.bySig[sig]
	if !ok {
		return Signal{}, fmt.Errorf("%w: signature %#x", ErrUnknownSignature, sig)
	}
	return Signal{ctx: ctx, idx: idx}, nil
}

// PathOf renders the canonical dotted path to s, or the sentinel string
// if it would overflow a 1 KiB buffer.
func (ctx *Context) PathOf(s Signal) string {
	var names []string
	for cur := s; ; {
		names = append(names, cur.Name())
		p, ok := cur.Parent()
		if !ok {
			break
		}
		cur = p
	}
	// names is leaf-to-root; reverse in place.
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	path := strings.Join(names, ".")
	if len(path) >= maxPathBuf {
		return pathTooLong
	}
	return path
}

// NumNodes returns the total number of nodes in the arena, root included.
func (ctx *Context) NumNodes() int { return len(ctx.nodes) }
