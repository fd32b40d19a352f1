// Package model provides the loaded 3D model document: a tree of named nodes
// with mesh data and bounds, independent of any GPU resources.
package model

import (
	"strings"

	"github.com/Sanskruti-Shete/anatomy-model/pkg/math"
)

// Vertex is one mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// EmptyBounds returns a degenerate box ready for Extend calls.
func EmptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}

// Extend grows the box to include point p.
func (b *Bounds) Extend(p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Merge grows the box to include another box.
func (b *Bounds) Merge(other Bounds) {
	b.Extend(other.Min)
	b.Extend(other.Max)
}

// Center returns the box center.
func (b Bounds) Center() math.Vec3 {
	return math.Vec3{
		X: (b.Min[0] + b.Max[0]) / 2,
		Y: (b.Min[1] + b.Max[1]) / 2,
		Z: (b.Min[2] + b.Max[2]) / 2,
	}
}

// MaxExtent returns the largest axis size of the box.
func (b Bounds) MaxExtent() float32 {
	m := b.Max[0] - b.Min[0]
	if s := b.Max[1] - b.Min[1]; s > m {
		m = s
	}
	if s := b.Max[2] - b.Min[2]; s > m {
		m = s
	}
	return m
}

// Valid reports whether the box encloses anything.
func (b Bounds) Valid() bool {
	return b.Min[0] <= b.Max[0] && b.Min[1] <= b.Max[1] && b.Min[2] <= b.Max[2]
}

// Mesh holds the geometry of one drawable node, in node-local space.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds // local-space bounds
}

// Node is one element of the model's scene graph. Names are the authored
// names from the asset file, kept verbatim.
type Node struct {
	Name     string
	Parent   *Node
	Children []*Node

	Local math.Mat4 // transform relative to parent
	World math.Mat4 // resolved transform, filled at load time

	Mesh *Mesh // nil for grouping nodes
}

// WorldBounds returns the node's mesh bounds transformed to world space.
// Returns an invalid box for nodes without a mesh.
func (n *Node) WorldBounds() Bounds {
	out := EmptyBounds()
	if n.Mesh == nil {
		return out
	}
	// Transform all 8 corners; the world matrix may rotate the box.
	mn, mx := n.Mesh.Bounds.Min, n.Mesh.Bounds.Max
	for i := 0; i < 8; i++ {
		corner := [3]float32{mn[0], mn[1], mn[2]}
		if i&1 != 0 {
			corner[0] = mx[0]
		}
		if i&2 != 0 {
			corner[1] = mx[1]
		}
		if i&4 != 0 {
			corner[2] = mx[2]
		}
		out.Extend(n.World.TransformPoint(corner))
	}
	return out
}

// Model is a loaded scene-graph document.
type Model struct {
	Name   string
	Roots  []*Node
	Bounds Bounds // world-space bounds over all mesh nodes
}

// Walk visits every node depth-first.
func (m *Model) Walk(visit func(*Node)) {
	var rec func(*Node)
	rec = func(n *Node) {
		visit(n)
		for _, c := range n.Children {
			rec(c)
		}
	}
	for _, r := range m.Roots {
		rec(r)
	}
}

// MeshNodes returns all drawable nodes in traversal order.
func (m *Model) MeshNodes() []*Node {
	var out []*Node
	m.Walk(func(n *Node) {
		if n.Mesh != nil {
			out = append(out, n)
		}
	})
	return out
}

// ResolveTransforms recomputes every node's world matrix from the local
// matrices, and refreshes the model bounds. Call after mutating transforms.
func (m *Model) ResolveTransforms() {
	var rec func(n *Node, parent math.Mat4)
	rec = func(n *Node, parent math.Mat4) {
		n.World = parent.Mul(n.Local)
		for _, c := range n.Children {
			rec(c, n.World)
		}
	}
	for _, r := range m.Roots {
		rec(r, math.Identity())
	}

	bounds := EmptyBounds()
	for _, n := range m.MeshNodes() {
		bounds.Merge(n.WorldBounds())
	}
	m.Bounds = bounds
}

// genericNames are node names that carry no organ information; click
// resolution walks past them to a named ancestor.
var genericNames = []string{"mesh", "node", "object", "group", "scene", "root", "primitive"}

// IsGenericName reports whether a node name is empty or one of the throwaway
// names exporters generate, optionally with a numeric suffix.
func IsGenericName(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return true
	}
	trimmed := strings.TrimRight(name, "0123456789_.")
	if trimmed == "" {
		return true // digits only
	}
	for _, g := range genericNames {
		if trimmed == g {
			return true
		}
	}
	return false
}

// DisplayLabel returns the best human-readable label for a node: its own
// name if informative, otherwise the nearest informatively-named ancestor,
// otherwise "Unknown".
func (n *Node) DisplayLabel() string {
	for cur := n; cur != nil; cur = cur.Parent {
		if !IsGenericName(cur.Name) {
			return cur.Name
		}
	}
	return "Unknown"
}
