package model

import (
	"testing"

	"github.com/Sanskruti-Shete/anatomy-model/pkg/math"
)

func TestBoundsExtend(t *testing.T) {
	b := EmptyBounds()
	if b.Valid() {
		t.Fatal("empty bounds should be invalid")
	}
	b.Extend([3]float32{1, 2, 3})
	b.Extend([3]float32{-1, 0, 5})
	if !b.Valid() {
		t.Fatal("bounds should be valid after extend")
	}
	if b.Min != [3]float32{-1, 0, 3} || b.Max != [3]float32{1, 2, 5} {
		t.Errorf("unexpected bounds %v %v", b.Min, b.Max)
	}
	c := b.Center()
	if c.X != 0 || c.Y != 1 || c.Z != 4 {
		t.Errorf("unexpected center %v", c)
	}
	if b.MaxExtent() != 2 {
		t.Errorf("MaxExtent = %v, want 2", b.MaxExtent())
	}
}

func TestPlaceholderStructure(t *testing.T) {
	m := Placeholder("circulatory", []string{"Heart", "Aorta", "Kidneys"})
	nodes := m.MeshNodes()
	if len(nodes) != 3 {
		t.Fatalf("got %d mesh nodes, want 3", len(nodes))
	}
	names := map[string]bool{}
	for _, n := range nodes {
		names[n.Name] = true
		if len(n.Mesh.Vertices) != 24 || len(n.Mesh.Indices) != 36 {
			t.Errorf("node %s: unexpected box geometry %d/%d", n.Name, len(n.Mesh.Vertices), len(n.Mesh.Indices))
		}
	}
	for _, want := range []string{"Heart", "Aorta", "Kidneys"} {
		if !names[want] {
			t.Errorf("missing mesh node %s", want)
		}
	}
	if !m.Bounds.Valid() {
		t.Fatal("placeholder bounds invalid")
	}

	// Boxes must not overlap, otherwise picking cannot distinguish them.
	b0 := nodes[0].WorldBounds()
	b1 := nodes[1].WorldBounds()
	if b0.Min[1] < b1.Max[1] && b1.Min[1] < b0.Max[1] {
		t.Error("placeholder boxes overlap vertically")
	}
}

func TestPlaceholderEmptyNames(t *testing.T) {
	m := Placeholder("fallback", nil)
	nodes := m.MeshNodes()
	if len(nodes) != 1 || nodes[0].Name != "fallback" {
		t.Fatalf("expected single node named after the model, got %v", nodes)
	}
}

func TestResolveTransforms(t *testing.T) {
	root := &Node{Name: "root", Local: math.Translate(10, 0, 0)}
	child := &Node{
		Name:   "child",
		Parent: root,
		Local:  math.Translate(0, 5, 0),
		Mesh:   boxMesh(1),
	}
	root.Children = []*Node{child}
	m := &Model{Roots: []*Node{root}}
	m.ResolveTransforms()

	c := child.WorldBounds().Center()
	if c.X != 10 || c.Y != 5 || c.Z != 0 {
		t.Errorf("child world center = %v, want (10,5,0)", c)
	}
	mc := m.Bounds.Center()
	if mc.X != 10 || mc.Y != 5 {
		t.Errorf("model bounds center = %v", mc)
	}
}

func TestWalkOrder(t *testing.T) {
	a := &Node{Name: "a", Local: math.Identity()}
	b := &Node{Name: "b", Parent: a, Local: math.Identity()}
	c := &Node{Name: "c", Parent: a, Local: math.Identity()}
	a.Children = []*Node{b, c}
	m := &Model{Roots: []*Node{a}}

	var got []string
	m.Walk(func(n *Node) { got = append(got, n.Name) })
	want := []string{"a", "b", "c"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("walk order = %v, want %v", got, want)
		}
	}
}

func TestIsGenericName(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"", true},
		{"mesh", true},
		{"Mesh_001", true},
		{"node12", true},
		{"Object_3", true},
		{"defaultobject", false},
		{"Heart", false},
		{"Left_Lung", false},
		{"primitive0", true},
		{"12345", true},
	}
	for _, tc := range cases {
		if got := IsGenericName(tc.name); got != tc.want {
			t.Errorf("IsGenericName(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDisplayLabel(t *testing.T) {
	organ := &Node{Name: "Liver"}
	group := &Node{Name: "Group_2", Parent: organ}
	leaf := &Node{Name: "mesh_0", Parent: group}

	if got := leaf.DisplayLabel(); got != "Liver" {
		t.Errorf("DisplayLabel = %q, want Liver", got)
	}

	orphan := &Node{Name: "node_1"}
	if got := orphan.DisplayLabel(); got != "Unknown" {
		t.Errorf("DisplayLabel = %q, want Unknown", got)
	}

	named := &Node{Name: "Stomach", Parent: orphan}
	if got := named.DisplayLabel(); got != "Stomach" {
		t.Errorf("DisplayLabel = %q, want Stomach", got)
	}
}
