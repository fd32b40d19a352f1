package model

import (
	"github.com/Sanskruti-Shete/anatomy-model/pkg/math"
)

// Placeholder builds a stand-in model made of labeled boxes, one per name,
// stacked vertically. Used when an asset fails to load so that selection and
// highlighting keep working against real node names.
func Placeholder(name string, meshNames []string) *Model {
	if len(meshNames) == 0 {
		meshNames = []string{name}
	}

	const size, gap = 1.0, 0.4
	m := &Model{Name: name}
	root := &Node{Name: name, Local: math.Identity()}
	m.Roots = []*Node{root}

	total := float32(len(meshNames))*(size+gap) - gap
	y := total/2 - size/2
	for _, mn := range meshNames {
		child := &Node{
			Name:   mn,
			Parent: root,
			Local:  math.Translate(0, y, 0),
			Mesh:   boxMesh(size / 2),
		}
		root.Children = append(root.Children, child)
		y -= size + gap
	}

	m.ResolveTransforms()
	return m
}

// boxMesh returns a cube of the given half-extent centered at the origin,
// with flat-shaded normals.
func boxMesh(h float32) *Mesh {
	type face struct {
		normal  [3]float32
		corners [4][3]float32
	}
	faces := []face{
		{[3]float32{0, 0, 1}, [4][3]float32{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}},
	}

	mesh := &Mesh{Bounds: EmptyBounds()}
	for _, f := range faces {
		base := uint32(len(mesh.Vertices))
		uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
		for i, c := range f.corners {
			mesh.Vertices = append(mesh.Vertices, Vertex{Position: c, Normal: f.normal, TexCoord: uvs[i]})
			mesh.Bounds.Extend(c)
		}
		mesh.Indices = append(mesh.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return mesh
}
