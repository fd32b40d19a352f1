package model

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Sanskruti-Shete/anatomy-model/pkg/math"
)

// Load reads a glTF 2.0 document (.gltf or .glb) and builds the model's
// node tree. Node names from the asset are kept verbatim so that meshes can
// be matched against the organ catalog later.
func Load(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return fromDocument(doc, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
}

func fromDocument(doc *gltf.Document, name string) (*Model, error) {
	m := &Model{Name: name}

	rootIndices := sceneRoots(doc)
	for _, idx := range rootIndices {
		node, err := buildNode(doc, idx, nil)
		if err != nil {
			return nil, err
		}
		m.Roots = append(m.Roots, node)
	}

	m.ResolveTransforms()
	if !m.Bounds.Valid() {
		return nil, fmt.Errorf("model %s: no mesh geometry", name)
	}
	return m, nil
}

// sceneRoots returns the root node indices of the default scene, falling
// back to the first scene, falling back to every node without a parent.
func sceneRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		return toInts(doc.Scenes[*doc.Scene].Nodes)
	}
	if len(doc.Scenes) > 0 {
		return toInts(doc.Scenes[0].Nodes)
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			hasParent[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func toInts[T ~int | ~uint32](in []T) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}

func buildNode(doc *gltf.Document, idx int, parent *Node) (*Node, error) {
	if idx < 0 || idx >= len(doc.Nodes) {
		return nil, fmt.Errorf("node index %d out of range", idx)
	}
	src := doc.Nodes[idx]
	node := &Node{
		Name:   src.Name,
		Parent: parent,
		Local:  nodeTransform(src),
	}

	if src.Mesh != nil {
		mesh, err := buildMesh(doc, int(*src.Mesh))
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", src.Name, err)
		}
		node.Mesh = mesh
	}

	for _, ci := range src.Children {
		child, err := buildNode(doc, int(ci), node)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

var identity16 = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func nodeTransform(n *gltf.Node) math.Mat4 {
	if n.Matrix != identity16 {
		var m math.Mat4
		for i := 0; i < 16; i++ {
			m[i] = float32(n.Matrix[i])
		}
		return m
	}
	t := math.Vec3{X: float32(n.Translation[0]), Y: float32(n.Translation[1]), Z: float32(n.Translation[2])}
	r := math.Quat{X: float32(n.Rotation[0]), Y: float32(n.Rotation[1]), Z: float32(n.Rotation[2]), W: float32(n.Rotation[3])}
	s := math.Vec3{X: float32(n.Scale[0]), Y: float32(n.Scale[1]), Z: float32(n.Scale[2])}
	return math.Compose(t, r, s)
}

// buildMesh flattens all primitives of a glTF mesh into one vertex/index set.
func buildMesh(doc *gltf.Document, idx int) (*Mesh, error) {
	if idx < 0 || idx >= len(doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", idx)
	}
	src := doc.Meshes[idx]
	mesh := &Mesh{Bounds: EmptyBounds()}

	for pi, prim := range src.Primitives {
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			return nil, fmt.Errorf("primitive %d: no position attribute", pi)
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("primitive %d positions: %w", pi, err)
		}

		var normals [][3]float32
		if ni, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = modeler.ReadNormal(doc, doc.Accessors[ni], nil)
			if err != nil {
				return nil, fmt.Errorf("primitive %d normals: %w", pi, err)
			}
		}
		var texcoords [][2]float32
		if ti, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			texcoords, err = modeler.ReadTextureCoord(doc, doc.Accessors[ti], nil)
			if err != nil {
				return nil, fmt.Errorf("primitive %d texcoords: %w", pi, err)
			}
		}

		base := uint32(len(mesh.Vertices))
		for vi, p := range positions {
			v := Vertex{Position: p}
			if vi < len(normals) {
				v.Normal = normals[vi]
			}
			if vi < len(texcoords) {
				v.TexCoord = texcoords[vi]
			}
			mesh.Vertices = append(mesh.Vertices, v)
			mesh.Bounds.Extend(p)
		}

		if prim.Indices != nil {
			indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return nil, fmt.Errorf("primitive %d indices: %w", pi, err)
			}
			for _, ix := range indices {
				mesh.Indices = append(mesh.Indices, base+ix)
			}
		} else {
			for i := range positions {
				mesh.Indices = append(mesh.Indices, base+uint32(i))
			}
		}
	}

	if len(mesh.Vertices) == 0 {
		return nil, fmt.Errorf("mesh %q: empty", src.Name)
	}
	return mesh, nil
}
