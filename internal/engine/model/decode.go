package model

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

var (
	ErrNoScene    = errors.New("model has no scene")
	ErrNoGeometry = errors.New("mesh has no position data")
)

// maxDepth bounds node tree recursion on malformed documents.
const maxDepth = 64

// Decode parses a GLB file.
func Decode(data []byte) (*Model, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding glb: %w", err)
	}
	return FromDocument(doc)
}

// FromDocument builds the node tree of the document's default scene.
//
// The root is the scene's first root node. If that node has no children
// and the scene has several roots, the roots themselves become the
// children of an unnamed root.
func FromDocument(doc *gltf.Document) (*Model, error) {
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = *doc.Scene
	}
	if sceneIdx < 0 || sceneIdx >= len(doc.Scenes) || len(doc.Scenes[sceneIdx].Nodes) == 0 {
		return nil, ErrNoScene
	}
	roots := doc.Scenes[sceneIdx].Nodes

	root, err := buildNode(doc, roots[0], 0)
	if err != nil {
		return nil, err
	}
	if len(root.Children) > 0 || len(roots) == 1 {
		return &Model{Root: root}, nil
	}

	top := &Node{}
	for _, idx := range roots {
		n, err := buildNode(doc, idx, 0)
		if err != nil {
			return nil, err
		}
		top.Children = append(top.Children, n)
	}
	return &Model{Root: top}, nil
}

func buildNode(doc *gltf.Document, idx, depth int) (*Node, error) {
	if idx < 0 || idx >= len(doc.Nodes) {
		return nil, fmt.Errorf("node index %d out of range", idx)
	}
	if depth > maxDepth {
		return nil, fmt.Errorf("node %d: tree deeper than %d", idx, maxDepth)
	}
	src := doc.Nodes[idx]

	n := &Node{Name: src.Name}
	if src.Mesh != nil {
		geom, err := readMesh(doc, *src.Mesh)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", src.Name, err)
		}
		n.Geometry = geom
	}

	for _, c := range src.Children {
		child, err := buildNode(doc, c, depth+1)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

// readMesh concatenates every primitive of the mesh. Points need no index
// buffer, so indices are ignored.
func readMesh(doc *gltf.Document, idx int) (*Geometry, error) {
	if idx < 0 || idx >= len(doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", idx)
	}
	mesh := doc.Meshes[idx]

	g := &Geometry{}
	for i, prim := range mesh.Primitives {
		if err := appendPrimitive(doc, g, prim); err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, i, err)
		}
	}
	if g.Len() == 0 {
		return nil, fmt.Errorf("mesh %q: %w", mesh.Name, ErrNoGeometry)
	}
	return g, nil
}

func appendPrimitive(doc *gltf.Document, g *Geometry, prim *gltf.Primitive) error {
	posAcc, err := accessor(doc, prim, gltf.POSITION)
	if err != nil || posAcc == nil {
		return err
	}
	positions, err := modeler.ReadPosition(doc, posAcc, nil)
	if err != nil {
		return fmt.Errorf("reading positions: %w", err)
	}
	count := len(positions)

	normals := make([][3]float32, count)
	if acc, err := accessor(doc, prim, gltf.NORMAL); err != nil {
		return err
	} else if acc != nil {
		data, err := modeler.ReadNormal(doc, acc, nil)
		if err != nil {
			return fmt.Errorf("reading normals: %w", err)
		}
		copy(normals, data)
	}

	uvs := make([][2]float32, count)
	if acc, err := accessor(doc, prim, gltf.TEXCOORD_0); err != nil {
		return err
	} else if acc != nil {
		data, err := modeler.ReadTextureCoord(doc, acc, nil)
		if err != nil {
			return fmt.Errorf("reading uvs: %w", err)
		}
		copy(uvs, data)
	}

	colors := make([][3]float32, count)
	if acc, err := accessor(doc, prim, gltf.COLOR_0); err != nil {
		return err
	} else if acc != nil {
		if err := readColors(doc, acc, colors); err != nil {
			return fmt.Errorf("reading colors: %w", err)
		}
	}

	g.Positions = append(g.Positions, positions...)
	g.Normals = append(g.Normals, normals...)
	g.UVs = append(g.UVs, uvs...)
	g.Colors = append(g.Colors, colors...)
	return nil
}

// readColors fills dst with COLOR_0 as linear RGB in [0, 1]. Float colors are
// kept as stored; normalized integer colors are divided by their max value.
// Alpha is dropped.
func readColors(doc *gltf.Document, acc *gltf.Accessor, dst [][3]float32) error {
	data, err := modeler.ReadAccessor(doc, acc, nil)
	if err != nil {
		return err
	}
	switch data := data.(type) {
	case nil:
	case [][3]float32:
		copy(dst, data)
	case [][4]float32:
		for i := 0; i < len(dst) && i < len(data); i++ {
			dst[i] = [3]float32{data[i][0], data[i][1], data[i][2]}
		}
	case [][3]uint8:
		for i := 0; i < len(dst) && i < len(data); i++ {
			dst[i] = unorm8(data[i][0], data[i][1], data[i][2])
		}
	case [][4]uint8:
		for i := 0; i < len(dst) && i < len(data); i++ {
			dst[i] = unorm8(data[i][0], data[i][1], data[i][2])
		}
	case [][3]uint16:
		for i := 0; i < len(dst) && i < len(data); i++ {
			dst[i] = unorm16(data[i][0], data[i][1], data[i][2])
		}
	case [][4]uint16:
		for i := 0; i < len(dst) && i < len(data); i++ {
			dst[i] = unorm16(data[i][0], data[i][1], data[i][2])
		}
	default:
		return fmt.Errorf("unsupported color accessor %s/%s", acc.ComponentType, acc.Type)
	}
	return nil
}

func unorm8(r, g, b uint8) [3]float32 {
	return [3]float32{float32(r) / 255, float32(g) / 255, float32(b) / 255}
}

func unorm16(r, g, b uint16) [3]float32 {
	return [3]float32{float32(r) / 65535, float32(g) / 65535, float32(b) / 65535}
}

// accessor returns nil without error when the attribute is absent.
func accessor(doc *gltf.Document, prim *gltf.Primitive, name string) (*gltf.Accessor, error) {
	idx, ok := prim.Attributes[name]
	if !ok {
		return nil, nil
	}
	if int(idx) < 0 || int(idx) >= len(doc.Accessors) {
		return nil, fmt.Errorf("%s accessor %d out of range", name, idx)
	}
	return doc.Accessors[idx], nil
}
