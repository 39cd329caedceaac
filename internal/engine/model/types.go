// Package model decodes glTF binary models into a node tree of point geometry.
package model

// Geometry holds the per-vertex attributes of one mesh, ready for GPU upload.
// All slices have the same length.
type Geometry struct {
	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
	Colors    [][3]float32 // Normalized RGB
}

// Len returns the vertex count.
func (g *Geometry) Len() int {
	return len(g.Positions)
}

// Node is one named node of the model tree. Geometry is nil for nodes
// without a mesh.
type Node struct {
	Name     string
	Geometry *Geometry
	Children []*Node
}

// Model is a decoded model. Root is the first root node of the default scene.
type Model struct {
	Root *Node
}

// Children returns the root's children, the nodes the scene is assembled
// from.
func (m *Model) Children() []*Node {
	if m == nil || m.Root == nil {
		return nil
	}
	return m.Root.Children
}
