package scene

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Faultbox/brushcat/internal/engine/model"
)

var (
	ErrMeshCount      = errors.New("model must have exactly two mesh children")
	ErrAmbiguousNames = errors.New("mesh children have the same name ignoring case")
)

// SortByName sorts nodes by upper-cased name. Equal names keep their
// relative order.
func SortByName(nodes []*model.Node) {
	slices.SortStableFunc(nodes, func(a, b *model.Node) int {
		return strings.Compare(strings.ToUpper(a.Name), strings.ToUpper(b.Name))
	})
}

// SplitModel picks the body and goggles meshes out of the root's children:
// of the two children carrying geometry, the first by name is the body.
// Children without geometry are ignored. The model is not modified.
func SplitModel(m *model.Model) (body, goggles *model.Node, err error) {
	var meshes []*model.Node
	for _, c := range m.Children() {
		if c.Geometry != nil {
			meshes = append(meshes, c)
		}
	}
	if len(meshes) != 2 {
		return nil, nil, fmt.Errorf("%w: found %d", ErrMeshCount, len(meshes))
	}

	SortByName(meshes)
	if strings.ToUpper(meshes[0].Name) == strings.ToUpper(meshes[1].Name) {
		return nil, nil, fmt.Errorf("%w: %q and %q", ErrAmbiguousNames, meshes[0].Name, meshes[1].Name)
	}
	return meshes[0], meshes[1], nil
}
