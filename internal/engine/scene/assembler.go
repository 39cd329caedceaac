package scene

import (
	"errors"

	"github.com/Faultbox/brushcat/internal/assets"
)

// ErrNoResult is returned when the load channel closes without a result.
var ErrNoResult = errors.New("asset load ended without a result")

// BuildFunc turns a complete bundle into a scene.
type BuildFunc func(*assets.Bundle) (*Scene, error)

// Assembler waits for an asset load and builds the scene from it on the
// caller's goroutine. The build runs once, only after every asset resolved.
type Assembler struct {
	results <-chan assets.Result
	build   BuildFunc

	scene *Scene
	err   error
	done  bool
}

// NewAssembler assembles from the single result delivered on results.
func NewAssembler(results <-chan assets.Result, build BuildFunc) *Assembler {
	return &Assembler{results: results, build: build}
}

// Poll checks for the load result without blocking. It returns the scene
// once built, nil while the load is still pending, and the load or build
// error if either failed. After the first non-pending result Poll keeps
// returning it.
func (a *Assembler) Poll() (*Scene, error) {
	if a.done {
		return a.scene, a.err
	}

	select {
	case r, ok := <-a.results:
		a.done = true
		switch {
		case !ok:
			a.err = ErrNoResult
		case r.Err != nil:
			a.err = r.Err
		default:
			a.scene, a.err = a.build(r.Bundle)
		}
		return a.scene, a.err
	default:
		return nil, nil
	}
}

// Ready reports whether the scene has been built.
func (a *Assembler) Ready() bool {
	return a.done && a.scene != nil
}
