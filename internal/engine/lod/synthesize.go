package lod

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/lodview/internal/engine/geometry"
	"github.com/Faultbox/lodview/internal/engine/scene"
)

// Visual degradation applied per level so coarser levels read as
// progressively less solid.
const (
	opacityFalloff = 0.2
	minOpacity     = 0.3
	wireframeAbove = 2 // levels past this render as wireframe
)

var errNoGeometry = errors.New("source node has no geometry")

// levelInstance is one built detail level of a managed model: an
// independently owned mesh node plus the distance at which it takes over.
type levelInstance struct {
	specIndex int
	threshold float32
	node      *scene.Node
}

// synthesizeLevel builds one detail level from the source node. The result
// owns deep copies of the source mesh and material; decimation and normal
// regeneration apply for reduced levels above 0. Returns (nil, nil) for a
// disabled spec.
func synthesizeLevel(src *scene.Node, spec LevelSpec, specIndex int) (*levelInstance, error) {
	if !spec.Enabled {
		return nil, nil
	}
	if src == nil || !src.HasGeometry() {
		return nil, errNoGeometry
	}

	mesh := src.Mesh.Clone()

	// Level 0 is always full detail regardless of its configured ratio.
	if specIndex > 0 && spec.Ratio < 1.0 {
		target := int(math32.Floor(float32(src.Mesh.VertexCount()) * spec.Ratio))
		if target < geometry.MinVertexCount {
			target = geometry.MinVertexCount
		}
		mesh.DecimateTo(target)
	}

	mat := scene.DefaultMaterial()
	if src.Mat != nil {
		mat = src.Mat.Clone()
	}
	applyDegradation(mat, specIndex)

	node := scene.NewMeshNode(fmt.Sprintf("%s-lod%d", src.Name(), specIndex), mesh, mat)
	node.Visible = false

	return &levelInstance{
		specIndex: specIndex,
		threshold: spec.Distance,
		node:      node,
	}, nil
}

// applyDegradation makes coarser levels look progressively less solid:
// opacity falls off with the level index and the coarsest levels render as
// wireframe. A cheap visual cue, not a correctness requirement.
func applyDegradation(mat *scene.Material, specIndex int) {
	opacity := 1.0 - opacityFalloff*float32(specIndex)
	if opacity < minOpacity {
		opacity = minOpacity
	}
	mat.Opacity = opacity
	mat.Transparent = specIndex > 0
	mat.Wireframe = specIndex > wireframeAbove
}
