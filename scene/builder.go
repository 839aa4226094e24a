package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/heliosrt/helios/rt/core"
)

// Builder accumulates meshes with their materials and transforms, then
// bakes them into the flat world consumed by the tracer.
type Builder struct {
	entries []entry
}

type entry struct {
	mesh      Mesh
	material  core.MaterialInfo
	transform mgl32.Mat4
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Add schedules one instance. Geometry is copied into the arena per
// instance at bake time, so the same Mesh value can be added repeatedly
// with different transforms.
func (b *Builder) Add(mesh Mesh, material core.MaterialInfo, transform mgl32.Mat4) *Builder {
	b.entries = append(b.entries, entry{mesh: mesh, material: material, transform: transform})
	return b
}

// Bake flattens every entry into the geometry arena and fixes up the
// instance table. Index ranges are validated here once; the tracer trusts
// them afterwards.
func (b *Builder) Bake() (*core.World, error) {
	w := &core.World{}
	for i, e := range b.entries {
		if len(e.mesh.Indices)%3 != 0 {
			return nil, fmt.Errorf("instance %d: index count %d is not a triangle list", i, len(e.mesh.Indices))
		}
		for _, idx := range e.mesh.Indices {
			if idx >= uint64(len(e.mesh.Vertices)) {
				return nil, fmt.Errorf("instance %d: index %d outside %d vertices", i, idx, len(e.mesh.Vertices))
			}
		}
		inst := core.SceneInstance{
			Id:          uint32(i),
			Tag:         uuid.NewString(),
			MaterialIdx: uint32(len(w.Materials)),
			FirstIndex:  uint64(len(w.Arena.Indices)),
			IndexCount:  uint64(len(e.mesh.Indices)),
			BaseVertex:  uint64(len(w.Arena.Vertices)),
		}
		inst.SetTransform(e.transform)
		w.Arena.Vertices = append(w.Arena.Vertices, e.mesh.Vertices...)
		w.Arena.Indices = append(w.Arena.Indices, e.mesh.Indices...)
		w.Materials = append(w.Materials, e.material)
		w.Instances = append(w.Instances, inst)
	}
	return w, nil
}
