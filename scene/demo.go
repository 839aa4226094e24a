package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/heliosrt/helios/rt/core"
)

// CornellPatio is the bundled material demo: a ground plane, an emissive
// panel overhead and three spheres exercising the metal, dielectric and
// diffuse lobes under the open sky.
func CornellPatio() (*core.World, error) {
	ground := core.MaterialInfo{
		BaseColor: mgl32.Vec4{0.75, 0.75, 0.75, 1},
		Roughness: 1,
	}
	panel := core.MaterialInfo{
		BaseColor: mgl32.Vec4{1, 1, 1, 1},
		Emissive:  mgl32.Vec3{6, 5.5, 5},
	}
	copper := core.MaterialInfo{
		BaseColor: mgl32.Vec4{0.95, 0.64, 0.54, 1},
		Metallic:  1,
		Roughness: 0.15,
	}
	porcelain := core.MaterialInfo{
		BaseColor: mgl32.Vec4{0.9, 0.9, 0.88, 1},
		Roughness: 0.05,
	}
	matte := core.MaterialInfo{
		BaseColor: mgl32.Vec4{0.2, 0.4, 0.8, 1},
		Roughness: 1,
	}

	sphere := NewUVSphere(0.8, 24, 48)
	return NewBuilder().
		Add(NewPlane(20), ground, mgl32.Ident4()).
		Add(NewCube(1), panel,
			mgl32.Translate3D(0, 4, -1).Mul4(mgl32.Scale3D(3, 0.1, 3))).
		Add(sphere, copper, mgl32.Translate3D(-1.9, 0.8, 0)).
		Add(sphere, porcelain, mgl32.Translate3D(0, 0.8, -0.6)).
		Add(sphere, matte, mgl32.Translate3D(1.9, 0.8, 0)).
		Bake()
}

// SphereOnPlane is the bundled occlusion demo: a unit sphere resting on a
// large ground plane. Contact shadows show up after a handful of frames.
func SphereOnPlane() (*core.World, error) {
	flat := core.MaterialInfo{
		BaseColor: mgl32.Vec4{1, 1, 1, 1},
		Roughness: 1,
	}
	return NewBuilder().
		Add(NewPlane(40), flat, mgl32.Ident4()).
		Add(NewUVSphere(1, 24, 48), flat, mgl32.Translate3D(0, 1, 0)).
		Bake()
}

// ByName resolves a bundled demo scene by its CLI name.
func ByName(name string) (*core.World, error) {
	switch name {
	case "patio":
		return CornellPatio()
	case "sphere":
		return SphereOnPlane()
	default:
		return nil, &UnknownSceneError{Name: name}
	}
}

// Names lists the bundled demo scenes in CLI order.
func Names() []string {
	return []string{"patio", "sphere"}
}

// UnknownSceneError reports a demo scene name with no binding.
type UnknownSceneError struct {
	Name string
}

func (e *UnknownSceneError) Error() string {
	return "unknown scene " + e.Name + ", expected one of: patio, sphere"
}
