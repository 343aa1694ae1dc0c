package metadata

import (
	"slices"

	"github.com/spaghettifunk/threeview/engine/math"
)

type ShapeKind uint8

const (
	ShapeKindSphere ShapeKind = iota
	ShapeKindBox
	ShapeKindCylinder
	ShapeKindTriangleMesh
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeKindSphere:
		return "sphere"
	case ShapeKindBox:
		return "box"
	case ShapeKindCylinder:
		return "cylinder"
	case ShapeKindTriangleMesh:
		return "triangle-mesh"
	}
	return "unknown"
}

// Shape is the renderable form of a mesh resource: one of the parametric
// primitives a host draws natively, or an explicit triangle mesh.
type Shape interface {
	Kind() ShapeKind
}

type Sphere struct {
	Radius    float32
	Divisions uint32
}

type Box struct {
	Width  float32
	Height float32
	Depth  float32
}

type Cylinder struct {
	Radius    float32
	Height    float32
	Divisions uint32
}

/** @brief One corner of a triangle: a point index and a texture coordinate index. */
type FaceCorner struct {
	Point    uint32
	TexCoord uint32
}

/** @brief A triangle, corners in winding order. */
type Face [3]FaceCorner

/**
 * @brief An explicit triangle mesh. Points and TexCoords are indexed
 * independently by each face corner.
 */
type TriangleMesh struct {
	Points    []math.Vec3
	TexCoords []math.Vec2
	Faces     []Face
}

func (Sphere) Kind() ShapeKind        { return ShapeKindSphere }
func (Box) Kind() ShapeKind           { return ShapeKindBox }
func (Cylinder) Kind() ShapeKind      { return ShapeKindCylinder }
func (*TriangleMesh) Kind() ShapeKind { return ShapeKindTriangleMesh }

func (tm *TriangleMesh) Clone() *TriangleMesh {
	return &TriangleMesh{
		Points:    slices.Clone(tm.Points),
		TexCoords: slices.Clone(tm.TexCoords),
		Faces:     slices.Clone(tm.Faces),
	}
}

/**
 * @brief A mesh built from a geometry descriptor, keyed by the owning
 * geometry's UUID. Transforms holds shape-intrinsic transforms, such as the
 * Y mirror of an inverted cone; the first entry is the outermost.
 */
type MeshResource struct {
	GeometryUUID string
	Shape        Shape
	Transforms   []math.Affine
}

// Clone returns a deep copy, so the copy can be owned by exactly one scene node.
func (mr *MeshResource) Clone() *MeshResource {
	out := &MeshResource{
		GeometryUUID: mr.GeometryUUID,
		Shape:        mr.Shape,
		Transforms:   slices.Clone(mr.Transforms),
	}
	if tm, ok := mr.Shape.(*TriangleMesh); ok {
		out.Shape = tm.Clone()
	}
	return out
}
