package metadata

import (
	"github.com/spaghettifunk/threeview/engine/math"
)

/** @brief The three.js type tag of a geometry descriptor. */
type GeometryType string

const (
	GeometryTypeSphere   GeometryType = "SphereGeometry"
	GeometryTypeCylinder GeometryType = "CylinderGeometry"
	GeometryTypeCone     GeometryType = "ConeGeometry"
	GeometryTypeBox      GeometryType = "BoxGeometry"
	GeometryTypePlane    GeometryType = "PlaneGeometry"
)

// Supported reports whether the geometry factory knows how to build t.
func (t GeometryType) Supported() bool {
	switch t {
	case GeometryTypeSphere, GeometryTypeCylinder, GeometryTypeCone, GeometryTypeBox, GeometryTypePlane:
		return true
	}
	return false
}

// GeometryParams holds the kind-specific parameters of a geometry descriptor.
// It is implemented by the *Params types of this package only.
type GeometryParams interface {
	GeometryType() GeometryType
}

type SphereParams struct {
	Radius        float64
	WidthSegments int
}

type CylinderParams struct {
	RadiusTop      float64
	RadiusBottom   float64
	Height         float64
	RadialSegments int
}

type ConeParams struct {
	Radius         float64
	Height         float64
	RadialSegments int
}

type BoxParams struct {
	Width  float64
	Height float64
	Depth  float64
}

type PlaneParams struct {
	Width  float64
	Height float64
}

func (SphereParams) GeometryType() GeometryType   { return GeometryTypeSphere }
func (CylinderParams) GeometryType() GeometryType { return GeometryTypeCylinder }
func (ConeParams) GeometryType() GeometryType     { return GeometryTypeCone }
func (BoxParams) GeometryType() GeometryType      { return GeometryTypeBox }
func (PlaneParams) GeometryType() GeometryType    { return GeometryTypePlane }

/**
 * @brief A geometry entry of a scene document. Params is nil when Type is
 * not one of the supported kinds.
 */
type GeometryDescriptor struct {
	/** @brief The identifier other objects reference this geometry by. */
	UUID string
	/** @brief The declared type, as found in the document. */
	Type GeometryType
	/** @brief The kind-specific parameters. */
	Params GeometryParams
}

/**
 * @brief Represents the configuration for a geometry: a flat
 * vertex/index buffer pair ready for upload by a host renderer.
 */
type GeometryConfig struct {
	/** @brief An array of Vertices. */
	Vertices []math.Vertex3D
	/** @brief An array of Indices, three per triangle. */
	Indices []uint32

	Center  math.Vec3
	Extents math.Extents3D

	/** @brief The Name of the geometry. */
	Name string
}

func (gc *GeometryConfig) VertexCount() int {
	return len(gc.Vertices)
}

func (gc *GeometryConfig) TriangleCount() int {
	return len(gc.Indices) / 3
}

/** @brief The configuration for the geometry factory. */
type GeometrySystemConfig struct {
	/** @brief Lower bound for radial segment counts. Must be at least 3. */
	MinRadialSegments uint32
	/** @brief Upper bound for radial segment counts. */
	MaxRadialSegments uint32
}
