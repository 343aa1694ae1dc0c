package systems

import (
	"fmt"
	stdmath "math"

	"github.com/spaghettifunk/threeview/engine/core"
	"github.com/spaghettifunk/threeview/engine/math"
	"github.com/spaghettifunk/threeview/engine/renderer/metadata"
)

const (
	DefaultMinRadialSegments uint32 = 3
	DefaultMaxRadialSegments uint32 = 1024
)

// GeometryFactory turns geometry descriptors into mesh resources. It holds no
// state besides its configuration, so identical descriptors always produce
// identical meshes.
type GeometryFactory struct {
	config metadata.GeometrySystemConfig
}

/**
 * @brief Creates a geometry factory.
 *
 * @param config The configuration for this system. Zero values fall back to the defaults.
 * @return The factory, or an error if the segment bounds are invalid.
 */
func NewGeometryFactory(config *metadata.GeometrySystemConfig) (*GeometryFactory, error) {
	cfg := metadata.GeometrySystemConfig{
		MinRadialSegments: DefaultMinRadialSegments,
		MaxRadialSegments: DefaultMaxRadialSegments,
	}
	if config != nil {
		if config.MinRadialSegments != 0 {
			cfg.MinRadialSegments = config.MinRadialSegments
		}
		if config.MaxRadialSegments != 0 {
			cfg.MaxRadialSegments = config.MaxRadialSegments
		}
	}

	if cfg.MinRadialSegments < 3 {
		err := fmt.Errorf("func NewGeometryFactory - MinRadialSegments must be >= 3, got %d", cfg.MinRadialSegments)
		core.LogWarn(err.Error())
		return nil, err
	}
	if cfg.MaxRadialSegments < cfg.MinRadialSegments {
		err := fmt.Errorf("func NewGeometryFactory - MaxRadialSegments (%d) must be >= MinRadialSegments (%d)", cfg.MaxRadialSegments, cfg.MinRadialSegments)
		core.LogWarn(err.Error())
		return nil, err
	}

	return &GeometryFactory{config: cfg}, nil
}

/**
 * @brief Builds the mesh resource for a single geometry descriptor.
 *
 * @param desc The geometry descriptor.
 * @return The mesh resource and true, or false if the descriptor kind is not supported.
 */
func (gf *GeometryFactory) Build(desc metadata.GeometryDescriptor) (*metadata.MeshResource, bool) {
	if !desc.Type.Supported() || desc.Params == nil {
		core.LogDebug("geometry '%s': unsupported type '%s', skipping.", desc.UUID, desc.Type)
		return nil, false
	}
	if desc.Params.GeometryType() != desc.Type {
		core.LogWarn("geometry '%s': parameters of a %s given for a %s, skipping.", desc.UUID, desc.Params.GeometryType(), desc.Type)
		return nil, false
	}

	mesh := &metadata.MeshResource{GeometryUUID: desc.UUID}

	switch p := desc.Params.(type) {
	case metadata.SphereParams:
		mesh.Shape = metadata.Sphere{
			Radius:    float32(p.Radius),
			Divisions: gf.segments(p.WidthSegments, desc.UUID),
		}
	case metadata.BoxParams:
		mesh.Shape = metadata.Box{
			Width:  float32(p.Width),
			Height: float32(p.Height),
			Depth:  float32(p.Depth),
		}
	case metadata.CylinderParams:
		if p.RadiusTop == p.RadiusBottom {
			mesh.Shape = metadata.Cylinder{
				Radius:    float32(p.RadiusTop),
				Height:    float32(p.Height),
				Divisions: gf.segments(p.RadialSegments, desc.UUID),
			}
			break
		}
		// A truncated cone collapses to a cone of the non-zero radius. The
		// apex sits at +Y, so a cone that narrows downwards is mirrored.
		radius := p.RadiusTop
		inverted := p.RadiusTop == 0
		if inverted {
			radius = p.RadiusBottom
		}
		if p.RadiusTop != 0 && p.RadiusBottom != 0 {
			core.LogDebug("geometry '%s': truncated cone (%g/%g) approximated as a cone of radius %g.", desc.UUID, p.RadiusTop, p.RadiusBottom, radius)
		}
		mesh.Shape = GenerateCone(float32(radius), float32(p.Height), gf.segments(p.RadialSegments, desc.UUID))
		if inverted {
			mesh.Transforms = append(mesh.Transforms, math.NewAffineMirrorY())
		}
	case metadata.ConeParams:
		mesh.Shape = GenerateCone(float32(p.Radius), float32(p.Height), gf.segments(p.RadialSegments, desc.UUID))
	case metadata.PlaneParams:
		mesh.Shape = GeneratePlane(float32(p.Width), float32(p.Height))
	default:
		core.LogDebug("geometry '%s': unsupported type '%s', skipping.", desc.UUID, desc.Type)
		return nil, false
	}

	return mesh, true
}

/**
 * @brief Builds a UUID to mesh resource table for the given descriptors.
 * Unsupported descriptors produce no entry. A repeated UUID replaces the
 * earlier entry.
 */
func (gf *GeometryFactory) BuildAll(descs []metadata.GeometryDescriptor) map[string]*metadata.MeshResource {
	meshes := make(map[string]*metadata.MeshResource, len(descs))
	for _, desc := range descs {
		mesh, ok := gf.Build(desc)
		if !ok {
			continue
		}
		if _, exists := meshes[desc.UUID]; exists {
			core.LogDebug("geometry '%s' declared more than once, keeping the last one.", desc.UUID)
		}
		meshes[desc.UUID] = mesh
	}
	return meshes
}

func (gf *GeometryFactory) segments(requested int, uuid string) uint32 {
	n := math.Clamp(requested, int(gf.config.MinRadialSegments), int(gf.config.MaxRadialSegments))
	if n != requested {
		core.LogWarn("geometry '%s': segment count %d out of range, using %d.", uuid, requested, n)
	}
	return uint32(n)
}

/**
 * @brief Generates a cone as an explicit triangle mesh, apex up, centred
 * on the origin.
 *
 * Point layout: 0 is the apex at (0, h/2, 0); 1..segments are the rim points
 * at angle 2*pi*i/segments; segments+1 is the base centre at (0, -h/2, 0).
 * Faces: one side triangle per segment followed by one base triangle per
 * segment. Both wind counter-clockwise seen from outside.
 *
 * @param radius The base radius.
 * @param height The distance between base and apex.
 * @param segments The number of rim points. Must be at least 3.
 */
func GenerateCone(radius, height float32, segments uint32) *metadata.TriangleMesh {
	if segments < 3 {
		core.LogWarn("cone segments must be at least 3. Defaulting to 3.")
		segments = 3
	}

	pointCount := segments + 2
	baseCenter := segments + 1
	halfHeight := height / 2

	mesh := &metadata.TriangleMesh{
		Points:    make([]math.Vec3, pointCount),
		TexCoords: make([]math.Vec2, pointCount),
		Faces:     make([]metadata.Face, 0, segments*2),
	}

	// Apex
	mesh.Points[0] = math.NewVec3(0, halfHeight, 0)
	mesh.TexCoords[0] = math.NewVec2(0.5, 0)

	// Base centre
	mesh.Points[baseCenter] = math.NewVec3(0, -halfHeight, 0)
	mesh.TexCoords[baseCenter] = math.NewVec2(0.5, 1)

	// Rim
	for i := uint32(0); i < segments; i++ {
		angle := 2 * stdmath.Pi * float64(i) / float64(segments)
		x := float32(float64(radius) * stdmath.Cos(angle))
		z := float32(float64(radius) * stdmath.Sin(angle))
		mesh.Points[i+1] = math.NewVec3(x, -halfHeight, z)
		mesh.TexCoords[i+1] = math.NewVec2(float32(i)/float32(segments), 1)
	}

	// Sides: apex, next rim point, current rim point.
	for i := uint32(0); i < segments; i++ {
		current := i + 1
		next := (i+1)%segments + 1
		mesh.Faces = append(mesh.Faces, metadata.Face{
			{Point: 0, TexCoord: 0},
			{Point: next, TexCoord: next},
			{Point: current, TexCoord: current},
		})
	}

	// Base: centre, current rim point, next rim point.
	for i := uint32(0); i < segments; i++ {
		current := i + 1
		next := (i+1)%segments + 1
		mesh.Faces = append(mesh.Faces, metadata.Face{
			{Point: baseCenter, TexCoord: baseCenter},
			{Point: current, TexCoord: current},
			{Point: next, TexCoord: next},
		})
	}

	return mesh
}

/**
 * @brief Generates a single-quad plane centred on the origin, facing +Z.
 *
 * @param width The overall width of the plane.
 * @param height The overall height of the plane.
 */
func GeneratePlane(width, height float32) *metadata.TriangleMesh {
	hw := width / 2
	hh := height / 2

	return &metadata.TriangleMesh{
		Points: []math.Vec3{
			math.NewVec3(-hw, -hh, 0), // 3    2
			math.NewVec3(hw, -hh, 0),  //
			math.NewVec3(hw, hh, 0),   //
			math.NewVec3(-hw, hh, 0),  // 0    1
		},
		TexCoords: []math.Vec2{
			math.NewVec2(0, 0),
			math.NewVec2(1, 0),
			math.NewVec2(1, 1),
			math.NewVec2(0, 1),
		},
		Faces: []metadata.Face{
			{{Point: 0, TexCoord: 0}, {Point: 1, TexCoord: 1}, {Point: 2, TexCoord: 2}},
			{{Point: 0, TexCoord: 0}, {Point: 2, TexCoord: 2}, {Point: 3, TexCoord: 3}},
		},
	}
}
