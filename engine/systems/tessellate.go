package systems

import (
	"fmt"
	stdmath "math"

	"github.com/spaghettifunk/threeview/engine/core"
	"github.com/spaghettifunk/threeview/engine/math"
	"github.com/spaghettifunk/threeview/engine/renderer/metadata"
)

/**
 * @brief Expands the shape of a mesh resource into a flat vertex/index
 * buffer pair, for hosts that can only draw triangles. The resource's own
 * transforms are not applied; they travel with the owning node.
 *
 * @param mesh The mesh resource to tessellate.
 * @return The geometry config, or an error if the shape is missing or invalid.
 */
func Tessellate(mesh *metadata.MeshResource) (*metadata.GeometryConfig, error) {
	if mesh == nil || mesh.Shape == nil {
		err := fmt.Errorf("func Tessellate - mesh has no shape")
		core.LogWarn(err.Error())
		return nil, err
	}

	var config *metadata.GeometryConfig
	switch s := mesh.Shape.(type) {
	case metadata.Box:
		config = tessellateBox(s)
	case metadata.Sphere:
		config = tessellateSphere(s)
	case metadata.Cylinder:
		config = tessellateCylinder(s)
	case *metadata.TriangleMesh:
		var err error
		if config, err = tessellateTriangleMesh(s); err != nil {
			return nil, err
		}
	default:
		err := fmt.Errorf("func Tessellate - unknown shape kind %s", mesh.Shape.Kind())
		core.LogWarn(err.Error())
		return nil, err
	}

	config.Name = mesh.GeometryUUID
	config.Extents = math.GeometryExtents(config.Vertices)
	config.Center = config.Extents.Min.Add(config.Extents.Max).MulScalar(0.5)
	return config, nil
}

// corners of each box face, in the order of the (0, 1, 2) (0, 3, 1) index pattern
var boxFaces = [6]struct {
	normal  math.Vec3
	corners [4][3]float32
}{
	{math.NewVec3(0, 0, 1), [4][3]float32{{-1, -1, 1}, {1, 1, 1}, {-1, 1, 1}, {1, -1, 1}}},      // front
	{math.NewVec3(0, 0, -1), [4][3]float32{{1, -1, -1}, {-1, 1, -1}, {1, 1, -1}, {-1, -1, -1}}}, // back
	{math.NewVec3(-1, 0, 0), [4][3]float32{{-1, -1, -1}, {-1, 1, 1}, {-1, 1, -1}, {-1, -1, 1}}}, // left
	{math.NewVec3(1, 0, 0), [4][3]float32{{1, -1, 1}, {1, 1, -1}, {1, 1, 1}, {1, -1, -1}}},      // right
	{math.NewVec3(0, -1, 0), [4][3]float32{{1, -1, 1}, {-1, -1, -1}, {1, -1, -1}, {-1, -1, 1}}}, // bottom
	{math.NewVec3(0, 1, 0), [4][3]float32{{-1, 1, 1}, {1, 1, -1}, {-1, 1, -1}, {1, 1, 1}}},      // top
}

var boxTexcoords = [4]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 0}}

func tessellateBox(b metadata.Box) *metadata.GeometryConfig {
	config := &metadata.GeometryConfig{
		Vertices: make([]math.Vertex3D, 4*6), // 4 verts per side, 6 sides
		Indices:  make([]uint32, 6*6),        // 6 indices per side, 6 sides
	}

	hw := b.Width * 0.5
	hh := b.Height * 0.5
	hd := b.Depth * 0.5

	for f, face := range boxFaces {
		vOffset := f * 4
		for c, corner := range face.corners {
			config.Vertices[vOffset+c] = math.Vertex3D{
				Position: math.NewVec3(corner[0]*hw, corner[1]*hh, corner[2]*hd),
				Normal:   face.normal,
				Texcoord: boxTexcoords[c],
				Colour:   math.NewVec4Create(1, 1, 1, 1),
			}
		}

		iOffset := f * 6
		config.Indices[iOffset+0] = uint32(vOffset + 0)
		config.Indices[iOffset+1] = uint32(vOffset + 1)
		config.Indices[iOffset+2] = uint32(vOffset + 2)
		config.Indices[iOffset+3] = uint32(vOffset + 0)
		config.Indices[iOffset+4] = uint32(vOffset + 3)
		config.Indices[iOffset+5] = uint32(vOffset + 1)
	}

	return config
}

// tessellateSphere builds a UV sphere: Divisions columns around Y and
// Divisions/2 rings from pole to pole. The seam column is duplicated.
func tessellateSphere(s metadata.Sphere) *metadata.GeometryConfig {
	divisions := max(s.Divisions, 3)
	rings := max(divisions/2, 2)

	config := &metadata.GeometryConfig{
		Vertices: make([]math.Vertex3D, 0, (rings+1)*(divisions+1)),
		Indices:  make([]uint32, 0, rings*divisions*6),
	}

	for r := uint32(0); r <= rings; r++ {
		phi := stdmath.Pi * float64(r) / float64(rings)
		for d := uint32(0); d <= divisions; d++ {
			theta := 2 * stdmath.Pi * float64(d) / float64(divisions)
			normal := math.NewVec3(
				float32(stdmath.Sin(phi)*stdmath.Cos(theta)),
				float32(stdmath.Cos(phi)),
				float32(stdmath.Sin(phi)*stdmath.Sin(theta)),
			)
			config.Vertices = append(config.Vertices, math.Vertex3D{
				Position: normal.MulScalar(s.Radius),
				Normal:   normal,
				Texcoord: math.NewVec2(float32(d)/float32(divisions), float32(r)/float32(rings)),
				Colour:   math.NewVec4Create(1, 1, 1, 1),
			})
		}
	}

	for r := uint32(0); r < rings; r++ {
		for d := uint32(0); d < divisions; d++ {
			a := r*(divisions+1) + d
			b := a + divisions + 1
			c := b + 1
			e := a + 1
			// The pole rows collapse one triangle of each quad.
			if r != 0 {
				config.Indices = append(config.Indices, a, e, b)
			}
			if r != rings-1 {
				config.Indices = append(config.Indices, e, c, b)
			}
		}
	}

	return config
}

// tessellateCylinder builds the side wall as a strip of quads followed by
// the top and bottom caps.
func tessellateCylinder(cy metadata.Cylinder) *metadata.GeometryConfig {
	divisions := max(cy.Divisions, 3)
	hh := cy.Height * 0.5

	config := &metadata.GeometryConfig{
		Vertices: make([]math.Vertex3D, 0, (divisions+1)*2+(divisions+1)*2),
		Indices:  make([]uint32, 0, divisions*12),
	}

	rim := func(d uint32) (float32, float32) {
		theta := 2 * stdmath.Pi * float64(d) / float64(divisions)
		return float32(stdmath.Cos(theta)), float32(stdmath.Sin(theta))
	}

	// Side: vertex 2d is on the top rim, 2d+1 on the bottom rim.
	for d := uint32(0); d <= divisions; d++ {
		x, z := rim(d)
		u := float32(d) / float32(divisions)
		normal := math.NewVec3(x, 0, z)
		config.Vertices = append(config.Vertices,
			math.Vertex3D{Position: math.NewVec3(x*cy.Radius, hh, z*cy.Radius), Normal: normal, Texcoord: math.NewVec2(u, 0), Colour: math.NewVec4Create(1, 1, 1, 1)},
			math.Vertex3D{Position: math.NewVec3(x*cy.Radius, -hh, z*cy.Radius), Normal: normal, Texcoord: math.NewVec2(u, 1), Colour: math.NewVec4Create(1, 1, 1, 1)},
		)
	}
	for d := uint32(0); d < divisions; d++ {
		t0, b0 := 2*d, 2*d+1
		t1, b1 := 2*d+2, 2*d+3
		config.Indices = append(config.Indices, t0, t1, b0, t1, b1, b0)
	}

	appendCap := func(y float32, normal math.Vec3, up bool) {
		center := uint32(len(config.Vertices))
		config.Vertices = append(config.Vertices, math.Vertex3D{
			Position: math.NewVec3(0, y, 0),
			Normal:   normal,
			Texcoord: math.NewVec2(0.5, 0.5),
			Colour:   math.NewVec4Create(1, 1, 1, 1),
		})
		for d := uint32(0); d < divisions; d++ {
			x, z := rim(d)
			config.Vertices = append(config.Vertices, math.Vertex3D{
				Position: math.NewVec3(x*cy.Radius, y, z*cy.Radius),
				Normal:   normal,
				Texcoord: math.NewVec2(0.5+x*0.5, 0.5+z*0.5),
				Colour:   math.NewVec4Create(1, 1, 1, 1),
			})
		}
		for d := uint32(0); d < divisions; d++ {
			current := center + 1 + d
			next := center + 1 + (d+1)%divisions
			if up {
				config.Indices = append(config.Indices, center, next, current)
			} else {
				config.Indices = append(config.Indices, center, current, next)
			}
		}
	}
	appendCap(hh, math.NewVec3(0, 1, 0), true)
	appendCap(-hh, math.NewVec3(0, -1, 0), false)

	return config
}

// tessellateTriangleMesh emits one vertex per face corner, assigns face
// normals and then merges the corners that ended up identical.
func tessellateTriangleMesh(tm *metadata.TriangleMesh) (*metadata.GeometryConfig, error) {
	vertices := make([]math.Vertex3D, 0, len(tm.Faces)*3)
	indices := make([]uint32, 0, len(tm.Faces)*3)

	for f, face := range tm.Faces {
		for _, corner := range face {
			if int(corner.Point) >= len(tm.Points) || int(corner.TexCoord) >= len(tm.TexCoords) {
				err := fmt.Errorf("func Tessellate - face %d references point %d / texcoord %d, mesh has %d / %d", f, corner.Point, corner.TexCoord, len(tm.Points), len(tm.TexCoords))
				core.LogWarn(err.Error())
				return nil, err
			}
			indices = append(indices, uint32(len(vertices)))
			vertices = append(vertices, math.Vertex3D{
				Position: tm.Points[corner.Point],
				Texcoord: tm.TexCoords[corner.TexCoord],
				Colour:   math.NewVec4Create(1, 1, 1, 1),
			})
		}
	}

	math.GeometryGenerateNormals(vertices, indices)

	return &metadata.GeometryConfig{
		Vertices: math.GeometryDeduplicateVertices(vertices, indices),
		Indices:  indices,
	}, nil
}
