package math

import "github.com/spaghettifunk/threeview/engine/core"

// GeometryGenerateNormals assigns each triangle's face normal (edge1 x edge2)
// to its three vertices. Winding is counter-clockwise for front faces.
func GeometryGenerateNormals(vertices []Vertex3D, indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		i0 := indices[i+0]
		i1 := indices[i+1]
		i2 := indices[i+2]

		normal := FaceNormal(vertices[i0].Position, vertices[i1].Position, vertices[i2].Position)

		// NOTE: This just generates a face normal. Smoothing out should be done in a separate pass if desired.
		vertices[i0].Normal = normal
		vertices[i1].Normal = normal
		vertices[i2].Normal = normal
	}
}

// FaceNormal returns the unit normal of the triangle (p0, p1, p2).
func FaceNormal(p0, p1, p2 Vec3) Vec3 {
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalized()
}

func Vertex3dEqual(vert0 Vertex3D, vert1 Vertex3D) bool {
	return vert0.Position.Compare(vert1.Position, K_FLOAT_EPSILON) &&
		vert0.Normal.Compare(vert1.Normal, K_FLOAT_EPSILON) &&
		vert0.Texcoord.Compare(vert1.Texcoord, K_FLOAT_EPSILON) &&
		vert0.Colour.Compare(vert1.Colour, K_FLOAT_EPSILON)
}

func reassignIndex(indices []uint32, from uint32, to uint32) {
	for i := range indices {
		if indices[i] == from {
			indices[i] = to
		} else if indices[i] > from {
			// Pull in all indicies higher than 'from' by 1.
			indices[i]--
		}
	}
}

// GeometryDeduplicateVertices collapses identical vertices and rewrites indices in place.
// It returns the unique vertices.
func GeometryDeduplicateVertices(vertices []Vertex3D, indices []uint32) []Vertex3D {
	uniqueVerts := make([]Vertex3D, 0, len(vertices))
	foundCount := uint32(0)

	for v := range vertices {
		found := false
		for u := range uniqueVerts {
			if Vertex3dEqual(vertices[v], uniqueVerts[u]) {
				// Reassign indices, do not copy
				reassignIndex(indices, uint32(v)-foundCount, uint32(u))
				found = true
				foundCount++
				break
			}
		}

		if !found {
			uniqueVerts = append(uniqueVerts, vertices[v])
		}
	}

	core.LogDebug("geometry_deduplicate_vertices: removed %d vertices, orig/now %d/%d.", len(vertices)-len(uniqueVerts), len(vertices), len(uniqueVerts))

	return uniqueVerts
}

// GeometryExtents returns the bounding box of the vertex positions.
func GeometryExtents(vertices []Vertex3D) Extents3D {
	if len(vertices) == 0 {
		return Extents3D{}
	}
	ext := Extents3D{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		ext = ext.Expand(v.Position)
	}
	return ext
}

// Expand returns the extents grown to contain p.
func (e Extents3D) Expand(p Vec3) Extents3D {
	return Extents3D{
		Min: Vec3{min(e.Min.X, p.X), min(e.Min.Y, p.Y), min(e.Min.Z, p.Z)},
		Max: Vec3{max(e.Max.X, p.X), max(e.Max.Y, p.Y), max(e.Max.Z, p.Z)},
	}
}
