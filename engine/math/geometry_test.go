package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaceNormal(t *testing.T) {
	// counter-clockwise seen from +Z
	n := FaceNormal(NewVec3(0, 0, 0), NewVec3(1, 0, 0), NewVec3(0, 1, 0))
	assertVec3(t, NewVec3(0, 0, 1), n)

	n = FaceNormal(NewVec3(0, 0, 0), NewVec3(0, 1, 0), NewVec3(1, 0, 0))
	assertVec3(t, NewVec3(0, 0, -1), n)
}

func TestGeometryGenerateNormals(t *testing.T) {
	vertices := []Vertex3D{
		{Position: NewVec3(0, 0, 0)},
		{Position: NewVec3(2, 0, 0)},
		{Position: NewVec3(0, 0, -2)},
	}
	GeometryGenerateNormals(vertices, []uint32{0, 1, 2})
	for _, v := range vertices {
		assertVec3(t, NewVec3(0, 1, 0), v.Normal)
	}
}

func TestGeometryDeduplicateVertices(t *testing.T) {
	a := Vertex3D{Position: NewVec3(0, 0, 0)}
	b := Vertex3D{Position: NewVec3(1, 0, 0)}
	c := Vertex3D{Position: NewVec3(0, 1, 0)}
	d := Vertex3D{Position: NewVec3(1, 1, 0)}

	vertices := []Vertex3D{a, b, c, b, d, c}
	indices := []uint32{0, 1, 2, 3, 4, 5}

	unique := GeometryDeduplicateVertices(vertices, indices)
	require.Len(t, unique, 4)
	assert.Equal(t, []Vertex3D{a, b, c, d}, unique)
	assert.Equal(t, []uint32{0, 1, 2, 1, 3, 2}, indices)
}

func TestGeometryExtents(t *testing.T) {
	assert.Equal(t, Extents3D{}, GeometryExtents(nil))

	ext := GeometryExtents([]Vertex3D{
		{Position: NewVec3(-1, 2, 0)},
		{Position: NewVec3(3, -4, 1)},
		{Position: NewVec3(0, 0, -5)},
	})
	assert.Equal(t, NewVec3(-1, -4, -5), ext.Min)
	assert.Equal(t, NewVec3(3, 2, 1), ext.Max)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 3, Clamp(1, 3, 10))
	assert.Equal(t, 10, Clamp(11, 3, 10))
	assert.Equal(t, 5, Clamp(5, 3, 10))
	assert.Equal(t, float32(0.5), Clamp(float32(0.5), 0, 1))
}
