package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/threeview/engine/math"
	"github.com/spaghettifunk/threeview/engine/renderer/metadata"
	"github.com/spaghettifunk/threeview/engine/systems"
)

func testScene() *metadata.Node {
	return &metadata.Node{
		ID:   "root",
		Name: "scene",
		Type: metadata.NodeTypeGroup,
		Children: []*metadata.Node{
			{ID: "box", Type: metadata.NodeTypeMesh, Mesh: &metadata.MeshResource{Shape: metadata.Box{Width: 1, Height: 1, Depth: 1}}},
			{ID: "group", Type: metadata.NodeTypeGroup, Children: []*metadata.Node{
				{ID: "cone", Type: metadata.NodeTypeMesh, Mesh: &metadata.MeshResource{Shape: systems.GenerateCone(1, 1, 8)}},
			}},
			{ID: "broken", Type: metadata.NodeTypeMesh, Mesh: &metadata.MeshResource{}},
		},
	}
}

func TestTessellation(t *testing.T) {
	stats := Tessellation(testScene())
	assert.Equal(t, 12+16, stats.Triangles)
	assert.Greater(t, stats.Vertices, 24)
	assert.Equal(t, math.NewVec3(-1, -0.5, -1), stats.Bounds.Min)
	assert.Equal(t, math.NewVec3(1, 0.5, 1), stats.Bounds.Max)
}

func TestTessellationWorldBounds(t *testing.T) {
	shift := math.NewAffine(
		1, 0, 0, 10,
		0, 1, 0, 0,
		0, 0, 1, 0)
	root := &metadata.Node{
		ID:         "root",
		Type:       metadata.NodeTypeGroup,
		Transforms: []math.Affine{shift},
		Children: []*metadata.Node{
			{
				ID:         "box",
				Type:       metadata.NodeTypeMesh,
				Transforms: []math.Affine{math.NewAffineMirrorY(), shift},
				Mesh:       &metadata.MeshResource{Shape: metadata.Box{Width: 2, Height: 4, Depth: 2}},
			},
		},
	}

	stats := Tessellation(root)
	assert.Equal(t, 12, stats.Triangles)
	assert.InDelta(t, 19.0, stats.Bounds.Min.X, 1e-5)
	assert.InDelta(t, 21.0, stats.Bounds.Max.X, 1e-5)
	assert.InDelta(t, -2.0, stats.Bounds.Min.Y, 1e-5)
	assert.InDelta(t, 2.0, stats.Bounds.Max.Y, 1e-5)

	assert.Equal(t, TessellationStats{}, Tessellation(&metadata.Node{ID: "empty", Type: metadata.NodeTypeGroup}))
}

func TestHeadlessHostAttachDetach(t *testing.T) {
	h := NewHeadlessHost()
	var _ Host = h

	first := testScene()
	second := &metadata.Node{ID: "other", Type: metadata.NodeTypeGroup}

	require.NoError(t, h.Attach(first))
	require.NoError(t, h.Attach(second))
	assert.Equal(t, []*metadata.Node{first, second}, h.Roots())

	assert.Error(t, h.Attach(first))
	assert.Error(t, h.Attach(nil))

	require.NoError(t, h.Detach(first))
	assert.Equal(t, []*metadata.Node{second}, h.Roots())
	assert.Error(t, h.Detach(first))
}
