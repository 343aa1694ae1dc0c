package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/threeview/engine/math"
)

func testTree() *Node {
	return &Node{
		ID:   "root",
		Type: NodeTypeGroup,
		Children: []*Node{
			{ID: "a", Type: NodeTypeMesh, Mesh: &MeshResource{Shape: Box{1, 1, 1}}, Material: &SurfaceAppearance{}},
			{ID: "b", Type: NodeTypeGroup, Children: []*Node{
				{ID: "c", Type: NodeTypeMesh, Mesh: &MeshResource{Shape: Sphere{1, 8}}},
			}},
			{ID: "d", Type: NodeTypeMesh, Mesh: &MeshResource{Shape: Box{2, 2, 2}}},
		},
	}
}

func TestNodeWalkBreadthFirst(t *testing.T) {
	visited := []string{}
	depths := []int{}
	testTree().Walk(func(node *Node, depth int) bool {
		visited = append(visited, node.ID)
		depths = append(depths, depth)
		return true
	})
	assert.Equal(t, []string{"root", "a", "b", "d", "c"}, visited)
	assert.Equal(t, []int{0, 1, 1, 1, 2}, depths)
}

func TestNodeWalkStops(t *testing.T) {
	count := 0
	testTree().Walk(func(node *Node, depth int) bool {
		count++
		return node.ID != "a"
	})
	assert.Equal(t, 2, count)
}

func TestNodeWalkWideTree(t *testing.T) {
	root := &Node{ID: "root"}
	for i := 0; i < walkQueueSize*3; i++ {
		root.Children = append(root.Children, &Node{Type: NodeTypeMesh})
	}
	count := 0
	root.Walk(func(node *Node, depth int) bool {
		count++
		return true
	})
	assert.Equal(t, walkQueueSize*3+1, count)
}

func TestNodeStats(t *testing.T) {
	stats := testTree().Stats()
	assert.Equal(t, NodeStats{Nodes: 5, Groups: 2, Meshes: 3, Unshaded: 2, MaxDepth: 2}, stats)
}

func TestNodeLocal(t *testing.T) {
	n := &Node{}
	assert.Equal(t, math.NewMat4Identity(), n.Local())

	n.Transforms = []math.Affine{
		math.NewAffineMirrorY(),
		math.NewAffine(
			1, 0, 0, 0,
			0, 1, 0, 2,
			0, 0, 1, 0),
	}
	// translate first, then mirror
	p := math.NewVec3(0, 1, 0).Transform(n.Local())
	assert.Equal(t, math.NewVec3(0, -3, 0), p)
}

func TestMeshResourceClone(t *testing.T) {
	original := &MeshResource{
		GeometryUUID: "g",
		Shape: &TriangleMesh{
			Points:    []math.Vec3{{X: 1}},
			TexCoords: []math.Vec2{{X: 0.5}},
			Faces:     []Face{{{Point: 0}, {Point: 0}, {Point: 0}}},
		},
		Transforms: []math.Affine{math.NewAffineMirrorY()},
	}

	clone := original.Clone()
	require.Equal(t, original, clone)

	clone.Shape.(*TriangleMesh).Points[0].X = 9
	clone.Transforms[0] = math.NewAffineIdentity()
	assert.Equal(t, float32(1), original.Shape.(*TriangleMesh).Points[0].X)
	assert.Equal(t, math.NewAffineMirrorY(), original.Transforms[0])

	primitive := &MeshResource{Shape: Box{1, 2, 3}}
	assert.Equal(t, primitive, primitive.Clone())
}

func TestTypeNames(t *testing.T) {
	assert.Equal(t, "Group", NodeTypeGroup.String())
	assert.Equal(t, "Mesh", NodeTypeMesh.String())
	assert.Equal(t, "triangle-mesh", ShapeKindTriangleMesh.String())
	assert.Equal(t, "scene", ResourceTypeScene.String())
	assert.True(t, GeometryTypeCone.Supported())
	assert.False(t, GeometryType("TorusGeometry").Supported())
}
