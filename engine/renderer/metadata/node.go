package metadata

import (
	"github.com/spaghettifunk/threeview/engine/containers"
	"github.com/spaghettifunk/threeview/engine/math"
)

type NodeType uint8

const (
	NodeTypeGroup NodeType = iota
	NodeTypeMesh
)

func (t NodeType) String() string {
	if t == NodeTypeMesh {
		return "Mesh"
	}
	return "Group"
}

/**
 * @brief A node of the built scene graph. Group nodes own Children; Mesh
 * nodes own Mesh and optionally Material. Nodes form a strict tree: every
 * node is owned by exactly one parent, the root by the caller.
 */
type Node struct {
	/** @brief Stable identifier of the node. */
	ID string
	/** @brief The object name from the document, possibly empty. */
	Name string
	Type NodeType
	/** @brief Local transforms, first entry outermost. */
	Transforms []math.Affine

	Children []*Node

	Mesh *MeshResource
	/** @brief Nil when the referenced material was not found. */
	Material *SurfaceAppearance
}

func (n *Node) IsGroup() bool {
	return n.Type == NodeTypeGroup
}

func (n *Node) IsMesh() bool {
	return n.Type == NodeTypeMesh
}

// LocalAffine composes the node's transform list into one affine.
func (n *Node) LocalAffine() math.Affine {
	return math.ComposeAffines(n.Transforms)
}

// Local returns the node's local transform as a Mat4.
func (n *Node) Local() math.Mat4 {
	return n.LocalAffine().ToMat4()
}

const walkQueueSize = 64

// Walk visits n and its descendants breadth-first, passing each node and its
// depth (the root is 0). Returning false from fn stops the walk.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	type entry struct {
		node  *Node
		depth int
	}

	queue := containers.NewRingQueue[entry](walkQueueSize)
	_ = queue.Enqueue(entry{n, 0})
	for !queue.IsEmpty() {
		e, _ := queue.Dequeue()
		if !fn(e.node, e.depth) {
			return
		}
		for _, child := range e.node.Children {
			if queue.IsFull() {
				_ = queue.Resize(queue.Len() * 2)
			}
			_ = queue.Enqueue(entry{child, e.depth + 1})
		}
	}
}

/** @brief Counts gathered over a scene graph. */
type NodeStats struct {
	Nodes    int
	Groups   int
	Meshes   int
	Unshaded int
	MaxDepth int
}

func (n *Node) Stats() NodeStats {
	stats := NodeStats{}
	n.Walk(func(node *Node, depth int) bool {
		stats.Nodes++
		if node.IsMesh() {
			stats.Meshes++
			if node.Material == nil {
				stats.Unshaded++
			}
		} else {
			stats.Groups++
		}
		stats.MaxDepth = max(stats.MaxDepth, depth)
		return true
	})
	return stats
}
