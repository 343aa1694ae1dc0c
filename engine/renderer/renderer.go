package renderer

import (
	"fmt"
	"slices"
	"sync"

	"github.com/spaghettifunk/threeview/engine/core"
	"github.com/spaghettifunk/threeview/engine/math"
	"github.com/spaghettifunk/threeview/engine/renderer/metadata"
	"github.com/spaghettifunk/threeview/engine/systems"
)

/** @brief Totals of the triangle buffers a scene graph expands to. */
type TessellationStats struct {
	Vertices  int
	Triangles int
	/** @brief World-space bounds of every tessellated vertex. Zero when there are none. */
	Bounds math.Extents3D
}

// HeadlessHost is a Host without a display. It keeps the attached roots and
// logs what a renderer would have to upload for each of them.
type HeadlessHost struct {
	mutex sync.RWMutex
	roots []*metadata.Node
}

func NewHeadlessHost() *HeadlessHost {
	return &HeadlessHost{}
}

func (h *HeadlessHost) Attach(root *metadata.Node) error {
	if root == nil {
		return fmt.Errorf("func Attach - cannot attach a nil root")
	}

	h.mutex.Lock()
	if slices.Contains(h.roots, root) {
		h.mutex.Unlock()
		return fmt.Errorf("func Attach - root '%s' is already attached", root.ID)
	}
	h.roots = append(h.roots, root)
	h.mutex.Unlock()

	stats := root.Stats()
	tess := Tessellation(root)
	origin := root.LocalAffine().Translation()
	core.LogInfo("attached '%s' at (%g, %g, %g): %d nodes (%d groups, %d meshes, %d unshaded), depth %d, %d vertices, %d triangles.",
		root.Name, origin.X, origin.Y, origin.Z, stats.Nodes, stats.Groups, stats.Meshes, stats.Unshaded, stats.MaxDepth, tess.Vertices, tess.Triangles)
	core.LogDebug("'%s' spans (%g, %g, %g) to (%g, %g, %g).", root.Name,
		tess.Bounds.Min.X, tess.Bounds.Min.Y, tess.Bounds.Min.Z, tess.Bounds.Max.X, tess.Bounds.Max.Y, tess.Bounds.Max.Z)
	return nil
}

func (h *HeadlessHost) Detach(root *metadata.Node) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	idx := slices.Index(h.roots, root)
	if idx < 0 {
		return fmt.Errorf("func Detach - root is not attached")
	}
	h.roots = slices.Delete(h.roots, idx, idx+1)
	core.LogDebug("detached '%s'.", root.Name)
	return nil
}

// Roots returns the attached roots in attach order.
func (h *HeadlessHost) Roots() []*metadata.Node {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return slices.Clone(h.roots)
}

/**
 * @brief Tessellates every mesh below root and sums the buffer sizes. Each
 * vertex is moved through the transforms of its node and all ancestors to
 * compute the world-space bounds. Meshes that fail to tessellate are logged
 * and left out of the totals.
 */
func Tessellation(root *metadata.Node) TessellationStats {
	stats := TessellationStats{}
	empty := true

	var visit func(node *metadata.Node, parent math.Affine)
	visit = func(node *metadata.Node, parent math.Affine) {
		world := parent.Mul(node.LocalAffine())
		if node.IsMesh() {
			config, err := systems.Tessellate(node.Mesh)
			if err != nil {
				core.LogWarn("mesh node '%s' could not be tessellated: %s", node.ID, err.Error())
			} else {
				stats.Vertices += config.VertexCount()
				stats.Triangles += config.TriangleCount()
				for _, v := range config.Vertices {
					p := world.TransformPoint(v.Position)
					if empty {
						stats.Bounds = math.Extents3D{Min: p, Max: p}
						empty = false
						continue
					}
					stats.Bounds = stats.Bounds.Expand(p)
				}
			}
		}
		for _, child := range node.Children {
			visit(child, world)
		}
	}
	visit(root, math.NewAffineIdentity())

	return stats
}
