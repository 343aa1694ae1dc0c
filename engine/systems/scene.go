package systems

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spaghettifunk/threeview/engine/core"
	"github.com/spaghettifunk/threeview/engine/math"
	"github.com/spaghettifunk/threeview/engine/renderer/metadata"
)

// namespace for node IDs of objects that carry no uuid of their own
var nodeIDNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/spaghettifunk/threeview/node"))

// SceneBuilder converts a decoded scene document into a tree of nodes.
type SceneBuilder struct {
	geometries *GeometryFactory
	materials  *MaterialMapper
}

func NewSceneBuilder(geometries *GeometryFactory, materials *MaterialMapper) *SceneBuilder {
	return &SceneBuilder{
		geometries: geometries,
		materials:  materials,
	}
}

/**
 * @brief Builds the scene graph of a whole document. The geometry and
 * material tables live only for the duration of the call.
 *
 * @param doc The decoded document.
 * @return The root node, which is nil when the top-level object yields
 * nothing, or an error if the document is nil.
 */
func (sb *SceneBuilder) Build(doc *metadata.SceneDocument) (*metadata.Node, error) {
	if doc == nil || doc.Object == nil {
		err := fmt.Errorf("func Build - document has no object: %w", core.ErrMalformedDocument)
		core.LogWarn(err.Error())
		return nil, err
	}

	geometries := sb.geometries.BuildAll(doc.Geometries)
	materials := sb.materials.BuildAll(doc.Materials)

	root := sb.buildObject(doc.Object, geometries, materials, "", 0)
	if root == nil {
		core.LogInfo("top-level object of type '%s' produced no node.", doc.Object.Type)
	}
	return root, nil
}

/**
 * @brief Builds the node for a single object and, for groups, its subtree.
 *
 * @param obj The object descriptor.
 * @param geometries Mesh resources keyed by geometry UUID.
 * @param materials Surface appearances keyed by material UUID.
 * @return The node, or nil if the object produces nothing.
 */
func (sb *SceneBuilder) BuildObject(obj *metadata.ObjectDescriptor, geometries map[string]*metadata.MeshResource, materials map[string]*metadata.SurfaceAppearance) *metadata.Node {
	return sb.buildObject(obj, geometries, materials, "", 0)
}

func (sb *SceneBuilder) buildObject(obj *metadata.ObjectDescriptor, geometries map[string]*metadata.MeshResource, materials map[string]*metadata.SurfaceAppearance, parentID string, index int) *metadata.Node {
	if obj == nil {
		return nil
	}

	switch obj.Type {
	case metadata.ObjectTypeGroup:
		group := &metadata.Node{
			ID:   nodeID(obj, parentID, index),
			Name: obj.Name,
			Type: metadata.NodeTypeGroup,
		}
		for i, childObj := range obj.Children {
			child := sb.buildObject(childObj, geometries, materials, group.ID, i)
			if child == nil {
				continue
			}
			group.Children = append(group.Children, child)
		}
		ApplyMatrix(group, obj.Matrix)
		return group

	case metadata.ObjectTypeMesh:
		resource, ok := geometries[obj.Geometry]
		if !ok {
			core.LogDebug("mesh '%s' references unknown geometry '%s', skipping.", obj.UUID, obj.Geometry)
			return nil
		}
		var material *metadata.SurfaceAppearance
		if shared, ok := materials[obj.Material]; ok {
			appearance := *shared
			material = &appearance
		} else {
			core.LogDebug("mesh '%s' references unknown material '%s', leaving it unshaded.", obj.UUID, obj.Material)
		}

		mesh := resource.Clone()
		node := &metadata.Node{
			ID:       nodeID(obj, parentID, index),
			Name:     obj.Name,
			Type:     metadata.NodeTypeMesh,
			Mesh:     mesh,
			Material: material,
		}
		node.Transforms = append(node.Transforms, mesh.Transforms...)
		ApplyMatrix(node, obj.Matrix)
		return node
	}

	core.LogDebug("object '%s' has unsupported type '%s', skipping.", obj.UUID, obj.Type)
	return nil
}

/**
 * @brief Appends the affine described by a row-major 4x4 matrix to the
 * node's transform list. Nothing happens when the matrix is absent or does
 * not hold exactly 16 values.
 */
func ApplyMatrix(node *metadata.Node, matrix []float64) {
	if matrix == nil {
		return
	}
	affine, ok := math.NewAffineFromRowMajor(matrix)
	if !ok {
		core.LogDebug("node '%s': matrix has %d elements instead of 16, ignoring it.", node.ID, len(matrix))
		return
	}
	node.Transforms = append(node.Transforms, affine)
}

func nodeID(obj *metadata.ObjectDescriptor, parentID string, index int) string {
	if obj.UUID != "" {
		return obj.UUID
	}
	return uuid.NewSHA1(nodeIDNamespace, fmt.Appendf(nil, "%s/%d", parentID, index)).String()
}
