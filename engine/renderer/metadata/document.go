package metadata

/**
 * @brief A decoded scene document: the geometry and material tables plus the
 * root of the object tree.
 */
type SceneDocument struct {
	Geometries []GeometryDescriptor
	Materials  []MaterialDescriptor
	Object     *ObjectDescriptor
}

const (
	ObjectTypeGroup = "Group"
	ObjectTypeMesh  = "Mesh"
)

/**
 * @brief One node of the document's object tree. Geometry and Material are
 * only meaningful for Mesh objects, Children only for Group objects.
 */
type ObjectDescriptor struct {
	UUID string
	Name string
	Type string
	/** @brief The row-major matrix as found in the document; nil when absent. */
	Matrix []float64

	Geometry string
	Material string

	Children []*ObjectDescriptor
}
