package metadata

import "github.com/spaghettifunk/threeview/engine/math"

/**
 * @brief A material entry of a scene document, in physically based terms.
 */
type MaterialDescriptor struct {
	/** @brief The identifier meshes reference this material by. */
	UUID string
	/** @brief The declared three.js material type. Informational only. */
	Type string
	/** @brief The packed 0xRRGGBB colour. */
	Color uint32
	/** @brief Roughness in [0, 1]. */
	Roughness float64
	/** @brief Metalness in [0, 1]. */
	Metalness float64
}

/**
 * @brief The derived, renderer-agnostic shading of a surface for a
 * Phong-style lighting model.
 */
type SurfaceAppearance struct {
	/** @brief The diffuse colour, alpha always 1. */
	DiffuseColour math.Vec4
	/** @brief The specular colour: white or black. */
	SpecularColour math.Vec4
	/** @brief The specular exponent, determines how concentrated the specular lighting is. */
	SpecularPower float32
}
