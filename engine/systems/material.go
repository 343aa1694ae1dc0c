package systems

import (
	"github.com/spaghettifunk/threeview/engine/core"
	"github.com/spaghettifunk/threeview/engine/math"
	"github.com/spaghettifunk/threeview/engine/renderer/metadata"
)

/** @brief The specular power of a fully smooth surface. */
const MaxSpecularPower float32 = 10.0

var (
	specularWhite = math.NewVec4Create(1, 1, 1, 1)
	specularBlack = math.NewVec4Create(0, 0, 0, 1)
)

// MaterialMapper approximates physically based material descriptors with a
// single specular colour and exponent.
type MaterialMapper struct{}

func NewMaterialMapper() *MaterialMapper {
	return &MaterialMapper{}
}

/**
 * @brief Maps a material descriptor onto a surface appearance.
 * Any positive metalness yields a white specular colour, anything else black.
 * The specular power is 10 * (1 - roughness).
 */
func (mm *MaterialMapper) Build(desc metadata.MaterialDescriptor) *metadata.SurfaceAppearance {
	specular := specularBlack
	if desc.Metalness > 0 {
		specular = specularWhite
	}
	return &metadata.SurfaceAppearance{
		DiffuseColour:  ColourFromPacked(desc.Color),
		SpecularColour: specular,
		SpecularPower:  MaxSpecularPower * float32(1-desc.Roughness),
	}
}

// BuildAll maps every descriptor into a UUID keyed table. A repeated UUID
// replaces the earlier entry.
func (mm *MaterialMapper) BuildAll(descs []metadata.MaterialDescriptor) map[string]*metadata.SurfaceAppearance {
	materials := make(map[string]*metadata.SurfaceAppearance, len(descs))
	for _, desc := range descs {
		if _, exists := materials[desc.UUID]; exists {
			core.LogDebug("material '%s' declared more than once, keeping the last one.", desc.UUID)
		}
		materials[desc.UUID] = mm.Build(desc)
	}
	return materials
}

// ColourFromPacked unpacks a 0xRRGGBB integer into an opaque normalized colour.
func ColourFromPacked(packed uint32) math.Vec4 {
	r := float32((packed>>16)&0xFF) / 255.0
	g := float32((packed>>8)&0xFF) / 255.0
	b := float32(packed&0xFF) / 255.0
	return math.NewVec4Create(r, g, b, 1.0)
}
