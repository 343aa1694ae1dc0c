package loaders

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/threeview/engine/core"
	"github.com/spaghettifunk/threeview/engine/renderer/metadata"
)

const minimalDocument = `{
	"geometries": [
		{"uuid": "g1", "type": "SphereGeometry", "radius": 2.0, "widthSegments": 16, "heightSegments": 8},
		{"uuid": "g2", "type": "CylinderGeometry", "radiusTop": 0, "radiusBottom": 3.0, "height": 5.0, "radialSegments": 8},
		{"uuid": "g3", "type": "ConeGeometry", "radius": 1, "height": 2, "radialSegments": 12},
		{"uuid": "g4", "type": "BoxGeometry", "width": 1, "height": 2, "depth": 3},
		{"uuid": "g5", "type": "PlaneGeometry", "width": 4, "height": 5},
		{"uuid": "g6", "type": "TorusKnotGeometry", "radius": "ignored"}
	],
	"materials": [
		{"uuid": "m1", "type": "MeshStandardMaterial", "color": 16711680, "roughness": 0.5, "metalness": 0}
	],
	"object": {
		"uuid": "root",
		"type": "Group",
		"name": "scene",
		"matrix": [1,0,0,1, 0,1,0,2, 0,0,1,3, 0,0,0,1],
		"children": [
			{"uuid": "c1", "type": "Mesh", "geometry": "g1", "material": "m1"},
			{"uuid": "c2", "type": "Mesh", "geometry": "nope", "material": "m1", "matrix": [1, 2]},
			{"type": "Group"},
			{"type": "PointLight", "intensity": 2}
		]
	}
}`

func TestDecode(t *testing.T) {
	doc, err := Decode(strings.NewReader(minimalDocument))
	require.NoError(t, err)

	require.Len(t, doc.Geometries, 6)
	assert.Equal(t, metadata.GeometryDescriptor{UUID: "g1", Type: metadata.GeometryTypeSphere, Params: metadata.SphereParams{Radius: 2, WidthSegments: 16}}, doc.Geometries[0])
	assert.Equal(t, metadata.CylinderParams{RadiusTop: 0, RadiusBottom: 3, Height: 5, RadialSegments: 8}, doc.Geometries[1].Params)
	assert.Equal(t, metadata.ConeParams{Radius: 1, Height: 2, RadialSegments: 12}, doc.Geometries[2].Params)
	assert.Equal(t, metadata.BoxParams{Width: 1, Height: 2, Depth: 3}, doc.Geometries[3].Params)
	assert.Equal(t, metadata.PlaneParams{Width: 4, Height: 5}, doc.Geometries[4].Params)
	assert.Equal(t, metadata.GeometryType("TorusKnotGeometry"), doc.Geometries[5].Type)
	assert.Nil(t, doc.Geometries[5].Params)

	require.Len(t, doc.Materials, 1)
	assert.Equal(t, metadata.MaterialDescriptor{UUID: "m1", Type: "MeshStandardMaterial", Color: 0xFF0000, Roughness: 0.5}, doc.Materials[0])

	root := doc.Object
	require.NotNil(t, root)
	assert.Equal(t, "root", root.UUID)
	assert.Equal(t, "scene", root.Name)
	assert.Len(t, root.Matrix, 16)
	require.Len(t, root.Children, 4)
	assert.Equal(t, "g1", root.Children[0].Geometry)
	assert.Equal(t, "m1", root.Children[0].Material)
	assert.Equal(t, []float64{1, 2}, root.Children[1].Matrix)
	assert.Empty(t, root.Children[2].Children)
	assert.Equal(t, "PointLight", root.Children[3].Type)
}

func TestDecodeMalformed(t *testing.T) {
	cases := map[string]string{
		"syntax":              `{"geometries": [`,
		"not an object":       `[]`,
		"missing geometries":  `{"materials": [], "object": {"type": "Group"}}`,
		"null geometries":     `{"geometries": null, "materials": [], "object": {"type": "Group"}}`,
		"missing materials":   `{"geometries": [], "object": {"type": "Group"}}`,
		"missing object":      `{"geometries": [], "materials": []}`,
		"null object":         `{"geometries": [], "materials": [], "object": null}`,
		"geometry no uuid":    `{"geometries": [{"type": "BoxGeometry", "width": 1, "height": 1, "depth": 1}], "materials": [], "object": {"type": "Group"}}`,
		"geometry no type":    `{"geometries": [{"uuid": "g"}], "materials": [], "object": {"type": "Group"}}`,
		"sphere no radius":    `{"geometries": [{"uuid": "g", "type": "SphereGeometry", "widthSegments": 8}], "materials": [], "object": {"type": "Group"}}`,
		"box bad width":       `{"geometries": [{"uuid": "g", "type": "BoxGeometry", "width": "1", "height": 1, "depth": 1}], "materials": [], "object": {"type": "Group"}}`,
		"cylinder no height":  `{"geometries": [{"uuid": "g", "type": "CylinderGeometry", "radiusTop": 1, "radiusBottom": 1, "radialSegments": 8}], "materials": [], "object": {"type": "Group"}}`,
		"material no color":   `{"geometries": [], "materials": [{"uuid": "m", "roughness": 1, "metalness": 0}], "object": {"type": "Group"}}`,
		"material no uuid":    `{"geometries": [], "materials": [{"color": 1, "roughness": 1, "metalness": 0}], "object": {"type": "Group"}}`,
		"object no type":      `{"geometries": [], "materials": [], "object": {"uuid": "o"}}`,
		"child no type":       `{"geometries": [], "materials": [], "object": {"type": "Group", "children": [{"uuid": "c"}]}}`,
		"null child":          `{"geometries": [], "materials": [], "object": {"type": "Group", "children": [null]}}`,
		"mesh no geometry":    `{"geometries": [], "materials": [], "object": {"type": "Mesh", "material": "m"}}`,
		"mesh no material":    `{"geometries": [], "materials": [], "object": {"type": "Mesh", "geometry": "g"}}`,
		"matrix not an array": `{"geometries": [], "materials": [], "object": {"type": "Group", "matrix": "identity"}}`,
		"matrix of strings":   `{"geometries": [], "materials": [], "object": {"type": "Group", "matrix": ["1"]}}`,
		"matrix with a null":  `{"geometries": [], "materials": [], "object": {"type": "Group", "matrix": [null,0,0,0, 0,1,0,0, 0,0,1,0, 0,0,0,1]}}`,
	}

	for name, document := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(document))
			assert.ErrorIs(t, err, core.ErrMalformedDocument)
		})
	}
}

func TestSceneLoaderLoad(t *testing.T) {
	sl := &SceneLoader{}

	resource, err := sl.Load(filepath.Join("testdata", "sample.json"), metadata.ResourceTypeScene, nil)
	require.NoError(t, err)
	assert.Equal(t, "sample.json", resource.Name)
	assert.Equal(t, metadata.ResourceTypeScene, resource.Type)
	assert.NotZero(t, resource.DataSize)

	doc, ok := resource.Data.(*metadata.SceneDocument)
	require.True(t, ok)
	assert.Len(t, doc.Geometries, 7)
	assert.Len(t, doc.Materials, 3)
	assert.Equal(t, "sample", doc.Object.Name)

	require.NoError(t, sl.Unload(resource))
	assert.Nil(t, resource.Data)
}

func TestSceneLoaderLoadErrors(t *testing.T) {
	sl := &SceneLoader{}

	_, err := sl.Load(filepath.Join(t.TempDir(), "missing.json"), metadata.ResourceTypeScene, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"geometries": [}`), 0o644))
	_, err = sl.Load(path, metadata.ResourceTypeScene, nil)
	assert.ErrorIs(t, err, core.ErrMalformedDocument)
}
