package loaders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spaghettifunk/threeview/engine/core"
	"github.com/spaghettifunk/threeview/engine/renderer/metadata"
)

// SceneLoader reads three.js style JSON scene documents.
type SceneLoader struct{}

func (sl *SceneLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		core.LogError("failed to open scene '%s': %s", path, err.Error())
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		core.LogError("failed to read scene '%s': %s", path, err.Error())
		return nil, err
	}

	doc, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &metadata.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		Type:     metadata.ResourceTypeScene,
		DataSize: uint64(len(data)),
		Data:     doc,
	}, nil
}

func (sl *SceneLoader) Unload(resource *metadata.Resource) error {
	if resource == nil {
		return nil
	}
	resource.Data = nil
	resource.DataSize = 0
	return nil
}

type rawDocument struct {
	Geometries []json.RawMessage `json:"geometries"`
	Materials  []json.RawMessage `json:"materials"`
	Object     *rawObject        `json:"object"`
}

type rawGeometry struct {
	UUID *string `json:"uuid"`
	Type *string `json:"type"`
}

type rawSphere struct {
	Radius        *float64 `json:"radius"`
	WidthSegments *float64 `json:"widthSegments"`
}

type rawCylinder struct {
	RadiusTop      *float64 `json:"radiusTop"`
	RadiusBottom   *float64 `json:"radiusBottom"`
	Height         *float64 `json:"height"`
	RadialSegments *float64 `json:"radialSegments"`
}

type rawCone struct {
	Radius         *float64 `json:"radius"`
	Height         *float64 `json:"height"`
	RadialSegments *float64 `json:"radialSegments"`
}

type rawBox struct {
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
	Depth  *float64 `json:"depth"`
}

type rawPlane struct {
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
}

type rawMaterial struct {
	UUID      *string  `json:"uuid"`
	Type      string   `json:"type"`
	Color     *float64 `json:"color"`
	Roughness *float64 `json:"roughness"`
	Metalness *float64 `json:"metalness"`
}

type rawObject struct {
	UUID     string          `json:"uuid"`
	Name     string          `json:"name"`
	Type     *string         `json:"type"`
	Matrix   json.RawMessage `json:"matrix"`
	Geometry *string         `json:"geometry"`
	Material *string         `json:"material"`
	Children []*rawObject    `json:"children"`
}

/**
 * @brief Decodes a scene document. Unknown geometry and object types are
 * kept as they are; missing required fields and JSON errors fail the whole
 * document with core.ErrMalformedDocument.
 *
 * @param r The reader holding the JSON document.
 * @return The decoded document, or an error.
 */
func Decode(r io.Reader) (*metadata.SceneDocument, error) {
	raw := rawDocument{}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, malformed("invalid JSON: %s", err.Error())
	}
	if raw.Geometries == nil {
		return nil, malformed("missing 'geometries'")
	}
	if raw.Materials == nil {
		return nil, malformed("missing 'materials'")
	}
	if raw.Object == nil {
		return nil, malformed("missing 'object'")
	}

	doc := &metadata.SceneDocument{
		Geometries: make([]metadata.GeometryDescriptor, 0, len(raw.Geometries)),
		Materials:  make([]metadata.MaterialDescriptor, 0, len(raw.Materials)),
	}

	for i, data := range raw.Geometries {
		geometry, err := decodeGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("geometries[%d]: %w", i, err)
		}
		doc.Geometries = append(doc.Geometries, geometry)
	}

	for i, data := range raw.Materials {
		material, err := decodeMaterial(data)
		if err != nil {
			return nil, fmt.Errorf("materials[%d]: %w", i, err)
		}
		doc.Materials = append(doc.Materials, material)
	}

	object, err := decodeObject(raw.Object, "object")
	if err != nil {
		return nil, err
	}
	doc.Object = object

	return doc, nil
}

func decodeGeometry(data json.RawMessage) (metadata.GeometryDescriptor, error) {
	raw := rawGeometry{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return metadata.GeometryDescriptor{}, malformed("geometry: %s", err.Error())
	}
	if raw.UUID == nil {
		return metadata.GeometryDescriptor{}, malformed("geometry without 'uuid'")
	}
	if raw.Type == nil {
		return metadata.GeometryDescriptor{}, malformed("geometry '%s' without 'type'", *raw.UUID)
	}

	desc := metadata.GeometryDescriptor{
		UUID: *raw.UUID,
		Type: metadata.GeometryType(*raw.Type),
	}

	if !desc.Type.Supported() {
		core.LogDebug("geometry '%s' has unsupported type '%s'.", desc.UUID, desc.Type)
		return desc, nil
	}

	var err error
	switch desc.Type {
	case metadata.GeometryTypeSphere:
		p := rawSphere{}
		if err = unmarshalParams(data, &p, desc.UUID); err == nil {
			err = requireFields(desc.UUID, field{"radius", p.Radius}, field{"widthSegments", p.WidthSegments})
		}
		if err == nil {
			desc.Params = metadata.SphereParams{Radius: *p.Radius, WidthSegments: int(*p.WidthSegments)}
		}
	case metadata.GeometryTypeCylinder:
		p := rawCylinder{}
		if err = unmarshalParams(data, &p, desc.UUID); err == nil {
			err = requireFields(desc.UUID, field{"radiusTop", p.RadiusTop}, field{"radiusBottom", p.RadiusBottom}, field{"height", p.Height}, field{"radialSegments", p.RadialSegments})
		}
		if err == nil {
			desc.Params = metadata.CylinderParams{RadiusTop: *p.RadiusTop, RadiusBottom: *p.RadiusBottom, Height: *p.Height, RadialSegments: int(*p.RadialSegments)}
		}
	case metadata.GeometryTypeCone:
		p := rawCone{}
		if err = unmarshalParams(data, &p, desc.UUID); err == nil {
			err = requireFields(desc.UUID, field{"radius", p.Radius}, field{"height", p.Height}, field{"radialSegments", p.RadialSegments})
		}
		if err == nil {
			desc.Params = metadata.ConeParams{Radius: *p.Radius, Height: *p.Height, RadialSegments: int(*p.RadialSegments)}
		}
	case metadata.GeometryTypeBox:
		p := rawBox{}
		if err = unmarshalParams(data, &p, desc.UUID); err == nil {
			err = requireFields(desc.UUID, field{"width", p.Width}, field{"height", p.Height}, field{"depth", p.Depth})
		}
		if err == nil {
			desc.Params = metadata.BoxParams{Width: *p.Width, Height: *p.Height, Depth: *p.Depth}
		}
	case metadata.GeometryTypePlane:
		p := rawPlane{}
		if err = unmarshalParams(data, &p, desc.UUID); err == nil {
			err = requireFields(desc.UUID, field{"width", p.Width}, field{"height", p.Height})
		}
		if err == nil {
			desc.Params = metadata.PlaneParams{Width: *p.Width, Height: *p.Height}
		}
	}

	return desc, err
}

func decodeMaterial(data json.RawMessage) (metadata.MaterialDescriptor, error) {
	raw := rawMaterial{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return metadata.MaterialDescriptor{}, malformed("material: %s", err.Error())
	}
	if raw.UUID == nil {
		return metadata.MaterialDescriptor{}, malformed("material without 'uuid'")
	}
	if err := requireFields(*raw.UUID, field{"color", raw.Color}, field{"roughness", raw.Roughness}, field{"metalness", raw.Metalness}); err != nil {
		return metadata.MaterialDescriptor{}, err
	}

	return metadata.MaterialDescriptor{
		UUID:      *raw.UUID,
		Type:      raw.Type,
		Color:     uint32(int64(*raw.Color)),
		Roughness: *raw.Roughness,
		Metalness: *raw.Metalness,
	}, nil
}

func decodeObject(raw *rawObject, path string) (*metadata.ObjectDescriptor, error) {
	if raw == nil {
		return nil, malformed("%s is null", path)
	}
	if raw.Type == nil {
		return nil, malformed("%s without 'type'", path)
	}

	obj := &metadata.ObjectDescriptor{
		UUID: raw.UUID,
		Name: raw.Name,
		Type: *raw.Type,
	}

	if len(raw.Matrix) > 0 && string(raw.Matrix) != "null" {
		var values []*float64
		if err := json.Unmarshal(raw.Matrix, &values); err != nil {
			return nil, malformed("%s: 'matrix' is not an array of numbers", path)
		}
		obj.Matrix = make([]float64, len(values))
		for i, v := range values {
			if v == nil {
				return nil, malformed("%s: 'matrix' element %d is null", path, i)
			}
			obj.Matrix[i] = *v
		}
	}

	switch obj.Type {
	case metadata.ObjectTypeMesh:
		if raw.Geometry == nil || raw.Material == nil {
			return nil, malformed("%s: mesh without 'geometry' or 'material'", path)
		}
		obj.Geometry = *raw.Geometry
		obj.Material = *raw.Material
	case metadata.ObjectTypeGroup:
		obj.Children = make([]*metadata.ObjectDescriptor, 0, len(raw.Children))
		for i, rawChild := range raw.Children {
			child, err := decodeObject(rawChild, fmt.Sprintf("%s.children[%d]", path, i))
			if err != nil {
				return nil, err
			}
			obj.Children = append(obj.Children, child)
		}
	}

	return obj, nil
}

// unmarshalParams decodes the kind-specific fields of a geometry. A field of
// the wrong JSON type makes the document malformed.
func unmarshalParams(data json.RawMessage, params interface{}, uuid string) error {
	if err := json.Unmarshal(data, params); err != nil {
		return malformed("geometry '%s': %s", uuid, err.Error())
	}
	return nil
}

type field struct {
	name  string
	value *float64
}

func requireFields(uuid string, fields ...field) error {
	for _, f := range fields {
		if f.value == nil {
			return malformed("'%s' is missing '%s'", uuid, f.name)
		}
	}
	return nil
}

func malformed(format string, args ...interface{}) error {
	err := fmt.Errorf("%w: %s", core.ErrMalformedDocument, fmt.Sprintf(format, args...))
	core.LogWarn(err.Error())
	return err
}
