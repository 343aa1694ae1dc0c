package systems

import (
	"github.com/spaghettifunk/threeview/engine/core"
	"github.com/spaghettifunk/threeview/engine/renderer/metadata"
)

type SystemManager struct {
	sceneBuilder *SceneBuilder
}

func NewSystemManager(geometryConfig *metadata.GeometrySystemConfig) (*SystemManager, error) {
	gf, err := NewGeometryFactory(geometryConfig)
	if err != nil {
		return nil, err
	}

	return &SystemManager{
		sceneBuilder: NewSceneBuilder(gf, NewMaterialMapper()),
	}, nil
}

// BuildScene converts a decoded document into its scene graph.
func (sm *SystemManager) BuildScene(doc *metadata.SceneDocument) (*metadata.Node, error) {
	return sm.sceneBuilder.Build(doc)
}

func (sm *SystemManager) Shutdown() error {
	core.LogDebug("system manager shut down.")
	return nil
}
