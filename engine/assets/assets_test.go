package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/threeview/engine/core"
	"github.com/spaghettifunk/threeview/engine/renderer/metadata"
)

const emptyScene = `{"geometries": [], "materials": [], "object": {"type": "Group", "name": "empty"}}`

func newTestManager(t *testing.T) *AssetManager {
	t.Helper()
	am, err := NewAssetManager()
	require.NoError(t, err)
	t.Cleanup(func() { _ = am.Close() })
	return am
}

func writeScene(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetermineAssetType(t *testing.T) {
	assert.Equal(t, metadata.ResourceTypeScene, determineAssetType("models/car.json"))
	assert.Equal(t, metadata.ResourceTypeNone, determineAssetType("models/car.obj"))
	assert.Equal(t, metadata.ResourceTypeNone, determineAssetType("README"))
}

func TestLoadAsset(t *testing.T) {
	am := newTestManager(t)
	path := writeScene(t, t.TempDir(), "scene.json", emptyScene)

	resource, err := am.LoadAsset(path, metadata.ResourceTypeNone, nil)
	require.NoError(t, err)
	assert.Equal(t, metadata.ResourceTypeScene, resource.Type)

	doc, ok := resource.Data.(*metadata.SceneDocument)
	require.True(t, ok)
	assert.Equal(t, "empty", doc.Object.Name)

	info, ok := am.asset(path)
	require.True(t, ok)
	assert.Equal(t, metadata.ResourceTypeScene, info.Type)
	assert.False(t, info.LastLoaded.IsZero())

	require.NoError(t, am.UnloadAsset(resource))
	assert.Nil(t, resource.Data)
}

func TestLoadAssetErrors(t *testing.T) {
	am := newTestManager(t)
	dir := t.TempDir()

	_, err := am.LoadAsset(filepath.Join(dir, "missing.json"), metadata.ResourceTypeScene, nil)
	assert.ErrorIs(t, err, core.ErrAssetNotFound)

	_, err = am.LoadAsset(writeScene(t, dir, "model.obj", ""), metadata.ResourceTypeNone, nil)
	assert.ErrorIs(t, err, core.ErrUnknownResourceType)

	_, err = am.LoadAsset(writeScene(t, dir, "scene.json", emptyScene), metadata.ResourceType(42), nil)
	assert.ErrorIs(t, err, core.ErrNoLoader)

	_, err = am.LoadAsset(writeScene(t, dir, "broken.json", `{"geometries": []}`), metadata.ResourceTypeScene, nil)
	assert.ErrorIs(t, err, core.ErrMalformedDocument)
	_, known := am.asset(filepath.Join(dir, "broken.json"))
	assert.False(t, known)
}

func TestWatchReportsChanges(t *testing.T) {
	am := newTestManager(t)
	dir := t.TempDir()
	watched := writeScene(t, dir, "watched.json", emptyScene)
	writeScene(t, dir, "other.json", emptyScene)

	require.NoError(t, am.Watch(watched))
	require.NoError(t, am.Watch(watched))

	writeScene(t, dir, "other.json", emptyScene)
	writeScene(t, dir, "watched.json", emptyScene)

	full, err := filepath.Abs(watched)
	require.NoError(t, err)

	select {
	case path := <-am.Changes():
		assert.Equal(t, full, path)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported for the watched file")
	}
}

func TestClose(t *testing.T) {
	am, err := NewAssetManager()
	require.NoError(t, err)

	require.NoError(t, am.Close())
	require.NoError(t, am.Close())

	_, open := <-am.Changes()
	assert.False(t, open)
	assert.ErrorIs(t, am.Watch("scene.json"), core.ErrWatcherClosed)
}
