package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/threeview/engine/assets/loaders"
	"github.com/spaghettifunk/threeview/engine/core"
	"github.com/spaghettifunk/threeview/engine/renderer/metadata"
)

// pending change notifications; further events for a full queue are dropped
const changeQueueSize = 16

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader
	watched map[string]struct{}

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	changes  chan string
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		watched:  make(map[string]struct{}),
		fsnotify: fsWatch,
		changes:  make(chan string, changeQueueSize),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}

	// Register loaders
	am.registerLoader(metadata.ResourceTypeScene, &loaders.SceneLoader{})

	go am.start()

	return am, nil
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	am.loaders[assetType] = loader
}

/**
 * @brief Loads an asset from disk with the loader registered for its type.
 *
 * @param path The path of the asset file.
 * @param resourceType The resource type. ResourceTypeNone derives it from the file extension.
 * @param params Loader specific parameters, may be nil.
 * @return The loaded resource, or an error.
 */
func (am *AssetManager) LoadAsset(path string, resourceType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	if resourceType == metadata.ResourceTypeNone {
		resourceType = determineAssetType(path)
	}
	if resourceType == metadata.ResourceTypeNone {
		err := fmt.Errorf("%w: %s", core.ErrUnknownResourceType, path)
		core.LogWarn(err.Error())
		return nil, err
	}

	am.mutex.RLock()
	loader, loaderExists := am.loaders[resourceType]
	am.mutex.RUnlock()
	if !loaderExists {
		err := fmt.Errorf("%w: %s", core.ErrNoLoader, resourceType)
		core.LogWarn(err.Error())
		return nil, err
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %s", core.ErrAssetNotFound, path)
		}
		core.LogWarn(err.Error())
		return nil, err
	}

	resource, err := loader.Load(path, resourceType, params)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	am.assets[absPath(path)] = AssetInfo{
		Path:       path,
		Type:       resourceType,
		LastLoaded: time.Now(),
	}
	am.mutex.Unlock()

	return resource, nil
}

func (am *AssetManager) UnloadAsset(resource *metadata.Resource) error {
	if resource == nil {
		return nil
	}

	am.mutex.RLock()
	loader, loaderExists := am.loaders[resource.Type]
	am.mutex.RUnlock()
	if !loaderExists {
		return fmt.Errorf("%w: %s", core.ErrNoLoader, resource.Type)
	}
	return loader.Unload(resource)
}

// asset returns what the manager knows about a previously loaded path.
func (am *AssetManager) asset(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	info, ok := am.assets[absPath(path)]
	return info, ok
}

/**
 * @brief Starts watching a file. Writes to it are reported on Changes.
 * The containing directory is watched, so editors that replace the file
 * on save are picked up too.
 */
func (am *AssetManager) Watch(path string) error {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	if am.isClosed {
		return core.ErrWatcherClosed
	}

	full := absPath(path)
	if _, ok := am.watched[full]; ok {
		return nil
	}
	if err := am.fsnotify.Add(filepath.Dir(full)); err != nil {
		core.LogError("failed to watch '%s': %s", path, err.Error())
		return err
	}
	am.watched[full] = struct{}{}
	core.LogDebug("watching '%s' for changes.", full)
	return nil
}

// Changes delivers the absolute path of each watched file that was written or
// re-created. The channel is closed by Close.
func (am *AssetManager) Changes() <-chan string {
	return am.changes
}

// Close stops the watcher goroutine. It is safe to call more than once.
func (am *AssetManager) Close() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	am.mutex.Unlock()

	close(am.done)
	<-am.stopped
	return nil
}

func (am *AssetManager) start() {
	defer close(am.stopped)

	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
			}

		case e, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(e.Error())

		case <-am.done:
			am.fsnotify.Close()
			close(am.changes)
			return
		}
	}
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) {
	full := absPath(path)

	am.mutex.RLock()
	_, watched := am.watched[full]
	am.mutex.RUnlock()
	if !watched {
		return
	}

	select {
	case am.changes <- full:
	default:
		core.LogDebug("change queue full, dropping event for '%s'.", full)
	}
}

func absPath(path string) string {
	full, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return full
}

func determineAssetType(path string) metadata.ResourceType {
	switch filepath.Ext(path) {
	case ".json":
		return metadata.ResourceTypeScene
	default:
		return metadata.ResourceTypeNone
	}
}
