package engine

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/spaghettifunk/threeview/engine/assets"
	"github.com/spaghettifunk/threeview/engine/assets/loaders"
	"github.com/spaghettifunk/threeview/engine/core"
	"github.com/spaghettifunk/threeview/engine/renderer"
	"github.com/spaghettifunk/threeview/engine/renderer/metadata"
	"github.com/spaghettifunk/threeview/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type scene struct {
	key  string
	root *metadata.Node
}

type Engine struct {
	currentStage  Stage
	config        *Config
	host          renderer.Host
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	clock         *core.Clock

	mutex  sync.Mutex
	scenes []scene

	quit         chan struct{}
	shutdownOnce sync.Once
}

/**
 * @brief Creates a viewer engine that hands the scenes it builds to host.
 *
 * @param cfg The configuration. Nil uses DefaultConfig.
 * @param host The display system receiving the scene graphs.
 * @return The engine, or an error if the configuration is invalid.
 */
func New(cfg *Config, host renderer.Host) (*Engine, error) {
	if host == nil {
		return nil, fmt.Errorf("func New - host cannot be nil")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	if cfg.Log.Level != "" {
		if err := core.SetLogLevel(cfg.Log.Level); err != nil {
			return nil, err
		}
	}

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	sm, err := systems.NewSystemManager(cfg.geometrySystemConfig())
	if err != nil {
		core.LogError(err.Error())
		_ = am.Close()
		return nil, err
	}

	return &Engine{
		currentStage:  EngineStageUninitialized,
		config:        cfg,
		host:          host,
		assetManager:  am,
		systemManager: sm,
		clock:         core.NewClock(),
		quit:          make(chan struct{}),
	}, nil
}

// Initialize loads the scene named in the configuration, if any.
func (e *Engine) Initialize() error {
	if e.config.Viewer.Scene != "" {
		if _, err := e.LoadScene(e.config.Viewer.Scene); err != nil {
			return err
		}
	}
	e.currentStage = EngineStageInitialized
	return nil
}

/**
 * @brief Loads, builds and attaches the scene document at path in one pass.
 * Loading a path again replaces the root attached for it before. On error
 * the host is left untouched.
 *
 * @param path The path of the JSON document.
 * @return The attached root, nil when the document yields no node, or an error.
 */
func (e *Engine) LoadScene(path string) (*metadata.Node, error) {
	resource, err := e.assetManager.LoadAsset(path, metadata.ResourceTypeScene, nil)
	if err != nil {
		core.LogError("failed to load scene '%s': %s", path, err.Error())
		return nil, err
	}
	defer e.assetManager.UnloadAsset(resource)

	doc, ok := resource.Data.(*metadata.SceneDocument)
	if !ok {
		err := fmt.Errorf("func LoadScene - resource '%s' holds no scene document", path)
		core.LogError(err.Error())
		return nil, err
	}

	root, err := e.build(doc)
	if err != nil {
		return nil, err
	}
	if err := e.replace(sceneKey(path), root); err != nil {
		return nil, err
	}

	if e.config.Viewer.Watch {
		if err := e.assetManager.Watch(path); err != nil {
			core.LogWarn("scene '%s' will not be reloaded on change: %s", path, err.Error())
		}
	}
	return root, nil
}

// LoadSceneBytes is LoadScene for a document already in memory. The name
// identifies the scene for later replacement.
func (e *Engine) LoadSceneBytes(name string, data []byte) (*metadata.Node, error) {
	doc, err := loaders.Decode(bytes.NewReader(data))
	if err != nil {
		core.LogError("failed to load scene '%s': %s", name, err.Error())
		return nil, err
	}

	root, err := e.build(doc)
	if err != nil {
		return nil, err
	}
	if err := e.replace(name, root); err != nil {
		return nil, err
	}
	return root, nil
}

// Roots returns the attached scene roots in load order.
func (e *Engine) Roots() []*metadata.Node {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	roots := make([]*metadata.Node, 0, len(e.scenes))
	for _, s := range e.scenes {
		roots = append(roots, s.root)
	}
	return roots
}

/**
 * @brief Reloads watched scenes as their files change until ctx is done or
 * Shutdown is called.
 */
func (e *Engine) Run(ctx context.Context) error {
	e.currentStage = EngineStageRunning
	e.clock.Start()

	changes := e.assetManager.Changes()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-e.quit:
			return nil
		case path, ok := <-changes:
			if !ok {
				return nil
			}
			core.LogInfo("scene '%s' changed on disk, reloading.", path)
			if _, err := e.LoadScene(path); err != nil {
				core.LogWarn("keeping the previous version of '%s'.", path)
			}
		}
	}
}

// Shutdown detaches every scene and stops the file watcher. It is safe to
// call more than once.
func (e *Engine) Shutdown() error {
	var err error
	e.shutdownOnce.Do(func() {
		e.currentStage = EngineStageShuttingDown
		close(e.quit)

		e.mutex.Lock()
		for _, s := range e.scenes {
			if dErr := e.host.Detach(s.root); dErr != nil {
				core.LogWarn(dErr.Error())
			}
		}
		e.scenes = nil
		e.mutex.Unlock()

		if cErr := e.assetManager.Close(); cErr != nil {
			err = cErr
		}
		if sErr := e.systemManager.Shutdown(); sErr != nil && err == nil {
			err = sErr
		}

		e.clock.Update()
		core.LogInfo("%s shut down after %s.", e.config.Viewer.Name, e.clock.Elapsed())
		e.clock.Stop()
	})
	return err
}

func (e *Engine) build(doc *metadata.SceneDocument) (*metadata.Node, error) {
	root, err := e.systemManager.BuildScene(doc)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	return root, nil
}

// replace attaches root under key and then detaches whatever key held
// before. A nil root leaves the host and the scene list as they are.
func (e *Engine) replace(key string, root *metadata.Node) error {
	if root == nil {
		core.LogInfo("scene '%s' has nothing to show, keeping the current view.", key)
		return nil
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	if err := e.host.Attach(root); err != nil {
		core.LogError("host rejected scene '%s': %s", key, err.Error())
		return err
	}

	for i, s := range e.scenes {
		if s.key != key {
			continue
		}
		if err := e.host.Detach(s.root); err != nil {
			core.LogWarn(err.Error())
		}
		e.scenes[i].root = root
		return nil
	}

	e.scenes = append(e.scenes, scene{key: key, root: root})
	return nil
}

func sceneKey(path string) string {
	full, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return full
}
