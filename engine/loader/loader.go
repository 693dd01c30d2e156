// Package loader reads glTF 2.0 (.gltf/.glb) files into scene descriptions and caches them.
package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/model"
)

// LoaderBackendType identifies the scene file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	sceneCache map[string]*model.SceneDescription

	backend loaderBackend
}

// Loader defines the public-facing interface for loading and caching scene descriptions.
// It abstracts the file format (glTF, GLB, etc.) behind a generic backend and
// manages a cache of previously loaded scenes.
//
// Cached scenes are shared; callers must treat them as read-only.
type Loader interface {
	// Load imports a scene file and caches the result.
	// If the scene is already cached (by file path), the cached version is returned.
	// The backend is selected based on the file extension (.gltf/.glb → glTF backend).
	//
	// Parameters:
	//   - path: the file path to the scene file
	//
	// Returns:
	//   - *model.SceneDescription: the loaded and cached scene
	//   - error: error if loading fails
	Load(path string) (*model.SceneDescription, error)

	// LoadReader imports a scene from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key for the loaded scene
	//   - r: the reader providing scene data
	//   - isGLB: true if the reader provides GLB binary data
	//
	// Returns:
	//   - *model.SceneDescription: the loaded scene
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, isGLB bool) (*model.SceneDescription, error)

	// Get retrieves a cached scene by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - *model.SceneDescription: the cached scene or nil
	Get(name string) *model.SceneDescription

	// Invalidate drops a cached scene so the next Load reads the file again.
	//
	// Parameters:
	//   - name: the cache key to drop
	Invalidate(name string)

	// Scenes returns a copy of the scene cache.
	//
	// Returns:
	//   - map[string]*model.SceneDescription: all cached scenes keyed by name
	Scenes() map[string]*model.SceneDescription
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGLTF)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:         sync.RWMutex{},
		sceneCache: make(map[string]*model.SceneDescription),
	}

	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (*model.SceneDescription, error) {
	l.mu.RLock()
	if cached, ok := l.sceneCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	scene, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	common.Logger().Debug("scene loaded", "path", path, "meshes", len(scene.Meshes), "materials", len(scene.Materials))

	l.mu.Lock()
	l.sceneCache[path] = scene
	l.mu.Unlock()

	return scene, nil
}

func (l *loader) LoadReader(name string, r io.Reader, isGLB bool) (*model.SceneDescription, error) {
	l.mu.RLock()
	if cached, ok := l.sceneCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	scene, err := l.backend.LoadReader(r, isGLB, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}
	scene.Name = name

	l.mu.Lock()
	l.sceneCache[name] = scene
	l.mu.Unlock()

	return scene, nil
}

func (l *loader) Get(name string) *model.SceneDescription {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sceneCache[name]
}

func (l *loader) Invalidate(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.sceneCache, name)
}

func (l *loader) Scenes() map[string]*model.SceneDescription {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]*model.SceneDescription, len(l.sceneCache))
	for k, v := range l.sceneCache {
		result[k] = v
	}
	return result
}

// resolveBackend selects an appropriate loader backend based on the file extension.
// Currently only glTF/GLB is supported.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf", ".glb":
		return l.backend, nil
	default:
		return nil, fmt.Errorf("unsupported scene format: %s", ext)
	}
}

// IsSceneFile reports whether the path has an extension the loader can read.
func IsSceneFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".gltf" || ext == ".glb"
}
