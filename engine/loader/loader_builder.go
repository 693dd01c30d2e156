package loader

import (
	"github.com/Carmen-Shannon/oxy-scenepack/engine/model"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithScene is an option builder that pre-populates the scene cache with a scene.
//
// Parameters:
//   - key: the cache key for the scene
//   - scene: the scene to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the scene option to a loader
func WithScene(key string, scene *model.SceneDescription) LoaderBuilderOption {
	return func(l *loader) {
		l.sceneCache[key] = scene
	}
}
