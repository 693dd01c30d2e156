package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-scenepack/engine/model"
)

// loaderBackend defines the generic interface for loading scenes from files or streams.
// Concrete implementations (e.g., gltfLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load performs a full scene import from the given file path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *model.SceneDescription: the imported scene
	//   - error: error if loading fails
	Load(path string) (*model.SceneDescription, error)

	// LoadReader imports a scene from a reader stream.
	//
	// Parameters:
	//   - r: the reader providing scene data
	//   - isGLB: true if the reader provides GLB binary data, false for text-based formats
	//   - baseDir: directory for relative buffer URIs
	//
	// Returns:
	//   - *model.SceneDescription: the imported scene
	//   - error: error if loading fails
	LoadReader(r io.Reader, isGLB bool, baseDir string) (*model.SceneDescription, error)
}
