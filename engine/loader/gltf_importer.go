package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-scenepack/engine/model"
)

// gltfImporterImpl is the implementation of the gltfImporter interface.
type gltfImporterImpl struct{}

// gltfImporter defines the interface for orchestrating a full glTF/GLB import.
// It combines the parser and all extractors to produce a complete SceneDescription.
type gltfImporter interface {
	// Import loads a glTF/GLB file and extracts all data into a SceneDescription.
	//
	// Parameters:
	//   - path: the file path to the glTF or GLB file
	//
	// Returns:
	//   - *model.SceneDescription: the fully populated scene description
	//   - error: error if import fails
	Import(path string) (*model.SceneDescription, error)

	// ImportReader loads a glTF document from a reader and extracts all data.
	// The reader should provide a complete glTF JSON or GLB binary stream.
	//
	// Parameters:
	//   - r: the reader providing glTF/GLB data
	//   - isGLB: true if the reader provides GLB binary data, false for glTF JSON
	//   - baseDir: directory for relative buffer URIs
	//
	// Returns:
	//   - *model.SceneDescription: the fully populated scene description
	//   - error: error if import fails
	ImportReader(r io.Reader, isGLB bool, baseDir string) (*model.SceneDescription, error)
}

var _ gltfImporter = &gltfImporterImpl{}

// newGLTFImporter creates a new glTF importer.
//
// Returns:
//   - gltfImporter: the importer
func newGLTFImporter() gltfImporter {
	return &gltfImporterImpl{}
}

func (imp *gltfImporterImpl) Import(path string) (*model.SceneDescription, error) {
	parser := newGLTFParser()
	if err := parser.Parse(path); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return imp.importFromParser(parser, name)
}

func (imp *gltfImporterImpl) ImportReader(r io.Reader, isGLB bool, baseDir string) (*model.SceneDescription, error) {
	parser := newGLTFParser()
	if err := parser.ParseReader(r, isGLB, baseDir); err != nil {
		return nil, fmt.Errorf("failed to parse from reader: %w", err)
	}

	return imp.importFromParser(parser, "")
}

// importFromParser runs every extractor against a parsed document.
func (imp *gltfImporterImpl) importFromParser(parser gltfParser, name string) (*model.SceneDescription, error) {
	if parser.Document() == nil {
		return nil, fmt.Errorf("no document after parsing")
	}

	meshes := newGLTFMeshExtractor(parser)
	materials := newGLTFMaterialExtractor(parser)
	world := newGLTFWorldExtractor(parser)

	scene := &model.SceneDescription{Name: name}
	var err error

	if scene.Accessors, err = meshes.ExtractAccessors(); err != nil {
		return nil, fmt.Errorf("failed to extract accessors: %w", err)
	}
	if scene.BufferViews, scene.Buffers, err = meshes.ExtractBuffers(); err != nil {
		return nil, fmt.Errorf("failed to extract buffers: %w", err)
	}
	if scene.Meshes, err = meshes.ExtractAllMeshes(); err != nil {
		return nil, fmt.Errorf("failed to extract meshes: %w", err)
	}
	if scene.Materials, err = materials.ExtractAllMaterials(); err != nil {
		return nil, fmt.Errorf("failed to extract materials: %w", err)
	}
	if scene.Textures, err = materials.ExtractAllTextures(); err != nil {
		return nil, fmt.Errorf("failed to extract textures: %w", err)
	}
	if scene.Cameras, err = world.ExtractAllCameras(); err != nil {
		return nil, fmt.Errorf("failed to extract cameras: %w", err)
	}
	if scene.Lights, err = world.ExtractAllLights(); err != nil {
		return nil, fmt.Errorf("failed to extract lights: %w", err)
	}

	return scene, nil
}
