package loader

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-scenepack/engine/model"
)

// gltfMaterialExtractorImpl is the implementation of the gltfMaterialExtractor interface.
type gltfMaterialExtractorImpl struct {
	parser gltfParser
}

// gltfMaterialExtractor defines the interface for extracting material and texture
// descriptions from a parsed glTF document. Image bytes are never decoded.
type gltfMaterialExtractor interface {
	// ExtractMaterial extracts a single material by index.
	//
	// Parameters:
	//   - materialIndex: the index of the material in the document
	//
	// Returns:
	//   - model.Material: the extracted material
	//   - error: error if the index or a texture reference is out of range
	ExtractMaterial(materialIndex int) (model.Material, error)

	// ExtractAllMaterials extracts all materials from the document.
	//
	// Returns:
	//   - []model.Material: all extracted materials
	//   - error: error if extraction fails
	ExtractAllMaterials() ([]model.Material, error)

	// ExtractAllTextures extracts all texture descriptors from the document.
	//
	// Returns:
	//   - []model.Texture: all textures, in document order
	//   - error: error if no document is loaded
	ExtractAllTextures() ([]model.Texture, error)
}

var _ gltfMaterialExtractor = &gltfMaterialExtractorImpl{}

// newGLTFMaterialExtractor creates a new material extractor for a parsed document.
//
// Parameters:
//   - parser: the parser containing a loaded document
//
// Returns:
//   - gltfMaterialExtractor: the material extractor
func newGLTFMaterialExtractor(parser gltfParser) gltfMaterialExtractor {
	return &gltfMaterialExtractorImpl{parser: parser}
}

func (e *gltfMaterialExtractorImpl) ExtractMaterial(materialIndex int) (model.Material, error) {
	doc := e.parser.Document()
	if doc == nil {
		return model.Material{}, errors.New("no document loaded")
	}
	if materialIndex < 0 || materialIndex >= len(doc.Materials) {
		return model.Material{}, fmt.Errorf("material index %d out of range", materialIndex)
	}

	mat := &doc.Materials[materialIndex]

	result := model.DefaultMaterial()
	result.Name = mat.Name

	if mat.PbrMetallicRoughness != nil {
		pbr := mat.PbrMetallicRoughness

		if pbr.BaseColorFactor != nil {
			result.BaseColor = *pbr.BaseColorFactor
		}
		if pbr.MetallicFactor != nil {
			result.Metallic = *pbr.MetallicFactor
		}
		if pbr.RoughnessFactor != nil {
			result.Roughness = *pbr.RoughnessFactor
		}
		if err := e.bindTexture(&result, model.TextureBaseColor, pbr.BaseColorTexture); err != nil {
			return model.Material{}, err
		}
		if err := e.bindTexture(&result, model.TextureMetallicRoughness, pbr.MetallicRoughnessTexture); err != nil {
			return model.Material{}, err
		}
	}

	if mat.NormalTexture != nil {
		if mat.NormalTexture.Scale != nil {
			result.NormalScale = *mat.NormalTexture.Scale
		}
		if err := e.bindTexture(&result, model.TextureNormal, &mat.NormalTexture.gltfTextureInfo); err != nil {
			return model.Material{}, err
		}
	}

	if mat.OcclusionTexture != nil {
		if mat.OcclusionTexture.Strength != nil {
			result.OcclusionStrength = *mat.OcclusionTexture.Strength
		}
		if err := e.bindTexture(&result, model.TextureOcclusion, &mat.OcclusionTexture.gltfTextureInfo); err != nil {
			return model.Material{}, err
		}
	}

	if err := e.bindTexture(&result, model.TextureEmissive, mat.EmissiveTexture); err != nil {
		return model.Material{}, err
	}
	if mat.EmissiveFactor != nil {
		result.Emissive = *mat.EmissiveFactor
	}
	if mat.AlphaCutoff != nil {
		result.AlphaCutoff = *mat.AlphaCutoff
	}

	return result, nil
}

func (e *gltfMaterialExtractorImpl) ExtractAllMaterials() ([]model.Material, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, errors.New("no document loaded")
	}

	materials := make([]model.Material, len(doc.Materials))
	for i := range doc.Materials {
		mat, err := e.ExtractMaterial(i)
		if err != nil {
			return nil, fmt.Errorf("material %d: %w", i, err)
		}
		materials[i] = mat
	}

	return materials, nil
}

func (e *gltfMaterialExtractorImpl) ExtractAllTextures() ([]model.Texture, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, errors.New("no document loaded")
	}

	textures := make([]model.Texture, len(doc.Textures))
	for i := range doc.Textures {
		tex := &doc.Textures[i]
		textures[i] = model.Texture{
			Name:    tex.Name,
			Sampler: tex.Sampler,
			Source:  tex.Source,
		}
	}

	return textures, nil
}

// bindTexture stores a texture reference in the given material slot after a range check.
func (e *gltfMaterialExtractorImpl) bindTexture(m *model.Material, slot model.TextureSlot, info *gltfTextureInfo) error {
	if info == nil {
		return nil
	}
	if info.Index < 0 || info.Index >= len(e.parser.Document().Textures) {
		return fmt.Errorf("texture index %d out of range", info.Index)
	}
	idx := info.Index
	m.Textures[slot] = &idx
	return nil
}
