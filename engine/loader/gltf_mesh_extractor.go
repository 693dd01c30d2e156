package loader

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/model"
)

// gltfPrimitiveModeTriangles is the default primitive topology.
const gltfPrimitiveModeTriangles = 4

// gltfMeshExtractorImpl is the implementation of the gltfMeshExtractor interface.
type gltfMeshExtractorImpl struct {
	parser gltfParser
}

// gltfMeshExtractor defines the interface for extracting geometry from a parsed glTF document.
// It converts the document's accessors, buffer views, buffers and meshes into the scene
// description the planner reads. No vertex data is decoded here.
type gltfMeshExtractor interface {
	// ExtractAccessors converts every accessor, classifying its component type.
	//
	// Returns:
	//   - []model.Accessor: the accessors, in document order
	//   - error: error if an accessor is sparse or has an unknown component type
	ExtractAccessors() ([]model.Accessor, error)

	// ExtractBuffers converts every buffer view and buffer.
	//
	// Returns:
	//   - []model.BufferView: the buffer views, in document order
	//   - []model.Buffer: the buffers with their resolved data
	//   - error: error if a buffer view points outside its buffer
	ExtractBuffers() ([]model.BufferView, []model.Buffer, error)

	// ExtractAllMeshes converts every mesh and its primitives.
	//
	// Returns:
	//   - []model.Mesh: the meshes, in document order
	//   - error: error if a primitive uses a non-triangle topology
	ExtractAllMeshes() ([]model.Mesh, error)
}

var _ gltfMeshExtractor = &gltfMeshExtractorImpl{}

// newGLTFMeshExtractor creates a new mesh extractor for a parsed document.
//
// Parameters:
//   - parser: the parser containing a loaded document
//
// Returns:
//   - gltfMeshExtractor: the mesh extractor
func newGLTFMeshExtractor(parser gltfParser) gltfMeshExtractor {
	return &gltfMeshExtractorImpl{parser: parser}
}

func (e *gltfMeshExtractorImpl) ExtractAccessors() ([]model.Accessor, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, errors.New("no document loaded")
	}

	result := make([]model.Accessor, len(doc.Accessors))
	for i := range doc.Accessors {
		acc := &doc.Accessors[i]
		if acc.Sparse != nil {
			return nil, fmt.Errorf("accessor %d: sparse accessors not yet supported", i)
		}
		if acc.ByteOffset < 0 || acc.Count < 0 {
			return nil, fmt.Errorf("accessor %d: %w: byte offset %d, count %d", i, common.ErrInvalidAccessor, acc.ByteOffset, acc.Count)
		}

		kind, err := ElementKindOf(acc.ComponentType, acc.Normalized)
		if err != nil {
			return nil, fmt.Errorf("accessor %d: %w", i, err)
		}

		components := gltfAccessorTypeComponentCount(acc.Type)
		if components == 0 {
			return nil, fmt.Errorf("accessor %d: unknown accessor type %q", i, acc.Type)
		}

		result[i] = model.Accessor{
			Name:       acc.Name,
			BufferView: acc.BufferView,
			ByteOffset: acc.ByteOffset,
			Kind:       kind,
			Components: components,
			Count:      acc.Count,
		}
	}

	return result, nil
}

func (e *gltfMeshExtractorImpl) ExtractBuffers() ([]model.BufferView, []model.Buffer, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, nil, errors.New("no document loaded")
	}

	buffers := make([]model.Buffer, len(doc.Buffers))
	for i := range doc.Buffers {
		buf := &doc.Buffers[i]
		buffers[i] = model.Buffer{
			Name:       buf.Name,
			ByteLength: buf.ByteLength,
			Data:       buf.Data,
		}
	}

	views := make([]model.BufferView, len(doc.BufferViews))
	for i := range doc.BufferViews {
		bv := &doc.BufferViews[i]
		if bv.Buffer < 0 || bv.Buffer >= len(buffers) {
			return nil, nil, fmt.Errorf("buffer view %d: buffer %d out of range", i, bv.Buffer)
		}
		if bv.ByteOffset < 0 || bv.ByteLength < 0 || (bv.ByteStride != nil && *bv.ByteStride < 0) {
			return nil, nil, fmt.Errorf("buffer view %d: %w: negative offset, length or stride", i, common.ErrInvalidAccessor)
		}
		if bv.ByteOffset+bv.ByteLength > buffers[bv.Buffer].ByteLength {
			return nil, nil, fmt.Errorf("buffer view %d: range %d+%d exceeds buffer %d: %w", i, bv.ByteOffset, bv.ByteLength, bv.Buffer, errBufferSizeMismatch)
		}

		view := model.BufferView{
			Buffer:     bv.Buffer,
			ByteOffset: bv.ByteOffset,
			ByteLength: bv.ByteLength,
		}
		if bv.ByteStride != nil {
			view.ByteStride = *bv.ByteStride
		}
		if bv.Target != nil {
			view.Target = *bv.Target
		}
		views[i] = view
	}

	return views, buffers, nil
}

func (e *gltfMeshExtractorImpl) ExtractAllMeshes() ([]model.Mesh, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, errors.New("no document loaded")
	}

	meshes := make([]model.Mesh, len(doc.Meshes))
	for meshIdx := range doc.Meshes {
		mesh := &doc.Meshes[meshIdx]
		out := model.Mesh{
			Name:       mesh.Name,
			Primitives: make([]model.Primitive, 0, len(mesh.Primitives)),
		}

		for primIdx := range mesh.Primitives {
			prim := &mesh.Primitives[primIdx]
			if prim.Mode != nil && *prim.Mode != gltfPrimitiveModeTriangles {
				return nil, fmt.Errorf("mesh %d primitive %d: unsupported primitive mode: %d (only triangles supported)", meshIdx, primIdx, *prim.Mode)
			}

			attrs := make(map[string]int, len(prim.Attributes))
			for semantic, accessor := range prim.Attributes {
				attrs[semantic] = accessor
			}
			out.Primitives = append(out.Primitives, model.Primitive{
				Attributes: attrs,
				Indices:    prim.Indices,
				Material:   prim.Material,
			})
		}
		meshes[meshIdx] = out
	}

	return meshes, nil
}
