// Package model holds the scene description the planner consumes and the fixed-size
// GPU records that back world, material and texture blocks.
package model

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/vertex"
)

// --- Buffer Data ---

// Accessor is a typed view over a buffer view region.
type Accessor struct {
	// Name is an optional name.
	Name string

	// BufferView is the index of the buffer view, nil when the accessor has no backing data.
	BufferView *int

	// ByteOffset is the offset within the buffer view.
	ByteOffset int

	// Kind is the scalar storage kind of each component.
	Kind vertex.ElementKind

	// Components is the number of components per element (1 for SCALAR, 3 for VEC3, 16 for MAT4).
	Components int

	// Count is the number of elements.
	Count int
}

// ElementSize returns the tightly packed byte size of one element.
func (a *Accessor) ElementSize() int {
	return a.Kind.ComponentSize() * a.Components
}

// BufferView is a raw byte range within a buffer.
type BufferView struct {
	// Buffer is the index of the buffer.
	Buffer int

	// ByteOffset is the offset into the buffer.
	ByteOffset int

	// ByteLength is the length of the range.
	ByteLength int

	// ByteStride is the interleave stride, 0 when elements are tightly packed.
	ByteStride int

	// Target is the intended GPU binding (34962 vertex, 34963 index), 0 when unset.
	Target int
}

// Buffer is a raw binary data container.
type Buffer struct {
	// Name is an optional name.
	Name string

	// ByteLength is the declared length.
	ByteLength int

	// Data holds the resolved bytes; len(Data) >= ByteLength.
	Data []byte
}

// --- Mesh Data ---

// Mesh is a set of primitives drawn together.
type Mesh struct {
	Name       string
	Primitives []Primitive
}

// Primitive is one draw's worth of geometry.
type Primitive struct {
	// Attributes maps a glTF semantic (POSITION, TEXCOORD_0, ...) to an accessor index.
	Attributes map[string]int

	// Indices is the index accessor, nil for non-indexed geometry.
	Indices *int

	// Material is the material index, nil for the default material.
	Material *int
}

// --- Materials and Textures ---

// TextureSlot names one of the texture bindings every material reserves.
type TextureSlot uint8

const (
	TextureBaseColor TextureSlot = iota
	TextureMetallicRoughness
	TextureNormal
	TextureOcclusion
	TextureEmissive

	// TexturesPerMaterial is the number of sampler slots one material binds.
	TexturesPerMaterial = 5
)

// Material is a metallic-roughness PBR material.
type Material struct {
	Name              string
	BaseColor         [4]float32
	Emissive          [3]float32
	AlphaCutoff       float32
	Metallic          float32
	Roughness         float32
	NormalScale       float32
	OcclusionStrength float32

	// Textures holds a texture index per slot, nil for slots bound to the default texture.
	Textures [TexturesPerMaterial]*int
}

// DefaultMaterial returns the material used by primitives with no material reference.
func DefaultMaterial() Material {
	return Material{
		Name:              "default",
		BaseColor:         [4]float32{1, 1, 1, 1},
		AlphaCutoff:       0.5,
		Metallic:          1,
		Roughness:         1,
		NormalScale:       1,
		OcclusionStrength: 1,
	}
}

// Texture combines an image and a sampler.
type Texture struct {
	Name    string
	Sampler *int
	Source  *int
}

// --- World Data ---

// CameraProjection is the projection type of a camera.
type CameraProjection uint8

const (
	ProjectionPerspective CameraProjection = iota
	ProjectionOrthographic
)

// Camera is a scene camera. Perspective cameras use YFov and AspectRatio,
// orthographic ones XMag and YMag.
type Camera struct {
	Name        string
	Projection  CameraProjection
	YFov        float32
	AspectRatio float32
	XMag        float32
	YMag        float32
	ZNear       float32
	ZFar        float32
}

// DefaultCamera returns the camera bound to slot 0 of every world block.
func DefaultCamera() Camera {
	return Camera{
		Name:        "default",
		Projection:  ProjectionPerspective,
		YFov:        math.Pi / 4,
		AspectRatio: 1,
		ZNear:       0.1,
		ZFar:        1000,
	}
}

// LightType is the punctual light type.
type LightType uint32

const (
	LightDirectional LightType = iota
	LightPoint
	LightSpot
)

// Light is a punctual light source.
type Light struct {
	Name      string
	Type      LightType
	Color     [3]float32
	Intensity float32
	Range     float32
	InnerCone float32
	OuterCone float32
}

// --- Scene ---

// SceneDescription is everything the planner reads from one scene file.
type SceneDescription struct {
	Name        string
	Accessors   []Accessor
	BufferViews []BufferView
	Buffers     []Buffer
	Meshes      []Mesh
	Materials   []Material
	Textures    []Texture
	Cameras     []Camera
	Lights      []Light
}

// Accessor returns the accessor at index i.
//
// Parameters:
//   - i: the accessor index
//
// Returns:
//   - *Accessor: the accessor
//   - error: common.ErrInvalidAccessor if i is out of range
func (s *SceneDescription) Accessor(i int) (*Accessor, error) {
	if i < 0 || i >= len(s.Accessors) {
		return nil, fmt.Errorf("%w: index %d of %d", common.ErrInvalidAccessor, i, len(s.Accessors))
	}
	return &s.Accessors[i], nil
}

// View returns the buffer view backing an accessor.
//
// Parameters:
//   - a: the accessor
//
// Returns:
//   - *BufferView: the buffer view
//   - error: common.ErrMissingBufferView if the accessor has none, common.ErrInvalidAccessor
//     if the reference is out of range or either byte offset is negative
func (s *SceneDescription) View(a *Accessor) (*BufferView, error) {
	if a.BufferView == nil {
		return nil, fmt.Errorf("accessor %q: %w", a.Name, common.ErrMissingBufferView)
	}
	if a.ByteOffset < 0 {
		return nil, fmt.Errorf("%w: accessor %q byte offset %d", common.ErrInvalidAccessor, a.Name, a.ByteOffset)
	}
	i := *a.BufferView
	if i < 0 || i >= len(s.BufferViews) {
		return nil, fmt.Errorf("%w: buffer view %d of %d", common.ErrInvalidAccessor, i, len(s.BufferViews))
	}
	v := &s.BufferViews[i]
	if v.ByteOffset < 0 || v.ByteStride < 0 {
		return nil, fmt.Errorf("%w: buffer view %d offset %d stride %d", common.ErrInvalidAccessor, i, v.ByteOffset, v.ByteStride)
	}
	return v, nil
}

// PrimitiveCount returns the number of primitives across all meshes.
func (s *SceneDescription) PrimitiveCount() int {
	n := 0
	for _, m := range s.Meshes {
		n += len(m.Primitives)
	}
	return n
}
