package model

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
)

// Record sizes of the world, material and texture blocks.
const (
	CameraRecordSize   = 128
	LightRecordSize    = 48
	MaterialRecordSize = 64
	TextureRecordSize  = 16
)

// GPUCameraRecord is one camera slot of the world block.
// Size: 128 bytes (std140 / WGSL aligned).
type GPUCameraRecord struct {
	View       [16]float32 // offset  0: world-to-view matrix (mat4x4<f32>)
	Projection [16]float32 // offset 64: view-to-clip matrix (mat4x4<f32>)
}

// Size returns the size of the GPUCameraRecord struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (128)
func (g *GPUCameraRecord) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the record into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 128-byte buffer ready for GPU upload
func (g *GPUCameraRecord) Marshal() []byte {
	buf := make([]byte, CameraRecordSize)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.View[i]))
	}
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Projection[i]))
	}
	return buf
}

// NewGPUCameraRecord fills a record from a scene camera. The view matrix comes from the
// node transform and is left at identity; a zero aspect ratio is treated as 1.
func NewGPUCameraRecord(c Camera) GPUCameraRecord {
	var r GPUCameraRecord
	common.Identity(r.View[:])
	switch c.Projection {
	case ProjectionOrthographic:
		common.Orthographic(r.Projection[:], c.XMag, c.YMag, c.ZNear, c.ZFar)
	default:
		common.Perspective(r.Projection[:], c.YFov, common.Coalesce(c.AspectRatio, 1), c.ZNear, c.ZFar)
	}
	return r
}

// GPULightRecord is one light slot of the world block.
// Size: 48 bytes (std140 / WGSL aligned).
type GPULightRecord struct {
	Position  [3]float32 // offset  0: world-space position (point/spot)
	LightType uint32     // offset 12: 0 = directional, 1 = point, 2 = spot
	Color     [3]float32 // offset 16: RGB color
	Intensity float32    // offset 28: scalar multiplier
	Direction [3]float32 // offset 32: normalized direction (directional/spot)
	Range     float32    // offset 44: attenuation cutoff distance, 0 = infinite
}

// Size returns the size of the GPULightRecord struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (g *GPULightRecord) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the record into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload
func (g *GPULightRecord) Marshal() []byte {
	buf := make([]byte, LightRecordSize)
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Position[i]))
	}
	binary.LittleEndian.PutUint32(buf[12:16], g.LightType)
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Color[i]))
	}
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Intensity))
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[32+i*4:], math.Float32bits(g.Direction[i]))
	}
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(g.Range))
	return buf
}

// NewGPULightRecord fills a record from a scene light. Position and direction come from
// the node transform and are left zero here.
func NewGPULightRecord(l Light) GPULightRecord {
	return GPULightRecord{
		LightType: uint32(l.Type),
		Color:     l.Color,
		Intensity: l.Intensity,
		Direction: [3]float32{0, 0, -1},
		Range:     l.Range,
	}
}

// GPUMaterialRecord is one material slot of a material block. Texture slots hold the
// texture's offset inside its bucket; 0 is the default texture.
// Size: 64 bytes (std140 / WGSL aligned).
type GPUMaterialRecord struct {
	BaseColor         [4]float32                  // offset  0: base color factor (RGBA)
	Emissive          [3]float32                  // offset 16: emissive factor (RGB)
	AlphaCutoff       float32                     // offset 28: alpha mask cutoff
	Metallic          float32                     // offset 32
	Roughness         float32                     // offset 36
	NormalScale       float32                     // offset 40
	OcclusionStrength float32                     // offset 44
	Textures          [TexturesPerMaterial]uint16 // offset 48: texture slot per binding
	_pad              [3]uint16                   // offset 58: padding to 64 bytes
}

// Size returns the size of the GPUMaterialRecord struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPUMaterialRecord) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the record into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPUMaterialRecord) Marshal() []byte {
	buf := make([]byte, MaterialRecordSize)
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.BaseColor[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Emissive[i]))
	}
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.AlphaCutoff))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.Metallic))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(g.Roughness))
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(g.NormalScale))
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(g.OcclusionStrength))
	for i := range TexturesPerMaterial {
		binary.LittleEndian.PutUint16(buf[48+i*2:], g.Textures[i])
	}
	return buf
}

// NewGPUMaterialRecord fills a record from a scene material. Texture slots are left at
// the default texture; the planner fills them once textures are located.
func NewGPUMaterialRecord(m Material) GPUMaterialRecord {
	return GPUMaterialRecord{
		BaseColor:         m.BaseColor,
		Emissive:          m.Emissive,
		AlphaCutoff:       m.AlphaCutoff,
		Metallic:          m.Metallic,
		Roughness:         m.Roughness,
		NormalScale:       m.NormalScale,
		OcclusionStrength: m.OcclusionStrength,
	}
}

// GPUTextureRecord is one texture descriptor slot of a texture block.
// Size: 16 bytes.
type GPUTextureRecord struct {
	Source  uint32 // offset  0: image index
	Sampler uint32 // offset  4: sampler index
	Flags   uint32 // offset  8: bit 0 = has source, bit 1 = has sampler
	_pad    uint32 // offset 12: padding to 16 bytes
}

const (
	TextureFlagSource  = 1 << 0
	TextureFlagSampler = 1 << 1
)

// Size returns the size of the GPUTextureRecord struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (g *GPUTextureRecord) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the record into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload
func (g *GPUTextureRecord) Marshal() []byte {
	buf := make([]byte, TextureRecordSize)
	binary.LittleEndian.PutUint32(buf[0:4], g.Source)
	binary.LittleEndian.PutUint32(buf[4:8], g.Sampler)
	binary.LittleEndian.PutUint32(buf[8:12], g.Flags)
	binary.LittleEndian.PutUint32(buf[12:16], 0) // padding
	return buf
}

// NewGPUTextureRecord fills a record from a scene texture.
func NewGPUTextureRecord(t Texture) GPUTextureRecord {
	var r GPUTextureRecord
	if t.Source != nil {
		r.Source = uint32(*t.Source)
		r.Flags |= TextureFlagSource
	}
	if t.Sampler != nil {
		r.Sampler = uint32(*t.Sampler)
		r.Flags |= TextureFlagSampler
	}
	return r
}
