package renderer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-scenepack/engine/vertex"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrUnsupportedFormat is returned when a vertex or index format has no WebGPU equivalent.
var ErrUnsupportedFormat = errors.New("format not supported by webgpu")

const formatUnsupported = wgpu.VertexFormatUndefined

// wgpuVertexFormats maps each attribute slot's variant ordinals to a WebGPU vertex format.
// WebGPU has no three-component 16-bit formats, so those variants are unsupported.
var wgpuVertexFormats = [vertex.AttributeCount][]wgpu.VertexFormat{
	vertex.AttributePosition: {
		vertex.PositionFloat3: wgpu.VertexFormatFloat32x3,
		vertex.PositionFloat2: wgpu.VertexFormatFloat32x2,
		vertex.PositionHalf3:  formatUnsupported,
		vertex.PositionHalf2:  wgpu.VertexFormatFloat16x2,
	},
	vertex.AttributeNormal: {
		vertex.NormalFloat3: wgpu.VertexFormatFloat32x3,
		vertex.NormalHalf3:  formatUnsupported,
	},
	vertex.AttributeTangent: {
		vertex.TangentFloat4: wgpu.VertexFormatFloat32x4,
		vertex.TangentHalf4:  wgpu.VertexFormatFloat16x4,
	},
	vertex.AttributeTexCoord0: texCoordFormats,
	vertex.AttributeTexCoord1: texCoordFormats,
	vertex.AttributeColor0:    colorFormats,
	vertex.AttributeColor1:    colorFormats,
	vertex.AttributeJoint0:    jointFormats,
	vertex.AttributeJoint1:    jointFormats,
	vertex.AttributeWeight0:   weightFormats,
	vertex.AttributeWeight1:   weightFormats,
}

var texCoordFormats = []wgpu.VertexFormat{
	vertex.TexCoordFloat2:      wgpu.VertexFormatFloat32x2,
	vertex.TexCoordHalf2:       wgpu.VertexFormatFloat16x2,
	vertex.TexCoordUnormByte2:  wgpu.VertexFormatUnorm8x2,
	vertex.TexCoordUnormShort2: wgpu.VertexFormatUnorm16x2,
	vertex.TexCoordUByte2:      wgpu.VertexFormatUint8x2,
	vertex.TexCoordUShort2:     wgpu.VertexFormatUint16x2,
}

var colorFormats = []wgpu.VertexFormat{
	vertex.ColorFloatRGBA:      wgpu.VertexFormatFloat32x4,
	vertex.ColorFloatRGB:       wgpu.VertexFormatFloat32x3,
	vertex.ColorHalfRGBA:       wgpu.VertexFormatFloat16x4,
	vertex.ColorHalfRGB:        formatUnsupported,
	vertex.ColorUnormByteRGBA:  wgpu.VertexFormatUnorm8x4,
	vertex.ColorUnormShortRGBA: wgpu.VertexFormatUnorm16x4,
	vertex.ColorUnormShortRGB:  formatUnsupported,
}

var jointFormats = []wgpu.VertexFormat{
	vertex.JointByte4:   wgpu.VertexFormatUint8x4,
	vertex.JointUShort4: wgpu.VertexFormatUint16x4,
}

var weightFormats = []wgpu.VertexFormat{
	vertex.WeightFloat4:      wgpu.VertexFormatFloat32x4,
	vertex.WeightUnormByte4:  wgpu.VertexFormatUnorm8x4,
	vertex.WeightUnormShort4: wgpu.VertexFormatUnorm16x4,
}

// VertexFormat returns the WebGPU vertex format of a variant.
//
// Parameters:
//   - a: the attribute slot
//   - ordinal: the variant ordinal, non-zero
//
// Returns:
//   - wgpu.VertexFormat: the matching format
//   - error: ErrUnsupportedFormat if WebGPU has no equivalent
func VertexFormat(a vertex.Attribute, ordinal uint8) (wgpu.VertexFormat, error) {
	if int(a) >= vertex.AttributeCount {
		return formatUnsupported, fmt.Errorf("%s: %w", a, ErrUnsupportedFormat)
	}
	formats := wgpuVertexFormats[a]
	if ordinal == 0 || int(ordinal) >= len(formats) || formats[ordinal] == formatUnsupported {
		return formatUnsupported, fmt.Errorf("%s variant %d: %w", a, ordinal, ErrUnsupportedFormat)
	}
	return formats[ordinal], nil
}

// IndexFormat returns the WebGPU index format of an index element type.
//
// Parameters:
//   - f: the index format, not IndexAbsent
//
// Returns:
//   - wgpu.IndexFormat: the matching format
//   - error: ErrUnsupportedFormat for 8-bit indices, which WebGPU cannot bind
func IndexFormat(f vertex.IndexFormat) (wgpu.IndexFormat, error) {
	switch f {
	case vertex.IndexUint16:
		return wgpu.IndexFormatUint16, nil
	case vertex.IndexUint32:
		return wgpu.IndexFormatUint32, nil
	default:
		return wgpu.IndexFormatUndefined, fmt.Errorf("index format %d: %w", f, ErrUnsupportedFormat)
	}
}

// VertexBufferLayout builds the single interleaved buffer layout of a vertex definition.
// The definition is padded first, so every slot gets an attribute at shader location
// equal to its slot index and the stride matches the planned record size.
//
// Parameters:
//   - def: the vertex definition
//
// Returns:
//   - wgpu.VertexBufferLayout: the buffer layout
//   - error: ErrUnsupportedFormat if any present slot has no WebGPU format
func VertexBufferLayout(def vertex.VertexDefinition) (wgpu.VertexBufferLayout, error) {
	padded := vertex.Pad(def)

	attrs := make([]wgpu.VertexAttribute, 0, vertex.AttributeCount)
	for _, a := range vertex.Attributes {
		format, err := VertexFormat(a, padded.Ordinal(a))
		if err != nil {
			return wgpu.VertexBufferLayout{}, err
		}
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         format,
			Offset:         uint64(padded.Offset(a)),
			ShaderLocation: uint32(a),
		})
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(padded.Stride()),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}, nil
}
