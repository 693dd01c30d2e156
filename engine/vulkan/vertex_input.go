package vulkan

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/vertex"
	vk "github.com/goki/vulkan"
)

var vkFormats = [vertex.AttributeCount][]vk.Format{
	vertex.AttributePosition: {
		vertex.PositionFloat3: vk.FormatR32g32b32Sfloat,
		vertex.PositionFloat2: vk.FormatR32g32Sfloat,
		vertex.PositionHalf3:  vk.FormatR16g16b16Sfloat,
		vertex.PositionHalf2:  vk.FormatR16g16Sfloat,
	},
	vertex.AttributeNormal: {
		vertex.NormalFloat3: vk.FormatR32g32b32Sfloat,
		vertex.NormalHalf3:  vk.FormatR16g16b16Sfloat,
	},
	vertex.AttributeTangent: {
		vertex.TangentFloat4: vk.FormatR32g32b32a32Sfloat,
		vertex.TangentHalf4:  vk.FormatR16g16b16a16Sfloat,
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

var texCoordFormats = []vk.Format{
	vertex.TexCoordFloat2:      vk.FormatR32g32Sfloat,
	vertex.TexCoordHalf2:       vk.FormatR16g16Sfloat,
	vertex.TexCoordUnormByte2:  vk.FormatR8g8Unorm,
	vertex.TexCoordUnormShort2: vk.FormatR16g16Unorm,
	vertex.TexCoordUByte2:      vk.FormatR8g8Uint,
	vertex.TexCoordUShort2:     vk.FormatR16g16Uint,
}

var colorFormats = []vk.Format{
	vertex.ColorFloatRGBA:      vk.FormatR32g32b32a32Sfloat,
	vertex.ColorFloatRGB:       vk.FormatR32g32b32Sfloat,
	vertex.ColorHalfRGBA:       vk.FormatR16g16b16a16Sfloat,
	vertex.ColorHalfRGB:        vk.FormatR16g16b16Sfloat,
	vertex.ColorUnormByteRGBA:  vk.FormatR8g8b8a8Unorm,
	vertex.ColorUnormShortRGBA: vk.FormatR16g16b16a16Unorm,
	vertex.ColorUnormShortRGB:  vk.FormatR16g16b16Unorm,
}

var jointFormats = []vk.Format{
	vertex.JointByte4:   vk.FormatR8g8b8a8Uint,
	vertex.JointUShort4: vk.FormatR16g16b16a16Uint,
}

var weightFormats = []vk.Format{
	vertex.WeightFloat4:      vk.FormatR32g32b32a32Sfloat,
	vertex.WeightUnormByte4:  vk.FormatR8g8b8a8Unorm,
	vertex.WeightUnormShort4: vk.FormatR16g16b16a16Unorm,
}

// Format returns the Vulkan format of a variant.
//
// Parameters:
//   - a: the attribute slot
//   - ordinal: the variant ordinal, non-zero
//
// Returns:
//   - vk.Format: the matching format
//   - error: common.ErrUnsupportedFormat for absent or out-of-domain ordinals
func Format(a vertex.Attribute, ordinal uint8) (vk.Format, error) {
	if int(a) >= vertex.AttributeCount {
		return vk.FormatUndefined, fmt.Errorf("%s: %w", a, common.ErrUnsupportedFormat)
	}
	formats := vkFormats[a]
	if ordinal == 0 || int(ordinal) >= len(formats) {
		return vk.FormatUndefined, fmt.Errorf("%s variant %d: %w", a, ordinal, common.ErrUnsupportedFormat)
	}
	return formats[ordinal], nil
}

// IndexType returns the Vulkan index type of an index format. 8-bit indices need
// VK_EXT_index_type_uint8 and are rejected.
func IndexType(f vertex.IndexFormat) (vk.IndexType, error) {
	switch f {
	case vertex.IndexUint16:
		return vk.IndexTypeUint16, nil
	case vertex.IndexUint32:
		return vk.IndexTypeUint32, nil
	default:
		return vk.IndexTypeUint16, fmt.Errorf("index format %d: %w", f, common.ErrUnsupportedFormat)
	}
}

// VertexInputDescriptions builds the binding and attribute descriptions of a padded,
// interleaved vertex definition. Attribute locations equal slot indices.
//
// Parameters:
//   - def: the vertex definition, padded before use
//   - binding: the vertex buffer binding number
//
// Returns:
//   - vk.VertexInputBindingDescription: the per-vertex binding
//   - []vk.VertexInputAttributeDescription: one description per attribute slot
//   - error: error if a slot has no Vulkan format
func VertexInputDescriptions(def vertex.VertexDefinition, binding uint32) (vk.VertexInputBindingDescription, []vk.VertexInputAttributeDescription, error) {
	padded := vertex.Pad(def)

	attrs := make([]vk.VertexInputAttributeDescription, 0, vertex.AttributeCount)
	for _, a := range vertex.Attributes {
		format, err := Format(a, padded.Ordinal(a))
		if err != nil {
			return vk.VertexInputBindingDescription{}, nil, err
		}
		attrs = append(attrs, vk.VertexInputAttributeDescription{
			Location: uint32(a),
			Binding:  binding,
			Format:   format,
			Offset:   uint32(padded.Offset(a)),
		})
	}

	return vk.VertexInputBindingDescription{
		Binding:   binding,
		Stride:    uint32(padded.Stride()),
		InputRate: vk.VertexInputRateVertex,
	}, attrs, nil
}
