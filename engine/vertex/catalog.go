package vertex

import "github.com/Carmen-Shannon/oxy-scenepack/common"

type formatKey struct {
	kind  ElementKind
	count int
}

// catalog is the closed table of accepted (kind, component count) pairs per slot.
// Anything not listed is rejected.
var catalog = [AttributeCount]map[formatKey]uint8{
	AttributePosition: {
		{KindFloat, 3}:     uint8(PositionFloat3),
		{KindFloat, 2}:     uint8(PositionFloat2),
		{KindHalfFloat, 3}: uint8(PositionHalf3),
		{KindHalfFloat, 2}: uint8(PositionHalf2),
	},
	AttributeNormal: {
		{KindFloat, 3}:     uint8(NormalFloat3),
		{KindHalfFloat, 3}: uint8(NormalHalf3),
	},
	AttributeTangent: {
		{KindFloat, 4}:     uint8(TangentFloat4),
		{KindHalfFloat, 4}: uint8(TangentHalf4),
	},
	AttributeTexCoord0: texCoordFormats,
	AttributeTexCoord1: texCoordFormats,
	AttributeColor0:    colorFormats,
	AttributeColor1:    colorFormats,
	AttributeJoint0:    jointFormats,
	AttributeJoint1:    jointFormats,
	AttributeWeight0:   weightFormats,
	AttributeWeight1:   weightFormats,
}

var texCoordFormats = map[formatKey]uint8{
	{KindFloat, 2}:            uint8(TexCoordFloat2),
	{KindHalfFloat, 2}:        uint8(TexCoordHalf2),
	{KindByteNormalized, 2}:   uint8(TexCoordUnormByte2),
	{KindUShortNormalized, 2}: uint8(TexCoordUnormShort2),
	{KindUnsignedByte, 2}:     uint8(TexCoordUByte2),
	{KindUnsignedShort, 2}:    uint8(TexCoordUShort2),
}

var colorFormats = map[formatKey]uint8{
	{KindFloat, 4}:            uint8(ColorFloatRGBA),
	{KindFloat, 3}:            uint8(ColorFloatRGB),
	{KindHalfFloat, 4}:        uint8(ColorHalfRGBA),
	{KindHalfFloat, 3}:        uint8(ColorHalfRGB),
	{KindByteNormalized, 4}:   uint8(ColorUnormByteRGBA),
	{KindUShortNormalized, 4}: uint8(ColorUnormShortRGBA),
	{KindUShortNormalized, 3}: uint8(ColorUnormShortRGB),
}

var jointFormats = map[formatKey]uint8{
	{KindUnsignedByte, 4}:     uint8(JointByte4),
	{KindUShortNormalized, 4}: uint8(JointUShort4),
	{KindUnsignedShort, 4}:    uint8(JointUShort4),
}

var weightFormats = map[formatKey]uint8{
	{KindFloat, 4}:            uint8(WeightFloat4),
	{KindByteNormalized, 4}:   uint8(WeightUnormByte4),
	{KindUShortNormalized, 4}: uint8(WeightUnormShort4),
}

var indexFormats = map[ElementKind]IndexFormat{
	KindUnsignedShort: IndexUint16,
	KindUnsignedInt:   IndexUint32,
	KindUnsignedByte:  IndexUint8,
}

// Resolve maps an accessor's element kind and component count to the attribute
// slot's variant ordinal.
//
// Parameters:
//   - a: the attribute slot being resolved
//   - kind: the accessor's element kind
//   - count: the accessor's component count
//
// Returns:
//   - uint8: the variant ordinal (never 0 on success)
//   - error: *common.UnsupportedFormatError if the pair is not in the catalog
func Resolve(a Attribute, kind ElementKind, count int) (uint8, error) {
	if int(a) < AttributeCount {
		if ordinal, ok := catalog[a][formatKey{kind, count}]; ok {
			return ordinal, nil
		}
	}
	return 0, &common.UnsupportedFormatError{
		Attribute: a.Semantic(),
		Kind:      kind.String(),
		Count:     count,
	}
}

// ResolveIndex maps an index accessor's element kind and component count to an IndexFormat.
//
// Parameters:
//   - kind: the accessor's element kind
//   - count: the accessor's component count (must be 1)
//
// Returns:
//   - IndexFormat: the index element type
//   - error: *common.UnsupportedFormatError if the pair is not accepted
func ResolveIndex(kind ElementKind, count int) (IndexFormat, error) {
	if count == 1 {
		if f, ok := indexFormats[kind]; ok {
			return f, nil
		}
	}
	return IndexAbsent, &common.UnsupportedFormatError{
		Attribute: "INDICES",
		Kind:      kind.String(),
		Count:     count,
	}
}

// Set resolves the (kind, count) pair for the slot and stores it in the definition.
//
// Parameters:
//   - a: the attribute slot
//   - kind: the accessor's element kind
//   - count: the accessor's component count
//
// Returns:
//   - error: *common.UnsupportedFormatError if the pair is not in the catalog
func (d *VertexDefinition) Set(a Attribute, kind ElementKind, count int) error {
	ordinal, err := Resolve(a, kind, count)
	if err != nil {
		return err
	}
	return d.SetOrdinal(a, ordinal)
}
