// Package vertex describes per-vertex attribute formats and packs a full vertex
// definition into a 32-bit key used to look up pipeline variants.
package vertex

import "fmt"

// ElementKind is the scalar storage kind of one accessor component.
type ElementKind uint8

const (
	KindHalfFloat ElementKind = iota
	KindFloat
	KindByteNormalized
	KindUShortNormalized
	KindByte
	KindUnsignedByte
	KindUnsignedShort
	KindUnsignedInt
)

var elementKindNames = map[ElementKind]string{
	KindHalfFloat:        "half",
	KindFloat:            "float",
	KindByteNormalized:   "unorm8",
	KindUShortNormalized: "unorm16",
	KindByte:             "sint8",
	KindUnsignedByte:     "uint8",
	KindUnsignedShort:    "uint16",
	KindUnsignedInt:      "uint32",
}

func (k ElementKind) String() string {
	name, ok := elementKindNames[k]
	if !ok {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return name
}

// ComponentSize returns the byte size of a single component of this kind.
//
// Returns:
//   - int: 1, 2 or 4 bytes, or 0 for an unknown kind
func (k ElementKind) ComponentSize() int {
	switch k {
	case KindByteNormalized, KindByte, KindUnsignedByte:
		return 1
	case KindHalfFloat, KindUShortNormalized, KindUnsignedShort:
		return 2
	case KindFloat, KindUnsignedInt:
		return 4
	default:
		return 0
	}
}

// Attribute identifies one of the eleven vertex attribute slots, in declaration order.
type Attribute uint8

const (
	AttributePosition Attribute = iota
	AttributeNormal
	AttributeTangent
	AttributeTexCoord0
	AttributeTexCoord1
	AttributeColor0
	AttributeColor1
	AttributeJoint0
	AttributeJoint1
	AttributeWeight0
	AttributeWeight1

	// AttributeCount is the number of vertex attribute slots.
	AttributeCount = 11
)

var attributeSemantics = [AttributeCount]string{
	"POSITION",
	"NORMAL",
	"TANGENT",
	"TEXCOORD_0",
	"TEXCOORD_1",
	"COLOR_0",
	"COLOR_1",
	"JOINTS_0",
	"JOINTS_1",
	"WEIGHTS_0",
	"WEIGHTS_1",
}

// Attributes lists every attribute slot in declaration order.
var Attributes = [AttributeCount]Attribute{
	AttributePosition,
	AttributeNormal,
	AttributeTangent,
	AttributeTexCoord0,
	AttributeTexCoord1,
	AttributeColor0,
	AttributeColor1,
	AttributeJoint0,
	AttributeJoint1,
	AttributeWeight0,
	AttributeWeight1,
}

// Semantic returns the glTF attribute semantic for the slot, e.g. "TEXCOORD_0".
func (a Attribute) Semantic() string {
	if int(a) >= AttributeCount {
		return fmt.Sprintf("attribute(%d)", uint8(a))
	}
	return attributeSemantics[a]
}

func (a Attribute) String() string { return a.Semantic() }

// AttributeBySemantic maps a glTF semantic back to its slot.
//
// Parameters:
//   - semantic: the glTF attribute name (e.g. "NORMAL")
//
// Returns:
//   - Attribute: the matching slot
//   - bool: false if the semantic has no slot
func AttributeBySemantic(semantic string) (Attribute, bool) {
	for i, s := range attributeSemantics {
		if s == semantic {
			return Attribute(i), true
		}
	}
	return 0, false
}

// PositionFormat is the storage format of the POSITION attribute.
type PositionFormat uint8

const (
	PositionAbsent PositionFormat = iota
	PositionFloat3
	PositionFloat2
	PositionHalf3
	PositionHalf2
)

// NormalFormat is the storage format of the NORMAL attribute.
type NormalFormat uint8

const (
	NormalAbsent NormalFormat = iota
	NormalFloat3
	NormalHalf3
)

// TangentFormat is the storage format of the TANGENT attribute.
type TangentFormat uint8

const (
	TangentAbsent TangentFormat = iota
	TangentFloat4
	TangentHalf4
)

// TexCoordFormat is the storage format of a TEXCOORD_n attribute.
type TexCoordFormat uint8

const (
	TexCoordAbsent TexCoordFormat = iota
	TexCoordFloat2
	TexCoordHalf2
	TexCoordUnormByte2
	TexCoordUnormShort2
	TexCoordUByte2
	TexCoordUShort2
)

// ColorFormat is the storage format of a COLOR_n attribute.
type ColorFormat uint8

const (
	ColorAbsent ColorFormat = iota
	ColorFloatRGBA
	ColorFloatRGB
	ColorHalfRGBA
	ColorHalfRGB
	ColorUnormByteRGBA
	ColorUnormShortRGBA
	ColorUnormShortRGB
)

// JointFormat is the storage format of a JOINTS_n attribute.
type JointFormat uint8

const (
	JointAbsent JointFormat = iota
	JointByte4
	JointUShort4
)

// WeightFormat is the storage format of a WEIGHTS_n attribute.
type WeightFormat uint8

const (
	WeightAbsent WeightFormat = iota
	WeightFloat4
	WeightUnormByte4
	WeightUnormShort4
)

// IndexFormat is the element type of the index buffer; IndexAbsent means non-indexed.
type IndexFormat uint8

const (
	IndexAbsent IndexFormat = iota
	IndexUint16
	IndexUint32
	IndexUint8
)

// formatSizes holds the byte size of every variant per attribute slot, indexed by ordinal.
// Ordinal 0 (absent) is always 0.
var formatSizes = [AttributeCount][]int{
	AttributePosition:  {0, 12, 8, 6, 4},
	AttributeNormal:    {0, 12, 6},
	AttributeTangent:   {0, 16, 8},
	AttributeTexCoord0: {0, 8, 4, 2, 4, 2, 4},
	AttributeTexCoord1: {0, 8, 4, 2, 4, 2, 4},
	AttributeColor0:    {0, 16, 12, 8, 6, 4, 8, 6},
	AttributeColor1:    {0, 16, 12, 8, 6, 4, 8, 6},
	AttributeJoint0:    {0, 4, 8},
	AttributeJoint1:    {0, 4, 8},
	AttributeWeight0:   {0, 16, 4, 8},
	AttributeWeight1:   {0, 16, 4, 8},
}

var indexSizes = []int{0, 2, 4, 1}

// VariantCount returns how many variants (including absent) the slot's domain has.
func VariantCount(a Attribute) int {
	return len(formatSizes[a])
}

// VariantSize returns the byte size of one element in the given variant ordinal.
//
// Parameters:
//   - a: the attribute slot
//   - ordinal: the variant ordinal within the slot's domain
//
// Returns:
//   - int: the element size in bytes, 0 for absent or out-of-domain ordinals
func VariantSize(a Attribute, ordinal uint8) int {
	sizes := formatSizes[a]
	if int(ordinal) >= len(sizes) {
		return 0
	}
	return sizes[ordinal]
}

// Size returns the byte size of one index element.
func (f IndexFormat) Size() int {
	if int(f) >= len(indexSizes) {
		return 0
	}
	return indexSizes[f]
}
