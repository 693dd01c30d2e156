package vertex

import (
	"errors"
	"fmt"
)

// Key is a VertexDefinition packed into 32 bits. Each field lives at a fixed
// offset with a fixed width; bit 11 is never set.
type Key uint32

func (k Key) String() string {
	return fmt.Sprintf("0x%08x", uint32(k))
}

// Field describes where one definition field lives inside a Key.
type Field struct {
	Name   string
	Offset uint
	Width  uint
}

// Mask returns the in-place bit mask of the field.
func (f Field) Mask() uint32 {
	return ((1 << f.Width) - 1) << f.Offset
}

const (
	positionOffset  = 0
	normalOffset    = 3
	tangentOffset   = 5
	texCoord0Offset = 7
	// bit 11 is unused
	texCoord1Offset = 12
	color0Offset    = 16
	color1Offset    = 19
	joint0Offset    = 22
	joint1Offset    = 24
	weight0Offset   = 26
	weight1Offset   = 28
	indexOffset     = 30

	positionWidth = 3
	normalWidth   = 2
	tangentWidth  = 2
	texCoordWidth = 4
	colorWidth    = 3
	jointWidth    = 2
	weightWidth   = 2
	indexWidth    = 2
)

var fields = []Field{
	{"Position", positionOffset, positionWidth},
	{"Normal", normalOffset, normalWidth},
	{"Tangent", tangentOffset, tangentWidth},
	{"TexCoord0", texCoord0Offset, texCoordWidth},
	{"TexCoord1", texCoord1Offset, texCoordWidth},
	{"Color0", color0Offset, colorWidth},
	{"Color1", color1Offset, colorWidth},
	{"Joint0", joint0Offset, jointWidth},
	{"Joint1", joint1Offset, jointWidth},
	{"Weight0", weight0Offset, weightWidth},
	{"Weight1", weight1Offset, weightWidth},
	{"IndexType", indexOffset, indexWidth},
}

// Fields returns the bit layout of a Key in field declaration order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// ErrInvalidKey is returned by Decode when a field holds an ordinal outside its domain.
var ErrInvalidKey = errors.New("invalid vertex key")

// Encode packs the definition into a Key. Field values are trusted to fit their
// width because every format domain is smaller than 1<<width.
//
// Parameters:
//   - d: the definition to pack
//
// Returns:
//   - Key: the packed key
func Encode(d VertexDefinition) Key {
	var k uint32
	k |= uint32(d.Position) << positionOffset
	k |= uint32(d.Normal) << normalOffset
	k |= uint32(d.Tangent) << tangentOffset
	k |= uint32(d.TexCoord0) << texCoord0Offset
	k |= uint32(d.TexCoord1) << texCoord1Offset
	k |= uint32(d.Color0) << color0Offset
	k |= uint32(d.Color1) << color1Offset
	k |= uint32(d.Joint0) << joint0Offset
	k |= uint32(d.Joint1) << joint1Offset
	k |= uint32(d.Weight0) << weight0Offset
	k |= uint32(d.Weight1) << weight1Offset
	k |= uint32(d.IndexType) << indexOffset
	return Key(k)
}

// Decode unpacks a Key produced by Encode.
//
// Parameters:
//   - k: the packed key
//
// Returns:
//   - VertexDefinition: the unpacked definition
//   - error: ErrInvalidKey if any field holds an ordinal outside its domain
func Decode(k Key) (VertexDefinition, error) {
	var d VertexDefinition
	for i, a := range Attributes {
		f := fields[i]
		ordinal := uint8((uint32(k) >> f.Offset) & ((1 << f.Width) - 1))
		if err := d.SetOrdinal(a, ordinal); err != nil {
			return VertexDefinition{}, fmt.Errorf("%w: %s=%d", ErrInvalidKey, f.Name, ordinal)
		}
	}

	index := IndexFormat((uint32(k) >> indexOffset) & ((1 << indexWidth) - 1))
	if int(index) >= len(indexSizes) {
		return VertexDefinition{}, fmt.Errorf("%w: IndexType=%d", ErrInvalidKey, index)
	}
	d.IndexType = index

	return d, nil
}

// Key returns the packed key of the definition.
func (d VertexDefinition) Key() Key {
	return Encode(d)
}
