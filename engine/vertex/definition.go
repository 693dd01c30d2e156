package vertex

import "fmt"

// VertexDefinition is the full per-primitive vertex layout: one format per attribute
// slot plus the index element type. The zero value has every slot absent.
type VertexDefinition struct {
	Position  PositionFormat
	Normal    NormalFormat
	Tangent   TangentFormat
	TexCoord0 TexCoordFormat
	TexCoord1 TexCoordFormat
	Color0    ColorFormat
	Color1    ColorFormat
	Joint0    JointFormat
	Joint1    JointFormat
	Weight0   WeightFormat
	Weight1   WeightFormat
	IndexType IndexFormat
}

// Ordinal returns the variant ordinal stored in the given attribute slot.
//
// Parameters:
//   - a: the attribute slot
//
// Returns:
//   - uint8: the variant ordinal, 0 when absent
func (d VertexDefinition) Ordinal(a Attribute) uint8 {
	switch a {
	case AttributePosition:
		return uint8(d.Position)
	case AttributeNormal:
		return uint8(d.Normal)
	case AttributeTangent:
		return uint8(d.Tangent)
	case AttributeTexCoord0:
		return uint8(d.TexCoord0)
	case AttributeTexCoord1:
		return uint8(d.TexCoord1)
	case AttributeColor0:
		return uint8(d.Color0)
	case AttributeColor1:
		return uint8(d.Color1)
	case AttributeJoint0:
		return uint8(d.Joint0)
	case AttributeJoint1:
		return uint8(d.Joint1)
	case AttributeWeight0:
		return uint8(d.Weight0)
	case AttributeWeight1:
		return uint8(d.Weight1)
	default:
		return 0
	}
}

// SetOrdinal stores a variant ordinal in the given attribute slot.
//
// Parameters:
//   - a: the attribute slot
//   - ordinal: the variant ordinal, must be inside the slot's domain
//
// Returns:
//   - error: error if the ordinal is outside the slot's domain
func (d *VertexDefinition) SetOrdinal(a Attribute, ordinal uint8) error {
	if int(a) >= AttributeCount || int(ordinal) >= VariantCount(a) {
		return fmt.Errorf("%s: ordinal %d outside domain", a, ordinal)
	}
	switch a {
	case AttributePosition:
		d.Position = PositionFormat(ordinal)
	case AttributeNormal:
		d.Normal = NormalFormat(ordinal)
	case AttributeTangent:
		d.Tangent = TangentFormat(ordinal)
	case AttributeTexCoord0:
		d.TexCoord0 = TexCoordFormat(ordinal)
	case AttributeTexCoord1:
		d.TexCoord1 = TexCoordFormat(ordinal)
	case AttributeColor0:
		d.Color0 = ColorFormat(ordinal)
	case AttributeColor1:
		d.Color1 = ColorFormat(ordinal)
	case AttributeJoint0:
		d.Joint0 = JointFormat(ordinal)
	case AttributeJoint1:
		d.Joint1 = JointFormat(ordinal)
	case AttributeWeight0:
		d.Weight0 = WeightFormat(ordinal)
	case AttributeWeight1:
		d.Weight1 = WeightFormat(ordinal)
	}
	return nil
}

// Has reports whether the attribute slot holds a non-absent format.
func (d VertexDefinition) Has(a Attribute) bool {
	return d.Ordinal(a) != 0
}

// Size returns the byte size of one element of the attribute slot, or 0 when absent.
func (d VertexDefinition) Size(a Attribute) int {
	return VariantSize(a, d.Ordinal(a))
}

// Stride returns the packed byte size of one vertex record. Every slot contributes
// its format size when present and its default size when absent.
//
// Returns:
//   - int: the destination record size in bytes
func (d VertexDefinition) Stride() int {
	stride := 0
	for _, a := range Attributes {
		if d.Has(a) {
			stride += d.Size(a)
		} else {
			stride += DefaultSize(a)
		}
	}
	return stride
}

// Offset returns the byte offset of the attribute slot inside a packed vertex record.
//
// Parameters:
//   - a: the attribute slot
//
// Returns:
//   - int: the byte offset from the start of the record
func (d VertexDefinition) Offset(a Attribute) int {
	offset := 0
	for _, b := range Attributes {
		if b == a {
			break
		}
		if d.Has(b) {
			offset += d.Size(b)
		} else {
			offset += DefaultSize(b)
		}
	}
	return offset
}
