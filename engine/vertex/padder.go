package vertex

// defaultOrdinals is the dense format substituted for an absent slot.
var defaultOrdinals = [AttributeCount]uint8{
	AttributePosition:  uint8(PositionFloat3),
	AttributeNormal:    uint8(NormalFloat3),
	AttributeTangent:   uint8(TangentFloat4),
	AttributeTexCoord0: uint8(TexCoordFloat2),
	AttributeTexCoord1: uint8(TexCoordFloat2),
	AttributeColor0:    uint8(ColorFloatRGBA),
	AttributeColor1:    uint8(ColorFloatRGBA),
	AttributeJoint0:    uint8(JointByte4),
	AttributeJoint1:    uint8(JointByte4),
	AttributeWeight0:   uint8(WeightFloat4),
	AttributeWeight1:   uint8(WeightFloat4),
}

// DefaultSize returns the bytes reserved for the slot when it is absent:
// 12, 12, 16, 8, 8, 16, 16, 4, 4, 16, 16 in declaration order.
func DefaultSize(a Attribute) int {
	if int(a) >= AttributeCount {
		return 0
	}
	return VariantSize(a, defaultOrdinals[a])
}

// Pad returns a copy of the definition with every absent attribute slot replaced
// by its dense default format. IndexType is left untouched.
//
// Parameters:
//   - d: the definition to pad
//
// Returns:
//   - VertexDefinition: the padded definition
func Pad(d VertexDefinition) VertexDefinition {
	for _, a := range Attributes {
		if !d.Has(a) {
			// defaults are always inside the domain
			_ = d.SetOrdinal(a, defaultOrdinals[a])
		}
	}
	return d
}
