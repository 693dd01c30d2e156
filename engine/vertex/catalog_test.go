package vertex

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		attr  Attribute
		kind  ElementKind
		count int
		want  uint8
	}{
		{"position float3", AttributePosition, KindFloat, 3, uint8(PositionFloat3)},
		{"position half2", AttributePosition, KindHalfFloat, 2, uint8(PositionHalf2)},
		{"normal half3", AttributeNormal, KindHalfFloat, 3, uint8(NormalHalf3)},
		{"tangent float4", AttributeTangent, KindFloat, 4, uint8(TangentFloat4)},
		{"texcoord1 unorm16", AttributeTexCoord1, KindUShortNormalized, 2, uint8(TexCoordUnormShort2)},
		{"color0 unorm8 rgba", AttributeColor0, KindByteNormalized, 4, uint8(ColorUnormByteRGBA)},
		{"color1 float rgb", AttributeColor1, KindFloat, 3, uint8(ColorFloatRGB)},
		{"joint0 byte4", AttributeJoint0, KindUnsignedByte, 4, uint8(JointByte4)},
		{"joint1 unorm16x4", AttributeJoint1, KindUShortNormalized, 4, uint8(JointUShort4)},
		{"weight0 float4", AttributeWeight0, KindFloat, 4, uint8(WeightFloat4)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Resolve(tc.attr, tc.kind, tc.count)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestResolveRejectsUnlisted(t *testing.T) {
	tests := []struct {
		name  string
		attr  Attribute
		kind  ElementKind
		count int
	}{
		{"position float4", AttributePosition, KindFloat, 4},
		{"position uint16x3", AttributePosition, KindUnsignedShort, 3},
		{"tangent float3", AttributeTangent, KindFloat, 3},
		{"joint float4", AttributeJoint0, KindFloat, 4},
		{"joint byte3", AttributeJoint0, KindUnsignedByte, 3},
		{"texcoord float3", AttributeTexCoord0, KindFloat, 3},
		{"weight sint8", AttributeWeight1, KindByte, 4},
		{"mat4 count", AttributePosition, KindFloat, 16},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(tc.attr, tc.kind, tc.count)
			if !errors.Is(err, common.ErrUnsupportedFormat) {
				t.Fatalf("got %v, want ErrUnsupportedFormat", err)
			}
			var ufe *common.UnsupportedFormatError
			if !errors.As(err, &ufe) {
				t.Fatalf("error is not *UnsupportedFormatError: %T", err)
			}
			if ufe.Attribute != tc.attr.Semantic() || ufe.Count != tc.count || ufe.Kind != tc.kind.String() {
				t.Errorf("error names wrong pair: %+v", ufe)
			}
		})
	}
}

func TestResolveIndex(t *testing.T) {
	if f, err := ResolveIndex(KindUnsignedShort, 1); err != nil || f != IndexUint16 {
		t.Errorf("uint16: got %d, %v", f, err)
	}
	if f, err := ResolveIndex(KindUnsignedInt, 1); err != nil || f != IndexUint32 {
		t.Errorf("uint32: got %d, %v", f, err)
	}
	if _, err := ResolveIndex(KindFloat, 1); !errors.Is(err, common.ErrUnsupportedFormat) {
		t.Errorf("float index: got %v, want ErrUnsupportedFormat", err)
	}
	if _, err := ResolveIndex(KindUnsignedShort, 3); !errors.Is(err, common.ErrUnsupportedFormat) {
		t.Errorf("vec3 index: got %v, want ErrUnsupportedFormat", err)
	}
}

func TestEveryCatalogEntryHasSize(t *testing.T) {
	for _, a := range Attributes {
		for key, ord := range catalog[a] {
			if ord == 0 {
				t.Errorf("%s %v resolves to absent", a, key)
			}
			if got, want := VariantSize(a, ord), key.kind.ComponentSize()*key.count; got != want {
				t.Errorf("%s %s x%d: size got %d, want %d", a, key.kind, key.count, got, want)
			}
		}
	}
}
