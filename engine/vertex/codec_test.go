package vertex

import (
	"errors"
	"testing"
)

// allDefinitions enumerates every representable definition by walking each slot's
// full domain one slot at a time, plus a few dense combinations.
func allDefinitions() []VertexDefinition {
	var defs []VertexDefinition
	defs = append(defs, VertexDefinition{})
	for _, a := range Attributes {
		for ord := 1; ord < VariantCount(a); ord++ {
			var d VertexDefinition
			_ = d.SetOrdinal(a, uint8(ord))
			defs = append(defs, d)
		}
	}
	for idx := IndexAbsent; idx <= IndexUint8; idx++ {
		defs = append(defs, VertexDefinition{IndexType: idx})
	}

	var maxed VertexDefinition
	for _, a := range Attributes {
		_ = maxed.SetOrdinal(a, uint8(VariantCount(a)-1))
	}
	maxed.IndexType = IndexUint8
	defs = append(defs, maxed, Pad(VertexDefinition{IndexType: IndexUint32}))
	return defs
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, d := range allDefinitions() {
		k := Encode(d)
		got, err := Decode(k)
		if err != nil {
			t.Fatalf("Decode(%s): %v", k, err)
		}
		if got != d {
			t.Errorf("Decode(Encode(%+v)) = %+v", d, got)
		}
	}
}

func TestFieldsAreDisjoint(t *testing.T) {
	var used uint32
	total := uint(0)
	for _, f := range Fields() {
		if f.Offset+f.Width > 32 {
			t.Fatalf("%s: bits %d..%d exceed 32", f.Name, f.Offset, f.Offset+f.Width-1)
		}
		if used&f.Mask() != 0 {
			t.Errorf("%s overlaps a previous field", f.Name)
		}
		used |= f.Mask()
		total += f.Width
	}
	if total != 31 {
		t.Errorf("total width: got %d, want 31", total)
	}
	if used&(1<<11) != 0 {
		t.Error("bit 11 must stay unused")
	}
}

func TestFieldOffsets(t *testing.T) {
	want := map[string][2]uint{
		"Position":  {0, 3},
		"Normal":    {3, 2},
		"Tangent":   {5, 2},
		"TexCoord0": {7, 4},
		"TexCoord1": {12, 4},
		"Color0":    {16, 3},
		"Color1":    {19, 3},
		"Joint0":    {22, 2},
		"Joint1":    {24, 2},
		"Weight0":   {26, 2},
		"Weight1":   {28, 2},
		"IndexType": {30, 2},
	}
	for _, f := range Fields() {
		w, ok := want[f.Name]
		if !ok {
			t.Errorf("unexpected field %s", f.Name)
			continue
		}
		if f.Offset != w[0] || f.Width != w[1] {
			t.Errorf("%s: got offset %d width %d, want %d/%d", f.Name, f.Offset, f.Width, w[0], w[1])
		}
	}
}

func TestDomainsFitWidths(t *testing.T) {
	fs := Fields()
	for i, a := range Attributes {
		if VariantCount(a) > 1<<fs[i].Width {
			t.Errorf("%s: %d variants do not fit %d bits", a, VariantCount(a), fs[i].Width)
		}
	}
}

func TestEncodeStaysInsideFields(t *testing.T) {
	fs := Fields()
	for i, a := range Attributes {
		for ord := 0; ord < VariantCount(a); ord++ {
			var d VertexDefinition
			_ = d.SetOrdinal(a, uint8(ord))
			k := uint32(Encode(d))
			if k&^fs[i].Mask() != 0 {
				t.Errorf("%s=%d sets bits outside its field: %#x", a, ord, k)
			}
		}
	}
}

func TestEncodeKnownValues(t *testing.T) {
	tests := []struct {
		name string
		def  VertexDefinition
		want Key
	}{
		{"empty", VertexDefinition{}, 0},
		{"position float3", VertexDefinition{Position: PositionFloat3}, 1},
		{"normal float3", VertexDefinition{Normal: NormalFloat3}, 1 << 3},
		{"texcoord1 float2", VertexDefinition{TexCoord1: TexCoordFloat2}, 1 << 12},
		{"index uint32", VertexDefinition{IndexType: IndexUint32}, 2 << 30},
		{"position+normal", VertexDefinition{Position: PositionFloat3, Normal: NormalFloat3}, 1 | 1<<3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Encode(tc.def); got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestDecodeRejectsOutOfDomain(t *testing.T) {
	// Normal has 3 variants; ordinal 3 is representable in 2 bits but invalid.
	k := Key(3 << normalOffset)
	if _, err := Decode(k); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("got %v, want ErrInvalidKey", err)
	}
}
