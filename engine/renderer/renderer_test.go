package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-scenepack/engine/allocation"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/capacity"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/vertex"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestVertexFormatCoversEveryVariant(t *testing.T) {
	unsupported := map[vertex.Attribute][]uint8{
		vertex.AttributePosition: {uint8(vertex.PositionHalf3)},
		vertex.AttributeNormal:   {uint8(vertex.NormalHalf3)},
		vertex.AttributeColor0:   {uint8(vertex.ColorHalfRGB), uint8(vertex.ColorUnormShortRGB)},
		vertex.AttributeColor1:   {uint8(vertex.ColorHalfRGB), uint8(vertex.ColorUnormShortRGB)},
	}

	for _, a := range vertex.Attributes {
		for ord := 1; ord < vertex.VariantCount(a); ord++ {
			wantErr := false
			for _, u := range unsupported[a] {
				if u == uint8(ord) {
					wantErr = true
				}
			}
			_, err := VertexFormat(a, uint8(ord))
			if wantErr != (err != nil) {
				t.Errorf("%s variant %d: got err %v, want error %v", a, ord, err, wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("%s variant %d: got err %v, want ErrUnsupportedFormat", a, ord, err)
			}
		}
		if _, err := VertexFormat(a, 0); err == nil {
			t.Errorf("%s absent: expected an error", a)
		}
	}
}

func TestVertexFormatValues(t *testing.T) {
	tests := []struct {
		attr    vertex.Attribute
		ordinal uint8
		want    wgpu.VertexFormat
	}{
		{vertex.AttributePosition, uint8(vertex.PositionFloat3), wgpu.VertexFormatFloat32x3},
		{vertex.AttributePosition, uint8(vertex.PositionHalf2), wgpu.VertexFormatFloat16x2},
		{vertex.AttributeTexCoord1, uint8(vertex.TexCoordUnormShort2), wgpu.VertexFormatUnorm16x2},
		{vertex.AttributeColor0, uint8(vertex.ColorUnormByteRGBA), wgpu.VertexFormatUnorm8x4},
		{vertex.AttributeJoint1, uint8(vertex.JointUShort4), wgpu.VertexFormatUint16x4},
		{vertex.AttributeWeight0, uint8(vertex.WeightUnormByte4), wgpu.VertexFormatUnorm8x4},
	}
	for _, tt := range tests {
		t.Run(tt.attr.String(), func(t *testing.T) {
			got, err := VertexFormat(tt.attr, tt.ordinal)
			if err != nil {
				t.Fatalf("VertexFormat: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIndexFormat(t *testing.T) {
	if got, err := IndexFormat(vertex.IndexUint16); err != nil || got != wgpu.IndexFormatUint16 {
		t.Errorf("uint16: got %v, %v", got, err)
	}
	if got, err := IndexFormat(vertex.IndexUint32); err != nil || got != wgpu.IndexFormatUint32 {
		t.Errorf("uint32: got %v, %v", got, err)
	}
	for _, f := range []vertex.IndexFormat{vertex.IndexUint8, vertex.IndexAbsent} {
		if _, err := IndexFormat(f); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("index format %d: got err %v, want ErrUnsupportedFormat", f, err)
		}
	}
}

func TestVertexBufferLayoutPositionNormal(t *testing.T) {
	def := vertex.VertexDefinition{Position: vertex.PositionFloat3, Normal: vertex.NormalFloat3}

	layout, err := VertexBufferLayout(def)
	if err != nil {
		t.Fatalf("VertexBufferLayout: %v", err)
	}
	if layout.ArrayStride != 128 {
		t.Errorf("stride: got %d, want 128", layout.ArrayStride)
	}
	if layout.StepMode != wgpu.VertexStepModeVertex {
		t.Errorf("step mode: got %v, want vertex", layout.StepMode)
	}
	if len(layout.Attributes) != vertex.AttributeCount {
		t.Fatalf("attributes: got %d, want %d", len(layout.Attributes), vertex.AttributeCount)
	}

	wantOffsets := []uint64{0, 12, 24, 40, 48, 56, 72, 88, 92, 96, 112}
	for i, attr := range layout.Attributes {
		if attr.Offset != wantOffsets[i] {
			t.Errorf("attribute %d offset: got %d, want %d", i, attr.Offset, wantOffsets[i])
		}
		if attr.ShaderLocation != uint32(i) {
			t.Errorf("attribute %d location: got %d, want %d", i, attr.ShaderLocation, i)
		}
	}
}

func TestVertexBufferLayoutUnsupported(t *testing.T) {
	def := vertex.VertexDefinition{Position: vertex.PositionHalf3}
	if _, err := VertexBufferLayout(def); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("got err %v, want ErrUnsupportedFormat", err)
	}
}

func TestLimitsFromWGPU(t *testing.T) {
	l := wgpu.DefaultLimits()
	l.MaxSampledTexturesPerShaderStage = 48
	l.MaxUniformBufferBindingSize = 65536
	l.MaxStorageBufferBindingSize = 1 << 27
	l.MaxStorageBuffersPerShaderStage = 8
	l.MaxUniformBuffersPerShaderStage = 12
	l.MinUniformBufferOffsetAlignment = 256
	l.MinStorageBufferOffsetAlignment = 32

	want := capacity.HardwareLimits{
		MaxSampledImagesPerStage:        48,
		MaxUniformBufferRange:           65536,
		MaxStorageBufferRange:           1 << 27,
		MaxStorageBuffersPerStage:       8,
		MaxUniformBuffersPerStage:       12,
		MinUniformBufferOffsetAlignment: 256,
		MinStorageBufferOffsetAlignment: 32,
	}
	if got := WGPULimits(l).Limits(); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	back := applyLimits(wgpu.DefaultLimits(), want)
	if got := LimitsFromWGPU(back); got != want {
		t.Errorf("applyLimits round trip: got %+v, want %+v", got, want)
	}
}

func TestBufferUsage(t *testing.T) {
	tests := []struct {
		usage allocation.Usage
		want  wgpu.BufferUsage
	}{
		{allocation.UsageVertex, wgpu.BufferUsageVertex},
		{allocation.UsageIndex, wgpu.BufferUsageIndex},
		{allocation.UsageUniform, wgpu.BufferUsageUniform},
		{allocation.UsageStorage, wgpu.BufferUsageStorage},
	}
	for _, tt := range tests {
		t.Run(tt.usage.String(), func(t *testing.T) {
			got := BufferUsage(tt.usage)
			if got&tt.want == 0 {
				t.Errorf("got %v, missing %v", got, tt.want)
			}
			if got&wgpu.BufferUsageCopyDst == 0 {
				t.Errorf("got %v, missing CopyDst", got)
			}
		})
	}
}
