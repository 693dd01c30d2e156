package vulkan

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/allocation"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/capacity"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/vertex"
	vk "github.com/goki/vulkan"
)

func TestPhysicalDeviceLimits(t *testing.T) {
	l := PhysicalDeviceLimits{
		MaxPerStageDescriptorSampledImages:  1 << 20,
		MaxPerStageDescriptorUniformBuffers: 15,
		MaxPerStageDescriptorStorageBuffers: 1 << 20,
		MaxUniformBufferRange:               65536,
		MaxStorageBufferRange:               1 << 31,
		MinUniformBufferOffsetAlignment:     64,
		MinStorageBufferOffsetAlignment:     16,
	}
	want := capacity.HardwareLimits{
		MaxSampledImagesPerStage:        1 << 20,
		MaxUniformBufferRange:           65536,
		MaxStorageBufferRange:           1 << 31,
		MaxStorageBuffersPerStage:       1 << 20,
		MaxUniformBuffersPerStage:       15,
		MinUniformBufferOffsetAlignment: 64,
		MinStorageBufferOffsetAlignment: 16,
	}
	if got := l.Limits(); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	usage, err := capacity.ChooseUsage(l.Limits())
	if err != nil {
		t.Fatalf("ChooseUsage: %v", err)
	}
	if usage != capacity.UsageStorage {
		t.Errorf("usage: got %s, want storage", usage)
	}
}

func TestBufferUsageFlags(t *testing.T) {
	tests := []struct {
		usage allocation.Usage
		want  vk.BufferUsageFlagBits
	}{
		{allocation.UsageVertex, vk.BufferUsageVertexBufferBit},
		{allocation.UsageIndex, vk.BufferUsageIndexBufferBit},
		{allocation.UsageUniform, vk.BufferUsageUniformBufferBit},
		{allocation.UsageStorage, vk.BufferUsageStorageBufferBit},
	}
	for _, tt := range tests {
		t.Run(tt.usage.String(), func(t *testing.T) {
			want := vk.BufferUsageFlags(tt.want | vk.BufferUsageTransferDstBit)
			if got := BufferUsageFlags(tt.usage); got != want {
				t.Errorf("got %#x, want %#x", got, want)
			}
		})
	}
}

func TestMemoryPropertyFlags(t *testing.T) {
	if got := MemoryPropertyFlags(allocation.VisibilityDeviceLocal); got != vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit) {
		t.Errorf("device local: got %#x", got)
	}
	host := MemoryPropertyFlags(allocation.VisibilityHostVisible)
	if host&vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit) == 0 {
		t.Errorf("host visible: got %#x, missing HostVisible", host)
	}
}

func TestFormatCoversEveryVariant(t *testing.T) {
	for _, a := range vertex.Attributes {
		for ord := 1; ord < vertex.VariantCount(a); ord++ {
			if _, err := Format(a, uint8(ord)); err != nil {
				t.Errorf("%s variant %d: %v", a, ord, err)
			}
		}
		if _, err := Format(a, uint8(vertex.VariantCount(a))); !errors.Is(err, common.ErrUnsupportedFormat) {
			t.Errorf("%s past domain: got err %v, want ErrUnsupportedFormat", a, err)
		}
	}
}

func TestIndexType(t *testing.T) {
	if got, err := IndexType(vertex.IndexUint32); err != nil || got != vk.IndexTypeUint32 {
		t.Errorf("uint32: got %v, %v", got, err)
	}
	if _, err := IndexType(vertex.IndexUint8); !errors.Is(err, common.ErrUnsupportedFormat) {
		t.Errorf("uint8: got err %v, want ErrUnsupportedFormat", err)
	}
}

func TestVertexInputDescriptions(t *testing.T) {
	def := vertex.VertexDefinition{Position: vertex.PositionHalf3, Color0: vertex.ColorUnormShortRGB}

	bind, attrs, err := VertexInputDescriptions(def, 2)
	if err != nil {
		t.Fatalf("VertexInputDescriptions: %v", err)
	}
	if bind.Binding != 2 || bind.InputRate != vk.VertexInputRateVertex {
		t.Errorf("binding: got %+v", bind)
	}
	if want := uint32(vertex.Pad(def).Stride()); bind.Stride != want {
		t.Errorf("stride: got %d, want %d", bind.Stride, want)
	}
	if len(attrs) != vertex.AttributeCount {
		t.Fatalf("attributes: got %d, want %d", len(attrs), vertex.AttributeCount)
	}
	if attrs[0].Format != vk.FormatR16g16b16Sfloat {
		t.Errorf("position format: got %v, want R16g16b16Sfloat", attrs[0].Format)
	}
	if attrs[vertex.AttributeColor0].Format != vk.FormatR16g16b16Unorm {
		t.Errorf("color format: got %v, want R16g16b16Unorm", attrs[vertex.AttributeColor0].Format)
	}
	if attrs[vertex.AttributeNormal].Offset != 6 {
		t.Errorf("normal offset: got %d, want 6", attrs[vertex.AttributeNormal].Offset)
	}
	for i, a := range attrs {
		if a.Location != uint32(i) || a.Binding != 2 {
			t.Errorf("attribute %d: got location %d binding %d", i, a.Location, a.Binding)
		}
	}
}
