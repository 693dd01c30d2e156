package model

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
)

func TestRecordSizes(t *testing.T) {
	tests := []struct {
		name string
		size int
		want int
		wire int
	}{
		{"camera", (&GPUCameraRecord{}).Size(), CameraRecordSize, len((&GPUCameraRecord{}).Marshal())},
		{"light", (&GPULightRecord{}).Size(), LightRecordSize, len((&GPULightRecord{}).Marshal())},
		{"material", (&GPUMaterialRecord{}).Size(), MaterialRecordSize, len((&GPUMaterialRecord{}).Marshal())},
		{"texture", (&GPUTextureRecord{}).Size(), TextureRecordSize, len((&GPUTextureRecord{}).Marshal())},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.size != tc.want {
				t.Errorf("Size: got %d, want %d", tc.size, tc.want)
			}
			if tc.wire != tc.want {
				t.Errorf("Marshal length: got %d, want %d", tc.wire, tc.want)
			}
		})
	}
}

func TestWorldTiersFitExactly(t *testing.T) {
	if got := 32*CameraRecordSize + 256*LightRecordSize; got != 16384 {
		t.Errorf("low tier: got %d, want 16384", got)
	}
	if got := 128*CameraRecordSize + 1024*LightRecordSize; got != 65536 {
		t.Errorf("high tier: got %d, want 65536", got)
	}
}

func TestMaterialRecordMarshal(t *testing.T) {
	m := DefaultMaterial()
	r := NewGPUMaterialRecord(m)
	r.Textures[TextureNormal] = 7

	buf := r.Marshal()
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])); got != 1 {
		t.Errorf("base color r: got %v, want 1", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[28:])); got != 0.5 {
		t.Errorf("alpha cutoff: got %v, want 0.5", got)
	}
	if got := binary.LittleEndian.Uint16(buf[48+2*int(TextureNormal):]); got != 7 {
		t.Errorf("normal texture slot: got %d, want 7", got)
	}
}

func TestTextureRecordFlags(t *testing.T) {
	src := 3
	r := NewGPUTextureRecord(Texture{Source: &src})
	if r.Source != 3 || r.Flags != TextureFlagSource {
		t.Errorf("got %+v", r)
	}
}

func TestSceneAccessorLookup(t *testing.T) {
	view := 0
	s := &SceneDescription{
		Accessors:   []Accessor{{Name: "pos", BufferView: &view}, {Name: "orphan"}},
		BufferViews: []BufferView{{ByteLength: 12}},
	}
	if _, err := s.Accessor(2); err == nil {
		t.Error("expected error for out-of-range accessor")
	}
	a, err := s.Accessor(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.View(a); err == nil {
		t.Error("expected missing buffer view error")
	}
	a, _ = s.Accessor(0)
	if v, err := s.View(a); err != nil || v.ByteLength != 12 {
		t.Errorf("got %+v, %v", v, err)
	}
}

func TestSceneViewRejectsNegativeOffsets(t *testing.T) {
	view := 0
	tests := []struct {
		name     string
		accessor Accessor
		view     BufferView
	}{
		{name: "accessor offset", accessor: Accessor{BufferView: &view, ByteOffset: -36}, view: BufferView{ByteOffset: 36, ByteLength: 72}},
		{name: "view offset", accessor: Accessor{BufferView: &view}, view: BufferView{ByteOffset: -4, ByteLength: 72}},
		{name: "view stride", accessor: Accessor{BufferView: &view}, view: BufferView{ByteLength: 72, ByteStride: -12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &SceneDescription{Accessors: []Accessor{tt.accessor}, BufferViews: []BufferView{tt.view}}
			if _, err := s.View(&s.Accessors[0]); !errors.Is(err, common.ErrInvalidAccessor) {
				t.Errorf("got %v, want ErrInvalidAccessor", err)
			}
		})
	}
}

func TestNewGPUCameraRecord(t *testing.T) {
	tests := []struct {
		name  string
		cam   Camera
		index int
		want  float32
	}{
		{"view is identity", DefaultCamera(), -1, 0},
		{"infinite perspective m10", Camera{YFov: math.Pi / 2, ZNear: 0.5}, 10, -1},
		{"infinite perspective m14", Camera{YFov: math.Pi / 2, ZNear: 0.5}, 14, -0.5},
		{"zero aspect treated as 1", Camera{YFov: math.Pi / 2, ZNear: 0.5}, 0, 1},
		{"orthographic xmag", Camera{Projection: ProjectionOrthographic, XMag: 4, YMag: 2, ZFar: 10}, 0, 0.25},
		{"orthographic depth", Camera{Projection: ProjectionOrthographic, XMag: 4, YMag: 2, ZFar: 10}, 10, -0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewGPUCameraRecord(tt.cam)
			if tt.index < 0 {
				for i, v := range r.View {
					want := float32(0)
					if i%5 == 0 {
						want = 1
					}
					if v != want {
						t.Errorf("view[%d]: got %v, want %v", i, v, want)
					}
				}
				return
			}
			if got := r.Projection[tt.index]; math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("projection[%d]: got %v, want %v", tt.index, got, tt.want)
			}
		})
	}
}
