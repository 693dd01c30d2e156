package planner

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/allocation"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/model"
)

func TestStage(t *testing.T) {
	scene := triangleScene()
	scene.Cameras = []model.Camera{{Projection: model.ProjectionOrthographic, XMag: 2, YMag: 4, ZNear: 0, ZFar: 10}}
	scene.Lights = []model.Light{{Type: model.LightPoint, Intensity: 5}}

	plan, err := NewPlanner(desktop).Plan(scene)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	writes, err := plan.Stage(scene)
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}

	byEntry := make(map[int][]Write)
	for _, w := range writes {
		byEntry[w.Entry] = append(byEntry[w.Entry], w)
	}
	prim := plan.Primitives[0]

	idx := byEntry[*prim.IndexEntry]
	if len(idx) != 1 || !bytes.Equal(idx[0].Data, scene.Buffers[0].Data[72:78]) {
		t.Errorf("index write: got %+v", idx)
	}

	vtx := byEntry[prim.VertexEntry]
	if len(vtx) != 1 || uint64(len(vtx[0].Data)) != plan.Ledger[prim.VertexEntry].Size {
		t.Errorf("vertex write: got %d writes", len(vtx))
	}

	world := byEntry[plan.World.Entry]
	if len(world) != 1 || uint64(len(world[0].Data)) != plan.World.Size {
		t.Fatalf("world write: got %d writes", len(world))
	}

	loc, err := plan.Materials.Locate(0)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	mats := byEntry[loc.Ledger]
	if len(mats) != 1 || mats[0].Offset != 0 || uint64(len(mats[0].Data)) != model.MaterialRecordSize {
		t.Errorf("material write: got %+v", mats)
	}

	for _, w := range writes {
		entry := plan.Ledger[w.Entry]
		if w.Offset+uint64(len(w.Data)) > entry.Size {
			t.Errorf("write to entry %d ends at %d past its %d bytes", w.Entry, w.Offset+uint64(len(w.Data)), entry.Size)
		}
	}
}

func TestWorldMarshal(t *testing.T) {
	scene := triangleScene()
	scene.Cameras = []model.Camera{{Projection: model.ProjectionOrthographic, XMag: 2, YMag: 4, ZNear: 0, ZFar: 10}}
	scene.Lights = []model.Light{{}, {Type: model.LightSpot, Intensity: 7}}

	plan, err := NewPlanner(desktop).Plan(scene)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	w := plan.World
	if len(w.CameraRecords) != 2 {
		t.Fatalf("camera records: got %d, want default + 1", len(w.CameraRecords))
	}

	buf, err := w.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	f32 := func(off uint64) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}

	// default camera projection, m[11] of a perspective matrix
	if got := f32(64 + 11*4); got != -1 {
		t.Errorf("default camera m11: got %v, want -1", got)
	}
	// scene camera in slot 1, orthographic m[0] = 1/xmag
	if got := f32(w.CameraRecordSize + 64); got != 0.5 {
		t.Errorf("scene camera m0: got %v, want 0.5", got)
	}

	off, err := w.LightOffset(1)
	if err != nil {
		t.Fatalf("LightOffset: %v", err)
	}
	if got := binary.LittleEndian.Uint32(buf[off+12:]); got != uint32(model.LightSpot) {
		t.Errorf("light 1 type: got %d, want %d", got, model.LightSpot)
	}
	if got := f32(off + 28); got != 7 {
		t.Errorf("light 1 intensity: got %v, want 7", got)
	}
}

func TestStageTextureRecords(t *testing.T) {
	scene := triangleScene()
	src := 3
	scene.Textures = []model.Texture{{}, {Source: &src}}

	plan, err := NewPlanner(desktop).Plan(scene)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	writes, err := plan.Stage(scene)
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}

	loc, err := plan.Textures.Container.Locate(allocation.IndexSlot(1))
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	var found bool
	for _, w := range writes {
		if w.Entry != loc.Ledger || w.Offset != uint64(loc.Offset)*model.TextureRecordSize {
			continue
		}
		found = true
		if got := binary.LittleEndian.Uint32(w.Data); got != 3 {
			t.Errorf("texture 1 source: got %d, want 3", got)
		}
	}
	if !found {
		t.Errorf("no write for texture 1 at offset %d", loc.Offset)
	}
}

func TestStageIndexBounds(t *testing.T) {
	tests := []struct {
		name   string
		offset int
	}{
		{name: "past the buffer", offset: 100},
		{name: "negative", offset: -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := triangleScene()
			plan, err := NewPlanner(desktop).Plan(scene)
			if err != nil {
				t.Fatalf("Plan: %v", err)
			}
			scene.Accessors[2].ByteOffset = tt.offset
			if _, err := plan.Stage(scene); !errors.Is(err, common.ErrInvalidAccessor) {
				t.Errorf("got %v, want ErrInvalidAccessor", err)
			}
		})
	}
}

func TestCameraSlot(t *testing.T) {
	if !cameraSlot(0).IsDefault() {
		t.Error("record 0 should be the default slot")
	}
	if i, ok := cameraSlot(3).Index(); !ok || i != 2 {
		t.Errorf("record 3: got %d, %v, want index 2", i, ok)
	}
}
