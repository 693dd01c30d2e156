package planner

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/allocation"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/capacity"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/copyplan"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/model"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/vertex"
	"github.com/google/uuid"
)

// Plan is the result of one planning pass over a scene. It holds ledger indices only;
// no GPU memory exists until the ledger is handed to a BufferBuilder.
type Plan struct {
	ID         uuid.UUID
	Scene      string
	Primitives []PrimitivePlan
	World      WorldPlan
	Materials  MaterialPlan
	Textures   TexturePlan

	// Ledger is the snapshot of every allocation request, in insertion order.
	Ledger []allocation.Entry
}

// PrimitivePlan is the storage layout of one mesh primitive.
type PrimitivePlan struct {
	Mesh      int
	Primitive int
	Material  *int

	// IndexEntry is the ledger index of the index data, nil for non-indexed primitives.
	IndexEntry  *int
	IndexCount  int
	VertexEntry int
	VertexCount int

	// Definition is the padded layout of the packed vertex record.
	Definition vertex.VertexDefinition
	// Key encodes the unpadded layout, so absent attributes stay distinguishable.
	Key vertex.Key

	CopyOps     []copyplan.CopyOp
	Stride      uint32
	SourceBytes uint64
}

// CopyPlan reassembles the primitive's copy plan for copyplan.Execute.
func (p *PrimitivePlan) CopyPlan() copyplan.Plan {
	return copyplan.Plan{
		Ops:               p.CopyOps,
		DestinationStride: p.Stride,
		SourceBytes:       p.SourceBytes,
	}
}

// PackVertices runs the copy plan into a new buffer sized for the vertex entry.
// Bytes of absent slots stay zero.
//
// Parameters:
//   - buffers: the scene buffers the copy ops read from
//
// Returns:
//   - []byte: VertexCount packed records
//   - error: error if a source region is short
func (p *PrimitivePlan) PackVertices(buffers []model.Buffer) ([]byte, error) {
	dst := make([]byte, uint64(p.VertexCount)*uint64(p.Stride))
	if err := copyplan.Execute(p.CopyPlan(), buffers, dst, p.VertexCount); err != nil {
		return nil, fmt.Errorf("mesh %d primitive %d: %w", p.Mesh, p.Primitive, err)
	}
	return dst, nil
}

// WorldPlan is the combined camera and light uniform block.
// Cameras occupy the front of the block; slot 0 is the default camera.
type WorldPlan struct {
	Tier             string
	Entry            int
	Size             uint64
	CameraSlots      uint32
	LightSlots       uint32
	CameraRecordSize uint64
	LightRecordSize  uint64

	Cameras allocation.Container
	// CameraRecords holds the default camera followed by the scene's cameras.
	CameraRecords []model.GPUCameraRecord
	Lights        []model.GPULightRecord
}

// CameraOffset returns the byte offset of a camera slot inside the world block.
//
// Parameters:
//   - s: the camera slot, DefaultSlot for the built-in camera
//
// Returns:
//   - uint64: the byte offset from the start of the block
//   - error: common.ErrSlotOutOfRange if the slot does not fit the tier
func (w *WorldPlan) CameraOffset(s allocation.Slot) (uint64, error) {
	loc, err := w.Cameras.Locate(s)
	if err != nil {
		return 0, err
	}
	return uint64(loc.Offset) * w.CameraRecordSize, nil
}

// LightOffset returns the byte offset of a light inside the world block.
//
// Parameters:
//   - i: the light index
//
// Returns:
//   - uint64: the byte offset from the start of the block
//   - error: common.ErrSlotOutOfRange if i is past the tier's light slots
func (w *WorldPlan) LightOffset(i uint32) (uint64, error) {
	if i >= w.LightSlots {
		return 0, fmt.Errorf("%w: light %d of %d", common.ErrSlotOutOfRange, i, w.LightSlots)
	}
	return uint64(w.CameraSlots)*w.CameraRecordSize + uint64(i)*w.LightRecordSize, nil
}

// MaterialPlan is the bucketed material block layout.
type MaterialPlan struct {
	Tier      string
	Settings  capacity.Settings
	PerBlock  uint32
	Container allocation.Container
	Records   []model.GPUMaterialRecord
	Bindings  []MaterialBinding
}

// Locate returns the block and record offset of material i. Materials are packed from
// offset 0 with no reserved default slot.
//
// Parameters:
//   - i: the material index
//
// Returns:
//   - allocation.Location: the bucket, ledger index and record offset
//   - error: common.ErrSlotOutOfRange if i is past the last material
func (m *MaterialPlan) Locate(i uint32) (allocation.Location, error) {
	if i >= m.Container.Count || m.PerBlock == 0 {
		return allocation.Location{}, fmt.Errorf("%w: material %d of %d", common.ErrSlotOutOfRange, i, m.Container.Count)
	}
	bucket := i / m.PerBlock
	return allocation.Location{
		Bucket: int(bucket),
		Ledger: m.Container.Buckets[bucket],
		Offset: i % m.PerBlock,
	}, nil
}

// MaterialBinding lists the texture buckets one material samples from.
type MaterialBinding struct {
	Material int
	Slots    [model.TexturesPerMaterial]allocation.Slot
	Buckets  []allocation.BucketMatch
}

// TexturePlan is the bucketed texture descriptor block layout. Slot 0 of bucket 0 is the
// default texture.
type TexturePlan struct {
	Settings  capacity.Settings
	Container allocation.Container
	Records   []model.GPUTextureRecord
}

// BufferBinding places one ledger entry inside a builder-owned buffer.
type BufferBinding struct {
	Buffer int
	Offset uint64
	Size   uint64
}

// BufferBuilder turns a ledger snapshot into backing buffers. It returns one binding per
// entry, in ledger order.
type BufferBuilder interface {
	// Build creates the buffers that back the given entries.
	//
	// Parameters:
	//   - entries: the ledger snapshot, in insertion order
	//
	// Returns:
	//   - []BufferBinding: one binding per entry
	//   - error: error if any buffer cannot be created
	Build(entries []allocation.Entry) ([]BufferBinding, error)
}

// Bind hands the plan's ledger to a builder and checks it answered every entry.
//
// Parameters:
//   - b: the buffer builder
//
// Returns:
//   - []BufferBinding: one binding per ledger entry
//   - error: error if the builder fails or returns the wrong number of bindings
func (p *Plan) Bind(b BufferBuilder) ([]BufferBinding, error) {
	bindings, err := b.Build(p.Ledger)
	if err != nil {
		return nil, fmt.Errorf("plan %s: failed to build buffers: %w", p.ID, err)
	}
	if len(bindings) != len(p.Ledger) {
		return nil, fmt.Errorf("plan %s: builder returned %d bindings for %d entries", p.ID, len(bindings), len(p.Ledger))
	}
	return bindings, nil
}
