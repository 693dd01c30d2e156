package planner

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/allocation"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/model"
)

// Write is one region of initial data for a ledger entry.
type Write struct {
	Entry  int
	Offset uint64
	Data   []byte
}

// Stage produces the initial contents of every planned entry: the world block, material
// and texture records, packed vertices and index data. Bytes no write covers stay zero.
//
// Parameters:
//   - scene: the scene the plan was made for
//
// Returns:
//   - []Write: the writes, in ledger order of their entries
//   - error: error if a source region is short or a record cannot be located
func (p *Plan) Stage(scene *model.SceneDescription) ([]Write, error) {
	var writes []Write

	for i := range p.Primitives {
		prim := &p.Primitives[i]
		if prim.IndexEntry != nil {
			data, err := indexData(scene, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d indices: %w", prim.Mesh, prim.Primitive, err)
			}
			writes = append(writes, Write{Entry: *prim.IndexEntry, Data: data})
		}

		data, err := prim.PackVertices(scene.Buffers)
		if err != nil {
			return nil, err
		}
		writes = append(writes, Write{Entry: prim.VertexEntry, Data: data})
	}

	world, err := p.World.Marshal()
	if err != nil {
		return nil, err
	}
	writes = append(writes, Write{Entry: p.World.Entry, Data: world})

	for i := range p.Materials.Records {
		loc, err := p.Materials.Locate(uint32(i))
		if err != nil {
			return nil, err
		}
		size := p.Ledger[loc.Ledger].ElementSize
		writes = append(writes, Write{
			Entry:  loc.Ledger,
			Offset: uint64(loc.Offset) * size,
			Data:   fit(p.Materials.Records[i].Marshal(), size),
		})
	}

	for i := range p.Textures.Records {
		loc, err := p.Textures.Container.Locate(allocation.IndexSlot(uint32(i)))
		if err != nil {
			return nil, fmt.Errorf("texture %d: %w", i, err)
		}
		size := p.Ledger[loc.Ledger].ElementSize
		writes = append(writes, Write{
			Entry:  loc.Ledger,
			Offset: uint64(loc.Offset) * size,
			Data:   fit(p.Textures.Records[i].Marshal(), size),
		})
	}
	return writes, nil
}

// Marshal lays the camera and light records out at their slot offsets.
//
// Returns:
//   - []byte: the whole world block, Size bytes
//   - error: common.ErrSlotOutOfRange if a record has no slot in the tier
func (w *WorldPlan) Marshal() ([]byte, error) {
	buf := make([]byte, w.Size)
	for i, c := range w.CameraRecords {
		off, err := w.CameraOffset(cameraSlot(i))
		if err != nil {
			return nil, fmt.Errorf("camera %d: %w", i, err)
		}
		copy(buf[off:off+w.CameraRecordSize], c.Marshal())
	}
	for i, l := range w.Lights {
		off, err := w.LightOffset(uint32(i))
		if err != nil {
			return nil, err
		}
		copy(buf[off:off+w.LightRecordSize], l.Marshal())
	}
	return buf, nil
}

// cameraSlot maps a CameraRecords index to its slot: 0 is the default camera.
func cameraSlot(i int) allocation.Slot {
	if i == 0 {
		return allocation.DefaultSlot()
	}
	return allocation.IndexSlot(uint32(i - 1))
}

// fit truncates or zero-extends a marshalled record to the configured record size.
func fit(data []byte, size uint64) []byte {
	if uint64(len(data)) == size {
		return data
	}
	out := make([]byte, size)
	copy(out, data)
	return out
}

// indexData slices a primitive's tightly packed index data out of its scene buffer.
func indexData(scene *model.SceneDescription, prim *PrimitivePlan) ([]byte, error) {
	src := scene.Meshes[prim.Mesh].Primitives[prim.Primitive]
	acc, err := scene.Accessor(*src.Indices)
	if err != nil {
		return nil, err
	}
	view, err := scene.View(acc)
	if err != nil {
		return nil, err
	}
	if view.Buffer < 0 || view.Buffer >= len(scene.Buffers) {
		return nil, fmt.Errorf("buffer %d out of range", view.Buffer)
	}

	start := view.ByteOffset + acc.ByteOffset
	end := start + acc.Count*acc.Kind.ComponentSize()
	data := scene.Buffers[view.Buffer].Data
	if start < 0 || end < start || end > len(data) {
		return nil, fmt.Errorf("%w: indices span %d..%d, buffer holds %d bytes", common.ErrInvalidAccessor, start, end, len(data))
	}
	return data[start:end], nil
}
