// Package copyplan plans the interleaved copies that move attribute data from scattered
// source regions into one packed vertex record per vertex.
package copyplan

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/model"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/vertex"
)

// AttributeSource is a resolved attribute: the accessor, the buffer view it reads and
// the variant the catalog picked for it.
type AttributeSource struct {
	Accessor *model.Accessor
	View     *model.BufferView
	Variant  uint8
}

// Sources holds one optional source per attribute slot; a nil entry is an absent attribute.
type Sources [vertex.AttributeCount]*AttributeSource

// Definition returns the unpadded vertex definition the sources describe.
func (s *Sources) Definition() (vertex.VertexDefinition, error) {
	var d vertex.VertexDefinition
	for _, a := range vertex.Attributes {
		src := s[a]
		if src == nil {
			continue
		}
		if err := d.SetOrdinal(a, src.Variant); err != nil {
			return vertex.VertexDefinition{}, err
		}
	}
	return d, nil
}

// CopyOp moves one attribute's elements into the packed destination records.
type CopyOp struct {
	Attribute         vertex.Attribute
	SourceBuffer      int
	SourceOffset      uint64
	ElementCount      uint32
	ElementSize       uint32
	SourceStride      uint32
	DestinationOffset uint32
	DestinationStride uint32
}

// Plan is the full copy plan of one primitive.
type Plan struct {
	Ops               []CopyOp
	DestinationStride uint32
	SourceBytes       uint64
}

// Build plans a copy op per present attribute. The destination record reserves room for
// all eleven slots: present slots at their variant size, absent slots at their default size.
// Every op's DestinationStride is the final record size.
//
// Parameters:
//   - sources: the per-slot sources, nil for absent slots
//   - vertexCount: the number of vertices in the primitive
//
// Returns:
//   - Plan: the copy ops, destination stride and total source byte volume
//   - error: common.ErrMissingBufferView if a present attribute has no buffer view,
//     common.ErrInvalidAccessor if an offset or stride is negative
func Build(sources Sources, vertexCount int) (Plan, error) {
	def, err := sources.Definition()
	if err != nil {
		return Plan{}, fmt.Errorf("failed to build vertex definition: %w", err)
	}

	var plan Plan
	var stride uint32
	for _, a := range vertex.Attributes {
		src := sources[a]
		if src == nil {
			stride += uint32(vertex.DefaultSize(a))
			plan.SourceBytes += uint64(vertexCount) * uint64(vertex.DefaultSize(a))
			continue
		}

		size := uint32(vertex.VariantSize(a, src.Variant))
		stride += size

		if src.View == nil {
			return Plan{}, fmt.Errorf("%s: %w", a, common.ErrMissingBufferView)
		}
		if src.View.ByteOffset < 0 || src.Accessor.ByteOffset < 0 || src.View.ByteStride < 0 {
			return Plan{}, fmt.Errorf("%s: %w: negative offset or stride", a, common.ErrInvalidAccessor)
		}

		srcStride := size
		if src.View.ByteStride > 0 {
			srcStride = uint32(src.View.ByteStride)
		}

		plan.Ops = append(plan.Ops, CopyOp{
			Attribute:         a,
			SourceBuffer:      src.View.Buffer,
			SourceOffset:      uint64(src.View.ByteOffset) + uint64(src.Accessor.ByteOffset),
			ElementCount:      uint32(src.Accessor.Count),
			ElementSize:       size,
			SourceStride:      srcStride,
			DestinationOffset: uint32(def.Offset(a)),
		})
		plan.SourceBytes += uint64(src.Accessor.Count) * uint64(src.Accessor.ElementSize())
	}

	for i := range plan.Ops {
		plan.Ops[i].DestinationStride = stride
	}
	plan.DestinationStride = stride
	return plan, nil
}

// Execute runs the plan against resolved buffers and writes vertexCount packed records
// into dst. Regions of absent slots are left untouched.
//
// Parameters:
//   - p: the plan to run
//   - buffers: the scene buffers, indexed by CopyOp.SourceBuffer
//   - dst: the destination, at least vertexCount*DestinationStride bytes
//   - vertexCount: the number of records to write
//
// Returns:
//   - error: error if a source region or dst is too short
func Execute(p Plan, buffers []model.Buffer, dst []byte, vertexCount int) error {
	need := uint64(vertexCount) * uint64(p.DestinationStride)
	if uint64(len(dst)) < need {
		return fmt.Errorf("destination holds %d bytes, plan needs %d", len(dst), need)
	}

	for _, op := range p.Ops {
		if op.SourceBuffer < 0 || op.SourceBuffer >= len(buffers) {
			return fmt.Errorf("%s: buffer %d out of range", op.Attribute, op.SourceBuffer)
		}
		src := buffers[op.SourceBuffer].Data
		size := uint64(op.ElementSize)
		n := uint64(min(int(op.ElementCount), vertexCount))
		if n == 0 {
			continue
		}

		last := op.SourceOffset + (n-1)*uint64(op.SourceStride) + size
		if last > uint64(len(src)) {
			return fmt.Errorf("%s: source region ends at %d, buffer holds %d bytes", op.Attribute, last, len(src))
		}

		for i := range n {
			s := op.SourceOffset + i*uint64(op.SourceStride)
			d := i*uint64(op.DestinationStride) + uint64(op.DestinationOffset)
			copy(dst[d:d+size], src[s:s+size])
		}
	}
	return nil
}
