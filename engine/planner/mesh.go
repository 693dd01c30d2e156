package planner

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/allocation"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/copyplan"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/model"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/vertex"
)

// planPrimitive resolves a primitive's attributes, inserts its index entry (when indexed)
// and its vertex entry, and records the copy ops that fill the vertex entry.
func (p *plannerImpl) planPrimitive(scene *model.SceneDescription, ledger *allocation.Ledger, meshIdx, primIdx int) (PrimitivePlan, error) {
	prim := &scene.Meshes[meshIdx].Primitives[primIdx]

	if _, ok := prim.Attributes[vertex.AttributePosition.Semantic()]; !ok {
		return PrimitivePlan{}, fmt.Errorf("%s: %w", vertex.AttributePosition, common.ErrMissingAttribute)
	}
	if prim.Material != nil && (*prim.Material < 0 || *prim.Material >= len(scene.Materials)) {
		return PrimitivePlan{}, fmt.Errorf("%w: material %d of %d", common.ErrSlotOutOfRange, *prim.Material, len(scene.Materials))
	}

	var sources copyplan.Sources
	for semantic, accessorIdx := range prim.Attributes {
		a, ok := vertex.AttributeBySemantic(semantic)
		if !ok {
			common.Logger().Debug("attribute ignored", "mesh", meshIdx, "primitive", primIdx, "semantic", semantic)
			continue
		}

		acc, err := scene.Accessor(accessorIdx)
		if err != nil {
			return PrimitivePlan{}, fmt.Errorf("%s: %w", a, err)
		}
		view, err := scene.View(acc)
		if err != nil {
			return PrimitivePlan{}, fmt.Errorf("%s: %w", a, err)
		}
		variant, err := vertex.Resolve(a, acc.Kind, acc.Components)
		if err != nil {
			return PrimitivePlan{}, err
		}
		sources[a] = &copyplan.AttributeSource{Accessor: acc, View: view, Variant: variant}
	}
	vertexCount := sources[vertex.AttributePosition].Accessor.Count

	out := PrimitivePlan{
		Mesh:        meshIdx,
		Primitive:   primIdx,
		Material:    prim.Material,
		VertexCount: vertexCount,
	}

	indexType := vertex.IndexAbsent
	if prim.Indices != nil {
		acc, err := scene.Accessor(*prim.Indices)
		if err != nil {
			return PrimitivePlan{}, fmt.Errorf("indices: %w", err)
		}
		if _, err := scene.View(acc); err != nil {
			return PrimitivePlan{}, fmt.Errorf("indices: %w", err)
		}
		indexType, err = vertex.ResolveIndex(acc.Kind, acc.Components)
		if err != nil {
			return PrimitivePlan{}, err
		}

		componentSize := uint64(acc.Kind.ComponentSize())
		entry := ledger.Insert(allocation.Entry{
			Usage:       allocation.UsageIndex,
			Visibility:  allocation.VisibilityDeviceLocal,
			Size:        uint64(acc.Count) * componentSize,
			ElementSize: componentSize,
		})
		out.IndexEntry = &entry
		out.IndexCount = acc.Count
	}

	cp, err := copyplan.Build(sources, vertexCount)
	if err != nil {
		return PrimitivePlan{}, err
	}
	out.VertexEntry = ledger.Insert(allocation.Entry{
		Usage:       allocation.UsageVertex,
		Visibility:  allocation.VisibilityDeviceLocal,
		Size:        uint64(vertexCount) * uint64(cp.DestinationStride),
		ElementSize: uint64(cp.DestinationStride),
	})

	def, err := sources.Definition()
	if err != nil {
		return PrimitivePlan{}, err
	}
	def.IndexType = indexType

	out.Key = vertex.Encode(def)
	out.Definition = vertex.Pad(def)
	out.CopyOps = cp.Ops
	out.Stride = cp.DestinationStride
	out.SourceBytes = cp.SourceBytes
	return out, nil
}
