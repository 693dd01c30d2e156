package planner

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/allocation"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/capacity"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/model"
)

// planMaterials selects the material tier from the sampler budget left after the
// reservation, then partitions the scene's materials into blocks.
func (p *plannerImpl) planMaterials(scene *model.SceneDescription, ledger *allocation.Ledger, resolver capacity.Resolver) (MaterialPlan, error) {
	budget := resolver.SamplerBudget()

	var tier *MaterialTier
	for i := range p.materialTiers {
		if budget >= p.materialTiers[i].MinSamplers {
			tier = &p.materialTiers[i]
			break
		}
	}
	if tier == nil {
		lowest := p.materialTiers[len(p.materialTiers)-1]
		return MaterialPlan{}, &common.CapacityError{Resource: "material samplers", Required: uint64(lowest.MinSamplers), Available: uint64(budget)}
	}

	settings, err := resolver.Settings(model.TexturesPerMaterial, p.sizes.Material)
	if err != nil {
		return MaterialPlan{}, err
	}
	perBlock := common.MinOf(tier.PerBlock, settings.ElementRange)
	if perBlock == 0 {
		return MaterialPlan{}, &common.CapacityError{Resource: "materials per block", Required: 1, Available: 0}
	}

	container, err := allocation.Partition(ledger, uint32(len(scene.Materials)), perBlock, allocation.Entry{
		Usage:       settings.Usage.Usage(),
		Visibility:  allocation.VisibilityDeviceLocal,
		ElementSize: p.sizes.Material,
	})
	if err != nil {
		return MaterialPlan{}, err
	}

	records := make([]model.GPUMaterialRecord, len(scene.Materials))
	for i, m := range scene.Materials {
		records[i] = model.NewGPUMaterialRecord(m)
	}

	return MaterialPlan{
		Tier:      tier.Name,
		Settings:  settings,
		PerBlock:  perBlock,
		Container: container,
		Records:   records,
	}, nil
}

// planTextures partitions the scene's textures, one sampler each, behind a reserved
// default texture slot.
func (p *plannerImpl) planTextures(scene *model.SceneDescription, ledger *allocation.Ledger, resolver capacity.Resolver) (TexturePlan, error) {
	settings, err := resolver.Settings(1, p.sizes.Texture)
	if err != nil {
		return TexturePlan{}, err
	}
	if settings.ElementRange == 0 {
		return TexturePlan{}, &common.CapacityError{Resource: "textures per block", Required: 1, Available: 0}
	}
	// material records store texture offsets as uint16
	settings.ElementRange = min(settings.ElementRange, math.MaxUint16)
	settings.TotalSize = uint64(settings.ElementRange) * p.sizes.Texture

	container, err := allocation.PartitionReserved(ledger, uint32(len(scene.Textures)), settings.ElementRange, allocation.Entry{
		Usage:       settings.Usage.Usage(),
		Visibility:  allocation.VisibilityDeviceLocal,
		ElementSize: p.sizes.Texture,
	})
	if err != nil {
		return TexturePlan{}, err
	}

	records := make([]model.GPUTextureRecord, len(scene.Textures))
	for i, t := range scene.Textures {
		records[i] = model.NewGPUTextureRecord(t)
	}

	return TexturePlan{
		Settings:  settings,
		Container: container,
		Records:   records,
	}, nil
}

// bindMaterialTextures looks up every material's texture slots in the texture blocks and
// writes each slot's offset into the material record. Unset slots bind the default texture.
func bindMaterialTextures(scene *model.SceneDescription, materials *MaterialPlan, textures *TexturePlan) error {
	materials.Bindings = make([]MaterialBinding, len(scene.Materials))
	for i, m := range scene.Materials {
		binding := MaterialBinding{Material: i}
		slots := make([]allocation.Slot, model.TexturesPerMaterial)
		for s, ref := range m.Textures {
			switch {
			case ref == nil:
				slots[s] = allocation.DefaultSlot()
			case *ref < 0 || *ref >= len(scene.Textures):
				return fmt.Errorf("material %d slot %d: %w: texture %d of %d", i, s, common.ErrSlotOutOfRange, *ref, len(scene.Textures))
			default:
				slots[s] = allocation.IndexSlot(uint32(*ref))
			}
			binding.Slots[s] = slots[s]

			loc, err := textures.Container.Locate(slots[s])
			if err != nil {
				return fmt.Errorf("material %d slot %d: %w", i, s, err)
			}
			materials.Records[i].Textures[s] = uint16(loc.Offset)
		}

		matches, err := textures.Container.Matches(slots)
		if err != nil {
			return fmt.Errorf("material %d: %w", i, err)
		}
		binding.Buckets = matches
		materials.Bindings[i] = binding
	}
	return nil
}
