// Package planner walks a scene description once and plans how its meshes, world data,
// materials and textures are packed into fixed-capacity GPU buffers.
package planner

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/allocation"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/capacity"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/model"
	"github.com/google/uuid"
)

// DefaultReservedSamplers is the number of sampler slots held back for global bindings.
const DefaultReservedSamplers = 5

// DefaultRecordSizes returns the sizes of the model package's GPU records.
func DefaultRecordSizes() RecordSizes {
	return RecordSizes{
		Camera:   model.CameraRecordSize,
		Light:    model.LightRecordSize,
		Material: model.MaterialRecordSize,
		Texture:  model.TextureRecordSize,
	}
}

// DefaultWorldTiers returns the low and high world block tiers.
func DefaultWorldTiers() []WorldTier {
	return []WorldTier{
		{Name: "high", Threshold: 65536, CameraSlots: 128, LightSlots: 1024},
		{Name: "low", Threshold: 16384, CameraSlots: 32, LightSlots: 256},
	}
}

// DefaultMaterialTiers returns the high-res and low-res material block tiers.
func DefaultMaterialTiers() []MaterialTier {
	return []MaterialTier{
		{Name: "high-res", MinSamplers: 32, PerBlock: 5},
		{Name: "low-res", MinSamplers: 16, PerBlock: 2},
	}
}

// plannerImpl is the implementation of the Planner interface.
type plannerImpl struct {
	source           capacity.LimitsSource
	sizes            RecordSizes
	reservedSamplers uint32
	worldTiers       []WorldTier
	materialTiers    []MaterialTier
}

// Planner plans GPU storage for scene descriptions against one device's limits.
//
// A Planner holds no per-scene state; every Plan call builds its own ledger.
type Planner interface {
	// Plan walks the scene once and returns its storage plan. Any failure aborts the
	// whole pass and no partial plan is returned.
	//
	// Parameters:
	//   - scene: the scene to plan
	//
	// Returns:
	//   - *Plan: the storage plan
	//   - error: error if any accessor, tier or capacity check fails
	Plan(scene *model.SceneDescription) (*Plan, error)

	// RecordSizes returns the GPU record sizes in use.
	//
	// Returns:
	//   - RecordSizes: the record sizes
	RecordSizes() RecordSizes
}

var _ Planner = &plannerImpl{}

// NewPlanner creates a new Planner that reads device limits from src.
//
// Parameters:
//   - src: the device limits source, queried once per Plan call
//   - options: a variadic list of PlannerBuilderOption functions to configure the Planner
//
// Returns:
//   - Planner: the configured planner
func NewPlanner(src capacity.LimitsSource, options ...PlannerBuilderOption) Planner {
	p := &plannerImpl{
		source:           src,
		sizes:            DefaultRecordSizes(),
		reservedSamplers: DefaultReservedSamplers,
		worldTiers:       DefaultWorldTiers(),
		materialTiers:    DefaultMaterialTiers(),
	}

	for _, option := range options {
		option(p)
	}
	return p
}

func (p *plannerImpl) RecordSizes() RecordSizes {
	return p.sizes
}

func (p *plannerImpl) Plan(scene *model.SceneDescription) (*Plan, error) {
	if scene == nil {
		return nil, errors.New("nil scene")
	}

	plan := &Plan{
		ID:    uuid.New(),
		Scene: scene.Name,
	}
	log := common.Logger().With("plan", plan.ID.String(), "scene", scene.Name)
	ledger := allocation.NewLedger()

	for meshIdx := range scene.Meshes {
		for primIdx := range scene.Meshes[meshIdx].Primitives {
			prim, err := p.planPrimitive(scene, ledger, meshIdx, primIdx)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", meshIdx, primIdx, err)
			}
			log.Debug("primitive planned", "mesh", meshIdx, "primitive", primIdx, "key", prim.Key, "stride", prim.Stride)
			plan.Primitives = append(plan.Primitives, prim)
		}
	}

	limits := p.source.Limits()

	world, err := p.planWorld(scene, ledger, limits)
	if err != nil {
		return nil, fmt.Errorf("world block: %w", err)
	}
	plan.World = world
	log.Info("world tier selected", "tier", world.Tier, "cameras", len(scene.Cameras), "lights", len(scene.Lights), "bytes", world.Size)

	resolver := capacity.NewResolver(limits, capacity.WithReservedSamplers(p.reservedSamplers))

	materials, err := p.planMaterials(scene, ledger, resolver)
	if err != nil {
		return nil, fmt.Errorf("material blocks: %w", err)
	}
	log.Info("material tier selected", "tier", materials.Tier, "usage", materials.Settings.Usage, "per_block", materials.PerBlock, "blocks", len(materials.Container.Buckets))

	textures, err := p.planTextures(scene, ledger, resolver)
	if err != nil {
		return nil, fmt.Errorf("texture blocks: %w", err)
	}
	log.Info("texture blocks planned", "usage", textures.Settings.Usage, "per_block", textures.Container.Capacity, "blocks", len(textures.Container.Buckets))

	if err := bindMaterialTextures(scene, &materials, &textures); err != nil {
		return nil, fmt.Errorf("material textures: %w", err)
	}
	for _, b := range materials.Bindings {
		if len(b.Buckets) > 1 {
			log.Warn("material samples more than one texture block", "material", b.Material, "blocks", len(b.Buckets))
		}
	}

	plan.Materials = materials
	plan.Textures = textures
	plan.Ledger = ledger.Snapshot()
	return plan, nil
}

func sortedWorldTiers(tiers []WorldTier) []WorldTier {
	out := slices.Clone(tiers)
	slices.SortFunc(out, func(a, b WorldTier) int {
		switch {
		case a.Threshold > b.Threshold:
			return -1
		case a.Threshold < b.Threshold:
			return 1
		default:
			return 0
		}
	})
	return out
}

func sortedMaterialTiers(tiers []MaterialTier) []MaterialTier {
	out := slices.Clone(tiers)
	slices.SortFunc(out, func(a, b MaterialTier) int {
		switch {
		case a.MinSamplers > b.MinSamplers:
			return -1
		case a.MinSamplers < b.MinSamplers:
			return 1
		default:
			return 0
		}
	})
	return out
}
