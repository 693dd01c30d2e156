package planner

// PlannerBuilderOption is a functional option for configuring a Planner via NewPlanner.
type PlannerBuilderOption func(*plannerImpl)

// RecordSizes are the byte sizes of the fixed-size GPU records the planner lays out.
type RecordSizes struct {
	Camera   uint64
	Light    uint64
	Material uint64
	Texture  uint64
}

// WorldTier grants camera and light slots to devices whose uniform range reaches Threshold.
// The tier's byte budget is Threshold.
type WorldTier struct {
	Name        string
	Threshold   uint64
	CameraSlots uint32
	LightSlots  uint32
}

// MaterialTier fixes how many materials share one block once the sampler budget reaches
// MinSamplers.
type MaterialTier struct {
	Name        string
	MinSamplers uint32
	PerBlock    uint32
}

// WithRecordSizes is an option builder that overrides the GPU record sizes.
// Zero fields keep their defaults.
//
// Parameters:
//   - sizes: the record sizes
//
// Returns:
//   - PlannerBuilderOption: a function that applies the record sizes to a planner
func WithRecordSizes(sizes RecordSizes) PlannerBuilderOption {
	return func(p *plannerImpl) {
		if sizes.Camera != 0 {
			p.sizes.Camera = sizes.Camera
		}
		if sizes.Light != 0 {
			p.sizes.Light = sizes.Light
		}
		if sizes.Material != 0 {
			p.sizes.Material = sizes.Material
		}
		if sizes.Texture != 0 {
			p.sizes.Texture = sizes.Texture
		}
	}
}

// WithReservedSamplers is an option builder that sets how many sampler slots are held
// back for global bindings before material and texture blocks are sized.
//
// Parameters:
//   - n: the number of reserved per-stage sampler slots
//
// Returns:
//   - PlannerBuilderOption: a function that applies the reservation to a planner
func WithReservedSamplers(n uint32) PlannerBuilderOption {
	return func(p *plannerImpl) {
		p.reservedSamplers = n
	}
}

// WithWorldTiers is an option builder that replaces the world block tiers.
// Tiers are tried from the highest threshold down.
//
// Parameters:
//   - tiers: the world tiers
//
// Returns:
//   - PlannerBuilderOption: a function that applies the tiers to a planner
func WithWorldTiers(tiers ...WorldTier) PlannerBuilderOption {
	return func(p *plannerImpl) {
		if len(tiers) > 0 {
			p.worldTiers = sortedWorldTiers(tiers)
		}
	}
}

// WithMaterialTiers is an option builder that replaces the material block tiers.
// Tiers are tried from the largest sampler requirement down.
//
// Parameters:
//   - tiers: the material tiers
//
// Returns:
//   - PlannerBuilderOption: a function that applies the tiers to a planner
func WithMaterialTiers(tiers ...MaterialTier) PlannerBuilderOption {
	return func(p *plannerImpl) {
		if len(tiers) > 0 {
			p.materialTiers = sortedMaterialTiers(tiers)
		}
	}
}
