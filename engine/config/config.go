// Package config loads planner tunables and named device limit profiles from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/capacity"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/planner"
	"github.com/pelletier/go-toml/v2"
)

var (
	// ErrUnknownProfile is returned when a limits profile name is not configured.
	ErrUnknownProfile = errors.New("unknown limits profile")
	// ErrInvalidConfig is returned when a config value fails validation.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config is the full scenepack configuration.
type Config struct {
	// DefaultProfile names the limits profile used when none is requested.
	DefaultProfile string                   `toml:"default_profile"`
	Workers        int                      `toml:"workers"`
	LogLevel       string                   `toml:"log_level"`
	Planner        PlannerConfig            `toml:"planner"`
	Limits         map[string]LimitsProfile `toml:"limits"`
}

// PlannerConfig holds the planner's tunables.
type PlannerConfig struct {
	ReservedSamplers *uint32              `toml:"reserved_samplers"`
	RecordSizes      RecordSizesConfig    `toml:"record_sizes"`
	WorldTiers       []WorldTierConfig    `toml:"world_tiers"`
	MaterialTiers    []MaterialTierConfig `toml:"material_tiers"`
}

// RecordSizesConfig overrides GPU record sizes. Zero keeps the default.
type RecordSizesConfig struct {
	Camera   uint64 `toml:"camera"`
	Light    uint64 `toml:"light"`
	Material uint64 `toml:"material"`
	Texture  uint64 `toml:"texture"`
}

// WorldTierConfig is one world block tier.
type WorldTierConfig struct {
	Name        string `toml:"name"`
	Threshold   uint64 `toml:"threshold"`
	CameraSlots uint32 `toml:"camera_slots"`
	LightSlots  uint32 `toml:"light_slots"`
}

// MaterialTierConfig is one material block tier.
type MaterialTierConfig struct {
	Name        string `toml:"name"`
	MinSamplers uint32 `toml:"min_samplers"`
	PerBlock    uint32 `toml:"per_block"`
}

// LimitsProfile is a named set of device limits, for planning without a device.
type LimitsProfile struct {
	MaxSampledImagesPerStage        uint32 `toml:"max_sampled_images_per_stage"`
	MaxUniformBufferRange           uint64 `toml:"max_uniform_buffer_range"`
	MaxStorageBufferRange           uint64 `toml:"max_storage_buffer_range"`
	MaxStorageBuffersPerStage       uint32 `toml:"max_storage_buffers_per_stage"`
	MaxUniformBuffersPerStage       uint32 `toml:"max_uniform_buffers_per_stage"`
	MinUniformBufferOffsetAlignment uint64 `toml:"min_uniform_buffer_offset_alignment"`
	MinStorageBufferOffsetAlignment uint64 `toml:"min_storage_buffer_offset_alignment"`
}

var _ capacity.LimitsSource = LimitsProfile{}

// Limits converts the profile to hardware limits.
func (p LimitsProfile) Limits() capacity.HardwareLimits {
	return capacity.HardwareLimits{
		MaxSampledImagesPerStage:        p.MaxSampledImagesPerStage,
		MaxUniformBufferRange:           p.MaxUniformBufferRange,
		MaxStorageBufferRange:           p.MaxStorageBufferRange,
		MaxStorageBuffersPerStage:       p.MaxStorageBuffersPerStage,
		MaxUniformBuffersPerStage:       p.MaxUniformBuffersPerStage,
		MinUniformBufferOffsetAlignment: p.MinUniformBufferOffsetAlignment,
		MinStorageBufferOffsetAlignment: p.MinStorageBufferOffsetAlignment,
	}
}

// ProfileFromLimits converts hardware limits to a profile.
func ProfileFromLimits(l capacity.HardwareLimits) LimitsProfile {
	return LimitsProfile{
		MaxSampledImagesPerStage:        l.MaxSampledImagesPerStage,
		MaxUniformBufferRange:           l.MaxUniformBufferRange,
		MaxStorageBufferRange:           l.MaxStorageBufferRange,
		MaxStorageBuffersPerStage:       l.MaxStorageBuffersPerStage,
		MaxUniformBuffersPerStage:       l.MaxUniformBuffersPerStage,
		MinUniformBufferOffsetAlignment: l.MinUniformBufferOffsetAlignment,
		MinStorageBufferOffsetAlignment: l.MinStorageBufferOffsetAlignment,
	}
}

// Default returns the built-in configuration: the planner defaults and two profiles,
// a discrete desktop GPU and an integrated GPU limited to the low world tier.
func Default() Config {
	reserved := uint32(planner.DefaultReservedSamplers)
	cfg := Config{
		DefaultProfile: "desktop",
		Workers:        4,
		LogLevel:       "info",
		Planner: PlannerConfig{
			ReservedSamplers: &reserved,
		},
		Limits: map[string]LimitsProfile{
			"desktop": {
				MaxSampledImagesPerStage:        128,
				MaxUniformBufferRange:           65536,
				MaxStorageBufferRange:           1 << 27,
				MaxStorageBuffersPerStage:       16,
				MaxUniformBuffersPerStage:       15,
				MinUniformBufferOffsetAlignment: 256,
				MinStorageBufferOffsetAlignment: 32,
			},
			"integrated": {
				MaxSampledImagesPerStage:        64,
				MaxUniformBufferRange:           16384,
				MaxStorageBufferRange:           1 << 27,
				MaxStorageBuffersPerStage:       8,
				MaxUniformBuffersPerStage:       12,
				MinUniformBufferOffsetAlignment: 64,
				MinStorageBufferOffsetAlignment: 64,
			},
		},
	}
	for _, t := range planner.DefaultWorldTiers() {
		cfg.Planner.WorldTiers = append(cfg.Planner.WorldTiers, WorldTierConfig(t))
	}
	for _, t := range planner.DefaultMaterialTiers() {
		cfg.Planner.MaterialTiers = append(cfg.Planner.MaterialTiers, MaterialTierConfig(t))
	}
	return cfg
}

// Load reads a TOML file and overlays it on the defaults.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Config: the merged configuration
//   - error: error if the file cannot be read, decoded or validated
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML and overlays it on the defaults. Unknown keys are rejected.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Config: the merged configuration
//   - error: error if decoding or validation fails
func Parse(data []byte) (Config, error) {
	var file Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg := Default().merge(file)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// merge overlays the set values of o on c.
func (c Config) merge(o Config) Config {
	c.DefaultProfile = common.Coalesce(o.DefaultProfile, c.DefaultProfile)
	c.Workers = common.Coalesce(o.Workers, c.Workers)
	c.LogLevel = common.Coalesce(o.LogLevel, c.LogLevel)

	if o.Planner.ReservedSamplers != nil {
		c.Planner.ReservedSamplers = o.Planner.ReservedSamplers
	}
	rs := &c.Planner.RecordSizes
	rs.Camera = common.Coalesce(o.Planner.RecordSizes.Camera, rs.Camera)
	rs.Light = common.Coalesce(o.Planner.RecordSizes.Light, rs.Light)
	rs.Material = common.Coalesce(o.Planner.RecordSizes.Material, rs.Material)
	rs.Texture = common.Coalesce(o.Planner.RecordSizes.Texture, rs.Texture)
	if len(o.Planner.WorldTiers) > 0 {
		c.Planner.WorldTiers = o.Planner.WorldTiers
	}
	if len(o.Planner.MaterialTiers) > 0 {
		c.Planner.MaterialTiers = o.Planner.MaterialTiers
	}

	limits := make(map[string]LimitsProfile, len(c.Limits)+len(o.Limits))
	for k, v := range c.Limits {
		limits[k] = v
	}
	for k, v := range o.Limits {
		limits[k] = v
	}
	c.Limits = limits
	return c
}

// Validate checks the configuration for values the planner cannot use.
//
// Returns:
//   - error: ErrInvalidConfig or ErrUnknownProfile describing the first problem found
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	if _, ok := c.Limits[c.DefaultProfile]; !ok {
		return fmt.Errorf("default_profile %q: %w", c.DefaultProfile, ErrUnknownProfile)
	}
	for i, t := range c.Planner.WorldTiers {
		if t.Threshold == 0 || t.CameraSlots == 0 {
			return fmt.Errorf("%w: world tier %d (%s) needs a threshold and camera slots", ErrInvalidConfig, i, t.Name)
		}
	}
	for i, t := range c.Planner.MaterialTiers {
		if t.PerBlock == 0 {
			return fmt.Errorf("%w: material tier %d (%s) has zero materials per block", ErrInvalidConfig, i, t.Name)
		}
	}
	return nil
}

// Profile returns the named limits profile, or the default profile for an empty name.
//
// Parameters:
//   - name: the profile name
//
// Returns:
//   - LimitsProfile: the profile
//   - error: ErrUnknownProfile if no profile has that name
func (c Config) Profile(name string) (LimitsProfile, error) {
	name = common.Coalesce(name, c.DefaultProfile)
	p, ok := c.Limits[name]
	if !ok {
		return LimitsProfile{}, fmt.Errorf("%q: %w", name, ErrUnknownProfile)
	}
	return p, nil
}

// ProfileNames returns the configured profile names, sorted.
func (c Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Limits))
	for k := range c.Limits {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// PlannerOptions translates the planner section into planner options.
//
// Returns:
//   - []planner.PlannerBuilderOption: the options for planner.NewPlanner
func (c Config) PlannerOptions() []planner.PlannerBuilderOption {
	opts := []planner.PlannerBuilderOption{
		planner.WithRecordSizes(planner.RecordSizes(c.Planner.RecordSizes)),
	}
	if c.Planner.ReservedSamplers != nil {
		opts = append(opts, planner.WithReservedSamplers(*c.Planner.ReservedSamplers))
	}

	if len(c.Planner.WorldTiers) > 0 {
		tiers := make([]planner.WorldTier, len(c.Planner.WorldTiers))
		for i, t := range c.Planner.WorldTiers {
			tiers[i] = planner.WorldTier(t)
		}
		opts = append(opts, planner.WithWorldTiers(tiers...))
	}
	if len(c.Planner.MaterialTiers) > 0 {
		tiers := make([]planner.MaterialTier, len(c.Planner.MaterialTiers))
		for i, t := range c.Planner.MaterialTiers {
			tiers[i] = planner.MaterialTier(t)
		}
		opts = append(opts, planner.WithMaterialTiers(tiers...))
	}
	return opts
}

// Write encodes the configuration as TOML.
//
// Parameters:
//   - w: the destination writer
//
// Returns:
//   - error: error if encoding fails
func (c Config) Write(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(c)
}
