package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-scenepack/engine/model"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/planner"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	names := cfg.ProfileNames()
	if len(names) != 2 || names[0] != "desktop" || names[1] != "integrated" {
		t.Errorf("profiles: got %v, want [desktop integrated]", names)
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	doc := `
default_profile = "tiny"
workers = 2

[planner]
reserved_samplers = 0

[planner.record_sizes]
light = 64

[[planner.material_tiers]]
name = "single"
min_samplers = 4
per_block = 1

[limits.tiny]
max_sampled_images_per_stage = 8
max_uniform_buffer_range = 16384
max_storage_buffer_range = 0
max_storage_buffers_per_stage = 0
max_uniform_buffers_per_stage = 12
`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Workers != 2 {
		t.Errorf("workers: got %d, want 2", cfg.Workers)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level: got %q, want default %q", cfg.LogLevel, "info")
	}
	if cfg.Planner.ReservedSamplers == nil || *cfg.Planner.ReservedSamplers != 0 {
		t.Errorf("reserved samplers: got %v, want 0", cfg.Planner.ReservedSamplers)
	}
	if cfg.Planner.RecordSizes.Light != 64 || cfg.Planner.RecordSizes.Camera != 0 {
		t.Errorf("record sizes: got %+v", cfg.Planner.RecordSizes)
	}
	if len(cfg.Planner.WorldTiers) != 2 {
		t.Errorf("world tiers: got %d, want the 2 defaults", len(cfg.Planner.WorldTiers))
	}
	if len(cfg.Planner.MaterialTiers) != 1 || cfg.Planner.MaterialTiers[0].Name != "single" {
		t.Errorf("material tiers: got %+v", cfg.Planner.MaterialTiers)
	}

	p, err := cfg.Profile("")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if p.MaxSampledImagesPerStage != 8 {
		t.Errorf("tiny samplers: got %d, want 8", p.MaxSampledImagesPerStage)
	}
	if _, err := cfg.Profile("desktop"); err != nil {
		t.Errorf("desktop profile lost in merge: %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown profile", `default_profile = "missing"`, ErrUnknownProfile},
		{"zero per block", "[[planner.material_tiers]]\nname = \"x\"\nper_block = 0\n", ErrInvalidConfig},
		{"zero threshold", "[[planner.world_tiers]]\nname = \"x\"\ncamera_slots = 4\n", ErrInvalidConfig},
		{"unknown key", `colour = "red"`, nil},
		{"malformed", `workers = `, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("got err %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenepack.toml")
	if err := os.WriteFile(path, []byte("workers = 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workers != 8 {
		t.Errorf("workers: got %d, want 8", cfg.Workers)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	cfg, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse of written config: %v\n%s", err, buf.String())
	}
	p, err := cfg.Profile("integrated")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if p.MaxUniformBufferRange != 16384 {
		t.Errorf("integrated uniform range: got %d, want 16384", p.MaxUniformBufferRange)
	}
}

func TestPlannerOptionsDriveThePlanner(t *testing.T) {
	cfg, err := Parse([]byte("[planner.record_sizes]\nmaterial = 128\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p, err := cfg.Profile("integrated")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}

	pl := planner.NewPlanner(p, cfg.PlannerOptions()...)
	sizes := pl.RecordSizes()
	if sizes.Material != 128 || sizes.Camera != model.CameraRecordSize {
		t.Errorf("record sizes: got %+v", sizes)
	}

	plan, err := pl.Plan(&model.SceneDescription{Name: "empty"})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if plan.World.Tier != "low" {
		t.Errorf("world tier: got %s, want low", plan.World.Tier)
	}
	if plan.Materials.Tier != "high-res" {
		t.Errorf("material tier: got %s, want high-res", plan.Materials.Tier)
	}
}
