package planner

import (
	"github.com/Carmen-Shannon/oxy-scenepack/common"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/allocation"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/capacity"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/model"
)

// planWorld picks the largest world tier the device's uniform range reaches and inserts
// one host-visible uniform entry holding every camera and light slot.
func (p *plannerImpl) planWorld(scene *model.SceneDescription, ledger *allocation.Ledger, limits capacity.HardwareLimits) (WorldPlan, error) {
	ceiling := limits.MaxUniformBufferRange

	var tier *WorldTier
	for i := range p.worldTiers {
		if ceiling >= p.worldTiers[i].Threshold {
			tier = &p.worldTiers[i]
			break
		}
	}
	if tier == nil {
		lowest := p.worldTiers[len(p.worldTiers)-1]
		return WorldPlan{}, &common.CapacityError{Resource: "uniform range", Required: lowest.Threshold, Available: ceiling}
	}

	required := uint64(tier.CameraSlots)*p.sizes.Camera + uint64(tier.LightSlots)*p.sizes.Light
	if required > tier.Threshold {
		return WorldPlan{}, &common.CapacityError{Resource: tier.Name + " world block bytes", Required: required, Available: tier.Threshold}
	}

	// one slot is the default camera
	cameras := uint32(len(scene.Cameras))
	if uint64(cameras)+1 > uint64(tier.CameraSlots) {
		return WorldPlan{}, &common.CapacityError{Resource: tier.Name + " camera slots", Required: uint64(cameras) + 1, Available: uint64(tier.CameraSlots)}
	}
	if uint64(len(scene.Lights)) > uint64(tier.LightSlots) {
		return WorldPlan{}, &common.CapacityError{Resource: tier.Name + " light slots", Required: uint64(len(scene.Lights)), Available: uint64(tier.LightSlots)}
	}

	entry := ledger.Insert(allocation.Entry{
		Usage:       allocation.UsageUniform,
		Visibility:  allocation.VisibilityHostVisible,
		Size:        required,
		ElementSize: required,
	})

	cams := make([]model.GPUCameraRecord, 0, len(scene.Cameras)+1)
	cams = append(cams, model.NewGPUCameraRecord(model.DefaultCamera()))
	for _, c := range scene.Cameras {
		cams = append(cams, model.NewGPUCameraRecord(c))
	}

	lights := make([]model.GPULightRecord, len(scene.Lights))
	for i, l := range scene.Lights {
		lights[i] = model.NewGPULightRecord(l)
	}

	return WorldPlan{
		Tier:             tier.Name,
		Entry:            entry,
		Size:             required,
		CameraSlots:      tier.CameraSlots,
		LightSlots:       tier.LightSlots,
		CameraRecordSize: p.sizes.Camera,
		LightRecordSize:  p.sizes.Light,
		Cameras: allocation.Container{
			Count:    cameras,
			Capacity: tier.CameraSlots,
			Buckets:  []int{entry},
		},
		CameraRecords: cams,
		Lights:        lights,
	}, nil
}
