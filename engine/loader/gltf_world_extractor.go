package loader

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-scenepack/engine/model"
)

// gltfWorldExtractorImpl is the implementation of the gltfWorldExtractor interface.
type gltfWorldExtractorImpl struct {
	parser gltfParser
}

// gltfWorldExtractor defines the interface for extracting cameras and KHR_lights_punctual
// lights from a parsed glTF document.
type gltfWorldExtractor interface {
	// ExtractAllCameras extracts every camera projection.
	//
	// Returns:
	//   - []model.Camera: the cameras, in document order
	//   - error: error if a camera type is unknown or its projection is missing
	ExtractAllCameras() ([]model.Camera, error)

	// ExtractAllLights extracts every punctual light.
	//
	// Returns:
	//   - []model.Light: the lights, in document order, empty when the extension is absent
	//   - error: error if a light type is unknown
	ExtractAllLights() ([]model.Light, error)
}

var _ gltfWorldExtractor = &gltfWorldExtractorImpl{}

func newGLTFWorldExtractor(parser gltfParser) gltfWorldExtractor {
	return &gltfWorldExtractorImpl{parser: parser}
}

func (e *gltfWorldExtractorImpl) ExtractAllCameras() ([]model.Camera, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, errors.New("no document loaded")
	}

	cameras := make([]model.Camera, len(doc.Cameras))
	for i := range doc.Cameras {
		cam := &doc.Cameras[i]
		out := model.Camera{Name: cam.Name}

		switch cam.Type {
		case gltfCameraTypePerspective:
			if cam.Perspective == nil {
				return nil, fmt.Errorf("camera %d: perspective camera has no perspective block", i)
			}
			out.Projection = model.ProjectionPerspective
			out.YFov = cam.Perspective.YFov
			out.ZNear = cam.Perspective.ZNear
			if cam.Perspective.AspectRatio != nil {
				out.AspectRatio = *cam.Perspective.AspectRatio
			}
			// infinite projection when zfar is omitted
			out.ZFar = float32(math.Inf(1))
			if cam.Perspective.ZFar != nil {
				out.ZFar = *cam.Perspective.ZFar
			}
		case gltfCameraTypeOrthographic:
			if cam.Orthographic == nil {
				return nil, fmt.Errorf("camera %d: orthographic camera has no orthographic block", i)
			}
			out.Projection = model.ProjectionOrthographic
			out.XMag = cam.Orthographic.XMag
			out.YMag = cam.Orthographic.YMag
			out.ZNear = cam.Orthographic.ZNear
			out.ZFar = cam.Orthographic.ZFar
		default:
			return nil, fmt.Errorf("camera %d: unknown camera type %q", i, cam.Type)
		}
		cameras[i] = out
	}

	return cameras, nil
}

func (e *gltfWorldExtractorImpl) ExtractAllLights() ([]model.Light, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, errors.New("no document loaded")
	}
	if doc.Extensions == nil || doc.Extensions.LightsPunctual == nil {
		return nil, nil
	}

	src := doc.Extensions.LightsPunctual.Lights
	lights := make([]model.Light, len(src))
	for i := range src {
		l := &src[i]
		out := model.Light{
			Name:      l.Name,
			Color:     [3]float32{1, 1, 1},
			Intensity: 1,
			OuterCone: math.Pi / 4,
		}

		switch l.Type {
		case gltfLightTypeDirectional:
			out.Type = model.LightDirectional
		case gltfLightTypePoint:
			out.Type = model.LightPoint
		case gltfLightTypeSpot:
			out.Type = model.LightSpot
			if l.Spot != nil {
				if l.Spot.InnerConeAngle != nil {
					out.InnerCone = *l.Spot.InnerConeAngle
				}
				if l.Spot.OuterConeAngle != nil {
					out.OuterCone = *l.Spot.OuterConeAngle
				}
			}
		default:
			return nil, fmt.Errorf("light %d: unknown light type %q", i, l.Type)
		}

		if l.Color != nil {
			out.Color = *l.Color
		}
		if l.Intensity != nil {
			out.Intensity = *l.Intensity
		}
		if l.Range != nil {
			out.Range = *l.Range
		}
		lights[i] = out
	}

	return lights, nil
}
