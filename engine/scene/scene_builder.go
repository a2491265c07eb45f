package scene

import (
	"github.com/Carmen-Shannon/oxy-refract/engine/game_object"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithObjects registers objects whose mesh and material are already on the GPU.
// Names must be unique; later duplicates are ignored.
//
// Parameters:
//   - objects: the objects to add, in draw order
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			if _, exists := s.registry[obj.Name()]; exists {
				continue
			}
			s.objects = append(s.objects, obj)
			s.registry[obj.Name()] = obj
		}
	}
}
