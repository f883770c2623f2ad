package service

import (
	"github.com/promoforge/api/internal/catalog"
	"github.com/promoforge/api/internal/model"
)

// StructureValidator enforces catalog membership and the hard duration
// budget over candidate structures. Validation never fails; it projects
// any input onto a structure the renderer can consume.
type StructureValidator struct {
	catalog *catalog.Catalog
	budget  int // frames
}

func NewStructureValidator(cat *catalog.Catalog, budgetFrames int) *StructureValidator {
	return &StructureValidator{catalog: cat, budget: budgetFrames}
}

// Validate mutates the structure in place and returns it. Applying it
// twice yields the same result as applying it once.
func (v *StructureValidator) Validate(structure *model.TemplateVideoStructure) *model.TemplateVideoStructure {
	// Unknown template ids are dropped outright.
	scenes := structure.Scenes[:0]
	for _, scene := range structure.Scenes {
		if v.catalog.ByID(scene.TemplateID) != nil {
			scenes = append(scenes, scene)
		}
	}
	structure.Scenes = scenes

	// Unknown transition types are dropped.
	transitions := structure.Transitions[:0]
	for _, tr := range structure.Transitions {
		if v.catalog.HasTransition(tr.Type) {
			transitions = append(transitions, tr)
		}
	}
	// Never more transitions than scene boundaries.
	maxTransitions := len(structure.Scenes) - 1
	if maxTransitions < 0 {
		maxTransitions = 0
	}
	if len(transitions) > maxTransitions {
		transitions = transitions[:maxTransitions]
	}
	structure.Transitions = transitions

	// Unrecognized background falls back to the library's first entry.
	if !v.catalog.HasBackground(structure.Audio.Background) {
		structure.Audio.Background = v.catalog.Audio.Background[0]
	}

	effects := structure.Audio.Effects[:0]
	for _, effect := range structure.Audio.Effects {
		if v.catalog.HasEffect(effect.Src) {
			effects = append(effects, effect)
		}
	}
	structure.Audio.Effects = effects

	// Hard cumulative cap: the scene crossing the budget is truncated to
	// the remainder and every later scene collapses to zero. Trailing
	// zero-duration scenes stay in the list so scene indexes are stable.
	currentFrame := 0
	for i := range structure.Scenes {
		if currentFrame+structure.Scenes[i].DurationInFrames > v.budget {
			structure.Scenes[i].DurationInFrames = v.budget - currentFrame
		}
		currentFrame += structure.Scenes[i].DurationInFrames
	}

	return structure
}
