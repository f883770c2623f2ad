package service

import (
	"testing"

	"github.com/promoforge/api/internal/model"
)

func validStructure() *model.TemplateVideoStructure {
	return &model.TemplateVideoStructure{
		Scenes: []model.TemplateScene{
			{TemplateID: "hero-animated-title", DurationInFrames: 160},
			{TemplateID: "features-morphing-cards", DurationInFrames: 200},
			{TemplateID: "cta-neon-pulse", DurationInFrames: 200},
		},
		Transitions: []model.TemplateTransition{
			{Type: model.TransitionWipe, DurationInFrames: 15},
			{Type: model.TransitionFade, DurationInFrames: 20},
		},
		Audio: model.TemplateAudio{
			Background: "modern-electronic.mp3",
			Effects: []model.AudioEffect{
				{Src: "impact-whoosh.mp3", TriggerFrame: 30, Volume: 0.5},
			},
		},
	}
}

func TestValidate_ValidStructureUnchanged(t *testing.T) {
	cat := testCatalog(t)
	v := NewStructureValidator(cat, 900)

	structure := v.Validate(validStructure())

	if len(structure.Scenes) != 3 {
		t.Errorf("expected 3 scenes, got %d", len(structure.Scenes))
	}
	if len(structure.Transitions) != 2 {
		t.Errorf("expected 2 transitions, got %d", len(structure.Transitions))
	}
	if structure.Audio.Background != "modern-electronic.mp3" {
		t.Errorf("background changed to %s", structure.Audio.Background)
	}
	if len(structure.Audio.Effects) != 1 {
		t.Errorf("expected 1 effect, got %d", len(structure.Audio.Effects))
	}
}

func TestValidate_DropsUnknownTemplates(t *testing.T) {
	cat := testCatalog(t)
	v := NewStructureValidator(cat, 900)

	structure := validStructure()
	structure.Scenes[1].TemplateID = "totally-made-up"
	structure = v.Validate(structure)

	if len(structure.Scenes) != 2 {
		t.Fatalf("expected 2 scenes after drop, got %d", len(structure.Scenes))
	}
	for _, scene := range structure.Scenes {
		if cat.ByID(scene.TemplateID) == nil {
			t.Errorf("unknown template %q survived validation", scene.TemplateID)
		}
	}

	// Transition count must shrink to the new boundary count
	if len(structure.Transitions) > len(structure.Scenes)-1 {
		t.Errorf("got %d transitions for %d scenes", len(structure.Transitions), len(structure.Scenes))
	}
}

func TestValidate_AllScenesUnknownDropsTransitions(t *testing.T) {
	cat := testCatalog(t)
	v := NewStructureValidator(cat, 900)

	structure := validStructure()
	for i := range structure.Scenes {
		structure.Scenes[i].TemplateID = "totally-made-up"
	}
	structure = v.Validate(structure)

	if len(structure.Scenes) != 0 {
		t.Fatalf("expected 0 scenes, got %d", len(structure.Scenes))
	}
	if len(structure.Transitions) != 0 {
		t.Errorf("expected 0 transitions with no scene boundaries, got %d", len(structure.Transitions))
	}
}

func TestValidate_DropsUnknownTransitionsAndEffects(t *testing.T) {
	cat := testCatalog(t)
	v := NewStructureValidator(cat, 900)

	structure := validStructure()
	structure.Transitions[0].Type = model.TransitionType("zoom-blur")
	structure.Audio.Effects = append(structure.Audio.Effects, model.AudioEffect{Src: "nonexistent.mp3", TriggerFrame: 100})
	structure = v.Validate(structure)

	if len(structure.Transitions) != 1 {
		t.Errorf("expected 1 transition after drop, got %d", len(structure.Transitions))
	}
	if len(structure.Audio.Effects) != 1 {
		t.Errorf("expected 1 effect after drop, got %d", len(structure.Audio.Effects))
	}
}

func TestValidate_ResetsUnknownBackground(t *testing.T) {
	cat := testCatalog(t)
	v := NewStructureValidator(cat, 900)

	structure := validStructure()
	structure.Audio.Background = "not-in-library.mp3"
	structure = v.Validate(structure)

	if structure.Audio.Background != cat.Audio.Background[0] {
		t.Errorf("expected fallback background %s, got %s", cat.Audio.Background[0], structure.Audio.Background)
	}
}

func TestValidate_TruncatesToBudget(t *testing.T) {
	cat := testCatalog(t)
	v := NewStructureValidator(cat, 900)

	structure := &model.TemplateVideoStructure{
		Scenes: []model.TemplateScene{
			{TemplateID: "hero-animated-title", DurationInFrames: 200},
			{TemplateID: "features-morphing-cards", DurationInFrames: 200},
			{TemplateID: "product-showcase-3d", DurationInFrames: 200},
			{TemplateID: "stats-chart-animated", DurationInFrames: 200},
			{TemplateID: "cta-neon-pulse", DurationInFrames: 200},
			{TemplateID: "logo-reveal", DurationInFrames: 200},
		},
		Audio: model.TemplateAudio{Background: "motivational.mp3"},
	}
	structure = v.Validate(structure)

	want := []int{200, 200, 200, 200, 100, 0}
	if len(structure.Scenes) != len(want) {
		t.Fatalf("expected %d scenes, got %d", len(want), len(structure.Scenes))
	}
	total := 0
	for i, scene := range structure.Scenes {
		if scene.DurationInFrames != want[i] {
			t.Errorf("scene %d: expected %d frames, got %d", i, want[i], scene.DurationInFrames)
		}
		total += scene.DurationInFrames
	}
	if total != 900 {
		t.Errorf("expected total 900 frames, got %d", total)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	cat := testCatalog(t)
	v := NewStructureValidator(cat, 900)

	structure := validStructure()
	structure.Scenes[0].TemplateID = "bogus"
	structure.Audio.Background = "bogus.mp3"

	once := v.Validate(structure)
	sceneCount := len(once.Scenes)
	background := once.Audio.Background

	twice := v.Validate(once)
	if len(twice.Scenes) != sceneCount {
		t.Errorf("second pass changed scene count: %d -> %d", sceneCount, len(twice.Scenes))
	}
	if twice.Audio.Background != background {
		t.Errorf("second pass changed background: %s -> %s", background, twice.Audio.Background)
	}
}
