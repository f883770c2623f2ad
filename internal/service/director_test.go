package service

import (
	"context"
	"errors"
	"testing"

	"github.com/promoforge/api/internal/config"
	"github.com/promoforge/api/internal/model"
)

// fakeCompleter implements client.Completer for tests.
type fakeCompleter struct {
	response   string
	err        error
	configured bool
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	return f.response, f.err
}

func (f *fakeCompleter) IsConfigured() bool { return f.configured }

func testVideoConfig() config.VideoConfig {
	return config.VideoConfig{FPS: 30, DurationBudget: 900, TargetScenes: 5, EffectLead: 30}
}

func newTestDirector(t *testing.T, llm *fakeCompleter) *DirectorService {
	t.Helper()
	cat := testCatalog(t)
	synth := NewPropSynthesizer(cat, nil)
	return NewDirectorService(llm, cat, synth, testVideoConfig())
}

func TestPlanVideo_UnconfiguredUsesFallback(t *testing.T) {
	d := newTestDirector(t, &fakeCompleter{configured: false})

	structure, planner := d.PlanVideo(context.Background(), "Promote a fitness app", 0)

	if planner != PlannerFallback {
		t.Errorf("expected fallback planner, got %s", planner)
	}
	if len(structure.Scenes) == 0 {
		t.Fatal("expected fallback scenes")
	}
}

func TestPlanVideo_CallErrorUsesFallback(t *testing.T) {
	d := newTestDirector(t, &fakeCompleter{configured: true, err: errors.New("rate limited")})

	structure, planner := d.PlanVideo(context.Background(), "Promote a fitness app", 4)

	if planner != PlannerFallback {
		t.Errorf("expected fallback planner after call error, got %s", planner)
	}
	if len(structure.Scenes) != 4 {
		t.Errorf("expected 4 fallback scenes, got %d", len(structure.Scenes))
	}
}

func TestPlanVideo_UnusableJSONUsesFallback(t *testing.T) {
	d := newTestDirector(t, &fakeCompleter{configured: true, response: "I cannot help with that."})

	_, planner := d.PlanVideo(context.Background(), "Promote a fitness app", 0)

	if planner != PlannerFallback {
		t.Errorf("expected fallback planner on unusable output, got %s", planner)
	}
}

func TestPlanVideo_ParsesFencedResponse(t *testing.T) {
	response := "Sure! Here's your JSON:\n```json\n" + `{
		"scenes": [
			{"templateId": "hero-animated-title", "durationInFrames": 180, "props": {"title": "Go"}},
			{"templateId": "cta-neon-pulse", "durationInFrames": 200, "props": {"mainText": "Now", "buttonText": "Start"}}
		],
		"transitions": [{"type": "fade", "durationInFrames": 20}],
		"audio": {"background": "motivational.mp3", "effects": []}
	}` + "\n```\nLet me know if you need changes."

	d := newTestDirector(t, &fakeCompleter{configured: true, response: response})

	structure, planner := d.PlanVideo(context.Background(), "Promote a fitness app", 0)

	if planner != PlannerAI {
		t.Fatalf("expected ai planner, got %s", planner)
	}
	if len(structure.Scenes) != 2 {
		t.Fatalf("expected 2 scenes, got %d", len(structure.Scenes))
	}
	if structure.Scenes[0].TemplateID != "hero-animated-title" {
		t.Errorf("unexpected first scene template %s", structure.Scenes[0].TemplateID)
	}
	if structure.Scenes[0].Props.Title != "Go" {
		t.Errorf("expected scene props to survive parsing, got %+v", structure.Scenes[0].Props)
	}
	if structure.Audio.Background != "motivational.mp3" {
		t.Errorf("unexpected background %s", structure.Audio.Background)
	}
}

func TestFallbackStructure_DurationRule(t *testing.T) {
	d := newTestDirector(t, &fakeCompleter{})

	structure := d.fallbackStructure(context.Background(), "Launch a new productivity app", 5)

	if len(structure.Scenes) != 5 {
		t.Fatalf("expected 5 scenes, got %d", len(structure.Scenes))
	}

	// Non-final scenes alternate 160/200; the final scene holds 200.
	for i, scene := range structure.Scenes {
		want := 160 + (i%2)*40
		if i == len(structure.Scenes)-1 {
			want = 200
		}
		if scene.DurationInFrames != want {
			t.Errorf("scene %d: expected %d frames, got %d", i, want, scene.DurationInFrames)
		}
		if !scene.Props.PropSet("title") && len(scene.Props.Features) == 0 && len(scene.Props.Stats) == 0 && scene.Props.MainText == "" && scene.Props.BrandName == "" && scene.Props.ProductName == "" {
			t.Errorf("scene %d: expected synthesized props", i)
		}
	}
}

func TestFallbackStructure_TransitionRotation(t *testing.T) {
	d := newTestDirector(t, &fakeCompleter{})

	structure := d.fallbackStructure(context.Background(), "Launch a new productivity app", 4)

	if len(structure.Transitions) != 3 {
		t.Fatalf("expected 3 transitions for 4 scenes, got %d", len(structure.Transitions))
	}

	wantTypes := []model.TransitionType{model.TransitionWipe, model.TransitionFade, model.TransitionSlide}
	for i, tr := range structure.Transitions {
		if tr.Type != wantTypes[i] {
			t.Errorf("transition %d: expected %s, got %s", i, wantTypes[i], tr.Type)
		}
		want := 15 + (i%2)*5
		if tr.DurationInFrames != want {
			t.Errorf("transition %d: expected %d frames, got %d", i, want, tr.DurationInFrames)
		}
	}
}

func TestFallbackStructure_ToneKeyedAudio(t *testing.T) {
	d := newTestDirector(t, &fakeCompleter{})

	tests := []struct {
		prompt     string
		background string
	}{
		{"AI developer tools with futuristic design", "modern-electronic.mp3"},
		{"Luxury watch collection launch", "corporate-upbeat.mp3"},
		{"Community fundraiser announcement", "motivational.mp3"},
	}

	for _, tt := range tests {
		structure := d.fallbackStructure(context.Background(), tt.prompt, 3)
		if structure.Audio.Background != tt.background {
			t.Errorf("%q: expected background %s, got %s", tt.prompt, tt.background, structure.Audio.Background)
		}
		if len(structure.Audio.Effects) == 0 {
			t.Errorf("%q: expected effect cues", tt.prompt)
		}
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a": 1}`, `{"a": 1}`},
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"noise before {\"a\": 1} noise after", `{"a": 1}`},
		{"no json at all", "no json at all"},
	}

	for _, tt := range tests {
		if got := extractJSON(tt.in); got != tt.want {
			t.Errorf("extractJSON(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
