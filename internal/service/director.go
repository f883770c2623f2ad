package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/promoforge/api/internal/catalog"
	"github.com/promoforge/api/internal/client"
	"github.com/promoforge/api/internal/config"
	"github.com/promoforge/api/internal/model"
)

// Planner labels for GenerateResponse
const (
	PlannerAI       = "ai"
	PlannerFallback = "fallback"
)

// DirectorService plans a full video structure for a prompt. The primary
// path is one LLM completion with the catalogs as context; any failure
// (transport, malformed output, unconfigured client) falls back to the
// deterministic selector pipeline. PlanVideo never returns an error.
type DirectorService struct {
	llm         client.Completer
	catalog     *catalog.Catalog
	selector    *TemplateSelector
	synthesizer *PropSynthesizer
	video       config.VideoConfig
}

func NewDirectorService(llm client.Completer, cat *catalog.Catalog, synth *PropSynthesizer, video config.VideoConfig) *DirectorService {
	return &DirectorService{
		llm:         llm,
		catalog:     cat,
		selector:    NewTemplateSelector(cat),
		synthesizer: synth,
		video:       video,
	}
}

// PlanVideo returns a candidate structure and the planner label that
// produced it. The structure is not yet validated.
func (d *DirectorService) PlanVideo(ctx context.Context, prompt string, targetCount int) (*model.TemplateVideoStructure, string) {
	if targetCount <= 0 {
		targetCount = d.video.TargetScenes
	}

	if d.llm == nil || !d.llm.IsConfigured() {
		return d.fallbackStructure(ctx, prompt, targetCount), PlannerFallback
	}

	response, err := d.llm.Complete(ctx, d.buildSystemPrompt(), d.buildUserPrompt(prompt, targetCount))
	if err != nil {
		log.Printf("Structure planning call failed, using fallback: %v", err)
		return d.fallbackStructure(ctx, prompt, targetCount), PlannerFallback
	}

	structure, err := parseStructureResponse(response)
	if err != nil {
		log.Printf("Structure planning returned unusable JSON, using fallback: %v", err)
		return d.fallbackStructure(ctx, prompt, targetCount), PlannerFallback
	}

	return structure, PlannerAI
}

func (d *DirectorService) buildSystemPrompt() string {
	templates, _ := json.Marshal(d.catalog.Summaries())
	transitions, _ := json.Marshal(d.catalog.Transitions)
	audio, _ := json.Marshal(d.catalog.Audio)

	return fmt.Sprintf(`You are an AI video director who selects from pre-built scene templates to create marketing videos. You MUST only use the provided templates, transitions, and audio.

CRITICAL: Return ONLY valid JSON. No explanations. No markdown.

TEMPLATE SELECTION STRATEGY:
- Choose diverse visual styles for variety
- Mix complexity levels for pacing
- Match template categories to content flow: hero -> features/product -> stats -> cta
- Consider the prompt's tone (tech = futuristic, luxury = modern, nature = organic)

Available Scene Templates:
%s

Available Transitions:
%s

Available Audio:
%s

Create a video structure:
- Total duration: %d frames (%d seconds at %d fps)
- 4-6 scenes for dynamic pacing
- Each scene 120-200 frames
- Use rich, contextual prop values that match the prompt
- Create visual narrative flow (hook -> showcase -> proof -> action)

JSON Format:
{
  "scenes": [
    {
      "templateId": "hero-animated-title",
      "durationInFrames": 150,
      "props": {
        "title": "Your App Name",
        "subtitle": "Tagline here"
      }
    }
  ],
  "transitions": [
    {
      "type": "fade",
      "durationInFrames": 15
    }
  ],
  "audio": {
    "background": "modern-electronic.mp3",
    "effects": [
      {
        "src": "impact-whoosh.mp3",
        "triggerFrame": 30,
        "volume": 0.5
      }
    ]
  }
}`,
		string(templates),
		string(transitions),
		string(audio),
		d.video.DurationBudget,
		d.video.DurationBudget/d.video.FPS,
		d.video.FPS,
	)
}

func (d *DirectorService) buildUserPrompt(prompt string, targetCount int) string {
	analysis := AnalyzeContent(prompt)
	recommended := d.selector.SelectOptimalTemplates(analysis, targetCount)

	flow := make([]string, 0, len(analysis.SuggestedFlow))
	for _, c := range analysis.SuggestedFlow {
		flow = append(flow, string(c))
	}

	return fmt.Sprintf(`Create a marketing video for: %q.

SMART ANALYSIS:
- Industry: %s
- Tone: %s
- Visual Style: %s
- Complexity: %s
- Recommended Templates: %s
- Suggested Flow: %s

SELECTION CRITERIA:
1. Choose templates that create visual variety and engagement
2. Match visual style to content tone
3. Create narrative flow: hook -> showcase -> credibility -> action
4. Use rich prop values that tell a compelling story`,
		prompt,
		analysis.Industry,
		analysis.Tone,
		analysis.VisualStyle,
		analysis.Complexity,
		strings.Join(recommended, ", "),
		strings.Join(flow, " -> "),
	)
}

// parseStructureResponse tolerates conversational wrapping around the
// JSON object: markdown fences are stripped, then everything outside the
// first '{' and last '}' is discarded.
func parseStructureResponse(response string) (*model.TemplateVideoStructure, error) {
	cleaned := extractJSON(response)

	var structure model.TemplateVideoStructure
	if err := json.Unmarshal([]byte(cleaned), &structure); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}
	if len(structure.Scenes) == 0 {
		return nil, fmt.Errorf("no scenes in response")
	}
	return &structure, nil
}

func extractJSON(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start != -1 && end != -1 && end > start {
		return s[start : end+1]
	}
	return strings.TrimSpace(s)
}

// fallbackStructure builds an equivalent structure deterministically:
// selector-chosen templates, synthesized props, fixed duration and
// transition rules, tone-keyed background audio.
func (d *DirectorService) fallbackStructure(ctx context.Context, prompt string, targetCount int) *model.TemplateVideoStructure {
	analysis := AnalyzeContent(prompt)
	templateIDs := d.selector.SelectOptimalTemplates(analysis, targetCount)

	scenes := make([]model.TemplateScene, 0, len(templateIDs))
	for i, templateID := range templateIDs {
		// Last scene holds 200 frames; the rest alternate 160/200.
		duration := 160 + (i%2)*40
		if i == len(templateIDs)-1 {
			duration = 200
		}
		scenes = append(scenes, model.TemplateScene{
			TemplateID:       templateID,
			DurationInFrames: duration,
			Props:            d.synthesizer.GenerateContextualProps(ctx, prompt, templateID, analysis),
		})
	}

	rotation := []model.TransitionType{model.TransitionWipe, model.TransitionFade, model.TransitionSlide}
	var transitions []model.TemplateTransition
	for i := 0; i+1 < len(scenes); i++ {
		transitions = append(transitions, model.TemplateTransition{
			Type:             rotation[i%len(rotation)],
			DurationInFrames: 15 + (i%2)*5,
		})
	}

	background := "motivational.mp3"
	switch analysis.Tone {
	case model.ToneTech:
		background = "modern-electronic.mp3"
	case model.ToneLuxury:
		background = "corporate-upbeat.mp3"
	}

	return &model.TemplateVideoStructure{
		Scenes:      scenes,
		Transitions: transitions,
		Audio: model.TemplateAudio{
			Background: background,
			Effects: []model.AudioEffect{
				{Src: "impact-whoosh.mp3", TriggerFrame: 30, Volume: 0.5},
				{Src: "transition-swoosh.mp3", TriggerFrame: 190, Volume: 0.4},
				{Src: "transition-swoosh.mp3", TriggerFrame: 350, Volume: 0.4},
				{Src: "final-impact.mp3", TriggerFrame: 800, Volume: 0.6},
			},
		},
	}
}
