package service

import (
	"github.com/promoforge/api/internal/config"
	"github.com/promoforge/api/internal/model"
)

const (
	backgroundVolume = 0.15
	effectVolume     = 0.4
)

// AssembleComposition combines materialized scenes with the structure's
// transition and audio information into the final composition description:
// scenes placed back-to-back with absolute offsets, one transition per
// adjacent pair, a background cue spanning the timeline, and an effect cue
// leading into every transition boundary.
func AssembleComposition(video config.VideoConfig, structure *model.TemplateVideoStructure, sources []model.SceneSource) *model.Composition {
	comp := &model.Composition{
		FPS: video.FPS,
	}

	offset := 0
	for i, scene := range structure.Scenes {
		if i >= len(sources) {
			break
		}
		comp.Scenes = append(comp.Scenes, model.CompositionScene{
			Source:           sources[i],
			StartFrame:       offset,
			DurationInFrames: scene.DurationInFrames,
		})
		offset += scene.DurationInFrames
	}
	comp.DurationInFrames = offset

	// Background music runs the whole timeline.
	comp.Audio = append(comp.Audio, model.AudioCue{
		Src:              structure.Audio.Background,
		StartFrame:       0,
		DurationInFrames: comp.DurationInFrames,
		Volume:           backgroundVolume,
	})

	// One transition per scene boundary, with an effect cue starting
	// slightly before the cut so it is audible leading into the blend.
	boundary := 0
	for i := 0; i+1 < len(comp.Scenes); i++ {
		boundary += comp.Scenes[i].DurationInFrames
		if i >= len(structure.Transitions) {
			break
		}
		tr := structure.Transitions[i]

		comp.Transitions = append(comp.Transitions, model.CompositionTransition{
			Type:             tr.Type,
			AtFrame:          boundary,
			DurationInFrames: tr.DurationInFrames,
		})

		start := boundary - video.EffectLead
		if start < 0 {
			start = 0
		}
		comp.Audio = append(comp.Audio, model.AudioCue{
			Src:              effectForTransition(tr.Type),
			StartFrame:       start,
			DurationInFrames: tr.DurationInFrames + video.EffectLead,
			Volume:           effectVolume,
		})
	}

	return comp
}

func effectForTransition(t model.TransitionType) string {
	if t == model.TransitionSlide {
		return "transition-swoosh.mp3"
	}
	return "impact-whoosh.mp3"
}
