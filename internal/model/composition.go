package model

// SceneSource is one materialized scene: the template blueprint with prop
// values bound into its slots. List props stay structured data; the
// renderer receives real arrays, never interpolated strings.
type SceneSource struct {
	Name       string       `json:"name"` // Scene1, Scene2, ...
	TemplateID string       `json:"templateId"`
	Component  string       `json:"component"`
	Background string       `json:"background"`
	Elements   []BoundSlot  `json:"elements"`
	Props      SceneProps   `json:"props"`
}

// BoundSlot is a blueprint slot with its resolved prop value.
type BoundSlot struct {
	Slot      string      `json:"slot"`
	Kind      string      `json:"kind"`
	Animation string      `json:"animation"`
	Value     interface{} `json:"value"`
}

// CompositionScene is a materialized scene placed on the absolute timeline.
type CompositionScene struct {
	Source           SceneSource `json:"source"`
	StartFrame       int         `json:"startFrame"`
	DurationInFrames int         `json:"durationInFrames"`
}

// CompositionTransition is a transition placed at a scene boundary.
type CompositionTransition struct {
	Type             TransitionType `json:"type"`
	AtFrame          int            `json:"atFrame"`
	DurationInFrames int            `json:"durationInFrames"`
}

// AudioCue is an audio placement on the absolute timeline. A zero
// DurationInFrames means the cue plays to its natural end.
type AudioCue struct {
	Src              string  `json:"src"`
	StartFrame       int     `json:"startFrame"`
	DurationInFrames int     `json:"durationInFrames,omitempty"`
	Volume           float64 `json:"volume"`
}

// Composition is the final assembled description handed to the rendering
// engine: scenes with absolute offsets, boundary transitions, and the
// layered audio cues.
type Composition struct {
	FPS              int                     `json:"fps"`
	DurationInFrames int                     `json:"durationInFrames"`
	Scenes           []CompositionScene      `json:"scenes"`
	Transitions      []CompositionTransition `json:"transitions"`
	Audio            []AudioCue              `json:"audio"`
}
