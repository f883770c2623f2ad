package model

// Feature is one entry of a feature-list prop.
type Feature struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Emoji       string `json:"emoji,omitempty" yaml:"emoji,omitempty"`
	Color       string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Stat is one entry of a stat-list prop.
type Stat struct {
	Label  string  `json:"label" yaml:"label"`
	Value  float64 `json:"value" yaml:"value"`
	Suffix string  `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	Color  string  `json:"color,omitempty" yaml:"color,omitempty"`
}

// SceneProps holds every prop value a template can require. The set of
// prop names is closed, so the materializer can match exhaustively instead
// of probing an open map. Planner JSON unmarshals directly into it.
type SceneProps struct {
	Title       string    `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle    string    `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	MainText    string    `json:"mainText,omitempty" yaml:"mainText,omitempty"`
	ButtonText  string    `json:"buttonText,omitempty" yaml:"buttonText,omitempty"`
	BrandName   string    `json:"brandName,omitempty" yaml:"brandName,omitempty"`
	ProductName string    `json:"productName,omitempty" yaml:"productName,omitempty"`
	Features    []Feature `json:"features,omitempty" yaml:"features,omitempty"`
	Stats       []Stat    `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// PropSet reports whether the named prop carries a value.
func (p *SceneProps) PropSet(name string) bool {
	switch name {
	case "title":
		return p.Title != ""
	case "subtitle":
		return p.Subtitle != ""
	case "mainText":
		return p.MainText != ""
	case "buttonText":
		return p.ButtonText != ""
	case "brandName":
		return p.BrandName != ""
	case "productName":
		return p.ProductName != ""
	case "features":
		return len(p.Features) > 0
	case "stats":
		return len(p.Stats) > 0
	}
	return false
}

// TemplateScene is one pre-validation candidate scene.
type TemplateScene struct {
	TemplateID       string     `json:"templateId"`
	DurationInFrames int        `json:"durationInFrames"`
	Props            SceneProps `json:"props"`
}

// TemplateTransition is a timed blend between two adjacent scenes.
type TemplateTransition struct {
	Type             TransitionType `json:"type"`
	DurationInFrames int            `json:"durationInFrames"`
}

// AudioEffect is a one-shot sound cue on the final timeline.
type AudioEffect struct {
	Src          string  `json:"src"`
	TriggerFrame int     `json:"triggerFrame"`
	Volume       float64 `json:"volume"`
}

// TemplateAudio is the audio track of a candidate structure.
type TemplateAudio struct {
	Background string        `json:"background"`
	Effects    []AudioEffect `json:"effects"`
}

// TemplateVideoStructure is the full candidate structure produced by the
// planner and consumed once to materialize and assemble a composition.
// After validation, scene durations sum to at most the frame budget and
// every referenced id exists in its catalog.
type TemplateVideoStructure struct {
	Scenes      []TemplateScene      `json:"scenes"`
	Transitions []TemplateTransition `json:"transitions"`
	Audio       TemplateAudio        `json:"audio"`
}

// TotalFrames returns the cumulative duration of all scenes.
func (s *TemplateVideoStructure) TotalFrames() int {
	total := 0
	for _, scene := range s.Scenes {
		total += scene.DurationInFrames
	}
	return total
}
