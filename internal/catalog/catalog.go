// Package catalog holds the static scene-template, transition, and audio
// libraries. The catalog is loaded once at process start and shared
// read-only between requests; services receive it as injected
// configuration rather than reaching for package globals.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/promoforge/api/internal/model"
)

//go:embed catalog.yaml
var catalogYAML []byte

// AudioLibrary lists the audio asset keys known to the renderer.
type AudioLibrary struct {
	Background []string `yaml:"background"`
	Effects    []string `yaml:"effects"`
}

// Catalog is the immutable registry of templates, transitions, and audio.
type Catalog struct {
	Templates   []model.SceneTemplate
	Transitions []model.TransitionType
	Audio       AudioLibrary

	byID map[string]*model.SceneTemplate
}

type catalogDoc struct {
	Templates   []model.SceneTemplate  `yaml:"templates"`
	Transitions []model.TransitionType `yaml:"transitions"`
	Audio       AudioLibrary           `yaml:"audio"`
}

// Load parses the embedded catalog document.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

// Parse builds a catalog from a YAML document. Exposed so tests can run
// against alternate catalogs.
func Parse(data []byte) (*Catalog, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(doc.Templates) == 0 {
		return nil, fmt.Errorf("catalog has no templates")
	}
	if len(doc.Audio.Background) == 0 {
		return nil, fmt.Errorf("catalog has no background audio")
	}

	c := &Catalog{
		Templates:   doc.Templates,
		Transitions: doc.Transitions,
		Audio:       doc.Audio,
		byID:        make(map[string]*model.SceneTemplate, len(doc.Templates)),
	}
	for i := range c.Templates {
		t := &c.Templates[i]
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		c.byID[t.ID] = t
	}
	return c, nil
}

// ByID returns the template with the given id, or nil.
func (c *Catalog) ByID(id string) *model.SceneTemplate {
	return c.byID[id]
}

// ByCategory returns all templates in a category, in catalog order.
func (c *Catalog) ByCategory(cat model.Category) []*model.SceneTemplate {
	var out []*model.SceneTemplate
	for i := range c.Templates {
		if c.Templates[i].Category == cat {
			out = append(out, &c.Templates[i])
		}
	}
	return out
}

// ByStyle returns all templates with the given visual style.
func (c *Catalog) ByStyle(style model.VisualStyle) []*model.SceneTemplate {
	var out []*model.SceneTemplate
	for i := range c.Templates {
		if c.Templates[i].VisualStyle == style {
			out = append(out, &c.Templates[i])
		}
	}
	return out
}

// ByComplexity returns all templates with the given complexity tier.
func (c *Catalog) ByComplexity(cx model.Complexity) []*model.SceneTemplate {
	var out []*model.SceneTemplate
	for i := range c.Templates {
		if c.Templates[i].Complexity == cx {
			out = append(out, &c.Templates[i])
		}
	}
	return out
}

// Summaries projects every template to its listing shape.
func (c *Catalog) Summaries() []model.TemplateSummary {
	out := make([]model.TemplateSummary, 0, len(c.Templates))
	for i := range c.Templates {
		out = append(out, c.Templates[i].Summary())
	}
	return out
}

// HasTransition reports whether the transition type is in the library.
func (c *Catalog) HasTransition(t model.TransitionType) bool {
	for _, known := range c.Transitions {
		if known == t {
			return true
		}
	}
	return false
}

// HasBackground reports whether the background track key is known.
func (c *Catalog) HasBackground(key string) bool {
	for _, known := range c.Audio.Background {
		if known == key {
			return true
		}
	}
	return false
}

// HasEffect reports whether the effect key is known.
func (c *Catalog) HasEffect(key string) bool {
	for _, known := range c.Audio.Effects {
		if known == key {
			return true
		}
	}
	return false
}

// DefaultProps returns the canned fallback values used when a scene is
// missing one of its template's required props.
func DefaultProps() model.SceneProps {
	return model.SceneProps{
		Title:       "Your Amazing Title",
		Subtitle:    "Discover Something Incredible",
		MainText:    "Ready to Get Started?",
		ButtonText:  "Start Now",
		BrandName:   "Your Brand",
		ProductName: "Amazing Product",
		Features: []model.Feature{
			{Title: "Innovation", Description: "Cutting-edge technology", Emoji: "🚀", Color: "#FF6B6B"},
			{Title: "Quality", Description: "Premium experience", Emoji: "⭐", Color: "#4ECDC4"},
			{Title: "Speed", Description: "Lightning fast", Emoji: "⚡", Color: "#FFE66D"},
		},
		Stats: []model.Stat{
			{Label: "Users", Value: 50000, Suffix: "+", Color: "#FF6B6B"},
			{Label: "Downloads", Value: 100000, Suffix: "+", Color: "#4ECDC4"},
			{Label: "Rating", Value: 4.9, Suffix: "/5", Color: "#FFE66D"},
		},
	}
}
