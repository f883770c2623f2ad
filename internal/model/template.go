package model

// SceneTemplate describes one pre-built scene blueprint in the catalog.
// Templates are immutable after catalog load; the catalog is the single
// source of truth for what templates exist.
type SceneTemplate struct {
	ID            string      `json:"id" yaml:"id"`
	Name          string      `json:"name" yaml:"name"`
	Description   string      `json:"description" yaml:"description"`
	Category      Category    `json:"category" yaml:"category"`
	Complexity    Complexity  `json:"complexity" yaml:"complexity"`
	VisualStyle   VisualStyle `json:"visualStyle" yaml:"visualStyle"`
	RequiredProps []string    `json:"requiredProps" yaml:"requiredProps"`
	Blueprint     Blueprint   `json:"blueprint" yaml:"blueprint"`
}

// Blueprint is the data-driven render spec for a template: a named scene
// component plus the slots the renderer binds prop values into. The
// renderer owns the visual semantics; this service only guarantees every
// slot it declares receives a correctly shaped value.
type Blueprint struct {
	Component  string          `json:"component" yaml:"component"`
	Background string          `json:"background" yaml:"background"`
	Elements   []BlueprintSlot `json:"elements" yaml:"elements"`
}

// BlueprintSlot is one parameterized element of a blueprint.
type BlueprintSlot struct {
	Slot      string `json:"slot" yaml:"slot"`           // prop name bound into this element
	Kind      string `json:"kind" yaml:"kind"`           // text | list | counter | button | shape
	Animation string `json:"animation" yaml:"animation"` // renderer-defined effect name
}

// HasProp reports whether name is one of the template's required props.
func (t *SceneTemplate) HasProp(name string) bool {
	for _, p := range t.RequiredProps {
		if p == name {
			return true
		}
	}
	return false
}

// TemplateSummary is the catalog entry shape exposed to API consumers and
// embedded into the planner's system prompt.
type TemplateSummary struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Category      Category    `json:"category"`
	Complexity    Complexity  `json:"complexity"`
	VisualStyle   VisualStyle `json:"visualStyle"`
	RequiredProps []string    `json:"requiredProps"`
}

// Summary projects a template to its catalog-listing shape.
func (t *SceneTemplate) Summary() TemplateSummary {
	return TemplateSummary{
		ID:            t.ID,
		Name:          t.Name,
		Description:   t.Description,
		Category:      t.Category,
		Complexity:    t.Complexity,
		VisualStyle:   t.VisualStyle,
		RequiredProps: t.RequiredProps,
	}
}
