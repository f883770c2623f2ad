package service

import (
	"sort"
	"strings"

	"github.com/promoforge/api/internal/catalog"
	"github.com/promoforge/api/internal/model"
)

// TemplateSelector picks scene templates for a content analysis without
// any external calls. It is the deterministic half of the planner.
type TemplateSelector struct {
	catalog *catalog.Catalog
}

func NewTemplateSelector(cat *catalog.Catalog) *TemplateSelector {
	return &TemplateSelector{catalog: cat}
}

// SelectOptimalTemplates returns an ordered list of at most targetCount
// template ids. Each category of the suggested flow contributes its best
// match; remaining slots are filled with the best-scoring templates not
// yet selected.
func (s *TemplateSelector) SelectOptimalTemplates(analysis *model.ContentAnalysis, targetCount int) []string {
	var selected []string
	chosen := make(map[string]bool)

	for _, category := range analysis.SuggestedFlow {
		candidates := s.candidatesForCategory(category, analysis)
		if best := s.selectBest(candidates, analysis); best != nil && !chosen[best.ID] {
			selected = append(selected, best.ID)
			chosen[best.ID] = true
		}
	}

	// Fill remaining slots with diverse templates
	for len(selected) < targetCount {
		var remaining []*model.SceneTemplate
		for i := range s.catalog.Templates {
			if !chosen[s.catalog.Templates[i].ID] {
				remaining = append(remaining, &s.catalog.Templates[i])
			}
		}
		if len(remaining) == 0 {
			break
		}
		best := s.selectBest(remaining, analysis)
		selected = append(selected, best.ID)
		chosen[best.ID] = true
	}

	if len(selected) > targetCount {
		selected = selected[:targetCount]
	}
	return selected
}

// candidatesForCategory narrows a category to style matches, then
// complexity matches, then the whole category.
func (s *TemplateSelector) candidatesForCategory(category model.Category, analysis *model.ContentAnalysis) []*model.SceneTemplate {
	inCategory := s.catalog.ByCategory(category)

	var styleFiltered, complexityFiltered []*model.SceneTemplate
	for _, t := range inCategory {
		if t.VisualStyle == analysis.VisualStyle {
			styleFiltered = append(styleFiltered, t)
		}
		if t.Complexity == analysis.Complexity {
			complexityFiltered = append(complexityFiltered, t)
		}
	}

	if len(styleFiltered) > 0 {
		return styleFiltered
	}
	if len(complexityFiltered) > 0 {
		return complexityFiltered
	}
	return inCategory
}

// selectBest scores every candidate and returns the highest scorer.
// Sorting is stable, so ties break by catalog order.
func (s *TemplateSelector) selectBest(candidates []*model.SceneTemplate, analysis *model.ContentAnalysis) *model.SceneTemplate {
	if len(candidates) == 0 {
		return nil
	}

	type scored struct {
		template *model.SceneTemplate
		score    int
	}
	ranked := make([]scored, 0, len(candidates))
	for _, t := range candidates {
		ranked = append(ranked, scored{template: t, score: s.scoreTemplate(t, analysis)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	return ranked[0].template
}

// scoreTemplate rates a template against the analysis: +3 on exact style
// match, +2 on exact complexity match (+1 for complex templates otherwise,
// biasing toward visual impact), +1 per keyword hit in name+description.
func (s *TemplateSelector) scoreTemplate(t *model.SceneTemplate, analysis *model.ContentAnalysis) int {
	score := 0

	if t.VisualStyle == analysis.VisualStyle {
		score += 3
	}

	if t.Complexity == analysis.Complexity {
		score += 2
	} else if t.Complexity == model.ComplexityComplex {
		score++
	}

	text := strings.ToLower(t.Name + " " + t.Description)
	for _, keyword := range analysis.Keywords {
		if strings.Contains(text, keyword) {
			score++
		}
	}

	return score
}
