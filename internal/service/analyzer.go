package service

import (
	"strings"

	"github.com/promoforge/api/internal/model"
)

const maxKeywords = 10

// AnalyzeContent classifies a raw marketing prompt into industry, tone,
// visual style, complexity, keywords, and a suggested category flow. It is
// pure and total: every prompt, including the empty string, yields a
// complete analysis with defaults filled in.
func AnalyzeContent(prompt string) *model.ContentAnalysis {
	lower := strings.ToLower(prompt)

	industry := detectIndustry(lower)
	tone := detectTone(lower)

	return &model.ContentAnalysis{
		Industry:      industry,
		Tone:          tone,
		VisualStyle:   styleForTone(tone),
		Complexity:    detectComplexity(lower),
		Keywords:      extractKeywords(lower),
		SuggestedFlow: suggestContentFlow(industry, tone),
	}
}

// containsAny reports whether s contains any of the needles.
func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func detectIndustry(lower string) model.Industry {
	switch {
	case containsAny(lower, "app", "software", "tech"):
		return model.IndustryTechnology
	case containsAny(lower, "game", "gaming"):
		return model.IndustryGaming
	case containsAny(lower, "luxury", "premium"):
		return model.IndustryLuxury
	case containsAny(lower, "food", "restaurant"):
		return model.IndustryFood
	case containsAny(lower, "fitness", "health"):
		return model.IndustryHealth
	}
	return model.IndustryGeneral
}

func detectTone(lower string) model.Tone {
	switch {
	case containsAny(lower, "fun", "playful", "game"):
		return model.TonePlayful
	case containsAny(lower, "luxury", "premium", "elegant"):
		return model.ToneLuxury
	case containsAny(lower, "tech", "ai", "futuristic"):
		return model.ToneTech
	case containsAny(lower, "natural", "organic", "eco"):
		return model.ToneOrganic
	case containsAny(lower, "simple", "clean", "minimal"):
		return model.ToneMinimal
	}
	return model.ToneProfessional
}

func styleForTone(tone model.Tone) model.VisualStyle {
	switch tone {
	case model.ToneTech:
		return model.StyleFuturistic
	case model.ToneOrganic:
		return model.StyleOrganic
	case model.ToneMinimal:
		return model.StyleMinimal
	case model.ToneLuxury:
		return model.StyleModern
	}
	return model.StyleModern
}

func detectComplexity(lower string) model.Complexity {
	switch {
	case containsAny(lower, "advanced", "professional", "enterprise"):
		return model.ComplexityComplex
	case containsAny(lower, "simple", "basic", "easy"):
		return model.ComplexitySimple
	}
	return model.ComplexityMedium
}

// extractKeywords takes the first ten whitespace-split tokens longer than
// three characters, with punctuation stripped.
func extractKeywords(lower string) []string {
	var cleaned strings.Builder
	for _, r := range lower {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == ' ' || r == '\t' || r == '\n' || r == '_' {
			cleaned.WriteRune(r)
		}
	}

	keywords := make([]string, 0, maxKeywords)
	for _, word := range strings.Fields(cleaned.String()) {
		if len(word) <= 3 {
			continue
		}
		keywords = append(keywords, word)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

func suggestContentFlow(industry model.Industry, tone model.Tone) []model.Category {
	switch {
	case industry == model.IndustryTechnology:
		return []model.Category{model.CategoryHero, model.CategoryProduct, model.CategoryFeatures, model.CategoryStats, model.CategoryCTA}
	case industry == model.IndustryGaming:
		return []model.Category{model.CategoryHero, model.CategoryFeatures, model.CategoryProduct, model.CategoryCTA}
	case industry == model.IndustryLuxury:
		return []model.Category{model.CategoryHero, model.CategoryProduct, model.CategoryFeatures, model.CategoryCTA, model.CategoryLogo}
	case tone == model.ToneProfessional:
		return []model.Category{model.CategoryHero, model.CategoryFeatures, model.CategoryStats, model.CategoryCTA}
	}
	return []model.Category{model.CategoryHero, model.CategoryFeatures, model.CategoryCTA}
}
