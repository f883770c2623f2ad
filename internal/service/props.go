package service

import (
	"context"
	"log"
	"strings"

	"github.com/promoforge/api/internal/catalog"
	"github.com/promoforge/api/internal/client"
	"github.com/promoforge/api/internal/model"
)

const (
	maxTitleLen    = 40
	maxSubtitleLen = 60
	maxMainTextLen = 50

	contextInstructions = "Extract specific details about features, benefits, brand values, and key messaging that would be useful for creating marketing content."
	contextMaxResults   = 2
)

// contextLookup is the outcome of a knowledge retrieval attempt. Degraded
// lookups carry no text and are indistinguishable from "corpus had
// nothing" for the generators; the flag exists so callers and tests can
// observe the degraded path.
type contextLookup struct {
	text     string
	degraded bool
}

// PropSynthesizer produces concrete prop values for a chosen template from
// the prompt and its analysis, optionally enriched by knowledge retrieval.
// Synthesis always succeeds: every external failure degrades to
// prompt-only heuristics.
type PropSynthesizer struct {
	catalog *catalog.Catalog
	senso   client.KnowledgeRetriever
}

func NewPropSynthesizer(cat *catalog.Catalog, senso client.KnowledgeRetriever) *PropSynthesizer {
	return &PropSynthesizer{catalog: cat, senso: senso}
}

// GenerateContextualProps fills every prop the template requires.
func (p *PropSynthesizer) GenerateContextualProps(ctx context.Context, prompt, templateID string, analysis *model.ContentAnalysis) model.SceneProps {
	template := p.catalog.ByID(templateID)
	if template == nil {
		return model.SceneProps{}
	}

	lookup := p.fetchContext(ctx, prompt)

	var props model.SceneProps
	for _, prop := range template.RequiredProps {
		switch prop {
		case "title":
			props.Title = p.generateTitle(prompt, analysis, lookup)
		case "subtitle":
			props.Subtitle = p.generateSubtitle(analysis, lookup)
		case "mainText":
			props.MainText = p.generateMainText(analysis, lookup)
		case "buttonText":
			props.ButtonText = buttonTextForTone(analysis.Tone)
		case "brandName":
			props.BrandName = extractBrandName(prompt)
		case "productName":
			props.ProductName = extractProductName(prompt)
		case "features":
			props.Features = featuresForIndustry(analysis.Industry)
		case "stats":
			props.Stats = statsForIndustry(analysis.Industry)
		}
	}
	return props
}

// fetchContext asks the knowledge service for marketing context. Any
// failure, including an unconfigured client, yields a degraded lookup.
func (p *PropSynthesizer) fetchContext(ctx context.Context, prompt string) contextLookup {
	if p.senso == nil || !p.senso.IsConfigured() {
		return contextLookup{degraded: true}
	}

	result, err := p.senso.Query(ctx, prompt, contextInstructions, contextMaxResults)
	if err != nil {
		log.Printf("Knowledge lookup unavailable, continuing without context: %v", err)
		return contextLookup{degraded: true}
	}
	return contextLookup{text: result.Output}
}

// contextLine finds the first line of the lookup text containing any of
// the markers and returns the value after its "label:" prefix. Lines
// without a colon carry no extractable value and are skipped.
func contextLine(lookup contextLookup, maxLen int, markers ...string) (string, bool) {
	if lookup.text == "" {
		return "", false
	}
	for _, line := range strings.Split(lookup.text, "\n") {
		lower := strings.ToLower(line)
		matched := false
		for _, marker := range markers {
			if strings.Contains(lower, marker) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		value := strings.TrimSpace(line[idx+1:])
		if value != "" && len(value) <= maxLen {
			return value, true
		}
	}
	return "", false
}

func (p *PropSynthesizer) generateTitle(prompt string, analysis *model.ContentAnalysis, lookup contextLookup) string {
	if extracted, ok := contextLine(lookup, maxTitleLen, "title", "name", "product"); ok {
		return extracted
	}

	title := prompt
	if runes := []rune(title); len(runes) > maxTitleLen {
		title = string(runes[:maxTitleLen]) + "..."
	}

	switch analysis.Tone {
	case model.ToneTech:
		return "Next-Gen " + title
	case model.ToneLuxury:
		return "Premium " + title
	case model.TonePlayful:
		return "Amazing " + title
	}
	return title
}

func (p *PropSynthesizer) generateSubtitle(analysis *model.ContentAnalysis, lookup contextLookup) string {
	if extracted, ok := contextLine(lookup, maxSubtitleLen, "tagline", "benefit", "value proposition"); ok {
		return extracted
	}

	switch analysis.Tone {
	case model.ToneTech:
		return "Powered by Innovation"
	case model.ToneLuxury:
		return "Experience Excellence"
	case model.TonePlayful:
		return "Fun Meets Function"
	case model.ToneProfessional:
		return "Your Success Partner"
	case model.ToneOrganic:
		return "Natural Solutions"
	case model.ToneMinimal:
		return "Simple. Effective."
	}
	return "Discover the Difference"
}

func (p *PropSynthesizer) generateMainText(analysis *model.ContentAnalysis, lookup contextLookup) string {
	if extracted, ok := contextLine(lookup, maxMainTextLen, "call to action", "cta", "ready to"); ok {
		return extracted
	}

	switch analysis.Tone {
	case model.ToneTech:
		return "Ready to Innovate?"
	case model.ToneLuxury:
		return "Experience Luxury Today"
	case model.TonePlayful:
		return "Join the Fun!"
	case model.ToneProfessional:
		return "Transform Your Business"
	case model.ToneOrganic:
		return "Go Natural Today"
	case model.ToneMinimal:
		return "Keep It Simple"
	}
	return "Ready to Get Started?"
}

func buttonTextForTone(tone model.Tone) string {
	switch tone {
	case model.ToneTech:
		return "Launch Now"
	case model.ToneLuxury:
		return "Explore Premium"
	case model.TonePlayful:
		return "Start Playing"
	case model.ToneProfessional:
		return "Get Started"
	case model.ToneOrganic:
		return "Go Natural"
	case model.ToneMinimal:
		return "Try It"
	}
	return "Start Now"
}

// extractBrandName looks for the first capitalized word in the prompt.
func extractBrandName(prompt string) string {
	for _, word := range strings.Fields(prompt) {
		if isCapitalizedWord(word) {
			return word
		}
	}
	return "Your Brand"
}

func isCapitalizedWord(word string) bool {
	if len(word) < 2 {
		return false
	}
	if word[0] < 'A' || word[0] > 'Z' {
		return false
	}
	for i := 1; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return false
		}
	}
	return true
}

var productNouns = map[string]bool{
	"app": true, "software": true, "platform": true, "service": true,
	"product": true, "tool": true, "system": true,
}

// extractProductName finds a product noun and pairs it with the word
// before it, title-cased ("fitness app" -> "Fitness App").
func extractProductName(prompt string) string {
	words := strings.Fields(strings.ToLower(prompt))
	for i := 1; i < len(words); i++ {
		if productNouns[words[i]] {
			return titleCase(words[i-1]) + " " + titleCase(words[i])
		}
	}
	return "Amazing Product"
}

func titleCase(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

func featuresForIndustry(industry model.Industry) []model.Feature {
	switch industry {
	case model.IndustryTechnology:
		return []model.Feature{
			{Title: "AI-Powered", Description: "Smart automation", Emoji: "🤖", Color: "#64C8FF"},
			{Title: "Cloud-Based", Description: "Access anywhere", Emoji: "☁️", Color: "#4ECDC4"},
			{Title: "Secure", Description: "Enterprise-grade security", Emoji: "🔒", Color: "#FF6B6B"},
		}
	case model.IndustryGaming:
		return []model.Feature{
			{Title: "Epic Graphics", Description: "Stunning visuals", Emoji: "🎮", Color: "#FF6B6B"},
			{Title: "Multiplayer", Description: "Play with friends", Emoji: "👥", Color: "#4ECDC4"},
			{Title: "Achievements", Description: "Unlock rewards", Emoji: "🏆", Color: "#FFE66D"},
		}
	case model.IndustryLuxury:
		return []model.Feature{
			{Title: "Premium Quality", Description: "Crafted to perfection", Emoji: "💎", Color: "#FFD700"},
			{Title: "Exclusive", Description: "Limited edition", Emoji: "⭐", Color: "#FF6B6B"},
			{Title: "Personalized", Description: "Tailored for you", Emoji: "🎯", Color: "#4ECDC4"},
		}
	}
	return []model.Feature{
		{Title: "Innovation", Description: "Cutting-edge technology", Emoji: "🚀", Color: "#FF6B6B"},
		{Title: "Quality", Description: "Premium experience", Emoji: "⭐", Color: "#4ECDC4"},
		{Title: "Performance", Description: "Lightning fast", Emoji: "⚡", Color: "#FFE66D"},
	}
}

func statsForIndustry(industry model.Industry) []model.Stat {
	switch industry {
	case model.IndustryTechnology:
		return []model.Stat{
			{Label: "Users", Value: 100000, Suffix: "+", Color: "#64C8FF"},
			{Label: "Uptime", Value: 99.9, Suffix: "%", Color: "#4ECDC4"},
			{Label: "Performance", Value: 10, Suffix: "x", Color: "#FFE66D"},
		}
	case model.IndustryGaming:
		return []model.Stat{
			{Label: "Players", Value: 2000000, Suffix: "+", Color: "#FF6B6B"},
			{Label: "Rating", Value: 4.8, Suffix: "/5", Color: "#FFE66D"},
			{Label: "Downloads", Value: 5000000, Suffix: "+", Color: "#4ECDC4"},
		}
	case model.IndustryLuxury:
		return []model.Stat{
			{Label: "Customers", Value: 50000, Suffix: "+", Color: "#FFD700"},
			{Label: "Satisfaction", Value: 98, Suffix: "%", Color: "#FF6B6B"},
			{Label: "Rating", Value: 4.9, Suffix: "/5", Color: "#4ECDC4"},
		}
	}
	return []model.Stat{
		{Label: "Users", Value: 50000, Suffix: "+", Color: "#FF6B6B"},
		{Label: "Rating", Value: 4.9, Suffix: "/5", Color: "#4ECDC4"},
		{Label: "Growth", Value: 300, Suffix: "%", Color: "#FFE66D"},
	}
}
