package model

// Template categories
type Category string

const (
	CategoryHero         Category = "hero"
	CategoryFeatures     Category = "features"
	CategoryTestimonials Category = "testimonials"
	CategoryCTA          Category = "cta"
	CategoryLogo         Category = "logo"
	CategoryProduct      Category = "product"
	CategoryStats        Category = "stats"
	CategoryTransition   Category = "transition"
)

var ValidCategories = []Category{
	CategoryHero, CategoryFeatures, CategoryTestimonials, CategoryCTA,
	CategoryLogo, CategoryProduct, CategoryStats, CategoryTransition,
}

// Visual styles
type VisualStyle string

const (
	StyleMinimal    VisualStyle = "minimal"
	StyleModern     VisualStyle = "modern"
	StyleFuturistic VisualStyle = "futuristic"
	StyleOrganic    VisualStyle = "organic"
	StyleRetro      VisualStyle = "retro"
)

var ValidStyles = []VisualStyle{
	StyleMinimal, StyleModern, StyleFuturistic, StyleOrganic, StyleRetro,
}

// Complexity tiers
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

// Content tones
type Tone string

const (
	ToneProfessional Tone = "professional"
	TonePlayful      Tone = "playful"
	ToneLuxury       Tone = "luxury"
	ToneTech         Tone = "tech"
	ToneOrganic      Tone = "organic"
	ToneMinimal      Tone = "minimal"
)

// Industries
type Industry string

const (
	IndustryGeneral    Industry = "general"
	IndustryTechnology Industry = "technology"
	IndustryGaming     Industry = "gaming"
	IndustryLuxury     Industry = "luxury"
	IndustryFood       Industry = "food"
	IndustryHealth     Industry = "health"
)

// Transition types
type TransitionType string

const (
	TransitionFade  TransitionType = "fade"
	TransitionSlide TransitionType = "slide"
	TransitionWipe  TransitionType = "wipe"
)

// Job status
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCanceled  JobStatus = "canceled"
)
