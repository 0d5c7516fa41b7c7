package reflection

// Category is the growth area the external reflection service assigns to an
// entry.
type Category string

const (
	CategoryResilience          Category = "Resilience"
	CategorySelfDiscipline      Category = "Self-Discipline"
	CategoryEmotionalRegulation Category = "Emotional Regulation"
	CategoryMotivation          Category = "Motivation"
	CategoryRelationships       Category = "Relationships"
)

// Reflection is the structured insight returned by the external AI service.
// Only GrowthPath drives an engine-side effect (the mini-goal bridge); the
// other fields are display-only.
type Reflection struct {
	Insight          string   `json:"insight"`
	GrowthCategory   Category `json:"growth_category"`
	GrowthPath       string   `json:"growth_path"`
	ReflectionPrompt string   `json:"reflection_prompt"`
}
