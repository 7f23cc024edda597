package model

// Archetype identifies one of the six investor profiles a completed
// questionnaire maps to.
type Archetype string

const (
	ArchetypeConservativeSaver Archetype = "conservative-saver"
	ArchetypeBalancedInvestor  Archetype = "balanced-investor"
	ArchetypeGrowthSeeker      Archetype = "growth-seeker"
	ArchetypeTaxOptimizer      Archetype = "tax-optimizer"
	ArchetypeWealthBuilder     Archetype = "wealth-builder"
	ArchetypeIncomeSeeker      Archetype = "income-seeker"
)

// Archetypes lists every archetype in canonical order. Scoring ties are
// broken by this order, so it must never be reshuffled.
var Archetypes = []Archetype{
	ArchetypeConservativeSaver,
	ArchetypeBalancedInvestor,
	ArchetypeGrowthSeeker,
	ArchetypeTaxOptimizer,
	ArchetypeWealthBuilder,
	ArchetypeIncomeSeeker,
}

func (a Archetype) Valid() bool {
	for _, known := range Archetypes {
		if a == known {
			return true
		}
	}
	return false
}
