package model

// ScoreVector maps every archetype to its accumulated score. All six keys
// are always present; scores only accumulate during a scoring pass.
type ScoreVector map[Archetype]float64

// NewScoreVector returns a vector with all six archetypes at zero.
func NewScoreVector() ScoreVector {
	v := make(ScoreVector, len(Archetypes))
	for _, a := range Archetypes {
		v[a] = 0
	}
	return v
}

// Total returns the sum of all archetype scores.
func (v ScoreVector) Total() float64 {
	var total float64
	for _, s := range v {
		total += s
	}
	return total
}

// Max returns the highest score and the first archetype in canonical order
// that reaches it.
func (v ScoreVector) Max() (Archetype, float64) {
	best := Archetypes[0]
	bestScore := v[best]
	for _, a := range Archetypes[1:] {
		if v[a] > bestScore {
			best = a
			bestScore = v[a]
		}
	}
	return best, bestScore
}

// ProfileResult is the outcome of scoring a completed questionnaire.
// Derived, never stored on its own; recomputed from the full answer list.
type ProfileResult struct {
	Archetype  Archetype   `json:"archetype"`
	Scores     ScoreVector `json:"scores"`
	Confidence float64     `json:"confidence"`
}
