// Package profile maps completed questionnaire answers to one of the six
// investor archetypes.
package profile

import (
	"go.uber.org/zap"

	"github.com/ameya-wealth/wealth-api/internal/catalog"
	"github.com/ameya-wealth/wealth-api/internal/model"
)

// Score tallies weight contributions for every answered question and returns
// the winning archetype with its full score vector.
//
// Only single-select answers contribute: multi-select values carry no entries
// in the weight table. Ties resolve to the archetype that appears first in
// model.Archetypes. With no scoring answers at all the result degrades to the
// first archetype at zero confidence rather than an error, so a caller can
// always render something.
func Score(answers []model.Answer) model.ProfileResult {
	scores := model.NewScoreVector()

	for _, a := range answers {
		valueWeights, ok := catalog.ProfileWeights[a.QuestionID]
		if !ok {
			continue
		}
		weights, ok := valueWeights[a.Value.SingleValue()]
		if !ok {
			continue
		}
		for archetype, w := range weights {
			scores[archetype] += w
		}
	}

	winner, maxScore := scores.Max()
	total := scores.Total()
	confidence := 0.0
	if total > 0 {
		confidence = maxScore / total * 100
	}

	zap.L().Debug("profile: scored questionnaire",
		zap.String("archetype", string(winner)),
		zap.Float64("confidence", confidence),
		zap.Int("answers", len(answers)),
	)

	return model.ProfileResult{
		Archetype:  winner,
		Scores:     scores,
		Confidence: confidence,
	}
}
