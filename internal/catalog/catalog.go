// Package catalog holds the static questionnaire, scoring weights, goal and
// model-portfolio data that drive onboarding. The compiled-in defaults can be
// overridden from a YAML file or synced from the Notion content workspace.
package catalog

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/ameya-wealth/wealth-api/internal/model"
)

// ActiveQuestions returns the questionnaire for a given set of answers so
// far. The base block plus the service-model question is always present;
// the advisory block is appended only once the user has picked the advisory
// engagement path.
func ActiveQuestions(answers []model.Answer) []model.Question {
	questions := make([]model.Question, 0, len(baseQuestions)+1+len(advisoryQuestions))
	questions = append(questions, baseQuestions...)
	questions = append(questions, serviceModelQuestion)

	if a, ok := model.FindAnswer(answers, QuestionServiceModel); ok && a.Value.SingleValue() == ServiceModelAdvisory {
		questions = append(questions, advisoryQuestions...)
	}
	return questions
}

// AllQuestions returns every question the catalog knows about, advisory
// block included, regardless of branching.
func AllQuestions() []model.Question {
	questions := make([]model.Question, 0, len(baseQuestions)+1+len(advisoryQuestions))
	questions = append(questions, baseQuestions...)
	questions = append(questions, serviceModelQuestion)
	questions = append(questions, advisoryQuestions...)
	return questions
}

// QuestionByID looks a question up across all blocks.
func QuestionByID(id string) (model.Question, bool) {
	for _, q := range AllQuestions() {
		if q.ID == id {
			return q, true
		}
	}
	return model.Question{}, false
}

// ValidateAnswer checks that an answer targets a known question, matches its
// select mode, and only uses values the question offers.
func ValidateAnswer(a model.Answer) error {
	q, ok := QuestionByID(a.QuestionID)
	if !ok {
		return eris.New(fmt.Sprintf("catalog: unknown question %q", a.QuestionID))
	}
	if a.Value.Empty() {
		return eris.New(fmt.Sprintf("catalog: empty answer for question %q", a.QuestionID))
	}
	if a.Value.IsMulti() && q.Mode != model.MultiSelect {
		return eris.New(fmt.Sprintf("catalog: question %q is single-select", a.QuestionID))
	}
	if !a.Value.IsMulti() && q.Mode != model.SingleSelect {
		return eris.New(fmt.Sprintf("catalog: question %q is multi-select", a.QuestionID))
	}
	if a.Value.IsMulti() {
		for _, v := range a.Value.Multi {
			if !q.HasOption(v) {
				return eris.New(fmt.Sprintf("catalog: question %q has no option %q", a.QuestionID, v))
			}
		}
		return nil
	}
	if !q.HasOption(a.Value.Single) {
		return eris.New(fmt.Sprintf("catalog: question %q has no option %q", a.QuestionID, a.Value.Single))
	}
	return nil
}

// Validate sanity-checks the compiled catalog. It runs at startup so a bad
// YAML override or Notion sync fails fast instead of producing broken
// recommendations.
func Validate() error {
	seen := make(map[string]bool)
	for _, q := range AllQuestions() {
		if q.ID == "" {
			return eris.New("catalog: question with empty id")
		}
		if seen[q.ID] {
			return eris.New(fmt.Sprintf("catalog: duplicate question id %q", q.ID))
		}
		seen[q.ID] = true
		if len(q.Options) < 2 {
			return eris.New(fmt.Sprintf("catalog: question %q needs at least two options", q.ID))
		}
		opts := make(map[string]bool)
		for _, o := range q.Options {
			if o.Value == "" {
				return eris.New(fmt.Sprintf("catalog: question %q has an option with empty value", q.ID))
			}
			if opts[o.Value] {
				return eris.New(fmt.Sprintf("catalog: question %q duplicates option %q", q.ID, o.Value))
			}
			opts[o.Value] = true
		}
	}

	for qid, values := range ProfileWeights {
		if _, ok := QuestionByID(qid); !ok {
			return eris.New(fmt.Sprintf("catalog: weights reference unknown question %q", qid))
		}
		for value, weights := range values {
			for archetype := range weights {
				if !archetype.Valid() {
					return eris.New(fmt.Sprintf("catalog: weights for %s=%s reference unknown archetype %q", qid, value, archetype))
				}
			}
		}
	}

	for id, p := range Portfolios {
		if p.ID != id {
			return eris.New(fmt.Sprintf("catalog: portfolio %q keyed under %q", p.ID, id))
		}
		if total := p.AllocationTotal(); total != 100 {
			return eris.New(fmt.Sprintf("catalog: portfolio %q allocation sums to %v", id, total))
		}
		if p.ExpectedReturns.Min > p.ExpectedReturns.Max {
			return eris.New(fmt.Sprintf("catalog: portfolio %q has inverted return range", id))
		}
	}

	for id, g := range Goals {
		if g.ID != id {
			return eris.New(fmt.Sprintf("catalog: goal %q keyed under %q", g.ID, id))
		}
	}
	return nil
}
