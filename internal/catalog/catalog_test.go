package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameya-wealth/wealth-api/internal/model"
)

func TestValidateDefaults(t *testing.T) {
	require.NoError(t, Validate())
}

func TestActiveQuestionsBranching(t *testing.T) {
	base := ActiveQuestions(nil)
	assert.Len(t, base, len(baseQuestions)+1)
	for _, q := range base {
		assert.False(t, q.AdvisoryOnly, "question %s should not be advisory", q.ID)
	}

	withDistribution := ActiveQuestions([]model.Answer{
		model.SingleAnswer(QuestionServiceModel, ServiceModelDistribution),
	})
	assert.Len(t, withDistribution, len(baseQuestions)+1)

	withAdvisory := ActiveQuestions([]model.Answer{
		model.SingleAnswer(QuestionServiceModel, ServiceModelAdvisory),
	})
	assert.Len(t, withAdvisory, len(baseQuestions)+1+len(advisoryQuestions))
	last := withAdvisory[len(withAdvisory)-1]
	assert.True(t, last.AdvisoryOnly)
}

func TestQuestionByID(t *testing.T) {
	q, ok := QuestionByID("riskTolerance")
	require.True(t, ok)
	assert.Equal(t, model.SingleSelect, q.Mode)
	assert.True(t, q.HasOption("very-high"))

	_, ok = QuestionByID("shoeSize")
	assert.False(t, ok)
}

func TestValidateAnswer(t *testing.T) {
	tests := []struct {
		name    string
		answer  model.Answer
		wantErr bool
	}{
		{"valid single", model.SingleAnswer("age", "26-35"), false},
		{"valid multi", model.MultiAnswer("existingInvestments", "stocks", "gold"), false},
		{"unknown question", model.SingleAnswer("nope", "x"), true},
		{"unknown option", model.SingleAnswer("age", "120+"), true},
		{"multi on single-select", model.MultiAnswer("age", "18-25", "26-35"), true},
		{"single on multi-select", model.SingleAnswer("existingInvestments", "stocks"), true},
		{"unknown multi option", model.MultiAnswer("existingInvestments", "stocks", "crypto"), true},
		{"empty", model.Answer{QuestionID: "age"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAnswer(tt.answer)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWeightsReferenceKnownQuestions(t *testing.T) {
	for qid := range ProfileWeights {
		_, ok := QuestionByID(qid)
		assert.True(t, ok, "weights reference unknown question %s", qid)
	}
}

func TestPortfolioAllocationsSumTo100(t *testing.T) {
	for id, p := range Portfolios {
		assert.Equal(t, 100.0, p.AllocationTotal(), "portfolio %s", id)
	}
}

func TestGoalAmountDefaults(t *testing.T) {
	assert.Equal(t, int64(1_000_000), GoalAmounts["below-10l"])
	assert.Equal(t, int64(50_000_000), GoalAmounts["above-3cr"])
	_, ok := GoalAmounts["not-a-band"]
	assert.False(t, ok)
}

func TestLoadOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")

	const yml = `
base_questions:
  - id: age
    prompt: How old are you?
    mode: single-select
    options:
      - value: young
        label: Young
      - value: old
        label: Old
  - id: serviceModelProxy
    prompt: Pick one
    mode: single-select
    options:
      - value: a
        label: A
      - value: b
        label: B
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	origBase, origAdvisory := baseQuestions, advisoryQuestions
	t.Cleanup(func() {
		baseQuestions, advisoryQuestions = origBase, origAdvisory
	})

	require.NoError(t, LoadOverrideFile(path))
	q, ok := QuestionByID("age")
	require.True(t, ok)
	assert.Equal(t, "How old are you?", q.Prompt)
	assert.True(t, q.HasOption("young"))

	// Advisory block untouched by a base-only override.
	assert.Equal(t, origAdvisory, advisoryQuestions)
}

func TestLoadOverrideFileRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")

	const yml = `
base_questions:
  - id: dup
    prompt: One
    mode: single-select
    options:
      - value: a
        label: A
      - value: b
        label: B
  - id: dup
    prompt: Two
    mode: single-select
    options:
      - value: a
        label: A
      - value: b
        label: B
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	origBase, origAdvisory := baseQuestions, advisoryQuestions
	t.Cleanup(func() {
		baseQuestions, advisoryQuestions = origBase, origAdvisory
	})

	assert.Error(t, LoadOverrideFile(path))
}

func TestParseOptions(t *testing.T) {
	opts := parseOptions("a | Label A | Desc A\nb | Label B\nc\n\n")
	require.Len(t, opts, 3)
	assert.Equal(t, model.Option{Value: "a", Label: "Label A", Description: "Desc A"}, opts[0])
	assert.Equal(t, model.Option{Value: "b", Label: "Label B"}, opts[1])
	assert.Equal(t, model.Option{Value: "c", Label: "c"}, opts[2])
}

func TestAdvisoryQuestionSet(t *testing.T) {
	want := []string{
		"netWorth", "liquidAssets", "emergencyFund", "liabilities",
		"dependents", "insuranceCoverage", "incomeStability", "taxBracket",
		"advisoryScope", "investmentConstraints",
	}
	require.Len(t, advisoryQuestions, len(want))
	for i, q := range advisoryQuestions {
		assert.Equal(t, want[i], q.ID)
		assert.True(t, q.AdvisoryOnly, "question %s must be advisory-only", q.ID)
	}
}
