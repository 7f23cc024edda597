package model

// SelectMode distinguishes single-choice from multi-choice questions.
type SelectMode string

const (
	SingleSelect SelectMode = "single-select"
	MultiSelect  SelectMode = "multi-select"
)

// Option is one selectable choice on a question.
type Option struct {
	Value       string `json:"value" yaml:"value"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Question is a single questionnaire entry. Catalog questions are immutable
// after process start; AdvisoryOnly questions appear only when the user picks
// the advisory service model.
type Question struct {
	ID           string     `json:"id" yaml:"id"`
	Prompt       string     `json:"prompt" yaml:"prompt"`
	Subtitle     string     `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Mode         SelectMode `json:"mode" yaml:"mode"`
	Options      []Option   `json:"options" yaml:"options"`
	AdvisoryOnly bool       `json:"advisory_only,omitempty" yaml:"advisory_only,omitempty"`
}

// HasOption reports whether value is a valid option on the question.
func (q Question) HasOption(value string) bool {
	for _, opt := range q.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}
