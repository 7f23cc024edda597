package model

import (
	"encoding/json"

	"github.com/rotisserie/eris"
)

// Answer is the user's response to one question. Value holds a single option
// value for single-select questions and a list of option values for
// multi-select questions.
type Answer struct {
	QuestionID string      `json:"question_id"`
	Value      AnswerValue `json:"value"`
}

// AnswerValue is either a single option value or a list of option values.
// Exactly one of the two fields is set.
type AnswerValue struct {
	Single string
	Multi  []string
}

// IsMulti reports whether the value is a multi-select list.
func (v AnswerValue) IsMulti() bool { return v.Multi != nil }

// Empty reports whether no selection has been made.
func (v AnswerValue) Empty() bool {
	if v.IsMulti() {
		return len(v.Multi) == 0
	}
	return v.Single == ""
}

// SingleValue returns a scalar answer value for weight-table lookup.
// Multi-select values return "" so lookups miss and scoring treats them
// as a no-op.
func (v AnswerValue) SingleValue() string {
	if v.IsMulti() {
		return ""
	}
	return v.Single
}

// MarshalJSON encodes the value as either a JSON string or a string array,
// matching the wire shape the web client sends.
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.IsMulti() {
		return json.Marshal(v.Multi)
	}
	return json.Marshal(v.Single)
}

// UnmarshalJSON accepts either a JSON string or a string array.
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v.Single = s
		v.Multi = nil
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		v.Single = ""
		v.Multi = list
		return nil
	}
	return eris.New("answer value must be a string or a string array")
}

// SingleAnswer builds a single-select answer.
func SingleAnswer(questionID, value string) Answer {
	return Answer{QuestionID: questionID, Value: AnswerValue{Single: value}}
}

// MultiAnswer builds a multi-select answer.
func MultiAnswer(questionID string, values ...string) Answer {
	if values == nil {
		values = []string{}
	}
	return Answer{QuestionID: questionID, Value: AnswerValue{Multi: values}}
}

// Upsert replaces the answer for the same question id, or appends when the
// question has not been answered yet. Replace-by-id keeps one answer per
// question with no history.
func Upsert(answers []Answer, a Answer) []Answer {
	for i := range answers {
		if answers[i].QuestionID == a.QuestionID {
			answers[i] = a
			return answers
		}
	}
	return append(answers, a)
}

// FindAnswer returns the answer for questionID, or false when absent.
func FindAnswer(answers []Answer, questionID string) (Answer, bool) {
	for _, a := range answers {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return Answer{}, false
}
