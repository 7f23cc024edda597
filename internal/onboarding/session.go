// Package onboarding drives the questionnaire flow: a per-user session that
// walks the active question list, branches on the service-model answer and
// terminates in a scored profile with a recommendation.
package onboarding

import (
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/ameya-wealth/wealth-api/internal/catalog"
	"github.com/ameya-wealth/wealth-api/internal/model"
	"github.com/ameya-wealth/wealth-api/internal/profile"
	"github.com/ameya-wealth/wealth-api/internal/recommend"
)

// ErrAtStart is returned by Back on the first question; the caller treats it
// as leaving the flow rather than a failure.
var ErrAtStart = eris.New("onboarding: already at first question")

// Emitter receives fire-and-forget funnel events. Implementations must not
// block; the flow never waits on analytics.
type Emitter interface {
	Emit(ev model.FunnelEvent)
}

// nopEmitter drops everything.
type nopEmitter struct{}

func (nopEmitter) Emit(model.FunnelEvent) {}

// Session is one user's questionnaire in progress. Index always points into
// the active question list; Completed marks the terminal result state.
type Session struct {
	ID         string         `json:"id"`
	Answers    []model.Answer `json:"answers"`
	Index      int            `json:"index"`
	Completed  bool           `json:"completed"`
	DeviceType string         `json:"device_type,omitempty"`
	Referrer   string         `json:"referrer,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// NewSession starts a fresh session at the first question.
func NewSession(deviceType, referrer string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:         uuid.NewString(),
		DeviceType: deviceType,
		Referrer:   referrer,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// ActiveQuestions returns the question list for the session's answers so far.
func (s *Session) ActiveQuestions() []model.Question {
	return catalog.ActiveQuestions(s.Answers)
}

// Current returns the question the session is on. ok is false in the result
// state.
func (s *Session) Current() (model.Question, bool) {
	if s.Completed {
		return model.Question{}, false
	}
	questions := s.ActiveQuestions()
	return questions[s.Index], true
}

// Progress reports the 1-based position and the active list length.
func (s *Session) Progress() (step, total int) {
	return s.Index + 1, len(s.ActiveQuestions())
}

// clamp pulls the index back in range after the active list changes. Flipping
// serviceModel from advisory to distribution shrinks the list, and the index
// must never point past its end.
func (s *Session) clamp() {
	if n := len(s.ActiveQuestions()); s.Index >= n {
		s.Index = n - 1
	}
	if s.Index < 0 {
		s.Index = 0
	}
}

// Machine applies flow transitions to sessions and emits funnel events as a
// side effect. Transitions mutate the session in place; persisting the
// result is the caller's job.
type Machine struct {
	emitter Emitter
}

// NewMachine builds a Machine. A nil emitter disables analytics.
func NewMachine(emitter Emitter) *Machine {
	if emitter == nil {
		emitter = nopEmitter{}
	}
	return &Machine{emitter: emitter}
}

// Start emits the entry event for a new session's first question.
func (m *Machine) Start(s *Session) {
	m.emitStepView(s)
}

// Select records an answer (replace-by-id) without advancing. The answer
// must pass catalog validation. Changing the service-model answer may shrink
// the active list, so the index is re-clamped.
func (m *Machine) Select(s *Session, a model.Answer) error {
	if s.Completed {
		return eris.New("onboarding: session already completed")
	}
	if err := catalog.ValidateAnswer(a); err != nil {
		return err
	}
	s.Answers = model.Upsert(s.Answers, a)
	s.clamp()
	s.touch()
	return nil
}

// Advance moves to the next question, guarded on a valid answer for the
// current one. Advancing past the last question completes the session.
func (m *Machine) Advance(s *Session) error {
	q, ok := s.Current()
	if !ok {
		return eris.New("onboarding: session already completed")
	}

	a, answered := model.FindAnswer(s.Answers, q.ID)
	if !answered || a.Value.Empty() {
		return eris.New("onboarding: current question not answered")
	}

	step, total := s.Progress()
	m.emit(s, model.FunnelEvent{
		Type:       model.EventStepComplete,
		StepNumber: step,
		StepName:   q.ID,
	})

	if step == total {
		s.Completed = true
		s.touch()
		m.emit(s, model.FunnelEvent{
			Type:       model.EventFormComplete,
			StepNumber: step,
			StepName:   q.ID,
		})
		m.emit(s, model.FunnelEvent{Type: model.EventProfileView})
		return nil
	}

	s.Index++
	s.clamp()
	s.touch()
	m.emitStepView(s)
	return nil
}

// Back steps to the previous question. From the result state it reopens the
// last question; from the first question it returns ErrAtStart.
func (m *Machine) Back(s *Session) error {
	if s.Completed {
		s.Completed = false
		s.Index = len(s.ActiveQuestions()) - 1
		s.touch()
		m.emitStepView(s)
		return nil
	}
	if s.Index == 0 {
		return ErrAtStart
	}
	s.Index--
	s.touch()
	m.emitStepView(s)
	return nil
}

// Restart clears all answers and returns to the first question.
func (m *Machine) Restart(s *Session) {
	s.Answers = nil
	s.Index = 0
	s.Completed = false
	s.touch()
	m.emitStepView(s)
}

// Result scores the completed questionnaire and builds the recommendation.
func (m *Machine) Result(s *Session) (model.ProfileResult, model.Recommendation, error) {
	if !s.Completed {
		return model.ProfileResult{}, model.Recommendation{}, eris.New("onboarding: session not completed")
	}
	result := profile.Score(s.Answers)
	rec, err := recommend.Recommend(s.Answers, result.Archetype)
	if err != nil {
		return model.ProfileResult{}, model.Recommendation{}, err
	}
	return result, rec, nil
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}

func (m *Machine) emitStepView(s *Session) {
	q, ok := s.Current()
	if !ok {
		return
	}
	step, _ := s.Progress()
	m.emit(s, model.FunnelEvent{
		Type:       model.EventStepView,
		StepNumber: step,
		StepName:   q.ID,
	})
}

func (m *Machine) emit(s *Session, ev model.FunnelEvent) {
	ev.SessionID = s.ID
	ev.DeviceType = s.DeviceType
	ev.Referrer = s.Referrer
	ev.CreatedAt = time.Now().UTC()
	m.emitter.Emit(ev)
}
