package catalog

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/ameya-wealth/wealth-api/internal/model"
)

// Override is the shape of a YAML catalog override file. Any section left
// empty keeps the compiled-in default.
type Override struct {
	BaseQuestions     []model.Question `yaml:"base_questions"`
	AdvisoryQuestions []model.Question `yaml:"advisory_questions"`
}

// LoadOverrideFile applies question overrides from the given YAML path. The
// content team uses this for copy experiments without a redeploy.
func LoadOverrideFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrap(err, "catalog: read override file")
	}

	var o Override
	if err := yaml.Unmarshal(data, &o); err != nil {
		return eris.Wrap(err, "catalog: unmarshal override file")
	}

	if len(o.BaseQuestions) > 0 {
		baseQuestions = o.BaseQuestions
	}
	if len(o.AdvisoryQuestions) > 0 {
		for i := range o.AdvisoryQuestions {
			o.AdvisoryQuestions[i].AdvisoryOnly = true
		}
		advisoryQuestions = o.AdvisoryQuestions
	}

	return Validate()
}

// SaveOverrideFile writes the current catalog as an override file, so a
// Notion sync can be captured and shipped with a deploy.
func SaveOverrideFile(path string) error {
	o := Override{
		BaseQuestions:     baseQuestions,
		AdvisoryQuestions: advisoryQuestions,
	}
	data, err := yaml.Marshal(&o)
	if err != nil {
		return eris.Wrap(err, "catalog: marshal override file")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrap(err, "catalog: write override file")
	}
	return nil
}
