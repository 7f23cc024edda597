package catalog

import (
	"context"
	"strings"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ameya-wealth/wealth-api/internal/model"
	"github.com/ameya-wealth/wealth-api/pkg/notion"
)

// SyncFromNotion replaces the question catalog with the Active rows of the
// Question Catalog database in the content team's Notion workspace. The
// compiled-in defaults stay in place if the sync fails validation.
func SyncFromNotion(ctx context.Context, client notion.Client, dbID string) error {
	filter := &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: "Status",
			Status: &notionapi.StatusFilterCondition{
				Equals: "Active",
			},
		},
	}

	pages, err := notion.QueryAll(ctx, client, dbID, filter)
	if err != nil {
		return eris.Wrap(err, "catalog: query question catalog")
	}

	var base, advisory []model.Question
	for _, p := range pages {
		q, adv, err := parseQuestionPage(p)
		if err != nil {
			zap.L().Warn("catalog: skipping malformed question page",
				zap.String("page_id", string(p.ID)),
				zap.Error(err),
			)
			continue
		}
		if adv {
			advisory = append(advisory, q)
		} else {
			base = append(base, q)
		}
	}

	if len(base) == 0 {
		return eris.New("catalog: question catalog has no active base questions")
	}

	prevBase, prevAdvisory := baseQuestions, advisoryQuestions
	baseQuestions, advisoryQuestions = base, advisory
	if err := Validate(); err != nil {
		baseQuestions, advisoryQuestions = prevBase, prevAdvisory
		return eris.Wrap(err, "catalog: synced catalog failed validation")
	}

	zap.L().Info("catalog: synced question catalog from notion",
		zap.Int("base", len(base)),
		zap.Int("advisory", len(advisory)),
	)
	return nil
}

func parseQuestionPage(p notionapi.Page) (model.Question, bool, error) {
	var q model.Question
	advisory := false

	// QuestionID (rich_text)
	if prop, ok := p.Properties["QuestionID"]; ok {
		if rtp, ok := prop.(*notionapi.RichTextProperty); ok {
			q.ID = plainText(rtp.RichText)
		}
	}

	// Prompt (title)
	if prop, ok := p.Properties["Prompt"]; ok {
		if tp, ok := prop.(*notionapi.TitleProperty); ok {
			q.Prompt = plainText(tp.Title)
		}
	}

	// Subtitle (rich_text)
	if prop, ok := p.Properties["Subtitle"]; ok {
		if rtp, ok := prop.(*notionapi.RichTextProperty); ok {
			q.Subtitle = plainText(rtp.RichText)
		}
	}

	// Mode (select)
	q.Mode = model.SingleSelect
	if prop, ok := p.Properties["Mode"]; ok {
		if sp, ok := prop.(*notionapi.SelectProperty); ok && sp.Select.Name == string(model.MultiSelect) {
			q.Mode = model.MultiSelect
		}
	}

	// Block (select): base or advisory
	if prop, ok := p.Properties["Block"]; ok {
		if sp, ok := prop.(*notionapi.SelectProperty); ok && sp.Select.Name == "advisory" {
			advisory = true
			q.AdvisoryOnly = true
		}
	}

	// Options (rich_text): one option per line, "value | label | description"
	if prop, ok := p.Properties["Options"]; ok {
		if rtp, ok := prop.(*notionapi.RichTextProperty); ok {
			q.Options = parseOptions(plainText(rtp.RichText))
		}
	}

	if q.ID == "" {
		return q, false, eris.New("missing QuestionID property")
	}
	if q.Prompt == "" {
		return q, false, eris.New("missing Prompt property")
	}
	if len(q.Options) < 2 {
		return q, false, eris.New("fewer than two options")
	}
	return q, advisory, nil
}

func parseOptions(raw string) []model.Option {
	var opts []model.Option
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 3)
		opt := model.Option{Value: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			opt.Label = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			opt.Description = strings.TrimSpace(parts[2])
		}
		if opt.Label == "" {
			opt.Label = opt.Value
		}
		opts = append(opts, opt)
	}
	return opts
}

// plainText concatenates the plain_text values from a slice of RichText.
func plainText(rts []notionapi.RichText) string {
	var s string
	for _, rt := range rts {
		s += rt.PlainText
	}
	return s
}
