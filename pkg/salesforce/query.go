package salesforce

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Lead represents a Salesforce Lead record.
type Lead struct {
	ID         string `json:"Id" salesforce:"Id"`
	FirstName  string `json:"FirstName" salesforce:"FirstName"`
	LastName   string `json:"LastName" salesforce:"LastName"`
	Email      string `json:"Email" salesforce:"Email"`
	Phone      string `json:"Phone" salesforce:"Phone"`
	Company    string `json:"Company" salesforce:"Company"`
	LeadSource string `json:"LeadSource" salesforce:"LeadSource"`
	Status     string `json:"Status" salesforce:"Status"`
}

// leadFields are the SOQL fields selected for Lead queries.
var leadFields = []string{
	"Id", "FirstName", "LastName", "Email", "Phone",
	"Company", "LeadSource", "Status",
}

// FindLeadByEmail queries Salesforce for a Lead matching the given email.
// Returns nil if no lead is found.
func FindLeadByEmail(ctx context.Context, c Client, email string) (*Lead, error) {
	if email == "" {
		return nil, eris.New("sf: email is required")
	}
	soql := fmt.Sprintf(
		"SELECT %s FROM Lead WHERE Email = '%s' LIMIT 1",
		strings.Join(leadFields, ", "),
		escapeSOQL(email),
	)

	var result QueryResult[Lead]
	if err := c.Query(ctx, soql, &result); err != nil {
		return nil, eris.Wrap(err, "sf: find lead by email")
	}
	if len(result.Records) == 0 {
		return nil, nil
	}
	return &result.Records[0], nil
}

// escapeSOQL escapes single quotes and backslashes in a SOQL string literal.
func escapeSOQL(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
