// Package crm pushes newly registered users to Salesforce as Leads. The
// push is best effort and never blocks account creation.
package crm

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ameya-wealth/wealth-api/internal/model"
	"github.com/ameya-wealth/wealth-api/internal/resilience"
	"github.com/ameya-wealth/wealth-api/pkg/salesforce"
)

const (
	leadSource  = "Onboarding"
	leadCompany = "Individual"
	// asyncTimeout bounds a fire-and-forget push, which runs detached from
	// the originating request.
	asyncTimeout = 30 * time.Second
)

// Pusher upserts onboarding leads into Salesforce.
type Pusher struct {
	sf    salesforce.Client
	retry resilience.RetryConfig
}

func NewPusher(sf salesforce.Client) *Pusher {
	return &Pusher{
		sf:    sf,
		retry: resilience.DefaultRetryConfig(),
	}
}

// PushLead upserts a Lead keyed by email and returns the Salesforce ID.
func (p *Pusher) PushLead(ctx context.Context, profile *model.UserProfile, investor *model.InvestorProfile, goal *model.GoalRecord) (string, error) {
	if profile == nil || profile.Email == "" {
		return "", eris.New("crm: profile with email is required")
	}

	fields := leadFields(profile, investor, goal)

	return resilience.DoVal(ctx, p.retry, func(ctx context.Context) (string, error) {
		existing, err := salesforce.FindLeadByEmail(ctx, p.sf, profile.Email)
		if err != nil {
			return "", err
		}
		if existing != nil {
			if err := salesforce.UpdateLead(ctx, p.sf, existing.ID, fields); err != nil {
				return "", err
			}
			return existing.ID, nil
		}
		return salesforce.CreateLead(ctx, p.sf, fields)
	})
}

// PushLeadAsync runs PushLead in the background with its own timeout and
// logs the outcome. Callers get no error; CRM outages must not surface to
// the user.
func (p *Pusher) PushLeadAsync(profile *model.UserProfile, investor *model.InvestorProfile, goal *model.GoalRecord) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()

		id, err := p.PushLead(ctx, profile, investor, goal)
		if err != nil {
			zap.L().Warn("crm lead push failed",
				zap.String("user_id", profile.UserID),
				zap.Error(err))
			return
		}
		zap.L().Info("crm lead pushed",
			zap.String("user_id", profile.UserID),
			zap.String("lead_id", id))
	}()
}

// leadFields maps the onboarding outcome onto Lead fields. Custom fields
// use the org's __c suffixed API names.
func leadFields(profile *model.UserProfile, investor *model.InvestorProfile, goal *model.GoalRecord) map[string]any {
	first, last := splitName(profile.FullName)

	fields := map[string]any{
		"FirstName":  first,
		"LastName":   last,
		"Email":      profile.Email,
		"Company":    leadCompany,
		"LeadSource": leadSource,
	}
	if profile.Phone != "" {
		fields["Phone"] = profile.Phone
	}
	if investor != nil {
		fields["Investor_Profile__c"] = string(investor.ProfileType)
	}
	if goal != nil {
		fields["Goal_Type__c"] = string(goal.GoalType)
		fields["Target_Amount__c"] = goal.TargetAmount
		fields["Monthly_SIP__c"] = goal.MonthlySIP
	}
	return fields
}

// splitName splits a full name into first and last. Salesforce requires a
// LastName, so a single-word name lands there.
func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", "Unknown"
	case 1:
		return "", parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
	}
}
