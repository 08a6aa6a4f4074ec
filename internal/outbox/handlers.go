package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"jobspring-backend/internal/domain"
)

// Mailer is the notification surface consumed by the submitted handler.
type Mailer interface {
	IsConfigured() bool
	SendPlainText(to, subject, body string) error
}

// NewInvalidateApplicationsHandler applies the consistency side effect of a
// posting leaving the active state: every application referencing the job is
// rewritten to INVALID in one bulk statement. Redelivery converges to the
// same end state.
func NewInvalidateApplicationsHandler(appRepo domain.ApplicationRepository, log *slog.Logger) Handler {
	return func(ctx context.Context, e domain.OutboxEvent) error {
		var p domain.JobDeactivatedPayload
		if err := json.Unmarshal(e.Payload, &p); err != nil {
			return fmt.Errorf("decode %s payload: %w", e.EventType, err)
		}

		n, err := appRepo.InvalidateByJobID(ctx, p.JobID)
		if err != nil {
			return fmt.Errorf("invalidate applications for job %d: %w", p.JobID, err)
		}
		log.Info("applications invalidated", "job_id", p.JobID, "company_id", p.CompanyID, "count", n)
		return nil
	}
}

// NewApplicationSubmittedHandler mails the owning company's HR staff about a
// new application. Notification is best-effort: a send failure is logged and
// never fails the delivery, so it cannot poison the outbox.
func NewApplicationSubmittedHandler(members domain.MembershipRepository, mailer Mailer, webBaseURL string, log *slog.Logger) Handler {
	return func(ctx context.Context, e domain.OutboxEvent) error {
		var p domain.ApplicationSubmittedPayload
		if err := json.Unmarshal(e.Payload, &p); err != nil {
			return fmt.Errorf("decode %s payload: %w", e.EventType, err)
		}

		emails, err := members.HREmailsByCompany(ctx, p.CompanyID)
		if err != nil {
			return fmt.Errorf("resolve HR emails for company %d: %w", p.CompanyID, err)
		}
		if len(emails) == 0 {
			log.Warn("no HR emails for company", "company_id", p.CompanyID)
			return nil
		}
		if !mailer.IsConfigured() {
			log.Warn("mail service not configured, skipping application notification", "application_id", p.ApplicationID)
			return nil
		}

		subject := fmt.Sprintf("[JobSpring] New application for %s", p.JobTitle)
		body := fmt.Sprintf(
			"A new application has been submitted.\n\n"+
				"Job: %s\n"+
				"Applicant: %s (%s)\n"+
				"Application ID: %d\n\n"+
				"Please log in to review:\n%s\n",
			p.JobTitle, p.ApplicantName, p.ApplicantEmail, p.ApplicationID, webBaseURL,
		)

		for _, to := range emails {
			if err := mailer.SendPlainText(to, subject, body); err != nil {
				log.Error("mail send failed", "to", to, "application_id", p.ApplicationID, "error", err)
			}
		}
		return nil
	}
}
