package jobs

import (
	"context"
	"fmt"
	"time"

	"volunteerhub-backend/internal/logger"
)

// SendPendingReviewReminders emails every active admin when organizer
// applications have sat in the review queue longer than the configured age.
// Read-only plus email; no state is mutated.
func (jr *JobRunner) SendPendingReviewReminders() {
	jr.runWithRecovery("SendPendingReviewReminders", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().Add(-time.Duration(jr.config.Review.PendingReminderAfterHours) * time.Hour)

		var pending int32
		err := jr.db.QueryRowContext(ctx,
			`SELECT count(*) FROM organizer_applications WHERE status = 'pending' AND submitted_at < $1`,
			cutoff).Scan(&pending)
		if err != nil {
			logger.Error("Failed to count stale pending applications", "error", err)
			return
		}
		if pending == 0 {
			return
		}

		admins, err := jr.store.ListAdminEmails(ctx)
		if err != nil {
			logger.Error("Failed to list admin emails", "error", err)
			return
		}

		subject := "Organizer applications awaiting review"
		body := fmt.Sprintf(`Hello,

%d organizer application(s) have been waiting for review for more than %d hours.

Please visit the admin dashboard to process them.

Thank you,
The VolunteerHub Team`, pending, jr.config.Review.PendingReminderAfterHours)

		sent := 0
		for _, email := range admins {
			if err := jr.services.Email.SendAdminNotification(ctx, email, subject, body); err != nil {
				logger.Error("Failed to send review reminder", "email", email, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Review reminders sent", "pending", pending, "recipients", sent)
	})
}

// SendPendingApplicationDigest emails each organizer a digest of pending
// volunteer applications across their postings.
func (jr *JobRunner) SendPendingApplicationDigest() {
	jr.runWithRecovery("SendPendingApplicationDigest", func() {
		ctx := context.Background()

		query := `
			SELECT op.id, op.organization_name, up.email, count(a.id)
			FROM organizer_profiles op
			JOIN user_profiles up ON up.user_id = op.user_id
			JOIN postings p ON p.organizer_id = op.id
			JOIN applications a ON a.posting_id = p.id
			WHERE op.is_active = true AND a.status = 'pending'
			GROUP BY op.id, op.organization_name, up.email
		`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to query pending application digest", "error", err)
			return
		}
		defer rows.Close()

		sent := 0
		for rows.Next() {
			var (
				organizerID      int32
				organizationName string
				email            string
				pending          int32
			)
			if err := rows.Scan(&organizerID, &organizationName, &email, &pending); err != nil {
				logger.Error("Failed to scan digest row", "error", err)
				continue
			}

			subject := "Pending volunteer applications"
			body := fmt.Sprintf(`Hello %s,

You have %d pending volunteer application(s) across your postings.

Please review them at your convenience.

Thank you,
The VolunteerHub Team`, organizationName, pending)

			if err := jr.services.Email.SendAdminNotification(ctx, email, subject, body); err != nil {
				logger.Error("Failed to send application digest",
					"organizer_id", organizerID, "email", email, "error", err)
				continue
			}
			sent++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Digest row iteration failed", "error", err)
		}
		logger.Info("Application digests sent", "recipients", sent)
	})
}
