package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/lab007/redesigner-api/internal/config"
	"github.com/lab007/redesigner-api/internal/models"
)

// EmailService sends job outcome notifications over SMTP.
type EmailService struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewEmailService creates a new email service.
func NewEmailService(cfg *config.Config, logger *slog.Logger) *EmailService {
	return &EmailService{cfg: cfg, logger: logger}
}

// Enabled reports whether SMTP delivery is configured.
func (s *EmailService) Enabled() bool {
	return s.cfg.EmailEnabled()
}

// SendResult emails the job owner the outcome: the finished redesign, or
// what went wrong.
func (s *EmailService) SendResult(ctx context.Context, job *models.Job) error {
	if !s.Enabled() {
		return nil
	}
	if job.Email == "" {
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(s.cfg.EmailFrom); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(job.Email); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	if job.Status.IsError() {
		msg.Subject("Your Website Redesign Could Not Be Completed")
		msg.SetBodyString(mail.TypeTextHTML, failureBody(job))
	} else {
		msg.Subject("Your Website Redesign is Ready! 🎨")
		msg.SetBodyString(mail.TypeTextHTML, completionBody(job))
	}

	opts := []mail.Option{
		mail.WithPort(s.cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if s.cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.SMTPUsername),
			mail.WithPassword(s.cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(s.cfg.SMTPHost, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("notification email sent", "job_id", job.ID, "to", job.Email)
	return nil
}

func failureBody(job *models.Job) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #dc3545;">We Couldn't Finish Your Redesign</h1>
  <p>Something went wrong while redesigning <a href="%s">%s</a>:</p>
  <p style="background: #f8f9fa; border-left: 4px solid #dc3545; padding: 0.75rem;">%s</p>
  <p>You can submit the site again at any time.</p>
</div>`,
		job.WebsiteURL,
		job.WebsiteURL,
		job.ErrorMessage,
	)
}

func completionBody(job *models.Job) string {
	primaryURL := job.MockupURL
	label := "View Your Mockup"
	if job.Type == models.JobTypeClone && len(job.DemoURLs) > 0 {
		primaryURL = job.DemoURLs[0]
		label = "View Your New Design"
	}

	var extra strings.Builder
	if job.Type == models.JobTypeClone && len(job.DemoURLs) > 1 {
		extra.WriteString("<p>All redesigned pages:</p><ul>")
		for _, u := range job.DemoURLs {
			extra.WriteString(`<li><a href="` + u + `">` + u + `</a></li>`)
		}
		extra.WriteString("</ul>")
	}

	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #007bff;">Your Website Redesign is Ready! 🎨</h1>
  <p>We've finished redesigning <a href="%s">%s</a>.</p>
  <ul>
    <li><strong>Theme:</strong> %s</li>
    <li><strong>Business type:</strong> %s</li>
  </ul>
  <p style="margin: 2rem 0;">
    <a href="%s" style="background: #007bff; color: #fff; padding: 0.75rem 1.5rem; border-radius: 4px; text-decoration: none;">%s</a>
  </p>
  %s
  <p style="color: #666; font-size: 0.9rem;">All original content has been preserved and enhanced with modern design.</p>
</div>`,
		job.WebsiteURL,
		job.WebsiteURL,
		job.Theme,
		job.BusinessType,
		primaryURL,
		label,
		extra.String(),
	)
}
