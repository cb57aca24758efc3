package email

import (
	"fmt"
	"net/smtp"

	"github.com/jasho/finance-service/internal/config"
	"github.com/jasho/finance-service/internal/models"
	"github.com/jasho/finance-service/internal/scoring"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendInsightDigest sends a periodic financial summary email with the
// user's refreshed credit score, insight lines, budget suggestions and
// next-month prediction.
func (s *Sender) SendInsightDigest(to, username string, insights models.FinancialInsightResult, score int) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Your Jasho Financial Summary"

	body := fmt.Sprintf("Dear %s,\n\n", username)
	body += fmt.Sprintf("Your credit score is now %d.\n\n", score)
	for _, entry := range insights.Insights {
		body += fmt.Sprintf("- %s: %s\n", entry.Title, entry.Detail)
	}
	if len(insights.Budgets) > 0 {
		body += "\nSuggested budgets for your top spending categories:\n"
		for _, budget := range insights.Budgets {
			body += fmt.Sprintf("- %s: %s\n", budget.Category, scoring.FormatAmount(budget.Limit))
		}
	}
	for _, need := range insights.Predicted {
		if need.Period == "next_month" {
			body += fmt.Sprintf("\nEstimated spending next month: %s\n", scoring.FormatAmount(need.Amount))
		}
	}
	body += "\nBest regards,\nJasho"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
