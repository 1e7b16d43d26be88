package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/finance-advisor/internal/config"
	"github.com/Dan9191/finance-advisor/internal/models"
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

// SendAdvisoryDigest mails the alerts and suggested cuts of a report
func (s *Sender) SendAdvisoryDigest(to, username string, report *models.AdvisoryReport) error {
	e := s.newDigest(to, username, report)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send advisory digest to %s: %v", to, err)
		return fmt.Errorf("failed to send advisory digest: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

func (s *Sender) newDigest(to, username string, report *models.AdvisoryReport) *email.Email {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Your financial advisory for %s", report.ReferenceDate)
	e.Text = []byte(digestBody(username, report))
	return e
}

func digestBody(username string, report *models.AdvisoryReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", username)
	fmt.Fprintf(&b, "Projected balance for next month: %.2f (income %.2f, expenses %.2f).\n",
		report.Summary.ProjectedBalance, report.Summary.ProjectedIncome, report.Summary.ProjectedExpense)

	if report.Buffer.Priority == models.BufferPriorityHigh {
		fmt.Fprintf(&b, "Emergency fund: %.2f still needed; we suggest setting aside %.2f this month.\n",
			report.Buffer.Shortfall, report.Buffer.SuggestedInstallment)
	}

	if len(report.Alerts) > 0 {
		b.WriteString("\nAlerts:\n")
		for _, a := range report.Alerts {
			fmt.Fprintf(&b, "  - [%s] %s\n", a.Type, a.Detail)
		}
	}

	if len(report.Cuts) > 0 {
		b.WriteString("\nSuggested cuts:\n")
		for _, c := range report.Cuts {
			fmt.Fprintf(&b, "  - %s: cut %.0f%% to save about %.2f per month\n", c.Category, c.CutPct*100, c.EstimatedSavings)
		}
	}

	b.WriteString("\nBest regards,\nFinFlow Advisor")
	return b.String()
}
