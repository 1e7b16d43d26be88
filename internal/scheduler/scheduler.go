package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/finance-advisor/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Reporter builds advisory reports for stored users
type Reporter interface {
	Users(ctx context.Context) ([]models.User, error)
	UserReport(ctx context.Context, userID int64, referenceDate time.Time) (*models.AdvisoryReport, error)
}

// Notifier delivers a report to a user
type Notifier interface {
	SendAdvisoryDigest(to, username string, report *models.AdvisoryReport) error
}

// Scheduler runs the periodic advisory digest
type Scheduler struct {
	cron     *cron.Cron
	reporter Reporter
	notifier Notifier
	log      *logrus.Logger
	timeout  time.Duration
}

// NewScheduler creates a scheduler; call Start to begin running jobs
func NewScheduler(reporter Reporter, notifier Notifier, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		reporter: reporter,
		notifier: notifier,
		log:      log,
		timeout:  5 * time.Minute,
	}
}

// Start registers the digest job on the standard 5-field cron spec and
// starts the cron runner
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if _, err := s.RunDigest(ctx); err != nil {
			s.log.Errorf("Advisory digest failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", spec, err)
	}
	s.cron.Start()
	s.log.Infof("Advisory digest scheduled: %s", spec)
	return nil
}

// Stop halts the runner and waits for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunDigest emails every user whose report raises alerts. A failure for
// one user is logged and does not stop the run. It returns the number of
// digests sent.
func (s *Scheduler) RunDigest(ctx context.Context) (int, error) {
	users, err := s.reporter.Users(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	sent := 0
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		log := s.log.WithField("user_id", u.ID)

		report, err := s.reporter.UserReport(ctx, u.ID, time.Time{})
		if err != nil {
			log.Errorf("Failed to build advisory report: %v", err)
			continue
		}
		if len(report.Alerts) == 0 {
			continue
		}
		if err := s.notifier.SendAdvisoryDigest(u.Email, u.Username, report); err != nil {
			log.Errorf("Failed to send advisory digest: %v", err)
			continue
		}
		sent++
	}

	s.log.Infof("Advisory digest sent to %d of %d users", sent, len(users))
	return sent, nil
}
