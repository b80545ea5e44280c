package scheduler

import (
	"context"
	"time"

	"github.com/bancoriental/unipersonal-backend/internal/app/repository"
	"github.com/bancoriental/unipersonal-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// PasswordScheduler purges expired temporary passwords from the document
// store on a fixed schedule.
type PasswordScheduler struct {
	cron      *cron.Cron
	passwords repository.PasswordRepository
}

func NewPasswordScheduler(passwords repository.PasswordRepository) *PasswordScheduler {
	return &PasswordScheduler{
		cron:      cron.New(),
		passwords: passwords,
	}
}

// Start schedules the nightly purge at 03:00.
func (s *PasswordScheduler) Start() error {
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		logger.Info("Starting expired password purge", nil)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		removed, err := s.passwords.DeleteExpiredPasswords(ctx)
		if err != nil {
			logger.Error("Failed to purge expired passwords", err)
			return
		}

		logger.Info("Expired password purge finished", map[string]interface{}{
			"removed": removed,
		})
	})
	if err != nil {
		logger.Error("Failed to add cron job for password purge", err)
		return err
	}

	s.cron.Start()
	logger.Info("Password scheduler started (daily at 3:00 AM)", nil)
	return nil
}

// Stop stops the scheduler.
func (s *PasswordScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Password scheduler stopped", nil)
}
