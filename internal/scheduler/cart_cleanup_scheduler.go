package scheduler

import (
	"time"

	"github.com/marketloop/marketloop-backend/internal/app/repository"
	"github.com/marketloop/marketloop-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CartCleanupScheduler prunes cart items that have not been touched for
// a configured age, so abandoned carts do not pile up.
type CartCleanupScheduler struct {
	cron         *cron.Cron
	cartRepo     repository.CartRepository
	staleItemAge time.Duration
}

func NewCartCleanupScheduler(cartRepo repository.CartRepository, staleItemAge time.Duration) *CartCleanupScheduler {
	return &CartCleanupScheduler{
		cron:         cron.New(),
		cartRepo:     cartRepo,
		staleItemAge: staleItemAge,
	}
}

// Start schedules the daily cleanup at 04:00.
func (s *CartCleanupScheduler) Start() error {
	_, err := s.cron.AddFunc("0 4 * * *", func() {
		s.Run()
	})
	if err != nil {
		logger.Error("Failed to add cron job for cart cleanup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Cart cleanup scheduler started successfully (daily at 4:00 AM)", map[string]interface{}{
		"stale_item_age": s.staleItemAge.String(),
	})

	return nil
}

// Run executes one cleanup pass.
func (s *CartCleanupScheduler) Run() {
	logger.Info("Starting scheduled cart cleanup", nil)

	cutoff := time.Now().Add(-s.staleItemAge)
	deleted, err := s.cartRepo.DeleteStaleItems(cutoff)
	if err != nil {
		logger.Error("Failed to prune stale cart items", err)
		return
	}

	logger.Info("Cart cleanup completed", map[string]interface{}{
		"deleted": deleted,
		"cutoff":  cutoff,
	})
}

// Stop stops the scheduler
func (s *CartCleanupScheduler) Stop() {
	logger.Info("Stopping cart cleanup scheduler...", nil)
	s.cron.Stop()
	logger.Info("Cart cleanup scheduler stopped", nil)
}
