package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"gcbp-mortgage/internal/config"
	"gcbp-mortgage/internal/core/domain"
	"gcbp-mortgage/internal/pkg/logger"
)

const jobTimeout = 2 * time.Minute

// CronService runs scheduled maintenance jobs
type CronService struct {
	cron      *cron.Cron
	tokens    RefreshTokenRepository
	leads     LeadRepository
	schedules config.CronConfig
	staleDays int
	now       func() time.Time
}

// NewCronService creates a new cron service
func NewCronService(tokens RefreshTokenRepository, leads LeadRepository, schedules config.CronConfig, staleDays int) *CronService {
	return &CronService{
		cron:      cron.New(),
		tokens:    tokens,
		leads:     leads,
		schedules: schedules,
		staleDays: staleDays,
		now:       time.Now,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.schedules.TokenCleanup, s.run("token_cleanup", s.purgeTokens)); err != nil {
		return fmt.Errorf("schedule token cleanup %q: %w", s.schedules.TokenCleanup, err)
	}
	if _, err := s.cron.AddFunc(s.schedules.StaleLeads, s.run("stale_leads", s.reportStale)); err != nil {
		return fmt.Errorf("schedule stale lead report %q: %w", s.schedules.StaleLeads, err)
	}

	s.cron.Start()
	logger.L().Info("🚀 CronService started",
		zap.String("token_cleanup", s.schedules.TokenCleanup),
		zap.String("stale_leads", s.schedules.StaleLeads),
	)
	return nil
}

// Stop waits for running jobs and stops the scheduler
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	logger.L().Info("🛑 CronService stopped")
}

func (s *CronService) run(name string, job func(ctx context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if err := job(ctx); err != nil {
			logger.L().Error("❌ Cron job failed", zap.String("job", name), zap.Error(err))
		}
	}
}

func (s *CronService) purgeTokens(ctx context.Context) error {
	_, err := s.PurgeExpiredTokens(ctx)
	return err
}

func (s *CronService) reportStale(ctx context.Context) error {
	_, err := s.ReportStaleLeads(ctx)
	return err
}

// PurgeExpiredTokens deletes expired refresh tokens
func (s *CronService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	n, err := s.tokens.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	logger.L().Info("🧹 Expired refresh tokens purged", zap.Int64("count", n))
	return n, nil
}

// ReportStaleLeads counts open leads untouched for staleDays and logs them
func (s *CronService) ReportStaleLeads(ctx context.Context) (map[domain.Status]int64, error) {
	cutoff := s.now().AddDate(0, 0, -s.staleDays)
	counts, err := s.leads.CountStale(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	var total int64
	fields := make([]zap.Field, 0, len(counts)+2)
	for _, st := range domain.AllStatuses() {
		if n := counts[st]; n > 0 {
			total += n
			fields = append(fields, zap.Int64(string(st), n))
		}
	}
	if total == 0 {
		return counts, nil
	}

	fields = append(fields, zap.Int64("total", total), zap.Int("stale_days", s.staleDays))
	logger.L().Warn("⏰ Stale leads need attention", fields...)
	return counts, nil
}
