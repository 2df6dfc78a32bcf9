package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gcbp-mortgage/internal/config"
	"gcbp-mortgage/internal/core/domain"
)

func TestCronService_StartRejectsBadSchedule(t *testing.T) {
	svc := NewCronService(newFakeTokenRepo(), newFakeLeadRepo(), config.CronConfig{
		TokenCleanup: "every tuesday",
		StaleLeads:   "30 8 * * *",
	}, 7)

	err := svc.Start()
	assert.ErrorContains(t, err, "schedule token cleanup")
}

func TestCronService_StartStop(t *testing.T) {
	svc := NewCronService(newFakeTokenRepo(), newFakeLeadRepo(), config.CronConfig{
		TokenCleanup: "0 3 * * *",
		StaleLeads:   "30 8 * * *",
	}, 7)

	require.NoError(t, svc.Start())
	assert.Len(t, svc.cron.Entries(), 2)
	svc.Stop()
}

func TestCronService_PurgeExpiredTokens(t *testing.T) {
	tokens := newFakeTokenRepo()
	tokens.purged = 3
	svc := NewCronService(tokens, newFakeLeadRepo(), config.CronConfig{}, 7)

	n, err := svc.PurgeExpiredTokens(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestCronService_ReportStaleLeads(t *testing.T) {
	now := time.Date(2026, 4, 20, 8, 30, 0, 0, time.UTC)
	old := now.AddDate(0, 0, -10)
	fresh := now.AddDate(0, 0, -2)

	stale := lead(1, domain.StatusInReview)
	stale.UpdatedAt = old
	recent := lead(2, domain.StatusAssigned)
	recent.UpdatedAt = fresh
	closed := lead(3, domain.StatusDisbursed)
	closed.UpdatedAt = old

	svc := NewCronService(newFakeTokenRepo(), newFakeLeadRepo(stale, recent, closed), config.CronConfig{}, 7)
	svc.now = func() time.Time { return now }

	counts, err := svc.ReportStaleLeads(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[domain.Status]int64{domain.StatusInReview: 1}, counts)
}
