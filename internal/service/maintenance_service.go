package service

import (
	"context"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/agent/tools"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// reconcileTimeout bounds one full reconciliation sweep.
const reconcileTimeout = 5 * time.Minute

// MaintenanceService owns the background jobs: hourly ledger
// reconciliation and expired pending-action sweeps.
type MaintenanceService struct {
	analytics *AnalyticsService
	actions   *tools.ActionStore
	cron      *cron.Cron
}

// NewMaintenanceService creates a MaintenanceService. Call Start to
// begin scheduling.
func NewMaintenanceService(analytics *AnalyticsService, actions *tools.ActionStore) *MaintenanceService {
	return &MaintenanceService{
		analytics: analytics,
		actions:   actions,
		cron:      cron.New(),
	}
}

// Start registers and launches the background jobs.
func (s *MaintenanceService) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.reconcile); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@every 5m", s.sweepActions); err != nil {
		return err
	}
	s.cron.Start()
	log.Info().Msg("Maintenance jobs scheduled")
	return nil
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *MaintenanceService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *MaintenanceService) reconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()

	start := time.Now()
	if err := s.analytics.ReconcileAll(ctx); err != nil {
		log.Error().Err(err).Msg("Reconciliation run failed")
		return
	}
	log.Info().Dur("took", time.Since(start)).Msg("Reconciliation run complete")
}

func (s *MaintenanceService) sweepActions() {
	if n := s.actions.Sweep(); n > 0 {
		log.Info().Int("expired", n).Msg("Swept expired pending actions")
	}
}
