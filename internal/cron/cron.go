package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	model "github.com/boxmaker/boxmaker-web/pkg/box"
	"github.com/boxmaker/boxmaker-web/pkg/logger"
)

// Timeout for box reclamation
const boxReclaimTimeout = 5 * time.Minute

// Reclaimer removes stale generated boxes
type Reclaimer interface {
	Reclaim(ctx context.Context) (*model.BoxReclaimResult, error)
}

// Manager manages cron jobs
type Manager struct {
	cron      *cron.Cron
	logger    *logger.Logger
	reclaimer Reclaimer
	schedule  string
}

// NewManager creates a new cron manager. An empty schedule disables the
// reclaim job.
func NewManager(logger *logger.Logger, reclaimer Reclaimer, schedule string) *Manager {
	return &Manager{
		cron:      cron.New(cron.WithLogger(cron.PrintfLogger(logger))),
		logger:    logger,
		reclaimer: reclaimer,
		schedule:  schedule,
	}
}

// Start schedules the jobs and starts the cron manager
func (m *Manager) Start() error {
	if m.schedule == "" {
		m.logger.Info("Box reclamation disabled")
		return nil
	}

	if _, err := m.cron.AddFunc(m.schedule, m.reclaimBoxes); err != nil {
		return fmt.Errorf("failed to add box reclaim job %q: %w", m.schedule, err)
	}

	m.cron.Start()
	m.logger.Info("Cron manager started, reclaiming boxes on %q", m.schedule)
	return nil
}

// Stop stops the cron manager and waits for running jobs
func (m *Manager) Stop() {
	<-m.cron.Stop().Done()
	m.logger.Info("Cron manager stopped")
}

// reclaimBoxes runs the box reclamation job
func (m *Manager) reclaimBoxes() {
	m.logger.Debug("Running scheduled box reclamation")
	ctx, cancel := context.WithTimeout(context.Background(), boxReclaimTimeout)
	defer cancel()

	result, err := m.reclaimer.Reclaim(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			m.logger.Error("Box reclamation timed out after %v", boxReclaimTimeout)
		} else {
			m.logger.Error("Failed to reclaim boxes: %v", err)
		}
		return
	}
	for _, msg := range result.Errors {
		m.logger.Warn("Box reclamation: %s", msg)
	}
}
