package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/medirep/sfa-backend-go/internal/service/automation"
)

type AutomationJobs struct {
	automationSvc automation.AutomationService
}

func NewAutomationJobs(automationSvc automation.AutomationService) *AutomationJobs {
	return &AutomationJobs{automationSvc: automationSvc}
}

func (j *AutomationJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("sweep_yesterday", 1*time.Hour, j.SweepYesterday)
	scheduler.AddJob("reset_leave_year", 1*time.Hour, j.ResetLeaveYear)
}

func (j *AutomationJobs) SweepYesterday(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting daily sweep")

	result, err := j.automationSvc.SweepYesterday(ctx)
	if err != nil {
		return err
	}

	slog.Info("Cron: Daily sweep finished",
		"date", result.Date,
		"swept", result.Swept,
		"marked_lwp", result.MarkedLWP,
		"failed", result.Failed)
	return nil
}

func (j *AutomationJobs) ResetLeaveYear(ctx context.Context) error {
	now := time.Now().UTC()
	// Fiscal year turns over on April 1; run in its first hour.
	if now.Month() != time.April || now.Day() != 1 || now.Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Resetting leave ledgers for the new fiscal year")
	return j.automationSvc.ResetLeaveYear(ctx)
}
