package scheduler

import (
	"context"
	stderrors "errors"
	"fmt"

	"synergyai.app/internal/core/deals"
	"synergyai.app/internal/core/warming"
	"synergyai.app/internal/ports"
)

// Job identifiers
const (
	JobMissionControl     = "mission_control"
	JobAlertsAndScores    = "alerts_and_scores"
	JobUserDashboards     = "user_dashboards"
	JobProjectData        = "project_data"
	JobAIContent          = "ai_content"
	JobValuationTemplates = "valuation_templates"
)

// Warmer is the part of warming.Orchestrator the jobs drive
type Warmer interface {
	WarmAll(ctx context.Context, target ports.WarmTarget) warming.BatchReport
	WarmEntities(ctx context.Context, target ports.WarmTarget, names []string) warming.BatchReport
}

type JobDependencies struct {
	Config   ports.SchedulerConfig
	Critical []string
	Targets  ports.TargetProvider
	Warmer   Warmer
}

// Jobs builds the fixed warm job table
func Jobs(deps JobDependencies) []Descriptor {
	cfg := deps.Config
	w := &warmJobs{targets: deps.Targets, warmer: deps.Warmer, critical: deps.Critical}

	return []Descriptor{
		{ID: JobMissionControl, Interval: cfg.MissionControl, Job: w.missionControl},
		{ID: JobAlertsAndScores, Interval: cfg.AlertsAndScores, Job: w.projectEntities(
			deals.EntityAlerts, deals.EntityRiskProfile, deals.EntitySynergyScore, deals.EntityMissionControl)},
		{ID: JobUserDashboards, Interval: cfg.UserDashboards, Job: w.userDashboards},
		{ID: JobProjectData, Interval: cfg.ProjectData, Job: w.projectData},
		{ID: JobAIContent, Interval: cfg.AIContent, Job: w.aiContent},
		{ID: JobValuationTemplates, Interval: cfg.ValuationTemplates, Job: w.projectEntities(deals.EntityValuationTemplates)},
	}
}

type warmJobs struct {
	targets  ports.TargetProvider
	warmer   Warmer
	critical []string
}

// forEachTarget warms targets one after another so a job never runs more
// than one batch at a time.
func (w *warmJobs) forEachTarget(ctx context.Context, keep func(ports.WarmTarget) bool, warm func(ports.WarmTarget) warming.BatchReport) error {
	targets, err := w.targets.ActiveTargets(ctx)
	if err != nil {
		return fmt.Errorf("list active targets: %w", err)
	}

	var errs []error
	for _, t := range targets {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !keep(t) {
			continue
		}
		if err := warm(t).Err(); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

func hasProject(t ports.WarmTarget) bool { return t.ProjectID != "" }

func (w *warmJobs) missionControl(ctx context.Context) error {
	return w.forEachTarget(ctx, hasProject, func(t ports.WarmTarget) warming.BatchReport {
		report := w.warmer.WarmEntities(ctx, t, w.critical)
		assembled := w.warmer.WarmEntities(ctx, t, []string{deals.EntityMissionControl})
		report.Results = append(report.Results, assembled.Results...)
		return report
	})
}

func (w *warmJobs) projectEntities(names ...string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return w.forEachTarget(ctx, hasProject, func(t ports.WarmTarget) warming.BatchReport {
			return w.warmer.WarmEntities(ctx, t, names)
		})
	}
}

func (w *warmJobs) userDashboards(ctx context.Context) error {
	seen := make(map[string]struct{})
	return w.forEachTarget(ctx, func(t ports.WarmTarget) bool {
		if t.UserID == "" {
			return false
		}
		if _, ok := seen[t.UserID]; ok {
			return false
		}
		seen[t.UserID] = struct{}{}
		return true
	}, func(t ports.WarmTarget) warming.BatchReport {
		return w.warmer.WarmEntities(ctx, ports.WarmTarget{UserID: t.UserID},
			[]string{deals.EntityProjects, deals.EntityChartData})
	})
}

func (w *warmJobs) projectData(ctx context.Context) error {
	return w.forEachTarget(ctx, hasProject, func(t ports.WarmTarget) warming.BatchReport {
		return w.warmer.WarmAll(ctx, t)
	})
}

func (w *warmJobs) aiContent(ctx context.Context) error {
	return w.forEachTarget(ctx, hasProject, func(t ports.WarmTarget) warming.BatchReport {
		names := []string{deals.EntityAISummary, deals.EntityIndustryInsights}
		if t.UserID != "" {
			names = append(names, deals.EntityNarrative)
		}
		return w.warmer.WarmEntities(ctx, t, names)
	})
}
