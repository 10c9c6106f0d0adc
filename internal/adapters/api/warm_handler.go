package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"synergyai.app/internal/core/caching"
	"synergyai.app/internal/core/deals"
	"synergyai.app/internal/ports"
	"synergyai.app/pkg/errors"
	"synergyai.app/pkg/validation"
)

// PrefetchRequest is the body of POST /api/prefetch. Without entities every
// warmer the target can satisfy runs.
type PrefetchRequest struct {
	ProjectID string   `json:"project_id" binding:"omitempty,max=128"`
	Entities  []string `json:"entities" binding:"omitempty,max=32,dive,entity"`
}

// PrefetchResponse acknowledges an accepted background warm
type PrefetchResponse struct {
	BatchID  string   `json:"batch_id"`
	Entities []string `json:"entities,omitempty"`
}

// WarmSummary describes the critical warm run before a mission control read
type WarmSummary struct {
	BatchID   string `json:"batch_id"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	TimedOut  bool   `json:"timed_out"`
}

// MissionControlResponse is the body of the mission control endpoint
type MissionControlResponse struct {
	Data              deals.MissionControl `json:"data"`
	CriticalWarm      WarmSummary          `json:"critical_warm"`
	BackgroundBatchID string               `json:"background_batch_id"`
}

// InvalidateResponse reports a project invalidation
type InvalidateResponse struct {
	ProjectID string `json:"project_id"`
	Removed   int    `json:"removed"`
}

// prefetch handles POST /api/prefetch requests
func (s *HTTPServerAdapter) prefetch(c *gin.Context) {
	var req PrefetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Debug("Prefetch binding error", "error", err)
		s.handleError(c, errors.NewValidationError("Invalid request format"))
		return
	}

	target := ports.WarmTarget{UserID: currentUser(c), ProjectID: req.ProjectID}
	if target.ProjectID != "" {
		s.activity.Touch(target)
	}

	var batchID string
	if len(req.Entities) == 0 {
		batchID = s.warmer.WarmAllAsync(target).String()
	} else {
		batchID = s.warmer.WarmEntitiesAsync(target, req.Entities).String()
	}

	slog.Debug("Prefetch accepted", "batch_id", batchID, "project_id", target.ProjectID, "entities", req.Entities)
	c.JSON(http.StatusAccepted, PrefetchResponse{BatchID: batchID, Entities: req.Entities})
}

// getMissionControl warms the critical set, assembles the view from the
// warmed entries and schedules the rest of the project in the background.
func (s *HTTPServerAdapter) getMissionControl(c *gin.Context) {
	args, ok := s.projectArgs(c)
	if !ok {
		return
	}
	target := ports.WarmTarget{UserID: args.UserID, ProjectID: args.ProjectID}

	report := s.warmer.WarmCritical(c.Request.Context(), target)

	mc, err := s.catalog.MissionControl.Refresh(c.Request.Context(), args)
	if err != nil {
		s.handleError(c, err)
		return
	}

	background := s.warmer.WarmAllAsync(target)

	c.JSON(http.StatusOK, MissionControlResponse{
		Data: mc,
		CriticalWarm: WarmSummary{
			BatchID:   report.ID.String(),
			Succeeded: report.Succeeded(),
			Failed:    report.Failed(),
			TimedOut:  report.TimedOut,
		},
		BackgroundBatchID: background.String(),
	})
}

// invalidateProject handles POST /api/projects/:project_id/invalidate requests
func (s *HTTPServerAdapter) invalidateProject(c *gin.Context) {
	args, ok := s.projectArgs(c)
	if !ok {
		return
	}

	removed, err := caching.InvalidateSegment(c.Request.Context(), s.store, caching.ProjectSegment(args.ProjectID))
	if err != nil {
		s.handleError(c, errors.NewCacheError("failed to invalidate project", err))
		return
	}

	slog.Info("Project cache invalidated", "project_id", args.ProjectID, "removed", removed)
	c.JSON(http.StatusOK, InvalidateResponse{ProjectID: args.ProjectID, Removed: removed})
}

// projectArgs builds memoization args from the path and the caller. It
// writes the error response itself and reports false when the path is bad.
func (s *HTTPServerAdapter) projectArgs(c *gin.Context) (caching.Args, bool) {
	projectID, ok := validation.TrimAndValidate(c.Param("project_id"))
	if !ok || !validation.IsKeySafe(projectID) {
		s.handleError(c, errors.NewValidationError("invalid project id"))
		return caching.Args{}, false
	}
	return caching.Args{UserID: currentUser(c), ProjectID: projectID}, true
}
