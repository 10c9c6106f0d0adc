package ports

import (
	"context"
	"time"
)

// WarmTarget identifies whose data a warm pass should populate
type WarmTarget struct {
	UserID    string `json:"user_id,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
}

// TargetProvider lists the projects and users the scheduler should keep warm
type TargetProvider interface {
	ActiveTargets(ctx context.Context) ([]WarmTarget, error)
}

// ActivityRecorder is notified whenever a user touches a project
type ActivityRecorder interface {
	Touch(target WarmTarget)
}

// WarmMetrics defines the contract for warm outcome tracking
type WarmMetrics interface {
	RecordWarm(entity, outcome string, duration time.Duration)
}

// SchedulerMetrics defines the contract for scheduled job tracking
type SchedulerMetrics interface {
	RecordJobRun(job, outcome string, duration time.Duration)
	RecordSkippedTick(job string)
}
