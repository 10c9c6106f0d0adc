package infrastructure

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"synergyai.app/internal/ports"
)

// DefaultMaxTargets bounds the tracker when no limit is configured
const DefaultMaxTargets = 5000

// ActivityTracker remembers which project/user pairs were seen recently and
// serves them, optionally merged with project memberships from the data store,
// as the scheduler's warm targets.
type ActivityTracker struct {
	window     time.Duration
	seedLimit  int
	maxTargets int
	fetcher    ports.RowFetcher
	logger    ports.Logger
	now       func() time.Time

	mu       sync.Mutex
	lastSeen map[ports.WarmTarget]time.Time
}

// ActivityTrackerConfig holds the dependencies of an ActivityTracker.
// Fetcher may be nil, which disables seeding from the data store.
type ActivityTrackerConfig struct {
	Window     time.Duration
	SeedLimit  int
	MaxTargets int
	Fetcher    ports.RowFetcher
	Logger     ports.Logger
}

// NewActivityTracker creates a new activity tracker
func NewActivityTracker(cfg ActivityTrackerConfig) *ActivityTracker {
	maxTargets := cfg.MaxTargets
	if maxTargets <= 0 {
		maxTargets = DefaultMaxTargets
	}
	return &ActivityTracker{
		window:     cfg.Window,
		seedLimit:  cfg.SeedLimit,
		maxTargets: maxTargets,
		fetcher:    cfg.Fetcher,
		logger:     cfg.Logger,
		now:        time.Now,
		lastSeen:   make(map[ports.WarmTarget]time.Time),
	}
}

// Touch marks target as active now. Empty targets are ignored. When the
// tracker is full, expired targets are dropped first, then the least
// recently seen one.
func (a *ActivityTracker) Touch(target ports.WarmTarget) {
	if target.UserID == "" && target.ProjectID == "" {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	if _, known := a.lastSeen[target]; !known && len(a.lastSeen) >= a.maxTargets {
		a.pruneLocked(now)
		if len(a.lastSeen) >= a.maxTargets {
			a.evictOldestLocked()
		}
	}
	a.lastSeen[target] = now
}

func (a *ActivityTracker) pruneLocked(now time.Time) {
	cutoff := now.Add(-a.window)
	for target, seen := range a.lastSeen {
		if seen.Before(cutoff) {
			delete(a.lastSeen, target)
		}
	}
}

func (a *ActivityTracker) evictOldestLocked() {
	var (
		oldest     ports.WarmTarget
		oldestSeen time.Time
		found      bool
	)
	for target, seen := range a.lastSeen {
		if !found || seen.Before(oldestSeen) {
			oldest, oldestSeen, found = target, seen, true
		}
	}
	if found {
		delete(a.lastSeen, oldest)
	}
}

// ActiveTargets returns every target seen within the window plus the seeded
// memberships, deduplicated and sorted. A seed failure is logged and the
// tracked targets are still returned.
func (a *ActivityTracker) ActiveTargets(ctx context.Context) ([]ports.WarmTarget, error) {
	set := a.recent()

	if a.fetcher != nil && a.seedLimit > 0 {
		seeded, err := a.seed(ctx)
		if err != nil {
			a.logger.Warn("Failed to seed warm targets from data store", ports.F("error", err))
		}
		for _, target := range seeded {
			set[target] = struct{}{}
		}
	}

	targets := make([]ports.WarmTarget, 0, len(set))
	for target := range set {
		targets = append(targets, target)
	}
	sort.Slice(targets, func(i, j int) bool {
		if targets[i].ProjectID != targets[j].ProjectID {
			return targets[i].ProjectID < targets[j].ProjectID
		}
		return targets[i].UserID < targets[j].UserID
	})

	return targets, nil
}

func (a *ActivityTracker) recent() map[ports.WarmTarget]struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.pruneLocked(a.now())
	set := make(map[ports.WarmTarget]struct{}, len(a.lastSeen))
	for target := range a.lastSeen {
		set[target] = struct{}{}
	}
	return set
}

func (a *ActivityTracker) seed(ctx context.Context) ([]ports.WarmTarget, error) {
	rows, err := a.fetcher.Select(ctx, ports.Query{
		Table:   "project_members",
		Columns: "project_id, user_id",
		OrderBy: "joined_at",
		Desc:    true,
		Limit:   a.seedLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("select project members: %w", err)
	}

	targets := make([]ports.WarmTarget, 0, len(rows))
	for _, row := range rows {
		target := ports.WarmTarget{
			ProjectID: stringField(row, "project_id"),
			UserID:    stringField(row, "user_id"),
		}
		if target.ProjectID == "" {
			continue
		}
		targets = append(targets, target)
	}
	return targets, nil
}

func stringField(row ports.Row, key string) string {
	switch v := row[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
