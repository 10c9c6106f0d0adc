package warming

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"synergyai.app/internal/ports"
	"synergyai.app/pkg/errors"
)

const (
	defaultCriticalTimeout = 5 * time.Second
	batchCritical          = "critical"
	batchAll               = "all"
	batchTargeted          = "targeted"
)

// Orchestrator runs warmers in batches. Every warmer failure is isolated in
// its WarmResult; a batch itself never fails.
type Orchestrator struct {
	registry *Registry
	critical []Warmer
	cfg      ports.WarmingConfig
	logger   ports.Logger
	metrics  ports.WarmMetrics
	tracer   trace.Tracer
	inflight sync.WaitGroup
}

type OrchestratorDependencies struct {
	Registry *Registry
	Config   ports.ConfigProvider
	Logger   ports.Logger
	Metrics  ports.WarmMetrics
	// Tracing defaults to the global provider
	Tracing trace.TracerProvider
}

func NewOrchestrator(deps OrchestratorDependencies) (*Orchestrator, error) {
	if deps.Registry == nil {
		return nil, errors.NewValidationError("warmer registry is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("warm metrics are required")
	}

	cfg := deps.Config.GetWarmingConfig()
	if cfg.CriticalTimeout <= 0 {
		cfg.CriticalTimeout = defaultCriticalTimeout
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if len(cfg.CriticalEntities) == 0 {
		return nil, errors.NewConfigurationError("critical entity list is empty", nil)
	}

	critical := make([]Warmer, 0, len(cfg.CriticalEntities))
	for _, name := range cfg.CriticalEntities {
		w, ok := deps.Registry.Get(name)
		if !ok {
			return nil, errors.NewConfigurationError(fmt.Sprintf("critical entity %s has no warmer", name), nil)
		}
		if w.Scope() != ScopeProject {
			return nil, errors.NewConfigurationError(fmt.Sprintf("critical entity %s is not project scoped", name), nil)
		}
		critical = append(critical, w)
	}

	tp := deps.Tracing
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &Orchestrator{
		registry: deps.Registry,
		critical: critical,
		cfg:      cfg,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
		tracer:   tp.Tracer("synergyai.app/internal/core/warming"),
	}, nil
}

// WarmCritical warms the critical entities for a project concurrently and
// waits at most the critical timeout. Warmers still running when the wait
// ends keep going on a context detached from ctx.
func (o *Orchestrator) WarmCritical(ctx context.Context, target ports.WarmTarget) BatchReport {
	start := time.Now()
	report := BatchReport{ID: uuid.New(), Target: target}

	detached := context.WithoutCancel(ctx)
	results := make(chan WarmResult, len(o.critical))
	for _, w := range o.critical {
		o.inflight.Add(1)
		go func(w Warmer) {
			defer o.inflight.Done()
			results <- o.warmChecked(detached, w, target)
		}(w)
	}

	timer := time.NewTimer(o.cfg.CriticalTimeout)
	defer timer.Stop()

collect:
	for len(report.Results) < len(o.critical) {
		select {
		case res := <-results:
			report.Results = append(report.Results, res)
		case <-timer.C:
			report.TimedOut = true
			break collect
		case <-ctx.Done():
			report.TimedOut = true
			break collect
		}
	}
	report.Duration = time.Since(start)

	if report.TimedOut {
		o.logger.Warn("Critical warm timed out, continuing in background",
			ports.F("batch_id", report.ID),
			ports.F("project_id", target.ProjectID),
			ports.F("pending", len(o.critical)-len(report.Results)),
			ports.F("timeout", o.cfg.CriticalTimeout))
	}
	o.logReport(batchCritical, report)
	return report
}

// WarmAll warms every user and project entity the target has ids for
func (o *Orchestrator) WarmAll(ctx context.Context, target ports.WarmTarget) BatchReport {
	var warmers []Warmer
	for _, w := range o.registry.ByScope(ScopeUser, ScopeProject) {
		if accepts(w, target) {
			warmers = append(warmers, w)
		}
	}
	return o.run(ctx, batchAll, uuid.New(), target, warmers, nil)
}

// WarmEntities warms the named entities. Unknown names and names whose scope
// the target cannot satisfy are reported as failed results.
func (o *Orchestrator) WarmEntities(ctx context.Context, target ports.WarmTarget, names []string) BatchReport {
	return o.warmEntities(ctx, uuid.New(), target, names)
}

// WarmAllAsync starts WarmAll in the background and returns its batch id
func (o *Orchestrator) WarmAllAsync(target ports.WarmTarget) uuid.UUID {
	id := uuid.New()
	o.goDetached(func(ctx context.Context) {
		var warmers []Warmer
		for _, w := range o.registry.ByScope(ScopeUser, ScopeProject) {
			if accepts(w, target) {
				warmers = append(warmers, w)
			}
		}
		o.run(ctx, batchAll, id, target, warmers, nil)
	})
	return id
}

// WarmEntitiesAsync starts WarmEntities in the background and returns its batch id
func (o *Orchestrator) WarmEntitiesAsync(target ports.WarmTarget, names []string) uuid.UUID {
	id := uuid.New()
	o.goDetached(func(ctx context.Context) {
		o.warmEntities(ctx, id, target, names)
	})
	return id
}

// Wait blocks until every background warm has finished or ctx is done
func (o *Orchestrator) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		o.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *Orchestrator) goDetached(fn func(ctx context.Context)) {
	o.inflight.Add(1)
	go func() {
		defer o.inflight.Done()
		fn(context.Background())
	}()
}

func (o *Orchestrator) warmEntities(ctx context.Context, id uuid.UUID, target ports.WarmTarget, names []string) BatchReport {
	var (
		warmers  []Warmer
		rejected []WarmResult
	)
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		w, ok := o.registry.Get(name)
		if !ok {
			rejected = append(rejected, WarmResult{Entity: name, Err: &WarmError{
				Entity: name, Target: target,
				Err: errors.NewValidationError(fmt.Sprintf("unknown entity %s", name)),
			}})
			continue
		}
		warmers = append(warmers, w)
	}
	return o.run(ctx, batchTargeted, id, target, warmers, rejected)
}

func (o *Orchestrator) run(ctx context.Context, kind string, id uuid.UUID, target ports.WarmTarget, warmers []Warmer, rejected []WarmResult) BatchReport {
	start := time.Now()
	results := make([]WarmResult, len(warmers))

	var g errgroup.Group
	g.SetLimit(o.cfg.Concurrency)
	for i, w := range warmers {
		i, w := i, w
		g.Go(func() error {
			results[i] = o.warmChecked(ctx, w, target)
			return nil
		})
	}
	_ = g.Wait()

	report := BatchReport{
		ID:       id,
		Target:   target,
		Results:  append(results, rejected...),
		Duration: time.Since(start),
	}
	o.logReport(kind, report)
	return report
}

func (o *Orchestrator) warmChecked(ctx context.Context, w Warmer, target ports.WarmTarget) WarmResult {
	if !accepts(w, target) {
		return WarmResult{Entity: w.Entity(), Err: &WarmError{
			Entity: w.Entity(), Target: target,
			Err: errors.NewValidationError(fmt.Sprintf("%s warmer needs a %s id", w.Entity(), w.Scope())),
		}}
	}
	return o.warmOne(ctx, w, target)
}

// warmOne retries with linear backoff, then falls back to the entity default
// when it has one.
func (o *Orchestrator) warmOne(ctx context.Context, w Warmer, target ports.WarmTarget) (res WarmResult) {
	start := time.Now()
	res = WarmResult{Entity: w.Entity(), Key: w.Key(target)}
	ctx, span := o.tracer.Start(ctx, "warming.Warm", trace.WithAttributes(
		attribute.String("warm.entity", res.Entity),
		attribute.String("warm.project_id", target.ProjectID),
		attribute.String("warm.user_id", target.UserID),
	))
	defer func() {
		res.Duration = time.Since(start)
		o.metrics.RecordWarm(res.Entity, res.Outcome(), res.Duration)
		span.SetAttributes(attribute.Int("warm.attempts", res.Attempts), attribute.String("warm.outcome", res.Outcome()))
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, "warm failed")
		}
		span.End()
	}()

	var err error
	for attempt := 1; attempt <= o.cfg.MaxRetries+1; attempt++ {
		res.Attempts = attempt
		if err = attemptWarm(ctx, w, target); err == nil {
			return res
		}
		if attempt > o.cfg.MaxRetries {
			break
		}
		o.logger.Debug("Warm attempt failed, retrying",
			ports.F("entity", res.Entity), ports.F("attempt", attempt), ports.F("error", err))
		if waitErr := sleep(ctx, o.cfg.RetryBackoff*time.Duration(attempt)); waitErr != nil {
			break
		}
	}

	warmErr := &WarmError{Entity: res.Entity, Key: res.Key, Target: target, Attempts: res.Attempts, Err: err}
	if w.HasDefault() {
		if defErr := w.WriteDefault(ctx, target); defErr != nil {
			o.logger.Warn("Default payload could not be written",
				ports.F("entity", res.Entity), ports.F("key", res.Key), ports.F("error", defErr))
		} else {
			warmErr.FallbackWritten = true
		}
	}

	o.logger.Warn("Warm failed",
		ports.F("entity", res.Entity),
		ports.F("key", res.Key),
		ports.F("attempts", res.Attempts),
		ports.F("fallback_written", warmErr.FallbackWritten),
		ports.F("error", err))
	res.Err = warmErr
	return res
}

func attemptWarm(ctx context.Context, w Warmer, target ports.WarmTarget) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("warmer %s panicked: %v", w.Entity(), r)
		}
	}()
	return w.Warm(ctx, target)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (o *Orchestrator) logReport(kind string, report BatchReport) {
	o.logger.Info("Warm batch finished",
		ports.F("batch_id", report.ID),
		ports.F("kind", kind),
		ports.F("project_id", report.Target.ProjectID),
		ports.F("succeeded", report.Succeeded()),
		ports.F("failed", report.Failed()),
		ports.F("duration", report.Duration))
}
