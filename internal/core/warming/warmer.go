package warming

import (
	"context"

	"synergyai.app/internal/core/caching"
	"synergyai.app/internal/ports"
)

// Scope says which parts of a target a warmer's key is built from
type Scope string

const (
	ScopeProject Scope = "project"
	ScopeUser    Scope = "user"
	ScopeGlobal  Scope = "global"
)

// Warmer refreshes one cached entity for a target. Warm makes a single
// attempt; retries and fallbacks belong to the Orchestrator.
type Warmer interface {
	Entity() string
	Scope() Scope
	Key(target ports.WarmTarget) string
	Warm(ctx context.Context, target ports.WarmTarget) error
	HasDefault() bool
	WriteDefault(ctx context.Context, target ports.WarmTarget) error
}

// ForProject warms a project-scoped entry. The user id joins the key when the
// target carries one, exactly as it does for an HTTP request.
func ForProject(entry caching.Entry) Warmer {
	return &entryWarmer{entry: entry, scope: ScopeProject}
}

// ForUser warms an entry keyed by user only
func ForUser(entry caching.Entry) Warmer {
	return &entryWarmer{entry: entry, scope: ScopeUser}
}

// ForGlobal warms an entry that ignores the target entirely
func ForGlobal(entry caching.Entry) Warmer {
	return &entryWarmer{entry: entry, scope: ScopeGlobal}
}

type entryWarmer struct {
	entry caching.Entry
	scope Scope
}

func (w *entryWarmer) Entity() string { return w.entry.Name() }

func (w *entryWarmer) Scope() Scope { return w.scope }

func (w *entryWarmer) Key(target ports.WarmTarget) string {
	return w.entry.Key(w.args(target))
}

func (w *entryWarmer) Warm(ctx context.Context, target ports.WarmTarget) error {
	return w.entry.Warm(ctx, w.args(target))
}

func (w *entryWarmer) HasDefault() bool { return w.entry.HasDefault() }

func (w *entryWarmer) WriteDefault(ctx context.Context, target ports.WarmTarget) error {
	return w.entry.WriteDefault(ctx, w.args(target))
}

func (w *entryWarmer) args(target ports.WarmTarget) caching.Args {
	switch w.scope {
	case ScopeProject:
		return caching.Args{ProjectID: target.ProjectID, UserID: target.UserID}
	case ScopeUser:
		return caching.Args{UserID: target.UserID}
	default:
		return caching.Args{}
	}
}

// accepts reports whether target carries the ids the warmer's scope needs
func accepts(w Warmer, target ports.WarmTarget) bool {
	switch w.Scope() {
	case ScopeProject:
		return target.ProjectID != ""
	case ScopeUser:
		return target.UserID != ""
	default:
		return true
	}
}
