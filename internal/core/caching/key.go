package caching

import (
	"context"
	"strings"
	"time"

	"synergyai.app/internal/ports"
)

const (
	// DefaultTTL applies when Options.TTL is zero
	DefaultTTL = 300 * time.Second
	// NoExpiry stores entries that never expire
	NoExpiry time.Duration = -1

	keySeparator = ":"
	globalSuffix = "global"
)

// ArgWhitelist is the fixed order in which extra arguments join a cache key.
// Arguments outside this list never affect the key.
var ArgWhitelist = []string{"query", "sector", "hq_state", "document_id", "chat_id"}

// Options configures a memoized producer
type Options struct {
	Name      string
	KeyPrefix string
	TTL       time.Duration
	Global    bool
}

// EffectiveTTL resolves the zero value to DefaultTTL and NoExpiry to a store ttl of zero
func (o Options) EffectiveTTL() time.Duration {
	switch {
	case o.TTL == 0:
		return DefaultTTL
	case o.TTL < 0:
		return 0
	default:
		return o.TTL
	}
}

// Args are the call arguments that participate in key derivation
type Args struct {
	UserID    string
	ProjectID string
	Extra     map[string]string
}

// With returns a copy of a carrying one more extra argument
func (a Args) With(name, value string) Args {
	extra := make(map[string]string, len(a.Extra)+1)
	for k, v := range a.Extra {
		extra[k] = v
	}
	extra[name] = value
	a.Extra = extra
	return a
}

// Key derives the cache key for opts and args. The memoization wrapper and the
// warmers both go through here, so a warmed entry is the entry a caller reads.
func Key(opts Options, args Args) string {
	if opts.Global {
		return joinParts(opts.KeyPrefix, opts.Name, globalSuffix)
	}

	parts := []string{opts.KeyPrefix, opts.Name}
	if args.UserID != "" {
		parts = append(parts, "user_id"+keySeparator+args.UserID)
	}
	if args.ProjectID != "" {
		parts = append(parts, ProjectSegment(args.ProjectID))
	}
	for _, name := range ArgWhitelist {
		if v := args.Extra[name]; v != "" {
			parts = append(parts, name+keySeparator+v)
		}
	}
	return joinParts(parts...)
}

// ProjectSegment is the key segment identifying a project
func ProjectSegment(projectID string) string {
	return "project_id" + keySeparator + projectID
}

// UserSegment is the key segment identifying a user
func UserSegment(userID string) string {
	return "user_id" + keySeparator + userID
}

// SegmentMatch reports whether segment occurs in key bounded by separators or
// the key ends, so "project_id:P1" does not match "project_id:P10".
func SegmentMatch(key, segment string) bool {
	if segment == "" {
		return false
	}
	if key == segment ||
		strings.HasPrefix(key, segment+keySeparator) ||
		strings.HasSuffix(key, keySeparator+segment) {
		return true
	}
	return strings.Contains(key, keySeparator+segment+keySeparator)
}

// InvalidateSegment deletes every key carrying segment as a whole segment and
// returns how many were removed.
func InvalidateSegment(ctx context.Context, store ports.CacheStore, segment string) (int, error) {
	keys, err := store.Keys(ctx, segment)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, key := range keys {
		if !SegmentMatch(key, segment) {
			continue
		}
		if err := store.Delete(ctx, key); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func joinParts(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, keySeparator)
}
