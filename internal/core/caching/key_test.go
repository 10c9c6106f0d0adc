package caching

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"synergyai.app/internal/adapters/external"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		args     Args
		expected string
	}{
		{
			name:     "Global",
			opts:     Options{Name: "valuation_templates", KeyPrefix: "synergy", Global: true},
			args:     Args{UserID: "U1", ProjectID: "P1"},
			expected: "synergy:valuation_templates:global",
		},
		{
			name:     "UserScoped",
			opts:     Options{Name: "projects", KeyPrefix: "synergy"},
			args:     Args{UserID: "U1"},
			expected: "synergy:projects:user_id:U1",
		},
		{
			name:     "UserThenProject",
			opts:     Options{Name: "risk_profile", KeyPrefix: "synergy"},
			args:     Args{ProjectID: "P1", UserID: "U1"},
			expected: "synergy:risk_profile:user_id:U1:project_id:P1",
		},
		{
			name: "ExtrasInWhitelistOrder",
			opts: Options{Name: "company_search", KeyPrefix: "synergy"},
			args: Args{Extra: map[string]string{
				"hq_state": "CA",
				"query":    "acme",
				"sector":   "tech",
			}},
			expected: "synergy:company_search:query:acme:sector:tech:hq_state:CA",
		},
		{
			name: "ExtrasOutsideWhitelistIgnored",
			opts: Options{Name: "documents", KeyPrefix: "synergy"},
			args: Args{ProjectID: "P1", Extra: map[string]string{
				"limit":       "10",
				"document_id": "D9",
			}},
			expected: "synergy:documents:project_id:P1:document_id:D9",
		},
		{
			name:     "EmptyExtraValueSkipped",
			opts:     Options{Name: "company_search", KeyPrefix: "synergy"},
			args:     Args{Extra: map[string]string{"query": "", "sector": "tech"}},
			expected: "synergy:company_search:sector:tech",
		},
		{
			name:     "EmptyPrefix",
			opts:     Options{Name: "tasks"},
			args:     Args{ProjectID: "P1"},
			expected: "tasks:project_id:P1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Key(tt.opts, tt.args))
		})
	}
}

func TestKey_StableAcrossExtraMapOrder(t *testing.T) {
	opts := Options{Name: "company_search", KeyPrefix: "synergy"}
	first := Key(opts, Args{Extra: map[string]string{"query": "a", "sector": "b", "hq_state": "c"}})

	for i := 0; i < 20; i++ {
		args := Args{}.With("hq_state", "c").With("sector", "b").With("query", "a")
		assert.Equal(t, first, Key(opts, args))
	}
}

func TestArgs_WithDoesNotMutate(t *testing.T) {
	base := Args{Extra: map[string]string{"query": "a"}}
	derived := base.With("sector", "b")

	assert.Len(t, base.Extra, 1)
	assert.Len(t, derived.Extra, 2)
}

func TestOptions_EffectiveTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, Options{}.EffectiveTTL())
	assert.Equal(t, time.Duration(0), Options{TTL: NoExpiry}.EffectiveTTL())
	assert.Equal(t, 3*time.Minute, Options{TTL: 3 * time.Minute}.EffectiveTTL())
}

func TestSegmentMatch(t *testing.T) {
	tests := []struct {
		key     string
		segment string
		want    bool
	}{
		{"synergy:team:project_id:P1", "project_id:P1", true},
		{"synergy:team:user_id:U1:project_id:P1:document_id:D", "project_id:P1", true},
		{"project_id:P1:a", "project_id:P1", true},
		{"project_id:P1", "project_id:P1", true},
		{"synergy:team:project_id:P10", "project_id:P1", false},
		{"synergy:team:project_id:P10:x", "project_id:P1", false},
		{"synergy:team:xproject_id:P1", "project_id:P1", false},
		{"synergy:team", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, SegmentMatch(tt.key, tt.segment))
		})
	}
}

func TestInvalidateSegment(t *testing.T) {
	store := external.NewMemoryCacheStore()
	ctx := context.Background()

	keys := []string{
		"synergy:team:project_id:P1",
		"synergy:alerts:user_id:U1:project_id:P1",
		"synergy:team:project_id:P10",
		"synergy:projects:user_id:U1",
	}
	for _, key := range keys {
		require.NoError(t, store.Set(ctx, key, []byte("1"), time.Minute))
	}

	removed, err := InvalidateSegment(ctx, store, ProjectSegment("P1"))
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	remaining, err := store.Keys(ctx, "")
	require.NoError(t, err)
	sort.Strings(remaining)
	assert.Equal(t, []string{"synergy:projects:user_id:U1", "synergy:team:project_id:P10"}, remaining)
}
