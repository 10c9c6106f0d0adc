package external

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
	"synergyai.app/internal/config"
	"synergyai.app/internal/ports"
	"synergyai.app/pkg/errors"
)

// restClient is the part of supabase.Client the row fetcher uses
type restClient interface {
	From(table string) *postgrest.QueryBuilder
	Rpc(name, count string, rpcBody interface{}) string
}

// SupabaseRowFetcher implements the RowFetcher port over the Supabase REST API
type SupabaseRowFetcher struct {
	client restClient
}

// NewSupabaseClient builds the shared client used for rows and for auth
func NewSupabaseClient(cfg *config.SupabaseConfig) (*supabase.Client, error) {
	client, err := supabase.NewClient(cfg.URL, cfg.ServiceRoleKey, nil)
	if err != nil {
		return nil, errors.NewConfigurationError("create supabase client", err)
	}
	return client, nil
}

func NewSupabaseRowFetcher(client *supabase.Client) *SupabaseRowFetcher {
	return &SupabaseRowFetcher{client: client}
}

func (s *SupabaseRowFetcher) Select(ctx context.Context, q ports.Query) ([]ports.Row, error) {
	if q.Table == "" {
		return nil, errors.NewValidationError("table is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	columns := q.Columns
	if columns == "" {
		columns = "*"
	}
	fb := s.client.From(q.Table).Select(columns, "", false)
	for _, f := range q.Filters {
		switch f.Op {
		case ports.OpEq:
			fb = fb.Eq(f.Column, fmt.Sprint(f.Value))
		case ports.OpNeq:
			fb = fb.Neq(f.Column, fmt.Sprint(f.Value))
		case ports.OpIn:
			fb = fb.In(f.Column, stringValues(f.Value))
		case ports.OpILike:
			fb = fb.Ilike(f.Column, fmt.Sprint(f.Value))
		case ports.OpNotNull:
			fb = fb.Not(f.Column, "is", "null")
		default:
			return nil, errors.NewValidationError(fmt.Sprintf("unsupported filter operator %q", f.Op))
		}
	}
	if q.OrderBy != "" {
		fb = fb.Order(q.OrderBy, &postgrest.OrderOpts{Ascending: !q.Desc})
	}
	if q.Limit > 0 {
		fb = fb.Limit(q.Limit, "")
	}

	data, _, err := fb.Execute()
	if err != nil {
		return nil, errors.NewDatabaseError(fmt.Sprintf("select from %s", q.Table), err)
	}
	return decodeRows(data)
}

// Call invokes a Postgres function through /rpc. The client reports failures
// as the response body, so an error object in the result is turned back into
// an error here.
func (s *SupabaseRowFetcher) Call(ctx context.Context, fn string, params map[string]interface{}) ([]ports.Row, error) {
	if fn == "" {
		return nil, errors.NewValidationError("function name is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if params == nil {
		params = map[string]interface{}{}
	}

	result := strings.TrimSpace(s.client.Rpc(fn, "", params))
	if result == "" {
		return nil, errors.NewDatabaseError(fmt.Sprintf("call %s", fn), fmt.Errorf("empty response"))
	}

	if strings.HasPrefix(result, "{") {
		var obj ports.Row
		if err := json.Unmarshal([]byte(result), &obj); err != nil {
			return nil, errors.NewDatabaseError(fmt.Sprintf("decode %s result", fn), err)
		}
		if msg, ok := obj["message"].(string); ok && obj["code"] != nil {
			return nil, errors.NewDatabaseError(fmt.Sprintf("call %s", fn), fmt.Errorf("%v: %s", obj["code"], msg))
		}
		return []ports.Row{obj}, nil
	}

	rows, err := decodeRows([]byte(result))
	if err != nil {
		return nil, errors.NewDatabaseError(fmt.Sprintf("decode %s result", fn), err)
	}
	return rows, nil
}

func decodeRows(data []byte) ([]ports.Row, error) {
	rows := []ports.Row{}
	if len(data) == 0 || string(data) == "null" {
		return rows, nil
	}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.NewDatabaseError("decode rows", err)
	}
	return rows, nil
}

func stringValues(v interface{}) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return []string{fmt.Sprint(v)}
	}
}
