package ports

import "context"

// Row is a single record returned by the data source
type Row = map[string]interface{}

// FilterOp enumerates the predicates a RowFetcher must support
type FilterOp string

const (
	OpEq      FilterOp = "eq"
	OpNeq     FilterOp = "neq"
	OpIn      FilterOp = "in"
	OpILike   FilterOp = "ilike"
	OpNotNull FilterOp = "not_null"
)

// Filter is one predicate on a column
type Filter struct {
	Column string
	Op     FilterOp
	Value  interface{}
}

// Query describes a table read
type Query struct {
	Table   string
	Columns string
	Filters []Filter
	OrderBy string
	Desc    bool
	Limit   int
}

// RowFetcher defines the contract for reading rows and calling stored procedures
type RowFetcher interface {
	Select(ctx context.Context, q Query) ([]Row, error)
	Call(ctx context.Context, fn string, params map[string]interface{}) ([]Row, error)
}

// Chunk is a retrieved passage from the document index
type Chunk struct {
	Content string `json:"content"`
	Source  string `json:"source"`
	DocID   string `json:"doc_id"`
}

// Searcher defines the contract for retrieval over indexed documents
type Searcher interface {
	Search(ctx context.Context, query string, k int, allowedSources []string) ([]Chunk, error)
}

// TextGenerator defines the contract for LLM completion
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Authenticator resolves a bearer token to a user id
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}
