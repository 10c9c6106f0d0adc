package database

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"synergyai.app/internal/config"
	"synergyai.app/internal/ports"
	"synergyai.app/pkg/errors"
	"synergyai.app/pkg/validation"
)

// Open connects to Postgres with the configured DSN
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.NewDatabaseError("connect to database", err)
	}
	return db, nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// RowFetcherAdapter implements the RowFetcher port on a direct SQL connection.
// Table, column and function names are spliced into SQL, so every one of
// them is checked with validation.IsIdentifier first.
type RowFetcherAdapter struct {
	db *gorm.DB
}

func NewRowFetcherAdapter(db *gorm.DB) *RowFetcherAdapter {
	return &RowFetcherAdapter{db: db}
}

func (r *RowFetcherAdapter) Select(ctx context.Context, q ports.Query) ([]ports.Row, error) {
	if !validation.IsIdentifier(q.Table) {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid table name %q", q.Table))
	}
	columns, err := selectList(q.Columns)
	if err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx).Table(q.Table).Select(columns)
	for _, f := range q.Filters {
		expr, err := columnExpr(f.Column)
		if err != nil {
			return nil, err
		}
		switch f.Op {
		case ports.OpEq:
			tx = tx.Where(expr+" = ?", f.Value)
		case ports.OpNeq:
			tx = tx.Where(expr+" <> ?", f.Value)
		case ports.OpIn:
			tx = tx.Where(expr+" IN ?", f.Value)
		case ports.OpILike:
			tx = tx.Where("LOWER("+expr+") LIKE LOWER(?)", f.Value)
		case ports.OpNotNull:
			tx = tx.Where(expr + " IS NOT NULL")
		default:
			return nil, errors.NewValidationError(fmt.Sprintf("unsupported filter operator %q", f.Op))
		}
	}
	if q.OrderBy != "" {
		expr, err := columnExpr(q.OrderBy)
		if err != nil {
			return nil, err
		}
		if q.Desc {
			expr += " DESC"
		}
		tx = tx.Order(expr)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	rows := []ports.Row{}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, errors.NewDatabaseError(fmt.Sprintf("select from %s", q.Table), err)
	}
	return rows, nil
}

// Call runs a set-returning function using named notation, fn(name => value)
func (r *RowFetcherAdapter) Call(ctx context.Context, fn string, params map[string]interface{}) ([]ports.Row, error) {
	if !validation.IsIdentifier(fn) {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid function name %q", fn))
	}

	names := make([]string, 0, len(params))
	for name := range params {
		if !validation.IsIdentifier(name) {
			return nil, errors.NewValidationError(fmt.Sprintf("invalid parameter name %q", name))
		}
		names = append(names, name)
	}
	sort.Strings(names)

	args := make([]string, 0, len(names))
	for _, name := range names {
		args = append(args, fmt.Sprintf("%s => @%s", name, name))
	}
	stmt := fmt.Sprintf("SELECT * FROM %s(%s)", fn, strings.Join(args, ", "))

	rows := []ports.Row{}
	if err := r.db.WithContext(ctx).Raw(stmt, params).Scan(&rows).Error; err != nil {
		return nil, errors.NewDatabaseError(fmt.Sprintf("call %s", fn), err)
	}
	return rows, nil
}

// columnExpr accepts a plain column or a json path written column->>key
func columnExpr(column string) (string, error) {
	base, key, isPath := strings.Cut(column, "->>")
	base = strings.TrimSpace(base)
	key = strings.TrimSpace(key)
	if !validation.IsIdentifier(base) || (isPath && !validation.IsIdentifier(key)) {
		return "", errors.NewValidationError(fmt.Sprintf("invalid column %q", column))
	}
	if isPath {
		return fmt.Sprintf("%s->>'%s'", base, key), nil
	}
	return base, nil
}

func selectList(columns string) (string, error) {
	columns = strings.TrimSpace(columns)
	if columns == "" || columns == "*" {
		return "*", nil
	}
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if !validation.IsIdentifier(p) {
			return "", errors.NewValidationError(fmt.Sprintf("invalid column %q", p))
		}
		parts[i] = p
	}
	return strings.Join(parts, ", "), nil
}
