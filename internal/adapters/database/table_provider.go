package database

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/entities"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/providers"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/schoolhubng/Schooladmindesign/backend/pkg/errors"
)

// TableSpec describes how one entity table is searched
type TableSpec struct {
	EntityType entities.EntityType

	// Table is the backing table name
	Table string

	// Columns are selected into the raw entity, field name = column name
	Columns []string

	// SearchColumns are matched case-insensitively against the query text
	SearchColumns []string

	// FilterColumns maps externally visible filter keys to columns.
	// Filter keys outside this map are ignored.
	FilterColumns map[string]string

	// ActiveColumn, when set, restricts matches to rows where it is true
	ActiveColumn string
}

// TableProvider implements SearchProvider over one Postgres table.
// Every entity-type provider in this package is an instance of it.
type TableProvider struct {
	client  *postgres.Client
	db      *goqu.Database
	spec    TableSpec
	timeout time.Duration
}

// NewTableProvider creates a search provider for one entity table
func NewTableProvider(client *postgres.Client, spec TableSpec, timeout time.Duration) providers.SearchProvider {
	return &TableProvider{
		client:  client,
		db:      goqu.New("postgres", client.DB()),
		spec:    spec,
		timeout: timeout,
	}
}

// EntityType identifies which entity type this provider serves
func (p *TableProvider) EntityType() entities.EntityType {
	return p.spec.EntityType
}

// Search returns at most constraints.Limit matching rows plus the
// total match count. The provider owns its own deadline: a slow query
// fails here instead of stalling the aggregation.
func (p *TableProvider) Search(ctx context.Context, queryText string, constraints providers.SearchConstraints) ([]entities.RawEntity, int, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	where := p.buildWhere(queryText, constraints.Filters)

	total, err := p.countMatches(ctx, where)
	if err != nil {
		return nil, 0, err
	}

	query, args, err := p.db.From(p.spec.Table).
		Select(p.selectColumns()...).
		Where(where...).
		Order(goqu.I("id").Asc()).
		Limit(uint(constraints.Limit)).
		ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError(fmt.Sprintf("failed to build %s search query", p.spec.Table), err)
	}

	rows, err := p.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewExternalError(fmt.Sprintf("%s search failed", p.spec.Table), err)
	}
	defer rows.Close()

	matches := []entities.RawEntity{}
	for rows.Next() {
		values := make([]interface{}, len(p.spec.Columns))
		ptrs := make([]interface{}, len(p.spec.Columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, 0, apperrors.NewExternalError(fmt.Sprintf("failed to scan %s row", p.spec.Table), err)
		}

		raw := make(entities.RawEntity, len(p.spec.Columns))
		for i, col := range p.spec.Columns {
			raw[col] = normalizeValue(values[i])
		}
		matches = append(matches, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewExternalError(fmt.Sprintf("%s search failed", p.spec.Table), err)
	}

	return matches, total, nil
}

func (p *TableProvider) buildWhere(queryText string, filters map[string]string) []goqu.Expression {
	pattern := "%" + queryText + "%"
	termConds := make([]goqu.Expression, 0, len(p.spec.SearchColumns))
	for _, col := range p.spec.SearchColumns {
		termConds = append(termConds, goqu.I(col).ILike(pattern))
	}

	where := []goqu.Expression{goqu.Or(termConds...)}
	if p.spec.ActiveColumn != "" {
		where = append(where, goqu.Ex{p.spec.ActiveColumn: true})
	}
	for key, value := range filters {
		if col, ok := p.spec.FilterColumns[key]; ok {
			where = append(where, goqu.Ex{col: value})
		}
	}
	return where
}

func (p *TableProvider) countMatches(ctx context.Context, where []goqu.Expression) (int, error) {
	query, args, err := p.db.From(p.spec.Table).
		Select(goqu.COUNT("*")).
		Where(where...).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError(fmt.Sprintf("failed to build %s count query", p.spec.Table), err)
	}

	var total int
	if err := p.client.DB().QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, apperrors.NewExternalError(fmt.Sprintf("%s count failed", p.spec.Table), err)
	}
	return total, nil
}

func (p *TableProvider) selectColumns() []interface{} {
	cols := make([]interface{}, len(p.spec.Columns))
	for i, col := range p.spec.Columns {
		cols[i] = col
	}
	return cols
}

// normalizeValue converts driver values into the scalar shapes the
// mappers and highlighter expect. lib/pq returns text columns as []byte.
func normalizeValue(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
