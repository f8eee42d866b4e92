package model

import (
	"fmt"
	"strings"
)

// QueryOption narrows FindAll and Count.
type QueryOption func(*query)

type query struct {
	where   []string
	args    []any
	orderBy []string
	limit   int
	offset  int
	err     error
}

// Where adds a condition written with ? markers. Multiple conditions are ANDed.
func Where(clause string, args ...any) QueryOption {
	return func(q *query) {
		q.where = append(q.where, clause)
		q.args = append(q.args, args...)
	}
}

// OrderBy appends an ORDER BY expression such as "`created_at` desc".
func OrderBy(expr string) QueryOption {
	return func(q *query) {
		q.orderBy = append(q.orderBy, expr)
	}
}

// Limit caps the number of rows returned.
func Limit(n int) QueryOption {
	return func(q *query) {
		if n < 0 {
			q.err = fmt.Errorf("invalid limit: %d", n)
			return
		}
		q.limit = n
	}
}

// Offset skips the first n rows. It needs Limit.
func Offset(n int) QueryOption {
	return func(q *query) {
		if n < 0 {
			q.err = fmt.Errorf("invalid offset: %d", n)
			return
		}
		q.offset = n
	}
}

func newQuery(opts []QueryOption) (*query, error) {
	q := &query{}
	for _, opt := range opts {
		opt(q)
	}
	if q.err != nil {
		return nil, q.err
	}
	if q.offset > 0 && q.limit == 0 {
		return nil, fmt.Errorf("offset %d requires a limit", q.offset)
	}
	return q, nil
}

// build appends the clauses to base. Ordering and paging are only added for row
// selects.
func (q *query) build(base string, paging bool) (string, []any) {
	var sql strings.Builder
	args := append([]any(nil), q.args...)

	sql.WriteString(base)

	if len(q.where) > 0 {
		sql.WriteString(" where ")
		if len(q.where) == 1 {
			sql.WriteString(q.where[0])
		} else {
			sql.WriteString("(")
			sql.WriteString(strings.Join(q.where, ") and ("))
			sql.WriteString(")")
		}
	}

	if !paging {
		return sql.String(), args
	}

	if len(q.orderBy) > 0 {
		sql.WriteString(" order by ")
		sql.WriteString(strings.Join(q.orderBy, ", "))
	}

	if q.limit > 0 {
		sql.WriteString(" limit ?")
		args = append(args, q.limit)
		if q.offset > 0 {
			sql.WriteString(" offset ?")
			args = append(args, q.offset)
		}
	}

	return sql.String(), args
}
