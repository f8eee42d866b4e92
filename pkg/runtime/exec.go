package runtime

import (
	"context"
	"fmt"
	"time"
)

// Row is one result row keyed by column name.
type Row map[string]any

// Query runs a statement that returns rows. Markers are written as ? and bound
// positionally from args. limit <= 0 returns every row.
func (db *DB) Query(ctx context.Context, query string, limit int, args ...any) ([]Row, error) {
	var rows []Row
	err := db.WithConn(ctx, func(ctx context.Context, conn *Conn) error {
		var err error
		rows, err = conn.Query(ctx, query, limit, args...)
		return err
	})
	return rows, err
}

// Exec runs a statement that returns no rows and reports the affected row count.
func (db *DB) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	var affected int64
	err := db.WithConn(ctx, func(ctx context.Context, conn *Conn) error {
		var err error
		affected, err = conn.Exec(ctx, query, args...)
		return err
	})
	return affected, err
}

// Query runs a row-returning statement on this connection.
func (c *Conn) Query(ctx context.Context, query string, limit int, args ...any) ([]Row, error) {
	stmt, err := c.prepare(query, args)
	if err != nil {
		return nil, err
	}
	sqlConn, err := c.sqlConn()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := sqlConn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, c.fail(stmt, args, start, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, c.fail(stmt, args, start, err)
	}

	var result []Row
	for (limit <= 0 || len(result) < limit) && rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, c.fail(stmt, args, start, err)
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			row[col] = normalize(values[i])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, c.fail(stmt, args, start, err)
	}

	c.db.logger.Debug("query",
		"sql", stmt,
		"args", len(args),
		"rows", len(result),
		"duration", time.Since(start),
	)
	return result, nil
}

// Exec runs a statement on this connection and reports the affected row count.
func (c *Conn) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	stmt, err := c.prepare(query, args)
	if err != nil {
		return 0, err
	}
	sqlConn, err := c.sqlConn()
	if err != nil {
		return 0, err
	}

	start := time.Now()
	result, err := sqlConn.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, c.fail(stmt, args, start, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, c.fail(stmt, args, start, err)
	}

	c.db.logger.Debug("exec",
		"sql", stmt,
		"args", len(args),
		"rows", affected,
		"duration", time.Since(start),
	)
	return affected, nil
}

// prepare checks the argument count and rebinds the statement for the dialect.
func (c *Conn) prepare(query string, args []any) (string, error) {
	if n := c.db.dialect.CountPlaceholders(query); n != len(args) {
		return "", &QueryError{
			Query: query,
			Err:   fmt.Errorf("%w: %d markers, %d arguments", ErrArgumentCount, n, len(args)),
		}
	}
	return c.db.dialect.Rebind(query), nil
}

func (c *Conn) fail(stmt string, args []any, start time.Time, err error) error {
	c.markBroken(err)
	c.db.logger.Debug("statement failed",
		"sql", stmt,
		"args", len(args),
		"duration", time.Since(start),
		"error", err,
	)
	return &QueryError{Query: stmt, Err: err}
}

// normalize converts driver byte slices into strings.
func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
