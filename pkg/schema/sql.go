package schema

import (
	"strings"
)

// quote wraps an identifier in backticks. Statements are rebound to the engine's
// quoting at execution time.
func quote(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// Quote is the exported form of quote, for callers building WHERE clauses by hand.
func Quote(name string) string {
	return quote(name)
}

func buildCreateTable(s *Schema) string {
	var sql strings.Builder

	sql.WriteString("CREATE TABLE IF NOT EXISTS ")
	sql.WriteString(quote(s.table))
	sql.WriteString("(\n")

	sql.WriteString("   ")
	sql.WriteString(quote(s.primaryKey.Name))
	sql.WriteString(" ")
	sql.WriteString(s.primaryKey.ColumnType)
	sql.WriteString(",\n")

	for _, f := range s.fields {
		sql.WriteString("   ")
		sql.WriteString(quote(f.Name))
		sql.WriteString(" ")
		sql.WriteString(f.ColumnType)
		sql.WriteString(",\n")
	}

	sql.WriteString("   PRIMARY KEY ( ")
	sql.WriteString(quote(s.primaryKey.Name))
	sql.WriteString(" )\n);")

	return sql.String()
}

func buildDropTable(s *Schema) string {
	return "DROP TABLE IF EXISTS " + quote(s.table)
}

func buildSelect(s *Schema) string {
	cols := make([]string, 0, len(s.fields)+1)
	for _, name := range s.Columns() {
		cols = append(cols, quote(name))
	}
	return "select " + strings.Join(cols, ", ") + " from " + quote(s.table)
}

func buildInsert(s *Schema) string {
	cols := make([]string, 0, len(s.fields)+1)
	for _, f := range s.fields {
		cols = append(cols, quote(f.Name))
	}
	cols = append(cols, quote(s.primaryKey.Name))

	return "insert into " + quote(s.table) +
		" (" + strings.Join(cols, ", ") + ") values (" + placeholders(len(cols)) + ")"
}

func buildUpdate(s *Schema) string {
	sets := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		sets = append(sets, quote(f.Name)+" = ?")
	}

	var sql strings.Builder
	sql.WriteString("update ")
	sql.WriteString(quote(s.table))
	sql.WriteString(" set ")
	if len(sets) == 0 {
		// Nothing but the key: keep the statement valid and still match one row.
		sets = append(sets, quote(s.primaryKey.Name)+" = "+quote(s.primaryKey.Name))
	}
	sql.WriteString(strings.Join(sets, ", "))
	sql.WriteString(" where ")
	sql.WriteString(quote(s.primaryKey.Name))
	sql.WriteString(" = ?")
	return sql.String()
}

func buildDelete(s *Schema) string {
	return "delete from " + quote(s.table) + " where " + quote(s.primaryKey.Name) + " = ?"
}

func buildCount(s *Schema) string {
	return "select count(" + quote(s.primaryKey.Name) + ") " + quote("_num_") + " from " + quote(s.table)
}

// placeholders returns n comma-separated ? markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
