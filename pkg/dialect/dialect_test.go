package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name    string
		dialect *Dialect
		in      string
		want    string
	}{
		{
			name:    "mysql is unchanged",
			dialect: MySQL,
			in:      "select `id`, `name` from `user` where `id` = ?",
			want:    "select `id`, `name` from `user` where `id` = ?",
		},
		{
			name:    "sqlite is unchanged",
			dialect: SQLite,
			in:      "insert into `user` (`name`, `id`) values (?, ?)",
			want:    "insert into `user` (`name`, `id`) values (?, ?)",
		},
		{
			name:    "postgres numbers markers and requotes",
			dialect: Postgres,
			in:      "insert into `user` (`name`, `password`, `id`) values (?, ?, ?)",
			want:    `insert into "user" ("name", "password", "id") values ($1, $2, $3)`,
		},
		{
			name:    "postgres skips markers in literals",
			dialect: Postgres,
			in:      "select `id` from `user` where `name` = 'who?' and `id` = ?",
			want:    `select "id" from "user" where "name" = 'who?' and "id" = $1`,
		},
		{
			name:    "postgres keeps escaped quotes in literals",
			dialect: Postgres,
			in:      "select 'it''s ?' from `t` where `a` = ?",
			want:    `select 'it''s ?' from "t" where "a" = $1`,
		},
		{
			name:    "postgres unescapes doubled backticks",
			dialect: Postgres,
			in:      "select `we``ird` from `t`",
			want:    `select "we` + "`" + `ird" from "t"`,
		},
		{
			name:    "postgres create table",
			dialect: Postgres,
			in:      "CREATE TABLE IF NOT EXISTS `user`(\n   `id` varchar(50),\n   PRIMARY KEY ( `id` )\n);",
			want:    "CREATE TABLE IF NOT EXISTS \"user\"(\n   \"id\" varchar(50),\n   PRIMARY KEY ( \"id\" )\n);",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dialect.Rebind(tt.in))
		})
	}
}

func TestCountPlaceholders(t *testing.T) {
	tests := []struct {
		name    string
		dialect *Dialect
		query   string
		want    int
	}{
		{"insert", MySQL, "insert into `t` (`a`, `b`, `c`) values (?, ?, ?)", 3},
		{"quoted markers", MySQL, "select `a?` from `t` where `b` = '?' and `c` = ?", 1},
		{"no markers", MySQL, "select 1", 0},
		{"doubled quote", SQLite, "select `a` from `t` where `b` = 'it''s ?' and `c` = ?", 1},
		{"backslash escape", MySQL, "select `a` from `t` where `name` = 'it\\'s' and `id` = ?", 1},
		{"escaped backslash", MySQL, "select `a` from `t` where `b` = 'c:\\\\' and `id` = ?", 1},
		{"backslash is literal", Postgres, "select `a` from `t` where `b` = 'c:\\' and `id` = ?", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dialect.CountPlaceholders(tt.query))
		})
	}
}

func TestRebind_BackslashEscape(t *testing.T) {
	d := &Dialect{Name: "escaping", Placeholder: PlaceholderDollar, BackslashEscapes: true}

	got := d.Rebind("select `a` from `t` where `b` = 'it\\'s ?' and `c` = ?")
	assert.Equal(t, "select `a` from `t` where `b` = 'it\\'s ?' and `c` = $1", got)
}

func TestLookup(t *testing.T) {
	d, err := Lookup("MySQL")
	require.NoError(t, err)
	assert.Same(t, MySQL, d)

	d, err = Lookup("postgresql")
	require.NoError(t, err)
	assert.Equal(t, "pgx", d.DriverName)

	_, err = Lookup("oracle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available")
}

func TestRegister(t *testing.T) {
	custom := &Dialect{Name: "tidb", DriverName: "mysql", DefaultPort: 4000}
	Register("TiDB", custom)

	d, ok := Get("tidb")
	require.True(t, ok)
	assert.Same(t, custom, d)
	assert.Contains(t, Names(), "tidb")
}

func TestFormatPlaceholder(t *testing.T) {
	assert.Equal(t, "?", MySQL.FormatPlaceholder(3))
	assert.Equal(t, "$3", Postgres.FormatPlaceholder(3))
	assert.Equal(t, `"user"`, Postgres.QuoteIdentifier("user"))
	assert.Equal(t, "`user`", MySQL.QuoteIdentifier("user"))
}
