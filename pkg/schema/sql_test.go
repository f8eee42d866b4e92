package schema

import (
	"strings"
	"testing"
)

func TestSchema_CreateSQL(t *testing.T) {
	s := MustDefine("User", userFields()...)

	want := "CREATE TABLE IF NOT EXISTS `user`(\n" +
		"   `id` varchar(50),\n" +
		"   `name` varchar(100),\n" +
		"   `password` varchar(100),\n" +
		"   PRIMARY KEY ( `id` )\n" +
		");"

	if got := s.CreateSQL(); got != want {
		t.Errorf("CreateSQL() =\n%s\nwant\n%s", got, want)
	}
}

func TestSchema_CreateSQLColumnCount(t *testing.T) {
	for n := 0; n <= 6; n++ {
		fields := []Field{IntegerField("id", PrimaryKey())}
		for i := 0; i < n; i++ {
			fields = append(fields, TextField("c"+string(rune('a'+i))))
		}

		s := MustDefine("Wide", fields...)
		sql := s.CreateSQL()

		if c := strings.Count(sql, "PRIMARY KEY"); c != 1 {
			t.Errorf("n=%d: expected one PRIMARY KEY clause, got %d", n, c)
		}

		// Every column definition is an indented line ending with a comma.
		defs := 0
		for _, line := range strings.Split(sql, "\n") {
			if strings.HasPrefix(line, "   `") && strings.HasSuffix(line, ",") {
				defs++
			}
		}
		if defs != n+1 {
			t.Errorf("n=%d: expected %d column definitions, got %d", n, n+1, defs)
		}
	}
}

func TestSchema_StatementTemplates(t *testing.T) {
	s := MustDefine("User", userFields()...)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"select", s.SelectSQL(), "select `id`, `name`, `password` from `user`"},
		{"select by key", s.SelectByKeySQL(), "select `id`, `name`, `password` from `user` where `id` = ?"},
		{"insert", s.InsertSQL(), "insert into `user` (`name`, `password`, `id`) values (?, ?, ?)"},
		{"update", s.UpdateSQL(), "update `user` set `name` = ?, `password` = ? where `id` = ?"},
		{"delete", s.DeleteSQL(), "delete from `user` where `id` = ?"},
		{"drop", s.DropSQL(), "DROP TABLE IF EXISTS `user`"},
		{"count", s.CountSQL(), "select count(`id`) `_num_` from `user`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestSchema_InsertPlaceholderCount(t *testing.T) {
	s := MustDefine("Blog",
		StringField("id", PrimaryKey()),
		StringField("user_id"),
		StringField("name"),
		StringField("summary", DDL("varchar(200)")),
		TextField("content"),
		FloatField("created_at"),
	)

	if c := strings.Count(s.InsertSQL(), "?"); c != len(s.Fields())+1 {
		t.Errorf("expected %d markers, got %d in %s", len(s.Fields())+1, c, s.InsertSQL())
	}
}

func TestSchema_KeyOnly(t *testing.T) {
	s := MustDefine("Tag", StringField("id", PrimaryKey()))

	if got := s.SelectSQL(); got != "select `id` from `tag`" {
		t.Errorf("SelectSQL() = %q", got)
	}
	if got := s.InsertSQL(); got != "insert into `tag` (`id`) values (?)" {
		t.Errorf("InsertSQL() = %q", got)
	}
	if got := s.UpdateSQL(); got != "update `tag` set `id` = `id` where `id` = ?" {
		t.Errorf("UpdateSQL() = %q", got)
	}
}

func TestQuote(t *testing.T) {
	if got := Quote("name"); got != "`name`" {
		t.Errorf("Quote(name) = %q", got)
	}
	if got := Quote("we`ird"); got != "`we``ird`" {
		t.Errorf("Quote(we`ird) = %q", got)
	}
}
