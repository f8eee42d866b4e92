// Package models holds the schemas the gravel CLI operates on.
package models

import "github.com/marshallshelly/gravel/pkg/schema"

// User is an account.
var User = schema.MustDefine("User",
	schema.StringField("id", schema.PrimaryKey(), schema.DDL("varchar(50)"), schema.DefaultFunc(NextID)),
	schema.StringField("name", schema.DDL("varchar(50)")),
	schema.StringField("password", schema.DDL("varchar(50)")),
	schema.IntegerField("type", schema.Default(int64(0))),
	schema.StringField("email", schema.DDL("varchar(50)")),
	schema.StringField("image", schema.DDL("varchar(500)")),
	schema.FloatField("created_at", schema.DefaultFunc(Now)),
)

// Blog is a post written by a user.
var Blog = schema.MustDefine("Blog",
	schema.StringField("id", schema.PrimaryKey(), schema.DDL("varchar(50)"), schema.DefaultFunc(NextID)),
	schema.StringField("user_id", schema.DDL("varchar(50)")),
	schema.StringField("name", schema.DDL("varchar(50)")),
	schema.StringField("summary", schema.DDL("varchar(200)")),
	schema.TextField("content"),
	schema.FloatField("created_at", schema.DefaultFunc(Now)),
)

// Comment is a reply to a blog.
var Comment = schema.MustDefine("Comment",
	schema.StringField("id", schema.PrimaryKey(), schema.DDL("varchar(50)"), schema.DefaultFunc(NextID)),
	schema.StringField("blog_id", schema.DDL("varchar(50)")),
	schema.StringField("user_id", schema.DDL("varchar(50)")),
	schema.TextField("content"),
	schema.FloatField("created_at", schema.DefaultFunc(Now)),
)

// UserRecord is the typed form of a User row.
type UserRecord struct {
	ID        string  `db:"id,omitempty"`
	Name      string  `db:"name"`
	Password  string  `db:"password"`
	Type      int64   `db:"type"`
	Email     string  `db:"email,omitempty"`
	Image     string  `db:"image,omitempty"`
	CreatedAt float64 `db:"created_at,omitempty"`
}

// BlogRecord is the typed form of a Blog row.
type BlogRecord struct {
	ID        string  `db:"id,omitempty"`
	UserID    string  `db:"user_id"`
	Name      string  `db:"name"`
	Summary   string  `db:"summary"`
	Content   string  `db:"content"`
	CreatedAt float64 `db:"created_at,omitempty"`
}

// CommentRecord is the typed form of a Comment row.
type CommentRecord struct {
	ID        string  `db:"id,omitempty"`
	BlogID    string  `db:"blog_id"`
	UserID    string  `db:"user_id"`
	Content   string  `db:"content"`
	CreatedAt float64 `db:"created_at,omitempty"`
}
