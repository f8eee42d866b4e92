package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := Out
	Out = &buf
	t.Cleanup(func() { Out = prev })
	return &buf
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "NULL"},
		{[]byte("abc"), "abc"},
		{"abc", "abc"},
		{int64(42), "42"},
		{1.5, "1.500000"},
		{true, "true"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in))
	}
}

func TestRows(t *testing.T) {
	buf := capture(t)

	Rows([]string{"id", "name"}, []map[string]any{
		{"id": "1", "name": "zhaojiuhui"},
		{"id": "2", "name": nil},
	})

	out := buf.String()
	assert.Contains(t, out, "zhaojiuhui")
	assert.Contains(t, out, "NULL")
	assert.Contains(t, out, "(2 rows)")
}

func TestRows_Empty(t *testing.T) {
	buf := capture(t)

	Rows([]string{"id"}, nil)
	assert.Contains(t, buf.String(), "(0 rows)")
}

func TestRecord(t *testing.T) {
	buf := capture(t)

	Record([]string{"id", "password"}, map[string]any{"id": "1", "password": "111111"})

	out := buf.String()
	assert.Contains(t, out, "field")
	assert.Contains(t, out, "password")
	assert.Contains(t, out, "111111")
}

func TestJSON(t *testing.T) {
	buf := capture(t)

	assert.NoError(t, JSON(map[string]any{"id": "1"}))
	assert.JSONEq(t, `{"id":"1"}`, buf.String())
}
