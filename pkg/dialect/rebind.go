package dialect

import "strings"

// Rebind rewrites a portable statement for the dialect: every ? marker outside a
// literal becomes the engine's marker and every backtick-quoted identifier is
// re-quoted. Single- and double-quoted sections are copied unchanged.
func (d *Dialect) Rebind(query string) string {
	if d.Placeholder == PlaceholderQuestion && d.QuoteIdent == nil {
		return query
	}

	var out strings.Builder
	out.Grow(len(query) + 16)

	n := 0
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch c {
		case '\'', '"':
			end := literalEnd(query, i, c, d.BackslashEscapes)
			out.WriteString(query[i:end])
			i = end - 1
		case '`':
			name, end := backtickIdent(query, i)
			out.WriteString(d.QuoteIdentifier(name))
			i = end - 1
		case '?':
			n++
			out.WriteString(d.FormatPlaceholder(n))
		default:
			out.WriteByte(c)
		}
	}

	return out.String()
}

// literalEnd returns the index just past the literal opened by quote at start.
// A doubled quote character is an escape, and so is a backslash when backslash is
// set. An unterminated literal runs to the end.
func literalEnd(s string, start int, q byte, backslash bool) int {
	for i := start + 1; i < len(s); i++ {
		if backslash && s[i] == '\\' {
			i++
			continue
		}
		if s[i] == q {
			if i+1 < len(s) && s[i+1] == q {
				i++
				continue
			}
			return i + 1
		}
	}
	return len(s)
}

// backtickIdent reads the identifier opened at start and returns it unescaped along
// with the index just past the closing backtick.
func backtickIdent(s string, start int) (string, int) {
	var name strings.Builder
	for i := start + 1; i < len(s); i++ {
		if s[i] == '`' {
			if i+1 < len(s) && s[i+1] == '`' {
				name.WriteByte('`')
				i++
				continue
			}
			return name.String(), i + 1
		}
		name.WriteByte(s[i])
	}
	return name.String(), len(s)
}

// CountPlaceholders returns the number of ? markers outside literals and identifiers,
// reading literals by the dialect's escaping rules.
func (d *Dialect) CountPlaceholders(query string) int {
	n := 0
	for i := 0; i < len(query); i++ {
		switch c := query[i]; c {
		case '\'', '"':
			i = literalEnd(query, i, c, d.BackslashEscapes) - 1
		case '`':
			_, end := backtickIdent(query, i)
			i = end - 1
		case '?':
			n++
		}
	}
	return n
}
