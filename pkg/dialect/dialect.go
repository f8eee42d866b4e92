// Package dialect translates the portable statement form produced by pkg/schema
// (backtick identifiers, ? markers) into what a particular SQL engine accepts.
package dialect

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
)

// PlaceholderStyle decides how ? markers are written for the engine.
type PlaceholderStyle int

const (
	// PlaceholderQuestion keeps ? markers.
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar numbers markers as $1, $2, ...
	PlaceholderDollar
)

// Dialect describes one SQL engine.
type Dialect struct {
	Name        string
	DriverName  string
	Placeholder PlaceholderStyle
	DefaultPort int

	// QuoteIdent renders an identifier. Nil keeps backtick quoting.
	QuoteIdent func(name string) string

	// Embedded engines have no host or credentials.
	Embedded bool

	// BackslashEscapes is set when a backslash escapes the next character inside a
	// string literal.
	BackslashEscapes bool
}

// Built-in dialects.
var (
	MySQL = &Dialect{
		Name:             "mysql",
		DriverName:       "mysql",
		Placeholder:      PlaceholderQuestion,
		DefaultPort:      3306,
		BackslashEscapes: true,
	}

	Postgres = &Dialect{
		Name:        "postgres",
		DriverName:  "pgx",
		Placeholder: PlaceholderDollar,
		DefaultPort: 5432,
		QuoteIdent: func(name string) string {
			return pgx.Identifier{name}.Sanitize()
		},
	}

	SQLite = &Dialect{
		Name:        "sqlite",
		DriverName:  "sqlite",
		Placeholder: PlaceholderQuestion,
		Embedded:    true,
	}
)

var (
	mu       sync.RWMutex
	dialects = map[string]*Dialect{
		"mysql":      MySQL,
		"postgres":   Postgres,
		"postgresql": Postgres,
		"sqlite":     SQLite,
		"sqlite3":    SQLite,
	}
)

// Register makes a dialect available by name.
func Register(name string, d *Dialect) {
	mu.Lock()
	defer mu.Unlock()
	dialects[strings.ToLower(name)] = d
}

// Get looks up a dialect by name, case-insensitively.
func Get(name string) (*Dialect, bool) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := dialects[strings.ToLower(name)]
	return d, ok
}

// Lookup is like Get but returns an error listing the known names.
func Lookup(name string) (*Dialect, error) {
	if d, ok := Get(name); ok {
		return d, nil
	}
	return nil, fmt.Errorf("unknown driver %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Names returns the registered dialect names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatPlaceholder returns the marker for the given parameter index (1-based).
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	default:
		return "?"
	}
}

// QuoteIdentifier quotes name the way the engine expects.
func (d *Dialect) QuoteIdentifier(name string) string {
	if d.QuoteIdent != nil {
		return d.QuoteIdent(name)
	}
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (d *Dialect) String() string {
	return d.Name
}
