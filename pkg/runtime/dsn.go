package runtime

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	_ "modernc.org/sqlite"             // registers the "sqlite" database/sql driver

	"github.com/marshallshelly/gravel/pkg/dialect"
)

// buildDSN renders the driver-specific data source name for config.
func buildDSN(d *dialect.Dialect, config *Config) (string, error) {
	switch d.Name {
	case dialect.MySQL.Name:
		return buildMySQLDSN(config), nil
	case dialect.Postgres.Name:
		return buildPostgresDSN(config), nil
	case dialect.SQLite.Name:
		return buildSQLiteDSN(config), nil
	default:
		return "", fmt.Errorf("no DSN builder for driver %q", d.Name)
	}
}

func buildMySQLDSN(config *Config) string {
	mc := mysql.NewConfig()
	mc.User = config.User
	mc.Passwd = config.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(config.Host, strconv.Itoa(config.Port))
	mc.DBName = config.DB
	// Report matched rows on UPDATE so saving unchanged values still counts as one row.
	mc.ClientFoundRows = true

	mc.Params = map[string]string{
		"charset":    config.Charset,
		"autocommit": boolFlag(config.AutocommitEnabled()),
	}
	for k, v := range config.Options {
		mc.Params[k] = v
	}

	return mc.FormatDSN()
}

func buildPostgresDSN(config *Config) string {
	q := url.Values{}
	q.Set("sslmode", "prefer")
	q.Set("client_encoding", postgresEncoding(config.Charset))
	for k, v := range config.Options {
		q.Set(k, v)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(config.User, config.Password),
		Host:     net.JoinHostPort(config.Host, strconv.Itoa(config.Port)),
		Path:     "/" + config.DB,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func buildSQLiteDSN(config *Config) string {
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	for k, v := range config.Options {
		q.Add(k, v)
	}
	return config.DB + "?" + q.Encode()
}

// postgresEncoding maps MySQL-style charset names onto PostgreSQL encodings.
func postgresEncoding(charset string) string {
	switch strings.ToLower(charset) {
	case "", "utf8", "utf8mb4", "utf-8":
		return "UTF8"
	case "latin1":
		return "LATIN1"
	default:
		return charset
	}
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
