package app

import (
	"net/url"
	"strings"
)

const preparedBinaryParam = "disable_prepared_binary_result"

// postgresDSN is DB_URL in either of the forms lib/pq accepts: a
// postgres:// URL or a libpq key=value string.
type postgresDSN struct {
	raw string
	url *url.URL
}

func parsePostgresDSN(raw string) postgresDSN {
	raw = strings.TrimSpace(raw)
	d := postgresDSN{raw: raw}
	if parsed, err := url.Parse(raw); err == nil && parsed.Scheme != "" {
		d.url = parsed
	}
	return d
}

func (d postgresDSN) param(key string) string {
	if d.url != nil {
		return d.url.Query().Get(key)
	}
	for _, token := range strings.Fields(d.raw) {
		name, value, ok := strings.Cut(token, "=")
		if ok && name == key {
			return strings.Trim(value, `"'`)
		}
	}
	return ""
}

func (d postgresDSN) withParam(key, value string) string {
	if d.url == nil {
		return d.raw + " " + key + "=" + value
	}
	next := *d.url
	query := next.Query()
	query.Set(key, value)
	next.RawQuery = query.Encode()
	return next.String()
}

func (d postgresDSN) database() string {
	if d.url != nil {
		if name := strings.Trim(d.url.Path, "/ "); name != "" {
			return name
		}
		return d.url.Query().Get("dbname")
	}
	return d.param("dbname")
}

// PostgresDSN applies DB_DISABLE_PREPARED_BINARY_RESULT to a DB URL. An
// explicit value already present in the URL wins.
func PostgresDSN(raw string, disablePreparedBinary bool) string {
	d := parsePostgresDSN(raw)
	if !disablePreparedBinary || d.raw == "" || d.param(preparedBinaryParam) != "" {
		return d.raw
	}
	return d.withParam(preparedBinaryParam, "yes")
}

// DatabaseName is the database a DB URL points at, or "" when none is named.
func DatabaseName(raw string) string {
	return parsePostgresDSN(raw).database()
}
