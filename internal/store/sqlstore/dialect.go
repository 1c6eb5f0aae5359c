package sqlstore

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect captures the per-database differences of the records table.
type Dialect struct {
	Name       string
	DriverName string
	Schema     string
	// ForUpdate is appended to the row read of an update transaction.
	ForUpdate string
	// Numbered placeholders ($1, $2, ...) instead of ?.
	Numbered bool
	// SingleConn limits the pool to one connection.
	SingleConn bool
}

var (
	MySQL = Dialect{
		Name:       "mysql",
		DriverName: "mysql",
		Schema: `CREATE TABLE IF NOT EXISTS records (
  seq BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  resource VARCHAR(64) NOT NULL,
  id VARCHAR(64) NOT NULL,
  body JSON NOT NULL,
  created_at BIGINT NOT NULL,
  updated_at BIGINT NOT NULL,
  UNIQUE KEY uk_records_resource_id (resource, id)
)`,
		ForUpdate: " FOR UPDATE",
	}

	Postgres = Dialect{
		Name:       "postgres",
		DriverName: "pgx",
		Schema: `CREATE TABLE IF NOT EXISTS records (
  seq BIGSERIAL PRIMARY KEY,
  resource VARCHAR(64) NOT NULL,
  id VARCHAR(64) NOT NULL,
  body JSONB NOT NULL,
  created_at BIGINT NOT NULL,
  updated_at BIGINT NOT NULL,
  CONSTRAINT uk_records_resource_id UNIQUE (resource, id)
)`,
		ForUpdate: " FOR UPDATE",
		Numbered:  true,
	}

	SQLite = Dialect{
		Name:       "sqlite",
		DriverName: "sqlite",
		Schema: `CREATE TABLE IF NOT EXISTS records (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  resource TEXT NOT NULL,
  id TEXT NOT NULL,
  body TEXT NOT NULL,
  created_at INTEGER NOT NULL,
  updated_at INTEGER NOT NULL,
  UNIQUE (resource, id)
)`,
		SingleConn: true,
	}
)

func DialectByName(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case MySQL.Name:
		return MySQL, nil
	case Postgres.Name, "postgresql", "pgx":
		return Postgres, nil
	case SQLite.Name, "sqlite3":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unknown sql dialect %q", name)
	}
}

// Rebind rewrites ? placeholders for dialects with numbered parameters.
func (d Dialect) Rebind(query string) string {
	if !d.Numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
