package database

import (
	"fmt"
	"regexp"
)

// Dialect - диалект SQL выбранного драйвера.
// Все запросы пишутся в стиле PostgreSQL ($1, $2, ...) и переписываются через Rebind.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

var pgPlaceholderRe = regexp.MustCompile(`\$(\d+)`)

// ParseDialect возвращает диалект по имени драйвера из конфига.
func ParseDialect(driver string) (Dialect, error) {
	switch Dialect(driver) {
	case Postgres, SQLite:
		return Dialect(driver), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Rebind переводит плейсхолдеры $N в формат диалекта.
// Для SQLite каждый $N должен встречаться в запросе один раз и по возрастанию.
func (d Dialect) Rebind(query string) string {
	if d == SQLite {
		return pgPlaceholderRe.ReplaceAllString(query, "?")
	}
	return query
}

func (d Dialect) gooseDialect() string {
	if d == SQLite {
		return "sqlite3"
	}
	return "postgres"
}

func (d Dialect) migrationsDir() string {
	return "migrations/" + string(d)
}
