package sqlbuilder

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// New возвращает squirrel-билдер с плейсхолдерами под диалект базы
func New(dialect string) (sq.StatementBuilderType, error) {
	switch dialect {
	case DialectPostgres:
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar), nil
	case DialectSQLite:
		return sq.StatementBuilder.PlaceholderFormat(sq.Question), nil
	default:
		return sq.StatementBuilderType{}, fmt.Errorf("sqlbuilder: unsupported dialect %q", dialect)
	}
}

// MustNew как New, но паникует на неизвестном диалекте
func MustNew(dialect string) sq.StatementBuilderType {
	b, err := New(dialect)
	if err != nil {
		panic(err)
	}
	return b
}
