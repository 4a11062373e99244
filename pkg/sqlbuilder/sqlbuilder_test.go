package sqlbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Placeholders(t *testing.T) {
	tests := []struct {
		dialect string
		want    string
	}{
		{DialectPostgres, "SELECT id FROM reservations WHERE date = $1"},
		{DialectSQLite, "SELECT id FROM reservations WHERE date = ?"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			b, err := New(tt.dialect)
			require.NoError(t, err)

			query, args, err := b.Select("id").From("reservations").Where("date = ?", "2025-01-01").ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.want, query)
			assert.Equal(t, []interface{}{"2025-01-01"}, args)
		})
	}
}

func TestNew_UnknownDialect(t *testing.T) {
	_, err := New("oracle")
	assert.Error(t, err)
	assert.Panics(t, func() { MustNew("oracle") })
}
