package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSNFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USER", "shop")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "")
	t.Setenv("DB_SSLMODE", "")

	assert.Equal(t, "host=db port=5432 user=shop password=pw dbname=shop_assistant sslmode=disable", dsnFromEnv())

	t.Setenv("DATABASE_URL", "postgres://shop@db/shop")
	assert.Equal(t, "postgres://shop@db/shop", dsnFromEnv())
}

func TestEnvInt(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "40")
	assert.Equal(t, 40, envInt("DB_MAX_OPEN_CONNS", 25))

	t.Setenv("DB_MAX_OPEN_CONNS", "lots")
	assert.Equal(t, 25, envInt("DB_MAX_OPEN_CONNS", 25))
}

func TestMigrateAppliesSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS chat_messages")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), sqlx.NewDb(db, "postgres")))
	assert.NoError(t, mock.ExpectationsWereMet())
}
