package helper

import (
	"farmstay/config"
	"farmstay/migrations"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Write.Host = "db"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Username = "farm"
	cfg.DB.Postgres.Write.Password = "secret"
	cfg.DB.Postgres.Write.Name = "farmstay"
	cfg.DB.Postgres.Write.SSLMode = "disable"

	assert.Equal(t, "postgres://farm:secret@db:5432/farmstay?sslmode=disable", migrationURL(cfg))

	cfg.DB.Postgres.MigrationTable = "schema_migrations"
	assert.Equal(t, "postgres://farm:secret@db:5432/farmstay?sslmode=disable&x-migrations-table=schema_migrations", migrationURL(cfg))
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrations.FS, migrations.Dir)
	require.NoError(t, err)

	up, down := 0, 0

	for _, entry := range entries {
		switch {
		case strings.HasSuffix(entry.Name(), ".up.sql"):
			up++
		case strings.HasSuffix(entry.Name(), ".down.sql"):
			down++
		}
	}

	assert.Equal(t, 5, up)
	assert.Equal(t, up, down)
}

// Stays are history: deleting a listing or an account must not take its bookings with it.
func TestEmbeddedMigrations_BookingsAreRestricted(t *testing.T) {
	for _, name := range []string{"000002_create_farmhouses_table.up.sql", "000003_create_bookings_table.up.sql"} {
		raw, err := fs.ReadFile(migrations.FS, migrations.Dir+"/"+name)
		require.NoError(t, err)

		sql := string(raw)
		assert.NotContains(t, sql, "ON DELETE CASCADE", name)

		for _, line := range strings.Split(sql, "\n") {
			if strings.Contains(line, "REFERENCES") {
				assert.Contains(t, line, "ON DELETE RESTRICT", name)
			}
		}
	}
}
