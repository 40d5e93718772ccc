package postgres

//nolint:revive
import (
	"errors"
	"farmstay/config"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type target struct {
	name     string
	username string
	password string
	host     string
	port     string
	dbName   string
	sslMode  string
}

func (t target) dsn() string {
	return (&url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(t.username, t.password),
		Host:     net.JoinHostPort(t.host, t.port),
		Path:     t.dbName,
		RawQuery: url.Values{"sslmode": []string{t.sslMode}}.Encode(),
	}).String()
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	write := target{
		name: "write", username: pg.Write.Username, password: pg.Write.Password,
		host: pg.Write.Host, port: pg.Write.Port, dbName: pg.Prefix + pg.Write.Name, sslMode: pg.Write.SSLMode,
	}
	read := target{
		name: "read", username: pg.Read.Username, password: pg.Read.Password,
		host: pg.Read.Host, port: pg.Read.Port, dbName: pg.Prefix + pg.Read.Name, sslMode: pg.Read.SSLMode,
	}

	// a single database setup leaves the read side empty
	if read.host == "" {
		read = write
		read.name = "read"
	}

	return &Connection{
		Read:  mustConnect(read, pg.MaxRetry, pg.RetryWaitTime),
		Write: mustConnect(write, pg.MaxRetry, pg.RetryWaitTime),
	}
}

// DSN is the write database URL, used by migrations.
func DSN(cfg *config.Config) string {
	pg := cfg.DB.Postgres

	return target{
		username: pg.Write.Username, password: pg.Write.Password,
		host: pg.Write.Host, port: pg.Write.Port, dbName: pg.Prefix + pg.Write.Name, sslMode: pg.Write.SSLMode,
	}.dsn()
}

func (c *Connection) Close() error {
	return errors.Join(c.Read.Close(), c.Write.Close())
}

func mustConnect(t target, maxRetry, waitTime int) *sqlx.DB {
	db, err := connect(t, max(maxRetry, 1), waitTime)
	if err != nil {
		log.Fatal().Err(err).Str("name", t.name).Str("host", t.host).Msg("Giving up connecting to database")
	}

	return db
}

func connect(t target, maxRetry, waitTime int) (*sqlx.DB, error) {
	var err error

	for retry := range maxRetry {
		var db *sqlx.DB

		db, err = sqlx.Connect("postgres", t.dsn())
		if err == nil {
			log.Info().
				Str("name", t.name).
				Str("host", t.host).
				Str("port", t.port).
				Str("dbName", t.dbName).
				Msg("Connected to database")

			db.SetMaxIdleConns(postgresMaxIdleConnection)
			db.SetMaxOpenConns(postgresMaxOpenConnection)
			db.SetConnMaxLifetime(postgresConnMaxLifetime)

			return db, nil
		}

		log.Error().
			Err(err).
			Str("name", t.name).
			Str("host", t.host).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil, fmt.Errorf("failed connecting to %s database after %d attempts: %w", t.name, maxRetry, err)
}
