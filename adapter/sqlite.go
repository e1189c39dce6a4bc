package adapter

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

func init() {
	Register(string(FamilySqlite), constructorOf(NewSqlite))
}

// Sqlite uses the cgo-free modernc driver.
type Sqlite struct {
	conn
	Config *Config
}

func NewSqlite(opts Options) (*Sqlite, error) {
	cfg, err := opts.Decode(FamilySqlite)
	if err != nil {
		return nil, err
	}
	dsn := cfg.Dsn
	if dsn == "" {
		dsn = cfg.Database
	}
	if dsn == "" {
		return nil, &ConfigurationError{Family: FamilySqlite, Field: "database", Reason: "a database file is required"}
	}
	xdb, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "dbrec: sqlite connect failed")
	}
	if dsn == ":memory:" {
		// every pooled connection would otherwise see its own empty database
		xdb.SetMaxOpenConns(1)
	}
	return &Sqlite{
		conn: conn{
			family:  FamilySqlite,
			driver:  "sqlite",
			xdb:     xdb,
			quote:   quoteDouble,
			clauses: Clauses(FamilySqlite, ""),
		},
		Config: cfg,
	}, nil
}
