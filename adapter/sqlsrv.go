package adapter

import (
	"net"
	"net/url"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "github.com/microsoft/go-mssqldb"
	"github.com/pkg/errors"
)

func init() {
	Register(string(FamilySqlsrv), constructorOf(NewSqlsrv))
}

type Sqlsrv struct {
	conn
	Config *Config
}

func NewSqlsrv(opts Options) (*Sqlsrv, error) {
	cfg, err := opts.Decode(FamilySqlsrv)
	if err != nil {
		return nil, err
	}
	dsn := cfg.Dsn
	if dsn == "" {
		dsn = sqlsrvDSN(cfg)
	}
	xdb, err := sqlx.Connect("sqlserver", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "dbrec: sqlsrv connect failed")
	}
	return &Sqlsrv{
		conn: conn{
			family:  FamilySqlsrv,
			driver:  "sqlserver",
			xdb:     xdb,
			quote:   quoteBracket,
			clauses: Clauses(FamilySqlsrv, ""),
		},
		Config: cfg,
	}, nil
}

func sqlsrvDSN(cfg *Config) string {
	q := url.Values{}
	if cfg.Database != "" {
		q.Set("database", cfg.Database)
	}
	for k, v := range cfg.Params {
		q.Set(k, v)
	}
	u := url.URL{
		Scheme:   "sqlserver",
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		RawQuery: q.Encode(),
	}
	if cfg.Username != "" {
		u.User = url.UserPassword(cfg.Username, cfg.Password)
	}
	return u.String()
}
