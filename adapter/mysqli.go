package adapter

import (
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

func init() {
	Register(string(FamilyMysqli), constructorOf(NewMysqli))
}

type Mysqli struct {
	conn
	Config *Config
}

func NewMysqli(opts Options) (*Mysqli, error) {
	cfg, err := opts.Decode(FamilyMysqli)
	if err != nil {
		return nil, err
	}
	dsn := cfg.Dsn
	if dsn == "" {
		dsn = mysqlDSN(cfg)
	}
	xdb, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "dbrec: mysqli connect failed")
	}
	return &Mysqli{
		conn: conn{
			family:  FamilyMysqli,
			driver:  "mysql",
			xdb:     xdb,
			quote:   quoteBacktick,
			clauses: Clauses(FamilyMysqli, ""),
		},
		Config: cfg,
	}, nil
}

func mysqlDSN(cfg *Config) string {
	mc := mysql.NewConfig()
	mc.User = cfg.Username
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.Database
	mc.ParseTime = true
	mc.Params = map[string]string{}
	if cfg.Charset != "" {
		mc.Params["charset"] = cfg.Charset
	}
	for k, v := range cfg.Params {
		mc.Params[k] = v
	}
	return mc.FormatDSN()
}
