//go:build cgo

package adapter

import (
	"fmt"
	"net"
	"strconv"

	_ "github.com/godror/godror"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// Oracle is only compiled into cgo builds; godror links ODPI-C.
func init() {
	Register(string(FamilyOracle), constructorOf(NewOracle))
}

type Oracle struct {
	conn
	Config *Config
}

func NewOracle(opts Options) (*Oracle, error) {
	cfg, err := opts.Decode(FamilyOracle)
	if err != nil {
		return nil, err
	}
	dsn := cfg.Dsn
	if dsn == "" {
		dsn = oracleDSN(cfg)
	}
	xdb, err := sqlx.Connect("godror", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "dbrec: oracle connect failed")
	}
	return &Oracle{
		conn: conn{
			family:  FamilyOracle,
			driver:  "godror",
			xdb:     xdb,
			quote:   quoteDouble,
			clauses: Clauses(FamilyOracle, ""),
		},
		Config: cfg,
	}, nil
}

func oracleDSN(cfg *Config) string {
	connect := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)) + "/" + cfg.Database
	return fmt.Sprintf("user=%q password=%q connectString=%q", cfg.Username, cfg.Password, connect)
}
