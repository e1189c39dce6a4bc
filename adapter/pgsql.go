package adapter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

func init() {
	Register(string(FamilyPgsql), constructorOf(NewPgsql))
}

type Pgsql struct {
	conn
	Config *Config
}

func NewPgsql(opts Options) (*Pgsql, error) {
	cfg, err := opts.Decode(FamilyPgsql)
	if err != nil {
		return nil, err
	}
	dsn := cfg.Dsn
	if dsn == "" {
		dsn = pgsqlDSN(cfg)
	}
	xdb, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "dbrec: pgsql connect failed")
	}
	return &Pgsql{
		conn: conn{
			family:  FamilyPgsql,
			driver:  "postgres",
			xdb:     xdb,
			quote:   quoteDouble,
			clauses: Clauses(FamilyPgsql, ""),
		},
		Config: cfg,
	}, nil
}

// pgsqlDSN renders a lib/pq key=value connection string.
func pgsqlDSN(cfg *Config) string {
	var port string
	if cfg.Port > 0 {
		port = fmt.Sprint(cfg.Port)
	}
	pairs := [][2]string{
		{"host", cfg.Host},
		{"port", port},
		{"user", cfg.Username},
		{"password", cfg.Password},
		{"dbname", cfg.Database},
		{"sslmode", cfg.SSLMode},
	}
	keys := lo.Keys(cfg.Params)
	sort.Strings(keys)
	for _, k := range keys {
		pairs = append(pairs, [2]string{k, cfg.Params[k]})
	}
	var parts []string
	for _, p := range pairs {
		if p[1] == "" {
			continue
		}
		parts = append(parts, p[0]+"="+pqValue(p[1]))
	}
	return strings.Join(parts, " ")
}

func pqValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
