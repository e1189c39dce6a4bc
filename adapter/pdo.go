package adapter

import (
	"strings"

	"dario.cat/mergo"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	Register(string(FamilyPDO), constructorOf(NewPdo))
}

// pdoDriver describes one gorm dialector usable as a pdo sub-driver.
type pdoDriver struct {
	family Family
	open   func(dsn string) gorm.Dialector
	dsn    func(cfg *Config) string
	// sqlx name, picks the placeholder style
	driver string
	quote  quoteStyle
}

var pdoDialectors = map[string]pdoDriver{
	"mysql": {
		family: FamilyMysqli,
		open:   gmysql.Open,
		dsn:    mysqlDSN,
		driver: "mysql",
		quote:  quoteBacktick,
	},
	"pgsql": {
		family: FamilyPgsql,
		open:   postgres.Open,
		dsn:    pgsqlDSN,
		driver: "postgres",
		quote:  quoteDouble,
	},
	"sqlsrv": {
		family: FamilySqlsrv,
		open:   sqlserver.Open,
		dsn:    sqlsrvDSN,
		driver: "sqlserver",
		quote:  quoteBracket,
	},
}

// Pdo runs one of several sub-drivers through gorm; the "type" option selects it.
type Pdo struct {
	conn
	Config *Config
	sub    string
	gdb    *gorm.DB
}

func NewPdo(opts Options) (*Pdo, error) {
	cfg, err := opts.Decode(FamilyPDO)
	if err != nil {
		return nil, err
	}
	sub := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(cfg.Type)), "pdo_")
	if sub == "" {
		return nil, &ConfigurationError{Family: FamilyPDO, Field: "type", Reason: "a pdo sub-driver is required"}
	}
	drv, ok := pdoDialectors[sub]
	if !ok {
		return nil, &ConfigurationError{Family: FamilyPDO, Field: "type", Reason: "unsupported sub-driver " + sub}
	}
	if defaults, ok := familyDefaults[drv.family]; ok {
		if err := mergo.Merge(cfg, defaults); err != nil {
			return nil, errors.Wrap(err, "dbrec: merge option defaults")
		}
	}
	dsn := cfg.Dsn
	if dsn == "" {
		dsn = drv.dsn(cfg)
	}
	gdb, err := gorm.Open(drv.open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "dbrec: pdo_%s connect failed", sub)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, errors.Wrapf(err, "dbrec: pdo_%s connect failed", sub)
	}
	return &Pdo{
		conn: conn{
			family:  FamilyPDO,
			driver:  drv.driver,
			xdb:     sqlx.NewDb(sqlDB, drv.driver),
			quote:   drv.quote,
			clauses: Clauses(FamilyPDO, sub),
		},
		Config: cfg,
		sub:    sub,
		gdb:    gdb,
	}, nil
}

// Sub returns the selected sub-driver, e.g. "mysql".
func (p *Pdo) Sub() string {
	return p.sub
}

// Gorm exposes the underlying gorm session.
func (p *Pdo) Gorm() *gorm.DB {
	return p.gdb
}
